package core

import (
	"encoding/json"
	"sort"
)

// MergeSeparator joins two policy contents during a merge.
const MergeSeparator = "\n"

// Policy is an opaque unit of authorization content. The engine stores,
// merges and ships it but never interprets it.
type Policy struct {
	ID      string `json:"id,omitempty"`
	Content string `json:"content"`
}

func NewPolicy(id, content string) Policy {
	return Policy{ID: id, Content: content}
}

// EmptyPolicy is the identity element for Merge.
func EmptyPolicy() Policy {
	return Policy{}
}

// Merge concatenates the other policy's content onto this one.
// This is textual concatenation with a separator, not a semantic merge.
func (p Policy) Merge(other Policy) Policy {
	if p.Content == "" {
		return Policy{Content: other.Content}
	}
	if other.Content == "" {
		return Policy{Content: p.Content}
	}
	return Policy{Content: p.Content + MergeSeparator + other.Content}
}

// PolicyAttachment binds a set of policy ids to one identity.
// Attaching an id twice is a no-op; attachments are additive.
type PolicyAttachment struct {
	Identity ExternalIdentity
	policies map[string]struct{}
}

func NewPolicyAttachment(identity ExternalIdentity, policyIDs ...string) PolicyAttachment {
	a := PolicyAttachment{
		Identity: identity,
		policies: make(map[string]struct{}, len(policyIDs)),
	}
	for _, id := range policyIDs {
		a.policies[id] = struct{}{}
	}
	return a
}

// Union returns a new attachment containing the policy ids of both.
func (a PolicyAttachment) Union(other PolicyAttachment) PolicyAttachment {
	merged := NewPolicyAttachment(a.Identity, a.PolicyIDs()...)
	for id := range other.policies {
		merged.policies[id] = struct{}{}
	}
	return merged
}

// Without returns a new attachment with the given policy id removed.
func (a PolicyAttachment) Without(policyID string) PolicyAttachment {
	next := NewPolicyAttachment(a.Identity)
	for id := range a.policies {
		if id != policyID {
			next.policies[id] = struct{}{}
		}
	}
	return next
}

// PolicyIDs returns the attached ids in lexicographic order, so callers
// that fold over them (e.g. policy merging) behave deterministically.
func (a PolicyAttachment) PolicyIDs() []string {
	ids := make([]string, 0, len(a.policies))
	for id := range a.policies {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (a PolicyAttachment) Len() int {
	return len(a.policies)
}

type attachmentJSON struct {
	Identity ExternalIdentity `json:"identity"`
	Policies []string         `json:"policies"`
}

func (a PolicyAttachment) MarshalJSON() ([]byte, error) {
	return json.Marshal(attachmentJSON{
		Identity: a.Identity,
		Policies: a.PolicyIDs(),
	})
}

func (a *PolicyAttachment) UnmarshalJSON(data []byte) error {
	var raw attachmentJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*a = NewPolicyAttachment(raw.Identity, raw.Policies...)
	return nil
}
