package store

import "github.com/darmiel/gatekey/internal/core"

// NewPolicyStore stores policies by id. Upsert replaces content
// wholesale.
func NewPolicyStore() *Memory[string, core.Policy] {
	return NewMemory[string, core.Policy]()
}

// NewIdentityStore stores external identities by their own value.
func NewIdentityStore() *Memory[core.ExternalIdentity, core.ExternalIdentity] {
	return NewMemory[core.ExternalIdentity, core.ExternalIdentity]()
}

// NewAttachmentStore stores policy attachments by identity. Upsert is
// additive: a new policy-id set is unioned into an existing attachment
// rather than replacing it.
func NewAttachmentStore() *Memory[core.ExternalIdentity, core.PolicyAttachment] {
	return NewMergingMemory[core.ExternalIdentity, core.PolicyAttachment](
		func(existing, incoming core.PolicyAttachment) core.PolicyAttachment {
			return existing.Union(incoming)
		},
	)
}
