package core

import "strings"

// ExternalIdentity is the canonical identity of a caller after their
// upstream token has been validated. Both fields are lower-cased at
// construction so identity keys are case-insensitive; the struct is
// comparable and used directly as a map key.
type ExternalIdentity struct {
	// UserID is the user identifier extracted from the upstream token.
	UserID string `json:"user_id"`

	// Provider is the name of the external identity provider that
	// vouched for this identity.
	Provider string `json:"identity_provider"`
}

// NewExternalIdentity normalizes both parts to lower case.
func NewExternalIdentity(userID, provider string) ExternalIdentity {
	return ExternalIdentity{
		UserID:   strings.ToLower(userID),
		Provider: strings.ToLower(provider),
	}
}

// ExternalToken wraps the raw bearer credential presented by a caller.
// It is secret material and must never be logged in full.
type ExternalToken struct {
	raw string
}

func NewExternalToken(raw string) ExternalToken {
	return ExternalToken{raw: raw}
}

// Raw returns the underlying token string. Callers hand it to a
// validator, never to a logger.
func (t ExternalToken) Raw() string {
	return t.raw
}

// String implements fmt.Stringer so accidental formatting of a token
// does not leak it.
func (t ExternalToken) String() string {
	return "(redacted)"
}
