package core

import "time"

type AuditEntry struct {
	// ID is the unique request ID (X-Correlation-ID)
	ID string `json:"id"`

	// Time is the timestamp of the event
	Time time.Time `json:"time"`

	// Action describing what happened (e.g. "token.issue")
	Action string `json:"action"`

	// Provider is the external identity provider the caller named.
	Provider string `json:"provider,omitempty"`

	// UserID of the validated identity, if validation got that far.
	UserID string `json:"user_id,omitempty"`

	// PolicyIDs that were merged into the issued token.
	PolicyIDs []string `json:"policy_ids,omitempty"`

	// TokenFingerprint of the issued internal token. Never the token
	// itself, and never the upstream token.
	TokenFingerprint string `json:"token_fingerprint,omitempty"`

	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type Auditor interface {
	Log(entry AuditEntry) error
	Close() error
}
