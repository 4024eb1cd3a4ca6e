package core

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repositories and the validator registry
// when no entity exists for a key.
var ErrNotFound = errors.New("not found")

// ValidationKind classifies why an upstream token was rejected.
type ValidationKind string

const (
	// ValidationMalformed: the token is not structurally a JWT.
	ValidationMalformed ValidationKind = "malformed"

	// ValidationUntrusted: signature, issuer, audience or time-bound
	// checks failed.
	ValidationUntrusted ValidationKind = "untrusted"

	// ValidationMissingClaim: the configured user-id claim is absent
	// or not a string.
	ValidationMissingClaim ValidationKind = "missing_claim"
)

// ValidationError is terminal for a request; it carries internal detail
// for logs but is never surfaced verbatim to callers.
type ValidationError struct {
	Kind ValidationKind
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("token validation failed (%s)", e.Kind)
	}
	return fmt.Sprintf("token validation failed (%s): %v", e.Kind, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidationError(kind ValidationKind, err error) *ValidationError {
	return &ValidationError{Kind: kind, Err: err}
}

// ConfigError is a validator construction failure (bad discovery URL,
// unreachable trust material). It is reported to the configuration
// caller, never to token-issuance callers.
type ConfigError struct {
	Provider string
	Err      error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("building validator for provider %q: %v", e.Provider, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// SigningError is a key or encoding failure while signing the internal
// claim set. Fatal for the single request only.
type SigningError struct {
	Err error
}

func (e *SigningError) Error() string {
	return fmt.Sprintf("signing internal token: %v", e.Err)
}

func (e *SigningError) Unwrap() error {
	return e.Err
}
