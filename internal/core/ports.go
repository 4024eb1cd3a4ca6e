package core

import "context"

// IdentityValidator validates an upstream bearer token against one
// provider's trust material and extracts the canonical identity.
// Implementations: OIDC validator, static validator (dev/test).
type IdentityValidator interface {
	// Validate verifies the token and returns the canonical identity.
	// Failures are ValidationErrors; the raw token must never appear
	// in the returned error.
	Validate(ctx context.Context, token ExternalToken) (ExternalIdentity, error)
}

// Repository is a key/value store with upsert semantics. The in-memory
// implementation lives in internal/store; a durable backend can be
// plugged in behind the same contract.
type Repository[K comparable, E any] interface {
	// Get retrieves the entity for key, or ErrNotFound.
	Get(ctx context.Context, key K) (E, error)

	// Upsert inserts or updates the entity for key.
	Upsert(ctx context.Context, key K, entity E) error

	// Delete removes the entity for key. Deleting an absent key is not
	// an error.
	Delete(ctx context.Context, key K) error
}
