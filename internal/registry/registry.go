package registry

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/darmiel/gatekey/internal/core"
)

// BuildFunc constructs a validator for one provider from its settings.
// Construction may hit the network (OIDC discovery, JWKS fetch), so the
// registry always calls it outside the exclusive section.
type BuildFunc func(ctx context.Context, provider string, settings core.ProviderSettings) (core.IdentityValidator, error)

// Registry is the concurrent map from provider name to the validator
// currently installed for it. Many readers proceed in parallel; a writer
// takes the exclusive section only for the map mutation itself.
type Registry struct {
	mu         sync.RWMutex
	validators map[string]core.IdentityValidator
	build      BuildFunc
}

func New(build BuildFunc) *Registry {
	return &Registry{
		validators: make(map[string]core.IdentityValidator),
		build:      build,
	}
}

// Put builds a validator for settings and installs it under provider,
// replacing any prior one. The build happens before the write lock is
// taken; a build failure leaves the previous validator untouched. The
// last successful Put for a given provider wins.
func (r *Registry) Put(ctx context.Context, provider string, settings core.ProviderSettings) error {
	if err := settings.Validate(); err != nil {
		return &core.ConfigError{Provider: provider, Err: err}
	}

	validator, err := r.build(ctx, provider, settings)
	if err != nil {
		return &core.ConfigError{Provider: provider, Err: err}
	}

	r.Install(provider, validator)

	log.Ctx(ctx).Info().
		Str("provider", provider).
		Msg("validator installed")
	return nil
}

// Install places a pre-built validator under provider. Used for static
// validators and by tests; Put goes through here after building.
func (r *Registry) Install(provider string, validator core.IdentityValidator) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.validators[provider] = validator
}

// Get returns the validator currently installed for provider, or
// core.ErrNotFound if none has ever been installed.
func (r *Registry) Get(provider string) (core.IdentityValidator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	validator, ok := r.validators[provider]
	if !ok {
		return nil, core.ErrNotFound
	}
	return validator, nil
}

// Providers returns the names of all installed providers.
func (r *Registry) Providers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.validators))
	for name := range r.validators {
		names = append(names, name)
	}
	return names
}
