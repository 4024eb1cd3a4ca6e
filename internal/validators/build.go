package validators

import (
	"context"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/darmiel/gatekey/internal/config"
	"github.com/darmiel/gatekey/internal/core"
	"github.com/darmiel/gatekey/internal/logging"
	"github.com/darmiel/gatekey/internal/registry"
)

// StaticConfig is the inline configuration of a "static" provider.
type StaticConfig struct {
	// Tokens maps accepted raw tokens to user ids.
	Tokens map[string]string `mapstructure:"tokens"`
}

// Apply installs every configured provider into the registry. One bad
// provider definition is logged and skipped so it cannot take down
// validation for the others; the last error is returned for the
// configuration caller.
func Apply(ctx context.Context, reg *registry.Registry, cfgs []config.ProviderConfig, logger logging.InternalLogger) error {
	var lastErr error
	for _, cfg := range cfgs {
		if err := applyOne(ctx, reg, cfg); err != nil {
			logger.Error("applying provider %q failed: %v", cfg.Name, err)
			lastErr = err
			continue
		}
		logger.Info("provider %q applied", cfg.Name)
	}
	return lastErr
}

func applyOne(ctx context.Context, reg *registry.Registry, cfg config.ProviderConfig) error {
	switch cfg.Type {
	case config.ProviderTypeOIDC:
		var settings core.ProviderSettings
		if err := decodeInline(cfg.Config, &settings); err != nil {
			return fmt.Errorf("decoding oidc settings for provider %q: %w", cfg.Name, err)
		}
		return reg.Put(ctx, cfg.Name, settings)

	case config.ProviderTypeStatic:
		var static StaticConfig
		if err := decodeInline(cfg.Config, &static); err != nil {
			return fmt.Errorf("decoding static settings for provider %q: %w", cfg.Name, err)
		}
		reg.Install(cfg.Name, NewStatic(cfg.Name, static.Tokens))
		return nil

	default:
		return fmt.Errorf("unknown provider type %q for provider %q", cfg.Type, cfg.Name)
	}
}

func decodeInline(raw map[string]any, dest any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Metadata: nil,
		Result:   dest,
	})
	if err != nil {
		return fmt.Errorf("creating decoder: %w", err)
	}
	return decoder.Decode(raw)
}

// DefaultBuild is the registry build function used in production: OIDC
// discovery against the provider's discovery URL.
func DefaultBuild(ctx context.Context, provider string, settings core.ProviderSettings) (core.IdentityValidator, error) {
	return NewOIDC(ctx, provider, settings)
}
