package config

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"
)

const (
	ProviderTypeOIDC   = "oidc"
	ProviderTypeStatic = "static"
)

type Config struct {
	// Listen address of the HTTP server.
	Listen string `yaml:"listen"`

	// SigningKey signs issued internal tokens. Either inline (dev) or
	// via SigningKeyFile; the file wins when both are set.
	SigningKey     string `yaml:"signing_key"`
	SigningKeyFile string `yaml:"signing_key_file"`

	Providers []ProviderConfig `yaml:"providers"`
	Sync      SyncConfig       `yaml:"sync"`
	Audit     AuditConfig      `yaml:"audit"`
}

// ProviderConfig declares one external identity provider. Type-specific
// fields are captured inline and decoded by the validator builder.
type ProviderConfig struct {
	Name   string         `yaml:"name"`
	Type   string         `yaml:"type"`    // "oidc" or "static"
	Config map[string]any `yaml:",inline"` // capture remaining fields
}

// SyncConfig controls the background re-application of provider
// settings from this file.
type SyncConfig struct {
	Interval time.Duration `yaml:"interval"`
}

// AuditConfig selects the audit sink.
type AuditConfig struct {
	Enabled bool   `yaml:"enabled"`
	Type    string `yaml:"type"` // "file" or "memory"
	Path    string `yaml:"path"`
}

// Load reads, parses and validates the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config file: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Listen == "" {
		c.Listen = ":8080"
	}

	if c.SigningKey == "" && c.SigningKeyFile == "" {
		return fmt.Errorf("either signing_key or signing_key_file is required")
	}

	seen := make(map[string]struct{})
	for idx, p := range c.Providers {
		if p.Name == "" {
			return fmt.Errorf("provider at index %d has empty name", idx)
		}
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("duplicate provider name %q", p.Name)
		}
		seen[p.Name] = struct{}{}

		switch p.Type {
		case ProviderTypeOIDC, ProviderTypeStatic:
		default:
			return fmt.Errorf("provider %q has unknown type %q", p.Name, p.Type)
		}
	}

	if c.Audit.Enabled && c.Audit.Type == "file" && c.Audit.Path == "" {
		return fmt.Errorf("audit type 'file' requires a path")
	}

	return nil
}

// LoadSigningKey resolves the signing key material.
func (c *Config) LoadSigningKey() ([]byte, error) {
	if c.SigningKeyFile != "" {
		key, err := os.ReadFile(c.SigningKeyFile)
		if err != nil {
			return nil, fmt.Errorf("reading signing key file: %w", err)
		}
		return key, nil
	}
	return []byte(c.SigningKey), nil
}
