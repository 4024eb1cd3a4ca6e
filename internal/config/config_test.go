package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gatekey.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoad_Valid(t *testing.T) {
	path := writeConfig(t, `
listen: ":9090"
signing_key: "dev-secret"
sync:
  interval: 30s
providers:
  - name: azure
    type: oidc
    user_id_claim: upn
    discovery_url: https://login.example.com/tenant/
    issuers:
      - https://login.example.com/tenant/
    audiences:
      - https://api.example.com/
  - name: dev
    type: static
    tokens:
      good-token: alice
audit:
  enabled: true
  type: memory
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Listen != ":9090" {
		t.Errorf("Listen = %q", cfg.Listen)
	}
	if cfg.Sync.Interval != 30*time.Second {
		t.Errorf("Sync.Interval = %v", cfg.Sync.Interval)
	}
	if len(cfg.Providers) != 2 {
		t.Fatalf("providers = %d, want 2", len(cfg.Providers))
	}
	if cfg.Providers[0].Config["user_id_claim"] != "upn" {
		t.Errorf("inline config not captured: %v", cfg.Providers[0].Config)
	}

	key, err := cfg.LoadSigningKey()
	if err != nil {
		t.Fatalf("LoadSigningKey() error: %v", err)
	}
	if string(key) != "dev-secret" {
		t.Errorf("signing key = %q", key)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing signing key", "listen: ':8080'\n"},
		{"empty provider name", "signing_key: x\nproviders:\n  - type: oidc\n"},
		{"duplicate provider", "signing_key: x\nproviders:\n  - name: a\n    type: static\n  - name: a\n    type: static\n"},
		{"unknown provider type", "signing_key: x\nproviders:\n  - name: a\n    type: saml\n"},
		{"file audit without path", "signing_key: x\naudit:\n  enabled: true\n  type: file\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Error("Load() expected error")
			}
		})
	}
}

func TestLoad_DefaultsListen(t *testing.T) {
	cfg, err := Load(writeConfig(t, "signing_key: x\n"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Listen != ":8080" {
		t.Errorf("Listen default = %q, want :8080", cfg.Listen)
	}
}

func TestLoadSigningKey_FromFile(t *testing.T) {
	keyPath := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(keyPath, []byte("file-secret"), 0600); err != nil {
		t.Fatalf("writing key file: %v", err)
	}

	cfg := &Config{SigningKey: "inline", SigningKeyFile: keyPath}
	key, err := cfg.LoadSigningKey()
	if err != nil {
		t.Fatalf("LoadSigningKey() error: %v", err)
	}
	if string(key) != "file-secret" {
		t.Errorf("key = %q, want file contents to win", key)
	}
}
