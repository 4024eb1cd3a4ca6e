package token

import (
	"strings"
	"testing"
	"time"

	"github.com/darmiel/gatekey/internal/core"
)

func TestEncodeDecodePolicy_RoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"simple", "allow: *"},
		{"embedded newlines", "allow: a\ndeny: b\n"},
		{"unicode", "allow: überadmin → ✓"},
		{"large repetitive", strings.Repeat("allow: resource-", 4096)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := EncodePolicy(tt.content)
			if err != nil {
				t.Fatalf("EncodePolicy() error: %v", err)
			}

			decoded, err := DecodePolicy(encoded)
			if err != nil {
				t.Fatalf("DecodePolicy() error: %v", err)
			}
			if decoded != tt.content {
				t.Errorf("round trip mismatch: got %q, want %q", decoded, tt.content)
			}
		})
	}
}

func TestEncodePolicy_CompressesRepetitiveContent(t *testing.T) {
	content := strings.Repeat("allow: something-long\n", 512)
	encoded, err := EncodePolicy(content)
	if err != nil {
		t.Fatalf("EncodePolicy() error: %v", err)
	}
	if len(encoded) >= len(content) {
		t.Errorf("encoded length %d not smaller than input %d", len(encoded), len(content))
	}
}

func TestDecodePolicy_RejectsGarbage(t *testing.T) {
	if _, err := DecodePolicy("!!not-base64!!"); err == nil {
		t.Error("DecodePolicy() expected error for invalid base64")
	}
	// valid base64, but not zlib
	if _, err := DecodePolicy("aGVsbG8="); err == nil {
		t.Error("DecodePolicy() expected error for non-zlib payload")
	}
}

func TestBuildClaims(t *testing.T) {
	now := time.Now()
	tok := core.NewInternalToken(
		core.NewPolicy("", "allow: *"),
		core.NewExternalIdentity("alice", "acme"),
	)

	claims, err := BuildClaims(tok, now)
	if err != nil {
		t.Fatalf("BuildClaims() error: %v", err)
	}

	if claims[APIVersionKey] != "v1" {
		t.Errorf("api version = %v, want v1", claims[APIVersionKey])
	}
	if claims[UserIDKey] != "alice" {
		t.Errorf("user id = %v, want alice", claims[UserIDKey])
	}
	if claims[IdentityProviderKey] != "acme" {
		t.Errorf("identity provider = %v, want acme", claims[IdentityProviderKey])
	}
	if claims["iss"] != ServiceDomain || claims["aud"] != ServiceDomain {
		t.Errorf("iss/aud = %v/%v, want %s", claims["iss"], claims["aud"], ServiceDomain)
	}

	exp, ok := claims["exp"].(int64)
	if !ok {
		t.Fatalf("exp claim type = %T, want int64", claims["exp"])
	}
	if want := now.Add(TTL).Unix(); exp != want {
		t.Errorf("exp = %d, want %d", exp, want)
	}

	policy, err := DecodePolicy(claims[PolicyKey].(string))
	if err != nil {
		t.Fatalf("decoding policy claim: %v", err)
	}
	if policy != "allow: *" {
		t.Errorf("policy = %q, want %q", policy, "allow: *")
	}
}
