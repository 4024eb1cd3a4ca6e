package validators

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oauth2-proxy/mockoidc"

	"github.com/darmiel/gatekey/internal/core"
)

func startMockOIDC(t *testing.T) *mockoidc.MockOIDC {
	t.Helper()
	m, err := mockoidc.Run()
	if err != nil {
		t.Fatalf("starting mock oidc server: %v", err)
	}
	t.Cleanup(func() {
		_ = m.Shutdown()
	})
	return m
}

func signToken(t *testing.T, m *mockoidc.MockOIDC, claims jwt.MapClaims) string {
	t.Helper()
	token, err := m.Keypair.SignJWT(claims)
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}
	return token
}

func baseClaims(m *mockoidc.MockOIDC) jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"iss":   m.Issuer(),
		"aud":   m.Config().ClientID,
		"iat":   now.Unix(),
		"exp":   now.Add(10 * time.Minute).Unix(),
		"sub":   "alice",
		"email": "Alice@Example.COM",
	}
}

func newTestValidator(t *testing.T, m *mockoidc.MockOIDC) *OIDC {
	t.Helper()
	v, err := NewOIDC(context.Background(), "acme", core.ProviderSettings{
		UserIDClaim:  "email",
		DiscoveryURL: m.Issuer(),
		Issuers:      []string{m.Issuer()},
		Audiences:    []string{m.Config().ClientID},
	})
	if err != nil {
		t.Fatalf("NewOIDC() error: %v", err)
	}
	return v
}

func validationKind(t *testing.T, err error) core.ValidationKind {
	t.Helper()
	var vErr *core.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("error type = %T (%v), want *core.ValidationError", err, err)
	}
	return vErr.Kind
}

func TestOIDC_ValidTokenYieldsNormalizedIdentity(t *testing.T) {
	m := startMockOIDC(t)
	v := newTestValidator(t, m)

	token := signToken(t, m, baseClaims(m))
	identity, err := v.Validate(context.Background(), core.NewExternalToken(token))
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}

	want := core.NewExternalIdentity("alice@example.com", "acme")
	if identity != want {
		t.Errorf("identity = %v, want %v", identity, want)
	}
}

func TestOIDC_RejectsMalformedToken(t *testing.T) {
	m := startMockOIDC(t)
	v := newTestValidator(t, m)

	_, err := v.Validate(context.Background(), core.NewExternalToken("not-a-jwt"))
	if kind := validationKind(t, err); kind != core.ValidationMalformed {
		t.Errorf("kind = %s, want %s", kind, core.ValidationMalformed)
	}
}

func TestOIDC_RejectsWrongAudience(t *testing.T) {
	m := startMockOIDC(t)
	v := newTestValidator(t, m)

	claims := baseClaims(m)
	claims["aud"] = "someone-else"
	token := signToken(t, m, claims)

	_, err := v.Validate(context.Background(), core.NewExternalToken(token))
	if kind := validationKind(t, err); kind != core.ValidationUntrusted {
		t.Errorf("kind = %s, want %s", kind, core.ValidationUntrusted)
	}
}

func TestOIDC_RejectsUnlistedIssuer(t *testing.T) {
	m := startMockOIDC(t)
	v := newTestValidator(t, m)

	claims := baseClaims(m)
	claims["iss"] = "https://rogue.example.com"
	token := signToken(t, m, claims)

	_, err := v.Validate(context.Background(), core.NewExternalToken(token))
	if kind := validationKind(t, err); kind != core.ValidationUntrusted {
		t.Errorf("kind = %s, want %s", kind, core.ValidationUntrusted)
	}
}

func TestOIDC_RejectsExpiredToken(t *testing.T) {
	m := startMockOIDC(t)
	v := newTestValidator(t, m)

	claims := baseClaims(m)
	claims["iat"] = time.Now().Add(-2 * time.Hour).Unix()
	claims["exp"] = time.Now().Add(-1 * time.Hour).Unix()
	token := signToken(t, m, claims)

	_, err := v.Validate(context.Background(), core.NewExternalToken(token))
	if kind := validationKind(t, err); kind != core.ValidationUntrusted {
		t.Errorf("kind = %s, want %s", kind, core.ValidationUntrusted)
	}
}

func TestOIDC_RejectsMissingUserIDClaim(t *testing.T) {
	m := startMockOIDC(t)
	v := newTestValidator(t, m)

	claims := baseClaims(m)
	delete(claims, "email")
	token := signToken(t, m, claims)

	_, err := v.Validate(context.Background(), core.NewExternalToken(token))
	if kind := validationKind(t, err); kind != core.ValidationMissingClaim {
		t.Errorf("kind = %s, want %s", kind, core.ValidationMissingClaim)
	}
}

func TestOIDC_ErrorsDoNotLeakToken(t *testing.T) {
	m := startMockOIDC(t)
	v := newTestValidator(t, m)

	claims := baseClaims(m)
	claims["aud"] = "someone-else"
	token := signToken(t, m, claims)

	_, err := v.Validate(context.Background(), core.NewExternalToken(token))
	if err == nil {
		t.Fatal("expected validation error")
	}
	if msg := err.Error(); len(token) > 20 && containsSubstring(msg, token[:20]) {
		t.Errorf("error message leaks token material: %q", msg)
	}
}

func containsSubstring(haystack, needle string) bool {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return true
		}
	}
	return false
}
