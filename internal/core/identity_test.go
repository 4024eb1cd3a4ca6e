package core

import (
	"strings"
	"testing"
)

func TestNewExternalIdentity_Normalizes(t *testing.T) {
	tests := []struct {
		name     string
		userID   string
		provider string
	}{
		{"already lower", "alice", "acme"},
		{"mixed case user", "Alice@Example.COM", "acme"},
		{"mixed case provider", "alice", "AcMe"},
		{"both upper", "ALICE", "ACME"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := NewExternalIdentity(tt.userID, tt.provider)
			if id.UserID != strings.ToLower(tt.userID) {
				t.Errorf("UserID = %q, want %q", id.UserID, strings.ToLower(tt.userID))
			}
			if id.Provider != strings.ToLower(tt.provider) {
				t.Errorf("Provider = %q, want %q", id.Provider, strings.ToLower(tt.provider))
			}
		})
	}
}

func TestNewExternalIdentity_CaseVariantsAreEqual(t *testing.T) {
	a := NewExternalIdentity("Alice", "Acme")
	b := NewExternalIdentity("aLiCe", "aCmE")

	if a != b {
		t.Errorf("identities differ: %v vs %v", a, b)
	}

	// comparable struct, usable as a map key
	m := map[ExternalIdentity]int{a: 1}
	if m[b] != 1 {
		t.Error("case-variant identity did not hit the same map key")
	}
}

func TestExternalToken_DoesNotLeakViaStringer(t *testing.T) {
	tok := NewExternalToken("super-secret-credential")
	if s := tok.String(); strings.Contains(s, "secret") {
		t.Errorf("String() leaked token content: %q", s)
	}
	if tok.Raw() != "super-secret-credential" {
		t.Errorf("Raw() = %q", tok.Raw())
	}
}
