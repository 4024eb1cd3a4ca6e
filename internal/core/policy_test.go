package core

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPolicy_Merge(t *testing.T) {
	tests := []struct {
		name string
		a, b Policy
		want string
	}{
		{"both empty", EmptyPolicy(), EmptyPolicy(), ""},
		{"empty left", EmptyPolicy(), NewPolicy("p1", "allow: *"), "allow: *"},
		{"empty right", NewPolicy("p1", "allow: *"), EmptyPolicy(), "allow: *"},
		{"two policies", NewPolicy("p1", "allow: a"), NewPolicy("p2", "allow: b"), "allow: a\nallow: b"},
		{"content with newlines", NewPolicy("p1", "a\nb"), NewPolicy("p2", "c"), "a\nb\nc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Merge(tt.b)
			if got.Content != tt.want {
				t.Errorf("Merge() content = %q, want %q", got.Content, tt.want)
			}
		})
	}
}

func TestPolicyAttachment_Union(t *testing.T) {
	identity := NewExternalIdentity("alice", "acme")

	a := NewPolicyAttachment(identity, "p1", "p2")
	b := NewPolicyAttachment(identity, "p2", "p3")

	got := a.Union(b)
	want := []string{"p1", "p2", "p3"}
	if diff := cmp.Diff(want, got.PolicyIDs()); diff != "" {
		t.Errorf("Union() policy ids mismatch (-want +got):\n%s", diff)
	}

	// union with itself is a no-op
	again := got.Union(got)
	if diff := cmp.Diff(want, again.PolicyIDs()); diff != "" {
		t.Errorf("idempotent union mismatch (-want +got):\n%s", diff)
	}
}

func TestPolicyAttachment_Without(t *testing.T) {
	identity := NewExternalIdentity("alice", "acme")
	a := NewPolicyAttachment(identity, "p1", "p2")

	got := a.Without("p1")
	if diff := cmp.Diff([]string{"p2"}, got.PolicyIDs()); diff != "" {
		t.Errorf("Without() mismatch (-want +got):\n%s", diff)
	}

	// removing an unattached id changes nothing
	same := a.Without("p9")
	if diff := cmp.Diff(a.PolicyIDs(), same.PolicyIDs()); diff != "" {
		t.Errorf("Without(absent) mismatch (-want +got):\n%s", diff)
	}
}

func TestPolicyAttachment_JSONRoundTrip(t *testing.T) {
	identity := NewExternalIdentity("alice", "acme")
	a := NewPolicyAttachment(identity, "p2", "p1")

	data, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var back PolicyAttachment
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	if back.Identity != identity {
		t.Errorf("identity = %v, want %v", back.Identity, identity)
	}
	if diff := cmp.Diff(a.PolicyIDs(), back.PolicyIDs()); diff != "" {
		t.Errorf("policy ids mismatch (-want +got):\n%s", diff)
	}
}

func TestProviderSettings_Validate(t *testing.T) {
	valid := ProviderSettings{
		UserIDClaim:  "upn",
		DiscoveryURL: "https://idp.example.com",
		Issuers:      []string{"https://idp.example.com"},
		Audiences:    []string{"gatekey"},
	}

	tests := []struct {
		name    string
		mutate  func(s ProviderSettings) ProviderSettings
		wantErr bool
	}{
		{"valid", func(s ProviderSettings) ProviderSettings { return s }, false},
		{"missing claim", func(s ProviderSettings) ProviderSettings { s.UserIDClaim = ""; return s }, true},
		{"missing discovery url", func(s ProviderSettings) ProviderSettings { s.DiscoveryURL = ""; return s }, true},
		{"no issuers", func(s ProviderSettings) ProviderSettings { s.Issuers = nil; return s }, true},
		{"no audiences", func(s ProviderSettings) ProviderSettings { s.Audiences = nil; return s }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.mutate(valid).Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
