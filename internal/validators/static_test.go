package validators

import (
	"context"
	"testing"

	"github.com/darmiel/gatekey/internal/core"
)

func TestStatic_Validate(t *testing.T) {
	v := NewStatic("dev", map[string]string{
		"good-token": "Alice",
	})

	identity, err := v.Validate(context.Background(), core.NewExternalToken("good-token"))
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	want := core.NewExternalIdentity("alice", "dev")
	if identity != want {
		t.Errorf("identity = %v, want %v", identity, want)
	}

	if _, err := v.Validate(context.Background(), core.NewExternalToken("bad-token")); err == nil {
		t.Error("Validate() expected error for unknown token")
	}
}

func TestStatic_NilTokenMapAlwaysFails(t *testing.T) {
	v := NewStatic("dev", nil)
	if _, err := v.Validate(context.Background(), core.NewExternalToken("anything")); err == nil {
		t.Error("Validate() expected error for empty token map")
	}
}
