package audit

import (
	"testing"
	"time"

	"github.com/darmiel/gatekey/internal/core"
)

func TestInMemoryAuditor_GetRecent(t *testing.T) {
	a := NewInMemoryAuditor()
	for i := 0; i < 5; i++ {
		if err := a.Log(core.AuditEntry{
			ID:     string(rune('a' + i)),
			Time:   time.Now(),
			Action: "token.issue",
		}); err != nil {
			t.Fatalf("Log() error: %v", err)
		}
	}

	entries, err := a.GetRecent(3)
	if err != nil {
		t.Fatalf("GetRecent() error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("GetRecent(3) length = %d", len(entries))
	}
	if entries[0].ID != "c" || entries[2].ID != "e" {
		t.Errorf("unexpected window: %v .. %v", entries[0].ID, entries[2].ID)
	}

	// limit larger than stored entries
	all, _ := a.GetRecent(100)
	if len(all) != 5 {
		t.Errorf("GetRecent(100) length = %d, want 5", len(all))
	}
}

func TestFingerprint_StableAndOpaque(t *testing.T) {
	a := Fingerprint("some-signed-token")
	b := Fingerprint("some-signed-token")
	if a != b {
		t.Error("fingerprint is not stable")
	}
	if a == "some-signed-token" {
		t.Error("fingerprint must not equal the token")
	}
	if Fingerprint("other-token") == a {
		t.Error("different tokens produced the same fingerprint")
	}
}
