package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/darmiel/gatekey/internal/core"
)

func TestMemory_GetUpsertDelete(t *testing.T) {
	ctx := context.Background()
	s := NewPolicyStore()

	if _, err := s.Get(ctx, "p1"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("Get(absent) error = %v, want ErrNotFound", err)
	}

	if err := s.Upsert(ctx, "p1", core.NewPolicy("p1", "allow: a")); err != nil {
		t.Fatalf("Upsert() error: %v", err)
	}

	got, err := s.Get(ctx, "p1")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.Content != "allow: a" {
		t.Errorf("content = %q, want %q", got.Content, "allow: a")
	}

	// policy upsert replaces wholesale
	if err := s.Upsert(ctx, "p1", core.NewPolicy("p1", "allow: b")); err != nil {
		t.Fatalf("Upsert() error: %v", err)
	}
	got, _ = s.Get(ctx, "p1")
	if got.Content != "allow: b" {
		t.Errorf("content after replace = %q, want %q", got.Content, "allow: b")
	}

	if err := s.Delete(ctx, "p1"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := s.Get(ctx, "p1"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("Get(deleted) error = %v, want ErrNotFound", err)
	}

	// deleting an absent key is not an error
	if err := s.Delete(ctx, "p1"); err != nil {
		t.Errorf("Delete(absent) error: %v", err)
	}
}

func TestAttachmentStore_UpsertIsAdditive(t *testing.T) {
	ctx := context.Background()
	s := NewAttachmentStore()
	identity := core.NewExternalIdentity("alice", "acme")

	if err := s.Upsert(ctx, identity, core.NewPolicyAttachment(identity, "p1", "p2")); err != nil {
		t.Fatalf("Upsert() error: %v", err)
	}
	if err := s.Upsert(ctx, identity, core.NewPolicyAttachment(identity, "p2", "p3")); err != nil {
		t.Fatalf("Upsert() error: %v", err)
	}

	got, err := s.Get(ctx, identity)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if diff := cmp.Diff([]string{"p1", "p2", "p3"}, got.PolicyIDs()); diff != "" {
		t.Errorf("attachment ids mismatch (-want +got):\n%s", diff)
	}

	// repeated identical upsert is a no-op
	if err := s.Upsert(ctx, identity, core.NewPolicyAttachment(identity, "p3")); err != nil {
		t.Fatalf("Upsert() error: %v", err)
	}
	got, _ = s.Get(ctx, identity)
	if diff := cmp.Diff([]string{"p1", "p2", "p3"}, got.PolicyIDs()); diff != "" {
		t.Errorf("idempotent upsert mismatch (-want +got):\n%s", diff)
	}
}

func TestAttachmentStore_DeleteRemovesWholeRecord(t *testing.T) {
	ctx := context.Background()
	s := NewAttachmentStore()
	identity := core.NewExternalIdentity("alice", "acme")

	_ = s.Upsert(ctx, identity, core.NewPolicyAttachment(identity, "p1", "p2"))
	if err := s.Delete(ctx, identity); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := s.Get(ctx, identity); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("Get(deleted) error = %v, want ErrNotFound", err)
	}
}

func TestMemory_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s := NewPolicyStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("p%d", n)
			_ = s.Upsert(ctx, id, core.NewPolicy(id, "x"))
		}(i)
		go func(n int) {
			defer wg.Done()
			_, _ = s.Get(ctx, fmt.Sprintf("p%d", n))
		}(i)
	}
	wg.Wait()

	for i := 0; i < 50; i++ {
		if _, err := s.Get(ctx, fmt.Sprintf("p%d", i)); err != nil {
			t.Errorf("Get(p%d) after concurrent writes: %v", i, err)
		}
	}
}
