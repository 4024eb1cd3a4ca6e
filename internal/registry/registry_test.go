package registry

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/darmiel/gatekey/internal/core"
)

type fakeValidator struct {
	generation int
}

func (f *fakeValidator) Validate(_ context.Context, _ core.ExternalToken) (core.ExternalIdentity, error) {
	return core.NewExternalIdentity("user", "provider"), nil
}

func validSettings() core.ProviderSettings {
	return core.ProviderSettings{
		UserIDClaim:  "sub",
		DiscoveryURL: "https://idp.example.com",
		Issuers:      []string{"https://idp.example.com"},
		Audiences:    []string{"gatekey"},
	}
}

func TestRegistry_GetUnknownProvider(t *testing.T) {
	r := New(func(_ context.Context, _ string, _ core.ProviderSettings) (core.IdentityValidator, error) {
		return &fakeValidator{}, nil
	})

	if _, err := r.Get("nonexistent"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestRegistry_PutThenGet(t *testing.T) {
	r := New(func(_ context.Context, _ string, _ core.ProviderSettings) (core.IdentityValidator, error) {
		return &fakeValidator{generation: 1}, nil
	})

	if err := r.Put(context.Background(), "acme", validSettings()); err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	v, err := r.Get("acme")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if v.(*fakeValidator).generation != 1 {
		t.Errorf("unexpected validator: %+v", v)
	}
}

func TestRegistry_LastSuccessfulPutWins(t *testing.T) {
	generation := 0
	r := New(func(_ context.Context, _ string, _ core.ProviderSettings) (core.IdentityValidator, error) {
		generation++
		return &fakeValidator{generation: generation}, nil
	})

	ctx := context.Background()
	if err := r.Put(ctx, "acme", validSettings()); err != nil {
		t.Fatalf("first Put() error: %v", err)
	}
	if err := r.Put(ctx, "acme", validSettings()); err != nil {
		t.Fatalf("second Put() error: %v", err)
	}

	v, _ := r.Get("acme")
	if v.(*fakeValidator).generation != 2 {
		t.Errorf("generation = %d, want 2", v.(*fakeValidator).generation)
	}
}

func TestRegistry_BuildFailureKeepsPrevious(t *testing.T) {
	fail := false
	r := New(func(_ context.Context, _ string, _ core.ProviderSettings) (core.IdentityValidator, error) {
		if fail {
			return nil, fmt.Errorf("discovery unreachable")
		}
		return &fakeValidator{generation: 1}, nil
	})

	ctx := context.Background()
	if err := r.Put(ctx, "acme", validSettings()); err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	fail = true
	err := r.Put(ctx, "acme", validSettings())
	if err == nil {
		t.Fatal("Put() expected error, got nil")
	}
	var cfgErr *core.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Errorf("Put() error type = %T, want *core.ConfigError", err)
	}

	// the previous validator stays installed
	v, getErr := r.Get("acme")
	if getErr != nil {
		t.Fatalf("Get() after failed Put: %v", getErr)
	}
	if v.(*fakeValidator).generation != 1 {
		t.Errorf("generation = %d, want 1", v.(*fakeValidator).generation)
	}
}

func TestRegistry_PutRejectsInvalidSettings(t *testing.T) {
	built := false
	r := New(func(_ context.Context, _ string, _ core.ProviderSettings) (core.IdentityValidator, error) {
		built = true
		return &fakeValidator{}, nil
	})

	err := r.Put(context.Background(), "acme", core.ProviderSettings{})
	if err == nil {
		t.Fatal("Put() expected error for empty settings")
	}
	if built {
		t.Error("build func ran despite invalid settings")
	}
}

func TestRegistry_ConcurrentReadersAndWriters(t *testing.T) {
	r := New(func(_ context.Context, _ string, _ core.ProviderSettings) (core.IdentityValidator, error) {
		return &fakeValidator{}, nil
	})

	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = r.Put(ctx, fmt.Sprintf("provider-%d", n), validSettings())
		}(i)
		go func(n int) {
			defer wg.Done()
			_, _ = r.Get(fmt.Sprintf("provider-%d", n))
		}(i)
	}
	wg.Wait()

	if got := len(r.Providers()); got != 20 {
		t.Errorf("Providers() length = %d, want 20", got)
	}
}
