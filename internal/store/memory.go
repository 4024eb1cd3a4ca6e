package store

import (
	"context"
	"sync"

	"github.com/darmiel/gatekey/internal/core"
)

// Memory is an in-memory core.Repository. Reads take the shared section,
// mutations the exclusive one; each operation is a single map access so
// no partial-failure state is possible.
type Memory[K comparable, E any] struct {
	mu    sync.RWMutex
	items map[K]E

	// merge, if set, combines an existing entity with the incoming one
	// on Upsert instead of replacing it.
	merge func(existing, incoming E) E
}

func NewMemory[K comparable, E any]() *Memory[K, E] {
	return &Memory[K, E]{
		items: make(map[K]E),
	}
}

// NewMergingMemory returns a Memory whose Upsert folds the incoming
// entity into an existing one via merge. Used for additive stores such
// as policy attachments.
func NewMergingMemory[K comparable, E any](merge func(existing, incoming E) E) *Memory[K, E] {
	return &Memory[K, E]{
		items: make(map[K]E),
		merge: merge,
	}
}

func (m *Memory[K, E]) Get(_ context.Context, key K) (E, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entity, ok := m.items[key]
	if !ok {
		var zero E
		return zero, core.ErrNotFound
	}
	return entity, nil
}

func (m *Memory[K, E]) Upsert(_ context.Context, key K, entity E) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.merge != nil {
		if existing, ok := m.items[key]; ok {
			m.items[key] = m.merge(existing, entity)
			return nil
		}
	}
	m.items[key] = entity
	return nil
}

func (m *Memory[K, E]) Delete(_ context.Context, key K) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.items, key)
	return nil
}

var _ core.Repository[string, core.Policy] = (*Memory[string, core.Policy])(nil)
