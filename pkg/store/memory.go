package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/matzehuels/layerflow/pkg/ir"
)

// MemoryStore is an in-process Store, useful for tests and short-lived
// CLI invocations where durability across restarts is not needed.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewMemoryStore returns an empty in-memory Store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]Entry)}
}

func (s *MemoryStore) Save(ctx context.Context, name string, g ir.Graph[int]) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	existing, ok := s.entries[name]
	createdAt := now
	if ok {
		createdAt = existing.CreatedAt
	}
	s.entries[name] = Entry{Name: name, Graph: g, CreatedAt: createdAt, UpdatedAt: now}
	return nil
}

func (s *MemoryStore) Load(ctx context.Context, name string) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[name]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return e, nil
}

func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return s.entries[names[i]].UpdatedAt.After(s.entries[names[j]].UpdatedAt)
	})
	return names, nil
}

func (s *MemoryStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, name)
	return nil
}

func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
