package convention

import (
	"context"
	"sort"
	"sync"
)

// Store serves the active convention set for a repository. Implementations
// must return an empty slice, not an error, for an unseeded repository.
type Store interface {
	GetAllConventions(ctx context.Context, repositoryID string) ([]Convention, error)
}

// MemoryStore is an in-memory Store, used for seeding and tests.
type MemoryStore struct {
	mu     sync.RWMutex
	byRepo map[string][]Convention
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byRepo: make(map[string][]Convention)}
}

// Put adds a convention to the repository's active set.
func (s *MemoryStore) Put(repositoryID string, c Convention) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byRepo[repositoryID] = append(s.byRepo[repositoryID], c)
}

// GetAllConventions returns a copy of the repository's conventions,
// ordered by ID for determinism.
func (s *MemoryStore) GetAllConventions(_ context.Context, repositoryID string) ([]Convention, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	src := s.byRepo[repositoryID]
	out := make([]Convention, len(src))
	copy(out, src)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
