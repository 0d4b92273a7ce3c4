package notice

import (
	"context"
	"sort"
	"sync"

	domain "cafepc/internal/domain/notice"
)

// MemoryStore implements Store in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	notices map[string]domain.Notice
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{notices: make(map[string]domain.Notice)}
}

// GetByID retrieves a Notice by ID.
// PRE: id is non-empty
// POST: Returns the notice or ErrNotFound
func (s *MemoryStore) GetByID(_ context.Context, id string) (domain.Notice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.notices[id]
	if !ok {
		return domain.Notice{}, ErrNotFound
	}
	return n, nil
}

// Save inserts or replaces a Notice.
// PRE: n has been validated
// POST: Notice is stored
func (s *MemoryStore) Save(_ context.Context, n domain.Notice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notices[n.ID] = n
	return nil
}

// Delete removes a Notice.
// PRE: id is non-empty
// POST: Notice removed, or ErrNotFound
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.notices[id]; !ok {
		return ErrNotFound
	}
	delete(s.notices, id)
	return nil
}

// List returns notices newest-first, optionally filtered by status.
// POST: Returns a snapshot; later mutations do not affect it
func (s *MemoryStore) List(_ context.Context, filter ListFilter) ([]domain.Notice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var results []domain.Notice
	for _, n := range s.notices {
		if filter.Status != "" && n.Status != filter.Status {
			continue
		}
		results = append(results, n)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})
	return results, nil
}
