package audit

import (
	"context"
	"sync"

	domain "cafepc/internal/domain/audit"
)

// Store persists audit Events.
type Store interface {
	Append(ctx context.Context, e domain.Event) error
	// List returns events newest-first, at most limit (0 = all).
	List(ctx context.Context, limit int) ([]domain.Event, error)
}

// MemoryStore implements Store as an in-memory append-only log.
type MemoryStore struct {
	mu     sync.RWMutex
	events []domain.Event
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Append records one event.
// PRE: e has an ID and timestamp
// POST: Event is appended
func (s *MemoryStore) Append(_ context.Context, e domain.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return nil
}

// List returns events newest-first, at most limit (0 = all).
// POST: Returns a snapshot; later appends do not affect it
func (s *MemoryStore) List(_ context.Context, limit int) ([]domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := len(s.events)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]domain.Event, 0, n)
	for i := len(s.events) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.events[i])
	}
	return out, nil
}
