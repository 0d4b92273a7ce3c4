package pcslot

import (
	"context"
	"sync"

	domain "cafepc/internal/domain/pcslot"
)

// MemoryStore implements Store over a fixed pool of PCs numbered 1..size.
type MemoryStore struct {
	mu    sync.RWMutex
	slots []domain.Slot // index i holds slot ID i+1
}

// NewMemoryStore creates a pool of size vacant PCs.
func NewMemoryStore(size int) *MemoryStore {
	s := &MemoryStore{slots: make([]domain.Slot, size)}
	for i := range s.slots {
		s.slots[i] = domain.Slot{ID: i + 1, Status: domain.StatusVacant}
	}
	return s
}

// Get retrieves one slot by ID.
// PRE: none
// POST: Returns the slot or domain.ErrUnknownSlot
func (s *MemoryStore) Get(_ context.Context, id int) (domain.Slot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id < 1 || id > len(s.slots) {
		return domain.Slot{}, domain.ErrUnknownSlot
	}
	return s.slots[id-1], nil
}

// Assign marks a vacant slot occupied. Check and set happen under one lock;
// of two racing callers exactly one succeeds.
// PRE: username is non-empty
// POST: Slot occupied by username, or domain.ErrOccupied/ErrUnknownSlot
func (s *MemoryStore) Assign(_ context.Context, id int, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id < 1 || id > len(s.slots) {
		return domain.ErrUnknownSlot
	}
	return s.slots[id-1].Occupy(username)
}

// Release frees whatever slot username holds. Idempotent: releasing with no
// slot held succeeds without effect.
// POST: No slot is held by username
func (s *MemoryStore) Release(_ context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.slots {
		if s.slots[i].HeldBy == username {
			return s.slots[i].Release(username)
		}
	}
	return nil
}

// HeldBy returns the slot ID held by username, 0 if none.
func (s *MemoryStore) HeldBy(_ context.Context, username string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.slots {
		if s.slots[i].HeldBy == username {
			return s.slots[i].ID, nil
		}
	}
	return 0, nil
}

// List returns all slots ordered by ID ascending.
// POST: Returns a snapshot; later mutations do not affect it
func (s *MemoryStore) List(_ context.Context) ([]domain.Slot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Slot, len(s.slots))
	copy(out, s.slots)
	return out, nil
}

// Restore overwrites one slot's state. Used only when loading a snapshot.
// PRE: s.ID is within the pool
// POST: Slot replaced, or domain.ErrUnknownSlot
func (s *MemoryStore) Restore(_ context.Context, slot domain.Slot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if slot.ID < 1 || slot.ID > len(s.slots) {
		return domain.ErrUnknownSlot
	}
	s.slots[slot.ID-1] = slot
	return nil
}
