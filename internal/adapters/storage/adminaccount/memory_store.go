package adminaccount

import (
	"context"
	"sync"

	domain "cafepc/internal/domain/adminaccount"
)

// MemoryStore implements Store in process memory, insertion-ordered.
type MemoryStore struct {
	mu       sync.RWMutex
	accounts map[string]domain.Account
	order    []string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{accounts: make(map[string]domain.Account)}
}

// GetByID retrieves an admin Account by ID.
// PRE: id is non-empty
// POST: Returns the account or ErrNotFound
func (s *MemoryStore) GetByID(_ context.Context, id string) (domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[id]
	if !ok {
		return domain.Account{}, ErrNotFound
	}
	return a, nil
}

// Create inserts a new admin record, rejecting an ID already present in
// either set.
// PRE: a has been validated
// POST: Account is stored, or ErrDuplicate
func (s *MemoryStore) Create(_ context.Context, a domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[a.ID]; exists {
		return ErrDuplicate
	}
	s.accounts[a.ID] = a
	s.order = append(s.order, a.ID)
	return nil
}

// Save updates an existing admin record. Approval is a Save of the same
// record with its new status, so the move from pending to approved is a
// single replacement with no intermediate state visible.
// PRE: the record exists
// POST: Stored record replaced, or ErrNotFound
func (s *MemoryStore) Save(_ context.Context, a domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[a.ID]; !exists {
		return ErrNotFound
	}
	s.accounts[a.ID] = a
	return nil
}

// Delete removes an admin record (rejection of a pending request).
// PRE: id is non-empty
// POST: Record removed, or ErrNotFound
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[id]; !exists {
		return ErrNotFound
	}
	delete(s.accounts, id)
	for i, x := range s.order {
		if x == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns admin records in insertion order, optionally by status.
// POST: Returns a snapshot; later mutations do not affect it
func (s *MemoryStore) List(_ context.Context, filter ListFilter) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var results []domain.Account
	for _, id := range s.order {
		a := s.accounts[id]
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		results = append(results, a)
	}
	return results, nil
}
