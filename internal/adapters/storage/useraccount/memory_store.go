package useraccount

import (
	"context"
	"sync"

	domain "cafepc/internal/domain/useraccount"
)

// MemoryStore implements Store in process memory. The reference system is
// memory-only; durable copies go through the snapshot adapter instead.
// Insertion order is preserved for listings.
type MemoryStore struct {
	mu       sync.RWMutex
	accounts map[string]domain.Account
	order    []string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{accounts: make(map[string]domain.Account)}
}

// GetByUsername retrieves an Account by username.
// PRE: username is non-empty
// POST: Returns the account or ErrNotFound
func (s *MemoryStore) GetByUsername(_ context.Context, username string) (domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[username]
	if !ok {
		return domain.Account{}, ErrNotFound
	}
	return a, nil
}

// Create inserts a new account, rejecting duplicates. The check and insert
// happen under one lock so racing registrations cannot both win.
// PRE: a has been validated
// POST: Account is stored, or ErrDuplicate
func (s *MemoryStore) Create(_ context.Context, a domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[a.Username]; exists {
		return ErrDuplicate
	}
	s.accounts[a.Username] = a
	s.order = append(s.order, a.Username)
	return nil
}

// Save updates an existing account.
// PRE: the account exists
// POST: Stored account replaced, or ErrNotFound
func (s *MemoryStore) Save(_ context.Context, a domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[a.Username]; !exists {
		return ErrNotFound
	}
	s.accounts[a.Username] = a
	return nil
}

// Delete removes an account. Rejection of a pending signup is a delete.
// PRE: username is non-empty
// POST: Account removed, or ErrNotFound
func (s *MemoryStore) Delete(_ context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[username]; !exists {
		return ErrNotFound
	}
	delete(s.accounts, username)
	for i, u := range s.order {
		if u == username {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns accounts in insertion order, optionally filtered by status.
// POST: Returns a snapshot; later mutations do not affect it
func (s *MemoryStore) List(_ context.Context, filter ListFilter) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var results []domain.Account
	for _, u := range s.order {
		a := s.accounts[u]
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		results = append(results, a)
	}
	return results, nil
}

// Count returns the total number of accounts.
func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accounts), nil
}
