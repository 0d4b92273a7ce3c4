package useraccount

import (
	"context"
	"errors"

	domain "cafepc/internal/domain/useraccount"
)

// Store errors
var (
	ErrNotFound  = errors.New("user account not found")
	ErrDuplicate = errors.New("username already exists")
)

// Store persists customer Account state.
type Store interface {
	GetByUsername(ctx context.Context, username string) (domain.Account, error)
	// Create inserts a new account; fails with ErrDuplicate if the username
	// is already present, pending or approved.
	Create(ctx context.Context, a domain.Account) error
	// Save updates an existing account.
	Save(ctx context.Context, a domain.Account) error
	Delete(ctx context.Context, username string) error
	// List returns accounts in insertion order, optionally filtered.
	List(ctx context.Context, filter ListFilter) ([]domain.Account, error)
	Count(ctx context.Context) (int, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Status string // empty = all
}
