package adminaccount

import (
	"context"
	"errors"

	domain "cafepc/internal/domain/adminaccount"
)

// Store errors
var (
	ErrNotFound  = errors.New("admin account not found")
	ErrDuplicate = errors.New("admin ID already exists")
)

// Store persists admin Account state. A single record per ID covers both
// the pending and approved sets; Status tells them apart, so an ID can
// never be in both at once.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Account, error)
	// Create inserts a new admin record; ErrDuplicate if the ID exists in
	// either the pending or the approved set.
	Create(ctx context.Context, a domain.Account) error
	Save(ctx context.Context, a domain.Account) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.Account, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Status string // empty = all
}
