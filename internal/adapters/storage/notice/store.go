package notice

import (
	"context"
	"errors"

	domain "cafepc/internal/domain/notice"
)

// Store errors
var ErrNotFound = errors.New("notice not found")

// Store persists Notice state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Notice, error)
	Save(ctx context.Context, n domain.Notice) error
	Delete(ctx context.Context, id string) error
	// List returns notices newest-first, optionally by status.
	List(ctx context.Context, filter ListFilter) ([]domain.Notice, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Status string // empty = all
}
