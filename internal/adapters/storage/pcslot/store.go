package pcslot

import (
	"context"

	domain "cafepc/internal/domain/pcslot"
)

// Store owns the fixed PC pool. Assign and Release are the only mutations
// and each is a single atomic check-and-set, so when two callers race for
// the same vacant PC exactly one wins.
type Store interface {
	Get(ctx context.Context, id int) (domain.Slot, error)
	// Assign marks a vacant slot occupied by username.
	// Fails with domain.ErrUnknownSlot or domain.ErrOccupied.
	Assign(ctx context.Context, id int, username string) error
	// Release frees the slot held by username. No-op success when the user
	// holds nothing.
	Release(ctx context.Context, username string) error
	// HeldBy returns the slot ID held by username, 0 if none.
	HeldBy(ctx context.Context, username string) (int, error)
	// List returns all slots ordered by ID ascending.
	List(ctx context.Context) ([]domain.Slot, error)
	// Restore overwrites a slot's state wholesale (snapshot loading only).
	Restore(ctx context.Context, s domain.Slot) error
}
