package pcslot

import "errors"

// Business rule constants
const (
	StatusVacant   = "vacant"
	StatusOccupied = "occupied"

	// PoolSize is the number of physical PCs in the cafe.
	PoolSize = 10
)

// Domain errors
var (
	ErrOccupied        = errors.New("PC is already occupied")
	ErrNotHeld         = errors.New("PC is not held by this user")
	ErrAlreadyAssigned = errors.New("user already holds a PC")
	ErrUnknownSlot     = errors.New("no such PC")
)

// Slot is one physical PC. HeldBy names the single holder while occupied
// and is empty while vacant; the holder's account records the mirror side
// of the reference.
type Slot struct {
	ID     int
	Status string // vacant, occupied
	HeldBy string
}

// IsVacant returns true if no one holds the PC.
// INVARIANT: Slot fields are not mutated
func (s *Slot) IsVacant() bool {
	return s.Status == StatusVacant
}

// Occupy assigns the PC to a user.
// PRE: Slot is vacant
// POST: Status is occupied, HeldBy set
func (s *Slot) Occupy(username string) error {
	if !s.IsVacant() {
		return ErrOccupied
	}
	s.Status = StatusOccupied
	s.HeldBy = username
	return nil
}

// Release returns the PC to the pool.
// PRE: Slot is held by username
// POST: Status is vacant, HeldBy cleared
func (s *Slot) Release(username string) error {
	if s.HeldBy != username {
		return ErrNotHeld
	}
	s.Status = StatusVacant
	s.HeldBy = ""
	return nil
}
