package orchestrators

import (
	"context"
	"fmt"
	"log/slog"

	"cafepc/internal/domain/audit"
	"cafepc/internal/domain/pcslot"
	"cafepc/internal/domain/useraccount"
)

// SlotStoreForAssignment defines the pool interface needed by the
// slot orchestrators.
type SlotStoreForAssignment interface {
	Assign(ctx context.Context, id int, username string) error
	Release(ctx context.Context, username string) error
}

// UserStoreForSlots defines the account interface needed by the
// slot orchestrators.
type UserStoreForSlots interface {
	GetByUsername(ctx context.Context, username string) (useraccount.Account, error)
	Save(ctx context.Context, a useraccount.Account) error
}

// AssignSlotInput carries input for the slot assignment orchestrator.
type AssignSlotInput struct {
	Username string
	SlotID   int
}

// SlotDeps holds dependencies for AssignSlot and ReleaseSlot.
type SlotDeps struct {
	SlotStore SlotStoreForAssignment
	UserStore UserStoreForSlots
	AuditLog  AuditLog
}

// ExecuteAssignSlot gives a customer exclusive hold of one PC.
// The pool is reserved first (atomic check-and-set), then the account's
// cross-reference is written; a failing account write rolls the pool back
// so the two sides never disagree.
// PRE: Customer is approved and holds no PC; slot is vacant
// POST: Slot occupied by the customer and Account.Slot set, or no change
// INVARIANT: A customer holds at most one PC; a PC is held by at most one customer
func ExecuteAssignSlot(ctx context.Context, input AssignSlotInput, deps SlotDeps) error {
	acct, err := deps.UserStore.GetByUsername(ctx, input.Username)
	if err != nil {
		return err
	}
	if !acct.IsApproved() {
		return useraccount.ErrNotApproved
	}
	if acct.HoldsSlot() {
		return pcslot.ErrAlreadyAssigned
	}

	if err := deps.SlotStore.Assign(ctx, input.SlotID, acct.Username); err != nil {
		slog.Info("cafe_event", "event", "slot_assign_failed", "username", acct.Username, "slot", input.SlotID, "error", err)
		return err
	}

	acct.Slot = input.SlotID
	if err := deps.UserStore.Save(ctx, acct); err != nil {
		// Roll the reservation back rather than leave a slot held by an
		// account that does not reference it.
		if rbErr := deps.SlotStore.Release(ctx, acct.Username); rbErr != nil {
			slog.Error("cafe_event", "event", "slot_rollback_failed", "username", acct.Username, "slot", input.SlotID, "error", rbErr)
		}
		return err
	}

	slog.Info("cafe_event", "event", "slot_assigned", "username", acct.Username, "slot", input.SlotID)
	recordAudit(ctx, deps.AuditLog, audit.CategoryCafe, audit.ActionAssign, acct.Username, fmt.Sprintf("pc-%d", input.SlotID), "PC assigned")
	return nil
}

// ReleaseSlotInput carries input for the slot release orchestrator.
type ReleaseSlotInput struct {
	Username string
}

// ExecuteReleaseSlot frees whatever PC the customer holds. Releasing when
// nothing is held succeeds without change.
// POST: The customer holds no PC and no slot references them
func ExecuteReleaseSlot(ctx context.Context, input ReleaseSlotInput, deps SlotDeps) error {
	acct, err := deps.UserStore.GetByUsername(ctx, input.Username)
	if err != nil {
		return err
	}

	held := acct.Slot
	if err := deps.SlotStore.Release(ctx, acct.Username); err != nil {
		return err
	}

	if acct.HoldsSlot() {
		acct.Slot = 0
		if err := deps.UserStore.Save(ctx, acct); err != nil {
			return err
		}
		slog.Info("cafe_event", "event", "slot_released", "username", acct.Username, "slot", held)
		recordAudit(ctx, deps.AuditLog, audit.CategoryCafe, audit.ActionRelease, acct.Username, fmt.Sprintf("pc-%d", held), "PC released")
	}
	return nil
}
