package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"cafepc/internal/domain/adminaccount"
	"cafepc/internal/domain/audit"
)

// AdminStoreForUnlock defines the store interface needed by AdminUnlock.
type AdminStoreForUnlock interface {
	GetByID(ctx context.Context, id string) (adminaccount.Account, error)
}

// AdminUnlockInput carries input for the admin unlock orchestrator.
type AdminUnlockInput struct {
	ID       string
	Password string
}

// AdminUnlockDeps holds dependencies for AdminUnlock.
type AdminUnlockDeps struct {
	AdminStore AdminStoreForUnlock
	AuditLog   AuditLog
}

var (
	ErrAdminNotFound      = errors.New("no admin account with that ID")
	ErrAdminWrongPassword = errors.New("incorrect admin password")
)

// ExecuteAdminUnlock verifies admin credentials for a terminal unlock.
// Failures are distinguishable so the lock screen can tell the admin
// which of the three things went wrong.
// PRE: ID and password provided
// POST: No state change; returns the verified admin on success
// INVARIANT: Only approved admins can unlock
func ExecuteAdminUnlock(ctx context.Context, input AdminUnlockInput, deps AdminUnlockDeps) (adminaccount.Account, error) {
	if input.ID == "" || input.Password == "" {
		return adminaccount.Account{}, ErrAdminWrongPassword
	}

	acct, err := deps.AdminStore.GetByID(ctx, input.ID)
	if err != nil {
		slog.Info("auth_event", "event", "admin_unlock_failed", "admin_id", input.ID, "reason", "not_found")
		return adminaccount.Account{}, ErrAdminNotFound
	}

	if err := acct.CheckPassword(input.Password); err != nil {
		slog.Info("auth_event", "event", "admin_unlock_failed", "admin_id", input.ID, "reason", "wrong_password")
		return adminaccount.Account{}, ErrAdminWrongPassword
	}

	if !acct.IsApproved() {
		slog.Info("auth_event", "event", "admin_unlock_blocked", "admin_id", input.ID, "reason", "pending_approval")
		return adminaccount.Account{}, adminaccount.ErrNotApproved
	}

	slog.Info("auth_event", "event", "admin_unlock", "admin_id", acct.ID)
	recordAudit(ctx, deps.AuditLog, audit.CategorySecurity, audit.ActionUnlock, acct.ID, "terminal", "admin unlocked the terminal")

	return acct, nil
}
