package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"cafepc/internal/domain/adminaccount"
)

// SeedAdminInput carries input for the bootstrap admin seed.
type SeedAdminInput struct {
	Password string
}

// SeedAdminDeps holds dependencies for SeedAdmin.
type SeedAdminDeps struct {
	AdminStore AdminStoreForRequests
	Now        func() time.Time
}

// ExecuteSeedAdmin creates the bootstrap admin if it does not exist yet.
// Safe to run on every start.
// POST: An approved admin with the bootstrap ID exists
// INVARIANT: An existing bootstrap account is never modified
func ExecuteSeedAdmin(ctx context.Context, input SeedAdminInput, deps SeedAdminDeps) error {
	if _, err := deps.AdminStore.GetByID(ctx, adminaccount.BootstrapID); err == nil {
		return nil
	}

	a := adminaccount.Account{
		ID:        adminaccount.BootstrapID,
		Name:      "Administrator",
		Status:    adminaccount.StatusApproved,
		CreatedAt: deps.Now(),
	}
	if err := a.SetPassword(input.Password); err != nil {
		return err
	}

	if err := deps.AdminStore.Create(ctx, a); err != nil {
		return err
	}

	slog.Info("account_event", "event", "admin_seeded", "admin_id", a.ID)
	return nil
}
