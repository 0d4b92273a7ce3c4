package orchestrators

import (
	"context"
	"fmt"
	"log/slog"

	emailAdapter "cafepc/internal/adapters/email"
	"cafepc/internal/domain/audit"
	"cafepc/internal/domain/useraccount"
)

// UserStoreForApproval defines the store interface needed by the
// customer approval orchestrators.
type UserStoreForApproval interface {
	GetByUsername(ctx context.Context, username string) (useraccount.Account, error)
	Save(ctx context.Context, a useraccount.Account) error
	Delete(ctx context.Context, username string) error
}

// ApproveUserInput carries input for the approval orchestrators.
type ApproveUserInput struct {
	Username string
	AdminID  string // admin performing the action
}

// ApproveUserDeps holds dependencies for ApproveUser and RejectUser.
type ApproveUserDeps struct {
	UserStore     UserStoreForApproval
	AuditLog      AuditLog
	Notifier      emailAdapter.Sender // optional
	OperatorEmail string
}

// ExecuteApproveUser transitions a pending customer to approved and grants
// the one-time welcome minutes.
// PRE: Account exists and is pending
// POST: Status=approved, TimeMinutes increased by the welcome grant
// INVARIANT: The grant is applied at most once per account
func ExecuteApproveUser(ctx context.Context, input ApproveUserInput, deps ApproveUserDeps) (useraccount.Account, error) {
	acct, err := deps.UserStore.GetByUsername(ctx, input.Username)
	if err != nil {
		return useraccount.Account{}, err
	}

	if err := acct.Approve(); err != nil {
		return useraccount.Account{}, err
	}

	if err := deps.UserStore.Save(ctx, acct); err != nil {
		return useraccount.Account{}, err
	}

	slog.Info("account_event", "event", "user_approved", "username", acct.Username, "admin_id", input.AdminID, "time_minutes", acct.TimeMinutes)
	recordAudit(ctx, deps.AuditLog, audit.CategoryAccount, audit.ActionApprove, input.AdminID, acct.Username,
		fmt.Sprintf("approved with %d welcome minutes", useraccount.ApprovalTimeGrant))

	return acct, nil
}

// ExecuteRejectUser removes a pending signup entirely. The username becomes
// available for registration again.
// PRE: Account exists
// POST: Record deleted
func ExecuteRejectUser(ctx context.Context, input ApproveUserInput, deps ApproveUserDeps) error {
	acct, err := deps.UserStore.GetByUsername(ctx, input.Username)
	if err != nil {
		return err
	}
	if acct.IsApproved() {
		return useraccount.ErrAlreadyApproved
	}

	if err := deps.UserStore.Delete(ctx, acct.Username); err != nil {
		return err
	}

	slog.Info("account_event", "event", "user_rejected", "username", acct.Username, "admin_id", input.AdminID)
	recordAudit(ctx, deps.AuditLog, audit.CategoryAccount, audit.ActionReject, input.AdminID, acct.Username, "signup rejected and deleted")
	return nil
}
