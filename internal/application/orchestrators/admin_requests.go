package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	emailAdapter "cafepc/internal/adapters/email"
	adminStore "cafepc/internal/adapters/storage/adminaccount"
	"cafepc/internal/domain/adminaccount"
	"cafepc/internal/domain/audit"
)

// AdminStoreForRequests defines the store interface needed by the
// admin request orchestrators.
type AdminStoreForRequests interface {
	GetByID(ctx context.Context, id string) (adminaccount.Account, error)
	Create(ctx context.Context, a adminaccount.Account) error
	Save(ctx context.Context, a adminaccount.Account) error
	Delete(ctx context.Context, id string) error
}

// RequestAdminInput carries input for a new admin access request.
type RequestAdminInput struct {
	ID       string
	Password string
	Name     string
}

// AdminRequestDeps holds dependencies for the admin request orchestrators.
type AdminRequestDeps struct {
	AdminStore    AdminStoreForRequests
	AuditLog      AuditLog
	Notifier      emailAdapter.Sender // optional
	OperatorEmail string
	Now           func() time.Time
}

var ErrAdminIDTaken = errors.New("admin ID is already taken")

// ExecuteRequestAdmin files a pending request for admin access.
// PRE: ID and name are non-empty; password meets the admin minimum
// POST: Request stored with Status=pending
// INVARIANT: An ID is never both a pending request and an approved admin
func ExecuteRequestAdmin(ctx context.Context, input RequestAdminInput, deps AdminRequestDeps) (adminaccount.Account, error) {
	a := adminaccount.Account{
		ID:        input.ID,
		Name:      input.Name,
		Status:    adminaccount.StatusPending,
		CreatedAt: deps.Now(),
	}
	if err := a.Validate(); err != nil {
		return adminaccount.Account{}, err
	}
	if err := a.SetPassword(input.Password); err != nil {
		return adminaccount.Account{}, err
	}

	if err := deps.AdminStore.Create(ctx, a); err != nil {
		if errors.Is(err, adminStore.ErrDuplicate) {
			slog.Info("account_event", "event", "admin_request_rejected", "admin_id", input.ID, "reason", "duplicate")
			return adminaccount.Account{}, ErrAdminIDTaken
		}
		return adminaccount.Account{}, err
	}

	slog.Info("account_event", "event", "admin_requested", "admin_id", a.ID)
	recordAudit(ctx, deps.AuditLog, audit.CategoryAccount, audit.ActionSignup, a.ID, a.ID, "admin access requested")
	notifyOperator(ctx, deps.Notifier, deps.OperatorEmail,
		"Admin access request",
		fmt.Sprintf("<p><strong>%s</strong> (%s) requested admin access and is waiting for approval.</p>", a.Name, a.ID))

	return a, nil
}

// DecideAdminInput carries input for approving or rejecting a request.
type DecideAdminInput struct {
	ID      string
	AdminID string // admin performing the action
}

// ExecuteApproveAdmin promotes a pending request to an approved admin.
// PRE: Request exists and is pending
// POST: Status=approved; ID can now unlock the terminal
func ExecuteApproveAdmin(ctx context.Context, input DecideAdminInput, deps AdminRequestDeps) (adminaccount.Account, error) {
	acct, err := deps.AdminStore.GetByID(ctx, input.ID)
	if err != nil {
		return adminaccount.Account{}, err
	}

	if err := acct.Approve(); err != nil {
		return adminaccount.Account{}, err
	}

	if err := deps.AdminStore.Save(ctx, acct); err != nil {
		return adminaccount.Account{}, err
	}

	slog.Info("account_event", "event", "admin_approved", "admin_id", acct.ID, "approved_by", input.AdminID)
	recordAudit(ctx, deps.AuditLog, audit.CategoryAccount, audit.ActionApprove, input.AdminID, acct.ID, "admin request approved")
	return acct, nil
}

// ExecuteRejectAdmin removes a pending request entirely.
// PRE: Request exists and is pending
// POST: Record deleted; the ID becomes available again
func ExecuteRejectAdmin(ctx context.Context, input DecideAdminInput, deps AdminRequestDeps) error {
	acct, err := deps.AdminStore.GetByID(ctx, input.ID)
	if err != nil {
		return err
	}
	if acct.IsApproved() {
		return adminaccount.ErrAlreadyApproved
	}

	if err := deps.AdminStore.Delete(ctx, acct.ID); err != nil {
		return err
	}

	slog.Info("account_event", "event", "admin_rejected", "admin_id", acct.ID, "rejected_by", input.AdminID)
	recordAudit(ctx, deps.AuditLog, audit.CategoryAccount, audit.ActionReject, input.AdminID, acct.ID, "admin request rejected and deleted")
	return nil
}
