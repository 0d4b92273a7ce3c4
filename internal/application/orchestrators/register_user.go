package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	emailAdapter "cafepc/internal/adapters/email"
	userStore "cafepc/internal/adapters/storage/useraccount"
	"cafepc/internal/domain/audit"
	"cafepc/internal/domain/useraccount"
)

// UserStoreForRegister defines the store interface needed by RegisterUser.
type UserStoreForRegister interface {
	Create(ctx context.Context, a useraccount.Account) error
}

// RegisterUserInput carries input for the registration orchestrator.
type RegisterUserInput struct {
	Username string
	Password string
	Phone    string
}

// RegisterUserDeps holds dependencies for RegisterUser.
type RegisterUserDeps struct {
	UserStore UserStoreForRegister
	AuditLog  AuditLog
	Notifier  emailAdapter.Sender // optional
	// OperatorEmail receives a heads-up when a signup needs approval.
	OperatorEmail string
	Now           func() time.Time
}

var ErrUsernameTaken = errors.New("username is already taken")

// ExecuteRegisterUser creates a pending customer account.
// PRE: Username and phone are non-empty; password meets the minimum length
// POST: Account stored with Status=pending, zero balances, no slot
// INVARIANT: Username is unique across pending and approved accounts
func ExecuteRegisterUser(ctx context.Context, input RegisterUserInput, deps RegisterUserDeps) (useraccount.Account, error) {
	a := useraccount.Account{
		Username:  input.Username,
		Phone:     input.Phone,
		Status:    useraccount.StatusPending,
		CreatedAt: deps.Now(),
	}
	if err := a.Validate(); err != nil {
		return useraccount.Account{}, err
	}
	if err := a.SetPassword(input.Password); err != nil {
		return useraccount.Account{}, err
	}

	if err := deps.UserStore.Create(ctx, a); err != nil {
		if errors.Is(err, userStore.ErrDuplicate) {
			slog.Info("account_event", "event", "signup_rejected", "username", input.Username, "reason", "duplicate")
			return useraccount.Account{}, ErrUsernameTaken
		}
		return useraccount.Account{}, err
	}

	slog.Info("account_event", "event", "signup", "username", a.Username)
	recordAudit(ctx, deps.AuditLog, audit.CategoryAccount, audit.ActionSignup, a.Username, a.Username, "customer signup, awaiting approval")
	notifyOperator(ctx, deps.Notifier, deps.OperatorEmail,
		"New signup awaiting approval",
		fmt.Sprintf("<p>Customer <strong>%s</strong> (phone %s) signed up and is waiting for approval.</p>", a.Username, a.Phone))

	return a, nil
}

// notifyOperator sends a best-effort notification to the cafe operator.
// Delivery failures are logged, never surfaced to the caller.
func notifyOperator(ctx context.Context, sender emailAdapter.Sender, to, subject, html string) {
	if sender == nil || to == "" {
		return
	}
	if _, err := sender.Send(ctx, emailAdapter.SendRequest{
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	}); err != nil {
		slog.Warn("operator_notify_failed", "error", err, "subject", subject)
	}
}
