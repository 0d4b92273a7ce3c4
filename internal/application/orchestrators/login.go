package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"cafepc/internal/domain/audit"
	"cafepc/internal/domain/useraccount"
)

// UserStoreForLogin defines the store interface needed by Login.
type UserStoreForLogin interface {
	GetByUsername(ctx context.Context, username string) (useraccount.Account, error)
	Save(ctx context.Context, a useraccount.Account) error
}

// LoginInput carries input for the login orchestrator.
type LoginInput struct {
	Username string
	Password string
}

// LoginResult carries the result of a successful login.
type LoginResult struct {
	Username    string
	TimeMinutes int
	Points      int
	Streak      int
	Slot        int
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	UserStore UserStoreForLogin
	AuditLog  AuditLog
	Now       func() time.Time
}

// ExecuteLogin validates customer credentials and stamps the visit.
// An absent account and a wrong password are reported as distinct errors:
// the account's existence is not a secret on a kiosk whose signup screen
// already rejects taken usernames.
// PRE: Valid username and password provided
// POST: LastLogin and streak updated on success; no state change on failure
// INVARIANT: Account must be approved
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (LoginResult, error) {
	if input.Username == "" {
		return LoginResult{}, useraccount.ErrEmptyUsername
	}
	if input.Password == "" {
		return LoginResult{}, useraccount.ErrEmptyPassword
	}

	acct, err := deps.UserStore.GetByUsername(ctx, input.Username)
	if err != nil {
		slog.Info("auth_event", "event", "login_failed", "username", input.Username, "reason", "not_found")
		return LoginResult{}, err
	}

	if err := acct.CheckPassword(input.Password); err != nil {
		slog.Info("auth_event", "event", "login_failed", "username", input.Username, "reason", "wrong_password")
		return LoginResult{}, err
	}

	// Password is checked before the approval gate so a pending customer
	// who typo'd their password still sees the credential error.
	if !acct.IsApproved() {
		slog.Info("auth_event", "event", "login_blocked", "username", input.Username, "reason", "pending_approval")
		return LoginResult{}, useraccount.ErrNotApproved
	}

	acct.RecordLogin(deps.Now())
	if err := deps.UserStore.Save(ctx, acct); err != nil {
		return LoginResult{}, err
	}

	slog.Info("auth_event", "event", "login_success", "username", acct.Username, "streak", acct.Streak)
	recordAudit(ctx, deps.AuditLog, audit.CategorySecurity, audit.ActionLogin, acct.Username, acct.Username, "customer login")

	return LoginResult{
		Username:    acct.Username,
		TimeMinutes: acct.TimeMinutes,
		Points:      acct.Points,
		Streak:      acct.Streak,
		Slot:        acct.Slot,
	}, nil
}
