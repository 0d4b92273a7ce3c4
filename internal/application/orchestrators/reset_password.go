package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"cafepc/internal/domain/useraccount"
)

// UserStoreForReset defines the store interface needed by ResetPassword.
type UserStoreForReset interface {
	GetByUsername(ctx context.Context, username string) (useraccount.Account, error)
	Save(ctx context.Context, a useraccount.Account) error
}

// ResetPasswordInput carries input for the forgotten-password orchestrator.
type ResetPasswordInput struct {
	Username    string
	Phone       string
	NewPassword string
}

// ResetPasswordDeps holds dependencies for ResetPassword.
type ResetPasswordDeps struct {
	UserStore UserStoreForReset
}

// ErrPhoneMismatch covers both an unknown username and a wrong phone number,
// so the lock screen cannot be used to probe which usernames exist.
var ErrPhoneMismatch = errors.New("username and phone number do not match")

// ExecuteResetPassword sets a new password after verifying the customer's
// phone number. This is the kiosk's self-service recovery path; there is
// no email loop.
// PRE: Username exists and the phone number matches the record
// POST: PasswordHash replaced; nothing else changes
func ExecuteResetPassword(ctx context.Context, input ResetPasswordInput, deps ResetPasswordDeps) error {
	acct, err := deps.UserStore.GetByUsername(ctx, input.Username)
	if err != nil {
		slog.Info("auth_event", "event", "password_reset_failed", "username", input.Username, "reason", "not_found")
		return ErrPhoneMismatch
	}

	if acct.Phone != input.Phone {
		slog.Info("auth_event", "event", "password_reset_failed", "username", input.Username, "reason", "phone_mismatch")
		return ErrPhoneMismatch
	}

	if err := acct.SetPassword(input.NewPassword); err != nil {
		return err
	}

	if err := deps.UserStore.Save(ctx, acct); err != nil {
		return err
	}

	slog.Info("auth_event", "event", "password_reset", "username", acct.Username)
	return nil
}
