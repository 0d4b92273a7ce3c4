package orchestrators

import (
	"context"
	"log/slog"
	"strings"

	"cafepc/internal/domain/useraccount"
)

// UpdatePhoneInput carries input for the phone update orchestrator.
type UpdatePhoneInput struct {
	Username string
	Phone    string
}

// UpdatePhoneDeps holds dependencies for UpdatePhone.
type UpdatePhoneDeps struct {
	UserStore UserStoreForReset
}

// ExecuteUpdatePhone replaces the customer's contact number.
// PRE: Account exists; new phone is non-empty
// POST: Phone replaced; nothing else changes
func ExecuteUpdatePhone(ctx context.Context, input UpdatePhoneInput, deps UpdatePhoneDeps) error {
	if strings.TrimSpace(input.Phone) == "" {
		return useraccount.ErrEmptyPhone
	}

	acct, err := deps.UserStore.GetByUsername(ctx, input.Username)
	if err != nil {
		return err
	}

	acct.Phone = input.Phone
	if err := deps.UserStore.Save(ctx, acct); err != nil {
		return err
	}

	slog.Info("account_event", "event", "phone_updated", "username", acct.Username)
	return nil
}
