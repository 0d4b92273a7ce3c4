package orchestrators

import (
	"context"
	"errors"
	"testing"

	"cafepc/internal/domain/useraccount"
)

func TestExecuteResetPassword_Success(t *testing.T) {
	store := newMockUserStore()
	store.accounts["alice"] = approvedUser(t, "alice", "oldpass")

	err := ExecuteResetPassword(context.Background(), ResetPasswordInput{
		Username:    "alice",
		Phone:       "021555001",
		NewPassword: "newpass",
	}, ResetPasswordDeps{UserStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	saved := store.accounts["alice"]
	if err := saved.CheckPassword("newpass"); err != nil {
		t.Error("expected new password to verify")
	}
	if err := saved.CheckPassword("oldpass"); err == nil {
		t.Error("expected old password to stop working")
	}
}

func TestExecuteResetPassword_PhoneMismatch(t *testing.T) {
	store := newMockUserStore()
	store.accounts["alice"] = approvedUser(t, "alice", "oldpass")

	err := ExecuteResetPassword(context.Background(), ResetPasswordInput{
		Username:    "alice",
		Phone:       "000000000",
		NewPassword: "newpass",
	}, ResetPasswordDeps{UserStore: store})
	if !errors.Is(err, ErrPhoneMismatch) {
		t.Errorf("expected ErrPhoneMismatch, got %v", err)
	}
	saved := store.accounts["alice"]
	if err := saved.CheckPassword("oldpass"); err != nil {
		t.Error("expected password unchanged on mismatch")
	}
}

func TestExecuteResetPassword_UnknownUsernameSameError(t *testing.T) {
	store := newMockUserStore()
	err := ExecuteResetPassword(context.Background(), ResetPasswordInput{
		Username:    "ghost",
		Phone:       "021555001",
		NewPassword: "newpass",
	}, ResetPasswordDeps{UserStore: store})
	if !errors.Is(err, ErrPhoneMismatch) {
		t.Errorf("expected ErrPhoneMismatch for unknown user, got %v", err)
	}
}

func TestExecuteResetPassword_ShortNewPassword(t *testing.T) {
	store := newMockUserStore()
	store.accounts["alice"] = approvedUser(t, "alice", "oldpass")

	err := ExecuteResetPassword(context.Background(), ResetPasswordInput{
		Username:    "alice",
		Phone:       "021555001",
		NewPassword: "abc",
	}, ResetPasswordDeps{UserStore: store})
	if !errors.Is(err, useraccount.ErrPasswordTooShort) {
		t.Errorf("expected ErrPasswordTooShort, got %v", err)
	}
}

func TestExecuteUpdatePhone(t *testing.T) {
	store := newMockUserStore()
	store.accounts["alice"] = approvedUser(t, "alice", "pass1234")

	err := ExecuteUpdatePhone(context.Background(), UpdatePhoneInput{
		Username: "alice",
		Phone:    "022999888",
	}, UpdatePhoneDeps{UserStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.accounts["alice"].Phone != "022999888" {
		t.Errorf("expected phone updated, got %s", store.accounts["alice"].Phone)
	}
}

func TestExecuteUpdatePhone_Empty(t *testing.T) {
	store := newMockUserStore()
	store.accounts["alice"] = approvedUser(t, "alice", "pass1234")

	err := ExecuteUpdatePhone(context.Background(), UpdatePhoneInput{Username: "alice", Phone: "  "},
		UpdatePhoneDeps{UserStore: store})
	if !errors.Is(err, useraccount.ErrEmptyPhone) {
		t.Errorf("expected ErrEmptyPhone, got %v", err)
	}
}
