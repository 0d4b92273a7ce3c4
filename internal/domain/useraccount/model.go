package useraccount

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Business rule constants
const (
	StatusPending  = "pending"
	StatusApproved = "approved"

	// MinPasswordLength is the minimum plaintext password length for customers.
	MinPasswordLength = 4

	// ApprovalTimeGrant is the one-time minute balance granted on approval.
	ApprovalTimeGrant = 100
)

// Domain errors
var (
	ErrEmptyUsername    = errors.New("username cannot be empty")
	ErrEmptyPhone       = errors.New("phone number cannot be empty")
	ErrEmptyPassword    = errors.New("password cannot be empty")
	ErrPasswordTooShort = errors.New("password must be at least 4 characters")
	ErrWrongPassword    = errors.New("incorrect password")
	ErrNotApproved      = errors.New("account is pending admin approval")
	ErrAlreadyApproved  = errors.New("account is already approved")
)

// Account holds state for one customer of the cafe.
// Username is the identity key and never changes after registration.
// Slot is the ID of the PC the customer currently holds, 0 when none;
// the slot pool records the mirror side of that reference.
type Account struct {
	Username     string
	PasswordHash string
	Phone        string
	Status       string // pending, approved
	TimeMinutes  int
	Points       int
	Streak       int
	Slot         int // 0 = no PC held
	LastLogin    time.Time
	CreatedAt    time.Time
}

// Validate checks if the Account has valid data.
// PRE: Account struct is populated
// POST: Returns nil if valid, error otherwise
func (a *Account) Validate() error {
	if strings.TrimSpace(a.Username) == "" {
		return ErrEmptyUsername
	}
	if strings.TrimSpace(a.Phone) == "" {
		return ErrEmptyPhone
	}
	if a.Status != StatusPending && a.Status != StatusApproved {
		return errors.New("status must be 'pending' or 'approved'")
	}
	if a.Points < 0 {
		return errors.New("points cannot be negative")
	}
	if a.Streak < 0 {
		return errors.New("streak cannot be negative")
	}
	return nil
}

// SetPassword hashes and stores a password using bcrypt.
// PRE: plaintext is non-empty and >= 4 characters
// POST: PasswordHash is set to bcrypt hash
func (a *Account) SetPassword(plaintext string) error {
	if plaintext == "" {
		return ErrEmptyPassword
	}
	if len(plaintext) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash.
// PRE: PasswordHash is set
// INVARIANT: Account fields are not mutated
func (a *Account) CheckPassword(plaintext string) error {
	if a.PasswordHash == "" {
		return ErrWrongPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(plaintext)); err != nil {
		return ErrWrongPassword
	}
	return nil
}

// IsApproved returns true if the account has been approved by an admin.
// INVARIANT: Account fields are not mutated
func (a *Account) IsApproved() bool {
	return a.Status == StatusApproved
}

// Approve transitions the account from pending to approved and grants the
// one-time minute balance. Re-approving is rejected so the grant can never
// be applied twice.
// PRE: Account is pending
// POST: Status is approved, TimeMinutes increased by ApprovalTimeGrant
func (a *Account) Approve() error {
	if a.Status == StatusApproved {
		return ErrAlreadyApproved
	}
	a.Status = StatusApproved
	a.TimeMinutes += ApprovalTimeGrant
	return nil
}

// HoldsSlot returns true if the account currently holds a PC.
// INVARIANT: Account fields are not mutated
func (a *Account) HoldsSlot() bool {
	return a.Slot != 0
}

// RecordLogin stamps LastLogin and applies the streak policy: consecutive
// calendar days extend the streak, a repeat login on the same day leaves it
// unchanged, and any gap (or a first login) resets it to 1.
// PRE: now is the login time
// POST: LastLogin == now; Streak updated per policy
func (a *Account) RecordLogin(now time.Time) {
	switch {
	case a.LastLogin.IsZero():
		a.Streak = 1
	case sameDay(a.LastLogin, now):
		// no change
	case sameDay(a.LastLogin.AddDate(0, 0, 1), now):
		a.Streak++
	default:
		a.Streak = 1
	}
	a.LastLogin = now
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
