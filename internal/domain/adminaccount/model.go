package adminaccount

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

	// MinPasswordLength is the minimum plaintext password length for admins,
	// stricter than the customer minimum.
	MinPasswordLength = 6

	// BootstrapID is the admin account present and approved at system start.
	BootstrapID = "admin"
)

// Domain errors
var (
	ErrEmptyID          = errors.New("admin ID cannot be empty")
	ErrEmptyName        = errors.New("admin name cannot be empty")
	ErrEmptyPassword    = errors.New("password cannot be empty")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	ErrWrongPassword    = errors.New("incorrect password")
	ErrNotApproved      = errors.New("admin account is pending approval")
	ErrAlreadyApproved  = errors.New("admin account is already approved")
)

// Account holds state for one administrator. An ID is never present as both
// a pending request and an approved admin; the store keeps a single record
// per ID and Status distinguishes the two sets.
type Account struct {
	ID           string
	PasswordHash string
	Name         string
	Status       string // pending, approved
	CreatedAt    time.Time
}

// Validate checks if the Account has valid data.
// PRE: Account struct is populated
// POST: Returns nil if valid, error otherwise
func (a *Account) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyName
	}
	if a.Status != StatusPending && a.Status != StatusApproved {
		return errors.New("status must be 'pending' or 'approved'")
	}
	return nil
}

// SetPassword hashes and stores a password using bcrypt.
// PRE: plaintext is non-empty and >= 6 characters
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

// IsApproved returns true if the admin has been approved.
// INVARIANT: Account fields are not mutated
func (a *Account) IsApproved() bool {
	return a.Status == StatusApproved
}

// Approve transitions the request from pending to approved.
// PRE: Account is pending
// POST: Status is approved
func (a *Account) Approve() error {
	if a.Status == StatusApproved {
		return ErrAlreadyApproved
	}
	a.Status = StatusApproved
	return nil
}
