package projections

import (
	"context"
	"errors"
	"time"

	userStore "cafepc/internal/adapters/storage/useraccount"
	"cafepc/internal/domain/useraccount"
)

// UserStoreForProjections defines the account reads used by projections.
type UserStoreForProjections interface {
	GetByUsername(ctx context.Context, username string) (useraccount.Account, error)
}

// GetUserProfileQuery carries query parameters.
type GetUserProfileQuery struct {
	Username string
}

// GetUserProfileResult carries the query result. Found=false with a zero
// profile means the username does not exist; that is not an error, the
// session screen renders an empty panel.
type GetUserProfileResult struct {
	Found       bool
	Username    string
	Phone       string
	Status      string
	TimeMinutes int
	Points      int
	Streak      int
	Slot        int // 0 = no PC held
	LastLogin   time.Time
	MemberSince time.Time
}

// GetUserProfileDeps holds dependencies for GetUserProfile.
type GetUserProfileDeps struct {
	UserStore UserStoreForProjections
}

// QueryGetUserProfile retrieves one customer's session panel data.
// POST: Found=false for an unknown username, never an error for that case
func QueryGetUserProfile(ctx context.Context, query GetUserProfileQuery, deps GetUserProfileDeps) (GetUserProfileResult, error) {
	a, err := deps.UserStore.GetByUsername(ctx, query.Username)
	if errors.Is(err, userStore.ErrNotFound) {
		return GetUserProfileResult{}, nil
	}
	if err != nil {
		return GetUserProfileResult{}, err
	}

	return GetUserProfileResult{
		Found:       true,
		Username:    a.Username,
		Phone:       a.Phone,
		Status:      a.Status,
		TimeMinutes: a.TimeMinutes,
		Points:      a.Points,
		Streak:      a.Streak,
		Slot:        a.Slot,
		LastLogin:   a.LastLogin,
		MemberSince: a.CreatedAt,
	}, nil
}
