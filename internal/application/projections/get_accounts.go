package projections

import (
	"context"

	adminStore "cafepc/internal/adapters/storage/adminaccount"
	userStore "cafepc/internal/adapters/storage/useraccount"
	"cafepc/internal/domain/adminaccount"
	"cafepc/internal/domain/useraccount"
)

// UserLister defines the account listing used by the admin screens.
type UserLister interface {
	List(ctx context.Context, filter userStore.ListFilter) ([]useraccount.Account, error)
}

// AdminLister defines the admin listing used by the admin screens.
type AdminLister interface {
	List(ctx context.Context, filter adminStore.ListFilter) ([]adminaccount.Account, error)
}

// AccountSummary is one row of the admin account tables. Password hashes
// never leave the storage layer through this projection.
type AccountSummary struct {
	Username    string
	Phone       string
	Status      string
	TimeMinutes int
	Points      int
	Streak      int
	Slot        int
}

// QueryGetPendingUsers lists signups awaiting approval, oldest first.
func QueryGetPendingUsers(ctx context.Context, users UserLister) ([]AccountSummary, error) {
	accounts, err := users.List(ctx, userStore.ListFilter{Status: useraccount.StatusPending})
	if err != nil {
		return nil, err
	}
	return summarize(accounts), nil
}

// QueryGetAllUsers lists every customer account in signup order.
func QueryGetAllUsers(ctx context.Context, users UserLister) ([]AccountSummary, error) {
	accounts, err := users.List(ctx, userStore.ListFilter{})
	if err != nil {
		return nil, err
	}
	return summarize(accounts), nil
}

func summarize(accounts []useraccount.Account) []AccountSummary {
	out := make([]AccountSummary, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, AccountSummary{
			Username:    a.Username,
			Phone:       a.Phone,
			Status:      a.Status,
			TimeMinutes: a.TimeMinutes,
			Points:      a.Points,
			Streak:      a.Streak,
			Slot:        a.Slot,
		})
	}
	return out
}

// AdminSummary is one row of the admin request table.
type AdminSummary struct {
	ID     string
	Name   string
	Status string
}

// QueryGetPendingAdmins lists admin access requests awaiting a decision.
func QueryGetPendingAdmins(ctx context.Context, admins AdminLister) ([]AdminSummary, error) {
	accounts, err := admins.List(ctx, adminStore.ListFilter{Status: adminaccount.StatusPending})
	if err != nil {
		return nil, err
	}
	out := make([]AdminSummary, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, AdminSummary{ID: a.ID, Name: a.Name, Status: a.Status})
	}
	return out, nil
}
