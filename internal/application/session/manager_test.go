package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"cafepc/internal/domain/adminaccount"
	"cafepc/internal/domain/audit"
	"cafepc/internal/domain/terminal"
	"cafepc/internal/domain/useraccount"
)

var fixedTime = time.Date(2026, 5, 10, 14, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return fixedTime }

type mockUserStore struct {
	accounts map[string]useraccount.Account
}

func (m *mockUserStore) GetByUsername(_ context.Context, username string) (useraccount.Account, error) {
	a, ok := m.accounts[username]
	if !ok {
		return useraccount.Account{}, errors.New("not found")
	}
	return a, nil
}

func (m *mockUserStore) Save(_ context.Context, a useraccount.Account) error {
	m.accounts[a.Username] = a
	return nil
}

type mockAdminStore struct {
	accounts map[string]adminaccount.Account
}

func (m *mockAdminStore) GetByID(_ context.Context, id string) (adminaccount.Account, error) {
	a, ok := m.accounts[id]
	if !ok {
		return adminaccount.Account{}, errors.New("not found")
	}
	return a, nil
}

type mockAuditLog struct {
	events []audit.Event
}

func (m *mockAuditLog) Append(_ context.Context, e audit.Event) error {
	m.events = append(m.events, e)
	return nil
}

func newTestManager(t *testing.T) (*Manager, *mockAuditLog) {
	t.Helper()

	alice := useraccount.Account{Username: "alice", Phone: "021555001", Status: useraccount.StatusApproved}
	if err := alice.SetPassword("pass1234"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	bob := useraccount.Account{Username: "bob", Phone: "021555002", Status: useraccount.StatusApproved}
	if err := bob.SetPassword("pass5678"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	admin := adminaccount.Account{ID: "admin", Name: "Administrator", Status: adminaccount.StatusApproved}
	if err := admin.SetPassword("admin123"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}

	log := &mockAuditLog{}
	m := NewManager(Deps{
		UserStore:  &mockUserStore{accounts: map[string]useraccount.Account{"alice": alice, "bob": bob}},
		AdminStore: &mockAdminStore{accounts: map[string]adminaccount.Account{"admin": admin}},
		AuditLog:   log,
		Now:        fixedNow,
	})
	return m, log
}

func TestManager_BootsLocked(t *testing.T) {
	m, _ := newTestManager(t)
	if !m.IsLocked() {
		t.Error("expected terminal to boot locked")
	}
	if m.CurrentUser() != "" {
		t.Errorf("expected no current user at boot, got %q", m.CurrentUser())
	}
}

func TestManager_LoginUnlocks(t *testing.T) {
	m, _ := newTestManager(t)

	res, err := m.Login(context.Background(), "alice", "pass1234")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Username != "alice" {
		t.Errorf("unexpected result: %+v", res)
	}
	if m.State() != terminal.StateUnlockedUserSession {
		t.Errorf("expected user session state, got %s", m.State())
	}
	if m.CurrentUser() != "alice" {
		t.Errorf("expected alice as current user, got %q", m.CurrentUser())
	}
}

func TestManager_FailedLoginLeavesStateUnchanged(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.Login(context.Background(), "alice", "wrong")
	if !errors.Is(err, useraccount.ErrWrongPassword) {
		t.Fatalf("expected ErrWrongPassword, got %v", err)
	}
	if !m.IsLocked() {
		t.Error("expected terminal to stay locked after failed login")
	}
}

func TestManager_SecondLoginReplacesSession(t *testing.T) {
	m, _ := newTestManager(t)

	if _, err := m.Login(context.Background(), "alice", "pass1234"); err != nil {
		t.Fatalf("first login: %v", err)
	}
	if _, err := m.Login(context.Background(), "bob", "pass5678"); err != nil {
		t.Fatalf("second login: %v", err)
	}
	if m.CurrentUser() != "bob" {
		t.Errorf("expected bob to hold the seat, got %q", m.CurrentUser())
	}
}

func TestManager_AdminUnlockWithoutSession(t *testing.T) {
	m, _ := newTestManager(t)

	acct, err := m.AdminUnlock(context.Background(), "admin", "admin123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if acct.ID != "admin" {
		t.Errorf("unexpected account: %+v", acct)
	}
	if m.State() != terminal.StateUnlockedNoSession {
		t.Errorf("expected unlocked_no_session, got %s", m.State())
	}
}

func TestManager_AdminUnlockKeepsUserSession(t *testing.T) {
	m, _ := newTestManager(t)

	if _, err := m.Login(context.Background(), "alice", "pass1234"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := m.AdminUnlock(context.Background(), "admin", "admin123"); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if m.State() != terminal.StateUnlockedUserSession || m.CurrentUser() != "alice" {
		t.Errorf("expected alice's session to survive the unlock, got %s / %q", m.State(), m.CurrentUser())
	}
}

func TestManager_FailedUnlockLeavesStateUnchanged(t *testing.T) {
	m, _ := newTestManager(t)

	if _, err := m.AdminUnlock(context.Background(), "admin", "wrong1"); err == nil {
		t.Fatal("expected error")
	}
	if !m.IsLocked() {
		t.Error("expected terminal to stay locked after failed unlock")
	}
}

func TestManager_LogoutLocks(t *testing.T) {
	m, log := newTestManager(t)

	if _, err := m.Login(context.Background(), "alice", "pass1234"); err != nil {
		t.Fatalf("login: %v", err)
	}
	m.Logout(context.Background())

	if !m.IsLocked() {
		t.Error("expected terminal locked after logout")
	}
	if m.CurrentUser() != "" {
		t.Errorf("expected no current user after logout, got %q", m.CurrentUser())
	}
	last := log.events[len(log.events)-1]
	if last.Action != audit.ActionLogout {
		t.Errorf("expected logout audit event, got %q", last.Action)
	}
}

func TestManager_LogoutIdempotent(t *testing.T) {
	m, log := newTestManager(t)

	m.Logout(context.Background())
	m.Logout(context.Background())

	if !m.IsLocked() {
		t.Error("expected terminal locked")
	}
	for _, e := range log.events {
		if e.Action == audit.ActionLogout {
			t.Error("expected no logout audit events when nobody was logged in")
		}
	}
}

func TestManager_RefreshRereadsWithoutTransition(t *testing.T) {
	m, _ := newTestManager(t)

	if _, err := m.Login(context.Background(), "alice", "pass1234"); err != nil {
		t.Fatalf("login: %v", err)
	}

	// Mutate behind the manager's back, as an order or slot change would.
	store := m.deps.UserStore.(*mockUserStore)
	a := store.accounts["alice"]
	a.Points = 7
	store.accounts["alice"] = a

	res, seated, err := m.Refresh(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !seated {
		t.Fatal("expected a seated customer")
	}
	if res.Username != "alice" || res.Points != 7 {
		t.Errorf("expected fresh snapshot with 7 points, got %+v", res)
	}
	if m.State() != terminal.StateUnlockedUserSession {
		t.Errorf("expected refresh to leave state untouched, got %s", m.State())
	}
}

func TestManager_RefreshWithNobodySeated(t *testing.T) {
	m, _ := newTestManager(t)

	res, seated, err := m.Refresh(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seated {
		t.Errorf("expected no seated customer, got %+v", res)
	}
	if !m.IsLocked() {
		t.Error("expected terminal to stay locked")
	}
}

func TestManager_AdminUnlockThenLogoutLocks(t *testing.T) {
	m, _ := newTestManager(t)

	if _, err := m.AdminUnlock(context.Background(), "admin", "admin123"); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	m.Logout(context.Background())
	if !m.IsLocked() {
		t.Error("expected logout to lock from the admin-unlocked state")
	}
}
