// Package session owns the kiosk's single seat. One Manager guards one
// physical terminal: every login, unlock and logout passes through it, so
// the lock state and the current user can never disagree.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"cafepc/internal/application/orchestrators"
	"cafepc/internal/domain/adminaccount"
	"cafepc/internal/domain/audit"
	"cafepc/internal/domain/terminal"

	"github.com/google/uuid"
)

// Deps holds the stores and clock the manager hands to its orchestrators.
type Deps struct {
	UserStore  orchestrators.UserStoreForLogin
	AdminStore orchestrators.AdminStoreForUnlock
	AuditLog   orchestrators.AuditLog
	Now        func() time.Time
}

// Manager serializes all access to the terminal state machine.
type Manager struct {
	mu   sync.Mutex
	term terminal.Terminal
	deps Deps
}

// NewManager returns a manager with the terminal in its boot state: locked.
func NewManager(deps Deps) *Manager {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Manager{term: terminal.New(), deps: deps}
}

// Login authenticates a customer and, on success, takes the seat. A second
// customer logging in replaces the first: the previous session ends
// implicitly because the seat is physical and whoever types is sitting there.
// POST: On success the terminal is unlocked with the customer's session;
// on failure the terminal state is unchanged
func (m *Manager) Login(ctx context.Context, username, password string) (orchestrators.LoginResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	res, err := orchestrators.ExecuteLogin(ctx, orchestrators.LoginInput{
		Username: username,
		Password: password,
	}, orchestrators.LoginDeps{
		UserStore: m.deps.UserStore,
		AuditLog:  m.deps.AuditLog,
		Now:       m.deps.Now,
	})
	if err != nil {
		return orchestrators.LoginResult{}, err
	}

	if prev := m.term.CurrentUser; prev != "" && prev != res.Username {
		slog.Info("session_event", "event", "session_replaced", "previous_user", prev, "username", res.Username)
	}
	m.term.BeginUserSession(res.Username)
	return res, nil
}

// AdminUnlock verifies admin credentials and clears the lock. A live
// customer session survives the unlock untouched.
// POST: On success the terminal is not locked; on failure it is unchanged
func (m *Manager) AdminUnlock(ctx context.Context, id, password string) (adminaccount.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	acct, err := orchestrators.ExecuteAdminUnlock(ctx, orchestrators.AdminUnlockInput{
		ID:       id,
		Password: password,
	}, orchestrators.AdminUnlockDeps{
		AdminStore: m.deps.AdminStore,
		AuditLog:   m.deps.AuditLog,
	})
	if err != nil {
		return adminaccount.Account{}, err
	}

	m.term.AdminUnlock()
	return acct, nil
}

// Logout ends whatever session is live and re-locks the terminal. Calling
// it with nobody logged in still locks, so a walk-away admin screen can
// always be slammed shut.
// POST: Terminal locked, no current user
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if user := m.term.CurrentUser; user != "" {
		slog.Info("session_event", "event", "logout", "username", user)
		m.recordLogout(ctx, user)
	}
	m.term.EndSession()
}

func (m *Manager) recordLogout(ctx context.Context, user string) {
	if m.deps.AuditLog == nil {
		return
	}
	e := audit.Event{
		ID:         uuid.New().String(),
		Timestamp:  m.deps.Now(),
		Category:   audit.CategorySecurity,
		Action:     audit.ActionLogout,
		ActorID:    user,
		ResourceID: user,
		Detail:     "session ended, terminal locked",
	}
	if err := m.deps.AuditLog.Append(ctx, e); err != nil {
		slog.Warn("audit_append_failed", "error", err, "action", e.Action)
	}
}

// Refresh re-reads the seated customer's account so the caller can redisplay
// fresh numbers after a mutation (order, slot change, phone edit). It never
// transitions the lock state. The second return is false when nobody is
// seated.
func (m *Manager) Refresh(ctx context.Context) (orchestrators.LoginResult, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user := m.term.CurrentUser
	if user == "" {
		return orchestrators.LoginResult{}, false, nil
	}
	acct, err := m.deps.UserStore.GetByUsername(ctx, user)
	if err != nil {
		return orchestrators.LoginResult{}, true, err
	}
	return orchestrators.LoginResult{
		Username:    acct.Username,
		TimeMinutes: acct.TimeMinutes,
		Points:      acct.Points,
		Streak:      acct.Streak,
		Slot:        acct.Slot,
	}, true, nil
}

// State returns the current lock state.
func (m *Manager) State() terminal.State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.term.State
}

// CurrentUser returns the logged-in customer's username, empty if none.
func (m *Manager) CurrentUser() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.term.CurrentUser
}

// IsLocked reports whether the terminal requires authentication.
func (m *Manager) IsLocked() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.term.IsLocked()
}
