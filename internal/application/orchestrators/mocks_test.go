package orchestrators

import (
	"context"
	"time"

	emailAdapter "cafepc/internal/adapters/email"
	adminStore "cafepc/internal/adapters/storage/adminaccount"
	userStore "cafepc/internal/adapters/storage/useraccount"
	"cafepc/internal/domain/adminaccount"
	"cafepc/internal/domain/audit"
	"cafepc/internal/domain/pcslot"
	"cafepc/internal/domain/useraccount"
)

var fixedTime = time.Date(2026, 5, 10, 14, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return fixedTime }

func fixedID() string { return "test-id-001" }

// mockUserStore implements the user store interfaces used by orchestrators.
type mockUserStore struct {
	accounts map[string]useraccount.Account
	saveErr  error
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{accounts: make(map[string]useraccount.Account)}
}

func (m *mockUserStore) GetByUsername(_ context.Context, username string) (useraccount.Account, error) {
	a, ok := m.accounts[username]
	if !ok {
		return useraccount.Account{}, userStore.ErrNotFound
	}
	return a, nil
}

func (m *mockUserStore) Create(_ context.Context, a useraccount.Account) error {
	if _, ok := m.accounts[a.Username]; ok {
		return userStore.ErrDuplicate
	}
	m.accounts[a.Username] = a
	return nil
}

func (m *mockUserStore) Save(_ context.Context, a useraccount.Account) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if _, ok := m.accounts[a.Username]; !ok {
		return userStore.ErrNotFound
	}
	m.accounts[a.Username] = a
	return nil
}

func (m *mockUserStore) Delete(_ context.Context, username string) error {
	if _, ok := m.accounts[username]; !ok {
		return userStore.ErrNotFound
	}
	delete(m.accounts, username)
	return nil
}

// mockAdminStore implements the admin store interfaces used by orchestrators.
type mockAdminStore struct {
	accounts map[string]adminaccount.Account
}

func newMockAdminStore() *mockAdminStore {
	return &mockAdminStore{accounts: make(map[string]adminaccount.Account)}
}

func (m *mockAdminStore) GetByID(_ context.Context, id string) (adminaccount.Account, error) {
	a, ok := m.accounts[id]
	if !ok {
		return adminaccount.Account{}, adminStore.ErrNotFound
	}
	return a, nil
}

func (m *mockAdminStore) Create(_ context.Context, a adminaccount.Account) error {
	if _, ok := m.accounts[a.ID]; ok {
		return adminStore.ErrDuplicate
	}
	m.accounts[a.ID] = a
	return nil
}

func (m *mockAdminStore) Save(_ context.Context, a adminaccount.Account) error {
	if _, ok := m.accounts[a.ID]; !ok {
		return adminStore.ErrNotFound
	}
	m.accounts[a.ID] = a
	return nil
}

func (m *mockAdminStore) Delete(_ context.Context, id string) error {
	if _, ok := m.accounts[id]; !ok {
		return adminStore.ErrNotFound
	}
	delete(m.accounts, id)
	return nil
}

// mockSlotStore implements SlotStoreForAssignment over a plain map.
type mockSlotStore struct {
	held      map[int]string // slot ID -> username
	assignErr error
}

func newMockSlotStore() *mockSlotStore {
	return &mockSlotStore{held: make(map[int]string)}
}

func (m *mockSlotStore) Assign(_ context.Context, id int, username string) error {
	if m.assignErr != nil {
		return m.assignErr
	}
	if id < 1 || id > pcslot.PoolSize {
		return pcslot.ErrUnknownSlot
	}
	if _, ok := m.held[id]; ok {
		return pcslot.ErrOccupied
	}
	m.held[id] = username
	return nil
}

func (m *mockSlotStore) Release(_ context.Context, username string) error {
	for id, holder := range m.held {
		if holder == username {
			delete(m.held, id)
		}
	}
	return nil
}

func (m *mockSlotStore) HeldBy(_ context.Context, username string) (int, error) {
	for id, holder := range m.held {
		if holder == username {
			return id, nil
		}
	}
	return 0, nil
}

// mockAuditLog captures appended events.
type mockAuditLog struct {
	events []audit.Event
}

func (m *mockAuditLog) Append(_ context.Context, e audit.Event) error {
	m.events = append(m.events, e)
	return nil
}

func (m *mockAuditLog) lastAction() audit.Action {
	if len(m.events) == 0 {
		return ""
	}
	return m.events[len(m.events)-1].Action
}

// mockNotifier captures sent notifications.
type mockNotifier struct {
	sent []emailAdapter.SendRequest
}

func (m *mockNotifier) Send(_ context.Context, req emailAdapter.SendRequest) (emailAdapter.SendResult, error) {
	m.sent = append(m.sent, req)
	return emailAdapter.SendResult{MessageID: "mock-1", SentAt: fixedTime}, nil
}
