package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	adminMem "cafepc/internal/adapters/storage/adminaccount"
	auditMem "cafepc/internal/adapters/storage/audit"
	noticeMem "cafepc/internal/adapters/storage/notice"
	slotMem "cafepc/internal/adapters/storage/pcslot"
	userMem "cafepc/internal/adapters/storage/useraccount"
	"cafepc/internal/application/orchestrators"
	"cafepc/internal/application/session"
	"cafepc/internal/domain/menu"
	"cafepc/internal/domain/pcslot"
)

type testServer struct {
	handler http.Handler
	cookie  *http.Cookie
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	RateLimitPerSecond = 1000

	s := &Stores{
		UserStore:   userMem.NewMemoryStore(),
		AdminStore:  adminMem.NewMemoryStore(),
		SlotStore:   slotMem.NewMemoryStore(pcslot.PoolSize),
		NoticeStore: noticeMem.NewMemoryStore(),
		AuditStore:  auditMem.NewMemoryStore(),
	}

	if err := orchestrators.ExecuteSeedAdmin(t.Context(), orchestrators.SeedAdminInput{Password: "admin123"},
		orchestrators.SeedAdminDeps{AdminStore: s.AdminStore, Now: time.Now}); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	mgr := session.NewManager(session.Deps{
		UserStore:  s.UserStore,
		AdminStore: s.AdminStore,
		AuditLog:   s.AuditStore,
	})

	return &testServer{handler: NewMux(t.TempDir(), s, menu.DefaultCatalog(), mgr)}
}

// do sends a JSON request, carrying the last session cookie if one was set.
func (ts *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if ts.cookie != nil {
		req.AddCookie(ts.cookie)
	}

	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		if c.Name == "cafepc_session" {
			if c.MaxAge < 0 {
				ts.cookie = nil
			} else {
				ts.cookie = c
			}
		}
	}
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func (ts *testServer) signup(t *testing.T, username, password, phone string) {
	t.Helper()
	rec := ts.do(t, "POST", "/api/signup", map[string]string{
		"username": username, "password": password, "phone": phone,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func (ts *testServer) adminUnlock(t *testing.T) {
	t.Helper()
	rec := ts.do(t, "POST", "/api/admin/unlock", map[string]string{
		"id": "admin", "password": "admin123",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("admin unlock: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func (ts *testServer) approveUser(t *testing.T, username string) {
	t.Helper()
	ts.adminUnlock(t)
	rec := ts.do(t, "POST", "/api/admin/users/"+username+"/approve", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("approve: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	ts.do(t, "POST", "/api/logout", nil)
}

func (ts *testServer) login(t *testing.T, username, password string) {
	t.Helper()
	rec := ts.do(t, "POST", "/api/login", map[string]string{
		"username": username, "password": password,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestSignupAndApprovalFlow(t *testing.T) {
	ts := newTestServer(t)

	ts.signup(t, "alice", "pass1234", "021555001")

	// Duplicate username
	rec := ts.do(t, "POST", "/api/signup", map[string]string{
		"username": "alice", "password": "other123", "phone": "021555002",
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate signup: expected 409, got %d", rec.Code)
	}

	// Pending accounts cannot log in
	rec = ts.do(t, "POST", "/api/login", map[string]string{
		"username": "alice", "password": "pass1234",
	})
	if rec.Code != http.StatusForbidden {
		t.Errorf("pending login: expected 403, got %d", rec.Code)
	}

	ts.approveUser(t, "alice")

	var res struct {
		TimeMinutes int `json:"time_minutes"`
		Streak      int `json:"streak"`
	}
	rec = ts.do(t, "POST", "/api/login", map[string]string{
		"username": "alice", "password": "pass1234",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("approved login: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	decodeBody(t, rec, &res)
	if res.TimeMinutes != 100 {
		t.Errorf("expected 100 welcome minutes, got %d", res.TimeMinutes)
	}
	if res.Streak != 1 {
		t.Errorf("expected streak 1, got %d", res.Streak)
	}
}

func TestLoginFailures(t *testing.T) {
	ts := newTestServer(t)
	ts.signup(t, "alice", "pass1234", "021555001")
	ts.approveUser(t, "alice")

	rec := ts.do(t, "POST", "/api/login", map[string]string{"username": "alice", "password": "wrong"})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong password: expected 401, got %d", rec.Code)
	}
	// An absent account is reported distinctly from a bad password
	rec = ts.do(t, "POST", "/api/login", map[string]string{"username": "ghost", "password": "pass1234"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown user: expected 404, got %d", rec.Code)
	}
}

func TestTerminalStateTransitions(t *testing.T) {
	ts := newTestServer(t)
	ts.signup(t, "alice", "pass1234", "021555001")
	ts.approveUser(t, "alice")

	var state struct {
		State       string `json:"state"`
		CurrentUser string `json:"current_user"`
	}

	rec := ts.do(t, "GET", "/api/terminal", nil)
	decodeBody(t, rec, &state)
	if state.State != "locked" {
		t.Errorf("expected boot state locked, got %s", state.State)
	}

	ts.login(t, "alice", "pass1234")
	rec = ts.do(t, "GET", "/api/terminal", nil)
	decodeBody(t, rec, &state)
	if state.State != "unlocked_user_session" || state.CurrentUser != "alice" {
		t.Errorf("expected alice's session, got %+v", state)
	}

	rec = ts.do(t, "POST", "/api/logout", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", rec.Code)
	}
	rec = ts.do(t, "GET", "/api/terminal", nil)
	decodeBody(t, rec, &state)
	if state.State != "locked" || state.CurrentUser != "" {
		t.Errorf("expected locked after logout, got %+v", state)
	}
}

func TestAdminUnlockFailures(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, "POST", "/api/admin/unlock", map[string]string{"id": "admin", "password": "wrong1"})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong password: expected 401, got %d", rec.Code)
	}
	rec = ts.do(t, "POST", "/api/admin/unlock", map[string]string{"id": "ghost", "password": "admin123"})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("unknown admin: expected 401, got %d", rec.Code)
	}

	// Failed unlocks leave the terminal locked
	var state struct {
		State string `json:"state"`
	}
	stateRec := ts.do(t, "GET", "/api/terminal", nil)
	decodeBody(t, stateRec, &state)
	if state.State != "locked" {
		t.Errorf("expected locked, got %s", state.State)
	}
}

func TestAdminEndpointsRequireAdminSession(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, "GET", "/api/admin/users", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no session: expected 401, got %d", rec.Code)
	}

	// A customer session is not enough
	ts.signup(t, "alice", "pass1234", "021555001")
	ts.approveUser(t, "alice")
	ts.login(t, "alice", "pass1234")
	rec = ts.do(t, "GET", "/api/admin/users", nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("customer session: expected 403, got %d", rec.Code)
	}
}

func TestOrderFlow(t *testing.T) {
	ts := newTestServer(t)
	ts.signup(t, "alice", "pass1234", "021555001")
	ts.approveUser(t, "alice")
	ts.login(t, "alice", "pass1234")

	var menuRows []struct {
		Code   string `json:"code"`
		Points int    `json:"points"`
	}
	rec := ts.do(t, "GET", "/api/menu", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("menu: expected 200, got %d", rec.Code)
	}
	decodeBody(t, rec, &menuRows)
	if len(menuRows) != 4 {
		t.Fatalf("expected 4 menu items, got %d", len(menuRows))
	}

	var order struct {
		Item   string `json:"item"`
		Points int    `json:"points"`
	}
	rec = ts.do(t, "POST", "/api/orders", map[string]string{"item_code": "B1"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("order: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	decodeBody(t, rec, &order)
	if order.Item != "Burger" || order.Points != 2 {
		t.Errorf("unexpected order result: %+v", order)
	}

	rec = ts.do(t, "POST", "/api/orders", map[string]string{"item_code": "X9"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown item: expected 404, got %d", rec.Code)
	}

	// Refresh shows the new balance
	var refreshed struct {
		Seated bool `json:"seated"`
		Points int  `json:"points"`
	}
	rec = ts.do(t, "GET", "/api/session", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("refresh: expected 200, got %d", rec.Code)
	}
	decodeBody(t, rec, &refreshed)
	if !refreshed.Seated || refreshed.Points != 2 {
		t.Errorf("expected seated with 2 points after the burger, got %+v", refreshed)
	}
}

func TestPCAssignmentFlow(t *testing.T) {
	ts := newTestServer(t)
	ts.signup(t, "alice", "pass1234", "021555001")
	ts.approveUser(t, "alice")
	ts.login(t, "alice", "pass1234")

	rec := ts.do(t, "POST", "/api/pcs/3/assign", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("assign: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// One PC per customer
	rec = ts.do(t, "POST", "/api/pcs/5/assign", nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("second assign: expected 409, got %d", rec.Code)
	}

	var overview struct {
		Vacant   int `json:"Vacant"`
		Occupied int `json:"Occupied"`
	}
	rec = ts.do(t, "GET", "/api/pcs", nil)
	decodeBody(t, rec, &overview)
	if overview.Occupied != 1 || overview.Vacant != 9 {
		t.Errorf("expected 1 occupied / 9 vacant, got %+v", overview)
	}

	rec = ts.do(t, "POST", "/api/pcs/release", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("release: expected 200, got %d", rec.Code)
	}
	rec = ts.do(t, "GET", "/api/pcs", nil)
	decodeBody(t, rec, &overview)
	if overview.Occupied != 0 {
		t.Errorf("expected all vacant after release, got %+v", overview)
	}

	rec = ts.do(t, "POST", "/api/pcs/99/assign", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown PC: expected 404, got %d", rec.Code)
	}
}

func TestForgotPassword(t *testing.T) {
	ts := newTestServer(t)
	ts.signup(t, "alice", "pass1234", "021555001")
	ts.approveUser(t, "alice")

	rec := ts.do(t, "POST", "/api/forgot-password", map[string]string{
		"username": "alice", "phone": "000", "new_password": "newpass1",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong phone: expected 401, got %d", rec.Code)
	}

	rec = ts.do(t, "POST", "/api/forgot-password", map[string]string{
		"username": "alice", "phone": "021555001", "new_password": "newpass1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("reset: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	ts.login(t, "alice", "newpass1")
}

func TestNoticeBoardFlow(t *testing.T) {
	ts := newTestServer(t)
	ts.adminUnlock(t)

	var created struct {
		ID     string `json:"ID"`
		Status string `json:"Status"`
	}
	rec := ts.do(t, "POST", "/api/admin/notices", map[string]string{
		"title":   "Opening hours",
		"content": "Open **late** every Friday",
		"color":   "blue",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create notice: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	decodeBody(t, rec, &created)
	if created.Status != "draft" {
		t.Errorf("expected draft, got %s", created.Status)
	}

	// Drafts are not on the lock screen
	var board []struct {
		Title string `json:"title"`
		HTML  string `json:"html"`
	}
	rec = ts.do(t, "GET", "/api/notices", nil)
	decodeBody(t, rec, &board)
	if len(board) != 0 {
		t.Fatalf("expected empty board before publish, got %d", len(board))
	}

	rec = ts.do(t, "POST", "/api/admin/notices/"+created.ID+"/publish", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("publish: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = ts.do(t, "GET", "/api/notices", nil)
	decodeBody(t, rec, &board)
	if len(board) != 1 {
		t.Fatalf("expected one published notice, got %d", len(board))
	}
	if !strings.Contains(board[0].HTML, "<strong>late</strong>") {
		t.Errorf("expected rendered markdown, got %q", board[0].HTML)
	}

	rec = ts.do(t, "DELETE", "/api/admin/notices/"+created.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", rec.Code)
	}
}

func TestAdminRequestFlow(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, "POST", "/api/admin/requests", map[string]string{
		"id": "carol", "password": "secret99", "name": "Carol",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("request: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	// Pending admins cannot unlock
	rec = ts.do(t, "POST", "/api/admin/unlock", map[string]string{"id": "carol", "password": "secret99"})
	if rec.Code != http.StatusForbidden {
		t.Errorf("pending unlock: expected 403, got %d", rec.Code)
	}

	ts.adminUnlock(t)
	rec = ts.do(t, "POST", "/api/admin/requests/carol/approve", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("approve: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	ts.do(t, "POST", "/api/logout", nil)

	rec = ts.do(t, "POST", "/api/admin/unlock", map[string]string{"id": "carol", "password": "secret99"})
	if rec.Code != http.StatusOK {
		t.Errorf("approved unlock: expected 200, got %d", rec.Code)
	}
}

func TestAuditTrail(t *testing.T) {
	ts := newTestServer(t)
	ts.signup(t, "alice", "pass1234", "021555001")
	ts.approveUser(t, "alice")
	ts.adminUnlock(t)

	var events []struct {
		Action string `json:"action"`
	}
	rec := ts.do(t, "GET", "/api/admin/audit", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("audit: expected 200, got %d", rec.Code)
	}
	decodeBody(t, rec, &events)
	if len(events) < 3 {
		t.Fatalf("expected signup/approve/unlock events at least, got %d", len(events))
	}
	// Newest first
	if events[0].Action != "unlock" {
		t.Errorf("expected newest event unlock, got %s", events[0].Action)
	}
}
