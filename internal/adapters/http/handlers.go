package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"cafepc/internal/adapters/http/middleware"
	adminStore "cafepc/internal/adapters/storage/adminaccount"
	noticeStore "cafepc/internal/adapters/storage/notice"
	userStore "cafepc/internal/adapters/storage/useraccount"
	"cafepc/internal/application/orchestrators"
	"cafepc/internal/application/projections"
	"cafepc/internal/domain/adminaccount"
	"cafepc/internal/domain/menu"
	"cafepc/internal/domain/notice"
	"cafepc/internal/domain/pcslot"
	"cafepc/internal/domain/useraccount"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError maps domain and orchestrator errors onto HTTP status codes.
// Anything unmapped is treated as an internal error.
func respondError(w http.ResponseWriter, err error) {
	status := 0
	switch {
	case errors.Is(err, useraccount.ErrWrongPassword),
		errors.Is(err, orchestrators.ErrAdminNotFound),
		errors.Is(err, orchestrators.ErrAdminWrongPassword),
		errors.Is(err, orchestrators.ErrPhoneMismatch):
		status = http.StatusUnauthorized
	case errors.Is(err, useraccount.ErrNotApproved),
		errors.Is(err, adminaccount.ErrNotApproved):
		status = http.StatusForbidden
	case errors.Is(err, userStore.ErrNotFound),
		errors.Is(err, adminStore.ErrNotFound),
		errors.Is(err, noticeStore.ErrNotFound),
		errors.Is(err, pcslot.ErrUnknownSlot),
		errors.Is(err, menu.ErrUnknownItem):
		status = http.StatusNotFound
	case errors.Is(err, orchestrators.ErrUsernameTaken),
		errors.Is(err, orchestrators.ErrAdminIDTaken),
		errors.Is(err, useraccount.ErrAlreadyApproved),
		errors.Is(err, adminaccount.ErrAlreadyApproved),
		errors.Is(err, pcslot.ErrOccupied),
		errors.Is(err, pcslot.ErrAlreadyAssigned),
		errors.Is(err, notice.ErrAlreadyPublished):
		status = http.StatusConflict
	case errors.Is(err, useraccount.ErrEmptyUsername),
		errors.Is(err, useraccount.ErrEmptyPhone),
		errors.Is(err, useraccount.ErrEmptyPassword),
		errors.Is(err, useraccount.ErrPasswordTooShort),
		errors.Is(err, adminaccount.ErrEmptyID),
		errors.Is(err, adminaccount.ErrEmptyName),
		errors.Is(err, adminaccount.ErrEmptyPassword),
		errors.Is(err, adminaccount.ErrPasswordTooShort),
		errors.Is(err, notice.ErrEmptyTitle),
		errors.Is(err, notice.ErrEmptyContent),
		errors.Is(err, notice.ErrInvalidColor):
		status = http.StatusBadRequest
	default:
		internalError(w, err)
		return
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// --- Lock screen ---

// handleSignup handles POST /api/signup
func handleSignup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Phone    string `json:"phone"`
	}
	if err := strictDecode(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	a, err := orchestrators.ExecuteRegisterUser(r.Context(), orchestrators.RegisterUserInput{
		Username: req.Username,
		Password: req.Password,
		Phone:    req.Phone,
	}, orchestrators.RegisterUserDeps{
		UserStore:     stores.UserStore,
		AuditLog:      stores.AuditStore,
		Notifier:      emailSender,
		OperatorEmail: operatorEmail,
		Now:           timeNow,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"username": a.Username,
		"status":   a.Status,
	})
}

// handleLogin handles POST /api/login
func handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := strictDecode(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	res, err := seat.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	// The previous customer's cookies die with the seat.
	sessions.DeleteByRole(middleware.RoleCustomer)
	token, err := sessions.Create(res.Username, middleware.RoleCustomer)
	if err != nil {
		internalError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token)

	writeJSON(w, http.StatusOK, map[string]any{
		"username":     res.Username,
		"time_minutes": res.TimeMinutes,
		"points":       res.Points,
		"streak":       res.Streak,
		"slot":         res.Slot,
	})
}

// handleLogout handles POST /api/logout. Works for customer and admin
// sessions alike and always re-locks the terminal.
func handleLogout(w http.ResponseWriter, r *http.Request) {
	seat.Logout(r.Context())
	sessions.DeleteByRole(middleware.RoleCustomer)

	if cookie, err := r.Cookie("cafepc_session"); err == nil {
		sessions.Delete(cookie.Value)
	}
	middleware.ClearSessionCookie(w)

	writeJSON(w, http.StatusOK, map[string]string{"state": string(seat.State())})
}

// handleForgotPassword handles POST /api/forgot-password
func handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username    string `json:"username"`
		Phone       string `json:"phone"`
		NewPassword string `json:"new_password"`
	}
	if err := strictDecode(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	err := orchestrators.ExecuteResetPassword(r.Context(), orchestrators.ResetPasswordInput{
		Username:    req.Username,
		Phone:       req.Phone,
		NewPassword: req.NewPassword,
	}, orchestrators.ResetPasswordDeps{UserStore: stores.UserStore})
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "password_reset"})
}

// handleAdminUnlock handles POST /api/admin/unlock
func handleAdminUnlock(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID       string `json:"id"`
		Password string `json:"password"`
	}
	if err := strictDecode(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	acct, err := seat.AdminUnlock(r.Context(), req.ID, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	token, err := sessions.Create(acct.ID, middleware.RoleAdmin)
	if err != nil {
		internalError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token)

	writeJSON(w, http.StatusOK, map[string]string{
		"id":    acct.ID,
		"name":  acct.Name,
		"state": string(seat.State()),
	})
}

// handleRequestAdmin handles POST /api/admin/requests
func handleRequestAdmin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID       string `json:"id"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := strictDecode(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	a, err := orchestrators.ExecuteRequestAdmin(r.Context(), orchestrators.RequestAdminInput{
		ID:       req.ID,
		Password: req.Password,
		Name:     req.Name,
	}, adminRequestDeps())
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"id":     a.ID,
		"status": a.Status,
	})
}

// handleTerminalState handles GET /api/terminal
func handleTerminalState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"state":        string(seat.State()),
		"current_user": seat.CurrentUser(),
	})
}

// handleListNotices handles GET /api/notices — the lock-screen board.
// Markdown content is rendered server-side so the kiosk UI stays dumb.
func handleListNotices(w http.ResponseWriter, r *http.Request) {
	published, err := projections.QueryGetPublishedNotices(r.Context(), stores.NoticeStore)
	if err != nil {
		internalError(w, err)
		return
	}

	type row struct {
		ID          string    `json:"id"`
		Title       string    `json:"title"`
		HTML        string    `json:"html"`
		Color       string    `json:"color"`
		PublishedAt time.Time `json:"published_at"`
	}
	rows := make([]row, 0, len(published))
	for _, n := range published {
		var buf bytes.Buffer
		if err := mdRenderer.Convert([]byte(n.Content), &buf); err != nil {
			internalError(w, err)
			return
		}
		rows = append(rows, row{
			ID:          n.ID,
			Title:       n.Title,
			HTML:        buf.String(),
			Color:       n.Color,
			PublishedAt: n.PublishedAt,
		})
	}
	writeJSON(w, http.StatusOK, rows)
}

// --- Customer session ---

func currentSession(r *http.Request) middleware.Session {
	sess, _ := middleware.GetSessionFromContext(r.Context())
	return sess
}

// handleGetProfile handles GET /api/profile
func handleGetProfile(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)

	res, err := projections.QueryGetUserProfile(r.Context(), projections.GetUserProfileQuery{
		Username: sess.ID,
	}, projections.GetUserProfileDeps{UserStore: stores.UserStore})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleRefresh handles GET /api/session. The kiosk UI calls it after any
// mutation (order, slot change, phone edit) to redisplay fresh numbers; it
// never changes the lock state.
func handleRefresh(w http.ResponseWriter, r *http.Request) {
	res, seated, err := seat.Refresh(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"state":        string(seat.State()),
		"seated":       seated,
		"username":     res.Username,
		"time_minutes": res.TimeMinutes,
		"points":       res.Points,
		"streak":       res.Streak,
		"slot":         res.Slot,
	})
}

// handleUpdatePhone handles PUT /api/profile/phone
func handleUpdatePhone(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phone string `json:"phone"`
	}
	if err := strictDecode(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	err := orchestrators.ExecuteUpdatePhone(r.Context(), orchestrators.UpdatePhoneInput{
		Username: currentSession(r).ID,
		Phone:    req.Phone,
	}, orchestrators.UpdatePhoneDeps{UserStore: stores.UserStore})
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"phone": req.Phone})
}

// handleGetMenu handles GET /api/menu
func handleGetMenu(w http.ResponseWriter, r *http.Request) {
	type row struct {
		Code   string `json:"code"`
		Name   string `json:"name"`
		Price  int    `json:"price"`
		Points int    `json:"points"`
	}
	items := catalog.Items()
	rows := make([]row, 0, len(items))
	for _, it := range items {
		rows = append(rows, row{Code: it.Code, Name: it.Name, Price: it.Price, Points: it.Points})
	}
	writeJSON(w, http.StatusOK, rows)
}

// handlePlaceOrder handles POST /api/orders
func handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ItemCode string `json:"item_code"`
	}
	if err := strictDecode(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	res, err := orchestrators.ExecutePlaceOrder(r.Context(), orchestrators.PlaceOrderInput{
		Username: currentSession(r).ID,
		ItemCode: req.ItemCode,
	}, orchestrators.PlaceOrderDeps{
		UserStore: stores.UserStore,
		Catalog:   catalog,
		AuditLog:  stores.AuditStore,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"item":   res.Item.Name,
		"code":   res.Item.Code,
		"points": res.Points,
	})
}

// handleListPCs handles GET /api/pcs and GET /api/admin/pcs
func handleListPCs(w http.ResponseWriter, r *http.Request) {
	res, err := projections.QueryGetPCOverview(r.Context(), stores.SlotStore)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleAssignPC handles POST /api/pcs/{id}/assign
func handleAssignPC(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid PC number", http.StatusBadRequest)
		return
	}

	err = orchestrators.ExecuteAssignSlot(r.Context(), orchestrators.AssignSlotInput{
		Username: currentSession(r).ID,
		SlotID:   id,
	}, slotDeps())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"slot": id})
}

// handleReleasePC handles POST /api/pcs/release
func handleReleasePC(w http.ResponseWriter, r *http.Request) {
	err := orchestrators.ExecuteReleaseSlot(r.Context(), orchestrators.ReleaseSlotInput{
		Username: currentSession(r).ID,
	}, slotDeps())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"slot": 0})
}

func slotDeps() orchestrators.SlotDeps {
	return orchestrators.SlotDeps{
		SlotStore: stores.SlotStore,
		UserStore: stores.UserStore,
		AuditLog:  stores.AuditStore,
	}
}

// --- Admin panel ---

func adminRequestDeps() orchestrators.AdminRequestDeps {
	return orchestrators.AdminRequestDeps{
		AdminStore:    stores.AdminStore,
		AuditLog:      stores.AuditStore,
		Notifier:      emailSender,
		OperatorEmail: operatorEmail,
		Now:           timeNow,
	}
}

// handleListUsers handles GET /api/admin/users
func handleListUsers(w http.ResponseWriter, r *http.Request) {
	rows, err := projections.QueryGetAllUsers(r.Context(), stores.UserStore)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// handleListPendingUsers handles GET /api/admin/users/pending
func handleListPendingUsers(w http.ResponseWriter, r *http.Request) {
	rows, err := projections.QueryGetPendingUsers(r.Context(), stores.UserStore)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// handleApproveUser handles POST /api/admin/users/{username}/approve
func handleApproveUser(w http.ResponseWriter, r *http.Request) {
	acct, err := orchestrators.ExecuteApproveUser(r.Context(), orchestrators.ApproveUserInput{
		Username: r.PathValue("username"),
		AdminID:  currentSession(r).ID,
	}, approvalDeps())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"username":     acct.Username,
		"status":       acct.Status,
		"time_minutes": acct.TimeMinutes,
	})
}

// handleRejectUser handles POST /api/admin/users/{username}/reject
func handleRejectUser(w http.ResponseWriter, r *http.Request) {
	err := orchestrators.ExecuteRejectUser(r.Context(), orchestrators.ApproveUserInput{
		Username: r.PathValue("username"),
		AdminID:  currentSession(r).ID,
	}, approvalDeps())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "rejected"})
}

func approvalDeps() orchestrators.ApproveUserDeps {
	return orchestrators.ApproveUserDeps{
		UserStore:     stores.UserStore,
		AuditLog:      stores.AuditStore,
		Notifier:      emailSender,
		OperatorEmail: operatorEmail,
	}
}

// handleListPendingAdmins handles GET /api/admin/requests/pending
func handleListPendingAdmins(w http.ResponseWriter, r *http.Request) {
	rows, err := projections.QueryGetPendingAdmins(r.Context(), stores.AdminStore)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// handleApproveAdmin handles POST /api/admin/requests/{id}/approve
func handleApproveAdmin(w http.ResponseWriter, r *http.Request) {
	acct, err := orchestrators.ExecuteApproveAdmin(r.Context(), orchestrators.DecideAdminInput{
		ID:      r.PathValue("id"),
		AdminID: currentSession(r).ID,
	}, adminRequestDeps())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"id":     acct.ID,
		"status": acct.Status,
	})
}

// handleRejectAdmin handles POST /api/admin/requests/{id}/reject
func handleRejectAdmin(w http.ResponseWriter, r *http.Request) {
	err := orchestrators.ExecuteRejectAdmin(r.Context(), orchestrators.DecideAdminInput{
		ID:      r.PathValue("id"),
		AdminID: currentSession(r).ID,
	}, adminRequestDeps())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "rejected"})
}

// handleAuditTrail handles GET /api/admin/audit
func handleAuditTrail(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	events, err := projections.QueryGetAuditTrail(r.Context(), projections.GetAuditTrailQuery{Limit: limit}, stores.AuditStore)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

// handleListAllNotices handles GET /api/admin/notices
func handleListAllNotices(w http.ResponseWriter, r *http.Request) {
	notices, err := projections.QueryGetAllNotices(r.Context(), stores.NoticeStore)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notices)
}

// handleCreateNotice handles POST /api/admin/notices
func handleCreateNotice(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
		Color   string `json:"color"`
	}
	if err := strictDecode(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	n, err := orchestrators.ExecuteCreateNotice(r.Context(), orchestrators.CreateNoticeInput{
		Title:     req.Title,
		Content:   req.Content,
		Color:     req.Color,
		CreatedBy: currentSession(r).ID,
	}, noticeDeps())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, n)
}

// handlePublishNotice handles POST /api/admin/notices/{id}/publish
func handlePublishNotice(w http.ResponseWriter, r *http.Request) {
	n, err := orchestrators.ExecutePublishNotice(r.Context(), orchestrators.PublishNoticeInput{
		NoticeID: r.PathValue("id"),
	}, noticeDeps())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

// handleDeleteNotice handles DELETE /api/admin/notices/{id}
func handleDeleteNotice(w http.ResponseWriter, r *http.Request) {
	err := orchestrators.ExecuteDeleteNotice(r.Context(), orchestrators.DeleteNoticeInput{
		NoticeID: r.PathValue("id"),
	}, noticeDeps())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func noticeDeps() orchestrators.NoticeDeps {
	return orchestrators.NoticeDeps{
		NoticeStore: stores.NoticeStore,
		GenerateID:  generateID,
		Now:         timeNow,
	}
}
