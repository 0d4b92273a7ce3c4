package web

import (
	"net/http"

	"cafepc/internal/adapters/http/middleware"
)

// registerRoutes wires every API endpoint onto the mux. Method patterns do
// the method dispatch; auth middleware wraps the grouped handlers.
func registerRoutes(mux *http.ServeMux) {
	// Lock screen: reachable while the terminal is locked
	mux.HandleFunc("POST /api/signup", handleSignup)
	mux.HandleFunc("POST /api/login", handleLogin)
	mux.HandleFunc("POST /api/logout", handleLogout)
	mux.HandleFunc("POST /api/forgot-password", handleForgotPassword)
	mux.HandleFunc("POST /api/admin/unlock", handleAdminUnlock)
	mux.HandleFunc("POST /api/admin/requests", handleRequestAdmin)
	mux.HandleFunc("GET /api/terminal", handleTerminalState)
	mux.HandleFunc("GET /api/notices", handleListNotices)

	// Customer session
	customer := middleware.RequireRole(middleware.RoleCustomer)
	mux.Handle("GET /api/profile", customer(http.HandlerFunc(handleGetProfile)))
	mux.Handle("GET /api/session", customer(http.HandlerFunc(handleRefresh)))
	mux.Handle("PUT /api/profile/phone", customer(http.HandlerFunc(handleUpdatePhone)))
	mux.Handle("GET /api/menu", customer(http.HandlerFunc(handleGetMenu)))
	mux.Handle("POST /api/orders", customer(http.HandlerFunc(handlePlaceOrder)))
	mux.Handle("GET /api/pcs", customer(http.HandlerFunc(handleListPCs)))
	mux.Handle("POST /api/pcs/{id}/assign", customer(http.HandlerFunc(handleAssignPC)))
	mux.Handle("POST /api/pcs/release", customer(http.HandlerFunc(handleReleasePC)))

	// Admin panel
	admin := middleware.RequireRole(middleware.RoleAdmin)
	mux.Handle("GET /api/admin/users", admin(http.HandlerFunc(handleListUsers)))
	mux.Handle("GET /api/admin/users/pending", admin(http.HandlerFunc(handleListPendingUsers)))
	mux.Handle("POST /api/admin/users/{username}/approve", admin(http.HandlerFunc(handleApproveUser)))
	mux.Handle("POST /api/admin/users/{username}/reject", admin(http.HandlerFunc(handleRejectUser)))
	mux.Handle("GET /api/admin/requests/pending", admin(http.HandlerFunc(handleListPendingAdmins)))
	mux.Handle("POST /api/admin/requests/{id}/approve", admin(http.HandlerFunc(handleApproveAdmin)))
	mux.Handle("POST /api/admin/requests/{id}/reject", admin(http.HandlerFunc(handleRejectAdmin)))
	mux.Handle("GET /api/admin/pcs", admin(http.HandlerFunc(handleListPCs)))
	mux.Handle("GET /api/admin/audit", admin(http.HandlerFunc(handleAuditTrail)))
	mux.Handle("GET /api/admin/notices", admin(http.HandlerFunc(handleListAllNotices)))
	mux.Handle("POST /api/admin/notices", admin(http.HandlerFunc(handleCreateNotice)))
	mux.Handle("POST /api/admin/notices/{id}/publish", admin(http.HandlerFunc(handlePublishNotice)))
	mux.Handle("DELETE /api/admin/notices/{id}", admin(http.HandlerFunc(handleDeleteNotice)))
}
