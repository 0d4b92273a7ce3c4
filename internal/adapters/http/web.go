// Package web is the HTTP facade for the kiosk backend. The bundled UI is
// served as static files and everything else is a JSON API under /api.
package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"cafepc/internal/adapters/email"
	"cafepc/internal/adapters/http/middleware"
	adminStore "cafepc/internal/adapters/storage/adminaccount"
	auditStore "cafepc/internal/adapters/storage/audit"
	noticeStore "cafepc/internal/adapters/storage/notice"
	slotStore "cafepc/internal/adapters/storage/pcslot"
	userStore "cafepc/internal/adapters/storage/useraccount"
	"cafepc/internal/application/session"
	"cafepc/internal/domain/menu"
)

// Stores holds all storage dependencies.
type Stores struct {
	UserStore   userStore.Store
	AdminStore  adminStore.Store
	SlotStore   slotStore.Store
	NoticeStore noticeStore.Store
	AuditStore  auditStore.Store
}

// loadCSRFKey reads the CSRF secret from CAFEPC_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("CAFEPC_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("CAFEPC_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("CAFEPC_ENV") == "production" {
		log.Fatal("CAFEPC_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set CAFEPC_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global menu catalog (set by NewMux)
var catalog *menu.Catalog

// Global terminal session manager (set by NewMux)
var seat *session.Manager

// Global browser session store (set by NewMux)
var sessions *middleware.SessionStore

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// OperatorEmail receives signup and admin-request notifications.
var operatorEmail string

// SetEmailSender sets the global notification sender for the application.
func SetEmailSender(sender email.Sender, operator string) {
	emailSender = sender
	operatorEmail = operator
}

// NewMux wires HTTP handlers for the kiosk backend.
func NewMux(staticDir string, s *Stores, c *menu.Catalog, mgr *session.Manager) http.Handler {
	stores = s
	catalog = c
	seat = mgr
	sessions = middleware.NewSessionStore()

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	registerRoutes(mux)

	csrfKey := loadCSRFKey()
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: RequestLog -> RateLimit -> Auth -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
		middleware.RequestLog,
	)
}
