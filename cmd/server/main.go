package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	emailPkg "cafepc/internal/adapters/email"
	web "cafepc/internal/adapters/http"
	adminStore "cafepc/internal/adapters/storage/adminaccount"
	auditStore "cafepc/internal/adapters/storage/audit"
	noticeStore "cafepc/internal/adapters/storage/notice"
	slotStore "cafepc/internal/adapters/storage/pcslot"
	"cafepc/internal/adapters/storage/snapshot"
	userStore "cafepc/internal/adapters/storage/useraccount"
	"cafepc/internal/application/orchestrators"
	"cafepc/internal/application/session"
	"cafepc/internal/domain/menu"
	"cafepc/internal/domain/pcslot"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	// Live state is in-memory. An optional SQLite snapshot file carries it
	// across restarts: loaded here, written again on graceful shutdown.
	stores := &web.Stores{
		UserStore:   userStore.NewMemoryStore(),
		AdminStore:  adminStore.NewMemoryStore(),
		SlotStore:   slotStore.NewMemoryStore(pcslot.PoolSize),
		NoticeStore: noticeStore.NewMemoryStore(),
		AuditStore:  auditStore.NewMemoryStore(),
	}

	var snapStore *snapshot.SQLiteStore
	if path := os.Getenv("CAFEPC_SNAPSHOT"); path != "" {
		dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
		db, err := sql.Open("sqlite", dsn)
		if err != nil {
			log.Fatalf("failed to open snapshot database: %v", err)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			log.Fatalf("snapshot database unreachable: %v", err)
		}

		snapStore, err = snapshot.NewSQLiteStore(db)
		if err != nil {
			log.Fatalf("failed to init snapshot store: %v", err)
		}
		snap, err := snapStore.Load(context.Background())
		if err != nil {
			log.Fatalf("failed to load snapshot: %v", err)
		}
		if err := snapshot.Apply(context.Background(), snap,
			stores.UserStore, stores.AdminStore, stores.SlotStore, stores.NoticeStore); err != nil {
			log.Fatalf("failed to apply snapshot: %v", err)
		}
		log.Printf("Snapshot restored from %s (%d users, %d admins)", path, len(snap.Users), len(snap.Admins))
	}

	// Seed bootstrap admin if absent (a restored snapshot usually has it)
	adminPassword := envOrDefault("CAFEPC_ADMIN_PASSWORD", "admin123")
	seedDeps := orchestrators.SeedAdminDeps{AdminStore: stores.AdminStore, Now: time.Now}
	if err := orchestrators.ExecuteSeedAdmin(context.Background(), orchestrators.SeedAdminInput{Password: adminPassword}, seedDeps); err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}

	// Configure operator notifications
	resendKey := os.Getenv("CAFEPC_RESEND_KEY")
	emailFrom := envOrDefault("CAFEPC_RESEND_FROM", "Cafe PC <noreply@cafepc.local>")
	operator := envOrDefault("CAFEPC_OPERATOR_EMAIL", "")
	if resendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(resendKey, emailFrom), operator)
		log.Println("Notification sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender(), operator)
		log.Println("Notification sender configured (noop — set CAFEPC_RESEND_KEY for real delivery)")
	}

	// The single kiosk seat; boots locked
	seat := session.NewManager(session.Deps{
		UserStore:  stores.UserStore,
		AdminStore: stores.AdminStore,
		AuditLog:   stores.AuditStore,
	})

	mux := web.NewMux(envOrDefault("CAFEPC_STATIC_DIR", "static"), stores, menu.DefaultCatalog(), seat)

	addr := envOrDefault("CAFEPC_ADDR", ":8080")
	server := &http.Server{Addr: addr, Handler: mux}

	go func() {
		log.Printf("Cafe PC %s starting on %s (env=%s)", version, addr, envOrDefault("CAFEPC_ENV", "development"))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Graceful shutdown: lock the terminal, write the snapshot, stop serving
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	seat.Logout(ctx)

	if snapStore != nil {
		snap, err := snapshot.Capture(ctx,
			stores.UserStore, stores.AdminStore, stores.SlotStore, stores.NoticeStore)
		if err != nil {
			log.Printf("failed to capture snapshot: %v", err)
		} else if err := snapStore.Save(ctx, snap); err != nil {
			log.Printf("failed to save snapshot: %v", err)
		} else {
			log.Println("Snapshot saved")
		}
	}

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
