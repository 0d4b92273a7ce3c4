package snapshot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"cafepc/internal/domain/adminaccount"
	"cafepc/internal/domain/notice"
	"cafepc/internal/domain/pcslot"
	"cafepc/internal/domain/useraccount"
)

const timeFormat = "2006-01-02T15:04:05.999999999Z07:00"

// SQLiteStore persists snapshots to a SQLite file. This is the repo's
// serialization boundary: the live stores stay in memory and a snapshot is
// written on shutdown and read back on boot.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore wraps an open database handle and ensures the schema.
// PRE: db is a valid connection with the sqlite driver registered
// POST: All snapshot tables exist
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if err := initSchema(db); err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func initSchema(db *sql.DB) error {
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS user_account (
		username TEXT PRIMARY KEY,
		password_hash TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL,
		status TEXT NOT NULL,
		time_minutes INTEGER NOT NULL DEFAULT 0,
		points INTEGER NOT NULL DEFAULT 0,
		streak INTEGER NOT NULL DEFAULT 0,
		slot INTEGER NOT NULL DEFAULT 0,
		last_login TEXT,
		created_at TEXT NOT NULL,
		position INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS admin_account (
		id TEXT PRIMARY KEY,
		password_hash TEXT NOT NULL DEFAULT '',
		name TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at TEXT NOT NULL,
		position INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS pc_slot (
		id INTEGER PRIMARY KEY,
		status TEXT NOT NULL,
		held_by TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS notice (
		id TEXT PRIMARY KEY,
		status TEXT NOT NULL,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		color TEXT NOT NULL,
		created_by TEXT NOT NULL,
		created_at TEXT NOT NULL,
		published_at TEXT
	);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create snapshot schema: %w", err)
	}
	return nil
}

// Save replaces the stored snapshot with snap, all tables in one
// transaction so a crash mid-write cannot leave a mixed snapshot.
// PRE: snap was produced by Capture
// POST: The file holds exactly snap
func (s *SQLiteStore) Save(ctx context.Context, snap Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"user_account", "admin_account", "pc_slot", "notice"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}

	for i, u := range snap.Users {
		var lastLogin interface{}
		if !u.LastLogin.IsZero() {
			lastLogin = u.LastLogin.Format(timeFormat)
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO user_account (username, password_hash, phone, status, time_minutes, points, streak, slot, last_login, created_at, position)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			u.Username, u.PasswordHash, u.Phone, u.Status, u.TimeMinutes, u.Points, u.Streak, u.Slot, lastLogin, u.CreatedAt.Format(timeFormat), i,
		)
		if err != nil {
			return err
		}
	}

	for i, a := range snap.Admins {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO admin_account (id, password_hash, name, status, created_at, position) VALUES (?, ?, ?, ?, ?, ?)",
			a.ID, a.PasswordHash, a.Name, a.Status, a.CreatedAt.Format(timeFormat), i,
		)
		if err != nil {
			return err
		}
	}

	for _, sl := range snap.Slots {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO pc_slot (id, status, held_by) VALUES (?, ?, ?)",
			sl.ID, sl.Status, sl.HeldBy,
		)
		if err != nil {
			return err
		}
	}

	for _, n := range snap.Notices {
		var publishedAt interface{}
		if !n.PublishedAt.IsZero() {
			publishedAt = n.PublishedAt.Format(timeFormat)
		}
		_, err := tx.ExecContext(ctx,
			"INSERT INTO notice (id, status, title, content, color, created_by, created_at, published_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			n.ID, n.Status, n.Title, n.Content, n.Color, n.CreatedBy, n.CreatedAt.Format(timeFormat), publishedAt,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Load reads the stored snapshot. An empty file yields an empty snapshot.
// POST: Returns the stored state in saved order
func (s *SQLiteStore) Load(ctx context.Context) (Snapshot, error) {
	var snap Snapshot

	rows, err := s.db.QueryContext(ctx,
		"SELECT username, password_hash, phone, status, time_minutes, points, streak, slot, last_login, created_at FROM user_account ORDER BY position")
	if err != nil {
		return Snapshot{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var u useraccount.Account
		var lastLogin sql.NullString
		var createdAt string
		if err := rows.Scan(&u.Username, &u.PasswordHash, &u.Phone, &u.Status, &u.TimeMinutes, &u.Points, &u.Streak, &u.Slot, &lastLogin, &createdAt); err != nil {
			return Snapshot{}, err
		}
		u.CreatedAt, _ = parseTime(createdAt)
		if lastLogin.Valid && lastLogin.String != "" {
			u.LastLogin, _ = parseTime(lastLogin.String)
		}
		snap.Users = append(snap.Users, u)
	}
	if err := rows.Err(); err != nil {
		return Snapshot{}, err
	}

	adminRows, err := s.db.QueryContext(ctx,
		"SELECT id, password_hash, name, status, created_at FROM admin_account ORDER BY position")
	if err != nil {
		return Snapshot{}, err
	}
	defer adminRows.Close()
	for adminRows.Next() {
		var a adminaccount.Account
		var createdAt string
		if err := adminRows.Scan(&a.ID, &a.PasswordHash, &a.Name, &a.Status, &createdAt); err != nil {
			return Snapshot{}, err
		}
		a.CreatedAt, _ = parseTime(createdAt)
		snap.Admins = append(snap.Admins, a)
	}
	if err := adminRows.Err(); err != nil {
		return Snapshot{}, err
	}

	slotRows, err := s.db.QueryContext(ctx, "SELECT id, status, held_by FROM pc_slot ORDER BY id")
	if err != nil {
		return Snapshot{}, err
	}
	defer slotRows.Close()
	for slotRows.Next() {
		var sl pcslot.Slot
		if err := slotRows.Scan(&sl.ID, &sl.Status, &sl.HeldBy); err != nil {
			return Snapshot{}, err
		}
		snap.Slots = append(snap.Slots, sl)
	}
	if err := slotRows.Err(); err != nil {
		return Snapshot{}, err
	}

	noticeRows, err := s.db.QueryContext(ctx,
		"SELECT id, status, title, content, color, created_by, created_at, published_at FROM notice")
	if err != nil {
		return Snapshot{}, err
	}
	defer noticeRows.Close()
	for noticeRows.Next() {
		var n notice.Notice
		var createdAt string
		var publishedAt sql.NullString
		if err := noticeRows.Scan(&n.ID, &n.Status, &n.Title, &n.Content, &n.Color, &n.CreatedBy, &createdAt, &publishedAt); err != nil {
			return Snapshot{}, err
		}
		n.CreatedAt, _ = parseTime(createdAt)
		if publishedAt.Valid && publishedAt.String != "" {
			n.PublishedAt, _ = parseTime(publishedAt.String)
		}
		snap.Notices = append(snap.Notices, n)
	}
	if err := noticeRows.Err(); err != nil {
		return Snapshot{}, err
	}

	return snap, nil
}

func parseTime(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		t, err := time.Parse(f, s)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse time: %s", s)
}
