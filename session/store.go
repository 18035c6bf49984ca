package session

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"library-client/library"
)

// Store persists the signed-in identity in a small SQLite file so the CLI
// stays logged in between invocations. It holds at most one identity.
type Store struct {
	db *sql.DB
}

// OpenStore opens (or creates) the SQLite database at path and applies
// schema migrations.
func OpenStore(path string) (*Store, error) {
	// Ensure directory exists so first-run succeeds.
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create session dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := applyMigrations(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the DB.
func (s *Store) Close() error { return s.db.Close() }

// ---------------------------------------------------------------------------
// Schema migration
// ---------------------------------------------------------------------------

const schemaVersion = 1

func applyMigrations(db *sql.DB) error {
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return fmt.Errorf("enable WAL: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT);`); err != nil {
		return err
	}

	var current int
	_ = db.QueryRow(`SELECT value FROM meta WHERE key='schema_version';`).Scan(&current)
	if current >= schemaVersion {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmts := []string{
		// Single row keyed by slot=1.
		`CREATE TABLE IF NOT EXISTS identity (
            slot INTEGER PRIMARY KEY CHECK (slot = 1),
            user_id INTEGER NOT NULL,
            student_id TEXT NOT NULL,
            name TEXT NOT NULL,
            email TEXT NOT NULL DEFAULT '',
            role TEXT NOT NULL DEFAULT 'student',
            signed_in_at DATETIME NOT NULL
        );`,
		`INSERT INTO meta(key,value) VALUES('schema_version',?)
            ON CONFLICT(key) DO UPDATE SET value=excluded.value;`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt, schemaVersion); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}

	return tx.Commit()
}

// ---------------------------------------------------------------------------
// Identity row
// ---------------------------------------------------------------------------

// Save replaces the stored identity with u.
func (s *Store) Save(u library.User) error {
	_, err := s.db.Exec(`
	INSERT INTO identity(slot, user_id, student_id, name, email, role, signed_in_at)
	VALUES(1,?,?,?,?,?,?)
	ON CONFLICT(slot) DO UPDATE SET user_id=excluded.user_id,
	              student_id=excluded.student_id,
	              name=excluded.name,
	              email=excluded.email,
	              role=excluded.role,
	              signed_in_at=excluded.signed_in_at
	`, u.ID, u.StudentID, u.Name, u.Email, u.Role, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save identity: %w", err)
	}
	return nil
}

// Load returns the stored identity, or nil when nobody is signed in.
func (s *Store) Load() (*library.User, error) {
	var u library.User
	err := s.db.QueryRow(`SELECT user_id, student_id, name, email, role FROM identity WHERE slot=1`).
		Scan(&u.ID, &u.StudentID, &u.Name, &u.Email, &u.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load identity: %w", err)
	}
	return &u, nil
}

// Clear forgets the stored identity.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM identity WHERE slot=1`); err != nil {
		return fmt.Errorf("clear identity: %w", err)
	}
	return nil
}
