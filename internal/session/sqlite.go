// Package session provides the session-scoped key-value store and the
// per-session identifier sent with every words API request.
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// MemoryPath keeps the store in memory so it disappears with the process.
const MemoryPath = ":memory:"

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("session store closed")

// Store is a string key-value store whose contents live for one session.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// SQLite implements Store on a SQLite database. Contents are cleared on Open
// and on Close, so a file-backed store still behaves as session scoped.
type SQLite struct {
	mu     sync.Mutex
	db     *sql.DB
	closed bool
}

// Open creates the store at path, or in memory when path is empty or MemoryPath.
func Open(path string) (*SQLite, error) {
	if path == "" {
		path = MemoryPath
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening session store: %w", err)
	}
	// Every new connection to :memory: is a separate empty database.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to session store: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	// A file left behind by a process that never reached Close starts empty too.
	if _, err := db.Exec(`DELETE FROM session_values`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("clearing session values: %w", err)
	}
	return s, nil
}

// migrate creates the values table.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS session_values (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at DATETIME NOT NULL
		);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating session_values table: %w", err)
	}
	return nil
}

// Get returns the value stored under key.
func (s *SQLite) Get(ctx context.Context, key string) (string, bool, error) {
	if err := s.checkOpen(); err != nil {
		return "", false, err
	}

	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM session_values WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("querying session value: %w", err)
	}
	return value, true, nil
}

// Set stores value under key, replacing any existing value.
func (s *SQLite) Set(ctx context.Context, key, value string) error {
	if err := s.checkOpen(); err != nil {
		return err
	}

	query := `
		INSERT INTO session_values (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := s.db.ExecContext(ctx, query, key, value, time.Now().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("storing session value: %w", err)
	}
	return nil
}

// Close ends the session: all values are deleted and the database is closed.
func (s *SQLite) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	_, clearErr := s.db.Exec(`DELETE FROM session_values`)
	closeErr := s.db.Close()
	if clearErr != nil {
		return fmt.Errorf("clearing session values: %w", clearErr)
	}
	return closeErr
}

func (s *SQLite) checkOpen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	return nil
}
