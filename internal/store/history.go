// Package store persists solved problems in SQLite so they can be listed later.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"gusto/internal/logging"
)

// ErrClosed is returned by every method after Close.
var ErrClosed = errors.New("history store is closed")

// Entry is one recorded solution.
type Entry struct {
	ID        string
	Mode      string
	Problem   string
	Kind      string
	Medium    string // resolved medium for prompt-mode entries
	Answer    string
	Details   []string
	CreatedAt time.Time
}

// HistoryStore records solutions in a single SQLite table.
type HistoryStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	dbPath string
	closed bool
}

// NewHistoryStore opens (creating if needed) the database at path.
// ":memory:" gives a private in-memory database.
func NewHistoryStore(path string) (*HistoryStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection keeps :memory: databases coherent and serializes writers.
	db.SetMaxOpenConns(1)

	s := &HistoryStore{db: db, dbPath: path}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	logging.StoreDebug("history store opened at %s", path)
	return s, nil
}

func (s *HistoryStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS solutions (
		id TEXT PRIMARY KEY,
		mode TEXT NOT NULL,
		problem TEXT NOT NULL,
		kind TEXT NOT NULL,
		answer TEXT NOT NULL,
		details_json TEXT NOT NULL DEFAULT '[]',
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_solutions_kind ON solutions(kind);
	CREATE INDEX IF NOT EXISTS idx_solutions_created ON solutions(created_at);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return RunMigrations(s.db)
}

// Path returns the database location.
func (s *HistoryStore) Path() string { return s.dbPath }

// Close closes the database connection.
func (s *HistoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// Record inserts an entry. Missing ID and CreatedAt are filled in; the stored entry is returned.
func (s *HistoryStore) Record(ctx context.Context, e Entry) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Entry{}, ErrClosed
	}

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	details := e.Details
	if details == nil {
		details = []string{}
	}
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to marshal details: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO solutions (id, mode, problem, kind, medium, answer, details_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Mode, e.Problem, e.Kind, e.Medium, e.Answer, string(detailsJSON), e.CreatedAt.UnixNano())
	if err != nil {
		logging.StoreError("record %s failed: %v", e.ID, err)
		return Entry{}, fmt.Errorf("failed to record solution: %w", err)
	}
	logging.StoreDebug("recorded %s kind=%s", e.ID, e.Kind)
	return e, nil
}

// Recent returns up to limit entries, newest first. A non-empty kind filters by Solution kind.
func (s *HistoryStore) Recent(ctx context.Context, limit int, kind string) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}
	if limit <= 0 {
		return nil, nil
	}

	query := `SELECT id, mode, problem, kind, medium, answer, details_json, created_at FROM solutions`
	args := []interface{}{}
	if kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, kind)
	}
	query += ` ORDER BY created_at DESC, rowid DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e           Entry
			detailsJSON string
			createdAt   int64
		)
		if err := rows.Scan(&e.ID, &e.Mode, &e.Problem, &e.Kind, &e.Medium, &e.Answer, &detailsJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		if err := json.Unmarshal([]byte(detailsJSON), &e.Details); err != nil {
			return nil, fmt.Errorf("failed to decode details for %s: %w", e.ID, err)
		}
		if len(e.Details) == 0 {
			e.Details = nil
		}
		e.CreatedAt = time.Unix(0, createdAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// CountByKind returns how many solutions of each kind were recorded.
func (s *HistoryStore) CountByKind(ctx context.Context) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}

	rows, err := s.db.QueryContext(ctx, `SELECT kind, COUNT(*) FROM solutions GROUP BY kind`)
	if err != nil {
		return nil, fmt.Errorf("failed to count history: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count row: %w", err)
		}
		counts[kind] = n
	}
	return counts, rows.Err()
}

// Clear deletes every entry and reports how many were removed.
func (s *HistoryStore) Clear(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrClosed
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM solutions`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear history: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	logging.Store("cleared %d history entries", n)
	return n, nil
}
