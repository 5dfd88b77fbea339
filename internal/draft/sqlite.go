package draft

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

// draftKey is the single cache slot. The schema is a key/value table so
// a purchase draft could share the file later without a migration.
const draftKey = "sale_draft"

// SQLiteStore keeps the draft in a local sqlite database under the
// data directory.
type SQLiteStore struct {
	mu sync.Mutex
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the draft database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open draft db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS drafts (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init draft schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Load returns the cached draft, or nil when none exists.
func (s *SQLiteStore) Load() (*Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var raw string
	err := s.db.QueryRow("SELECT value FROM drafts WHERE key = ?", draftKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}

	var d Draft
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		// A corrupt cache entry is not worth failing entry over.
		return nil, nil
	}
	return &d, nil
}

// Save overwrites the cached draft.
func (s *SQLiteStore) Save(d *Draft) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.Exec(
		`INSERT INTO drafts (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		draftKey, string(raw),
	)
	if err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

// Clear removes the cached draft.
func (s *SQLiteStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM drafts WHERE key = ?", draftKey); err != nil {
		return fmt.Errorf("failed to clear draft: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
