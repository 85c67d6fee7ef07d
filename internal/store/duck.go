package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/marcboeker/go-duckdb"
)

// DuckStore keeps provider payloads and analysis history in DuckDB. It
// implements Cache so it can back the providers directly.
type DuckStore struct {
	db   *sqlx.DB
	path string
}

// OpenDuck opens or creates a DuckDB database at the given path. Use an
// empty string for an in-memory database.
func OpenDuck(path string) (*DuckStore, error) {
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create cache directory: %w", err)
		}
	}

	db, err := sqlx.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &DuckStore{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *DuckStore) Close() error {
	return s.db.Close()
}

// ensureSchema creates tables if they don't exist.
func (s *DuckStore) ensureSchema() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS payloads (
		provider VARCHAR,
		key VARCHAR,
		payload BLOB,
		fetched_at TIMESTAMP,
		PRIMARY KEY (provider, key)
	)`); err != nil {
		return err
	}
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS analyses (
		id VARCHAR PRIMARY KEY,
		description VARCHAR,
		result VARCHAR,
		created_at TIMESTAMP
	)`)
	return err
}

// Get returns the cached payload for provider and key.
func (s *DuckStore) Get(provider, key string) ([]byte, bool, error) {
	var payload []byte
	err := s.db.Get(&payload,
		`SELECT payload FROM payloads WHERE provider = ? AND key = ?`, provider, key)
	if err == nil {
		return payload, true, nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	return nil, false, fmt.Errorf("read payload %s/%s: %w", provider, key, err)
}

// Put stores a payload, replacing any previous entry.
func (s *DuckStore) Put(provider, key string, payload []byte) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO payloads (provider, key, payload, fetched_at) VALUES (?, ?, ?, ?)`,
		provider, key, payload, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("store payload %s/%s: %w", provider, key, err)
	}
	return nil
}

// Analysis is one recorded analysis run.
type Analysis struct {
	ID          string    `db:"id"`
	Description string    `db:"description"`
	Result      string    `db:"result"`
	CreatedAt   time.Time `db:"created_at"`
}

// SaveAnalysis records a completed analysis and returns its ID.
func (s *DuckStore) SaveAnalysis(description, result string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO analyses (id, description, result, created_at) VALUES (?, ?, ?, ?)`,
		id, description, result, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("save analysis: %w", err)
	}
	return id, nil
}

// RecentAnalyses returns the most recent analyses, newest first.
func (s *DuckStore) RecentAnalyses(limit int) ([]Analysis, error) {
	var out []Analysis
	err := s.db.Select(&out,
		`SELECT id, description, result, created_at FROM analyses ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("read analyses: %w", err)
	}
	return out, nil
}
