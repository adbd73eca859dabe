// Package store persists the recent search queries in SQLite so the history
// survives restarts. The engine itself writes no state; this store backs the
// search history collaborator only.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // register sqlite driver
)

// MaxQueries is how many recent queries are kept on disk.
const MaxQueries = 10

// QueryStore provides SQLite-backed query history.
type QueryStore struct {
	db *sql.DB
}

// Open opens or creates the history database at the given path.
func Open(dbPath string) (*QueryStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating store dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &QueryStore{db: db}, nil
}

// Close closes the database.
func (s *QueryStore) Close() error {
	return s.db.Close()
}

// Record stores an accepted query, replacing any earlier use of the same
// text, and prunes everything beyond the MaxQueries most recent.
func (s *QueryStore) Record(query string) error {
	if query == "" {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	// Fixed-width so lexicographic ORDER BY matches chronological order.
	now := time.Now().UTC().Format("2006-01-02T15:04:05.000000000Z")
	if _, err := tx.Exec(
		`INSERT OR REPLACE INTO recent_queries (query, last_used) VALUES (?, ?)`,
		query, now,
	); err != nil {
		return err
	}

	if _, err := tx.Exec(
		`DELETE FROM recent_queries WHERE query NOT IN
		 (SELECT query FROM recent_queries ORDER BY last_used DESC LIMIT ?)`,
		MaxQueries,
	); err != nil {
		return err
	}

	return tx.Commit()
}

// Recent returns stored queries, most recent first.
func (s *QueryStore) Recent(limit int) ([]string, error) {
	if limit <= 0 || limit > MaxQueries {
		limit = MaxQueries
	}

	rows, err := s.db.Query(
		`SELECT query FROM recent_queries ORDER BY last_used DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var queries []string
	for rows.Next() {
		var q string
		if err := rows.Scan(&q); err != nil {
			return nil, err
		}
		queries = append(queries, q)
	}
	return queries, rows.Err()
}

// Path returns the platform-appropriate history database path.
func Path() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "ccview", "history.db")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "ccview", "history.db")
}
