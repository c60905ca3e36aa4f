// Package storage provides the SQLite-backed cache for expensive
// collaborator results: per-term synonym sets and literature search
// responses. Cached rows expire after the configured TTL; a background
// job purges expired rows periodically.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver for database/sql
)

// DB wraps the SQLite cache database connection
type DB struct {
	conn     *sql.DB
	path     string
	cacheTTL time.Duration
}

// New creates a new database connection and initializes the schema.
// cacheTTL specifies how long cached rows remain valid before expiring.
func New(dbPath string, cacheTTL time.Duration) (*DB, error) {
	// Ensure directory exists (skip for in-memory database)
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(time.Hour)

	// Enable WAL mode for better concurrency
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// Handle concurrent writers without immediate SQLITE_BUSY errors
	if _, err := conn.Exec("PRAGMA busy_timeout=30000"); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	if _, err := conn.Exec("PRAGMA synchronous=NORMAL"); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to set synchronous mode: %w", err)
	}

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{
		conn:     conn,
		path:     dbPath,
		cacheTTL: cacheTTL,
	}

	if err := initSchema(conn); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

// GetSynonyms retrieves a cached synonym set for a term.
// Returns (synonyms, true, nil) on a fresh hit, (nil, false, nil) on a
// miss or an expired row.
func (db *DB) GetSynonyms(ctx context.Context, term string) ([]string, bool, error) {
	var payload string
	var createdAt time.Time

	err := db.conn.QueryRowContext(ctx,
		`SELECT synonyms, created_at FROM synonym_cache WHERE term = ?`, term,
	).Scan(&payload, &createdAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query synonym cache: %w", err)
	}

	if time.Since(createdAt) > db.cacheTTL {
		return nil, false, nil
	}

	var synonyms []string
	if err := json.Unmarshal([]byte(payload), &synonyms); err != nil {
		return nil, false, fmt.Errorf("decode cached synonyms for %q: %w", term, err)
	}
	return synonyms, true, nil
}

// PutSynonyms stores a synonym set for a term, replacing any previous entry.
func (db *DB) PutSynonyms(ctx context.Context, term string, synonyms []string) error {
	payload, err := json.Marshal(synonyms)
	if err != nil {
		return fmt.Errorf("encode synonyms for %q: %w", term, err)
	}

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO synonym_cache (term, synonyms, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(term) DO UPDATE SET synonyms = excluded.synonyms, created_at = excluded.created_at`,
		term, string(payload), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("store synonyms for %q: %w", term, err)
	}
	return nil
}

// GetPapers retrieves a cached literature search response for a query.
// The payload is the caller's own JSON encoding; storage does not
// interpret it. Returns (payload, true, nil) on a fresh hit.
func (db *DB) GetPapers(ctx context.Context, query string) ([]byte, bool, error) {
	var payload string
	var createdAt time.Time

	err := db.conn.QueryRowContext(ctx,
		`SELECT papers, created_at FROM paper_cache WHERE query = ?`, query,
	).Scan(&payload, &createdAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query paper cache: %w", err)
	}

	if time.Since(createdAt) > db.cacheTTL {
		return nil, false, nil
	}
	return []byte(payload), true, nil
}

// PutPapers stores a literature search response for a query.
func (db *DB) PutPapers(ctx context.Context, query string, payload []byte) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO paper_cache (query, papers, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(query) DO UPDATE SET papers = excluded.papers, created_at = excluded.created_at`,
		query, string(payload), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("store papers for query %q: %w", query, err)
	}
	return nil
}

// CleanupExpired deletes all cache rows older than the TTL.
// Returns the number of rows removed.
func (db *DB) CleanupExpired(ctx context.Context) (int64, error) {
	cutoff := time.Now().UTC().Add(-db.cacheTTL)

	var total int64
	for _, table := range []string{"synonym_cache", "paper_cache"} {
		res, err := db.conn.ExecContext(ctx,
			fmt.Sprintf(`DELETE FROM %s WHERE created_at < ?`, table), cutoff)
		if err != nil {
			return total, fmt.Errorf("cleanup %s: %w", table, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			total += n
		}
	}
	return total, nil
}

// CountSynonyms returns the number of cached synonym entries.
func (db *DB) CountSynonyms(ctx context.Context) (int, error) {
	var count int
	err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM synonym_cache`).Scan(&count)
	return count, err
}

// CountPapers returns the number of cached literature search entries.
func (db *DB) CountPapers(ctx context.Context) (int, error) {
	var count int
	err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM paper_cache`).Scan(&count)
	return count, err
}

// Ready verifies the database connection is usable.
func (db *DB) Ready(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}
