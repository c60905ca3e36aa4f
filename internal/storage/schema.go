package storage

import "database/sql"

// schema defines the cache tables. Both tables are pure caches of
// collaborator responses; rows carry a creation timestamp and are
// invalidated lazily on read plus eagerly by the cleanup job.
const schema = `
CREATE TABLE IF NOT EXISTS synonym_cache (
	term       TEXT PRIMARY KEY,
	synonyms   TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS paper_cache (
	query      TEXT PRIMARY KEY,
	papers     TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_synonym_cache_created_at ON synonym_cache(created_at);
CREATE INDEX IF NOT EXISTS idx_paper_cache_created_at ON paper_cache(created_at);
`

// initSchema creates the cache tables if they do not exist.
func initSchema(conn *sql.DB) error {
	_, err := conn.Exec(schema)
	return err
}
