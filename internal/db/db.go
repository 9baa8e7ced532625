// Package db provides SQLite database initialization and access.
package db

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// BusyTimeoutMS is how long a connection waits on a locked database before
// failing with SQLITE_BUSY.
const BusyTimeoutMS = 5000

// DefaultPath returns the default database path: ~/.nucamp/nucamp.db
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".nucamp", "nucamp.db"), nil
}

// dsn builds the go-sqlite3 data source name. Connection settings live in
// the DSN so every pooled connection gets them, not just the first.
func dsn(path string) string {
	params := url.Values{}
	params.Set("_foreign_keys", "on")
	params.Set("_journal_mode", "WAL")
	params.Set("_busy_timeout", fmt.Sprint(BusyTimeoutMS))
	return path + "?" + params.Encode()
}

// Open opens (or creates) the SQLite database at path and brings its schema
// up to date. Foreign keys, WAL and the busy timeout apply to every connection.
func Open(path string) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, closeOnError(db, fmt.Errorf("connecting to %s: %w", path, err))
	}

	if err := migrate(db); err != nil {
		return nil, closeOnError(db, fmt.Errorf("running migrations: %w", err))
	}

	return db, nil
}

// closeOnError closes db after a failed setup step and returns err,
// noting a close failure alongside it.
func closeOnError(db *sql.DB, err error) error {
	if closeErr := db.Close(); closeErr != nil {
		return fmt.Errorf("%w (also failed to close: %v)", err, closeErr)
	}
	return err
}
