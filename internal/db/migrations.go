package db

import (
	"database/sql"
	"fmt"
)

// migrations is the ordered schema. Statements must be idempotent; they run
// on every Open.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS campsites (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		name        TEXT    NOT NULL UNIQUE,
		description TEXT    NOT NULL DEFAULT '',
		image       TEXT    NOT NULL DEFAULT '',
		featured    INTEGER NOT NULL DEFAULT 0,
		created_at  DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS comments (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		campsite_id INTEGER NOT NULL REFERENCES campsites(id) ON DELETE CASCADE,
		rating      INTEGER NOT NULL CHECK (rating >= 1 AND rating <= 5),
		author      TEXT    NOT NULL,
		text        TEXT    NOT NULL DEFAULT '',
		created_at  DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_comments_campsite ON comments (campsite_id, id)`,
}

// migrate runs all migrations in order inside one transaction.
func migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning migration: %w", err)
	}
	for i, m := range migrations {
		if _, err := tx.Exec(m); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				return fmt.Errorf("migration %d: %w (rollback: %v)", i, err, rbErr)
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing migrations: %w", err)
	}
	return nil
}
