package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies the schema. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS kv_store (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	// Size is kept alongside the value so quota checks never read payloads.
	`ALTER TABLE kv_store ADD COLUMN size INTEGER NOT NULL DEFAULT 0`,
	`UPDATE kv_store SET size = length(CAST(value AS BLOB)) WHERE size = 0 AND value != ''`,
}
