package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Every statement is idempotent, so the
// full set re-runs on each start.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	// The session table holds at most one row: the active login. A fixed
	// primary key makes replacement an upsert instead of delete+insert.
	`CREATE TABLE IF NOT EXISTS session (
		id          INTEGER PRIMARY KEY CHECK(id = 1),
		token       TEXT NOT NULL,
		employee_id TEXT NOT NULL,
		name        TEXT NOT NULL,
		email       TEXT NOT NULL,
		role        TEXT NOT NULL,
		saved_at    TEXT NOT NULL
	)`,

	// Cached dropdown candidates keyed by lookup kind, refreshed on TTL.
	`CREATE TABLE IF NOT EXISTS lookup_cache (
		kind        TEXT NOT NULL,
		employee_id TEXT NOT NULL,
		name        TEXT NOT NULL,
		fetched_at  TEXT NOT NULL,
		PRIMARY KEY (kind, employee_id)
	)`,
}
