package db

import (
	"database/sql"
	"fmt"
)

// Migrate creates the job history schema. Every statement is idempotent.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS jobs (
		id            TEXT PRIMARY KEY,
		reference     TEXT NOT NULL DEFAULT '',
		boiler_from   TEXT NOT NULL DEFAULT '',
		boiler_to     TEXT NOT NULL DEFAULT '',
		cylinder_from TEXT NOT NULL DEFAULT '',
		cylinder_to   TEXT NOT NULL DEFAULT '',
		flue_from     TEXT NOT NULL DEFAULT '',
		flue_to       TEXT NOT NULL DEFAULT '',
		flags_json    TEXT NOT NULL DEFAULT '{}',
		created_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_jobs_created ON jobs(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_reference ON jobs(reference)`,

	`CREATE TABLE IF NOT EXISTS job_notes (
		job_id     TEXT NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
		position   INTEGER NOT NULL,
		section    TEXT NOT NULL,
		lines_json TEXT NOT NULL DEFAULT '[]',
		depot_note TEXT NOT NULL,
		PRIMARY KEY (job_id, position)
	)`,
}
