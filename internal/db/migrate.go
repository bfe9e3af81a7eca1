package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS instances (
		id               TEXT PRIMARY KEY,
		name             TEXT NOT NULL,
		timeline_length  INTEGER NOT NULL CHECK(timeline_length > 0),
		side_constraints TEXT NOT NULL DEFAULT '[]',
		created_at       TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS instance_items (
		instance_id TEXT NOT NULL REFERENCES instances(id) ON DELETE CASCADE,
		item_id     TEXT NOT NULL,
		length      INTEGER NOT NULL CHECK(length > 0),
		order_index INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (instance_id, item_id)
	)`,

	`CREATE TABLE IF NOT EXISTS runs (
		id               TEXT PRIMARY KEY,
		instance_id      TEXT NOT NULL REFERENCES instances(id) ON DELETE CASCADE,
		encoding         TEXT NOT NULL
		                 CHECK(encoding IN ('windowed-indicator','window-start')),
		solver           TEXT NOT NULL,
		status           TEXT NOT NULL
		                 CHECK(status IN ('feasible','infeasible','failed')),
		variable_count   INTEGER NOT NULL DEFAULT 0,
		constraint_count INTEGER NOT NULL DEFAULT 0,
		duration_ms      INTEGER NOT NULL DEFAULT 0,
		created_at       TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS run_placements (
		run_id        TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		item_id       TEXT NOT NULL,
		start_ordinal INTEGER NOT NULL CHECK(start_ordinal > 0),
		end_ordinal   INTEGER NOT NULL CHECK(end_ordinal >= start_ordinal),
		PRIMARY KEY (run_id, item_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_instance_items_order ON instance_items(instance_id, order_index)`,
	`CREATE INDEX IF NOT EXISTS idx_runs_instance ON runs(instance_id)`,
	`CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at)`,

	// Failed runs keep the engine's message.
	`ALTER TABLE runs ADD COLUMN error TEXT NOT NULL DEFAULT ''`,
}
