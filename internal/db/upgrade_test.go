package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMigrate_UpgradePath_RunsWithoutErrorColumn simulates a database created
// before failed runs stored their message. Existing rows must survive and
// pick up the column default.
func TestMigrate_UpgradePath_RunsWithoutErrorColumn(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`PRAGMA foreign_keys = ON`)
	require.NoError(t, err)

	legacy := []string{
		`CREATE TABLE instances (
			id               TEXT PRIMARY KEY,
			name             TEXT NOT NULL,
			timeline_length  INTEGER NOT NULL CHECK(timeline_length > 0),
			side_constraints TEXT NOT NULL DEFAULT '[]',
			created_at       TEXT NOT NULL
		)`,
		`CREATE TABLE runs (
			id               TEXT PRIMARY KEY,
			instance_id      TEXT NOT NULL REFERENCES instances(id) ON DELETE CASCADE,
			encoding         TEXT NOT NULL,
			solver           TEXT NOT NULL,
			status           TEXT NOT NULL,
			variable_count   INTEGER NOT NULL DEFAULT 0,
			constraint_count INTEGER NOT NULL DEFAULT 0,
			duration_ms      INTEGER NOT NULL DEFAULT 0,
			created_at       TEXT NOT NULL
		)`,
		`INSERT INTO instances (id, name, timeline_length, created_at) VALUES ('i1', 'legacy', 5, '2025-06-01T00:00:00Z')`,
		`INSERT INTO runs (id, instance_id, encoding, solver, status, created_at)
			VALUES ('r1', 'i1', 'windowed-indicator', 'gophersat', 'feasible', '2025-06-01T00:00:00Z')`,
	}
	for _, stmt := range legacy {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	require.NoError(t, Migrate(db))

	var status, msg string
	err = db.QueryRow(`SELECT status, error FROM runs WHERE id = 'r1'`).Scan(&status, &msg)
	require.NoError(t, err)
	assert.Equal(t, "feasible", status)
	assert.Equal(t, "", msg)

	var name string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='run_placements'`).Scan(&name)
	require.NoError(t, err)

	require.NoError(t, Migrate(db), "re-running after upgrade must be a no-op")
}
