package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	err := Migrate(db)
	require.NoError(t, err)

	err = Migrate(db)
	require.NoError(t, err)
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{"instances", "instance_items", "runs", "run_placements"}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	expected := []string{"idx_instance_items_order", "idx_runs_instance", "idx_runs_created"}
	for _, idx := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	err := db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk)
	require.NoError(t, err)
	assert.Equal(t, 1, fk, "foreign keys should be enabled")
}

func TestMigrate_WALModeRequested(t *testing.T) {
	// In-memory SQLite reports "memory"; WAL only applies to file DBs.
	db := openTestDB(t)

	var mode string
	err := db.QueryRow(`PRAGMA journal_mode`).Scan(&mode)
	require.NoError(t, err)
	assert.Equal(t, "memory", mode)
}

func insertInstance(t *testing.T, db *sql.DB, id string, length int) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO instances (id, name, timeline_length, created_at) VALUES (?, ?, ?, ?)`,
		id, "test", length, "2026-01-01T00:00:00Z")
	require.NoError(t, err)
}

func TestMigrate_InstancesCheckConstraints(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO instances (id, name, timeline_length, created_at) VALUES ('i0', 'bad', 0, '2026-01-01T00:00:00Z')`)
	assert.Error(t, err, "zero timeline should be rejected")

	insertInstance(t, db, "i1", 5)
	_, err = db.Exec(`INSERT INTO instance_items (instance_id, item_id, length) VALUES ('i1', 'A', 0)`)
	assert.Error(t, err, "zero length should be rejected")

	_, err = db.Exec(`INSERT INTO instance_items (instance_id, item_id, length) VALUES ('i1', 'A', 2)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO instance_items (instance_id, item_id, length) VALUES ('i1', 'A', 3)`)
	assert.Error(t, err, "duplicate item id should be rejected")

	var side string
	require.NoError(t, db.QueryRow(`SELECT side_constraints FROM instances WHERE id = 'i1'`).Scan(&side))
	assert.Equal(t, "[]", side)
}

func TestMigrate_RunsCheckConstraints(t *testing.T) {
	db := openTestDB(t)
	insertInstance(t, db, "i1", 5)

	_, err := db.Exec(`INSERT INTO runs (id, instance_id, encoding, solver, status, created_at)
		VALUES ('r1', 'i1', 'interval', 'gini', 'feasible', '2026-01-01T00:00:00Z')`)
	assert.Error(t, err, "unknown encoding should be rejected")

	_, err = db.Exec(`INSERT INTO runs (id, instance_id, encoding, solver, status, created_at)
		VALUES ('r1', 'i1', 'window-start', 'gini', 'maybe', '2026-01-01T00:00:00Z')`)
	assert.Error(t, err, "unknown status should be rejected")

	_, err = db.Exec(`INSERT INTO runs (id, instance_id, encoding, solver, status, created_at)
		VALUES ('r1', 'i1', 'window-start', 'gini', 'feasible', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO run_placements (run_id, item_id, start_ordinal, end_ordinal) VALUES ('r1', 'A', 3, 2)`)
	assert.Error(t, err, "end before start should be rejected")
}

func TestMigrate_DeletingInstanceCascades(t *testing.T) {
	db := openTestDB(t)
	insertInstance(t, db, "i1", 5)

	_, err := db.Exec(`INSERT INTO instance_items (instance_id, item_id, length) VALUES ('i1', 'A', 2)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO runs (id, instance_id, encoding, solver, status, created_at)
		VALUES ('r1', 'i1', 'windowed-indicator', 'gophersat', 'feasible', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO run_placements (run_id, item_id, start_ordinal, end_ordinal) VALUES ('r1', 'A', 1, 2)`)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM instances WHERE id = 'i1'`)
	require.NoError(t, err)

	for _, table := range []string{"instance_items", "runs", "run_placements"} {
		var n int
		require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
		assert.Zero(t, n, "%s should be empty", table)
	}
}
