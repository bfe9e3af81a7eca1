package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alexanderramin/blockplan/internal/db"
	"github.com/alexanderramin/blockplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newConcurrentTestDB creates a file-backed SQLite database in a temp directory.
// Unlike :memory:, a file-backed DB shares state across all connections in the
// pool, which is required to test real concurrent access with WAL mode.
func newConcurrentTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "concurrent_test.db")
	database, err := db.OpenDB(dbPath)
	require.NoError(t, err, "failed to create concurrent test database")
	t.Cleanup(func() { database.Close() })
	return database
}

// TestConcurrentAccess_ReadDuringWrite verifies that run listings stay
// consistent while another goroutine records runs.
func TestConcurrentAccess_ReadDuringWrite(t *testing.T) {
	database := newConcurrentTestDB(t)
	ctx := context.Background()

	inst := testutil.NewTestInstance("concurrent")
	require.NoError(t, NewSQLiteInstanceRepo(database).Create(ctx, inst))

	uow := db.NewSQLiteUnitOfWork(database)
	runs := NewSQLiteRunRepo(database)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			run := testutil.NewTestRun(inst.ID)
			err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
				return NewSQLiteRunRepo(tx).Create(ctx, run)
			})
			if err != nil {
				t.Errorf("writer: run %d: %v", i, err)
				return
			}
		}
	}()

	for r := 0; r < 5; r++ {
		wg.Add(1)
		go func(reader int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				list, err := runs.ListByInstance(ctx, inst.ID)
				if err != nil {
					t.Errorf("reader %d: %v", reader, err)
					return
				}
				// Placements commit with their run; a half-written run never shows.
				for _, run := range list {
					if len(run.Placements) != 3 {
						t.Errorf("reader %d: run %s has %d placements", reader, run.ID, len(run.Placements))
						return
					}
				}
			}
		}(r)
	}

	wg.Wait()

	final, err := runs.ListByInstance(ctx, inst.ID)
	require.NoError(t, err)
	assert.Len(t, final, 20)
}
