package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/blockplan/internal/db"
	"github.com/alexanderramin/blockplan/internal/domain"
)

// SQLiteRunRepo implements RunRepo using a SQLite database.
type SQLiteRunRepo struct {
	db db.DBTX
}

// NewSQLiteRunRepo creates a new SQLiteRunRepo.
func NewSQLiteRunRepo(conn db.DBTX) *SQLiteRunRepo {
	return &SQLiteRunRepo{db: conn}
}

const runColumns = `id, instance_id, encoding, solver, status, variable_count, constraint_count, duration_ms, error, created_at`

func (r *SQLiteRunRepo) Create(ctx context.Context, run *domain.Run) error {
	query := `INSERT INTO runs (` + runColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query,
		run.ID,
		run.InstanceID,
		string(run.Encoding),
		run.Solver,
		string(run.Status),
		run.VariableCount,
		run.ConstraintCount,
		run.DurationMs,
		run.Error,
		formatTime(run.CreatedAt),
	); err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	placementQuery := `INSERT INTO run_placements (run_id, item_id, start_ordinal, end_ordinal) VALUES (?, ?, ?, ?)`
	for _, p := range run.Placements {
		if _, err := r.db.ExecContext(ctx, placementQuery, run.ID, p.ItemID, p.Start, p.End); err != nil {
			return fmt.Errorf("inserting placement of %s: %w", p.ItemID, err)
		}
	}
	return nil
}

func (r *SQLiteRunRepo) GetByID(ctx context.Context, id string) (*domain.Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs WHERE id = ?`
	run, err := r.scanRun(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadPlacements(ctx, run); err != nil {
		return nil, err
	}
	return run, nil
}

func (r *SQLiteRunRepo) FindByPrefix(ctx context.Context, prefix string) ([]*domain.Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs WHERE id LIKE ? ESCAPE '\' ORDER BY created_at DESC, id`
	return r.queryRuns(ctx, query, likePrefix(prefix))
}

// List returns the most recent runs first. A non-positive limit returns all.
func (r *SQLiteRunRepo) List(ctx context.Context, limit int) ([]*domain.Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY created_at DESC, id`
	if limit > 0 {
		return r.queryRuns(ctx, query+` LIMIT ?`, limit)
	}
	return r.queryRuns(ctx, query)
}

func (r *SQLiteRunRepo) ListByInstance(ctx context.Context, instanceID string) ([]*domain.Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs WHERE instance_id = ? ORDER BY created_at DESC, id`
	return r.queryRuns(ctx, query, instanceID)
}

func (r *SQLiteRunRepo) queryRuns(ctx context.Context, query string, args ...any) ([]*domain.Run, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	var out []*domain.Run
	for rows.Next() {
		run, err := r.scanRun(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	rows.Close()

	for _, run := range out {
		if err := r.loadPlacements(ctx, run); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *SQLiteRunRepo) scanRun(row scanner) (*domain.Run, error) {
	var run domain.Run
	var encoding, status, createdAt string
	err := row.Scan(
		&run.ID, &run.InstanceID, &encoding, &run.Solver, &status,
		&run.VariableCount, &run.ConstraintCount, &run.DurationMs, &run.Error, &createdAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("run: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning run: %w", err)
	}
	run.Encoding = domain.Encoding(encoding)
	run.Status = domain.RunStatus(status)
	if run.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &run, nil
}

func (r *SQLiteRunRepo) loadPlacements(ctx context.Context, run *domain.Run) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT item_id, start_ordinal, end_ordinal FROM run_placements WHERE run_id = ? ORDER BY start_ordinal`, run.ID)
	if err != nil {
		return fmt.Errorf("listing placements: %w", err)
	}
	defer rows.Close()
	run.Placements = nil
	for rows.Next() {
		var p domain.Placement
		if err := rows.Scan(&p.ItemID, &p.Start, &p.End); err != nil {
			return fmt.Errorf("scanning placement row: %w", err)
		}
		run.Placements = append(run.Placements, p)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating placements: %w", err)
	}
	return nil
}
