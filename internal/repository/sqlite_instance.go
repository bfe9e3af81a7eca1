package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/blockplan/internal/db"
	"github.com/alexanderramin/blockplan/internal/domain"
)

// SQLiteInstanceRepo implements InstanceRepo using a SQLite database.
// Create writes several rows; run it inside a UnitOfWork for atomicity.
type SQLiteInstanceRepo struct {
	db db.DBTX
}

// NewSQLiteInstanceRepo creates a new SQLiteInstanceRepo.
func NewSQLiteInstanceRepo(conn db.DBTX) *SQLiteInstanceRepo {
	return &SQLiteInstanceRepo{db: conn}
}

type cellRow struct {
	Item     string `json:"item"`
	Position string `json:"position"`
}

type sideConstraintRow struct {
	Name  string    `json:"name"`
	Cells []cellRow `json:"cells"`
	Bound string    `json:"bound"`
	Value int       `json:"value"`
}

func encodeSideConstraints(side []domain.SideConstraint) (string, error) {
	rows := make([]sideConstraintRow, 0, len(side))
	for _, sc := range side {
		row := sideConstraintRow{Name: sc.Name, Bound: string(sc.Bound), Value: sc.Value}
		row.Cells = make([]cellRow, 0, len(sc.Cells))
		for _, c := range sc.Cells {
			row.Cells = append(row.Cells, cellRow{Item: c.ItemID, Position: c.PositionID})
		}
		rows = append(rows, row)
	}
	b, err := json.Marshal(rows)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeSideConstraints(raw string) ([]domain.SideConstraint, error) {
	var rows []sideConstraintRow
	if err := json.Unmarshal([]byte(raw), &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	out := make([]domain.SideConstraint, 0, len(rows))
	for _, row := range rows {
		sc := domain.SideConstraint{Name: row.Name, Bound: domain.Bound(row.Bound), Value: row.Value}
		for _, c := range row.Cells {
			sc.Cells = append(sc.Cells, domain.CellRef{ItemID: c.Item, PositionID: c.Position})
		}
		out = append(out, sc)
	}
	return out, nil
}

func (r *SQLiteInstanceRepo) Create(ctx context.Context, inst *domain.Instance) error {
	side, err := encodeSideConstraints(inst.SideConstraints)
	if err != nil {
		return fmt.Errorf("encoding side constraints: %w", err)
	}
	query := `INSERT INTO instances (id, name, timeline_length, side_constraints, created_at)
		VALUES (?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query,
		inst.ID,
		inst.Name,
		inst.TimelineLength,
		side,
		formatTime(inst.CreatedAt),
	); err != nil {
		return fmt.Errorf("inserting instance: %w", err)
	}

	itemQuery := `INSERT INTO instance_items (instance_id, item_id, length, order_index) VALUES (?, ?, ?, ?)`
	for i, it := range inst.Items {
		if _, err := r.db.ExecContext(ctx, itemQuery, inst.ID, it.ID, it.Length, i); err != nil {
			return fmt.Errorf("inserting item %s: %w", it.ID, err)
		}
	}
	return nil
}

func (r *SQLiteInstanceRepo) GetByID(ctx context.Context, id string) (*domain.Instance, error) {
	query := `SELECT id, name, timeline_length, side_constraints, created_at FROM instances WHERE id = ?`
	inst, err := r.scanInstance(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, inst); err != nil {
		return nil, err
	}
	return inst, nil
}

// FindByPrefix returns every instance whose id starts with prefix.
func (r *SQLiteInstanceRepo) FindByPrefix(ctx context.Context, prefix string) ([]*domain.Instance, error) {
	query := `SELECT id, name, timeline_length, side_constraints, created_at
		FROM instances WHERE id LIKE ? ESCAPE '\' ORDER BY created_at DESC, id`
	return r.queryInstances(ctx, query, likePrefix(prefix))
}

func (r *SQLiteInstanceRepo) List(ctx context.Context) ([]*domain.Instance, error) {
	query := `SELECT id, name, timeline_length, side_constraints, created_at
		FROM instances ORDER BY created_at DESC, id`
	return r.queryInstances(ctx, query)
}

func (r *SQLiteInstanceRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM instances WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting instance: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("instance %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteInstanceRepo) queryInstances(ctx context.Context, query string, args ...any) ([]*domain.Instance, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing instances: %w", err)
	}
	var out []*domain.Instance
	for rows.Next() {
		inst, err := r.scanInstance(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, inst)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating instances: %w", err)
	}
	rows.Close()

	// Items are loaded after the cursor is closed; a single-connection
	// database cannot serve two open queries.
	for _, inst := range out {
		if err := r.loadItems(ctx, inst); err != nil {
			return nil, err
		}
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteInstanceRepo) scanInstance(row scanner) (*domain.Instance, error) {
	var inst domain.Instance
	var side, createdAt string
	if err := row.Scan(&inst.ID, &inst.Name, &inst.TimelineLength, &side, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("instance: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning instance: %w", err)
	}
	var err error
	if inst.SideConstraints, err = decodeSideConstraints(side); err != nil {
		return nil, fmt.Errorf("decoding side constraints of %s: %w", inst.ID, err)
	}
	if inst.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &inst, nil
}

func (r *SQLiteInstanceRepo) loadItems(ctx context.Context, inst *domain.Instance) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT item_id, length FROM instance_items WHERE instance_id = ? ORDER BY order_index`, inst.ID)
	if err != nil {
		return fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()
	inst.Items = nil
	for rows.Next() {
		var it domain.Item
		if err := rows.Scan(&it.ID, &it.Length); err != nil {
			return fmt.Errorf("scanning item row: %w", err)
		}
		inst.Items = append(inst.Items, it)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating items: %w", err)
	}
	return nil
}
