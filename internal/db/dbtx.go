package db

import (
	"context"
	"database/sql"
)

// DBTX is what repositories run their statements against: a *sql.DB for
// standalone reads, or the *sql.Tx handed out by a UnitOfWork.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Beginner starts transactions. *sql.DB satisfies it.
type Beginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

var (
	_ DBTX     = (*sql.DB)(nil)
	_ DBTX     = (*sql.Tx)(nil)
	_ Beginner = (*sql.DB)(nil)
)
