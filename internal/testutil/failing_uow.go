package testutil

import (
	"context"
	"database/sql"
	"sync/atomic"

	"github.com/alexanderramin/blockplan/internal/db"
)

// FailOnNthExecUoW injects Err on the FailOn-th write of a transaction,
// counting from 1. Reads are never counted. Saving an instance issues one
// write for the instance row and one per item, and a run adds one for the
// run row and one per placement, which makes the failing statement easy to
// aim at.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	wrap := func(tx *sql.Tx) db.DBTX {
		return &countingTx{DBTX: tx, failOn: u.FailOn, err: u.Err}
	}
	return db.RunTx(ctx, u.DB, wrap, fn)
}

type countingTx struct {
	db.DBTX
	writes atomic.Int32
	failOn int32
	err    error
}

func (c *countingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if c.writes.Add(1) == c.failOn {
		return nil, c.err
	}
	return c.DBTX.ExecContext(ctx, query, args...)
}
