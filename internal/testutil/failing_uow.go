package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/planforge/internal/db"
)

// FailingWriteUoW runs transactions against DB but makes write number FailAt
// (1-based, counted per transaction) return Err. Reads are not counted. It
// lets restore tests break off halfway through a batch of key writes.
type FailingWriteUoW struct {
	DB     *sql.DB
	FailAt int32
	Err    error
}

func (u *FailingWriteUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(ctx, &failingWrites{DBTX: tx, failAt: u.FailAt, err: u.Err}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

type failingWrites struct {
	db.DBTX
	writes atomic.Int32
	failAt int32
	err    error
}

func (w *failingWrites) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if w.writes.Add(1) == w.failAt {
		return nil, w.err
	}
	return w.DBTX.ExecContext(ctx, query, args...)
}
