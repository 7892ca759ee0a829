package db

import (
	"context"
	"database/sql"
)

// DBTX is what the KV repository runs its statements on: the shared *sql.DB
// for single-key saves, or the *sql.Tx of a UnitOfWork during a restore.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
