package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/planforge/internal/db"
)

// DefaultQuotaBytes matches the per-origin budget browsers give localStorage.
const DefaultQuotaBytes int64 = 5 * 1024 * 1024

// SQLiteKVRepo implements KVStore on the kv_store table. A quota of zero or
// less disables the size check.
type SQLiteKVRepo struct {
	db    db.DBTX
	quota int64
}

func NewSQLiteKVRepo(conn db.DBTX, quota int64) *SQLiteKVRepo {
	return &SQLiteKVRepo{db: conn, quota: quota}
}

func (r *SQLiteKVRepo) Get(ctx context.Context, key Key) (string, bool, error) {
	if err := checkKey(key); err != nil {
		return "", false, err
	}
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = ?`, string(key)).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading %s: %w", key, err)
	}
	return value, true, nil
}

func (r *SQLiteKVRepo) Set(ctx context.Context, key Key, value string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	size := int64(len(value))
	if r.quota > 0 {
		var others int64
		err := r.db.QueryRowContext(ctx,
			`SELECT COALESCE(SUM(size), 0) FROM kv_store WHERE key != ?`, string(key)).Scan(&others)
		if err != nil {
			return fmt.Errorf("measuring store usage: %w", err)
		}
		if others+size > r.quota {
			return fmt.Errorf("writing %s (%d bytes, %d of %d in use): %w",
				key, size, others, r.quota, ErrQuotaExceeded)
		}
	}

	_, err := r.db.ExecContext(ctx, `INSERT INTO kv_store (key, value, updated_at, size)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value,
			updated_at = excluded.updated_at, size = excluded.size`,
		string(key), value, nowUTC(), size)
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

func (r *SQLiteKVRepo) Delete(ctx context.Context, key Key) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM kv_store WHERE key = ?`, string(key)); err != nil {
		return fmt.Errorf("deleting %s: %w", key, err)
	}
	return nil
}

// Keys returns the stored keys in namespace order.
func (r *SQLiteKVRepo) Keys(ctx context.Context) ([]Key, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key FROM kv_store`)
	if err != nil {
		return nil, fmt.Errorf("listing keys: %w", err)
	}
	defer rows.Close()

	present := map[Key]bool{}
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scanning key: %w", err)
		}
		present[Key(k)] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing keys: %w", err)
	}

	var out []Key
	for _, k := range Keys {
		if present[k] {
			out = append(out, k)
		}
	}
	return out, nil
}

func (r *SQLiteKVRepo) Usage(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(size), 0) FROM kv_store`).Scan(&n); err != nil {
		return 0, fmt.Errorf("measuring store usage: %w", err)
	}
	return n, nil
}
