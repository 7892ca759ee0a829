package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/planforge/internal/repository"
)

// record binds one store key to its Go type.
type record[T any] struct {
	store    repository.KVStore
	key      repository.Key
	defaults func() T
	backfill func(*T)
}

// load returns the stored record, or defaults when nothing is stored yet.
// A snapshot that fails to decode yields defaults plus ErrCorruptRecord.
func (r record[T]) load(ctx context.Context) (T, error) {
	raw, found, err := r.store.Get(ctx, r.key)
	if err != nil {
		return r.defaults(), err
	}
	if !found {
		return r.defaults(), nil
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return r.defaults(), fmt.Errorf("%s: %w: %v", r.key, ErrCorruptRecord, err)
	}
	if r.backfill != nil {
		r.backfill(&v)
	}
	return v, nil
}

func (r record[T]) save(ctx context.Context, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", r.key, err)
	}
	return r.store.Set(ctx, r.key, string(data))
}

// loadForEdit is load for mutating paths: a corrupt snapshot is replaced by
// the defaults instead of blocking the edit.
func (r record[T]) loadForEdit(ctx context.Context) (T, error) {
	v, err := r.load(ctx)
	if err != nil && !isCorrupt(err) {
		return v, err
	}
	return v, nil
}
