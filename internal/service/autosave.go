package service

import (
	"context"
	"sync"
	"time"
)

// DefaultAutosaveDelay is the quiet period before a scheduled save runs.
const DefaultAutosaveDelay = 500 * time.Millisecond

// Debouncer coalesces rapid edits into one commit. Each Schedule replaces
// the pending value and restarts the quiet period; only the latest value is
// committed. Commits never overlap.
type Debouncer[T any] struct {
	delay   time.Duration
	commit  func(ctx context.Context, v T) error
	onError func(error)

	commitMu sync.Mutex

	mu      sync.Mutex
	timer   *time.Timer
	pending *T
	closed  bool
}

// NewDebouncer returns a Debouncer that calls commit after delay of quiet.
// Errors from timer-driven commits go to onError, which may be nil.
func NewDebouncer[T any](delay time.Duration, commit func(ctx context.Context, v T) error, onError func(error)) *Debouncer[T] {
	if delay <= 0 {
		delay = DefaultAutosaveDelay
	}
	if onError == nil {
		onError = func(error) {}
	}
	return &Debouncer[T]{delay: delay, commit: commit, onError: onError}
}

// Schedule records v as the value to commit. It is a no-op after Close.
func (d *Debouncer[T]) Schedule(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.pending = &v
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

// Pending reports whether a value is waiting to be committed.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

func (d *Debouncer[T]) fire() {
	if err := d.run(context.Background()); err != nil {
		d.onError(err)
	}
}

// run commits the pending value, if any. Taking the value under commitMu
// keeps commits in schedule order.
func (d *Debouncer[T]) run(ctx context.Context) error {
	d.commitMu.Lock()
	defer d.commitMu.Unlock()

	d.mu.Lock()
	v := d.pending
	d.pending = nil
	d.mu.Unlock()

	if v == nil {
		return nil
	}
	return d.commit(ctx, *v)
}

// Flush commits the pending value now instead of waiting for the timer.
func (d *Debouncer[T]) Flush(ctx context.Context) error {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()
	return d.run(ctx)
}

// Close flushes and rejects further schedules.
func (d *Debouncer[T]) Close(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	return d.Flush(ctx)
}
