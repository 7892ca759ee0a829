package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type commitLog struct {
	mu     sync.Mutex
	values []string
}

func (c *commitLog) commit(_ context.Context, v string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values = append(c.values, v)
	return nil
}

func (c *commitLog) snapshot() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.values...)
}

func TestDebouncer_LatestWins(t *testing.T) {
	defer goleak.VerifyNone(t)

	var log commitLog
	d := NewDebouncer(20*time.Millisecond, log.commit, nil)
	d.Schedule("a")
	d.Schedule("ab")
	d.Schedule("abc")

	assert.Eventually(t, func() bool { return len(log.snapshot()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"abc"}, log.snapshot())
	require.NoError(t, d.Close(context.Background()))
}

func TestDebouncer_FlushCommitsImmediately(t *testing.T) {
	defer goleak.VerifyNone(t)

	var log commitLog
	d := NewDebouncer(time.Hour, log.commit, nil)
	d.Schedule("draft")
	assert.True(t, d.Pending())

	require.NoError(t, d.Flush(context.Background()))
	assert.Equal(t, []string{"draft"}, log.snapshot())
	assert.False(t, d.Pending())

	require.NoError(t, d.Flush(context.Background()))
	assert.Len(t, log.snapshot(), 1)
	require.NoError(t, d.Close(context.Background()))
}

func TestDebouncer_CloseFlushesAndStops(t *testing.T) {
	defer goleak.VerifyNone(t)

	var log commitLog
	d := NewDebouncer(time.Hour, log.commit, nil)
	d.Schedule("last")
	require.NoError(t, d.Close(context.Background()))
	d.Schedule("ignored")

	assert.Equal(t, []string{"last"}, log.snapshot())
	assert.False(t, d.Pending())
}

func TestDebouncer_ReportsTimerErrors(t *testing.T) {
	defer goleak.VerifyNone(t)

	boom := errors.New("quota")
	errs := make(chan error, 1)
	d := NewDebouncer(5*time.Millisecond, func(context.Context, int) error { return boom }, func(err error) { errs <- err })
	d.Schedule(1)

	select {
	case err := <-errs:
		assert.ErrorIs(t, err, boom)
	case <-time.After(time.Second):
		t.Fatal("expected commit error")
	}
	require.NoError(t, d.Close(context.Background()))
}
