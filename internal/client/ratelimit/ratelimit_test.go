package ratelimit

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarer-app/wayfarer/internal/client/store"
	"github.com/wayfarer-app/wayfarer/internal/logging"
	_ "modernc.org/sqlite"
)

func setupLimiter(t *testing.T) *Limiter {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, store.RunMigrations(context.Background(), db))
	return New(store.NewSQLiteKV(db), logging.Setup("error"))
}

func TestCheck_FreshDeviceAllowed(t *testing.T) {
	ctx := context.Background()
	l := setupLimiter(t)

	res := l.Check(ctx)
	assert.True(t, res.Allowed)
	assert.Equal(t, MaxAttempts, res.RemainingAttempts)
}

func TestRecordFailure_LocksOnFifth(t *testing.T) {
	ctx := context.Background()
	l := setupLimiter(t)

	for i := 1; i < MaxAttempts; i++ {
		res := l.RecordFailure(ctx)
		assert.True(t, res.Allowed)
		assert.Equal(t, MaxAttempts-i, res.RemainingAttempts)
	}

	res := l.RecordFailure(ctx)
	assert.False(t, res.Allowed)
	assert.Equal(t, LockoutDuration, res.RetryAfter)

	res = l.Check(ctx)
	assert.False(t, res.Allowed)
	assert.Greater(t, res.RetryAfter, time.Duration(0))
	assert.LessOrEqual(t, res.RetryAfter, LockoutDuration)
}

func TestCheck_LockoutElapses(t *testing.T) {
	ctx := context.Background()
	l := setupLimiter(t)

	for i := 0; i < MaxAttempts; i++ {
		l.RecordFailure(ctx)
	}
	require.False(t, l.Check(ctx).Allowed)

	l.now = func() time.Time { return time.Now().Add(LockoutDuration + time.Second) }

	res := l.Check(ctx)
	assert.True(t, res.Allowed)
	assert.Equal(t, MaxAttempts, res.RemainingAttempts)

	// the elapsed lockout cleared the counter too
	l.now = time.Now
	res = l.Check(ctx)
	assert.True(t, res.Allowed)
	assert.Equal(t, MaxAttempts, res.RemainingAttempts)
}

func TestReset_ClearsEvenDuringLockout(t *testing.T) {
	ctx := context.Background()
	l := setupLimiter(t)

	for i := 0; i < MaxAttempts; i++ {
		l.RecordFailure(ctx)
	}
	require.False(t, l.Check(ctx).Allowed)

	l.Reset(ctx)

	res := l.Check(ctx)
	assert.True(t, res.Allowed)
	assert.Equal(t, MaxAttempts, res.RemainingAttempts)
}

type brokenKV struct{}

func (brokenKV) Get(context.Context, string) ([]byte, error) { return nil, errors.New("io error") }
func (brokenKV) Set(context.Context, string, []byte) error   { return errors.New("io error") }
func (brokenKV) Delete(context.Context, string) error        { return errors.New("io error") }

func TestLimiter_FailsOpenOnStorageErrors(t *testing.T) {
	ctx := context.Background()
	l := New(brokenKV{}, logging.Setup("error"))

	assert.True(t, l.Check(ctx).Allowed)
	for i := 0; i < 3*MaxAttempts; i++ {
		l.RecordFailure(ctx)
	}
	// nothing persisted, so the device never locks
	assert.True(t, l.Check(ctx).Allowed)
}
