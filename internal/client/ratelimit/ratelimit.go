// Package ratelimit throttles repeated failed sign-in attempts per device.
//
// This is a UX guard, not a security boundary; the authoritative throttle
// lives server-side. Consequently every storage fault here fails open:
// availability of the login flow beats strict local enforcement.
package ratelimit

import (
	"context"
	"strconv"
	"time"

	"github.com/wayfarer-app/wayfarer/internal/client/store"
	"github.com/wayfarer-app/wayfarer/internal/common"
	"github.com/wayfarer-app/wayfarer/internal/logging"
)

const (
	// MaxAttempts is how many failures are tolerated before lockout.
	MaxAttempts = 5

	// LockoutDuration is how long the lockout lasts once triggered.
	LockoutDuration = 5 * time.Minute
)

const (
	keyAttempts = common.KeyPrefix + "login_attempts"
	keyLockout  = common.KeyPrefix + "lockout_until"
)

// Result is the outcome of a rate-limit check or a recorded failure.
type Result struct {
	Allowed bool

	// RemainingAttempts is meaningful when Allowed.
	RemainingAttempts int

	// RetryAfter is meaningful when not Allowed.
	RetryAfter time.Duration
}

// Limiter counts failed sign-ins and enforces a timed lockout, persisted in
// the same local store as the cache.
type Limiter struct {
	kv  store.KV
	log logging.Logger

	// test seam
	now func() time.Time
}

func New(kv store.KV, log logging.Logger) *Limiter {
	return &Limiter{kv: kv, log: log.With("component", "ratelimit"), now: time.Now}
}

// Check reports whether another sign-in attempt is currently allowed. An
// elapsed lockout clears both the counter and the lockout timestamp on the
// way through.
func (l *Limiter) Check(ctx context.Context) Result {
	now := l.now()

	if until, ok := l.lockoutUntil(ctx); ok {
		if now.Before(until) {
			return Result{Allowed: false, RetryAfter: until.Sub(now)}
		}
		// lockout elapsed, start fresh
		l.clear(ctx)
		return Result{Allowed: true, RemainingAttempts: MaxAttempts}
	}

	remaining := MaxAttempts - l.attempts(ctx)
	if remaining < 0 {
		remaining = 0
	}
	return Result{Allowed: true, RemainingAttempts: remaining}
}

// RecordFailure increments the failure counter; reaching MaxAttempts
// triggers the lockout and reports it.
func (l *Limiter) RecordFailure(ctx context.Context) Result {
	attempts := l.attempts(ctx) + 1
	if err := l.kv.Set(ctx, keyAttempts, []byte(strconv.Itoa(attempts))); err != nil {
		l.log.Warn(ctx, "persisting attempt counter failed", "err", err)
	}

	if attempts >= MaxAttempts {
		until := l.now().Add(LockoutDuration)
		if err := l.kv.Set(ctx, keyLockout, []byte(strconv.FormatInt(until.UnixMilli(), 10))); err != nil {
			l.log.Warn(ctx, "persisting lockout failed", "err", err)
		}
		l.log.Info(ctx, "login locked out", "attempts", attempts, "until", until)
		return Result{Allowed: false, RetryAfter: LockoutDuration}
	}

	return Result{Allowed: true, RemainingAttempts: MaxAttempts - attempts}
}

// Reset clears both keys unconditionally, e.g. after a successful sign-in.
func (l *Limiter) Reset(ctx context.Context) {
	l.clear(ctx)
}

func (l *Limiter) clear(ctx context.Context) {
	if err := l.kv.Delete(ctx, keyAttempts); err != nil {
		l.log.Warn(ctx, "clearing attempt counter failed", "err", err)
	}
	if err := l.kv.Delete(ctx, keyLockout); err != nil {
		l.log.Warn(ctx, "clearing lockout failed", "err", err)
	}
}

// attempts reads the stored counter, failing open to zero.
func (l *Limiter) attempts(ctx context.Context) int {
	b, err := l.kv.Get(ctx, keyAttempts)
	if err != nil {
		l.log.Warn(ctx, "reading attempt counter failed", "err", err)
		return 0
	}
	if b == nil {
		return 0
	}
	n, err := strconv.Atoi(string(b))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// lockoutUntil reads the stored lockout expiry, failing open to absent.
func (l *Limiter) lockoutUntil(ctx context.Context) (time.Time, bool) {
	b, err := l.kv.Get(ctx, keyLockout)
	if err != nil {
		l.log.Warn(ctx, "reading lockout failed", "err", err)
		return time.Time{}, false
	}
	if b == nil {
		return time.Time{}, false
	}
	ms, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}
