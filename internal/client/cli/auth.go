package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/wayfarer-app/wayfarer/internal/client/ratelimit"
	"github.com/wayfarer-app/wayfarer/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and authenticates.
//
// The attempt is gated by the local rate limiter: a locked-out device is
// told how long to wait without any network call. An online login that fails
// with bad credentials counts against the limiter; success resets it and
// caches the session for offline use. When the server is unreachable the
// cached session is restored instead, if one is valid.
func (a *App) Login(ctx context.Context) error {
	if res := a.limiter.Check(ctx); !res.Allowed {
		fmt.Printf("Too many failed attempts, try again in %s\n", res.RetryAfter.Round(time.Second))
		return common.ErrRateLimited
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	user, _, err := a.remote.SignIn(ctx, email, password)
	if err != nil {
		if errors.Is(err, common.ErrUnavailable) {
			return a.offlineLogin(ctx)
		}

		res := a.limiter.RecordFailure(ctx)
		if !res.Allowed {
			fmt.Printf("Too many failed attempts, try again in %s\n", res.RetryAfter.Round(time.Second))
		} else {
			fmt.Printf("Login failed (%d attempts left)\n", res.RemainingAttempts)
		}
		return err
	}

	a.limiter.Reset(ctx)
	a.cache.CacheSession(ctx, user)
	a.user = &user
	a.setMode(ModeOnline)
	fmt.Printf("Welcome, %s!\n", user.Name)
	return nil
}

// offlineLogin restores the cached session when the backend is unreachable.
func (a *App) offlineLogin(ctx context.Context) error {
	u, ok := a.cache.GetUser(ctx)
	if !ok {
		fmt.Println("Server unavailable and no cached session, try again later")
		return common.ErrUnavailable
	}
	a.user = u
	a.setMode(ModeOffline)
	fmt.Printf("Server unavailable, continuing offline as %s\n", u.Name)
	return nil
}

// lockoutStatus is a display helper for the status command.
func lockoutStatus(res ratelimit.Result) string {
	if res.Allowed {
		return fmt.Sprintf("%d attempts left", res.RemainingAttempts)
	}
	return fmt.Sprintf("locked for %s", res.RetryAfter.Round(time.Second))
}

// Logout drops the cached session but keeps cached trips, documents, and the
// pending queue so the next login finds them.
func (a *App) Logout(ctx context.Context) error {
	a.cache.ClearSession(ctx)
	a.limiter.Reset(ctx)
	a.user = nil
	fmt.Println("Logged out")
	return nil
}
