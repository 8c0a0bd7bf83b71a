package cli

import (
	"context"
	"fmt"
	"time"
)

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGT"[exp])
}

// Status prints the connectivity mode, the logged-in user, queue depth, the
// last completed sync, and login throttling state.
func (a *App) Status(ctx context.Context) error {
	fmt.Println("Mode:", a.Mode)
	if a.user != nil {
		fmt.Printf("User: %s <%s>\n", a.user.Name, a.user.Email)
	} else {
		fmt.Println("User: not logged in")
	}
	fmt.Println("Pending writes:", a.cache.PendingCount(ctx))
	if last, ok := a.cache.LastSyncAt(ctx); ok {
		fmt.Println("Last sync:", last.Format(time.RFC3339))
	} else {
		fmt.Println("Last sync: never")
	}
	fmt.Println("Login:", lockoutStatus(a.limiter.Check(ctx)))
	return nil
}

// Sync runs a drain pass right now, regardless of the connectivity mode. A
// pass against an unreachable backend simply leaves everything queued.
func (a *App) Sync(ctx context.Context) error {
	report, err := a.coord.SyncNow(ctx)
	if err != nil {
		fmt.Println("Sync did not run:", err)
		return err
	}
	fmt.Printf("Synced: %d applied, %d failed, %d skipped of %d\n",
		report.Applied, report.Failed, report.Skipped, report.Attempted)
	return nil
}

// CacheSize walks the cache directories and prints their current size.
func (a *App) CacheSize(ctx context.Context) error {
	size := a.cache.GetCacheSize(ctx)
	fmt.Printf("Documents: %s\nMaps: %s\nTotal: %s\n",
		formatBytes(size.Documents), formatBytes(size.Maps), formatBytes(size.Total))
	return nil
}

// ClearCache drops cached trips, documents, and map regions. The session and
// the pending queue survive.
func (a *App) ClearCache(ctx context.Context) error {
	a.cache.ClearAll(ctx)
	fmt.Println("Cache cleared")
	return nil
}
