// Package sync drains the queue of writes made while offline and replays
// them against the remote API once connectivity returns.
package sync

import (
	"context"
	"sync"
	"time"

	"github.com/wayfarer-app/wayfarer/internal/client/cache"
	"github.com/wayfarer-app/wayfarer/internal/client/models"
	"github.com/wayfarer-app/wayfarer/internal/common"
	"github.com/wayfarer-app/wayfarer/internal/logging"
)

// Handler replays one pending write against the remote API. A nil error
// dequeues the item; any error keeps it queued for the next pass.
type Handler interface {
	Apply(ctx context.Context, item models.PendingWrite) error
}

// Report summarizes one drain pass.
type Report struct {
	Attempted int
	Applied   int
	Failed    int
	Skipped   int
}

// Coordinator owns the drain loop. Handlers are registered per collection;
// items for collections without a handler stay queued and are only counted.
type Coordinator struct {
	cache *cache.Manager
	log   logging.Logger

	mu       sync.Mutex
	handlers map[string]Handler
	draining bool

	// test seam
	now func() time.Time
}

func NewCoordinator(c *cache.Manager, log logging.Logger) *Coordinator {
	return &Coordinator{
		cache:    c,
		log:      log.With("component", "sync"),
		handlers: make(map[string]Handler),
		now:      time.Now,
	}
}

// RegisterHandler binds a handler to a collection name, replacing any
// previous binding.
func (c *Coordinator) RegisterHandler(collection string, h Handler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[collection] = h
}

// onlineNotifier is satisfied by reachability.Monitor.
type onlineNotifier interface {
	Subscribe(func(online bool)) func()
}

// Bind starts draining whenever the monitor reports a transition to online.
// The returned func detaches the subscription.
func (c *Coordinator) Bind(m onlineNotifier) func() {
	return m.Subscribe(func(online bool) {
		if !online {
			return
		}
		go func() {
			if _, err := c.SyncNow(context.Background()); err != nil {
				c.log.Warn(context.Background(), "background sync pass failed", "err", err)
			}
		}()
	})
}

// SyncNow drains the pending queue in FIFO order. Each item is removed from
// the queue the moment its handler succeeds; a crash between apply and
// dequeue therefore replays that one item on the next pass. Failed items
// keep their place and the pass carries on past them. A second caller while
// a pass is running gets common.ErrUnavailable instead of a second drain
// racing the first.
func (c *Coordinator) SyncNow(ctx context.Context) (Report, error) {
	c.mu.Lock()
	if c.draining {
		c.mu.Unlock()
		return Report{}, common.ErrUnavailable
	}
	c.draining = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.draining = false
		c.mu.Unlock()
	}()

	items := c.cache.PendingWrites(ctx)
	report := Report{Attempted: len(items)}
	if len(items) == 0 {
		return report, nil
	}

	c.log.Info(ctx, "draining pending writes", "count", len(items))

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		c.mu.Lock()
		h, ok := c.handlers[item.Collection]
		c.mu.Unlock()
		if !ok {
			c.log.Warn(ctx, "no handler for collection, item stays queued",
				"collection", item.Collection, "id", item.ID)
			report.Skipped++
			continue
		}

		if err := h.Apply(ctx, item); err != nil {
			c.log.Warn(ctx, "replaying pending write failed",
				"collection", item.Collection, "op", item.Op, "id", item.ID, "err", err)
			c.cache.MarkPendingFailure(ctx, item.ID, err)
			report.Failed++
			continue
		}

		c.cache.RemovePendingWrite(ctx, item.ID)
		report.Applied++
	}

	c.cache.SetLastSyncAt(ctx, c.now())
	c.log.Info(ctx, "sync pass finished",
		"applied", report.Applied, "failed", report.Failed, "skipped", report.Skipped)
	return report, nil
}
