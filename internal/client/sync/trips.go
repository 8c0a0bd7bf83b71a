package sync

import (
	"context"
	"fmt"

	"github.com/wayfarer-app/wayfarer/internal/client/cache"
	"github.com/wayfarer-app/wayfarer/internal/client/models"
	"github.com/wayfarer-app/wayfarer/internal/client/remote"
	"github.com/wayfarer-app/wayfarer/internal/logging"
)

// TripsHandler replays queued trip mutations. Creates carry a temporary
// client-side id as TargetID; once the server assigns the real id the cached
// trip list is rewritten to use it.
type TripsHandler struct {
	remote remote.Service
	cache  *cache.Manager
	log    logging.Logger
}

func NewTripsHandler(r remote.Service, c *cache.Manager, log logging.Logger) *TripsHandler {
	return &TripsHandler{remote: r, cache: c, log: log.With("component", "sync.trips")}
}

func (h *TripsHandler) Apply(ctx context.Context, item models.PendingWrite) error {
	switch item.Op {
	case models.OpCreate:
		serverID, err := h.remote.CreateTrip(ctx, item.Payload)
		if err != nil {
			return err
		}
		if models.IsTempID(item.TargetID) {
			h.cache.ReplaceTripID(ctx, item.TargetID, serverID)
			h.log.Debug(ctx, "trip id reconciled", "temp", item.TargetID, "server", serverID)
		}
		return nil
	case models.OpUpdate:
		return h.remote.UpdateTrip(ctx, item.TargetID, item.Payload)
	case models.OpDelete:
		return h.remote.DeleteTrip(ctx, item.TargetID)
	default:
		return fmt.Errorf("unknown op %q", item.Op)
	}
}
