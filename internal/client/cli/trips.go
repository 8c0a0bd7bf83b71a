package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/wayfarer-app/wayfarer/internal/client/models"
)

// Trip commands are offline-first: every mutation lands in the local cache
// and the pending queue, then a drain is kicked off right away when the
// backend is reachable. The user sees the same behavior on- and offline, only
// the moment of replay differs.

func (a *App) ListTrips(ctx context.Context) error {
	trips, ok := a.cache.GetTrips(ctx)
	if !ok || len(trips) == 0 {
		fmt.Println("No trips cached")
		return nil
	}
	for _, tr := range trips {
		marker := ""
		if models.IsTempID(tr.ID) {
			marker = " (not synced)"
		}
		fmt.Printf("%s  %s -> %s%s\n", tr.ID, tr.Name, tr.Destination, marker)
	}
	if last, ok := a.cache.LastSyncAt(ctx); ok {
		fmt.Printf("Last synced %s\n", last.Format(time.RFC3339))
	}
	return nil
}

func (a *App) AddTrip(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Trip name", os.Stdout)
	if err != nil {
		return err
	}
	destination, err := getSimpleText(a.reader, "Destination", os.Stdout)
	if err != nil {
		return err
	}

	trip := models.Trip{
		ID:          models.NewTempTripID(),
		Name:        name,
		Destination: destination,
		UpdatedAt:   time.Now(),
	}
	if a.user != nil {
		trip.OwnerID = a.user.ID
	}

	payload, err := json.Marshal(trip)
	if err != nil {
		return err
	}

	a.cache.UpsertTrip(ctx, trip)
	if _, ok := a.cache.Enqueue(ctx, models.OpCreate, models.CollectionTrips, trip.ID, payload); !ok {
		fmt.Println("Warning: could not queue the trip for sync")
	}

	fmt.Printf("Trip %q saved\n", name)
	a.drainIfOnline(ctx)
	return nil
}

func (a *App) RenameTrip(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Trip id", os.Stdout)
	if err != nil {
		return err
	}
	name, err := getSimpleText(a.reader, "New name", os.Stdout)
	if err != nil {
		return err
	}

	trips, _ := a.cache.GetTrips(ctx)
	var found *models.Trip
	for i := range trips {
		if trips[i].ID == id {
			found = &trips[i]
			break
		}
	}
	if found == nil {
		fmt.Println("No such trip:", id)
		return nil
	}

	found.Name = name
	found.UpdatedAt = time.Now()
	a.cache.UpsertTrip(ctx, *found)

	patch, err := json.Marshal(map[string]string{"name": name})
	if err != nil {
		return err
	}
	if _, ok := a.cache.Enqueue(ctx, models.OpUpdate, models.CollectionTrips, id, patch); !ok {
		fmt.Println("Warning: could not queue the rename for sync")
	}

	fmt.Println("Renamed")
	a.drainIfOnline(ctx)
	return nil
}

func (a *App) DeleteTrip(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Trip id", os.Stdout)
	if err != nil {
		return err
	}

	a.cache.RemoveTrip(ctx, id)
	if _, ok := a.cache.Enqueue(ctx, models.OpDelete, models.CollectionTrips, id, nil); !ok {
		fmt.Println("Warning: could not queue the delete for sync")
	}

	fmt.Println("Deleted")
	a.drainIfOnline(ctx)
	return nil
}

func (a *App) drainIfOnline(ctx context.Context) {
	if a.Mode != ModeOnline {
		return
	}
	go func() {
		if _, err := a.coord.SyncNow(context.WithoutCancel(ctx)); err != nil {
			a.log.Warn(ctx, "immediate sync failed", "err", err)
		}
	}()
}
