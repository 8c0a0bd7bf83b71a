package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/wayfarer-app/wayfarer/internal/client/models"
)

// CacheTrips overwrites the trip snapshot wholesale. Last writer wins; no
// merge logic exists at this layer.
func (m *Manager) CacheTrips(ctx context.Context, trips []models.Trip) {
	m.tripMu.Lock()
	defer m.tripMu.Unlock()

	m.writeJSON(ctx, keyTrips, models.CachedTripSet{Trips: trips, CachedAt: m.now()})
}

// GetTrips returns the cached trip snapshot, oldest write order preserved.
func (m *Manager) GetTrips(ctx context.Context) ([]models.Trip, bool) {
	m.tripMu.Lock()
	defer m.tripMu.Unlock()

	var set models.CachedTripSet
	if !m.readJSON(ctx, keyTrips, &set) {
		return nil, false
	}
	return set.Trips, true
}

// ReplaceTripID swaps a client-assigned temporary id for the server-assigned
// one inside the cached snapshot. It reports whether an entry matched.
func (m *Manager) ReplaceTripID(ctx context.Context, tempID, serverID string) bool {
	m.tripMu.Lock()
	defer m.tripMu.Unlock()

	var set models.CachedTripSet
	if !m.readJSON(ctx, keyTrips, &set) {
		return false
	}

	replaced := false
	for i := range set.Trips {
		if set.Trips[i].ID == tempID {
			set.Trips[i].ID = serverID
			replaced = true
		}
	}
	if !replaced {
		return false
	}

	return m.writeJSON(ctx, keyTrips, set)
}

// UpsertTrip inserts or replaces one trip in the cached snapshot, keeping
// the UI's optimistic view current while a mutation is queued.
func (m *Manager) UpsertTrip(ctx context.Context, trip models.Trip) {
	m.tripMu.Lock()
	defer m.tripMu.Unlock()

	var set models.CachedTripSet
	m.readJSON(ctx, keyTrips, &set)

	found := false
	for i := range set.Trips {
		if set.Trips[i].ID == trip.ID {
			set.Trips[i] = trip
			found = true
			break
		}
	}
	if !found {
		set.Trips = append(set.Trips, trip)
	}
	set.CachedAt = m.now()

	m.writeJSON(ctx, keyTrips, set)
}

// RemoveTrip drops one trip from the cached snapshot. No-op when absent.
func (m *Manager) RemoveTrip(ctx context.Context, id string) {
	m.tripMu.Lock()
	defer m.tripMu.Unlock()

	var set models.CachedTripSet
	if !m.readJSON(ctx, keyTrips, &set) {
		return
	}

	kept := set.Trips[:0]
	for _, tr := range set.Trips {
		if tr.ID != id {
			kept = append(kept, tr)
		}
	}
	set.Trips = kept
	set.CachedAt = m.now()

	m.writeJSON(ctx, keyTrips, set)
}

// SetLastSyncAt records when the last queue drain completed, stored as
// epoch milliseconds in string form.
func (m *Manager) SetLastSyncAt(ctx context.Context, t time.Time) {
	if err := m.kv.Set(ctx, keyLastSync, []byte(strconv.FormatInt(t.UnixMilli(), 10))); err != nil {
		m.log.Warn(ctx, "store write failed", "key", keyLastSync, "err", err)
	}
}

// LastSyncAt returns the recorded last-sync instant, if any.
func (m *Manager) LastSyncAt(ctx context.Context) (time.Time, bool) {
	b, err := m.kv.Get(ctx, keyLastSync)
	if err != nil {
		m.log.Warn(ctx, "store read failed", "key", keyLastSync, "err", err)
		return time.Time{}, false
	}
	if b == nil {
		return time.Time{}, false
	}
	ms, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		m.log.Warn(ctx, "corrupt cache entry", "key", keyLastSync, "err", err)
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}
