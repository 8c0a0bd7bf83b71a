package cache

import (
	"context"
	"sort"

	"github.com/wayfarer-app/wayfarer/internal/client/models"
)

type regionIndex map[string]models.OfflineMapRegion

// SaveMapRegion records a downloaded map region. Tile fetching happens in
// the map SDK before this call; only the region record is stored here.
func (m *Manager) SaveMapRegion(ctx context.Context, r models.OfflineMapRegion) bool {
	m.regionMu.Lock()
	defer m.regionMu.Unlock()

	idx := regionIndex{}
	m.readJSON(ctx, keyRegionIndex, &idx)
	if r.CachedAt.IsZero() {
		r.CachedAt = m.now()
	}
	idx[r.ID] = r
	return m.writeJSON(ctx, keyRegionIndex, idx)
}

// GetMapRegions lists all saved regions ordered by id for stable output.
func (m *Manager) GetMapRegions(ctx context.Context) []models.OfflineMapRegion {
	m.regionMu.Lock()
	defer m.regionMu.Unlock()

	idx := regionIndex{}
	m.readJSON(ctx, keyRegionIndex, &idx)

	out := make([]models.OfflineMapRegion, 0, len(idx))
	for _, r := range idx {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// DeleteMapRegion removes one region record. Idempotent.
func (m *Manager) DeleteMapRegion(ctx context.Context, id string) {
	m.regionMu.Lock()
	defer m.regionMu.Unlock()

	idx := regionIndex{}
	if !m.readJSON(ctx, keyRegionIndex, &idx) {
		return
	}
	if _, ok := idx[id]; !ok {
		return
	}
	delete(idx, id)
	m.writeJSON(ctx, keyRegionIndex, idx)
}
