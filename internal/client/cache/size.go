package cache

import "context"

// Size breaks down the on-disk cache footprint in bytes.
type Size struct {
	Documents int64 `json:"documents"`
	Maps      int64 `json:"maps"`
	Total     int64 `json:"total"`
}

// GetCacheSize recomputes the footprint by statting every file under the
// cache root. The result is always fresh; nothing is memoized. O(n) in file
// count, which stays small on a single device.
func (m *Manager) GetCacheSize(ctx context.Context) Size {
	var s Size

	docs, err := m.blobs.DocumentsSize()
	if err != nil {
		m.log.Warn(ctx, "sizing documents dir failed", "err", err)
	}
	maps, err := m.blobs.MapsSize()
	if err != nil {
		m.log.Warn(ctx, "sizing maps dir failed", "err", err)
	}

	s.Documents = docs
	s.Maps = maps
	s.Total = docs + maps
	return s
}
