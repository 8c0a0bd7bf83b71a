package models

import "time"

// OfflineMapRegion describes a downloaded map tile region. Tile fetching
// itself is handled by the map SDK before the region record is saved.
type OfflineMapRegion struct {
	ID        string    `json:"id"`
	TripID    string    `json:"tripId"`
	Name      string    `json:"name"`
	CenterLat float64   `json:"centerLat"`
	CenterLng float64   `json:"centerLng"`
	LatDelta  float64   `json:"latDelta"`
	LngDelta  float64   `json:"lngDelta"`
	ZoomLevel int       `json:"zoomLevel"`
	CachedAt  time.Time `json:"cachedAt"`
	TileCount int       `json:"tileCount"`
	SizeMB    float64   `json:"sizeMb"`
}
