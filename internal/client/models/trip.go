package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// TempIDPrefix marks trip identifiers assigned on-device before the backend
// has confirmed the creation. The sync pass swaps them for server ids.
const TempIDPrefix = "temp-"

// Trip is one itinerary in the user's trip list. The cache treats the record
// wholesale; only the ID participates in sync reconciliation.
type Trip struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Name        string    `json:"name"`
	Destination string    `json:"destination"`
	StartDate   string    `json:"startDate,omitempty"`
	EndDate     string    `json:"endDate,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewTempTripID returns a fresh client-assigned placeholder id.
func NewTempTripID() string {
	return TempIDPrefix + uuid.NewString()
}

// IsTempID reports whether id is a client-assigned placeholder.
func IsTempID(id string) bool {
	return strings.HasPrefix(id, TempIDPrefix)
}

// CachedTripSet is the wholesale snapshot of the trip list.
type CachedTripSet struct {
	Trips    []Trip    `json:"trips"`
	CachedAt time.Time `json:"cachedAt"`
}
