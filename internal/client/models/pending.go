package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Op is the kind of a queued mutation.
type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// CollectionTrips is the only collection with a built-in sync handler.
// Other collections are an extensibility seam for their owning features.
const CollectionTrips = "trips"

// PendingWrite is a mutation made while offline, queued for replay once
// connectivity returns. Attempts and LastError are bookkeeping only; a
// failed item stays queued without a retry cap.
type PendingWrite struct {
	ID         string          `json:"id"`
	Op         Op              `json:"op"`
	Collection string          `json:"collection"`
	TargetID   string          `json:"targetId,omitempty"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	EnqueuedAt time.Time       `json:"enqueuedAt"`
	Attempts   int             `json:"attempts,omitempty"`
	LastError  string          `json:"lastError,omitempty"`
}

// NewPendingWrite builds a queue item with a fresh id and the given enqueue
// time.
func NewPendingWrite(op Op, collection, targetID string, payload json.RawMessage, now time.Time) PendingWrite {
	return PendingWrite{
		ID:         uuid.NewString(),
		Op:         op,
		Collection: collection,
		TargetID:   targetID,
		Payload:    payload,
		EnqueuedAt: now,
	}
}
