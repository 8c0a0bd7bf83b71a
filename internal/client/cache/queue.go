package cache

import (
	"context"
	"encoding/json"

	"github.com/wayfarer-app/wayfarer/internal/client/models"
)

// queueMu must be held.
func (m *Manager) readQueue(ctx context.Context) []models.PendingWrite {
	var q []models.PendingWrite
	m.readJSON(ctx, keyPendingQueue, &q)
	return q
}

// Enqueue appends a pending write for later replay and returns the stored
// item. The bool reports whether the item actually reached the store.
func (m *Manager) Enqueue(ctx context.Context, op models.Op, collection, targetID string, payload json.RawMessage) (models.PendingWrite, bool) {
	m.queueMu.Lock()
	defer m.queueMu.Unlock()

	item := models.NewPendingWrite(op, collection, targetID, payload, m.now())
	q := append(m.readQueue(ctx), item)
	if !m.writeJSON(ctx, keyPendingQueue, q) {
		return item, false
	}

	m.log.Info(ctx, "queued offline write", "id", item.ID, "collection", collection, "op", op)
	return item, true
}

// PendingWrites returns the queue in enqueue (FIFO) order.
func (m *Manager) PendingWrites(ctx context.Context) []models.PendingWrite {
	m.queueMu.Lock()
	defer m.queueMu.Unlock()
	return m.readQueue(ctx)
}

// PendingCount is the number of queued writes, surfaced to the UI as the
// "pending actions" badge.
func (m *Manager) PendingCount(ctx context.Context) int {
	m.queueMu.Lock()
	defer m.queueMu.Unlock()
	return len(m.readQueue(ctx))
}

// RemovePendingWrite drops the item with the given id, typically right after
// its remote replay succeeded. Idempotent.
func (m *Manager) RemovePendingWrite(ctx context.Context, id string) {
	m.queueMu.Lock()
	defer m.queueMu.Unlock()

	q := m.readQueue(ctx)
	kept := q[:0]
	for _, item := range q {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(q) {
		return
	}
	m.writeJSON(ctx, keyPendingQueue, kept)
}

// MarkPendingFailure records a failed replay attempt on the item, leaving it
// queued for the next pass.
func (m *Manager) MarkPendingFailure(ctx context.Context, id string, cause error) {
	m.queueMu.Lock()
	defer m.queueMu.Unlock()

	q := m.readQueue(ctx)
	for i := range q {
		if q[i].ID == id {
			q[i].Attempts++
			q[i].LastError = cause.Error()
			m.writeJSON(ctx, keyPendingQueue, q)
			return
		}
	}
}
