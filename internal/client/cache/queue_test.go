package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wayfarer-app/wayfarer/internal/client/models"
)

func TestQueue_FIFOOrder(t *testing.T) {
	m, _ := setupManager(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		offset := time.Duration(i) * time.Second
		m.now = func() time.Time { return base.Add(offset) }
		_, ok := m.Enqueue(ctx, models.OpCreate, models.CollectionTrips, "", json.RawMessage(`{}`))
		require.True(t, ok)
	}

	q := m.PendingWrites(ctx)
	require.Len(t, q, 3)
	for i := 1; i < len(q); i++ {
		assert.True(t, q[i-1].EnqueuedAt.Before(q[i].EnqueuedAt), "queue must keep enqueue order")
	}
	assert.Equal(t, 3, m.PendingCount(ctx))
}

func TestQueue_RemoveDequeuesOneItem(t *testing.T) {
	m, _ := setupManager(t)
	ctx := context.Background()

	a, _ := m.Enqueue(ctx, models.OpCreate, models.CollectionTrips, "", nil)
	b, _ := m.Enqueue(ctx, models.OpDelete, models.CollectionTrips, "t9", nil)

	m.RemovePendingWrite(ctx, a.ID)

	q := m.PendingWrites(ctx)
	require.Len(t, q, 1)
	assert.Equal(t, b.ID, q[0].ID)

	// removing again is a no-op
	m.RemovePendingWrite(ctx, a.ID)
	assert.Equal(t, 1, m.PendingCount(ctx))
}

func TestQueue_MarkPendingFailureKeepsItem(t *testing.T) {
	m, _ := setupManager(t)
	ctx := context.Background()

	item, _ := m.Enqueue(ctx, models.OpUpdate, models.CollectionTrips, "t1", json.RawMessage(`{"name":"x"}`))

	m.MarkPendingFailure(ctx, item.ID, errors.New("server unavailable"))
	m.MarkPendingFailure(ctx, item.ID, errors.New("server unavailable"))

	q := m.PendingWrites(ctx)
	require.Len(t, q, 1)
	assert.Equal(t, 2, q[0].Attempts)
	assert.Equal(t, "server unavailable", q[0].LastError)
}

func TestQueue_PayloadSurvivesRoundTrip(t *testing.T) {
	m, _ := setupManager(t)
	ctx := context.Background()

	payload := json.RawMessage(`{"name":"Lisbon","destination":"Portugal"}`)
	item, ok := m.Enqueue(ctx, models.OpCreate, models.CollectionTrips, "temp-1", payload)
	require.True(t, ok)
	assert.NotEmpty(t, item.ID)

	q := m.PendingWrites(ctx)
	require.Len(t, q, 1)
	assert.JSONEq(t, string(payload), string(q[0].Payload))
	assert.Equal(t, "temp-1", q[0].TargetID)
	assert.Equal(t, models.OpCreate, q[0].Op)
}
