// Package cache implements the Cache Manager: the single point of access to
// all locally persisted trip state and cached binary assets.
//
// Every operation is best-effort by contract. Storage and network faults are
// caught here, logged, and converted into absent results; nothing in this
// package returns an error to callers, because loss of cache must never
// block a foreground flow.
package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/wayfarer-app/wayfarer/internal/client/blob"
	"github.com/wayfarer-app/wayfarer/internal/client/store"
	"github.com/wayfarer-app/wayfarer/internal/common"
	"github.com/wayfarer-app/wayfarer/internal/logging"
)

// SessionTTL bounds how long a cached identity snapshot may be served.
const SessionTTL = 7 * 24 * time.Hour

// Persisted key layout. Everything lives under the shared namespace prefix.
const (
	keyUser          = common.KeyPrefix + "cached_user"
	keySession       = common.KeyPrefix + "cached_session"
	keyTrips         = common.KeyPrefix + "cached_trips"
	keyDocumentIndex = common.KeyPrefix + "document_index"
	keyRegionIndex   = common.KeyPrefix + "map_region_index"
	keyLastSync      = common.KeyPrefix + "last_sync_at"
	keyPendingQueue  = common.KeyPrefix + "pending_writes"
)

// Fetcher is the byte-stream capability used to download documents: given a
// URL and a destination path it writes the file and returns the status code.
type Fetcher interface {
	Fetch(ctx context.Context, url, dest string) (int, error)
}

// Manager owns the cached session, trip snapshot, document index, map-region
// index, and the pending-write queue.
//
// Each serialized index block has its own mutex so two concurrent
// read-modify-write passes over the same block cannot lose updates.
type Manager struct {
	kv      store.KV
	blobs   *blob.Store
	fetcher Fetcher
	log     logging.Logger

	// test seam
	now func() time.Time

	sessionMu sync.Mutex
	tripMu    sync.Mutex
	docMu     sync.Mutex
	regionMu  sync.Mutex
	queueMu   sync.Mutex
}

// NewManager wires the manager to its storage handles. fetcher may be nil
// when document caching is not used (CacheDocument then reports failure).
func NewManager(kv store.KV, blobs *blob.Store, fetcher Fetcher, log logging.Logger) *Manager {
	return &Manager{
		kv:      kv,
		blobs:   blobs,
		fetcher: fetcher,
		log:     log.With("component", "cache"),
		now:     time.Now,
	}
}

// readJSON loads and unmarshals the value at key into v. It reports whether
// a usable value was found; faults are logged and read as absence.
func (m *Manager) readJSON(ctx context.Context, key string, v any) bool {
	b, err := m.kv.Get(ctx, key)
	if err != nil {
		m.log.Warn(ctx, "store read failed", "key", key, "err", err)
		return false
	}
	if b == nil {
		return false
	}
	if err := json.Unmarshal(b, v); err != nil {
		m.log.Warn(ctx, "corrupt cache entry", "key", key, "err", err)
		return false
	}
	return true
}

// writeJSON marshals v under key, reporting success.
func (m *Manager) writeJSON(ctx context.Context, key string, v any) bool {
	b, err := json.Marshal(v)
	if err != nil {
		m.log.Warn(ctx, "cache marshal failed", "key", key, "err", err)
		return false
	}
	if err := m.kv.Set(ctx, key, b); err != nil {
		m.log.Warn(ctx, "store write failed", "key", key, "err", err)
		return false
	}
	return true
}

func (m *Manager) delete(ctx context.Context, key string) {
	if err := m.kv.Delete(ctx, key); err != nil {
		m.log.Warn(ctx, "store delete failed", "key", key, "err", err)
	}
}

// ClearAll deletes every cached asset: the blob directories are removed and
// re-created, and the document index, map-region index, and trip snapshot
// are dropped. The cached session and user snapshot are intentionally NOT
// touched; this clears the asset cache, not identity.
func (m *Manager) ClearAll(ctx context.Context) {
	m.docMu.Lock()
	m.regionMu.Lock()
	m.tripMu.Lock()
	defer m.tripMu.Unlock()
	defer m.regionMu.Unlock()
	defer m.docMu.Unlock()

	if err := m.blobs.Clear(); err != nil {
		m.log.Warn(ctx, "clearing blob cache failed", "err", err)
	}
	m.delete(ctx, keyDocumentIndex)
	m.delete(ctx, keyRegionIndex)
	m.delete(ctx, keyTrips)
}
