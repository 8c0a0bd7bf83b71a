package cache

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wayfarer-app/wayfarer/internal/client/blob"
	"github.com/wayfarer-app/wayfarer/internal/client/models"
	"github.com/wayfarer-app/wayfarer/internal/client/store"
	"github.com/wayfarer-app/wayfarer/internal/logging"

	_ "modernc.org/sqlite"
)

func setupKV(t *testing.T) *store.SQLiteKV {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE kv (key TEXT PRIMARY KEY, value BLOB NOT NULL);`)
	require.NoError(t, err)

	return store.NewSQLiteKV(db)
}

// fakeFetcher writes body to dest and reports status. A non-nil err wins.
type fakeFetcher struct {
	body   []byte
	status int
	err    error
	calls  int
}

func (f *fakeFetcher) Fetch(ctx context.Context, url, dest string) (int, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	if f.status != 200 {
		return f.status, nil
	}
	if err := os.WriteFile(dest, f.body, 0o600); err != nil {
		return 0, err
	}
	return 200, nil
}

func setupManager(t *testing.T) (*Manager, *fakeFetcher) {
	t.Helper()

	blobs, err := blob.New(filepath.Join(t.TempDir(), "cache"))
	require.NoError(t, err)

	f := &fakeFetcher{body: []byte("bytes"), status: 200}
	m := NewManager(setupKV(t), blobs, f, logging.Setup("error"))
	return m, f
}

// brokenKV fails every operation, modeling a storage fault.
type brokenKV struct{}

func (brokenKV) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, errors.New("disk fault")
}
func (brokenKV) Set(ctx context.Context, key string, value []byte) error {
	return errors.New("disk fault")
}
func (brokenKV) Delete(ctx context.Context, key string) error {
	return errors.New("disk fault")
}

func TestManager_StorageFaultsAreSwallowed(t *testing.T) {
	blobs, err := blob.New(filepath.Join(t.TempDir(), "cache"))
	require.NoError(t, err)
	m := NewManager(brokenKV{}, blobs, nil, logging.Setup("error"))
	ctx := context.Background()

	// none of these may panic or surface an error
	m.CacheSession(ctx, models.User{ID: "u1"})
	_, ok := m.GetSession(ctx)
	assert.False(t, ok)

	m.CacheTrips(ctx, []models.Trip{{ID: "t1"}})
	_, ok = m.GetTrips(ctx)
	assert.False(t, ok)

	_, ok = m.Enqueue(ctx, models.OpCreate, models.CollectionTrips, "tmp", nil)
	assert.False(t, ok)
	assert.Zero(t, m.PendingCount(ctx))

	m.ClearAll(ctx)
}

func TestClearAll_KeepsIdentityClearsAssets(t *testing.T) {
	m, _ := setupManager(t)
	ctx := context.Background()

	m.CacheSession(ctx, models.User{ID: "u1", Email: "a@example.com", Name: "Alice"})
	m.CacheTrips(ctx, []models.Trip{{ID: "t1", Name: "Lisbon"}})

	doc, ok := m.CacheDocument(ctx, models.DocumentDescriptor{
		ID: "d1", TripID: "t1", FileName: "ticket.pdf", RemoteURL: "https://files/x",
	})
	require.True(t, ok)
	require.True(t, m.SaveMapRegion(ctx, models.OfflineMapRegion{ID: "r1", TripID: "t1", Name: "Lisbon"}))

	m.ClearAll(ctx)

	// assets gone
	_, ok = m.GetDocument(ctx, "d1")
	assert.False(t, ok)
	assert.Empty(t, m.GetMapRegions(ctx))
	_, ok = m.GetTrips(ctx)
	assert.False(t, ok)
	_, err := os.Stat(doc.LocalPath)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	// identity survives
	s, ok := m.GetSession(ctx)
	require.True(t, ok)
	assert.Equal(t, "u1", s.UserID)
}

func TestGetCacheSize_SumsOnDiskFiles(t *testing.T) {
	m, f := setupManager(t)
	ctx := context.Background()

	f.body = make([]byte, 120)
	_, ok := m.CacheDocument(ctx, models.DocumentDescriptor{ID: "d1", FileName: "a.pdf", RemoteURL: "u"})
	require.True(t, ok)

	// a map asset written by the map SDK
	require.NoError(t, os.WriteFile(filepath.Join(m.blobs.MapsDir(), "tile.bin"), make([]byte, 80), 0o600))

	s := m.GetCacheSize(ctx)
	assert.Equal(t, int64(120), s.Documents)
	assert.Equal(t, int64(80), s.Maps)
	assert.Equal(t, s.Documents+s.Maps, s.Total)
}

func TestLastSyncAt_RoundTrip(t *testing.T) {
	m, _ := setupManager(t)
	ctx := context.Background()

	_, ok := m.LastSyncAt(ctx)
	assert.False(t, ok)

	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m.SetLastSyncAt(ctx, at)

	got, ok := m.LastSyncAt(ctx)
	require.True(t, ok)
	assert.Equal(t, at.UnixMilli(), got.UnixMilli())
}
