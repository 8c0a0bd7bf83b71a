package cache

import (
	"context"
	"net/http"

	"github.com/wayfarer-app/wayfarer/internal/client/models"
)

type documentIndex map[string]models.CachedDocument

// docMu must be held.
func (m *Manager) readDocIndex(ctx context.Context) documentIndex {
	idx := documentIndex{}
	m.readJSON(ctx, keyDocumentIndex, &idx)
	return idx
}

// CacheDocument downloads the document's byte stream to its deterministic
// local path, records the on-disk size, and inserts the entry into the
// document index. Any failure (network, storage, non-200 status) reports
// soft failure instead of an error.
func (m *Manager) CacheDocument(ctx context.Context, d models.DocumentDescriptor) (*models.CachedDocument, bool) {
	if m.fetcher == nil {
		m.log.Warn(ctx, "document caching unavailable: no fetcher")
		return nil, false
	}

	dest := m.blobs.DocumentPath(d.ID, d.FileName)

	status, err := m.fetcher.Fetch(ctx, d.RemoteURL, dest)
	if err != nil {
		m.log.Warn(ctx, "document download failed", "id", d.ID, "url", d.RemoteURL, "err", err)
		_ = m.blobs.Remove(dest)
		return nil, false
	}
	if status != http.StatusOK {
		m.log.Warn(ctx, "document download rejected", "id", d.ID, "status", status)
		_ = m.blobs.Remove(dest)
		return nil, false
	}

	size, err := m.blobs.Stat(dest)
	if err != nil {
		m.log.Warn(ctx, "stat of downloaded document failed", "id", d.ID, "err", err)
		_ = m.blobs.Remove(dest)
		return nil, false
	}

	doc := models.CachedDocument{
		ID:          d.ID,
		TripID:      d.TripID,
		FileName:    d.FileName,
		LocalPath:   dest,
		RemoteURL:   d.RemoteURL,
		ContentType: d.ContentType,
		CachedAt:    m.now(),
		FileSize:    size,
	}

	m.docMu.Lock()
	defer m.docMu.Unlock()

	idx := m.readDocIndex(ctx)
	idx[doc.ID] = doc
	if !m.writeJSON(ctx, keyDocumentIndex, idx) {
		return nil, false
	}

	return &doc, true
}

// GetDocument looks up a cached document by id. An index entry whose backing
// file has gone missing is pruned on the way out, so callers never receive a
// dangling reference.
func (m *Manager) GetDocument(ctx context.Context, id string) (*models.CachedDocument, bool) {
	m.docMu.Lock()
	defer m.docMu.Unlock()

	idx := m.readDocIndex(ctx)
	doc, ok := idx[id]
	if !ok {
		return nil, false
	}

	if !m.blobs.Exists(doc.LocalPath) {
		m.log.Info(ctx, "pruning stale document entry", "id", id, "path", doc.LocalPath)
		delete(idx, id)
		m.writeJSON(ctx, keyDocumentIndex, idx)
		return nil, false
	}

	return &doc, true
}

// GetDocuments lists all cached documents, optionally filtered by trip.
// Stale entries are not pruned here; GetDocument does that per lookup.
func (m *Manager) GetDocuments(ctx context.Context, tripID string) []models.CachedDocument {
	m.docMu.Lock()
	defer m.docMu.Unlock()

	idx := m.readDocIndex(ctx)
	out := make([]models.CachedDocument, 0, len(idx))
	for _, doc := range idx {
		if tripID == "" || doc.TripID == tripID {
			out = append(out, doc)
		}
	}
	return out
}

// DeleteDocument removes the backing file and the index entry. Idempotent.
func (m *Manager) DeleteDocument(ctx context.Context, id string) {
	m.docMu.Lock()
	defer m.docMu.Unlock()

	idx := m.readDocIndex(ctx)
	doc, ok := idx[id]
	if !ok {
		return
	}

	if err := m.blobs.Remove(doc.LocalPath); err != nil {
		m.log.Warn(ctx, "removing cached document file failed", "id", id, "err", err)
	}

	delete(idx, id)
	m.writeJSON(ctx, keyDocumentIndex, idx)
}
