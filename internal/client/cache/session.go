package cache

import (
	"context"

	"github.com/wayfarer-app/wayfarer/internal/client/models"
)

// CacheSession persists the identity snapshot under two keys: the session
// metadata and the raw user object, both with a fixed 7-day TTL from now.
func (m *Manager) CacheSession(ctx context.Context, u models.User) {
	m.sessionMu.Lock()
	defer m.sessionMu.Unlock()

	now := m.now()
	session := models.CachedSession{
		UserID:       u.ID,
		Email:        u.Email,
		Name:         u.Name,
		ProfilePhoto: u.ProfilePhoto,
		CachedAt:     now,
		ExpiresAt:    now.Add(SessionTTL),
	}

	m.writeJSON(ctx, keyUser, u)
	m.writeJSON(ctx, keySession, session)
}

// GetSession returns the cached session if present and unexpired. An expired
// entry is deleted on the way out and read as absence, so callers never see
// a session past its TTL.
func (m *Manager) GetSession(ctx context.Context) (*models.CachedSession, bool) {
	m.sessionMu.Lock()
	defer m.sessionMu.Unlock()

	var s models.CachedSession
	if !m.readJSON(ctx, keySession, &s) {
		return nil, false
	}

	if s.Expired(m.now()) {
		m.log.Info(ctx, "cached session expired", "user_id", s.UserID)
		m.delete(ctx, keySession)
		m.delete(ctx, keyUser)
		return nil, false
	}

	return &s, true
}

// GetUser returns the raw cached user snapshot, gated by session validity.
func (m *Manager) GetUser(ctx context.Context) (*models.User, bool) {
	if _, ok := m.GetSession(ctx); !ok {
		return nil, false
	}

	m.sessionMu.Lock()
	defer m.sessionMu.Unlock()

	var u models.User
	if !m.readJSON(ctx, keyUser, &u) {
		return nil, false
	}
	return &u, true
}

// ClearSession removes the cached identity, e.g. on sign-out.
func (m *Manager) ClearSession(ctx context.Context) {
	m.sessionMu.Lock()
	defer m.sessionMu.Unlock()

	m.delete(ctx, keySession)
	m.delete(ctx, keyUser)
}
