// Package models defines client-side data models used by the Wayfarer
// offline cache and sync core.
package models

import "time"

// User is the identity snapshot received from the managed auth provider.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	ProfilePhoto string `json:"profilePhoto,omitempty"`
}

// CachedSession is the locally persisted identity snapshot used to answer
// "who is logged in" before the network is reachable.
type CachedSession struct {
	UserID       string    `json:"userId"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	ProfilePhoto string    `json:"profilePhoto,omitempty"`
	CachedAt     time.Time `json:"cachedAt"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// Expired reports whether the session TTL has elapsed at the given instant.
func (s CachedSession) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
