// Package remote defines the contract of the managed backend consumed by the
// sync coordinator and the cache manager, plus its HTTP implementation.
package remote

import (
	"context"
	"encoding/json"

	"github.com/wayfarer-app/wayfarer/internal/client/models"
)

// Tokens carries the provider-issued access/refresh token pair.
type Tokens struct {
	Access  string `json:"accessToken"`
	Refresh string `json:"refreshToken"`
}

// Service is the remote document/record service. Trip mutations mirror the
// backend's per-collection endpoints; Fetch is the byte-stream capability
// used for document caching.
type Service interface {
	// Ping probes backend reachability.
	Ping(ctx context.Context) error

	// SignIn authenticates against the managed identity provider and
	// returns the user snapshot plus the token pair.
	SignIn(ctx context.Context, email, password string) (models.User, Tokens, error)

	// CreateTrip creates a trip record and returns the server-assigned id.
	CreateTrip(ctx context.Context, payload json.RawMessage) (string, error)

	// UpdateTrip applies a partial update to the trip with the given id.
	UpdateTrip(ctx context.Context, id string, patch json.RawMessage) error

	// DeleteTrip removes the trip with the given id.
	DeleteTrip(ctx context.Context, id string) error

	// Fetch downloads the byte stream at url into the file at dest and
	// returns the HTTP status code. The destination file is only kept on
	// status 200.
	Fetch(ctx context.Context, url, dest string) (int, error)

	Close() error
}
