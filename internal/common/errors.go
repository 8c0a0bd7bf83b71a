// Package common defines shared constants and sentinel errors used across
// the Wayfarer client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository/store-level errors.
	ErrNotFound = errors.New("not found")

	// Remote service errors.
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")

	// Token lifecycle errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Sync errors.
	ErrNoHandler = errors.New("no handler for collection")

	// Login throttling.
	ErrRateLimited = errors.New("too many failed attempts")
)
