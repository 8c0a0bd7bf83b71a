package remote

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/wayfarer-app/wayfarer/internal/common"
)

// TokenExpiry extracts the exp claim from a provider-issued JWT without
// verifying the signature. Verification is the backend's job; the client
// only needs the expiry to refresh ahead of time.
func TokenExpiry(raw string) (time.Time, error) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &claims); err != nil {
		return time.Time{}, common.ErrInvalidToken
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, common.ErrInvalidToken
	}
	return claims.ExpiresAt.Time, nil
}

// ExpiringSoon reports whether the token expires within the given window.
// A token whose expiry cannot be read is treated as expiring so the caller
// refreshes instead of failing a request later.
func ExpiringSoon(raw string, within time.Duration) bool {
	exp, err := TokenExpiry(raw)
	if err != nil {
		return true
	}
	return time.Until(exp) < within
}
