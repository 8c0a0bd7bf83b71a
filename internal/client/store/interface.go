// Package store implements the local persistent key-value capability: string
// keys to JSON-serialized values, backed by a single SQLite table.
package store

import "context"

// KV is the persistent key-value capability consumed by the cache manager
// and the rate limiter. Get returns (nil, nil) when the key is absent;
// Delete of a missing key is a no-op.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
