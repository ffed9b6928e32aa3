package cache

import (
	"context"
	"time"
)

// Cache is the contract for the cache layer.
// Keeping it an interface allows swapping the implementation
// (Redis in production, in-memory fake in tests).
type Cache interface {
	// Get fetches data from cache and unmarshals it into dest.
	// Returns (found, error):
	// - found = true: cache hit, data unmarshaled into dest
	// - found = false: cache miss, dest untouched
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores data in cache with a TTL
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys from cache
	Delete(ctx context.Context, keys ...string) error

	// Ping verifies the connection
	Ping(ctx context.Context) error

	DeletePattern(ctx context.Context, pattern string) error
	Exists(ctx context.Context, key string) (bool, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
}
