// Package cache stores finished approximation runs.
//
// A run is fully determined by the target pixels and the search options, so
// its accepted polygons can be stored under a key derived from both and
// replayed instead of searched again. Backends:
//
//   - [FileCache]: JSON entries under a local directory (CLI default)
//   - [RedisCache]: a shared Redis instance
//   - [NullCache]: caching disabled
//
// Keys come from a [Keyer]; [ScopedKeyer] prefixes another keyer so several
// cache formats or tenants can share one backend.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long a cached run stays valid.
const DefaultTTL = 30 * 24 * time.Hour

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}
