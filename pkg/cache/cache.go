// Package cache stores finished run results so identical invocations can skip
// the computation.
//
// A run is fully determined by its options, so results are keyed by a
// SHA-256 hash of those options and the build version (see [Key]). Three
// backends implement [Cache]:
//
//   - [FileCache]: one JSON file per entry under a local directory
//   - [RedisCache]: a shared redis instance, for several machines running
//     the same sweeps
//   - [NullCache]: stores nothing, used with --no-cache
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored value and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
