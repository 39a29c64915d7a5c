// Package cache provides byte-oriented caching with pluggable backends.
//
// Three implementations are provided:
//   - [FileCache]: directory-backed, for CLI usage (rendered artifacts)
//   - [RedisCache]: Redis-backed, for server deployments (conversion results)
//   - [NullCache]: no-op, for tests or when caching is disabled
//
// Keys are arbitrary strings; [Hash] derives collision-safe keys from
// content, which is how the render and serve paths key conversions by
// input bytes. Entries carry a time-to-live; a TTL of 0 means the entry
// never expires.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys with optional expiry.
//
// Get returns (nil, false, nil) on a miss; expired entries are misses.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// found and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of 0 stores it without expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
