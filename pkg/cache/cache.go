// Package cache stores computed layouts and rendered artifacts.
//
// # Backends
//
//   - [FileCache]: one file per entry under a directory, for the CLI
//   - [RedisCache]: shared cache for server deployments
//   - [NullCache]: never stores anything
//
// # Keys
//
// A [Keyer] derives keys from content hashes. Layouts are keyed by the hash
// of the chart file plus the layout options; artifacts by the hash of the
// layout document plus the output format. Identical input therefore always
// maps to the same entry, and TTLs only bound storage growth.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the entry for key. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A ttl <= 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend.
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Entry lifetimes.
const (
	TTLLayout   = 30 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)
