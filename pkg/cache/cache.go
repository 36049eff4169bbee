// Package cache stores derived data that is expensive to recompute, such as
// the dominant color of a wallpaper image.
//
// Three backends implement [Cache]:
//   - [FileCache]: sharded JSON files under the XDG cache directory (default)
//   - [RedisCache]: a shared Redis instance, for several machines using one
//     wallpaper collection
//   - [NullCache]: caching disabled
//
// Keys are built with a [Keyer] so that every backend uses the same layout.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value for key. The bool reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// PaletteKey is the key for the dominant color of an image,
	// identified by the hash of its content.
	PaletteKey(contentHash string) string
}

// DefaultKeyer is the standard key layout.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard key layout.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// PaletteKey returns "palette:<algorithm version>:<hash>".
func (DefaultKeyer) PaletteKey(contentHash string) string {
	return hashKey("palette:v1", contentHash)
}
