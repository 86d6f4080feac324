// Package cache stores rendered figures between runs.
//
// Figures are deterministic, so a PNG rendered once for a given figure,
// scale and build can be reused verbatim. The CLI uses a [FileCache] under
// the XDG cache directory; tests and --no-cache use a [NullCache].
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key-value store with optional expiry.
type Cache interface {
	// Get returns the stored value and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// FigureKey identifies a rendered figure by its fingerprint and the
	// output encoding.
	FigureKey(fingerprint string, opts FigureKeyOpts) string
}

// FigureKeyOpts holds the render settings that change the cached bytes
// beyond the figure fingerprint.
type FigureKeyOpts struct {
	Format string `json:"format"`
}

// DefaultKeyer produces "figure:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// FigureKey implements Keyer.
func (DefaultKeyer) FigureKey(fingerprint string, opts FigureKeyOpts) string {
	return hashKey("figure", fingerprint, opts)
}

// TTLFigure is how long a rendered figure stays cached. Fingerprints
// already change with every build, so the TTL only bounds disk usage.
const TTLFigure = 30 * 24 * time.Hour
