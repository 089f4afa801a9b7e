// Package cache provides key/value caching for rendered artifacts and hover
// results.
//
// Backends:
//   - [FileCache]: one file per entry, for the CLI
//   - [BadgerCache]: an embedded badger database, for a single server
//   - [RedisCache]: shared Redis, for several servers
//   - [NullCache]: caching disabled
//
// Keys are derived by a [Keyer] from a content hash of the figure plus the
// options that change the output, so an edited figure never hits a stale
// entry.
package cache

import (
	"context"
	"time"
)

// Cache is a byte cache with per-entry expiry. Implementations are safe
// for concurrent use.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the backend.
	Close() error
}

// Entry lifetimes.
const (
	TTLArtifact = 7 * 24 * time.Hour
	TTLHover    = time.Hour
)

// Keyer derives cache keys.
type Keyer interface {
	ArtifactKey(figureHash string, opts ArtifactKeyOpts) string
	HoverKey(figureHash string, opts HoverKeyOpts) string
}

// ArtifactKeyOpts are the render options that change an artifact.
type ArtifactKeyOpts struct {
	Format    string  `json:"format"`
	Scale     float64 `json:"scale,omitempty"`
	Ticks     int     `json:"ticks,omitempty"`
	EmbedFont bool    `json:"embed_font,omitempty"`
	Title     string  `json:"title,omitempty"`
	// Selection is the trace and box index whose density is shown.
	Selection []int `json:"selection,omitempty"`
	// Cursor is the pixel position of a drawn hover overlay.
	Cursor []float64 `json:"cursor,omitempty"`
}

// HoverKeyOpts are the inputs of a hover query.
type HoverKeyOpts struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Mode string  `json:"mode"`
}

// DefaultKeyer hashes key options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey returns the key of a rendered artifact.
func (DefaultKeyer) ArtifactKey(figureHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", figureHash, opts)
}

// HoverKey returns the key of a hover result.
func (DefaultKeyer) HoverKey(figureHash string, opts HoverKeyOpts) string {
	return hashKey("hover", figureHash, opts)
}
