// Package cache stores rendered artifacts between CLI runs.
//
// Both engines are pure functions, so any output can be keyed by a hash of
// its input. [Keyer] builds those keys; [Cache] stores the bytes. The CLI
// uses [FileCache] under the XDG cache directory and [NullCache] when
// caching is disabled.
package cache

import (
	"context"
	"time"
)

// Default TTLs. Outputs never go stale for a given input, so the TTLs only
// bound disk use.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 30 * 24 * time.Hour
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the stored value and whether it was found.
	// Expired or corrupt entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources.
	Close() error
}

// ArtifactKeyOpts are the render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Kind       string  `json:"kind"`   // "bed" or "template"
	Format     string  `json:"format"` // svg, pdf, png, json, txt, xlsx
	Labels     bool    `json:"labels,omitempty"`
	IndexHoles bool    `json:"index_holes,omitempty"`
	PlateGap   float64 `json:"plate_gap,omitempty"`
	DPI        float64 `json:"dpi,omitempty"`
	Date       string  `json:"date,omitempty"` // printed on bed reports
}

// Keyer generates cache keys.
type Keyer interface {
	// LayoutKey keys a computed bed layout by the hash of its configuration.
	LayoutKey(configHash string) string
	// GeometryKey keys computed template geometry by the hash of its parameters.
	GeometryKey(paramsHash string) string
	// ArtifactKey keys a rendered file by its input hash and render options.
	ArtifactKey(inputHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard Keyer.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard Keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey returns "layout:<hash>".
func (DefaultKeyer) LayoutKey(configHash string) string {
	return hashKey("layout", configHash)
}

// GeometryKey returns "geometry:<hash>".
func (DefaultKeyer) GeometryKey(paramsHash string) string {
	return hashKey("geometry", paramsHash)
}

// ArtifactKey returns "artifact:<hash>" over the input hash and options.
func (DefaultKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", inputHash, opts)
}

var _ Keyer = DefaultKeyer{}
