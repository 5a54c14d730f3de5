// Package cache stores rendered artifacts and computed geometry between runs.
//
// Entries are keyed by a content hash of the inputs plus every option that
// affects the output, so editing a match file or changing a color produces a
// new key and stale entries simply age out.
//
//	c, _ := cache.NewFileCache(dir)
//	k := cache.NewDefaultKeyer()
//	key := k.ArtifactKey(geometryHash, cache.ArtifactKeyOpts{Format: "png"})
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Nop is a Cache that stores nothing; every Get misses. It backs --no-cache.
var Nop Cache = nop{}

type nop struct{}

func (nop) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (nop) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (nop) Delete(context.Context, string) error                     { return nil }
func (nop) Close() error                                             { return nil }

// Entry lifetimes.
const (
	TTLGeometry = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Key types reported to observability hooks.
const (
	KeyTypeGeometry = "geometry"
	KeyTypeArtifact = "artifact"
)

// GeometryKeyOpts lists the options that change the computed ribbons.
type GeometryKeyOpts struct {
	MinLength int     `json:"min_length"`
	Subsample int     `json:"subsample"`
	Center    bool    `json:"center"`
	Blocks    bool    `json:"blocks"`
	MaxGap    int     `json:"max_gap"`
	DPI       int     `json:"dpi"`
	Width     float64 `json:"width"`
}

// ArtifactKeyOpts lists the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format         string  `json:"format"`
	Color          string  `json:"color"`
	InversionColor string  `json:"inversion_color"`
	Alpha          float64 `json:"alpha"`
	DPI            int     `json:"dpi"`
	Width          float64 `json:"width"`
	Height         float64 `json:"height"`
}

// Keyer derives cache keys.
type Keyer interface {
	// GeometryKey keys the ribbons computed from inputHash.
	GeometryKey(inputHash string, opts GeometryKeyOpts) string

	// ArtifactKey keys one rendered format of the geometry with geometryHash.
	ArtifactKey(geometryHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes the key options into a prefixed key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard Keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// GeometryKey implements Keyer.
func (DefaultKeyer) GeometryKey(inputHash string, opts GeometryKeyOpts) string {
	return hashKey(KeyTypeGeometry, inputHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(geometryHash string, opts ArtifactKeyOpts) string {
	return hashKey(KeyTypeArtifact, geometryHash, opts)
}
