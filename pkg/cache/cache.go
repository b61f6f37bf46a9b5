// Package cache stores rendered frames and diagrams keyed by everything that
// affects their bytes.
//
// Three backends share the [Cache] interface:
//   - [NullCache] stores nothing (caching disabled)
//   - [FileCache] writes one JSON file per entry, for the CLI
//   - [RedisCache] talks to a Redis server, for the preview server
//
// Keys come from a [Keyer]. [DefaultKeyer] hashes the key options so that any
// change to the tuning, size or output format produces a new key;
// [ScopedKeyer] adds a namespace prefix on top.
package cache

import (
	"context"
	"strings"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the data for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// FrameKey identifies one rendered frame.
	FrameKey(opts FrameKeyOpts) string

	// DiagramKey identifies a rendered state diagram.
	DiagramKey(state, format string) string
}

// FrameKeyOpts is everything that changes the bytes of a rendered frame.
type FrameKeyOpts struct {
	Format    string  `json:"format"`
	Direction string  `json:"direction"`
	Progress  float64 `json:"progress"`
	VPos      float64 `json:"vpos"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Scale     float64 `json:"scale"`
	Row       int     `json:"row"`
	Color     string  `json:"color"`
	Icon      string  `json:"icon"`
	Images    bool    `json:"images"`

	// Params is a digest of the effect tuning, see Hash.
	Params string `json:"params"`
}

// DefaultKeyer hashes key options with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// FrameKey returns "frame:<hash>".
func (DefaultKeyer) FrameKey(opts FrameKeyOpts) string {
	return hashKey("frame", opts)
}

// DiagramKey returns "diagram:<format>:<state>". Diagrams are small and
// enumerable so the key stays readable.
func (DefaultKeyer) DiagramKey(state, format string) string {
	return "diagram:" + format + ":" + state
}

// KeyType returns "frame", "diagram" or "other" for a key built by a Keyer,
// scoped or not. It labels cache hooks.
func KeyType(key string) string {
	for _, t := range []string{"frame", "diagram"} {
		if strings.HasPrefix(key, t+":") || strings.Contains(key, ":"+t+":") {
			return t
		}
	}
	return "other"
}
