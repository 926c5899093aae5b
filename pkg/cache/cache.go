// Package cache stores expensive pipeline products so repeated runs over an
// unchanged flow skip recomputation.
//
// Two kinds of product are cached: computed layouts and validation reports.
// Keys are content-addressed - they hash the flow itself plus any options
// that influence the product - so a cache never serves stale results and
// never needs invalidation beyond TTL expiry.
//
// Three backends implement [Cache]: a file-based cache for CLI usage, a
// Redis cache for server deployments where replicas share results, and a
// null cache that disables caching entirely.
package cache

import (
	"context"
	"os"
	"path/filepath"
	"time"
)

// Default TTLs per product type.
const (
	// TTLLayout is how long computed layouts stay cached. Layouts are pure
	// functions of the flow and options, so the TTL only bounds disk usage.
	TTLLayout = 30 * 24 * time.Hour

	// TTLReport is how long validation reports stay cached.
	TTLReport = 7 * 24 * time.Hour
)

// Cache is the storage interface shared by all backends.
//
// Get returns (nil, false, nil) on a miss; errors are reserved for backend
// failures. Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero or negative TTL stores forever.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts captures the layout options that influence computed
// positions. Two runs with different options must never share a cache entry.
type LayoutKeyOpts struct {
	SlotWidth   float64 `json:"slot_width"`
	RankSpacing float64 `json:"rank_spacing"`
	NodeWidth   float64 `json:"node_width"`
	NodeHeight  float64 `json:"node_height"`
}

// Keyer generates cache keys for pipeline products.
type Keyer interface {
	// LayoutKey generates a key for a computed layout. flowHash identifies
	// the flow content; opts covers everything else that moves nodes.
	LayoutKey(flowHash string, opts LayoutKeyOpts) string

	// ReportKey generates a key for a validation report.
	ReportKey(flowHash string) string
}

// DefaultKeyer is the standard Keyer. Keys are versioned so a change to the
// cached representation can cut over without colliding with old entries.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey returns "layout:v1:<sha256>".
func (k *DefaultKeyer) LayoutKey(flowHash string, opts LayoutKeyOpts) string {
	return hashKey("layout:v1", flowHash, opts)
}

// ReportKey returns "report:v1:<sha256>".
func (k *DefaultKeyer) ReportKey(flowHash string) string {
	return hashKey("report:v1", flowHash)
}

// DefaultDir returns the standard on-disk cache location,
// $XDG_CACHE_HOME/flowdag or the platform equivalent.
func DefaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "flowdag"), nil
}
