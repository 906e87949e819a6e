// Package cache provides a small byte-oriented cache used by the CLI to
// avoid recomputing layouts for unchanged graphs.
//
// Two implementations are provided:
//
//   - [FileCache]: layout entries stored as JSON files under a directory
//   - [NullCache]: a no-op cache for --no-cache and tests
//
// Keys are derived with [Keyer], which hashes the graph content together
// with the layout options so that any input change invalidates the entry.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Cache stores and retrieves opaque byte values by key.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with an optional TTL (0 means no expiration).
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// =============================================================================
// Key Derivation
// =============================================================================

// LayoutKeyOpts captures the layout options that affect the computed result.
// Two runs with identical graph content and identical options share a key.
type LayoutKeyOpts struct {
	Radius    float64 `json:"radius"`
	Ticks     int     `json:"ticks"`
	Levels    int     `json:"levels"`
	EdgeLen   float64 `json:"edge_len"`
	ChargeStr float64 `json:"charge_str"`
}

// Keyer generates cache keys for layout results.
type Keyer interface {
	// LayoutKey generates a key from a graph content hash and layout options.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key for layout caching.
func (k *DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

// Hash returns the full 64-character hex SHA-256 of data. It is used both
// for graph content hashes and for mapping keys onto entry file names.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey builds a "prefix:hash" key from the JSON encoding of its parts.
// The full hash is kept; truncating would invite collisions between layouts.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return fmt.Sprintf("%s:%s", prefix, Hash(data))
}

// =============================================================================
// Null Cache
// =============================================================================

// NullCache never stores anything: every Get is a miss and every write is
// dropped. Selected by --no-cache, and handy in tests.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache {
	return &NullCache{}
}

// Get always reports a miss.
func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set drops the value.
func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

// Delete does nothing.
func (c *NullCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Close does nothing.
func (c *NullCache) Close() error {
	return nil
}

// Ensure NullCache implements Cache.
var _ Cache = (*NullCache)(nil)
