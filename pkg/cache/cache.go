// Package cache stores fetched evidence between runs.
//
// Caching is opt-in. A default audit uses [NullCache] and therefore keeps no
// state between invocations; [FileCache] and [RedisCache] let repeated runs
// over a large record set skip pages that were fetched recently.
//
// Values are opaque byte slices. Callers encode them (the integrations client
// uses JSON) and derive keys with [PageKey] and [FeedKey].
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrUnknownBackend is returned by [Open] for an unrecognized backend name.
var ErrUnknownBackend = errors.New("unknown cache backend")

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the stored value and true on a hit. A miss is
	// (nil, false, nil); expired entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by backends that can drop all of their entries.
type Clearer interface {
	// Clear removes every entry and returns how many were removed.
	Clear(ctx context.Context) (int, error)
}

// Backend names accepted by [Open].
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Config selects and parameterizes a cache backend.
type Config struct {
	Backend  string // "none", "file" or "redis"
	Dir      string // directory for the file backend
	RedisURL string // redis://host:port/db for the redis backend
}

// Open constructs the backend named by cfg.Backend. An empty backend
// name is treated as "none".
func Open(cfg Config) (Cache, error) {
	switch cfg.Backend {
	case "", BackendNone:
		return NewNullCache(), nil
	case BackendFile:
		c, err := NewFileCache(cfg.Dir)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendRedis:
		c, err := NewRedisCacheFromURL(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
