package cachekit

import (
	"context"
	"io"
	"time"
)

// Backend is the abstract byte-granular key/value store the engine reads
// and writes cache entries through. Concrete implementations (in-process
// map, Redis, Memcached, ...) are external collaborators; the core never
// assumes anything beyond this contract.
//
// Implementations must be safe for concurrent use by multiple goroutines.
// Concurrent operations on distinct keys are independent; concurrent
// operations on the same key observe last-writer-wins ordering determined
// by the implementation, never linearizability across keys.
type Backend interface {
	// Get returns the raw envelope bytes stored at key, or (nil, nil) if
	// absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value at key, overwriting atomically. A nil ttl means
	// "no expiry"; a non-nil ttl of exactly zero means "expire
	// immediately" and the entry must miss on the very next read.
	Set(ctx context.Context, key string, value []byte, ttl *time.Duration) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Exists reports whether key is present and unexpired.
	Exists(ctx context.Context, key string) (bool, error)

	// MGet returns values for keys in the same order and cardinality as
	// the input; absent/expired keys yield a nil slice element.
	MGet(ctx context.Context, keys []string) ([][]byte, error)

	// MDelete removes all of keys. Missing keys are not an error.
	MDelete(ctx context.Context, keys []string) error

	// ClearAll erases every entry in a single point-in-time bulk wipe.
	ClearAll(ctx context.Context) error

	// HealthCheck reports whether the backend is reachable and usable.
	HealthCheck(ctx context.Context) (bool, error)
}

// Closer is implemented by backends that own resources (connection pools,
// background goroutines) which must be released explicitly.
type Closer interface {
	io.Closer
}
