// Package lrumemory implements a capacity-bound in-process Backend,
// evicting the least-recently-used key on overflow, via
// github.com/hashicorp/golang-lru/v2.
package lrumemory

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type entry struct {
	payload []byte
	expiry  *time.Time
}

func (e entry) expired(now time.Time) bool {
	return e.expiry != nil && now.After(*e.expiry)
}

// Backend is an LRU-capacity-bound cachekit.Backend.
type Backend struct {
	mu    sync.Mutex
	cache *lru.Cache[string, entry]
}

// New constructs a Backend holding at most size entries.
func New(size int) (*Backend, error) {
	c, err := lru.New[string, entry](size)
	if err != nil {
		return nil, err
	}
	return &Backend{cache: c}, nil
}

// Get implements cachekit.Backend.
func (b *Backend) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.cache.Get(key)
	if !ok {
		return nil, nil
	}
	if e.expired(time.Now()) {
		b.cache.Remove(key)
		return nil, nil
	}
	out := make([]byte, len(e.payload))
	copy(out, e.payload)
	return out, nil
}

// Set implements cachekit.Backend.
func (b *Backend) Set(ctx context.Context, key string, value []byte, ttl *time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var exp *time.Time
	if ttl != nil {
		t := time.Now().Add(*ttl)
		exp = &t
	}
	stored := make([]byte, len(value))
	copy(stored, value)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.cache.Add(key, entry{payload: stored, expiry: exp})
	return nil
}

// Delete implements cachekit.Backend.
func (b *Backend) Delete(ctx context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cache.Remove(key)
	return nil
}

// Exists implements cachekit.Backend.
func (b *Backend) Exists(ctx context.Context, key string) (bool, error) {
	v, err := b.Get(ctx, key)
	if err != nil {
		return false, err
	}
	return v != nil, nil
}

// MGet implements cachekit.Backend, preserving input order and
// cardinality.
func (b *Backend) MGet(ctx context.Context, keys []string) ([][]byte, error) {
	out := make([][]byte, len(keys))
	for i, k := range keys {
		v, err := b.Get(ctx, k)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// MDelete implements cachekit.Backend.
func (b *Backend) MDelete(ctx context.Context, keys []string) error {
	for _, k := range keys {
		if err := b.Delete(ctx, k); err != nil {
			return err
		}
	}
	return nil
}

// ClearAll implements cachekit.Backend.
func (b *Backend) ClearAll(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cache.Purge()
	return nil
}

// HealthCheck implements cachekit.Backend.
func (b *Backend) HealthCheck(ctx context.Context) (bool, error) {
	return true, nil
}

// Len returns the current number of entries, mainly for tests.
func (b *Backend) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cache.Len()
}
