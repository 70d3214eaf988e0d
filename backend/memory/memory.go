// Package memory implements cachekit's in-process reference Backend: a
// concurrent map guarded by a sync.RWMutex with lazy expiry and an
// optional background sweep for proactive cleanup.
package memory

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	payload []byte
	expiry  *time.Time // nil means no expiry
}

func (e entry) expired(now time.Time) bool {
	return e.expiry != nil && now.After(*e.expiry)
}

// Backend is the in-process reference implementation of cachekit.Backend.
// Safe for concurrent use. Call Close to stop its background sweep.
type Backend struct {
	mu    sync.RWMutex
	items map[string]entry

	sweepInterval time.Duration
	stop          chan struct{}
	stopped       bool
}

// New creates a Backend with an opportunistic background sweep running
// every sweepInterval. A sweepInterval <= 0 disables the background sweep;
// expiry is still enforced lazily on every Get/Exists.
func New(sweepInterval time.Duration) *Backend {
	b := &Backend{
		items:         make(map[string]entry),
		sweepInterval: sweepInterval,
		stop:          make(chan struct{}),
	}
	if sweepInterval > 0 {
		go b.sweepLoop()
	}
	return b
}

func (b *Backend) sweepLoop() {
	ticker := time.NewTicker(b.sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			b.sweep()
		case <-b.stop:
			return
		}
	}
}

func (b *Backend) sweep() {
	now := time.Now()
	b.mu.Lock()
	defer b.mu.Unlock()
	for k, v := range b.items {
		if v.expired(now) {
			delete(b.items, k)
		}
	}
}

// Close stops the background sweep goroutine, if running. Safe to call
// more than once.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.stopped {
		b.stopped = true
		close(b.stop)
	}
	return nil
}

// Get implements cachekit.Backend.
func (b *Backend) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	e, ok := b.items[key]
	if !ok || e.expired(time.Now()) {
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
	b.items[key] = entry{payload: stored, expiry: exp}
	return nil
}

// Delete implements cachekit.Backend.
func (b *Backend) Delete(ctx context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.items, key)
	return nil
}

// Exists implements cachekit.Backend.
func (b *Backend) Exists(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	e, ok := b.items[key]
	if !ok || e.expired(time.Now()) {
		return false, nil
	}
	return true, nil
}

// MGet implements cachekit.Backend, preserving input order and
// cardinality.
func (b *Backend) MGet(ctx context.Context, keys []string) ([][]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	now := time.Now()
	out := make([][]byte, len(keys))

	b.mu.RLock()
	defer b.mu.RUnlock()
	for i, k := range keys {
		e, ok := b.items[k]
		if !ok || e.expired(now) {
			continue
		}
		v := make([]byte, len(e.payload))
		copy(v, e.payload)
		out[i] = v
	}
	return out, nil
}

// MDelete implements cachekit.Backend.
func (b *Backend) MDelete(ctx context.Context, keys []string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, k := range keys {
		delete(b.items, k)
	}
	return nil
}

// ClearAll implements cachekit.Backend as a single point-in-time bulk
// erase.
func (b *Backend) ClearAll(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = make(map[string]entry)
	return nil
}

// HealthCheck implements cachekit.Backend. The in-process backend is
// always healthy once constructed.
func (b *Backend) HealthCheck(ctx context.Context) (bool, error) {
	return true, nil
}
