// Package resilient decorates any cachekit.Backend with a circuit
// breaker over github.com/sony/gobreaker/v2. An open breaker fails fast
// with gobreaker's ErrOpenState, which the engine wraps as a BackendError
// and treats as a miss on read and as a non-fatal, logged condition on
// write.
package resilient

import (
	"context"
	"time"

	"github.com/sony/gobreaker/v2"
)

// Config configures the breaker's trip and recovery behavior.
type Config struct {
	Name        string
	MaxRequests uint32
	Interval    time.Duration
	Timeout     time.Duration
	// FailureRatio is the minimum failure ratio, once at least 5
	// requests have been observed in the rolling interval, that trips
	// the breaker open.
	FailureRatio float64
}

// DefaultConfig returns conservative defaults: 5 max half-open requests,
// a 30s rolling interval, a 60s open timeout, and a 50% failure ratio.
func DefaultConfig(name string) Config {
	return Config{
		Name:         name,
		MaxRequests:  5,
		Interval:     30 * time.Second,
		Timeout:      60 * time.Second,
		FailureRatio: 0.5,
	}
}

// Backend wraps an inner cachekit.Backend's read/write operations in a
// gobreaker.CircuitBreaker.
type Backend struct {
	inner Backend_
	cb    *gobreaker.CircuitBreaker[any]
}

// Backend_ is the method set of cachekit.Backend this decorator wraps. It is
// defined locally (rather than importing the root package) to keep this
// package free of an import cycle back to cachekit.
type Backend_ interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl *time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	MGet(ctx context.Context, keys []string) ([][]byte, error)
	MDelete(ctx context.Context, keys []string) error
	ClearAll(ctx context.Context) error
	HealthCheck(ctx context.Context) (bool, error)
}

// New wraps inner with a circuit breaker configured by cfg.
func New(inner Backend_, cfg Config) *Backend {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cfg.FailureRatio
		},
	}
	return &Backend{inner: inner, cb: gobreaker.NewCircuitBreaker[any](settings)}
}

func execute[R any](b *Backend, fn func() (R, error)) (R, error) {
	result, err := b.cb.Execute(func() (any, error) {
		return fn()
	})
	if err != nil {
		var zero R
		return zero, err
	}
	return result.(R), nil
}

// Get implements cachekit.Backend.
func (b *Backend) Get(ctx context.Context, key string) ([]byte, error) {
	return execute(b, func() ([]byte, error) { return b.inner.Get(ctx, key) })
}

// Set implements cachekit.Backend.
func (b *Backend) Set(ctx context.Context, key string, value []byte, ttl *time.Duration) error {
	_, err := execute(b, func() (struct{}, error) { return struct{}{}, b.inner.Set(ctx, key, value, ttl) })
	return err
}

// Delete implements cachekit.Backend.
func (b *Backend) Delete(ctx context.Context, key string) error {
	_, err := execute(b, func() (struct{}, error) { return struct{}{}, b.inner.Delete(ctx, key) })
	return err
}

// Exists implements cachekit.Backend.
func (b *Backend) Exists(ctx context.Context, key string) (bool, error) {
	return execute(b, func() (bool, error) { return b.inner.Exists(ctx, key) })
}

// MGet implements cachekit.Backend.
func (b *Backend) MGet(ctx context.Context, keys []string) ([][]byte, error) {
	return execute(b, func() ([][]byte, error) { return b.inner.MGet(ctx, keys) })
}

// MDelete implements cachekit.Backend.
func (b *Backend) MDelete(ctx context.Context, keys []string) error {
	_, err := execute(b, func() (struct{}, error) { return struct{}{}, b.inner.MDelete(ctx, keys) })
	return err
}

// ClearAll implements cachekit.Backend.
func (b *Backend) ClearAll(ctx context.Context) error {
	_, err := execute(b, func() (struct{}, error) { return struct{}{}, b.inner.ClearAll(ctx) })
	return err
}

// HealthCheck implements cachekit.Backend.
func (b *Backend) HealthCheck(ctx context.Context) (bool, error) {
	return execute(b, func() (bool, error) { return b.inner.HealthCheck(ctx) })
}

// State returns the breaker's current state, mainly for tests/diagnostics.
func (b *Backend) State() gobreaker.State {
	return b.cb.State()
}
