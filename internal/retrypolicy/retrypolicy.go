// Package retrypolicy implements the engine's retry semantics for
// repository and backend-read calls: exponential backoff over
// github.com/cenkalti/backoff/v4, context-aware, with a hard attempt cap.
package retrypolicy

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Base, Multiplier and Cap define the backoff curve: base 10ms, doubling
// per attempt, capped at 1s.
const (
	Base       = 10 * time.Millisecond
	Multiplier = 2.0
	Cap        = 1 * time.Second
)

// Do runs fn, retrying up to retries additional times (so retries+1 total
// attempts) on error, with exponential backoff. jitter enables
// backoff/v4's default randomization factor; disabling it makes delays
// deterministic, useful for tests.
//
// retries <= 0 means no retries at all: fn runs exactly once. This is
// handled as a special case before any backoff is built, so a negative
// count is never converted to the uint64 that backoff.WithMaxRetries
// takes.
func Do(ctx context.Context, retries int, jitter bool, fn func(ctx context.Context) error) error {
	if retries <= 0 {
		return fn(ctx)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = Base
	b.Multiplier = Multiplier
	b.MaxInterval = Cap
	b.MaxElapsedTime = 0 // bounded by WithMaxRetries, not elapsed time
	if !jitter {
		b.RandomizationFactor = 0
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(b, uint64(retries)), ctx)

	return backoff.Retry(func() error {
		return fn(ctx)
	}, bo)
}
