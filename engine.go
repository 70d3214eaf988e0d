package cachekit

import (
	"context"
	"errors"
	"time"

	"github.com/ckit-dev/cachekit/internal/observability"
	"github.com/ckit-dev/cachekit/internal/retrypolicy"
)

// Strategy selects one of the four explicit read/write patterns an Engine
// operation executes.
type Strategy int

const (
	// StrategyCacheOnly ("Strategy A"): read the backend; never consult
	// the repository; never write back.
	StrategyCacheOnly Strategy = iota

	// StrategyReadThrough ("Strategy B", default): read the backend, and
	// on miss/decode-failure consult the repository and refill.
	StrategyReadThrough

	// StrategyInvalidateThenRefill ("Strategy C"): unconditionally delete
	// the key, then consult the repository and refill.
	StrategyInvalidateThenRefill

	// StrategySkipCache ("Strategy D"): consult the repository directly;
	// never read or write the backend.
	StrategySkipCache
)

// Engine executes strategies against a Backend and a Repository for
// entities of type T.
type Engine[T any] struct {
	entity  Entity[T]
	backend Backend
	policy  Policy
	hook    safeHook
	logger  observability.Logger
	config  Config
}

// NewEngine constructs an Engine for entity type T. A nil hook installs
// NoopHook; a nil logger installs a no-op logger. config.RetryDefaultCount
// is the retry budget an operation falls back to when its own
// OperationConfig.RetryCount is left at zero.
func NewEngine[T any](entity Entity[T], backend Backend, policy Policy, hook Hook, logger observability.Logger, config Config) *Engine[T] {
	if hook == nil {
		hook = NoopHook{}
	}
	if logger == nil {
		logger = observability.NewNoopLogger()
	}
	return &Engine[T]{
		entity:  entity,
		backend: backend,
		policy:  policy,
		hook:    safeHook{h: hook},
		logger:  logger,
		config:  config,
	}
}

// retryCount resolves an operation's effective retry budget: its own
// RetryCount if set, else the engine's configured default.
func (e *Engine[T]) retryCount(cfg OperationConfig) int {
	if cfg.RetryCount != 0 {
		return cfg.RetryCount
	}
	return e.config.RetryDefaultCount
}

// Execute runs strategy against feeder and repo under cfg. It returns a
// fatal error (RepositoryError, Timeout, the context's error on other
// cancellation, or an error for an unknown strategy) if one occurred;
// non-fatal conditions (backend errors, decode failures) are logged and
// absorbed into a miss.
func (e *Engine[T]) Execute(ctx context.Context, feeder Feeder[T], repo Repository[T], strategy Strategy, cfg OperationConfig) error {
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	id := feeder.EntityID()
	key := composeKey(e.entity.Prefix(), id)

	done := make(chan error, 1)
	go func() {
		switch strategy {
		case StrategyCacheOnly:
			done <- e.runCacheOnly(ctx, feeder, key, cfg)
		case StrategyReadThrough:
			done <- e.runReadThrough(ctx, feeder, repo, key, id, cfg)
		case StrategyInvalidateThenRefill:
			done <- e.runInvalidateThenRefill(ctx, feeder, repo, key, id, cfg)
		case StrategySkipCache:
			done <- e.runSkipCache(ctx, feeder, repo, id, cfg)
		default:
			done <- errUnknownStrategy()
		}
	}()

	select {
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			e.hook.OnError(key, ErrorKindTimeout, 0)
			return ErrTimeout
		}
		return ctx.Err()
	case err := <-done:
		return err
	}
}

func errUnknownStrategy() error {
	return errors.New("cachekit: unknown strategy")
}

// runCacheOnly implements Strategy A.
func (e *Engine[T]) runCacheOnly(ctx context.Context, feeder Feeder[T], key string, cfg OperationConfig) error {
	start := time.Now()
	payload, hit, err := e.readBackend(ctx, key, e.retryCount(cfg))
	elapsed := time.Since(start)
	if err != nil {
		e.logger.Warn("backend read failed, treating as absent", map[string]any{"key": key, "error": err.Error()})
		e.hook.OnError(key, ErrorKindBackend, elapsed)
		feeder.Feed(nil)
		return nil
	}
	if !hit {
		e.hook.OnMiss(key, elapsed)
		feeder.Feed(nil)
		return nil
	}

	value, decodeErr := e.decode(payload)
	if decodeErr != nil {
		e.logDecodeFailure(key, decodeErr)
		e.hook.OnMiss(key, elapsed)
		feeder.Feed(nil)
		return nil
	}

	e.hook.OnHit(key, elapsed)
	feeder.Feed(&value)
	return nil
}

// runReadThrough implements Strategy B.
func (e *Engine[T]) runReadThrough(ctx context.Context, feeder Feeder[T], repo Repository[T], key, id string, cfg OperationConfig) error {
	start := time.Now()
	payload, hit, err := e.readBackendNoRetry(ctx, key)
	elapsed := time.Since(start)

	switch {
	case err != nil:
		e.logger.Warn("backend read failed, treating as miss", map[string]any{"key": key, "error": err.Error()})
		e.hook.OnError(key, ErrorKindBackend, elapsed)
	case !hit:
		e.hook.OnMiss(key, elapsed)
	default:
		if value, decodeErr := e.decode(payload); decodeErr == nil {
			e.hook.OnHit(key, elapsed)
			feeder.Feed(&value)
			return nil
		} else {
			e.logDecodeFailure(key, decodeErr)
		}
	}
	// Miss, backend error, or decode failure: all treated as miss, fall
	// through to the repository.

	value, fetchErr := e.fetchFromRepository(ctx, repo, id, e.retryCount(cfg))
	if fetchErr != nil {
		e.hook.OnError(key, ErrorKindRepository, time.Since(start))
		return fetchErr
	}

	if value == nil {
		feeder.Feed(nil)
		return nil
	}

	e.writeBackBestEffort(ctx, key, *value, cfg)
	feeder.Feed(value)
	return nil
}

// runInvalidateThenRefill implements Strategy C.
func (e *Engine[T]) runInvalidateThenRefill(ctx context.Context, feeder Feeder[T], repo Repository[T], key, id string, cfg OperationConfig) error {
	if err := e.backend.Delete(ctx, key); err != nil {
		e.hook.OnError(key, ErrorKindBackend, 0)
		e.logger.Warn("backend delete failed", map[string]any{"key": key, "error": err.Error()})
	}

	start := time.Now()
	value, fetchErr := e.fetchFromRepository(ctx, repo, id, e.retryCount(cfg))
	if fetchErr != nil {
		e.hook.OnError(key, ErrorKindRepository, time.Since(start))
		return fetchErr
	}

	if value == nil {
		feeder.Feed(nil)
		return nil
	}

	e.writeBackBestEffort(ctx, key, *value, cfg)
	feeder.Feed(value)
	return nil
}

// runSkipCache implements Strategy D: never touches the backend.
func (e *Engine[T]) runSkipCache(ctx context.Context, feeder Feeder[T], repo Repository[T], id string, cfg OperationConfig) error {
	value, fetchErr := e.fetchFromRepository(ctx, repo, id, e.retryCount(cfg))
	if fetchErr != nil {
		return fetchErr
	}
	feeder.Feed(value)
	return nil
}

// readBackend performs a backend Get, retrying up to retries times.
// Strategy A is the only strategy that retries its backend read.
func (e *Engine[T]) readBackend(ctx context.Context, key string, retries int) ([]byte, bool, error) {
	var payload []byte
	var hit bool
	err := retrypolicy.Do(ctx, retries, true, func(ctx context.Context) error {
		p, err := e.backend.Get(ctx, key)
		if err != nil {
			return err
		}
		payload = p
		hit = p != nil
		return nil
	})
	if err != nil {
		return nil, false, wrapBackendErr(err)
	}
	return payload, hit, nil
}

// readBackendNoRetry performs a single backend Get with no retry, used by
// Strategy B, whose backend read is never retried.
func (e *Engine[T]) readBackendNoRetry(ctx context.Context, key string) ([]byte, bool, error) {
	payload, err := e.backend.Get(ctx, key)
	if err != nil {
		return nil, false, wrapBackendErr(err)
	}
	return payload, payload != nil, nil
}

// decode unwraps the envelope and deserializes the payload.
func (e *Engine[T]) decode(payload []byte) (T, error) {
	var zero T
	raw, err := unwrapEnvelope(payload)
	if err != nil {
		return zero, err
	}
	value, err := e.entity.Deserialize(raw)
	if err != nil {
		return zero, &deserializeError{err: err}
	}
	return value, nil
}

type deserializeError struct{ err error }

func (d *deserializeError) Error() string { return "cachekit: deserialization error: " + d.err.Error() }
func (d *deserializeError) Unwrap() error { return d.err }
func (d *deserializeError) Is(target error) bool {
	return target == ErrDeserializationError
}

// fetchFromRepository retries the repository call up to retries times,
// returning a fatal, wrapped RepositoryError after the budget is
// exhausted.
func (e *Engine[T]) fetchFromRepository(ctx context.Context, repo Repository[T], id string, retries int) (*T, error) {
	var value *T
	err := retrypolicy.Do(ctx, retries, true, func(ctx context.Context) error {
		v, err := repo.FetchByID(ctx, id)
		if err != nil {
			return err
		}
		value = v
		return nil
	})
	if err != nil {
		return nil, wrapRepositoryErr(err)
	}
	return value, nil
}

// writeBackBestEffort encodes and writes value to the backend. Failures
// are logged and swallowed: backend writes are never fatal to the
// operation.
func (e *Engine[T]) writeBackBestEffort(ctx context.Context, key string, value T, cfg OperationConfig) {
	start := time.Now()
	payload, err := e.entity.Serialize(value)
	if err != nil {
		e.logger.Error("entity serialize failed", map[string]any{"key": key, "error": err.Error()})
		e.hook.OnError(key, ErrorKindSerialize, time.Since(start))
		return
	}

	ttl := e.policy.Resolve(e.entity.Prefix(), cfg.TTLOverride)
	envelope := wrapEnvelope(payload)
	if err := e.backend.Set(ctx, key, envelope, ttl); err != nil {
		e.logger.Warn("backend write failed", map[string]any{"key": key, "error": err.Error()})
		e.hook.OnError(key, ErrorKindBackend, time.Since(start))
		return
	}
	e.hook.OnSet(key, time.Since(start))
}

func (e *Engine[T]) logDecodeFailure(key string, err error) {
	var vme *VersionMismatchError
	if errors.As(err, &vme) {
		e.logger.Info("cache entry version mismatch, treating as miss", map[string]any{
			"key": key, "expected": vme.Expected, "found": vme.Found,
		})
		return
	}
	if errors.Is(err, ErrInvalidCacheEntry) {
		e.logger.Warn("invalid cache entry, treating as miss", map[string]any{"key": key})
		return
	}
	e.logger.Warn("cache entry deserialization failed, treating as miss", map[string]any{
		"key": key, "error": err.Error(),
	})
}
