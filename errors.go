package cachekit

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced at the engine boundary. Callers should use
// errors.Is/errors.As rather than comparing strings.
var (
	// ErrCacheMiss is informational: the backend had no usable entry for a
	// key. Strategy A feeds absent on this; Strategy B treats it as the
	// signal to consult the repository.
	ErrCacheMiss = errors.New("cachekit: cache miss")

	// ErrInvalidCacheEntry means the bytes read from the backend did not
	// start with the envelope magic tag. Always treated as a miss.
	ErrInvalidCacheEntry = errors.New("cachekit: invalid cache entry")

	// ErrSerializationError means an entity's Serialize failed.
	ErrSerializationError = errors.New("cachekit: serialization error")

	// ErrDeserializationError means an entity's Deserialize failed on an
	// otherwise well-formed envelope payload.
	ErrDeserializationError = errors.New("cachekit: deserialization error")

	// ErrBackendError wraps a failure from the storage backend.
	ErrBackendError = errors.New("cachekit: backend error")

	// ErrRepositoryError wraps a failure from the repository, surfaced
	// after the configured retry budget is exhausted.
	ErrRepositoryError = errors.New("cachekit: repository error")

	// ErrTimeout means the per-operation timeout elapsed before the
	// engine could produce a result.
	ErrTimeout = errors.New("cachekit: operation timeout")

	// ErrConfigError means a Config or Policy value was invalid at
	// construction time.
	ErrConfigError = errors.New("cachekit: invalid configuration")
)

// VersionMismatchError means a cache hit's envelope version differs from
// CurrentVersion. The engine always treats this as a miss.
type VersionMismatchError struct {
	Expected uint32
	Found    uint32
}

func (e *VersionMismatchError) Error() string {
	return fmt.Sprintf("cachekit: version mismatch: expected %d, found %d", e.Expected, e.Found)
}

// Is reports whether target is a *VersionMismatchError, so that
// errors.Is(err, &VersionMismatchError{}) matches any instance.
func (e *VersionMismatchError) Is(target error) bool {
	_, ok := target.(*VersionMismatchError)
	return ok
}

func wrapBackendErr(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrBackendError, err)
}

func wrapRepositoryErr(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrRepositoryError, err)
}
