package cachekit

import "time"

// ErrorKind classifies the error passed to Hook.OnError.
type ErrorKind string

// Error kinds surfaced to the observability hook.
const (
	ErrorKindBackend         ErrorKind = "backend_error"
	ErrorKindRepository      ErrorKind = "repository_error"
	ErrorKindTimeout         ErrorKind = "timeout"
	ErrorKindInvalidEntry    ErrorKind = "invalid_cache_entry"
	ErrorKindVersionMismatch ErrorKind = "version_mismatch"
	ErrorKindDeserialize     ErrorKind = "deserialization_error"
	ErrorKindSerialize       ErrorKind = "serialization_error"
)

// Hook receives invariant-preserving callbacks for hit/miss/set/error
// events, in order of occurrence within one operation. A Hook must never
// panic; the engine completes its operation regardless of hook failures,
// and any panic raised by a hook call is recovered and discarded.
type Hook interface {
	OnHit(key string, elapsed time.Duration)
	OnMiss(key string, elapsed time.Duration)
	OnSet(key string, elapsed time.Duration)
	OnError(key string, kind ErrorKind, elapsed time.Duration)
}

// NoopHook implements Hook with no-op methods. It is the default when no
// Hook is configured.
type NoopHook struct{}

func (NoopHook) OnHit(string, time.Duration)             {}
func (NoopHook) OnMiss(string, time.Duration)             {}
func (NoopHook) OnSet(string, time.Duration)              {}
func (NoopHook) OnError(string, ErrorKind, time.Duration) {}

// safeHook wraps a Hook so a panicking callback cannot fail the calling
// operation.
type safeHook struct{ h Hook }

func (s safeHook) call(fn func()) {
	defer func() { _ = recover() }()
	fn()
}

func (s safeHook) OnHit(key string, elapsed time.Duration) {
	s.call(func() { s.h.OnHit(key, elapsed) })
}

func (s safeHook) OnMiss(key string, elapsed time.Duration) {
	s.call(func() { s.h.OnMiss(key, elapsed) })
}

func (s safeHook) OnSet(key string, elapsed time.Duration) {
	s.call(func() { s.h.OnSet(key, elapsed) })
}

func (s safeHook) OnError(key string, kind ErrorKind, elapsed time.Duration) {
	s.call(func() { s.h.OnError(key, kind, elapsed) })
}
