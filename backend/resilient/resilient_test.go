package resilient

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingBackend struct {
	failures int
}

func (f *failingBackend) Get(ctx context.Context, key string) ([]byte, error) {
	f.failures++
	return nil, errors.New("boom")
}
func (f *failingBackend) Set(ctx context.Context, key string, value []byte, ttl *time.Duration) error {
	return errors.New("boom")
}
func (f *failingBackend) Delete(ctx context.Context, key string) error { return nil }
func (f *failingBackend) Exists(ctx context.Context, key string) (bool, error) {
	return false, errors.New("boom")
}
func (f *failingBackend) MGet(ctx context.Context, keys []string) ([][]byte, error) {
	return nil, errors.New("boom")
}
func (f *failingBackend) MDelete(ctx context.Context, keys []string) error { return nil }
func (f *failingBackend) ClearAll(ctx context.Context) error              { return nil }
func (f *failingBackend) HealthCheck(ctx context.Context) (bool, error)   { return false, errors.New("boom") }

func TestCircuitOpensAfterRepeatedFailures(t *testing.T) {
	inner := &failingBackend{}
	cfg := DefaultConfig("test")
	cfg.FailureRatio = 0.5
	b := New(inner, cfg)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, _ = b.Get(ctx, "k")
	}

	assert.Equal(t, gobreaker.StateOpen, b.State())

	_, err := b.Get(ctx, "k")
	require.Error(t, err)
}
