package memory

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSetDelete(t *testing.T) {
	b := New(0)
	defer b.Close()
	ctx := context.Background()

	v, err := b.Get(ctx, "user:u1")
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, b.Set(ctx, "user:u1", []byte("alice"), nil))

	v, err = b.Get(ctx, "user:u1")
	require.NoError(t, err)
	assert.Equal(t, []byte("alice"), v)

	exists, err := b.Exists(ctx, "user:u1")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, b.Delete(ctx, "user:u1"))
	v, err = b.Get(ctx, "user:u1")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestTTLExpiry(t *testing.T) {
	b := New(0)
	defer b.Close()
	ctx := context.Background()

	ttl := 30 * time.Millisecond
	require.NoError(t, b.Set(ctx, "user:u1", []byte("alice"), &ttl))

	v, err := b.Get(ctx, "user:u1")
	require.NoError(t, err)
	assert.NotNil(t, v, "entry should be a hit before TTL elapses")

	time.Sleep(60 * time.Millisecond)

	v, err = b.Get(ctx, "user:u1")
	require.NoError(t, err)
	assert.Nil(t, v, "entry should be a miss strictly after TTL elapses")
}

func TestZeroTTLExpiresImmediately(t *testing.T) {
	b := New(0)
	defer b.Close()
	ctx := context.Background()

	zero := time.Duration(0)
	require.NoError(t, b.Set(ctx, "user:u1", []byte("alice"), &zero))

	time.Sleep(1 * time.Millisecond)
	v, err := b.Get(ctx, "user:u1")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestMGetPreservesOrderAndCardinality(t *testing.T) {
	b := New(0)
	defer b.Close()
	ctx := context.Background()

	require.NoError(t, b.Set(ctx, "a", []byte("1"), nil))
	require.NoError(t, b.Set(ctx, "c", []byte("3"), nil))

	got, err := b.MGet(ctx, []string{"a", "b", "c"})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []byte("1"), got[0])
	assert.Nil(t, got[1])
	assert.Equal(t, []byte("3"), got[2])
}

func TestClearAll(t *testing.T) {
	b := New(0)
	defer b.Close()
	ctx := context.Background()

	require.NoError(t, b.Set(ctx, "a", []byte("1"), nil))
	require.NoError(t, b.ClearAll(ctx))

	v, err := b.Get(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestConcurrentDistinctKeys(t *testing.T) {
	b := New(0)
	defer b.Close()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := "k" + strconv.Itoa(i)
			_ = b.Set(ctx, key, []byte("v"), nil)
			_, _ = b.Get(ctx, key)
		}(i)
	}
	wg.Wait()
}

func TestHealthCheck(t *testing.T) {
	b := New(0)
	defer b.Close()
	ok, err := b.HealthCheck(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
}
