package lrumemory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSetDelete(t *testing.T) {
	b, err := New(10)
	require.NoError(t, err)
	ctx := context.Background()

	v, err := b.Get(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, b.Set(ctx, "a", []byte("1"), nil))
	v, err = b.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), v)

	require.NoError(t, b.Delete(ctx, "a"))
	v, err = b.Get(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestEvictsLeastRecentlyUsedOnOverflow(t *testing.T) {
	b, err := New(2)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, b.Set(ctx, "a", []byte("1"), nil))
	require.NoError(t, b.Set(ctx, "b", []byte("2"), nil))

	// Touch "a" so "b" becomes the least recently used.
	_, _ = b.Get(ctx, "a")

	require.NoError(t, b.Set(ctx, "c", []byte("3"), nil))

	assert.Equal(t, 2, b.Len())

	v, _ := b.Get(ctx, "b")
	assert.Nil(t, v, "b should have been evicted as the LRU entry")

	v, _ = b.Get(ctx, "a")
	assert.Equal(t, []byte("1"), v)

	v, _ = b.Get(ctx, "c")
	assert.Equal(t, []byte("3"), v)
}

func TestTTLExpiry(t *testing.T) {
	b, err := New(10)
	require.NoError(t, err)
	ctx := context.Background()

	ttl := 30 * time.Millisecond
	require.NoError(t, b.Set(ctx, "a", []byte("1"), &ttl))

	time.Sleep(60 * time.Millisecond)
	v, err := b.Get(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, v)
}
