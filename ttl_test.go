package cachekit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTLPolicyResolutionOrder(t *testing.T) {
	override := 5 * time.Second

	t.Run("override wins over everything", func(t *testing.T) {
		p := NewFixedPolicy(time.Hour)
		got := p.Resolve("user", &override)
		require.NotNil(t, got)
		assert.Equal(t, override, *got)
	})

	t.Run("per-prefix hit", func(t *testing.T) {
		p := NewPerPrefixPolicy(map[string]time.Duration{"user": time.Minute})
		got := p.Resolve("user", nil)
		require.NotNil(t, got)
		assert.Equal(t, time.Minute, *got)
	})

	t.Run("per-prefix miss falls through to no expiry", func(t *testing.T) {
		p := NewPerPrefixPolicy(map[string]time.Duration{"other": time.Minute})
		got := p.Resolve("user", nil)
		assert.Nil(t, got)
	})

	t.Run("fixed policy applies regardless of prefix", func(t *testing.T) {
		p := NewFixedPolicy(10 * time.Second)
		got := p.Resolve("anything", nil)
		require.NotNil(t, got)
		assert.Equal(t, 10*time.Second, *got)
	})

	t.Run("no-expiry policy with no override", func(t *testing.T) {
		p := NewNoExpiryPolicy()
		assert.Nil(t, p.Resolve("user", nil))
	})

	t.Run("zero TTL still resolves, not no-expiry", func(t *testing.T) {
		p := NewFixedPolicy(0)
		got := p.Resolve("user", nil)
		require.NotNil(t, got)
		assert.Equal(t, time.Duration(0), *got)
	})
}
