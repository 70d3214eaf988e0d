package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ckit-dev/cachekit"
)

func TestLoadConfigDefaults(t *testing.T) {
	v := viper.New()
	cfg, policy, err := LoadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, cachekit.DefaultPoolSize(), cfg.PoolSize)
	assert.Equal(t, 5*time.Second, cfg.ConnectionTimeout)
	assert.Equal(t, 0, cfg.RetryDefaultCount)
	assert.Equal(t, cachekit.PolicyNone, policy.Kind)
}

func TestLoadConfigOverrides(t *testing.T) {
	v := viper.New()
	v.Set("pool_size", 10)
	v.Set("connection_timeout", "2s")
	v.Set("retry.default_count", 3)
	v.Set("ttl.kind", "fixed")
	v.Set("ttl.fixed", "1m")

	cfg, policy, err := LoadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.PoolSize)
	assert.Equal(t, 2*time.Second, cfg.ConnectionTimeout)
	assert.Equal(t, 3, cfg.RetryDefaultCount)
	assert.Equal(t, cachekit.PolicyFixed, policy.Kind)
	assert.Equal(t, time.Minute, policy.Fixed)
}

func TestLoadConfigInvalidPoolSize(t *testing.T) {
	v := viper.New()
	v.Set("pool_size", 0)
	_, _, err := LoadConfig(v)
	require.Error(t, err)
	assert.ErrorIs(t, err, cachekit.ErrConfigError)
}

func TestLoadPolicyPerPrefix(t *testing.T) {
	v := viper.New()
	v.Set("ttl.kind", "per_prefix")
	v.Set("ttl.per_prefix", map[string]any{"user": "30s", "order": 60})

	_, policy, err := LoadConfig(v)
	require.NoError(t, err)
	require.Equal(t, cachekit.PolicyPerPrefix, policy.Kind)
	assert.Equal(t, 30*time.Second, policy.PerPrefix["user"])
	assert.Equal(t, time.Minute, policy.PerPrefix["order"])
}

func TestLoadPolicyUnknownKind(t *testing.T) {
	v := viper.New()
	v.Set("ttl.kind", "bogus")
	_, _, err := LoadConfig(v)
	require.Error(t, err)
	assert.ErrorIs(t, err, cachekit.ErrConfigError)
}

func TestLoadRedisBackendConfigBridgesPoolSettings(t *testing.T) {
	v := viper.New()
	v.Set("redis.addr", "localhost:6379")
	v.Set("redis.password", "secret")
	v.Set("redis.db", 2)

	cc := cachekit.DefaultConfig()
	cc.PoolSize = 16
	cc.ConnectionTimeout = 3 * time.Second

	rc := LoadRedisBackendConfig(v, cc)
	assert.Equal(t, "localhost:6379", rc.Addr)
	assert.Equal(t, "secret", rc.Password)
	assert.Equal(t, 2, rc.DB)
	assert.Equal(t, 16, rc.PoolSize)
	assert.Equal(t, 3*time.Second, rc.ConnectionTimeout)
}
