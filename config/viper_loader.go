// Package config loads cachekit's configuration surface from a
// *viper.Viper: pool size, connection timeout, retry defaults, and the
// TTL policy. Out-of-range values (a pool size below 1, a negative
// connection timeout or retry count, an unknown ttl.kind, a non-positive
// ttl.fixed, an unparsable ttl.per_prefix entry) return a ConfigError.
// A value viper cannot convert to the requested type reads as zero and
// is then validated like any other, so a malformed connection_timeout is
// accepted as zero. Keys outside the recognized set are ignored.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/ckit-dev/cachekit"
	"github.com/ckit-dev/cachekit/backend/redisbackend"
)

// LoadConfig reads the recognized options ("ttl.kind", "ttl.fixed",
// "ttl.per_prefix", "pool_size", "connection_timeout",
// "retry.default_count") and returns a Config and Policy built from them.
func LoadConfig(v *viper.Viper) (cachekit.Config, cachekit.Policy, error) {
	cfg := cachekit.DefaultConfig()

	if v.IsSet("pool_size") {
		cfg.PoolSize = v.GetInt("pool_size")
	}
	if v.IsSet("connection_timeout") {
		cfg.ConnectionTimeout = v.GetDuration("connection_timeout")
	}
	if v.IsSet("retry.default_count") {
		cfg.RetryDefaultCount = v.GetInt("retry.default_count")
	}
	if err := cfg.Validate(); err != nil {
		return cachekit.Config{}, cachekit.Policy{}, err
	}

	policy, err := loadPolicy(v)
	if err != nil {
		return cachekit.Config{}, cachekit.Policy{}, err
	}

	return cfg, policy, nil
}

// LoadRedisBackendConfig reads "redis.addr", "redis.password" and
// "redis.db" and bridges cc's PoolSize and ConnectionTimeout into a
// redisbackend.Config, so a pool size or connection timeout configured
// at the engine level also governs the Redis client's own connection
// pool rather than being silently ignored.
func LoadRedisBackendConfig(v *viper.Viper, cc cachekit.Config) redisbackend.Config {
	return redisbackend.Config{
		Addr:              v.GetString("redis.addr"),
		Password:          v.GetString("redis.password"),
		DB:                v.GetInt("redis.db"),
		PoolSize:          cc.PoolSize,
		ConnectionTimeout: cc.ConnectionTimeout,
	}
}

func loadPolicy(v *viper.Viper) (cachekit.Policy, error) {
	kind := v.GetString("ttl.kind")
	switch kind {
	case "", "none":
		return cachekit.NewNoExpiryPolicy(), nil
	case "fixed":
		d := v.GetDuration("ttl.fixed")
		if d <= 0 {
			return cachekit.Policy{}, fmt.Errorf("%w: ttl.fixed must be > 0 when ttl.kind=fixed", cachekit.ErrConfigError)
		}
		return cachekit.NewFixedPolicy(d), nil
	case "per_prefix":
		raw := v.GetStringMap("ttl.per_prefix")
		m := make(map[string]time.Duration, len(raw))
		for prefix, val := range raw {
			d, err := parseDuration(val)
			if err != nil {
				return cachekit.Policy{}, fmt.Errorf("%w: ttl.per_prefix[%s]: %v", cachekit.ErrConfigError, prefix, err)
			}
			m[prefix] = d
		}
		return cachekit.NewPerPrefixPolicy(m), nil
	default:
		return cachekit.Policy{}, fmt.Errorf("%w: ttl.kind must be one of fixed|per_prefix|none, got %q", cachekit.ErrConfigError, kind)
	}
}

func parseDuration(v any) (time.Duration, error) {
	switch x := v.(type) {
	case time.Duration:
		return x, nil
	case string:
		return time.ParseDuration(x)
	case int:
		return time.Duration(x) * time.Second, nil
	case int64:
		return time.Duration(x) * time.Second, nil
	case float64:
		return time.Duration(x) * time.Second, nil
	default:
		return 0, fmt.Errorf("unsupported duration value %v (%T)", v, v)
	}
}
