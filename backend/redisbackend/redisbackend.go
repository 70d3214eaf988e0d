// Package redisbackend implements cachekit's Backend contract against a
// real Redis server over github.com/redis/go-redis, verifying
// connectivity with a ping on construction.
package redisbackend

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds the connection parameters for a Redis-backed Backend.
type Config struct {
	Addr              string
	Password          string
	DB                int
	PoolSize          int
	ConnectionTimeout time.Duration
}

// Backend adapts a *redis.Client to cachekit.Backend.
type Backend struct {
	client *redis.Client
}

// New constructs a Backend and verifies connectivity with a Ping.
func New(cfg Config) (*Backend, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		PoolSize:    cfg.PoolSize,
		PoolTimeout: cfg.ConnectionTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Backend{client: client}, nil
}

// NewFromClient adapts an already-constructed *redis.Client, used by
// tests wiring a miniredis-backed client.
func NewFromClient(client *redis.Client) *Backend {
	return &Backend{client: client}
}

// Get implements cachekit.Backend.
func (b *Backend) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := b.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

// Set implements cachekit.Backend. A nil ttl means no expiry; go-redis
// also treats a zero expiration as "no expiry", so a ttl of exactly zero
// (meaning "expire immediately") is special-cased to delete key instead
// of writing an entry that would otherwise persist forever.
func (b *Backend) Set(ctx context.Context, key string, value []byte, ttl *time.Duration) error {
	if ttl != nil && *ttl == 0 {
		return b.client.Del(ctx, key).Err()
	}
	var expiration time.Duration
	if ttl != nil {
		expiration = *ttl
	}
	return b.client.Set(ctx, key, value, expiration).Err()
}

// Delete implements cachekit.Backend.
func (b *Backend) Delete(ctx context.Context, key string) error {
	return b.client.Del(ctx, key).Err()
}

// Exists implements cachekit.Backend.
func (b *Backend) Exists(ctx context.Context, key string) (bool, error) {
	n, err := b.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// MGet implements cachekit.Backend, preserving input order and
// cardinality; absent keys map to a nil slot.
func (b *Backend) MGet(ctx context.Context, keys []string) ([][]byte, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	vals, err := b.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	out := make([][]byte, len(keys))
	for i, v := range vals {
		if v == nil {
			continue
		}
		switch s := v.(type) {
		case string:
			out[i] = []byte(s)
		case []byte:
			out[i] = s
		}
	}
	return out, nil
}

// MDelete implements cachekit.Backend.
func (b *Backend) MDelete(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	return b.client.Del(ctx, keys...).Err()
}

// ClearAll implements cachekit.Backend as a FlushDB of the selected
// database.
func (b *Backend) ClearAll(ctx context.Context) error {
	return b.client.FlushDB(ctx).Err()
}

// HealthCheck implements cachekit.Backend.
func (b *Backend) HealthCheck(ctx context.Context) (bool, error) {
	if err := b.client.Ping(ctx).Err(); err != nil {
		return false, err
	}
	return true, nil
}

// Close releases the underlying client's connection pool.
func (b *Backend) Close() error {
	return b.client.Close()
}
