package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/cygraph/pkg/observability"
)

// RedisCache is a Redis-backed cache for server deployments, where multiple
// instances share one conversion cache. Redis owns expiry, so entries with
// a TTL disappear without client-side cleanup.
type RedisCache struct {
	client *redis.Client
}

// RedisConfig configures the Redis connection.
type RedisConfig struct {
	Addr     string // host:port
	Password string // empty when auth is disabled
	DB       int
}

// NewRedisCache connects to Redis and verifies the connection with a ping.
func NewRedisCache(ctx context.Context, cfg RedisConfig) (Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return &RedisCache{client: client}, nil
}

// Get retrieves a value; a missing key is a miss, not an error.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		observability.CacheOps().OnCacheMiss(ctx, "redis")
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	observability.CacheOps().OnCacheHit(ctx, "redis")
	return data, true, nil
}

// Set stores a value. A ttl of 0 stores it without expiry.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return err
	}
	observability.CacheOps().OnCacheSet(ctx, "redis", len(data))
	return nil
}

// Delete removes a value. Missing keys are not an error.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// Close releases the connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

var _ Cache = (*RedisCache)(nil)
