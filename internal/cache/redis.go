package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache implements caching backed by an external Redis instance,
// for multi-process deployments sharing one result cache.
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisCache creates a Redis-backed cache from a redis:// URL
func NewRedisCache(url string, defaultTTL time.Duration) (*RedisCache, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return &RedisCache{
		rdb: redis.NewClient(opt),
		ttl: defaultTTL,
	}, nil
}

// Get retrieves a value from Redis. Any Redis error degrades to a miss.
func (c *RedisCache) Get(key string) ([]byte, bool) {
	val, err := c.rdb.Get(context.Background(), key).Bytes()
	if err != nil {
		return nil, false
	}
	return val, true
}

// Set stores a value in Redis with the given TTL
func (c *RedisCache) Set(key string, value []byte, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.ttl
	}
	return c.rdb.Set(context.Background(), key, value, ttl).Err()
}

// Delete removes a value from Redis
func (c *RedisCache) Delete(key string) error {
	return c.rdb.Del(context.Background(), key).Err()
}

// Close releases the underlying client
func (c *RedisCache) Close() error {
	return c.rdb.Close()
}
