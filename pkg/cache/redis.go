package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a small JSON cache over redis, used to shave repeated
// statistics calls off the platform. A nil *Cache is a valid no-op
// cache, so the dashboard runs unchanged without redis configured.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// Options configures the redis connection
type Options struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// New connects to redis and verifies connectivity
func New(ctx context.Context, opts Options) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping failed: %w", err)
	}

	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Cache{client: client, ttl: ttl}, nil
}

// GetJSON loads a cached value into out; the bool reports a hit
func (c *Cache) GetJSON(ctx context.Context, key string, out interface{}) bool {
	if c == nil {
		return false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

// SetJSON stores a value under key with the configured TTL
func (c *Cache) SetJSON(ctx context.Context, key string, v interface{}) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	// 缓存失败不影响主流程
	_ = c.client.Set(ctx, key, raw, c.ttl).Err()
}

// Close releases the redis connection
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
