package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client wraps redis.Client but fails safe by swallowing connectivity errors.
// A nil *Client is valid and behaves as an always-empty cache.
type Client struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a new Redis client whose entries expire after ttl.
func New(addr, password string, db int, ttl time.Duration) *Client {
	opts := &redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}
	return &Client{client: redis.NewClient(opts), ttl: ttl}
}

// Ping checks connectivity. Callers may log the error and keep going.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

// Close releases the underlying connections.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Get returns value or nil if missing or redis unavailable.
func (c *Client) Get(ctx context.Context, key string) []byte {
	if c == nil || c.client == nil {
		return nil
	}
	res, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		// redis.Nil and connectivity errors both read as a miss
		return nil
	}
	return res
}

// Set stores value with the client's TTL, ignoring redis errors.
func (c *Client) Set(ctx context.Context, key string, value []byte) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Set(ctx, key, value, c.ttl).Err()
}

// Delete removes keys, ignoring redis errors.
func (c *Client) Delete(ctx context.Context, keys ...string) {
	if c == nil || c.client == nil || len(keys) == 0 {
		return
	}
	_ = c.client.Del(ctx, keys...).Err()
}

// GetJSON decodes the cached value at key into dst and reports whether it was a hit.
func (c *Client) GetJSON(ctx context.Context, key string, dst interface{}) bool {
	data := c.Get(ctx, key)
	if data == nil {
		return false
	}
	return json.Unmarshal(data, dst) == nil
}

// SetJSON encodes value and caches it under key.
func (c *Client) SetJSON(ctx context.Context, key string, value interface{}) {
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.Set(ctx, key, payload)
}
