package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client wraps redis.Client for short-lived counters shared between instances.
type Client struct {
	client *redis.Client
}

// New creates a new Redis client.
func New(addr, password string, db int) *Client {
	opts := &redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}
	return &Client{client: redis.NewClient(opts)}
}

// Ping checks connectivity.
func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the underlying connections.
func (c *Client) Close() error {
	return c.client.Close()
}

// incrWindowScript increments KEYS[1] and gives it a TTL of ARGV[1] ms when it
// has none, so a counter never outlives its window.
var incrWindowScript = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if redis.call("PTTL", KEYS[1]) < 0 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return n
`)

// IncrWindow increments the counter stored at key and returns its new value.
// The key expires after ttl, counted from its first increment.
func (c *Client) IncrWindow(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	return incrWindowScript.Run(ctx, c.client, []string{key}, ttl.Milliseconds()).Int64()
}
