package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"planera/pkg/logger"
)

// Cache wraps Redis for two jobs: caching rendered week payloads per user and
// start date, and remembering revoked session ids until they expire. Every
// method degrades to a no-op (or a miss) when Redis is unavailable, so the
// application runs fine without it.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis. A connection failure is logged, not fatal.
func New(ctx context.Context, redisURL string, poolSize, ttlSeconds int) *Cache {
	c := &Cache{ttl: time.Duration(ttlSeconds) * time.Second}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		logger.Error(ctx, "Invalid REDIS_URL", "error", err, "url", redisURL)
		return c
	}
	opts.PoolSize = poolSize
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn(ctx, "Redis unavailable, caching disabled", "error", err)
		return c
	}
	c.client = client
	logger.Info(ctx, "Redis client initialized", "pool_size", poolSize)
	return c
}

// Ready reports whether Redis is connected (readiness probe).
func (c *Cache) Ready(ctx context.Context) bool {
	return c != nil && c.client != nil && c.client.Ping(ctx).Err() == nil
}

func weekKey(userID int64, start string) string {
	return fmt.Sprintf("week:%d:%s", userID, start)
}

// Week reads a cached week payload. Returns (nil, false) on miss or error.
func (c *Cache) Week(ctx context.Context, userID int64, start string) ([]byte, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	b, err := c.client.Get(ctx, weekKey(userID, start)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		logger.Debug(ctx, "Redis get week failed", "error", err)
		return nil, false
	}
	return b, true
}

// SetWeekAsync writes a week payload in the background so the response is not
// delayed by the cache.
func (c *Cache) SetWeekAsync(userID int64, start string, payload []byte) {
	if c == nil || c.client == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := c.client.Set(ctx, weekKey(userID, start), payload, c.ttl).Err(); err != nil {
			logger.Debug(ctx, "Redis set week failed", "error", err)
		}
	}()
}

// InvalidateWeeks drops every cached week for the user; called after any
// schedule mutation.
func (c *Cache) InvalidateWeeks(ctx context.Context, userID int64) {
	if c == nil || c.client == nil {
		return
	}
	pattern := fmt.Sprintf("week:%d:*", userID)
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		logger.Debug(ctx, "Redis scan weeks failed", "error", err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		logger.Debug(ctx, "Redis invalidate weeks failed", "error", err)
	}
}

func revokedKey(jti string) string {
	return "session:revoked:" + jti
}

// RevokeSession marks a session id revoked until its natural expiry.
func (c *Cache) RevokeSession(ctx context.Context, jti string, ttl time.Duration) {
	if c == nil || c.client == nil || ttl <= 0 {
		return
	}
	if err := c.client.Set(ctx, revokedKey(jti), "1", ttl).Err(); err != nil {
		logger.Debug(ctx, "Redis revoke session failed", "error", err)
	}
}

// SessionRevoked reports whether the session id was revoked. Redis being down
// means "not revoked": tokens still expire on their own.
func (c *Cache) SessionRevoked(ctx context.Context, jti string) bool {
	if c == nil || c.client == nil {
		return false
	}
	n, err := c.client.Exists(ctx, revokedKey(jti)).Result()
	if err != nil {
		logger.Debug(ctx, "Redis session check failed", "error", err)
		return false
	}
	return n > 0
}
