package httpmiddleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimiter enforces per-IP request limits using a fixed window in Redis.
// When Redis is unreachable it falls back to an in-memory token bucket so a
// cache outage never takes the API down with it.
type RateLimiter struct {
	client *redis.Client
	prefix string
	limit  int
	window time.Duration

	mu    sync.Mutex
	state map[string]*bucket
}

type bucket struct {
	tokens int
	last   time.Time
}

// NewRateLimiter creates a limiter allowing perWindow requests per window.
// client may be nil, in which case only the in-memory path is used.
func NewRateLimiter(client *redis.Client, prefix string, perWindow int, window time.Duration) *RateLimiter {
	if prefix == "" {
		prefix = "ratelimit"
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{
		client: client,
		prefix: prefix,
		limit:  perWindow,
		window: window,
		state:  make(map[string]*bucket),
	}
}

// GinMiddleware returns a gin handler enforcing per-IP limits.
func (l *RateLimiter) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if ip == "" {
			ip = "unknown"
		}
		if !l.allow(c.Request.Context(), ip) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"msg": "rate limit"})
			return
		}
		c.Next()
	}
}

func (l *RateLimiter) allow(ctx context.Context, key string) bool {
	if l.client != nil {
		if ok, err := l.allowRedis(ctx, key); err == nil {
			return ok
		}
	}
	return l.allowMemory(key)
}

// allowRedis counts requests in a fixed window keyed by client IP.
func (l *RateLimiter) allowRedis(ctx context.Context, key string) (bool, error) {
	redisKey := l.prefix + ":" + key
	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(l.limit), nil
}

func (l *RateLimiter) allowMemory(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.state[key]
	now := time.Now()
	if !ok {
		b = &bucket{tokens: l.limit - 1, last: now}
		l.state[key] = b
		return true
	}
	elapsed := now.Sub(b.last).Minutes()
	refill := int(elapsed * float64(l.limit))
	if refill > 0 {
		b.tokens += refill
		if b.tokens > l.limit {
			b.tokens = l.limit
		}
		b.last = now
	}
	if b.tokens <= 0 {
		return false
	}
	b.tokens--
	return true
}
