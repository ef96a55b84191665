package middleware

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"usersvc/internal/cache"
	"usersvc/internal/errors"
)

const (
	visitorTTL    = 10 * time.Minute
	sweepInterval = 5 * time.Minute
)

// Limiter decides whether a request identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// MemoryLimiter keeps one token bucket per client inside the process.
type MemoryLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	rate      rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewMemoryLimiter creates a limiter allowing rps requests per second with the given burst.
func NewMemoryLimiter(rps rate.Limit, burst int) *MemoryLimiter {
	return &MemoryLimiter{
		visitors:  make(map[string]*visitor),
		rate:      rps,
		burst:     burst,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

// Allow reports whether key still has a token.
func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > sweepInterval {
		for k, v := range l.visitors {
			if now.Sub(v.lastSeen) > visitorTTL {
				delete(l.visitors, k)
			}
		}
		l.lastSweep = now
	}

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1), nil
}

// RedisLimiter counts requests per client in fixed windows shared by every instance.
type RedisLimiter struct {
	client *cache.Client
	limit  int64
	window time.Duration
	now    func() time.Time
}

// NewRedisLimiter allows limit requests per client in each window.
func NewRedisLimiter(client *cache.Client, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, limit: int64(limit), window: window, now: time.Now}
}

// Allow reports whether key is still under its quota for the current window.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	slot := l.now().UnixNano() / int64(l.window)
	count, err := l.client.IncrWindow(ctx, fmt.Sprintf("ratelimit:%s:%d", key, slot), l.window)
	if err != nil {
		return false, err
	}
	return count <= l.limit, nil
}

// RateLimit rejects clients over their quota with 429.
// Limiter failures let the request through.
func RateLimit(limiter Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			allowed, err := limiter.Allow(c.Request().Context(), c.RealIP())
			if err != nil {
				c.Logger().Warnf("rate limiter unavailable: %v", err)
				return next(c)
			}
			if !allowed {
				return echo.NewHTTPError(http.StatusTooManyRequests, errors.ErrorResponse{
					Error: "rate limit exceeded, try again later",
					Code:  "RATE_LIMITED",
				})
			}
			return next(c)
		}
	}
}
