package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/rueidis"
	"github.com/sirupsen/logrus"
)

const rateLimitKeyPrefix = "kanban:ratelimit:"

// RateLimitStore counts hits per key in fixed windows.
type RateLimitStore interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type MemoryRateLimitStore struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

type bucket struct {
	count int
	start time.Time
}

func NewMemoryRateLimitStore(limit int, window time.Duration) *MemoryRateLimitStore {
	return &MemoryRateLimitStore{
		limit:   limit,
		window:  window,
		now:     time.Now,
		buckets: make(map[string]*bucket),
	}
}

func (s *MemoryRateLimitStore) Allow(_ context.Context, key string) (bool, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweep(now)

	b, ok := s.buckets[key]
	if !ok || now.Sub(b.start) >= s.window {
		b = &bucket{start: now}
		s.buckets[key] = b
	}

	if b.count >= s.limit {
		return false, nil
	}
	b.count++
	return true, nil
}

// sweep drops buckets whose window has closed, at most once per window.
func (s *MemoryRateLimitStore) sweep(now time.Time) {
	if now.Sub(s.lastSweep) < s.window {
		return
	}
	for key, b := range s.buckets {
		if now.Sub(b.start) >= s.window {
			delete(s.buckets, key)
		}
	}
	s.lastSweep = now
}

// RedisRateLimitStore shares the counters between instances. The window
// starts at the first hit of a key and expires with it.
type RedisRateLimitStore struct {
	client rueidis.Client
	limit  int
	window time.Duration
}

func NewRedisRateLimitStore(client rueidis.Client, limit int, window time.Duration) *RedisRateLimitStore {
	return &RedisRateLimitStore{
		client: client,
		limit:  limit,
		window: window,
	}
}

func (s *RedisRateLimitStore) Allow(ctx context.Context, key string) (bool, error) {
	k := rateLimitKeyPrefix + key

	count, err := s.client.Do(ctx, s.client.B().Incr().Key(k).Build()).AsInt64()
	if err != nil {
		return false, err
	}
	if count == 1 {
		cmd := s.client.B().Pexpire().Key(k).Milliseconds(s.window.Milliseconds()).Build()
		if err := s.client.Do(ctx, cmd).Error(); err != nil {
			return false, err
		}
	}
	return count <= int64(s.limit), nil
}

// RateLimiter rejects clients over the store's limit with 429. Store
// failures let the request through.
func RateLimiter(store RateLimitStore, logger logrus.FieldLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.RealIP()

			allowed, err := store.Allow(c.Request().Context(), key)
			if err != nil {
				logger.WithError(err).WithField("client", key).Warn("rate limiter unavailable")
				return next(c)
			}
			if !allowed {
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}

			return next(c)
		}
	}
}
