// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
)

const (
	// defaultMaxAttempts is the default number of allowed requests per window.
	defaultMaxAttempts = 120
	// defaultWindowDuration is the default time window for rate limiting.
	defaultWindowDuration = 1 * time.Minute
	// redisKeyPrefix namespaces limiter counters in Redis.
	redisKeyPrefix = "ledger:ratelimit:"
)

// limiterStore counts requests per key inside a fixed window.
type limiterStore interface {
	allow(ctx context.Context, key string, max int, window time.Duration) (bool, error)
}

// RateLimiter limits requests per user, or per client IP before authentication.
// Counters live in Redis when configured so every API process shares them.
type RateLimiter struct {
	store          limiterStore
	maxAttempts    int
	windowDuration time.Duration
}

// NewRateLimiter creates an in-process rate limiter with default settings.
func NewRateLimiter() *RateLimiter {
	return NewRateLimiterWithConfig(defaultMaxAttempts, defaultWindowDuration)
}

// NewRateLimiterWithConfig creates an in-process rate limiter with custom settings.
func NewRateLimiterWithConfig(maxAttempts int, windowDuration time.Duration) *RateLimiter {
	return &RateLimiter{
		store:          newMemoryStore(),
		maxAttempts:    maxAttempts,
		windowDuration: windowDuration,
	}
}

// NewRedisRateLimiter creates a rate limiter whose counters live in Redis.
func NewRedisRateLimiter(client *redis.Client, maxAttempts int, windowDuration time.Duration) *RateLimiter {
	return &RateLimiter{
		store:          &redisStore{client: client},
		maxAttempts:    maxAttempts,
		windowDuration: windowDuration,
	}
}

// Middleware returns a Gin middleware handler that enforces rate limiting.
// Store failures let the request through.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if userID, ok := GetUserIDFromContext(c); ok {
			key = "user:" + userID.String()
		}

		allowed, err := rl.store.allow(c.Request.Context(), key, rl.maxAttempts, rl.windowDuration)
		if err != nil {
			slog.WarnContext(c.Request.Context(), "Rate limiter unavailable, allowing request", "error", err)
			c.Next()
			return
		}

		if !allowed {
			c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// rateLimitEntry tracks rate limit data for a single key.
type rateLimitEntry struct {
	attempts  int
	resetTime time.Time
}

// memoryStore keeps counters in process memory.
type memoryStore struct {
	mu      sync.Mutex
	entries map[string]*rateLimitEntry
	now     func() time.Time
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		entries: make(map[string]*rateLimitEntry),
		now:     time.Now,
	}
}

func (s *memoryStore) allow(_ context.Context, key string, max int, window time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	entry, exists := s.entries[key]
	if !exists || now.After(entry.resetTime) {
		s.entries[key] = &rateLimitEntry{
			attempts:  1,
			resetTime: now.Add(window),
		}
		s.cleanup(now)
		return true, nil
	}

	if entry.attempts < max {
		entry.attempts++
		return true, nil
	}
	return false, nil
}

// cleanup removes expired entries. Called with mu held.
func (s *memoryStore) cleanup(now time.Time) {
	for key, entry := range s.entries {
		if now.After(entry.resetTime) {
			delete(s.entries, key)
		}
	}
}

// redisStore counts with INCR and starts the window expiry on first use.
type redisStore struct {
	client *redis.Client
}

func (s *redisStore) allow(ctx context.Context, key string, max int, window time.Duration) (bool, error) {
	redisKey := redisKeyPrefix + key

	var (
		incr *redis.IntCmd
		ttl  *redis.DurationCmd
	)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		ttl = pipe.PTTL(ctx, redisKey)
		return nil
	})
	if err != nil {
		return false, err
	}

	// A key without expiry is either new or lost its PEXPIRE; start the window.
	if ttl.Val() < 0 {
		if err := s.client.PExpire(ctx, redisKey, window).Err(); err != nil {
			return false, err
		}
	}

	return incr.Val() <= int64(max), nil
}
