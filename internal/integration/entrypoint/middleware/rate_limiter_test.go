package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(engine *gin.Engine, remoteAddr string) int {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec.Code
}

func newLimitedEngine(rl *RateLimiter) *gin.Engine {
	engine := gin.New()
	engine.GET("/ping", rl.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return engine
}

func TestMemoryStoreWindow(t *testing.T) {
	store := newMemoryStore()
	now := time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := store.allow(ctx, "ip:1", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed, "attempt %d", i+1)
	}
	allowed, _ := store.allow(ctx, "ip:1", 3, time.Minute)
	assert.False(t, allowed)

	other, _ := store.allow(ctx, "ip:2", 3, time.Minute)
	assert.True(t, other)

	now = now.Add(time.Minute + time.Second)
	allowed, _ = store.allow(ctx, "ip:1", 3, time.Minute)
	assert.True(t, allowed)
	assert.NotContains(t, store.entries, "ip:2")
}

func TestRateLimiterMiddleware_Memory(t *testing.T) {
	engine := newLimitedEngine(NewRateLimiterWithConfig(2, time.Minute))

	assert.Equal(t, http.StatusNoContent, serve(engine, "10.0.0.1:1234"))
	assert.Equal(t, http.StatusNoContent, serve(engine, "10.0.0.1:1234"))
	assert.Equal(t, http.StatusTooManyRequests, serve(engine, "10.0.0.1:1234"))
	assert.Equal(t, http.StatusNoContent, serve(engine, "10.0.0.2:1234"))
}

func TestRateLimiterMiddleware_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	engine := newLimitedEngine(NewRedisRateLimiter(client, 2, time.Minute))

	assert.Equal(t, http.StatusNoContent, serve(engine, "10.0.0.1:1234"))
	assert.Equal(t, http.StatusNoContent, serve(engine, "10.0.0.1:1234"))
	assert.Equal(t, http.StatusTooManyRequests, serve(engine, "10.0.0.1:1234"))

	key := redisKeyPrefix + "ip:10.0.0.1"
	assert.True(t, mr.Exists(key))
	assert.Greater(t, mr.TTL(key), time.Duration(0))

	mr.FastForward(time.Minute + time.Second)
	assert.Equal(t, http.StatusNoContent, serve(engine, "10.0.0.1:1234"))
}

func TestRateLimiterMiddleware_RedisDownFailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	engine := newLimitedEngine(NewRedisRateLimiter(client, 1, time.Minute))
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusNoContent, serve(engine, "10.0.0.1:1234"))
	}
}
