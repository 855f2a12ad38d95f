package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestRateLimiter_TokenBucket(t *testing.T) {
	rl := NewRateLimiter(2, time.Hour)
	assert.True(t, rl.Allow())
	assert.True(t, rl.Allow())
	assert.False(t, rl.Allow(), "bucket is empty until the next refill")

	rl.mu.Lock()
	rl.lastRefill = rl.lastRefill.Add(-2 * time.Hour)
	rl.mu.Unlock()
	assert.True(t, rl.Allow())
}

func TestLRUCache_BoundsAndReuse(t *testing.T) {
	c := NewLRUCache(2)
	created := 0
	factory := func() *RateLimiter {
		created++
		return NewRateLimiter(1, time.Minute)
	}

	a := c.Get("a", factory)
	c.Get("b", factory)
	assert.Same(t, a, c.Get("a", factory))
	c.Get("c", factory)

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 3, created)
	_, hasB := c.items["b"]
	assert.False(t, hasB, "least recently used entry is evicted")
}

func TestLRUCache_EvictIdle(t *testing.T) {
	c := NewLRUCache(10)
	old := c.Get("old", func() *RateLimiter { return NewRateLimiter(1, time.Minute) })
	old.lastSeen = time.Now().Add(-time.Hour)
	c.Get("fresh", func() *RateLimiter { return NewRateLimiter(1, time.Minute) })

	removed := c.evictIdle(time.Now().Add(-time.Minute))
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, c.Len())
}

func TestRateLimitManager_ShutdownStopsCleanup(t *testing.T) {
	defer goleak.VerifyNone(t)

	m := NewRateLimitManager(context.Background(), RateLimitConfig{
		RequestsPerMinute: 10,
		CleanupInterval:   10 * time.Millisecond,
	})
	m.GetLimiter("k")
	m.Shutdown()
	m.Shutdown()

	stats := m.Stats()
	assert.Equal(t, "global", stats.Name)
	assert.False(t, stats.Distributed)
	assert.Equal(t, 1, stats.CacheSize)
}

func TestRateLimitMiddleware_RejectsOverBudget(t *testing.T) {
	gin.SetMode(gin.TestMode)

	limit, manager := RateLimitMiddleware(context.Background(), RateLimitConfig{
		Name:              "inquiries",
		RequestsPerMinute: 2,
		KeyGenerator:      func(c *gin.Context) string { return c.GetHeader("X-Client") },
	})
	defer manager.Shutdown()

	router := gin.New()
	router.Use(ErrorHandlerMiddleware(ErrorHandlerConfig{}))
	router.POST("/submit", limit, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	send := func(client string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/submit", nil)
		req.Header.Set("X-Client", client)
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, send("a").Code)
	assert.Equal(t, http.StatusOK, send("a").Code)

	w := send("a")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "30", w.Header().Get("Retry-After"))

	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Type string `json:"type"`
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "RATE_LIMIT_ERROR", body.Error.Type)
	assert.Equal(t, "TOO_MANY_REQUESTS", body.Error.Code)

	assert.Equal(t, http.StatusOK, send("b").Code, "other clients keep their own budget")
}
