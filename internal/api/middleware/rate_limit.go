package middleware

import (
	"container/list"
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/ericfisherdev/happyplace/internal/domain"
	"github.com/ericfisherdev/happyplace/internal/logger"
)

// RateLimiter is a token bucket refilled one token per refill interval.
type RateLimiter struct {
	lastRefill time.Time
	lastSeen   time.Time
	mu         sync.Mutex
	refill     time.Duration
	tokens     int
	capacity   int
}

// NewRateLimiter creates a full bucket.
func NewRateLimiter(capacity int, refillRate time.Duration) *RateLimiter {
	now := time.Now()
	return &RateLimiter{
		lastRefill: now,
		lastSeen:   now,
		refill:     refillRate,
		tokens:     capacity,
		capacity:   capacity,
	}
}

// Allow takes a token if one is available.
func (rl *RateLimiter) Allow() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	rl.lastSeen = now
	if elapsed := now.Sub(rl.lastRefill); elapsed >= rl.refill {
		added := int(elapsed / rl.refill)
		rl.tokens = min(rl.capacity, rl.tokens+added)
		rl.lastRefill = rl.lastRefill.Add(time.Duration(added) * rl.refill)
	}

	if rl.tokens > 0 {
		rl.tokens--
		return true
	}
	return false
}

func (rl *RateLimiter) idleSince() time.Time {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return rl.lastSeen
}

// LRUCache bounds the number of per-client limiters kept in memory.
type LRUCache struct {
	items    map[string]*list.Element
	list     *list.List
	mu       sync.Mutex
	capacity int
}

type lruItem struct {
	limiter *RateLimiter
	key     string
}

// NewLRUCache creates a new LRU cache with the specified capacity.
func NewLRUCache(capacity int) *LRUCache {
	return &LRUCache{
		capacity: capacity,
		items:    make(map[string]*list.Element),
		list:     list.New(),
	}
}

// Get returns the limiter for key, creating it with factory on first use.
func (c *LRUCache) Get(key string, factory func() *RateLimiter) *RateLimiter {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.list.MoveToFront(elem)
		return elem.Value.(*lruItem).limiter
	}

	limiter := factory()
	c.items[key] = c.list.PushFront(&lruItem{key: key, limiter: limiter})
	if c.list.Len() > c.capacity {
		c.removeElement(c.list.Back())
	}
	return limiter
}

func (c *LRUCache) removeElement(elem *list.Element) {
	if elem == nil {
		return
	}
	c.list.Remove(elem)
	delete(c.items, elem.Value.(*lruItem).key)
}

// evictIdle drops limiters unused since before cutoff, oldest first.
func (c *LRUCache) evictIdle(cutoff time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for elem := c.list.Back(); elem != nil; {
		prev := elem.Prev()
		if !elem.Value.(*lruItem).limiter.idleSince().Before(cutoff) {
			break
		}
		c.removeElement(elem)
		removed++
		elem = prev
	}
	return removed
}

// Len returns the current number of items in the cache.
func (c *LRUCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.list.Len()
}

// RedisRateLimiter is a sliding one-minute window shared by every server
// instance.
type RedisRateLimiter struct {
	client            redis.UniversalClient
	keyPrefix         string
	requestsPerMinute int
	windowSize        time.Duration
}

// NewRedisRateLimiter creates a new Redis-based rate limiter.
func NewRedisRateLimiter(client redis.UniversalClient, keyPrefix string, requestsPerMinute int) *RedisRateLimiter {
	return &RedisRateLimiter{
		client:            client,
		keyPrefix:         keyPrefix,
		requestsPerMinute: requestsPerMinute,
		windowSize:        time.Minute,
	}
}

// Allow records the request and reports whether the window still had room.
func (rl *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := rl.keyPrefix + ":" + key
	now := time.Now()
	windowStart := now.Add(-rl.windowSize)

	pipe := rl.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", strconv.FormatInt(windowStart.UnixNano(), 10))
	count := pipe.ZCard(ctx, redisKey)
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(now.UnixNano()), Member: now.UnixNano()})
	pipe.Expire(ctx, redisKey, rl.windowSize+time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return count.Val() < int64(rl.requestsPerMinute), nil
}

// RateLimitConfig holds configuration for rate limiting.
type RateLimitConfig struct {
	// Name separates limiters sharing one Redis, e.g. "global" and "inquiries".
	Name string
	// KeyGenerator picks the client key; defaults to the client IP.
	KeyGenerator func(c *gin.Context) string
	// Redis enables the distributed limiter when non-nil.
	Redis             redis.UniversalClient
	Logger            *logger.Logger
	CleanupInterval   time.Duration
	MaxAge            time.Duration
	RequestsPerMinute int
	CacheCapacity     int
}

// RateLimitManager owns the limiters and the idle-eviction goroutine.
type RateLimitManager struct {
	cache       *LRUCache
	redis       *RedisRateLimiter
	config      RateLimitConfig
	cancel      context.CancelFunc
	cleanupDone chan struct{}
	shutdown    sync.Once
}

// NewRateLimitManager creates a manager. Call Shutdown to stop its
// goroutine.
func NewRateLimitManager(ctx context.Context, config RateLimitConfig) *RateLimitManager {
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = 5 * time.Minute
	}
	if config.MaxAge <= 0 {
		config.MaxAge = 10 * time.Minute
	}
	if config.CacheCapacity <= 0 {
		config.CacheCapacity = 10000
	}
	if config.RequestsPerMinute <= 0 {
		config.RequestsPerMinute = 60
	}
	if config.Name == "" {
		config.Name = "global"
	}
	if config.KeyGenerator == nil {
		config.KeyGenerator = func(c *gin.Context) string { return c.ClientIP() }
	}

	managerCtx, cancel := context.WithCancel(ctx)
	m := &RateLimitManager{
		cache:       NewLRUCache(config.CacheCapacity),
		config:      config,
		cancel:      cancel,
		cleanupDone: make(chan struct{}),
	}
	if config.Redis != nil {
		m.redis = NewRedisRateLimiter(config.Redis, "rate_limit:"+config.Name, config.RequestsPerMinute)
	}
	go m.cleanup(managerCtx)
	return m
}

// Allow checks the key against Redis when configured, else in memory.
func (m *RateLimitManager) Allow(ctx context.Context, key string) (bool, error) {
	if m.redis != nil {
		return m.redis.Allow(ctx, key)
	}
	return m.GetLimiter(key).Allow(), nil
}

// GetLimiter gets or creates the in-memory limiter for key.
func (m *RateLimitManager) GetLimiter(key string) *RateLimiter {
	return m.cache.Get(key, func() *RateLimiter {
		return NewRateLimiter(m.config.RequestsPerMinute, time.Minute/time.Duration(m.config.RequestsPerMinute))
	})
}

func (m *RateLimitManager) cleanup(ctx context.Context) {
	defer close(m.cleanupDone)

	ticker := time.NewTicker(m.config.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.cache.evictIdle(time.Now().Add(-m.config.MaxAge))
		}
	}
}

// Shutdown stops the cleanup goroutine and waits for it. Safe to call twice.
func (m *RateLimitManager) Shutdown() {
	if m == nil {
		return
	}
	m.shutdown.Do(m.cancel)
	<-m.cleanupDone
}

// RateLimitStats holds statistics about rate limiting.
type RateLimitStats struct {
	Name          string  `json:"name"`
	Distributed   bool    `json:"distributed"`
	CacheSize     int     `json:"cache_size"`
	CacheCapacity int     `json:"cache_capacity"`
	CacheUsage    float64 `json:"cache_usage"`
}

// Stats reports the in-memory limiter population.
func (m *RateLimitManager) Stats() RateLimitStats {
	size := m.cache.Len()
	return RateLimitStats{
		Name:          m.config.Name,
		Distributed:   m.redis != nil,
		CacheSize:     size,
		CacheCapacity: m.config.CacheCapacity,
		CacheUsage:    float64(size) / float64(m.config.CacheCapacity),
	}
}

// RateLimitMiddleware rejects clients over budget with a rate limit error.
// A Redis failure lets the request through.
func RateLimitMiddleware(ctx context.Context, config RateLimitConfig) (gin.HandlerFunc, *RateLimitManager) {
	m := NewRateLimitManager(ctx, config)
	retryAfter := strconv.Itoa(max(1, 60/m.config.RequestsPerMinute))

	handler := func(c *gin.Context) {
		key := m.config.KeyGenerator(c)
		allowed, err := m.Allow(c.Request.Context(), key)
		if err != nil && !errors.Is(err, context.Canceled) {
			m.config.Logger.WithFields(map[string]any{"limiter": m.config.Name, "error": err.Error()}).Warn("rate limiter unavailable")
		}
		if err != nil || allowed {
			c.Next()
			return
		}
		c.Header("Retry-After", retryAfter)
		Abort(c, domain.NewRateLimitError("TOO_MANY_REQUESTS", "Rate limit exceeded. Please try again later."))
	}
	return handler, m
}
