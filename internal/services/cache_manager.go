package services

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/ericfisherdev/happyplace/internal/logger"
)

// Cache key prefixes and the patterns used to invalidate them.
const (
	ListingCachePrefix  = "listing:"
	AgentCachePrefix    = "agent:"
	QueryCachePrefix    = "query:"
	FragmentCachePrefix = "fragment:"

	ListingPattern  = "listing:*"
	AgentPattern    = "agent:*"
	QueryPattern    = "query:*"
	FragmentPattern = "fragment:*"
)

// CacheStats provides cache performance metrics
type CacheStats struct {
	Hits     int64         `json:"hits"`
	Misses   int64         `json:"misses"`
	HitRatio float64       `json:"hit_ratio"`
	TTL      time.Duration `json:"ttl"`
	Backend  *BackendStats `json:"backend,omitempty"`
}

// Cache stores JSON values in a backend with one TTL. Backend failures are
// logged and treated as misses; they never fail the caller.
type Cache struct {
	backend CacheBackend
	ttl     time.Duration
	log     *logger.Logger
	hits    atomic.Int64
	misses  atomic.Int64
}

// NewCache wraps backend. A nil backend disables caching.
func NewCache(backend CacheBackend, ttl time.Duration, log *logger.Logger) *Cache {
	if log == nil {
		log = logger.Nop()
	}
	return &Cache{backend: backend, ttl: ttl, log: log}
}

// Enabled reports whether values are stored at all.
func (c *Cache) Enabled() bool {
	return c != nil && c.backend != nil && c.ttl > 0
}

// GetJSON decodes the value at key into dest and reports a hit.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) bool {
	if !c.Enabled() {
		return false
	}
	data, err := c.backend.Get(ctx, key)
	if err != nil {
		c.misses.Add(1)
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		// stale shape from an older build
		_ = c.backend.Delete(ctx, key)
		c.misses.Add(1)
		return false
	}
	c.hits.Add(1)
	return true
}

// SetJSON stores v at key.
func (c *Cache) SetJSON(ctx context.Context, key string, v any) {
	if !c.Enabled() {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		c.log.With("key", key).Error(err, "failed to encode cache value")
		return
	}
	if err := c.backend.Set(ctx, key, data, c.ttl); err != nil {
		c.log.WithFields(map[string]any{"key": key, "error": err.Error()}).Warn("failed to write cache")
	}
}

// Invalidate removes every key matching the patterns.
func (c *Cache) Invalidate(ctx context.Context, patterns ...string) {
	if c == nil || c.backend == nil {
		return
	}
	for _, p := range patterns {
		if err := c.backend.DeletePattern(ctx, p); err != nil {
			c.log.WithFields(map[string]any{"pattern": p, "error": err.Error()}).Warn("failed to invalidate cache")
		}
	}
}

// Flush empties the cache and resets the counters.
func (c *Cache) Flush(ctx context.Context) error {
	if c == nil || c.backend == nil {
		return nil
	}
	c.hits.Store(0)
	c.misses.Store(0)
	return c.backend.Flush(ctx)
}

// Stats reports hit rates and backend statistics.
func (c *Cache) Stats(ctx context.Context) (*CacheStats, error) {
	stats := &CacheStats{}
	if c == nil {
		return stats, nil
	}
	stats.Hits = c.hits.Load()
	stats.Misses = c.misses.Load()
	stats.TTL = c.ttl
	if total := stats.Hits + stats.Misses; total > 0 {
		stats.HitRatio = float64(stats.Hits) / float64(total)
	}
	if c.backend == nil {
		return stats, nil
	}
	backend, err := c.backend.Stats(ctx)
	stats.Backend = backend
	return stats, err
}

// hashParams returns a stable key for a flat parameter map.
func hashParams(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	d := xxhash.New()
	for _, k := range keys {
		_, _ = d.WriteString(k)
		_, _ = d.WriteString("=")
		_, _ = d.WriteString(params[k])
		_, _ = d.WriteString("&")
	}
	return strconv.FormatUint(d.Sum64(), 16)
}
