// Package services holds the application logic between the HTTP and CLI
// surfaces and the listing store: cached listing reads, fragment rendering
// and inquiry intake.
package services

import (
	"context"
	"path"
	"sync"
	"time"

	"github.com/ericfisherdev/happyplace/internal/domain"
)

// CacheBackend defines the interface for cache storage backends
type CacheBackend interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	// DeletePattern removes keys matching a glob such as "query:*".
	DeletePattern(ctx context.Context, pattern string) error
	Exists(ctx context.Context, key string) bool
	Flush(ctx context.Context) error
	Stats(ctx context.Context) (*BackendStats, error)
}

// BackendStats provides backend-specific statistics
type BackendStats struct {
	Connected bool                   `json:"connected"`
	Keys      int64                  `json:"keys"`
	Memory    int64                  `json:"memory_bytes"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

func cacheMiss() error {
	return domain.NewNotFoundError("CACHE_MISS", "Cache miss")
}

// MemoryCacheBackend implements CacheBackend using in-memory storage.
type MemoryCacheBackend struct {
	mu         sync.Mutex
	data       map[string]*cacheItem
	prefix     string
	now        func() time.Time
	maxEntries int
	writes     int
}

// DefaultMemoryCacheEntries bounds a memory backend unless WithMaxEntries
// says otherwise.
const DefaultMemoryCacheEntries = 5000

// sweepEvery is how many writes pass between sweeps of expired entries.
const sweepEvery = 256

type cacheItem struct {
	value     []byte
	expiresAt time.Time
}

func (i *cacheItem) expired(now time.Time) bool {
	return !i.expiresAt.IsZero() && now.After(i.expiresAt)
}

// NewMemoryCacheBackend creates a new in-memory cache backend
func NewMemoryCacheBackend(prefix string) *MemoryCacheBackend {
	return &MemoryCacheBackend{
		data:       make(map[string]*cacheItem),
		prefix:     prefix,
		now:        time.Now,
		maxEntries: DefaultMemoryCacheEntries,
	}
}

// WithMaxEntries sets the entry bound; n <= 0 leaves it unbounded.
func (m *MemoryCacheBackend) WithMaxEntries(n int) *MemoryCacheBackend {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.maxEntries = n
	return m
}

// Set stores a value with TTL. A zero TTL never expires.
func (m *MemoryCacheBackend) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	item := &cacheItem{value: append([]byte(nil), value...)}
	if ttl > 0 {
		item.expiresAt = m.now().Add(ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	fullKey := m.prefix + key
	m.writes++
	_, replacing := m.data[fullKey]
	full := !replacing && m.maxEntries > 0 && len(m.data) >= m.maxEntries
	if full || m.writes%sweepEvery == 0 {
		m.sweep()
	}
	if !replacing && m.maxEntries > 0 && len(m.data) >= m.maxEntries {
		m.evictSoonest()
	}
	m.data[fullKey] = item
	return nil
}

// sweep drops expired entries. Callers hold mu.
func (m *MemoryCacheBackend) sweep() {
	now := m.now()
	for key, item := range m.data {
		if item.expired(now) {
			delete(m.data, key)
		}
	}
}

// evictSoonest drops the entry closest to expiry, preferring entries that
// expire over ones that never do. Callers hold mu.
func (m *MemoryCacheBackend) evictSoonest() {
	var victim string
	var victimItem *cacheItem
	for key, item := range m.data {
		switch {
		case victimItem == nil:
		case victimItem.expiresAt.IsZero() && !item.expiresAt.IsZero():
		case !item.expiresAt.IsZero() && item.expiresAt.Before(victimItem.expiresAt):
		default:
			continue
		}
		victim, victimItem = key, item
	}
	if victimItem != nil {
		delete(m.data, victim)
	}
}

// Len returns the number of stored entries, expired ones included until
// the next sweep.
func (m *MemoryCacheBackend) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}

func (m *MemoryCacheBackend) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	fullKey := m.prefix + key
	item, exists := m.data[fullKey]
	if !exists {
		return nil, cacheMiss()
	}
	if item.expired(m.now()) {
		delete(m.data, fullKey)
		return nil, domain.NewNotFoundError("CACHE_EXPIRED", "Cache entry expired")
	}
	return append([]byte(nil), item.value...), nil
}

func (m *MemoryCacheBackend) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, m.prefix+key)
	return nil
}

func (m *MemoryCacheBackend) DeletePattern(_ context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	fullPattern := m.prefix + pattern
	for key := range m.data {
		if ok, _ := path.Match(fullPattern, key); ok {
			delete(m.data, key)
		}
	}
	return nil
}

func (m *MemoryCacheBackend) Exists(_ context.Context, key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, exists := m.data[m.prefix+key]
	return exists && !item.expired(m.now())
}

// Flush clears all keys with the prefix
func (m *MemoryCacheBackend) Flush(ctx context.Context) error {
	return m.DeletePattern(ctx, "*")
}

func (m *MemoryCacheBackend) Stats(_ context.Context) (*BackendStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	var keys, memory int64
	for key, item := range m.data {
		if item.expired(now) {
			delete(m.data, key)
			continue
		}
		keys++
		memory += int64(len(key) + len(item.value) + 24) // rough estimate
	}

	return &BackendStats{
		Connected: true,
		Keys:      keys,
		Memory:    memory,
		Metadata: map[string]interface{}{
			"backend": "memory",
			"prefix":  m.prefix,
		},
	}, nil
}
