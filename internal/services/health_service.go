package services

import (
	"context"
	"runtime"
	"time"

	"github.com/ericfisherdev/happyplace/internal/repository"
)

// HealthStatus represents the health status of a component.
type HealthStatus string

const (
	// HealthStatusHealthy indicates the component is fully operational.
	HealthStatusHealthy HealthStatus = "healthy"
	// HealthStatusUnhealthy indicates the component is not operational.
	HealthStatusUnhealthy HealthStatus = "unhealthy"
	// HealthStatusDegraded indicates the component has issues but pages still render.
	HealthStatusDegraded HealthStatus = "degraded"
)

// HealthCheck represents a single health check.
type HealthCheck struct {
	LastChecked time.Time      `json:"last_checked"`
	Details     map[string]any `json:"details,omitempty"`
	Name        string         `json:"name"`
	Error       string         `json:"error,omitempty"`
	Status      HealthStatus   `json:"status"`
	Duration    time.Duration  `json:"duration"`
	Critical    bool           `json:"-"`
}

// HealthResponse represents the overall health response.
type HealthResponse struct {
	Timestamp   time.Time      `json:"timestamp"`
	System      map[string]any `json:"system,omitempty"`
	Version     string         `json:"version"`
	Environment string         `json:"environment"`
	Status      HealthStatus   `json:"status"`
	Checks      []HealthCheck  `json:"checks"`
	Uptime      time.Duration  `json:"uptime"`
}

// HealthChecker defines the interface for health checkers.
type HealthChecker interface {
	Check(ctx context.Context) HealthCheck
	Name() string
	// Critical checkers gate readiness.
	Critical() bool
}

// HealthService manages health checks for the application.
type HealthService struct {
	startTime time.Time
	version   string
	env       string
	checkers  []HealthChecker
}

// NewHealthService creates a new health service.
func NewHealthService(version, env string) *HealthService {
	return &HealthService{startTime: time.Now(), version: version, env: env}
}

// RegisterChecker registers a health checker.
func (h *HealthService) RegisterChecker(checker HealthChecker) {
	h.checkers = append(h.checkers, checker)
}

func (h *HealthService) run(ctx context.Context, criticalOnly bool) HealthResponse {
	checks := make([]HealthCheck, 0, len(h.checkers))
	overall := HealthStatusHealthy

	for _, checker := range h.checkers {
		if criticalOnly && !checker.Critical() {
			continue
		}
		start := time.Now()
		check := checker.Check(ctx)
		check.Name = checker.Name()
		check.Duration = time.Since(start)
		check.LastChecked = time.Now()
		checks = append(checks, check)

		switch {
		case check.Status == HealthStatusUnhealthy && checker.Critical():
			overall = HealthStatusUnhealthy
		case check.Status != HealthStatusHealthy && overall == HealthStatusHealthy:
			overall = HealthStatusDegraded
		}
	}

	return HealthResponse{
		Status:      overall,
		Timestamp:   time.Now(),
		Version:     h.version,
		Uptime:      time.Since(h.startTime),
		Checks:      checks,
		Environment: h.env,
	}
}

// Check runs every checker. Only a failing critical checker makes the
// whole service unhealthy; other failures degrade it.
func (h *HealthService) Check(ctx context.Context) HealthResponse {
	resp := h.run(ctx, false)
	resp.System = systemInfo()
	return resp
}

// Readiness runs only the critical checkers.
func (h *HealthService) Readiness(ctx context.Context) HealthResponse {
	return h.run(ctx, true)
}

// Liveness returns a simple liveness probe (application is running).
func (h *HealthService) Liveness() HealthResponse {
	return HealthResponse{
		Status:      HealthStatusHealthy,
		Timestamp:   time.Now(),
		Version:     h.version,
		Uptime:      time.Since(h.startTime),
		Environment: h.env,
	}
}

func systemInfo() map[string]any {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	return map[string]any{
		"go_version": runtime.Version(),
		"goroutines": runtime.NumGoroutine(),
		"heap_alloc": mem.HeapAlloc,
		"gc_cycles":  mem.NumGC,
	}
}

type storeChecker struct {
	repo repository.ListingRepository
}

// NewStoreChecker reports the listing store healthy when it can count
// listings.
func NewStoreChecker(repo repository.ListingRepository) HealthChecker {
	return storeChecker{repo: repo}
}

func (storeChecker) Name() string   { return "store" }
func (storeChecker) Critical() bool { return true }

func (s storeChecker) Check(ctx context.Context) HealthCheck {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return HealthCheck{Status: HealthStatusUnhealthy, Error: err.Error()}
	}
	total := 0
	for _, n := range counts {
		total += n
	}
	return HealthCheck{Status: HealthStatusHealthy, Details: map[string]any{"listings": total}}
}

type cacheChecker struct {
	cache *Cache
}

// NewCacheChecker reports cache statistics. A broken cache degrades the
// service but never fails readiness.
func NewCacheChecker(cache *Cache) HealthChecker {
	return cacheChecker{cache: cache}
}

func (cacheChecker) Name() string   { return "cache" }
func (cacheChecker) Critical() bool { return false }

func (c cacheChecker) Check(ctx context.Context) HealthCheck {
	if !c.cache.Enabled() {
		return HealthCheck{Status: HealthStatusHealthy, Details: map[string]any{"enabled": false}}
	}
	stats, err := c.cache.Stats(ctx)
	if err != nil {
		return HealthCheck{Status: HealthStatusDegraded, Error: err.Error()}
	}
	details := map[string]any{"enabled": true, "hits": stats.Hits, "misses": stats.Misses, "hit_ratio": stats.HitRatio}
	if stats.Backend != nil {
		details["backend"] = stats.Backend
	}
	return HealthCheck{Status: HealthStatusHealthy, Details: details}
}
