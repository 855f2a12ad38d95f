package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ericfisherdev/happyplace/internal/api/middleware"
	"github.com/ericfisherdev/happyplace/internal/services"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	healthService *services.HealthService
	limiters      []*middleware.RateLimitManager
}

// NewHealthHandler creates a new health handler. Stats of the given rate
// limiters are included in the detailed report.
func NewHealthHandler(healthService *services.HealthService, limiters ...*middleware.RateLimitManager) *HealthHandler {
	return &HealthHandler{
		healthService: healthService,
		limiters:      limiters,
	}
}

// RegisterRoutes registers health check routes.
func (h *HealthHandler) RegisterRoutes(router *gin.Engine) {
	health := router.Group("/health")
	{
		health.GET("", h.HealthCheck)
		health.GET("/live", h.Liveness)
		health.GET("/ready", h.Readiness)
		health.GET("/detailed", h.DetailedHealth)
	}
}

// HealthCheck performs a comprehensive health check
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	h.renderHealthResponse(c, h.healthService.Check(ctx))
}

// Liveness returns the liveness status
func (h *HealthHandler) Liveness(c *gin.Context) {
	response := h.healthService.Liveness()
	c.JSON(http.StatusOK, gin.H{
		"status":      "alive",
		"timestamp":   response.Timestamp,
		"version":     response.Version,
		"uptime":      response.Uptime.String(),
		"environment": response.Environment,
	})
}

// Readiness only runs the critical checks.
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	h.renderHealthResponse(c, h.healthService.Readiness(ctx))
}

// DetailedHealth returns the full report with system and rate limiter stats.
func (h *HealthHandler) DetailedHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	response := h.healthService.Check(ctx)
	limits := make([]middleware.RateLimitStats, 0, len(h.limiters))
	for _, l := range h.limiters {
		limits = append(limits, l.Stats())
	}
	c.JSON(mapHealthStatusToHTTP(response.Status), gin.H{
		"status":      string(response.Status),
		"timestamp":   response.Timestamp,
		"version":     response.Version,
		"uptime":      response.Uptime.String(),
		"environment": response.Environment,
		"checks":      response.Checks,
		"system":      response.System,
		"rate_limits": limits,
	})
}

func (h *HealthHandler) renderHealthResponse(c *gin.Context, response services.HealthResponse) {
	c.JSON(mapHealthStatusToHTTP(response.Status), gin.H{
		"status":      string(response.Status),
		"timestamp":   response.Timestamp,
		"version":     response.Version,
		"uptime":      response.Uptime.String(),
		"environment": response.Environment,
		"checks":      response.Checks,
	})
}

// mapHealthStatusToHTTP maps health status to HTTP status code
func mapHealthStatusToHTTP(status services.HealthStatus) int {
	switch status {
	case services.HealthStatusHealthy, services.HealthStatusDegraded:
		return http.StatusOK
	case services.HealthStatusUnhealthy:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
