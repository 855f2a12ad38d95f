package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ericfisherdev/happyplace/internal/logger"
)

// LoggingConfig holds configuration for the logging middleware.
type LoggingConfig struct {
	Logger    *logger.Logger
	SkipPaths []string
}

// LoggingMiddleware writes one structured access log line per request.
// Server errors log at error level, client errors at warn.
func LoggingMiddleware(config LoggingConfig) gin.HandlerFunc {
	skip := make(map[string]bool, len(config.SkipPaths))
	for _, p := range config.SkipPaths {
		skip[p] = true
	}

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		c.Next()

		if skip[path] {
			return
		}

		status := c.Writer.Status()
		entry := config.Logger.WithFields(map[string]any{
			"status":     status,
			"method":     c.Request.Method,
			"path":       path,
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
			"bytes":      c.Writer.Size(),
			"request_id": GetRequestID(c),
		})
		if raw := c.Request.URL.RawQuery; raw != "" {
			entry = entry.With("query", raw)
		}

		switch {
		case status >= 500:
			msg := "request failed"
			if len(c.Errors) > 0 {
				msg = c.Errors.String()
			}
			entry.Error(nil, msg)
		case status >= 400:
			entry.Warn("request rejected")
		default:
			entry.Info("request")
		}
	}
}

// DefaultLoggingMiddleware skips the health probes.
func DefaultLoggingMiddleware(log *logger.Logger) gin.HandlerFunc {
	return LoggingMiddleware(LoggingConfig{
		Logger:    log,
		SkipPaths: []string{"/health", "/health/live", "/health/ready"},
	})
}
