package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/ericfisherdev/happyplace/internal/domain"
	"github.com/ericfisherdev/happyplace/internal/logger"
)

// RecoveryConfig holds configuration for the recovery middleware.
type RecoveryConfig struct {
	Logger *logger.Logger
	// PrintStack adds the goroutine stack to the log entry.
	PrintStack bool
	// IncludeStackInResponse adds the panic value to the response (dev only).
	IncludeStackInResponse bool
}

// RecoveryMiddleware converts a panic into a 500 error envelope.
func RecoveryMiddleware(config RecoveryConfig) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		requestID := GetRequestID(c)
		entry := config.Logger.WithFields(map[string]any{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"panic":      fmt.Sprint(recovered),
		})
		if config.PrintStack {
			entry = entry.With("stack", string(debug.Stack()))
		}
		entry.Error(nil, "panic recovered")

		panicErr := domain.NewInternalError("PANIC_RECOVERED", "Panic recovered", fmt.Errorf("panic: %v", recovered))
		_, body := ErrorBody(panicErr, requestID, config.IncludeStackInResponse)
		c.AbortWithStatusJSON(http.StatusInternalServerError, body)
	})
}

// DefaultRecoveryMiddleware returns a recovery middleware for production.
func DefaultRecoveryMiddleware(log *logger.Logger) gin.HandlerFunc {
	return RecoveryMiddleware(RecoveryConfig{Logger: log, PrintStack: true})
}

// DevelopmentRecoveryMiddleware also reports the panic value to the client.
func DevelopmentRecoveryMiddleware(log *logger.Logger) gin.HandlerFunc {
	return RecoveryMiddleware(RecoveryConfig{Logger: log, PrintStack: true, IncludeStackInResponse: true})
}
