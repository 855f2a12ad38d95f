package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ericfisherdev/happyplace/internal/domain"
	"github.com/ericfisherdev/happyplace/internal/logger"
)

// ErrorHandlerConfig holds configuration for error handling middleware.
type ErrorHandlerConfig struct {
	Logger *logger.Logger
	// ExposeInternal adds the cause of unexpected errors to responses.
	// Development only.
	ExposeInternal bool
}

// ErrorHandlerMiddleware turns the last error attached with c.Error into a
// JSON response, unless the handler already wrote one.
func ErrorHandlerMiddleware(config ErrorHandlerConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		logError(config.Logger, c, err)
		if c.Writer.Written() {
			return
		}
		status, body := ErrorBody(err, GetRequestID(c), config.ExposeInternal)
		c.JSON(status, body)
	}
}

// StatusFor maps an error to its HTTP status.
func StatusFor(err error) int {
	var domainErr *domain.DomainError
	if !errors.As(err, &domainErr) {
		return http.StatusInternalServerError
	}
	switch domainErr.Type {
	case domain.ValidationError:
		return http.StatusBadRequest
	case domain.NotFoundError:
		return http.StatusNotFound
	case domain.RateLimitError:
		return http.StatusTooManyRequests
	case domain.ExternalServiceError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ErrorBody builds the error envelope. Messages of internal and external
// service errors are replaced so store details never reach the client.
func ErrorBody(err error, requestID string, exposeInternal bool) (int, gin.H) {
	status := StatusFor(err)
	payload := gin.H{
		"type":       string(domain.InternalError),
		"code":       "UNEXPECTED_ERROR",
		"message":    "An unexpected error occurred",
		"request_id": requestID,
	}

	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		payload["type"] = string(domainErr.Type)
		payload["code"] = domainErr.Code
		switch domainErr.Type {
		case domain.InternalError, domain.ExternalServiceError:
			if domainErr.Type == domain.ExternalServiceError {
				payload["message"] = "A backing service is temporarily unavailable"
			}
		default:
			payload["message"] = domainErr.Message
			if len(domainErr.Details) > 0 {
				payload["details"] = domainErr.Details
			}
		}
	}
	if exposeInternal && status >= http.StatusInternalServerError {
		payload["cause"] = err.Error()
	}
	return status, gin.H{"success": false, "error": payload}
}

func logError(log *logger.Logger, c *gin.Context, err error) {
	entry := log.WithFields(map[string]any{
		"request_id": GetRequestID(c),
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
	})
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		entry = entry.WithFields(map[string]any{"error_type": string(domainErr.Type), "error_code": domainErr.Code})
		if StatusFor(err) < http.StatusInternalServerError {
			entry.Debug(domainErr.Message)
			return
		}
	}
	entry.Error(err, "request error")
}

// Abort attaches err for the error handler and stops the chain.
func Abort(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// AbortWithValidationError aborts the request with a validation error.
func AbortWithValidationError(c *gin.Context, code, message string, details map[string]interface{}) {
	Abort(c, domain.NewValidationError(code, message, details))
}

// AbortWithNotFoundError aborts the request with a not found error.
func AbortWithNotFoundError(c *gin.Context, code, message string) {
	Abort(c, domain.NewNotFoundError(code, message))
}
