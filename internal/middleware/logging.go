package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"centavo/internal/logger"
)

const requestIDKey = "requestID"

// RequestLogging tags each request with a generated ID (echoed in the
// X-Request-ID header) and logs method, path, status, latency, and the
// authenticated user when the request carried a valid token.
func RequestLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := uuid.New().String()
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)

		c.Next()

		fields := []interface{}{
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if query := c.Request.URL.RawQuery; query != "" {
			fields = append(fields, "query", query)
		}
		// Set by AuthMiddleware, so only present on authenticated routes.
		if userID, ok := c.Get(ContextUserID); ok {
			fields = append(fields, "user_id", userID)
		}
		logger.Get().Infow("request", fields...)
	}
}
