package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mergington-high/activities-api/pkg/logger"
)

const requestIDKey = "request_id"

// RequestID assigns a UUID to every request, exposing it both to
// downstream handlers and to clients via the X-Request-ID header. An
// incoming X-Request-ID is honored so callers can correlate retries.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Next()
	}
}

// RequestIDFromContext returns the request ID assigned by RequestID,
// or an empty string when the middleware is not installed.
func RequestIDFromContext(c *gin.Context) string {
	if id, exists := c.Get(requestIDKey); exists {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}

// RequestLogger logs one line per request with method, path, status, and
// latency, through the shared zap logger.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		logger.WithContext(c.Request.Context()).Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", RequestIDFromContext(c)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}
