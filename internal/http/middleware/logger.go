package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/K1mc4n/GoClip/internal/logger"
)

// RequestIDHeader carries the request ID back to the client
const RequestIDHeader = "X-Request-ID"

// RequestLoggerMiddleware creates a middleware for logging HTTP requests
func RequestLoggerMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.New().String()
		start := time.Now()

		contextLogger := log.WithRequestID(requestID)
		c.Set(loggerKey, contextLogger)
		c.Header(RequestIDHeader, requestID)

		c.Next()

		statusCode := c.Writer.Status()
		fields := map[string]interface{}{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     statusCode,
			"latency_ms": time.Since(start).Milliseconds(),
			"clientIP":   c.ClientIP(),
			"userAgent":  c.Request.UserAgent(),
		}

		// Set by the upload handlers once the cookie is resolved
		if sessionID := c.GetString("sessionID"); sessionID != "" {
			contextLogger = contextLogger.WithSessionID(sessionID)
		}

		switch {
		case statusCode >= 500:
			var err error
			if last := c.Errors.Last(); last != nil {
				err = last
			}
			contextLogger.WithFields(fields).LogError(err, "Server error processing request")
		case statusCode >= 400:
			contextLogger.LogWarn("Client error processing request", fields)
		default:
			contextLogger.LogInfo("Request completed", fields)
		}
	}
}
