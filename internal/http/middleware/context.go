package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/K1mc4n/GoClip/internal/logger"
)

const loggerKey = "logger"

// GetLogger retrieves the request scoped logger from the gin context,
// or fallback when the request logger middleware did not run
func GetLogger(c *gin.Context, fallback logger.Logger) logger.Logger {
	if log, exists := c.Get(loggerKey); exists {
		if contextLogger, ok := log.(logger.Logger); ok {
			return contextLogger
		}
	}
	return fallback
}
