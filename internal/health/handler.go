package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apphttp "github.com/K1mc4n/GoClip/internal/http"
)

// Handler handles health check related endpoints
type Handler struct {
	responseHandler ResponseHandler
	provider        string
	started         time.Time
	deps            map[string]Pinger
}

// NewHandler creates a new health check handler. deps are pinged on every check.
func NewHandler(responseHandler ResponseHandler, provider string, deps map[string]Pinger) *Handler {
	return &Handler{
		responseHandler: responseHandler,
		provider:        provider,
		started:         time.Now(),
		deps:            deps,
	}
}

// HandleHealthCheck reports the storage provider, uptime and dependency status
func (h *Handler) HandleHealthCheck(c *gin.Context) {
	for name, dep := range h.deps {
		if err := dep.Ping(c.Request.Context()); err != nil {
			h.responseHandler.ErrorResponse(c, http.StatusServiceUnavailable, "UNHEALTHY", name+" is unreachable", err)
			return
		}
	}

	h.responseHandler.SuccessResponse(c, apphttp.HealthResponse{
		Status:   "healthy",
		Provider: h.provider,
		Uptime:   int64(time.Since(h.started).Seconds()),
	}, "Health check successful")
}
