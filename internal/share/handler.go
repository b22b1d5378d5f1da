package share

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler redirects to the composer
type Handler struct {
	service *Service
}

// NewHandler creates a new share handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the share route
func (h *Handler) RegisterRoutes(router gin.IRoutes) {
	router.GET("/share", h.Redirect)
}

// Redirect sends the browser to the composer with ?url= embedded
func (h *Handler) Redirect(c *gin.Context) {
	clipURL := c.Query("url")
	if clipURL == "" {
		c.String(http.StatusBadRequest, "missing url")
		return
	}
	c.Redirect(http.StatusFound, h.service.Link(clipURL))
}
