package clip

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/K1mc4n/GoClip/internal/logger"
)

// ShareLinker builds a share link for a clip URL
type ShareLinker interface {
	Link(clipURL string) string
}

// ResponseHandler defines the JSON responses used by the clip API
type ResponseHandler interface {
	SuccessResponse(c *gin.Context, data interface{}, message string)
	InternalErrorResponse(c *gin.Context, message string, err error)
}

// ProfilePage is the view model of profile.html
type ProfilePage struct {
	Address string
	Cards   []Card
}

// Handler serves profile listings
type Handler struct {
	catalog         Catalog
	share           ShareLinker
	responseHandler ResponseHandler
	logger          logger.Logger
}

// NewHandler creates a new clip handler
func NewHandler(catalog Catalog, share ShareLinker, responseHandler ResponseHandler, logger logger.Logger) *Handler {
	return &Handler{
		catalog:         catalog,
		share:           share,
		responseHandler: responseHandler,
		logger:          logger,
	}
}

// RegisterRoutes registers the HTML profile page
func (h *Handler) RegisterRoutes(router gin.IRoutes) {
	router.GET("/profile/:address", h.ProfilePage)
}

// RegisterAPIRoutes registers the JSON profile listing
func (h *Handler) RegisterAPIRoutes(api gin.IRoutes) {
	api.GET("/profile/:address/clips", h.ListClips)
}

// ProfilePage renders a grid of video cards
func (h *Handler) ProfilePage(c *gin.Context) {
	address := c.Param("address")
	cards, err := h.cards(c, address)
	if err != nil {
		h.logger.LogError(err, "Failed to list clips")
		c.String(http.StatusInternalServerError, "Failed to list clips")
		return
	}

	c.HTML(http.StatusOK, "profile.html", ProfilePage{
		Address: address,
		Cards:   cards,
	})
}

// ListClips returns the clips of an address as JSON
func (h *Handler) ListClips(c *gin.Context) {
	cards, err := h.cards(c, c.Param("address"))
	if err != nil {
		h.responseHandler.InternalErrorResponse(c, "Failed to list clips", err)
		return
	}
	h.responseHandler.SuccessResponse(c, gin.H{"clips": cards}, "Clips retrieved successfully")
}

func (h *Handler) cards(c *gin.Context, address string) ([]Card, error) {
	clips, err := h.catalog.ListByAuthor(c.Request.Context(), address)
	if err != nil {
		return nil, err
	}

	cards := make([]Card, 0, len(clips))
	for _, cl := range clips {
		cards = append(cards, Card{Clip: cl, ShareURL: h.share.Link(cl.URL)})
	}
	return cards, nil
}
