package upload

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/K1mc4n/GoClip/internal/clip"
	apperrors "github.com/K1mc4n/GoClip/internal/errors"
	"github.com/K1mc4n/GoClip/internal/http/middleware"
	"github.com/K1mc4n/GoClip/internal/logger"
)

const formField = "video"

// multipartOverhead is allowed on top of MaxSize for part headers and form fields
const multipartOverhead = 1 << 20

// ShareLinker builds a share link for a clip URL
type ShareLinker interface {
	Link(clipURL string) string
}

// ResponseHandler defines the JSON responses used by the upload API
type ResponseHandler interface {
	SuccessResponse(c *gin.Context, data interface{}, message string)
	ErrorResponse(c *gin.Context, status int, code, message string, err error)
	ValidationErrorResponse(c *gin.Context, field, message string)
	InternalErrorResponse(c *gin.Context, message string, err error)
}

// HandlerConfig holds the HTTP side settings of the upload form
type HandlerConfig struct {
	CookieName string
	SessionTTL time.Duration
	MaxSize    int64

	// AllowedFormats lists accepted file extensions; empty accepts any file
	AllowedFormats []string
}

// FormPage is the view model of upload.html
type FormPage struct {
	State    Kind
	File     *File
	URL      string
	ShareURL string
	Uploaded bool
	Failed   bool
	Reason   string
	Alert    string
}

// StateResponse is the JSON shape of a session state
type StateResponse struct {
	State    Kind   `json:"state"`
	File     *File  `json:"file,omitempty"`
	URL      string `json:"url,omitempty"`
	ShareURL string `json:"shareUrl,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// ClipResponse is returned by the stateless upload endpoint
type ClipResponse struct {
	Clip     clip.Clip `json:"clip"`
	ShareURL string    `json:"shareUrl"`
}

// Handler serves the upload form and the upload API
type Handler struct {
	service         *Service
	share           ShareLinker
	responseHandler ResponseHandler
	logger          logger.Logger
	config          HandlerConfig
}

// NewHandler creates a new upload handler
func NewHandler(service *Service, share ShareLinker, responseHandler ResponseHandler, logger logger.Logger, config HandlerConfig) *Handler {
	return &Handler{
		service:         service,
		share:           share,
		responseHandler: responseHandler,
		logger:          logger,
		config:          config,
	}
}

// RegisterRoutes registers the HTML form routes
func (h *Handler) RegisterRoutes(router gin.IRoutes) {
	router.GET("/", h.Form)
	router.GET("/upload", h.Form)
	router.POST("/upload/select", h.Select)
	router.POST("/upload", h.Upload)
	router.POST("/upload/reset", h.Reset)
}

// RegisterAPIRoutes registers the JSON routes
func (h *Handler) RegisterAPIRoutes(api gin.IRoutes) {
	api.POST("/clips", h.CreateClip)
	api.GET("/upload/state", h.GetState)
}

// Form renders the form for the current session
func (h *Handler) Form(c *gin.Context) {
	state, err := h.service.State(c.Request.Context(), h.sessionID(c))
	if err != nil {
		h.renderError(c, err)
		return
	}
	h.render(c, http.StatusOK, state, "")
}

// Select stages the posted file
func (h *Handler) Select(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := h.sessionID(c)

	fh, err := h.formFile(c)
	switch {
	case err != nil:
		h.renderCurrent(c, sessionID, http.StatusBadRequest, validationMessage(err))
		return
	case fh == nil:
		h.renderCurrent(c, sessionID, http.StatusBadRequest, apperrors.ErrMsgNoFileSelected)
		return
	}

	state, err := h.selectFile(ctx, sessionID, fh)
	if err != nil {
		h.renderError(c, err)
		return
	}
	h.render(c, http.StatusOK, state, "")
}

// Upload triggers the upload. A file posted with the request is selected first.
func (h *Handler) Upload(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := h.sessionID(c)

	fh, err := h.formFile(c)
	if err != nil {
		h.renderCurrent(c, sessionID, http.StatusBadRequest, validationMessage(err))
		return
	}
	if fh != nil {
		if _, err := h.selectFile(ctx, sessionID, fh); err != nil {
			h.renderError(c, err)
			return
		}
	}

	state, err := h.service.Upload(ctx, sessionID)
	switch {
	case errors.Is(err, apperrors.ErrNoFileSelected):
		h.render(c, http.StatusBadRequest, state, apperrors.ErrMsgNoFileSelected)
	case err != nil && state != nil:
		h.render(c, http.StatusBadGateway, state, "")
	case err != nil:
		h.renderError(c, err)
	default:
		h.render(c, http.StatusOK, state, "")
	}
}

// Reset clears the session and goes back to the form
func (h *Handler) Reset(c *gin.Context) {
	if err := h.service.Reset(c.Request.Context(), h.sessionID(c)); err != nil {
		h.renderError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/upload")
}

// GetState returns the session state as JSON
func (h *Handler) GetState(c *gin.Context) {
	state, err := h.service.State(c.Request.Context(), h.sessionID(c))
	if err != nil {
		h.responseHandler.InternalErrorResponse(c, "Failed to load upload state", err)
		return
	}
	h.responseHandler.SuccessResponse(c, h.stateResponse(state), "Upload state retrieved successfully")
}

// CreateClip uploads the posted file without a session
func (h *Handler) CreateClip(c *gin.Context) {
	fh, err := h.formFile(c)
	if err != nil {
		h.responseHandler.ValidationErrorResponse(c, formField, validationMessage(err))
		return
	}
	if fh == nil {
		h.responseHandler.ErrorResponse(c, http.StatusBadRequest, "NO_FILE", apperrors.ErrMsgNoFileSelected, nil)
		return
	}

	f, err := fh.Open()
	if err != nil {
		h.responseHandler.InternalErrorResponse(c, "Failed to read uploaded file", err)
		return
	}
	defer f.Close()

	url, err := h.service.UploadFile(c.Request.Context(), fh.Filename, fh.Header.Get("Content-Type"), fh.Size, f)
	if err != nil {
		h.responseHandler.ErrorResponse(c, http.StatusBadGateway, "UPLOAD_FAILED", apperrors.ErrMsgUploadFailed, err)
		return
	}

	title := c.PostForm("title")
	if title == "" {
		title = fh.Filename
	}
	h.responseHandler.SuccessResponse(c, ClipResponse{
		Clip: clip.Clip{
			URL:    url,
			Title:  title,
			Author: c.PostForm("author"),
		},
		ShareURL: h.share.Link(url),
	}, "Clip uploaded successfully")
}

func (h *Handler) selectFile(ctx context.Context, sessionID string, fh *multipart.FileHeader) (State, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return h.service.Select(ctx, sessionID, fh.Filename, fh.Header.Get("Content-Type"), f)
}

// sessionID reads the session cookie, issuing a new one when it is missing or malformed
func (h *Handler) sessionID(c *gin.Context) string {
	id, err := c.Cookie(h.config.CookieName)
	if err != nil || uuid.Validate(id) != nil {
		id = uuid.New().String()
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.config.CookieName, id, int(h.config.SessionTTL.Seconds()), "/", "", false, true)
	c.Set("sessionID", id)
	return id
}

func (h *Handler) renderCurrent(c *gin.Context, sessionID string, status int, alert string) {
	state, err := h.service.State(c.Request.Context(), sessionID)
	if err != nil {
		h.renderError(c, err)
		return
	}
	h.render(c, status, state, alert)
}

func (h *Handler) render(c *gin.Context, status int, state State, alert string) {
	page := FormPage{State: state.Kind(), Alert: alert}
	if f, ok := FileOf(state); ok {
		page.File = &f
	}
	switch st := state.(type) {
	case Uploaded:
		page.Uploaded = true
		page.URL = st.URL
		page.ShareURL = h.share.Link(st.URL)
	case Failed:
		page.Failed = true
		page.Reason = st.Reason
	}
	c.HTML(status, "upload.html", page)
}

func (h *Handler) renderError(c *gin.Context, err error) {
	log := middleware.GetLogger(c, h.logger)
	if id := c.GetString("sessionID"); id != "" {
		log = log.WithSessionID(id)
	}
	log.LogError(err, "Upload form request failed")
	c.String(http.StatusInternalServerError, "An unexpected error occurred")
}

func (h *Handler) stateResponse(state State) StateResponse {
	resp := StateResponse{State: state.Kind()}
	if f, ok := FileOf(state); ok {
		resp.File = &f
	}
	switch st := state.(type) {
	case Uploaded:
		resp.URL = st.URL
		resp.ShareURL = h.share.Link(st.URL)
	case Failed:
		resp.Reason = st.Reason
	}
	return resp
}

// formFile returns the validated video posted with the request, or nil when
// there is none. With a size limit set the body is capped before it is parsed,
// so an oversized upload is never spooled to disk.
func (h *Handler) formFile(c *gin.Context) (*multipart.FileHeader, error) {
	if h.config.MaxSize > 0 {
		limit := h.config.MaxSize + multipartOverhead
		if c.Request.ContentLength > limit {
			return nil, apperrors.NewValidationError(formField, apperrors.ErrMsgFileSize)
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
	}

	fh, err := c.FormFile(formField)
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return nil, apperrors.NewValidationError(formField, apperrors.ErrMsgFileSize)
	case err != nil || fh.Filename == "":
		return nil, nil
	}

	if err := h.validateFile(fh); err != nil {
		return nil, err
	}
	return fh, nil
}
