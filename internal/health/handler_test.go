package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	apphttp "github.com/K1mc4n/GoClip/internal/http"
	"github.com/K1mc4n/GoClip/testhelper"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func serveHealth(h *Handler) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/health", h.HandleHealthCheck)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	return w
}

func TestHandleHealthCheck(t *testing.T) {
	rh := apphttp.NewResponseHandler(testhelper.NewTestLogger(false))

	t.Run("healthy", func(t *testing.T) {
		w := serveHealth(NewHandler(rh, "w3s", map[string]Pinger{
			"redis": pingerFunc(func(context.Context) error { return nil }),
		}))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"provider":"w3s"`)
		assert.Contains(t, w.Body.String(), `"status":"healthy"`)
	})

	t.Run("dependency down", func(t *testing.T) {
		w := serveHealth(NewHandler(rh, "w3s", map[string]Pinger{
			"redis": pingerFunc(func(context.Context) error { return errors.New("refused") }),
		}))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "redis is unreachable")
	})
}
