package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/K1mc4n/GoClip/testhelper"
)

func setupTestRouter(log *testhelper.TestLogger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestLoggerMiddleware(log))
	return router
}

func serve(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestRequestLoggerMiddleware(t *testing.T) {
	t.Run("Basic Request Logging", func(t *testing.T) {
		log := testhelper.NewTestLogger(false)
		router := setupTestRouter(log)
		router.GET("/test", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		w := serve(router, "/test")

		infos := log.GetInfoMessages()
		require.Len(t, infos, 1)
		assert.Equal(t, "Request completed", infos[0].Message)
		fields := infos[0].Fields
		assert.Equal(t, http.MethodGet, fields["method"])
		assert.Equal(t, "/test", fields["path"])
		assert.Equal(t, http.StatusOK, fields["status"])
		assert.NotEmpty(t, fields["requestID"])
		assert.Equal(t, fields["requestID"], w.Header().Get(RequestIDHeader))
	})

	t.Run("Error Status Code Logging", func(t *testing.T) {
		log := testhelper.NewTestLogger(false)
		router := setupTestRouter(log)
		router.GET("/error", func(c *gin.Context) {
			_ = c.Error(errors.New("provider down"))
			c.Status(http.StatusInternalServerError)
		})

		serve(router, "/error")

		errs := log.GetErrorMessages()
		require.Len(t, errs, 1)
		assert.Equal(t, "Server error processing request", errs[0].Message)
		assert.Equal(t, "/error", errs[0].Fields["path"])
		assert.Equal(t, "provider down", errs[0].Fields["error"])
	})

	t.Run("Error Status Without Gin Error", func(t *testing.T) {
		log := testhelper.NewTestLogger(false)
		router := setupTestRouter(log)
		router.GET("/error", func(c *gin.Context) {
			c.Status(http.StatusBadGateway)
		})

		serve(router, "/error")

		assert.Len(t, log.GetErrorMessages(), 1)
	})

	t.Run("Warning Status Code Logging", func(t *testing.T) {
		log := testhelper.NewTestLogger(false)
		router := setupTestRouter(log)
		router.GET("/warning", func(c *gin.Context) {
			c.Status(http.StatusBadRequest)
		})

		serve(router, "/warning")

		assert.Len(t, log.GetWarnMessages(), 1)
	})

	t.Run("Context Logger Injection", func(t *testing.T) {
		log := testhelper.NewTestLogger(false)
		router := setupTestRouter(log)
		router.GET("/context", func(c *gin.Context) {
			GetLogger(c, nil).LogInfo("from handler", nil)
			c.Status(http.StatusOK)
		})

		serve(router, "/context")

		infos := log.GetInfoMessages()
		require.Len(t, infos, 2)
		assert.Equal(t, "from handler", infos[0].Message)
		assert.Equal(t, infos[0].Fields["requestID"], infos[1].Fields["requestID"])
	})

	t.Run("Fallback Logger", func(t *testing.T) {
		fallback := testhelper.NewTestLogger(false)
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		assert.Same(t, fallback, GetLogger(c, fallback))
	})

	t.Run("Session ID Logging", func(t *testing.T) {
		log := testhelper.NewTestLogger(false)
		router := setupTestRouter(log)
		router.GET("/upload", func(c *gin.Context) {
			c.Set("sessionID", "sess-1")
			c.Status(http.StatusOK)
		})

		serve(router, "/upload")

		infos := log.GetInfoMessages()
		require.Len(t, infos, 1)
		assert.Equal(t, "sess-1", infos[0].Fields["sessionID"])
	})

	t.Run("Latency Tracking", func(t *testing.T) {
		log := testhelper.NewTestLogger(false)
		router := setupTestRouter(log)
		router.GET("/latency", func(c *gin.Context) {
			time.Sleep(10 * time.Millisecond)
			c.Status(http.StatusOK)
		})

		serve(router, "/latency")

		infos := log.GetInfoMessages()
		require.Len(t, infos, 1)
		latency, ok := infos[0].Fields["latency_ms"].(int64)
		require.True(t, ok)
		assert.GreaterOrEqual(t, latency, int64(10))
	})
}
