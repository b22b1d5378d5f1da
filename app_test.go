package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/K1mc4n/GoClip/internal/cache"
	"github.com/K1mc4n/GoClip/internal/config"
	"github.com/K1mc4n/GoClip/internal/storage"
	"github.com/K1mc4n/GoClip/testhelper"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return &config.Config{
		Environment: "test",
		Server:      config.ServerConfig{Port: 8080, ShutdownTimeout: time.Second},
		Storage: storage.Config{
			Provider:      storage.ProviderW3S,
			GatewayDomain: storage.DefaultGatewayDomain,
			TempDir:       filepath.Join(t.TempDir(), "staging"),
		},
		Upload: config.UploadConfig{MaxSize: 1024},
		Session: config.SessionConfig{
			Store:           config.SessionStoreMemory,
			TTL:             time.Hour,
			CookieName:      "goclips_session",
			CleanupInterval: time.Minute,
		},
		Share: config.ShareConfig{ComposerURL: "https://warpcast.com/~/compose"},
	}
}

func serve(app *App, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	return w
}

func TestApp_Routes(t *testing.T) {
	log := testhelper.NewTestLogger(false)
	app, err := NewApp(context.Background(), testConfig(t), log)
	require.NoError(t, err)
	t.Cleanup(func() { app.Shutdown(context.Background()) })

	t.Run("missing token is reported at startup", func(t *testing.T) {
		var messages []string
		for _, entry := range log.GetInfoMessages() {
			messages = append(messages, entry.Message)
		}
		assert.Contains(t, messages, "web3.storage token is not configured, uploads will fail")
	})

	t.Run("health", func(t *testing.T) {
		w := serve(app, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("upload form", func(t *testing.T) {
		w := serve(app, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Upload New Clip")
	})

	t.Run("upload without credential fails", func(t *testing.T) {
		req := testhelper.NewMultipartRequest(t, http.MethodPost, "/upload",
			&testhelper.FormFile{Field: "video", Name: "clip.mp4", Contents: []byte("abc")}, nil)
		w := serve(app, req)
		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, w.Body.String(), "Upload failed")
	})

	t.Run("profile", func(t *testing.T) {
		w := serve(app, httptest.NewRequest(http.MethodGet, "/profile/0xabc", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "@user_address")
	})

	t.Run("share", func(t *testing.T) {
		w := serve(app, httptest.NewRequest(http.MethodGet, "/share?url=https%3A%2F%2Fx.ipfs.w3s.link%2Fa.mp4", nil))
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "https://warpcast.com/~/compose?embeds[]=https%3A%2F%2Fx.ipfs.w3s.link%2Fa.mp4", w.Header().Get("Location"))
	})

	t.Run("static", func(t *testing.T) {
		w := serve(app, httptest.NewRequest(http.MethodGet, "/static/style.css", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown route", func(t *testing.T) {
		w := serve(app, httptest.NewRequest(http.MethodGet, "/nope", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestApp_RedisSessions(t *testing.T) {
	server := miniredis.RunT(t)
	cfg := testConfig(t)
	cfg.Session.Store = config.SessionStoreRedis
	cfg.Redis = cache.Config{Addr: server.Addr()}

	app, err := NewApp(context.Background(), cfg, testhelper.NewTestLogger(false))
	require.NoError(t, err)

	req := testhelper.NewMultipartRequest(t, http.MethodPost, "/upload/select",
		&testhelper.FormFile{Field: "video", Name: "clip.mp4", Contents: []byte("abc")}, nil)
	w := serve(app, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, server.Keys(), 1)

	w = serve(app, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, app.Shutdown(context.Background()))
}
