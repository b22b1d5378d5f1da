package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/K1mc4n/GoClip/internal/cache"
	"github.com/K1mc4n/GoClip/internal/clip"
	"github.com/K1mc4n/GoClip/internal/config"
	"github.com/K1mc4n/GoClip/internal/health"
	apphttp "github.com/K1mc4n/GoClip/internal/http"
	"github.com/K1mc4n/GoClip/internal/http/middleware"
	"github.com/K1mc4n/GoClip/internal/logger"
	"github.com/K1mc4n/GoClip/internal/share"
	"github.com/K1mc4n/GoClip/internal/storage"
	"github.com/K1mc4n/GoClip/internal/storage/ipfs"
	"github.com/K1mc4n/GoClip/internal/storage/w3s"
	"github.com/K1mc4n/GoClip/internal/upload"
	"github.com/K1mc4n/GoClip/internal/upload/tempfile"
	"github.com/K1mc4n/GoClip/internal/web"
)

// App holds all application dependencies
type App struct {
	config  *config.Config
	logger  logger.Logger
	router  *gin.Engine
	server  *http.Server
	adapter *storage.Adapter
	cache   cache.Service
	staging *tempfile.Manager
	uploads *upload.Service
	cancel  context.CancelFunc
}

// NewApp creates a new application instance with all dependencies
func NewApp(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	uploader, err := newUploader(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage provider: %v", err)
	}
	adapter := storage.NewAdapter(uploader, cfg.Storage.GatewayDomain, log)

	staging, err := tempfile.NewManager(&tempfile.Config{BaseDir: cfg.Storage.TempDir}, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize staging area: %v", err)
	}

	app := &App{
		config:  cfg,
		logger:  log,
		adapter: adapter,
		staging: staging,
	}

	store, err := app.newSessionStore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session store: %v", err)
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	app.router = gin.New()

	app.uploads = upload.NewService(adapter, store, staging, log)
	if memoryStore, ok := store.(*upload.MemoryStore); ok {
		memoryStore.OnExpire(app.uploads.Release)
	}

	if err := app.setupRoutes(app.uploads); err != nil {
		return nil, err
	}

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           app.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return app, nil
}

func newUploader(cfg *config.Config, log logger.Logger) (storage.Uploader, error) {
	switch cfg.Storage.Provider {
	case storage.ProviderIPFS:
		return ipfs.NewService(&cfg.Storage.IPFS, log), nil
	default:
		return w3s.NewService(&cfg.Storage.W3S, log)
	}
}

func (a *App) newSessionStore(ctx context.Context) (upload.SessionStore, error) {
	if a.config.Session.Store != config.SessionStoreRedis {
		return upload.NewMemoryStore(a.config.Session.TTL), nil
	}

	redisService, err := cache.NewRedisService(ctx, &a.config.Redis)
	if err != nil {
		return nil, err
	}
	a.cache = redisService
	return upload.NewRedisStore(redisService, a.config.Session.TTL), nil
}

func (a *App) setupRoutes(uploadService *upload.Service) error {
	tmpl, err := web.Templates()
	if err != nil {
		return fmt.Errorf("failed to parse templates: %v", err)
	}
	staticFS, err := web.StaticFileSystem()
	if err != nil {
		return fmt.Errorf("failed to load static files: %v", err)
	}

	responseHandler := apphttp.NewResponseHandler(a.logger)
	shareService := share.NewService(a.config.Share.ComposerURL)

	a.router.SetHTMLTemplate(tmpl)
	a.router.Use(
		middleware.RequestLoggerMiddleware(a.logger),
		apphttp.RecoveryMiddleware(responseHandler, a.logger),
		apphttp.CORSMiddleware(),
	)
	a.router.NoRoute(apphttp.NotFoundHandler(responseHandler))

	deps := map[string]health.Pinger{}
	if a.cache != nil {
		deps["redis"] = a.cache
	}
	a.router.GET("/health", health.NewHandler(responseHandler, a.config.Storage.Provider, deps).HandleHealthCheck)

	apphttp.ServeStaticFiles(a.router, []apphttp.StaticFileConfig{{
		URLPath:      "/static",
		FS:           staticFS,
		CacheControl: "public, max-age=3600",
	}})

	uploadHandler := upload.NewHandler(uploadService, shareService, responseHandler, a.logger, upload.HandlerConfig{
		CookieName:     a.config.Session.CookieName,
		SessionTTL:     a.config.Session.TTL,
		MaxSize:        a.config.Upload.MaxSize,
		AllowedFormats: a.config.Upload.AllowedFormats,
	})
	clipHandler := clip.NewHandler(clip.NewStaticCatalog(), shareService, responseHandler, a.logger)
	shareHandler := share.NewHandler(shareService)

	uploadHandler.RegisterRoutes(a.router)
	clipHandler.RegisterRoutes(a.router)
	shareHandler.RegisterRoutes(a.router)

	api := a.router.Group("/api/v1")
	uploadHandler.RegisterAPIRoutes(api)
	clipHandler.RegisterAPIRoutes(api)

	return nil
}

// Run starts the HTTP server in the background
func (a *App) Run() error {
	a.logger.LogInfo("Starting server", map[string]interface{}{
		"addr":     a.server.Addr,
		"provider": a.config.Storage.Provider,
		"gateway":  a.adapter.GatewayDomain(),
		"sessions": a.config.Session.Store,
	})

	// A staged file outlives its session by at most one cleanup interval
	cleanupCtx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	interval := a.config.Session.CleanupInterval
	go a.uploads.RunCleanup(cleanupCtx, interval, a.config.Session.TTL+interval)

	go func() {
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.LogError(err, "HTTP server stopped")
		}
	}()
	return nil
}

// Shutdown stops the server and releases resources
func (a *App) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, a.config.Server.ShutdownTimeout)
	defer cancel()

	if a.cancel != nil {
		a.cancel()
	}

	var errs []error
	if err := a.server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("server shutdown: %w", err))
	}
	if err := a.staging.CleanupAll(); err != nil {
		errs = append(errs, err)
	}
	if err := a.adapter.Close(); err != nil {
		errs = append(errs, fmt.Errorf("storage close: %w", err))
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			errs = append(errs, fmt.Errorf("cache close: %w", err))
		}
	}

	a.logger.LogInfo("Server stopped", nil)
	return errors.Join(errs...)
}
