package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/K1mc4n/GoClip/internal/config"
	"github.com/K1mc4n/GoClip/internal/logger"
)

func main() {
	configDir := flag.String("config", ".", "directory containing config.yaml and .env")
	flag.Parse()

	// Initialize logger for bootstrapping
	bootLogger, err := logger.NewLogger(logger.DefaultConfig())
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	cfg, err := config.NewConfigService(bootLogger).Load(*configDir)
	if err != nil {
		bootLogger.LogFatal(err, "Failed to load configuration")
	}

	appLogger, err := logger.NewLogger(&cfg.Logging)
	if err != nil {
		bootLogger.LogFatal(err, "Failed to initialize logger")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := NewApp(ctx, cfg, appLogger)
	if err != nil {
		appLogger.LogFatal(err, "Failed to initialize application")
	}

	if err := app.Run(); err != nil {
		appLogger.LogFatal(err, "Failed to start application")
	}

	<-ctx.Done()
	appLogger.LogInfo("Received shutdown signal", nil)

	if err := app.Shutdown(context.Background()); err != nil {
		appLogger.LogError(err, "Error during shutdown")
		os.Exit(1)
	}
}
