package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/K1mc4n/GoClip/internal/storage"
)

// TokenEnv is the only environment variable the service reads
const TokenEnv = "WEB3_STORAGE_TOKEN"

// ConfigService implements the Service interface
type ConfigService struct {
	logger Logger
}

// NewConfigService creates a new configuration service
func NewConfigService(logger Logger) *ConfigService {
	return &ConfigService{
		logger: logger,
	}
}

// Load loads the configuration from config.yaml in the specified path.
// An optional .env next to it may provide WEB3_STORAGE_TOKEN.
func (s *ConfigService) Load(path string) (*Config, error) {
	if err := godotenv.Load(filepath.Join(path, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %v", err)
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	s.setDefaults(v)

	if err := v.BindEnv("storage.w3s.token", TokenEnv); err != nil {
		return nil, fmt.Errorf("failed to bind %s: %v", TokenEnv, err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %v", err)
		}
		s.logger.LogInfo("No config file found, using defaults", map[string]interface{}{
			"path": path,
		})
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %v", err)
	}

	if err := s.validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %v", err)
	}

	if err := s.resolveStoragePaths(&config, path); err != nil {
		return nil, fmt.Errorf("failed to resolve storage paths: %v", err)
	}

	s.logger.LogInfo("Configuration loaded successfully", map[string]interface{}{
		"environment": config.Environment,
		"provider":    config.Storage.Provider,
		"session":     config.Session.Store,
		"has_token":   config.Storage.W3S.Token != "",
	})
	return &config, nil
}

// setDefaults sets default values for configuration
func (s *ConfigService) setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdownTimeout", "30s")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")
	v.SetDefault("storage.provider", storage.ProviderW3S)
	v.SetDefault("storage.gatewayDomain", storage.DefaultGatewayDomain)
	v.SetDefault("storage.tempDir", "temp")
	v.SetDefault("storage.w3s.endpoint", "https://api.web3.storage")
	v.SetDefault("storage.ipfs.apiAddress", "localhost:5001")
	v.SetDefault("upload.maxSize", 1024*1024*1024) // 1GB
	v.SetDefault("session.store", SessionStoreMemory)
	v.SetDefault("session.ttl", "1h")
	v.SetDefault("session.cookieName", "goclips_session")
	v.SetDefault("session.cleanupInterval", "1m")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("share.composerURL", "https://warpcast.com/~/compose")
}

// validate performs validation on the configuration
func (s *ConfigService) validate(config *Config) error {
	if config.Server.Port <= 0 {
		return fmt.Errorf("invalid server port")
	}

	switch config.Storage.Provider {
	case storage.ProviderW3S:
	case storage.ProviderIPFS:
		if config.Storage.IPFS.APIAddress == "" {
			return fmt.Errorf("storage.ipfs.apiAddress is required for the ipfs provider")
		}
	default:
		return fmt.Errorf("unknown storage provider: %q", config.Storage.Provider)
	}

	if config.Storage.GatewayDomain == "" {
		return fmt.Errorf("storage.gatewayDomain is required")
	}

	switch config.Session.Store {
	case SessionStoreMemory:
	case SessionStoreRedis:
		if config.Redis.Addr == "" {
			return fmt.Errorf("redis.addr is required for the redis session store")
		}
	default:
		return fmt.Errorf("unknown session store: %q", config.Session.Store)
	}

	if config.Session.TTL <= 0 {
		return fmt.Errorf("session.ttl must be positive")
	}

	if config.Session.CleanupInterval <= 0 {
		return fmt.Errorf("session.cleanupInterval must be positive")
	}

	if config.Share.ComposerURL == "" {
		return fmt.Errorf("share.composerURL is required")
	}

	return nil
}

// resolveStoragePaths converts relative paths to absolute paths
func (s *ConfigService) resolveStoragePaths(config *Config, basePath string) error {
	tempDir := config.Storage.TempDir
	if !filepath.IsAbs(tempDir) {
		absPath, err := filepath.Abs(filepath.Join(basePath, tempDir))
		if err != nil {
			return fmt.Errorf("failed to resolve temp directory path: %v", err)
		}
		config.Storage.TempDir = absPath
	}

	return nil
}
