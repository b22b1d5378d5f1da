package config

import (
	"time"

	"github.com/K1mc4n/GoClip/internal/cache"
	"github.com/K1mc4n/GoClip/internal/logger"
	"github.com/K1mc4n/GoClip/internal/storage"
)

// Session store backends
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// Config represents the application configuration
type Config struct {
	Environment string         `mapstructure:"environment" yaml:"environment"`
	Server      ServerConfig   `mapstructure:"server" yaml:"server"`
	Logging     logger.Config  `mapstructure:"logging" yaml:"logging"`
	Storage     storage.Config `mapstructure:"storage" yaml:"storage"`
	Upload      UploadConfig   `mapstructure:"upload" yaml:"upload"`
	Session     SessionConfig  `mapstructure:"session" yaml:"session"`
	Redis       cache.Config   `mapstructure:"redis" yaml:"redis"`
	Share       ShareConfig    `mapstructure:"share" yaml:"share"`
}

// ServerConfig represents server configuration settings
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdownTimeout"`
}

// UploadConfig represents upload form settings
type UploadConfig struct {
	MaxSize        int64    `mapstructure:"maxSize"`
	AllowedFormats []string `mapstructure:"allowedFormats"`
}

// SessionConfig represents upload session settings
type SessionConfig struct {
	Store           string        `mapstructure:"store"`
	TTL             time.Duration `mapstructure:"ttl"`
	CookieName      string        `mapstructure:"cookieName"`
	CleanupInterval time.Duration `mapstructure:"cleanupInterval"`
}

// ShareConfig represents the external share target
type ShareConfig struct {
	ComposerURL string `mapstructure:"composerURL"`
}
