package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"github.com/varoOP/animewatch/internal/cache"
	"github.com/varoOP/animewatch/internal/domain"
	"github.com/varoOP/animewatch/internal/jikan"
)

const (
	DefaultHTTPHost = "127.0.0.1"
	DefaultHTTPPort = 7474
)

// Load loads configuration from multiple sources:
// 1. Config file (config.yaml or $HOME/.animewatch.yaml, optional)
// 2. Environment variables (ANIMEWATCH_*)
// 3. Flags bound in cmd/animewatch
func Load() (*domain.Config, error) {
	cfg := &domain.Config{}

	cfg.DataDir = viper.GetString("data_dir")
	if cfg.DataDir == "" {
		cfg.DataDir = DefaultDataDir()
	}

	cfg.LogLevel = viper.GetString("log_level")
	cfg.DiscordWebhookURL = viper.GetString("discord_webhook_url")

	// Storage backend (default: "sqlite")
	storageStr := viper.GetString("storage.backend")
	if storageStr == "" {
		cfg.StorageBackend = domain.StorageBackendSQLite
	} else {
		cfg.StorageBackend = domain.StorageBackend(storageStr)
		if cfg.StorageBackend != domain.StorageBackendSQLite &&
			cfg.StorageBackend != domain.StorageBackendFile {
			return nil, fmt.Errorf("invalid storage.backend: %s (must be 'sqlite' or 'file')", storageStr)
		}
	}

	// Cache backend (default: "memory")
	cacheStr := viper.GetString("cache.backend")
	if cacheStr == "" {
		cfg.CacheBackend = domain.CacheBackendMemory
	} else {
		cfg.CacheBackend = domain.CacheBackend(cacheStr)
		if cfg.CacheBackend != domain.CacheBackendMemory &&
			cfg.CacheBackend != domain.CacheBackendSQLite {
			return nil, fmt.Errorf("invalid cache.backend: %s (must be 'memory' or 'sqlite')", cacheStr)
		}
	}

	cfg.CacheTTL = viper.GetDuration("cache.ttl")
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = cache.DefaultTTL
	}
	if cfg.CacheTTL < 0 {
		return nil, fmt.Errorf("invalid cache.ttl: %s (must be positive)", cfg.CacheTTL)
	}

	cfg.JikanBaseURL = viper.GetString("jikan.base_url")
	if cfg.JikanBaseURL == "" {
		cfg.JikanBaseURL = jikan.DefaultBaseURL
	}

	cfg.JikanTimeout = viper.GetDuration("jikan.timeout")
	if cfg.JikanTimeout <= 0 {
		cfg.JikanTimeout = jikan.DefaultTimeout
	}

	cfg.JikanRatePerSec = jikan.DefaultRatePerSecond
	if viper.IsSet("jikan.rate_per_second") {
		cfg.JikanRatePerSec = viper.GetFloat64("jikan.rate_per_second")
		if cfg.JikanRatePerSec < 0 {
			return nil, fmt.Errorf("invalid jikan.rate_per_second: %v (must be >= 0, 0 disables limiting)", cfg.JikanRatePerSec)
		}
	}

	cfg.HTTPHost = viper.GetString("http.host")
	if cfg.HTTPHost == "" {
		cfg.HTTPHost = DefaultHTTPHost
	}

	cfg.HTTPPort = viper.GetInt("http.port")
	if cfg.HTTPPort == 0 {
		cfg.HTTPPort = DefaultHTTPPort
	}
	if cfg.HTTPPort < 0 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("invalid http.port: %d", cfg.HTTPPort)
	}

	return cfg, nil
}

// DefaultDataDir is $HOME/.animewatch, or ./.animewatch without a home directory
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".animewatch"
	}
	return filepath.Join(home, ".animewatch")
}
