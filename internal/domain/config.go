package domain

import "time"

// StorageBackend selects where named slots are persisted
type StorageBackend string

const (
	StorageBackendSQLite StorageBackend = "sqlite"
	StorageBackendFile   StorageBackend = "file"
)

// CacheBackend selects the response cache implementation
type CacheBackend string

const (
	// CacheBackendMemory keeps responses for the lifetime of the process
	CacheBackendMemory CacheBackend = "memory"
	// CacheBackendSQLite shares responses between invocations through the database
	CacheBackendSQLite CacheBackend = "sqlite"
)

type Config struct {
	DataDir           string         `toml:"data_dir" mapstructure:"data_dir"`
	LogLevel          string         `toml:"log_level" mapstructure:"log_level"`
	StorageBackend    StorageBackend `toml:"storage_backend" mapstructure:"storage_backend"`
	CacheBackend      CacheBackend   `toml:"cache_backend" mapstructure:"cache_backend"`
	CacheTTL          time.Duration  `toml:"cache_ttl" mapstructure:"cache_ttl"`
	JikanBaseURL      string         `toml:"jikan_base_url" mapstructure:"jikan_base_url"`
	JikanTimeout      time.Duration  `toml:"jikan_timeout" mapstructure:"jikan_timeout"`
	JikanRatePerSec   float64        `toml:"jikan_rate_per_second" mapstructure:"jikan_rate_per_second"`
	HTTPHost          string         `toml:"http_host" mapstructure:"http_host"`
	HTTPPort          int            `toml:"http_port" mapstructure:"http_port"`
	DiscordWebhookURL string         `toml:"discord_webhook_url" mapstructure:"discord_webhook_url"`
}
