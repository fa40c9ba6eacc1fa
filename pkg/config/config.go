// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines configuration structures for server, feeds, proxies, cache and logging

package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Feeds contains aggregation pipeline configuration
	Feeds FeedsConfig

	// Proxies contains the proxy service endpoints
	Proxies ProxyConfig

	// Cache contains cache configuration
	Cache CacheConfig

	// Log contains logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string

	// RateLimit is the sustained requests per second allowed per client IP
	RateLimit float64

	// RateBurst is the burst size allowed per client IP
	RateBurst int
}

// FeedsConfig holds feed aggregation settings
type FeedsConfig struct {
	// Registry is a file path or http(s) URL of the feed registry document
	Registry string

	// ItemsPerFeed is the maximum number of posts kept per feed
	ItemsPerFeed int

	// RefreshInterval is how often ready feeds are re-fetched
	RefreshInterval time.Duration

	// RequestTimeout bounds every proxy request attempt
	RequestTimeout time.Duration

	// MaxRetries is the number of retries after the first attempt
	MaxRetries int

	// BaseDelay is the first backoff delay between attempts
	BaseDelay time.Duration

	// LoadStagger separates the initial fetch of consecutive feeds
	LoadStagger time.Duration

	// RetryDelayStep scales the delay before a manual retry
	RetryDelayStep time.Duration

	// MaxManualRetries caps manual retries per feed
	MaxManualRetries int
}

// ProxyConfig holds the proxy service endpoints tried in order
type ProxyConfig struct {
	// PrimaryURL is the JSON aggregator endpoint
	PrimaryURL string

	// PrimaryAPIKey is passed to the aggregator when set
	PrimaryAPIKey string

	// RelayURL is the raw content relay endpoint
	RelayURL string

	// DirectURL is the CORS relay prefix for direct fetches
	DirectURL string
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (redis/memory/none)
	Type string

	// TTL is how long a fetched feed result is reused
	TTL time.Duration

	// Redis contains Redis-specific configuration
	Redis RedisConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int

	// KeyPrefix namespaces every key written by this service
	KeyPrefix string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
	File   string
}

// LoadFromEnv loads configuration from environment variables.
// A .env file in the working directory is read first when present.
func LoadFromEnv() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:      getEnvOrDefault("PORT", "8000"),
			RateLimit: getEnvAsFloatOrDefault("RATE_LIMIT", 5),
			RateBurst: getEnvAsIntOrDefault("RATE_BURST", 20),
		},
		Feeds: FeedsConfig{
			Registry:         getEnvOrDefault("FEED_REGISTRY", "blogs.json"),
			ItemsPerFeed:     getEnvAsIntOrDefault("ITEMS_PER_FEED", 5),
			RefreshInterval:  getEnvAsDurationOrDefault("REFRESH_INTERVAL", 10*time.Minute),
			RequestTimeout:   getEnvAsDurationOrDefault("REQUEST_TIMEOUT", 10*time.Second),
			MaxRetries:       getEnvAsIntOrDefault("FETCH_MAX_RETRIES", 3),
			BaseDelay:        getEnvAsDurationOrDefault("FETCH_BASE_DELAY", time.Second),
			LoadStagger:      getEnvAsDurationOrDefault("LOAD_STAGGER", 500*time.Millisecond),
			RetryDelayStep:   getEnvAsDurationOrDefault("RETRY_DELAY_STEP", 2*time.Second),
			MaxManualRetries: getEnvAsIntOrDefault("MAX_MANUAL_RETRIES", 3),
		},
		Proxies: ProxyConfig{
			PrimaryURL:    getEnvOrDefault("PRIMARY_PROXY_URL", "https://api.rss2json.com/v1/api.json"),
			PrimaryAPIKey: getEnvOrDefault("PRIMARY_PROXY_API_KEY", ""),
			RelayURL:      getEnvOrDefault("RELAY_PROXY_URL", "https://api.allorigins.win/get"),
			DirectURL:     getEnvOrDefault("DIRECT_PROXY_URL", "https://cors-anywhere.herokuapp.com/"),
		},
		Cache: CacheConfig{
			Type: getEnvOrDefault("CACHE_TYPE", "memory"),
			TTL:  getEnvAsDurationOrDefault("CACHE_TTL", 5*time.Minute),
			Redis: RedisConfig{
				Address:   getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password:  getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:        getEnvAsIntOrDefault("REDIS_DB", 0),
				KeyPrefix: getEnvOrDefault("REDIS_KEY_PREFIX", "portfolio-feeds:"),
			},
		},
		Log: LogConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "json"),
			File:   getEnvOrDefault("LOG_FILE", ""),
		},
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloatOrDefault returns the environment variable as float64 or a default
func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsDurationOrDefault accepts Go durations ("10m") or plain milliseconds
func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if ms, err := strconv.Atoi(value); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	return defaultValue
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Feeds.Registry == "" {
		return errors.New("feed registry cannot be empty")
	}

	if c.Feeds.ItemsPerFeed < 1 {
		return errors.New("items per feed must be at least 1")
	}

	if c.Feeds.RefreshInterval < time.Second {
		return errors.New("refresh interval must be at least 1 second")
	}

	if c.Feeds.RequestTimeout <= 0 {
		return errors.New("request timeout must be positive")
	}

	if c.Feeds.MaxRetries < 0 || c.Feeds.MaxManualRetries < 0 {
		return errors.New("retry counts cannot be negative")
	}

	if c.Proxies.PrimaryURL == "" || c.Proxies.RelayURL == "" {
		return errors.New("primary and relay proxy urls cannot be empty")
	}

	switch c.Cache.Type {
	case "redis":
		if c.Cache.Redis.Address == "" {
			return errors.New("redis address cannot be empty when using redis cache")
		}
	case "memory", "none":
	default:
		return errors.New("cache type must be 'redis', 'memory' or 'none'")
	}

	return nil
}
