package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Environment string           `mapstructure:"environment"`
	Server      ServerConfig     `mapstructure:"server"`
	Database    DatabaseConfig   `mapstructure:"database"`
	Redis       RedisConfig      `mapstructure:"redis"`
	Log         LogConfig        `mapstructure:"log"`
	Auth        AuthConfig       `mapstructure:"auth"`
	ContentAPI  ContentAPIConfig `mapstructure:"content_api"`
	Suggest     SuggestConfig    `mapstructure:"suggest"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port                int    `mapstructure:"port"`
	Host                string `mapstructure:"host"`
	ReadTimeoutSeconds  int    `mapstructure:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `mapstructure:"write_timeout_seconds"`
	IdleTimeoutSeconds  int    `mapstructure:"idle_timeout_seconds"`
}

// DatabaseConfig contains database configuration
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// RedisConfig contains Redis configuration
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LogConfig contains logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// AuthConfig contains authentication configuration
type AuthConfig struct {
	JWTSecret     string `mapstructure:"jwt_secret"`
	TokenDuration int    `mapstructure:"token_duration"` // in hours
}

// ContentAPIConfig contains configuration for the hosted full-text search provider
type ContentAPIConfig struct {
	BaseURL           string `mapstructure:"base_url"`
	APIKey            string `mapstructure:"api_key"`
	TimeoutSeconds    int    `mapstructure:"timeout_seconds"`
	RateLimitRequests int    `mapstructure:"rate_limit_requests"`
	RateLimitWindow   int    `mapstructure:"rate_limit_window"`
}

// SuggestConfig contains search suggestion tuning parameters
type SuggestConfig struct {
	DebounceMS        int `mapstructure:"debounce_ms"`
	PageSize          int `mapstructure:"page_size"`
	PerTypeLimit      int `mapstructure:"per_type_limit"`
	SnapshotSize      int `mapstructure:"snapshot_size"`
	RecentLimit       int `mapstructure:"recent_limit"`
	PopularLimit      int `mapstructure:"popular_limit"`
	PopularWindowDays int `mapstructure:"popular_window_days"`
}

// Load loads the configuration from file and environment variables
func Load() (*Config, error) {
	// Set default values
	viper.SetDefault("environment", "development")

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.read_timeout_seconds", 30)
	viper.SetDefault("server.write_timeout_seconds", 30)
	viper.SetDefault("server.idle_timeout_seconds", 120)

	viper.SetDefault("database.path", "./data/hearthloaf.db")

	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	viper.SetDefault("log.level", "info")

	viper.SetDefault("auth.jwt_secret", "change-me-in-production")
	viper.SetDefault("auth.token_duration", 24)

	viper.SetDefault("content_api.base_url", "http://localhost:9200")
	viper.SetDefault("content_api.api_key", "")
	viper.SetDefault("content_api.timeout_seconds", 10)
	viper.SetDefault("content_api.rate_limit_requests", 60)
	viper.SetDefault("content_api.rate_limit_window", 60)

	viper.SetDefault("suggest.debounce_ms", 200)
	viper.SetDefault("suggest.page_size", 8)
	viper.SetDefault("suggest.per_type_limit", 5)
	viper.SetDefault("suggest.snapshot_size", 250)
	viper.SetDefault("suggest.recent_limit", 5)
	viper.SetDefault("suggest.popular_limit", 5)
	viper.SetDefault("suggest.popular_window_days", 7)

	// Configuration file settings
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/hearthloaf")

	// Environment variable settings
	viper.SetEnvPrefix("HEARTHLOAF")
	viper.AutomaticEnv()

	// Set key replacer to handle nested keys
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read configuration file (optional)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// Config file not found, using defaults and env vars
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
