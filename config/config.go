package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Search    SearchConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// SearchConfig holds the search pipeline configuration
type SearchConfig struct {
	FuzzyEnabled    bool `mapstructure:"fuzzy_enabled"`
	FuzzyThreshold  int  `mapstructure:"fuzzy_threshold"`
	CandidateCap    int  `mapstructure:"candidate_cap"`
	ExactMatchFloor int  `mapstructure:"exact_match_floor"`
	RelatedLimit    int  `mapstructure:"related_limit"`
	DebugLogging    bool `mapstructure:"debug_logging"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/shopgrid/")

	// Environment variable settings
	v.SetEnvPrefix("SHOPGRID")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Search defaults
	v.SetDefault("search.fuzzy_enabled", true)
	v.SetDefault("search.fuzzy_threshold", 70)
	v.SetDefault("search.candidate_cap", 50)
	v.SetDefault("search.exact_match_floor", 10)
	v.SetDefault("search.related_limit", 6)
	v.SetDefault("search.debug_logging", false)

	// Cache defaults
	v.SetDefault("cache.ttl", "15m")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Search.FuzzyThreshold < 0 || config.Search.FuzzyThreshold > 100 {
		return fmt.Errorf("search.fuzzy_threshold must be between 0 and 100, got: %d", config.Search.FuzzyThreshold)
	}

	if config.Search.CandidateCap <= 0 {
		return fmt.Errorf("search.candidate_cap must be positive, got: %d", config.Search.CandidateCap)
	}

	if config.Search.ExactMatchFloor <= 0 {
		return fmt.Errorf("search.exact_match_floor must be positive, got: %d", config.Search.ExactMatchFloor)
	}

	if config.Search.RelatedLimit < 0 {
		return fmt.Errorf("search.related_limit cannot be negative, got: %d", config.Search.RelatedLimit)
	}

	if config.RateLimit.PerIP <= 0 {
		return fmt.Errorf("ratelimit.per_ip must be positive, got: %d", config.RateLimit.PerIP)
	}

	return nil
}
