package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/s0up4200/marquee/filter"
	"github.com/s0up4200/marquee/tmdb"
)

// EnvPrefix prefixes environment overrides, e.g. MARQUEE_TMDB_API_KEY
const EnvPrefix = "MARQUEE"

// Load loads the configuration from file and environment. Without an
// explicit path a missing config file is not an error, so the API key can
// come from the environment alone.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".marquee"))
		}

		// Check /etc
		v.AddConfigPath("/etc/marquee/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configPath != "" {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// TMDB defaults
	v.SetDefault("tmdb.base_url", tmdb.DefaultBaseURL)
	v.SetDefault("tmdb.api_key", "")
	v.SetDefault("tmdb.timeout", 30*time.Second)
	v.SetDefault("tmdb.image_base_url", tmdb.DefaultImageBaseURL)
	v.SetDefault("tmdb.rate_limit", 40)
	v.SetDefault("tmdb.rate_window", 10*time.Second)

	// Cache defaults
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.size", 256)
	v.SetDefault("cache.ttl", 5*time.Minute)

	// Catalog defaults
	v.SetDefault("catalog.filter", filter.DefaultExpression)

	// View defaults
	v.SetDefault("search.debounce", time.Second)
	v.SetDefault("grid.load_more_threshold", 3)
	v.SetDefault("grid.date_bound", true)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.TMDB.APIKey == "" || cfg.TMDB.APIKey == "your-api-key-here" {
		return fmt.Errorf("tmdb.api_key: %w", tmdb.ErrMissingAPIKey)
	}

	if cfg.TMDB.Timeout <= 0 {
		return fmt.Errorf("tmdb.timeout must be positive, got %s", cfg.TMDB.Timeout)
	}

	if cfg.TMDB.RateLimit < 0 {
		return fmt.Errorf("tmdb.rate_limit must not be negative, got %d", cfg.TMDB.RateLimit)
	}
	if cfg.TMDB.RateLimit > 0 && cfg.TMDB.RateWindow <= 0 {
		return fmt.Errorf("tmdb.rate_window must be positive when tmdb.rate_limit is set")
	}

	if cfg.Cache.Size < 0 {
		return fmt.Errorf("cache.size must not be negative, got %d", cfg.Cache.Size)
	}

	if cfg.Search.Debounce <= 0 {
		return fmt.Errorf("search.debounce must be positive, got %s", cfg.Search.Debounce)
	}

	if cfg.Grid.LoadMoreThreshold < 0 {
		return fmt.Errorf("grid.load_more_threshold must not be negative, got %d", cfg.Grid.LoadMoreThreshold)
	}

	if cfg.Catalog.Filter != "" {
		if _, err := filter.Compile(cfg.Catalog.Filter); err != nil {
			return fmt.Errorf("catalog.filter: %w", err)
		}
	}

	// Validate logging level
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}

// Filter compiles the configured catalog filter. It returns nil when
// filtering is disabled.
func (c *Config) Filter() (filter.CompiledFilter, error) {
	if c.Catalog.Filter == "" {
		return nil, nil
	}
	return filter.Compile(c.Catalog.Filter)
}
