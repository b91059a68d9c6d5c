package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	TMDB    TMDBConfig    `mapstructure:"tmdb"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Search  SearchConfig  `mapstructure:"search"`
	Grid    GridConfig    `mapstructure:"grid"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// TMDBConfig holds TMDB API connection details
type TMDBConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	APIKey       string        `mapstructure:"api_key"`
	Timeout      time.Duration `mapstructure:"timeout"`
	ImageBaseURL string        `mapstructure:"image_base_url"`
	RateLimit    int           `mapstructure:"rate_limit"`
	RateWindow   time.Duration `mapstructure:"rate_window"`
}

// CacheConfig controls the in-memory response cache
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Size    int           `mapstructure:"size"`
	TTL     time.Duration `mapstructure:"ttl"`
}

// CatalogConfig shapes listing and search results
type CatalogConfig struct {
	// Filter is an expression movies must match to be shown; empty keeps all
	Filter string `mapstructure:"filter"`
}

// SearchConfig contains search input settings
type SearchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// GridConfig contains movie grid settings
type GridConfig struct {
	LoadMoreThreshold int  `mapstructure:"load_more_threshold"`
	DateBound         bool `mapstructure:"date_bound"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
