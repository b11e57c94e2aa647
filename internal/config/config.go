// Package config loads tool settings from an optional TOML file with
// environment-variable overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Wyoming holds settings for the University of Wyoming upper-air service
// used by the sounding commands.
type Wyoming struct {
	Enabled   bool   `toml:"enabled"`
	BaseURL   string `toml:"base_url"`
	Timeout   string `toml:"timeout"`
	CacheSize int    `toml:"cache_size"`
}

// Config holds all tool settings.
type Config struct {
	DataDir    string  `toml:"data_dir"`
	CachePath  string  `toml:"cache_path"`
	Workers    int     `toml:"workers"`
	HeaderSkip int     `toml:"header_skip"`
	MaxRows    int     `toml:"max_rows"`
	LogLevel   string  `toml:"log_level"`
	LogFormat  string  `toml:"log_format"`
	Wyoming    Wyoming `toml:"wyoming"`

	// WyomingTimeout is the parsed form of Wyoming.Timeout.
	WyomingTimeout time.Duration `toml:"-"`
}

func defaults() *Config {
	return &Config{
		DataDir:    "Datasets",
		CachePath:  "preloaded_data.db",
		Workers:    0, // 0 = processor count
		HeaderSkip: 1,
		MaxRows:    549,
		LogLevel:   "info",
		LogFormat:  "text",
		Wyoming: Wyoming{
			Enabled:   false,
			BaseURL:   "https://weather.uwyo.edu/cgi-bin/sounding",
			Timeout:   "10s",
			CacheSize: 100,
		},
	}
}

// Load reads path (missing file is fine: defaults apply), applies
// environment overrides, and validates. An empty path skips the file step.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// No config file; defaults plus environment are enough.
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	applyEnv(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("WXPLOT_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("WXPLOT_CACHE_PATH"); v != "" {
		cfg.CachePath = v
	}
	if v := os.Getenv("WXPLOT_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Workers = n
		}
	}
	if v := os.Getenv("WXPLOT_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("WXPLOT_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("WXPLOT_WYOMING_ENABLED"); v != "" {
		cfg.Wyoming.Enabled = v == "true"
	}
	if v := os.Getenv("WXPLOT_WYOMING_BASE_URL"); v != "" {
		cfg.Wyoming.BaseURL = v
	}
}

func (c *Config) validate() error {
	if c.DataDir == "" {
		return errors.New("data_dir is required")
	}
	if c.CachePath == "" {
		return errors.New("cache_path is required")
	}
	if c.HeaderSkip < 0 {
		return errors.New("header_skip must not be negative")
	}
	if c.MaxRows < 0 {
		return errors.New("max_rows must not be negative")
	}

	d, err := time.ParseDuration(c.Wyoming.Timeout)
	if err != nil || d <= 0 {
		return fmt.Errorf("invalid wyoming timeout %q", c.Wyoming.Timeout)
	}
	c.WyomingTimeout = d

	if c.Wyoming.CacheSize < 1 {
		return errors.New("wyoming cache_size must be positive")
	}
	return nil
}
