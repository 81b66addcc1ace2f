// Package config manages application configuration for the CLI front end.
// The library packages take their configuration as plain values; only the
// CLI loads it from files and environment.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"sbclient/sponsorblock"
)

// Config holds all front-end configuration.
type Config struct {
	// UserID is the local user ID sent for rate accounting. Treat it like a
	// password.
	UserID string `json:"user_id"`
	// BaseURL is the segment API root.
	BaseURL string `json:"base_url"`
	// Service is the platform of the looked-up video IDs.
	Service string `json:"service"`
	// HashPrefixLength is the number of digest characters sent on lookups.
	HashPrefixLength int `json:"hash_prefix_length"`
	// Timeout for individual HTTP requests.
	Timeout time.Duration `json:"timeout"`

	// YouTubeAPIKey enables the channel sweep command.
	YouTubeAPIKey string `json:"youtube_api_key"`

	// CachePath is where fetched segments are cached ("" disables caching).
	CachePath string `json:"cache_path"`
	// CacheTTL is how long cached entries stay fresh.
	CacheTTL time.Duration `json:"cache_ttl"`

	// SweepRequestsPerSecond paces sweep lookups.
	SweepRequestsPerSecond float64 `json:"sweep_requests_per_second"`
	// MaxRetries is the sweep's per-video retry budget.
	MaxRetries int `json:"max_retries"`
}

// DefaultConfig returns configuration with safe defaults.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:                sponsorblock.DefaultBaseURL,
		Service:                sponsorblock.DefaultService,
		HashPrefixLength:       sponsorblock.DefaultHashPrefixLength,
		Timeout:                30 * time.Second,
		CacheTTL:               time.Hour,
		SweepRequestsPerSecond: 4,
		MaxRetries:             3,
	}
}

// Load loads configuration from environment variables, config file, and
// applies defaults. Priority: env vars > config file > defaults.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if err := cfg.loadFromFile(); err != nil {
		// Config file is optional
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	cfg.loadFromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFromFile attempts to load config from sbclient.json in the current
// directory or the user config directory.
func (c *Config) loadFromFile() error {
	paths := []string{
		"sbclient.json",
		filepath.Join(os.Getenv("HOME"), ".config", "sbclient", "sbclient.json"),
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return err
		}

		if err := json.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		return nil
	}

	return os.ErrNotExist
}

// loadFromEnv overrides config with environment variables.
func (c *Config) loadFromEnv() {
	if v := os.Getenv("SBCLIENT_USER_ID"); v != "" {
		c.UserID = v
	}
	if v := os.Getenv("SBCLIENT_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("SBCLIENT_SERVICE"); v != "" {
		c.Service = v
	}
	if v := os.Getenv("SBCLIENT_HASH_PREFIX_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.HashPrefixLength = n
		}
	}
	if v := os.Getenv("SBCLIENT_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Timeout = d
		}
	}
	if v := os.Getenv("SBCLIENT_YOUTUBE_API_KEY"); v != "" {
		c.YouTubeAPIKey = v
	}
	if v := os.Getenv("SBCLIENT_CACHE_PATH"); v != "" {
		c.CachePath = v
	}
	if v := os.Getenv("SBCLIENT_CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.CacheTTL = d
		}
	}
	if v := os.Getenv("SBCLIENT_SWEEP_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.SweepRequestsPerSecond = f
		}
	}
	if v := os.Getenv("SBCLIENT_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxRetries = n
		}
	}
}

// Validate checks that configuration values are valid and consistent.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url must not be empty")
	}
	if c.HashPrefixLength < sponsorblock.MinHashPrefixLength || c.HashPrefixLength > sponsorblock.MaxHashPrefixLength {
		return fmt.Errorf("hash_prefix_length must be in [%d, %d]",
			sponsorblock.MinHashPrefixLength, sponsorblock.MaxHashPrefixLength)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache_ttl must be non-negative")
	}
	if c.SweepRequestsPerSecond < 0 {
		return fmt.Errorf("sweep_requests_per_second must be non-negative")
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max_retries must be non-negative")
	}
	return nil
}

// ClientConfig converts the loaded configuration into the core client's
// config value.
func (c *Config) ClientConfig() *sponsorblock.Config {
	cfg := sponsorblock.DefaultConfig()
	cfg.BaseURL = c.BaseURL
	cfg.Service = c.Service
	cfg.HashPrefixLength = c.HashPrefixLength
	cfg.Timeout = c.Timeout
	return cfg
}
