// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package config loads Cinematch configuration with Koanf v2.
//
// Sources, lowest to highest priority:
//  1. Built-in defaults (defaultConfig)
//  2. Optional YAML file (CONFIG_PATH, ./config.yaml, /etc/cinematch/config.yaml)
//  3. Environment variables (see envTransformFunc)
//
// The OMDb API key and both data artifact paths are required; Load fails
// without them so the process never starts half-configured.
package config

import "time"

// Config holds all application configuration. It is immutable after Load and
// safe for concurrent reads.
type Config struct {
	OMDb      OMDbConfig      `koanf:"omdb"`
	Data      DataConfig      `koanf:"data"`
	Recommend RecommendConfig `koanf:"recommend"`
	Cache     CacheConfig     `koanf:"cache"`
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// OMDbConfig configures the metadata client.
type OMDbConfig struct {
	// APIKey is the OMDb credential (OMDB_API_KEY). Required.
	APIKey string `koanf:"api_key"`

	// BaseURL is the OMDb endpoint. Query parameters are appended to it.
	BaseURL string `koanf:"base_url"`

	// Timeout bounds a single lookup.
	Timeout time.Duration `koanf:"timeout"`

	// RateLimit is the maximum outbound requests per second. 0 disables it.
	RateLimit float64 `koanf:"rate_limit"`
	RateBurst int     `koanf:"rate_burst"`

	Breaker BreakerConfig `koanf:"breaker"`
}

// BreakerConfig configures the OMDb circuit breaker.
type BreakerConfig struct {
	Enabled bool `koanf:"enabled"`

	// MaxRequests is the number of trial requests allowed while half-open.
	MaxRequests uint32 `koanf:"max_requests"`

	// Interval resets the failure counts while closed.
	Interval time.Duration `koanf:"interval"`

	// Timeout is how long the circuit stays open before going half-open.
	Timeout time.Duration `koanf:"timeout"`

	// MinRequests and FailureRatio decide when to open.
	MinRequests  uint32  `koanf:"min_requests"`
	FailureRatio float64 `koanf:"failure_ratio"`
}

// DataConfig locates the two precomputed artifacts.
type DataConfig struct {
	// MoviesPath is the movie table (.csv, .json, .parquet, .db/.sqlite).
	MoviesPath string `koanf:"movies_path"`

	// SimilarityPath is the similarity matrix (same formats).
	SimilarityPath string `koanf:"similarity_path"`
}

// RecommendConfig bounds the result-count control.
type RecommendConfig struct {
	DefaultCount int `koanf:"default_count"`
	MinCount     int `koanf:"min_count"`
	MaxCount     int `koanf:"max_count"`

	// GridColumns is the number of cards per row on the HTML page.
	GridColumns int `koanf:"grid_columns"`

	// CardBudget bounds the metadata fetches for one response. Cards not
	// filled in time hold omdb.NotAvailable. Must be below server.timeout.
	CardBudget time.Duration `koanf:"card_budget"`
}

// CacheConfig configures metadata memoization.
type CacheConfig struct {
	// TTL expires memoized metadata. 0 keeps entries for the process lifetime.
	TTL time.Duration `koanf:"ttl"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host        string        `koanf:"host"`
	Port        int           `koanf:"port"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"`
}

// SecurityConfig holds inbound rate limiting and CORS settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig is passed to logging.Init.
type LoggingConfig struct {
	Level string `koanf:"level"`

	// Format is json or console. Empty picks one from server.environment.
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration from all sources and validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// IsDevelopment reports whether the server runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "" || c.Server.Environment == "development"
}

// LogFormat returns the configured log format. When none is set, development
// logs to the console and everything else logs JSON.
func (c *Config) LogFormat() string {
	if c.Logging.Format != "" {
		return c.Logging.Format
	}
	if c.IsDevelopment() {
		return "console"
	}
	return "json"
}
