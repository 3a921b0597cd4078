// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package config

import (
	"fmt"
	"time"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateOMDb(); err != nil {
		return err
	}

	if err := c.validateData(); err != nil {
		return err
	}

	if err := c.validateRecommend(); err != nil {
		return err
	}

	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateTimeouts(); err != nil {
		return err
	}

	if err := c.validateRateLimits(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateOMDb checks the metadata client settings. A missing key is fatal:
// the app refuses to start rather than render cards that can never be filled.
func (c *Config) validateOMDb() error {
	if c.OMDb.APIKey == "" {
		return fmt.Errorf("OMDB_API_KEY is required")
	}
	if err := validateHTTPURL(c.OMDb.BaseURL, "OMDB_BASE_URL"); err != nil {
		return err
	}
	if c.OMDb.Timeout <= 0 {
		return fmt.Errorf("OMDB_TIMEOUT must be positive")
	}
	if c.OMDb.RateLimit < 0 {
		return fmt.Errorf("OMDB_RATE_LIMIT must not be negative")
	}
	if c.OMDb.RateLimit > 0 && c.OMDb.RateBurst < 1 {
		return fmt.Errorf("OMDB_RATE_BURST must be at least 1 when OMDB_RATE_LIMIT is set")
	}
	return c.validateBreaker()
}

func (c *Config) validateBreaker() error {
	b := c.OMDb.Breaker
	if !b.Enabled {
		return nil
	}
	if b.FailureRatio <= 0 || b.FailureRatio > 1 {
		return fmt.Errorf("omdb.breaker.failure_ratio must be in (0, 1]")
	}
	if b.MaxRequests == 0 {
		return fmt.Errorf("omdb.breaker.max_requests must be at least 1")
	}
	if b.Timeout <= 0 {
		return fmt.Errorf("OMDB_BREAKER_OPEN must be positive")
	}
	return nil
}

func (c *Config) validateData() error {
	if c.Data.MoviesPath == "" {
		return fmt.Errorf("MOVIES_PATH is required")
	}
	if c.Data.SimilarityPath == "" {
		return fmt.Errorf("SIMILARITY_PATH is required")
	}
	return nil
}

// validateRecommend enforces 1 <= min <= default <= max.
func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.MinCount < 1 {
		return fmt.Errorf("RECOMMEND_MIN_COUNT must be at least 1")
	}
	if r.MaxCount < r.MinCount {
		return fmt.Errorf("RECOMMEND_MAX_COUNT (%d) must be >= RECOMMEND_MIN_COUNT (%d)", r.MaxCount, r.MinCount)
	}
	if r.DefaultCount < r.MinCount || r.DefaultCount > r.MaxCount {
		return fmt.Errorf("RECOMMEND_DEFAULT_COUNT must be between %d and %d", r.MinCount, r.MaxCount)
	}
	if r.GridColumns < 1 {
		return fmt.Errorf("RECOMMEND_GRID_COLUMNS must be at least 1")
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

// validateTimeouts keeps a response with failing metadata inside the write
// deadline: the card budget ends before server.timeout, and a single OMDb
// call takes at most half of it.
func (c *Config) validateTimeouts() error {
	budget := c.Recommend.CardBudget
	if budget <= 0 {
		return fmt.Errorf("RECOMMEND_CARD_BUDGET must be positive")
	}
	if budget >= c.Server.Timeout {
		return fmt.Errorf("RECOMMEND_CARD_BUDGET (%v) must be less than HTTP_TIMEOUT (%v)", budget, c.Server.Timeout)
	}
	if 2*c.OMDb.Timeout > c.Server.Timeout {
		return fmt.Errorf("OMDB_TIMEOUT (%v) must be at most half of HTTP_TIMEOUT (%v)", c.OMDb.Timeout, c.Server.Timeout)
	}
	return nil
}

// Rate limit constants
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
