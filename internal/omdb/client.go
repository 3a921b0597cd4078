// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package omdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metrics"
)

// maxErrorBodySize limits how much of an error response is read for logging.
const maxErrorBodySize = 64 * 1024

// apiResponse is the subset of the OMDb title response Cinematch reads.
// Pointers distinguish a missing field from an empty one.
type apiResponse struct {
	Response   string  `json:"Response"`
	Error      string  `json:"Error"`
	Plot       *string `json:"Plot"`
	Poster     *string `json:"Poster"`
	IMDbRating *string `json:"imdbRating"`
}

// Client performs one GET per lookup against OMDb.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates an OMDb client. A positive cfg.RateLimit throttles
// outbound requests; callers wait for a token rather than being rejected.
func NewClient(cfg *config.OMDbConfig) *Client {
	c := &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return c
}

// APIKey returns the credential, for memo keys.
func (c *Client) APIKey() string {
	return c.apiKey
}

// Fetch returns metadata for title, or all-NotAvailable on any failure.
func (c *Client) Fetch(ctx context.Context, title string) Details {
	d, err := c.Lookup(ctx, title)
	if err != nil {
		return Unavailable()
	}
	return d
}

// Lookup returns metadata for title. Failures are logged here and returned
// wrapped: ErrNotFound, ErrUpstream, or the transport/context error.
func (c *Client) Lookup(ctx context.Context, title string) (Details, error) {
	start := time.Now()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return Unavailable(), fmt.Errorf("omdb rate limiter: %w", err)
		}
	}

	d, result, err := c.doLookup(ctx, title)
	metrics.RecordOMDbRequest(result, time.Since(start))

	if err != nil {
		event := logging.Ctx(ctx).Warn()
		if errors.Is(err, ErrNotFound) {
			event = logging.Ctx(ctx).Debug()
		}
		event.Err(err).Str("title", title).Msg("OMDb lookup failed")
		return Unavailable(), err
	}
	return d, nil
}

func (c *Client) doLookup(ctx context.Context, title string) (Details, string, error) {
	params := url.Values{}
	params.Set("t", title)
	params.Set("plot", "full")
	params.Set("apikey", c.apiKey)

	reqURL := strings.TrimRight(c.baseURL, "/") + "/?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return Details{}, "transport_error", fmt.Errorf("failed to build omdb request: %w", redact(err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Details{}, "transport_error", fmt.Errorf("omdb request for %q: %w", title, redact(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body := readBodyForError(resp.Body)
		return Details{}, "upstream_error", fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, body)
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Details{}, "upstream_error", fmt.Errorf("%w: failed to decode response: %v", ErrUpstream, err)
	}

	if payload.Response != "True" {
		return Details{}, "not_found", fmt.Errorf("%w: %q: %s", ErrNotFound, title, payload.Error)
	}

	return Details{
		Plot:   valueOr(payload.Plot),
		Poster: valueOr(payload.Poster),
		Rating: valueOr(payload.IMDbRating),
	}, "ok", nil
}

func valueOr(v *string) string {
	if v == nil {
		return NotAvailable
	}
	return *v
}

// redact strips the request URL, which carries the API key, from transport errors.
func redact(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return fmt.Errorf("%s: %w", uerr.Op, uerr.Err)
	}
	return err
}

// readBodyForError reads at most maxErrorBodySize bytes of an error body.
func readBodyForError(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return "(failed to read response body)"
	}
	if len(body) == maxErrorBodySize {
		return string(body) + "\n... (truncated)"
	}
	return string(body)
}
