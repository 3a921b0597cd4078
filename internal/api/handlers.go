// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"context"
	"time"

	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/models"
	"github.com/tomtom215/cinematch/internal/omdb"
	"github.com/tomtom215/cinematch/internal/recommend"
)

// DetailsFetcher returns metadata for a title, degrading to omdb.NotAvailable
// per field. omdb.Client, omdb.BreakerClient and omdb.CachedFetcher satisfy it.
type DetailsFetcher interface {
	Fetch(ctx context.Context, title string) omdb.Details
}

// BreakerStateFunc reports the OMDb circuit state for health output.
type BreakerStateFunc func() string

// MemoStats reports the metadata memo for health output. *cache.Cache
// satisfies it.
type MemoStats interface {
	Len() int
	HitRate() float64
}

// Handler serves the HTML page and the JSON API.
type Handler struct {
	recommender  *recommend.Recommender
	details      DetailsFetcher
	bounds       config.RecommendConfig
	breakerState BreakerStateFunc
	memo         MemoStats
	version      string
	startTime    time.Time
}

// HandlerOption customizes a Handler.
type HandlerOption func(*Handler)

// WithBreakerState exposes the circuit state on the readiness probe.
func WithBreakerState(fn BreakerStateFunc) HandlerOption {
	return func(h *Handler) { h.breakerState = fn }
}

// WithMemoStats exposes memo size and hit rate on the readiness probe.
func WithMemoStats(m MemoStats) HandlerOption {
	return func(h *Handler) { h.memo = m }
}

// WithVersion sets the version reported by health endpoints.
func WithVersion(v string) HandlerOption {
	return func(h *Handler) { h.version = v }
}

// NewHandler creates a handler over an already loaded recommender.
func NewHandler(rec *recommend.Recommender, details DetailsFetcher, bounds config.RecommendConfig, opts ...HandlerOption) *Handler {
	h := &Handler{
		recommender: rec,
		details:     details,
		bounds:      bounds,
		version:     "dev",
		startTime:   time.Now(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// buildCards fetches metadata for each recommendation in rank order. Fetches
// run one at a time; a failed fetch yields omdb.NotAvailable fields. Once the
// card budget is spent the remaining cards are filled without fetching.
func (h *Handler) buildCards(ctx context.Context, recs []recommend.Recommendation) []models.RecommendationCard {
	if h.bounds.CardBudget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.bounds.CardBudget)
		defer cancel()
	}

	cards := make([]models.RecommendationCard, 0, len(recs))
	skipped := 0
	for _, rec := range recs {
		d := omdb.Unavailable()
		if ctx.Err() == nil {
			d = h.details.Fetch(ctx, rec.Title)
		} else {
			skipped++
		}
		cards = append(cards, models.RecommendationCard{
			Rank:    rec.Rank,
			MovieID: int64(rec.MovieID),
			Title:   rec.Title,
			Score:   rec.Score,
			Plot:    d.Plot,
			Poster:  d.Poster,
			Rating:  d.Rating,
		})
	}
	if skipped > 0 {
		logging.Ctx(ctx).Warn().
			Int("skipped", skipped).
			Dur("budget", h.bounds.CardBudget).
			Msg("Card budget spent; remaining cards have no metadata")
	}
	return cards
}
