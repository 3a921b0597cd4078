// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package recommend answers "which movies are most like this one" from the
// precomputed similarity matrix held by a catalog.Catalog.
//
// A lookup folds the query title to lower case, finds the first catalog entry
// with that title, ranks every other movie by its score in that entry's row
// and returns the top N. Equal scores keep catalog order. The query movie is
// excluded by ID, so a self-similarity below another score never leaks it
// into the results.
//
// An unknown title is not an error: Similar returns an empty slice.
//
// Recommender holds no mutable state and is safe for concurrent use.
package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/metrics"
)

// ErrInvalidCount is returned when the requested result count is not positive.
var ErrInvalidCount = errors.New("result count must be positive")

// Recommendation is one ranked result.
type Recommendation struct {
	// Rank is 1-based.
	Rank    int             `json:"rank"`
	MovieID catalog.MovieID `json:"movie_id"`
	Title   string          `json:"title"`
	Score   float64         `json:"score"`
}

// Recommender ranks movies by precomputed similarity.
type Recommender struct {
	catalog *catalog.Catalog
	titles  []string
	logger  zerolog.Logger
}

// NewRecommender builds a Recommender over c.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRecommender(c *catalog.Catalog, logger zerolog.Logger) *Recommender {
	return &Recommender{
		catalog: c,
		titles:  c.Titles(),
		logger:  logger.With().Str("component", "recommend").Logger(),
	}
}

// Titles returns the sorted, de-duplicated titles for the selector. The
// returned slice is shared and must not be modified.
func (r *Recommender) Titles() []string {
	return r.titles
}

// Catalog returns the underlying catalog.
func (r *Recommender) Catalog() *catalog.Catalog {
	return r.catalog
}

// Similar returns up to n movies most similar to title. A title that is not
// in the catalog yields an empty, non-nil slice and a nil error.
func (r *Recommender) Similar(ctx context.Context, title string, n int) ([]Recommendation, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCount, n)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	entry, ok := r.catalog.ByTitle(title)
	if !ok {
		metrics.RecordRecommendLookup("title", "miss", time.Since(start))
		r.logger.Debug().Str("title", title).Msg("title not in catalog")
		return []Recommendation{}, nil
	}

	recs := r.rank(entry, n)
	metrics.RecordRecommendLookup("title", "hit", time.Since(start))
	r.logger.Debug().
		Str("title", title).
		Int64("movie_id", int64(entry.Movie.ID)).
		Int("requested", n).
		Int("returned", len(recs)).
		Msg("recommendations computed")

	return recs, nil
}

// SimilarByID is Similar keyed by movie ID. An unknown ID returns an error
// wrapping catalog.ErrMovieNotFound.
func (r *Recommender) SimilarByID(ctx context.Context, id catalog.MovieID, n int) ([]Recommendation, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCount, n)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	entry, err := r.catalog.ByID(id)
	if err != nil {
		metrics.RecordRecommendLookup("id", "miss", time.Since(start))
		return nil, err
	}

	recs := r.rank(entry, n)
	metrics.RecordRecommendLookup("id", "hit", time.Since(start))
	return recs, nil
}

// rank sorts every other movie by descending score and keeps the first n.
func (r *Recommender) rank(entry catalog.Entry, n int) []Recommendation {
	candidates := make([]int, 0, len(entry.Scores)-1)
	for j := range entry.Scores {
		if j != entry.Index {
			candidates = append(candidates, j)
		}
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		return entry.Scores[candidates[a]] > entry.Scores[candidates[b]]
	})

	if n > len(candidates) {
		n = len(candidates)
	}

	recs := make([]Recommendation, n)
	for k := 0; k < n; k++ {
		j := candidates[k]
		m := r.catalog.Movie(j)
		recs[k] = Recommendation{
			Rank:    k + 1,
			MovieID: m.ID,
			Title:   m.Title,
			Score:   entry.Scores[j],
		}
	}
	return recs
}
