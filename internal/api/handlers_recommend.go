// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/models"
)

// noMatchesNotice is shown when a title has no recommendations.
func noMatchesNotice(title string) string {
	return fmt.Sprintf("Sorry, we couldn't find any recommendations for %s.", title)
}

// foundNotice is shown above a non-empty card grid.
func foundNotice(n int) string {
	return fmt.Sprintf("Found %d great matches for you!", n)
}

// Movies handles GET /api/v1/movies.
func (h *Handler) Movies(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	titles := h.recommender.Titles()

	respondSuccess(w, models.MovieList{
		Total:  len(titles),
		Titles: titles,
	}, start)
}

// Recommendations handles GET /api/v1/recommendations?title=&count=.
// An unknown title is not an error: the response is 200 with no cards and
// a notice.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := parseRecommendationsRequest(r)
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}
	count, apiErr := resolveCount(req.Count, &h.bounds)
	if apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	recs, err := h.recommender.Similar(r.Context(), req.Title, count)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute recommendations", err)
		return
	}

	resp := models.RecommendationsResponse{
		Query: req.Title,
		Count: count,
		Found: len(recs),
		Cards: h.buildCards(r.Context(), recs),
	}
	if len(recs) == 0 {
		resp.Notice = noMatchesNotice(req.Title)
	}

	logging.Ctx(r.Context()).Info().
		Str("title", sanitizeLogValue(req.Title)).
		Int("count", count).
		Int("found", len(recs)).
		Msg("Recommendations served")

	respondSuccess(w, resp, start)
}

// SimilarByID handles GET /api/v1/movies/{movieID}/similar?count=.
func (h *Handler) SimilarByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := parseSimilarRequest(r)
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}
	id, err := strconv.ParseInt(req.MovieID, 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "movieID must be an integer", nil)
		return
	}
	count, apiErr := resolveCount(req.Count, &h.bounds)
	if apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	recs, err := h.recommender.SimilarByID(r.Context(), catalog.MovieID(id), count)
	switch {
	case errors.Is(err, catalog.ErrMovieNotFound):
		respondError(w, http.StatusNotFound, "MOVIE_NOT_FOUND", fmt.Sprintf("No movie with ID %d", id), nil)
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute recommendations", err)
		return
	}

	// The ID resolved above, so this lookup cannot fail.
	entry, _ := h.recommender.Catalog().ByID(catalog.MovieID(id))

	respondSuccess(w, models.RecommendationsResponse{
		Query: entry.Movie.Title,
		Count: count,
		Found: len(recs),
		Cards: h.buildCards(r.Context(), recs),
	}, start)
}

// Details handles GET /api/v1/details?title=.
func (h *Handler) Details(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := DetailsRequest{Title: r.URL.Query().Get("title")}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	d := h.details.Fetch(r.Context(), req.Title)
	respondSuccess(w, models.MovieDetails{
		Title:  req.Title,
		Plot:   d.Plot,
		Poster: d.Poster,
		Rating: d.Rating,
	}, start)
}
