// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/models"
	"github.com/tomtom215/cinematch/internal/validation"
)

// RecommendationsRequest holds the query of GET /api/v1/recommendations.
// Count stays a string until it is known to be numeric.
type RecommendationsRequest struct {
	Title string `validate:"notblank"`
	Count string `validate:"omitempty,number"`
}

// SimilarRequest holds the path and query of GET /api/v1/movies/{movieID}/similar.
type SimilarRequest struct {
	MovieID string `validate:"required,number"`
	Count   string `validate:"omitempty,number"`
}

// DetailsRequest holds the query of GET /api/v1/details.
type DetailsRequest struct {
	Title string `validate:"notblank"`
}

// resolveCount applies the default to an empty raw count and checks the
// configured bounds. raw must already have passed the "number" tag.
func resolveCount(raw string, bounds *config.RecommendConfig) (int, *models.APIError) {
	if raw == "" {
		return bounds.DefaultCount, nil
	}

	count, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &models.APIError{
			Code:    "VALIDATION_ERROR",
			Message: "count must be an integer",
			Details: map[string]interface{}{"field": "count", "value": raw},
		}
	}

	tag := fmt.Sprintf("min=%d,max=%d", bounds.MinCount, bounds.MaxCount)
	if apiErr := toModelError(validation.ValidateVar("count", count, tag)); apiErr != nil {
		return 0, apiErr
	}
	return count, nil
}

func parseRecommendationsRequest(r *http.Request) RecommendationsRequest {
	q := r.URL.Query()
	return RecommendationsRequest{
		Title: strings.TrimSpace(q.Get("title")),
		Count: q.Get("count"),
	}
}

func parseSimilarRequest(r *http.Request) SimilarRequest {
	return SimilarRequest{
		MovieID: chi.URLParam(r, "movieID"),
		Count:   r.URL.Query().Get("count"),
	}
}
