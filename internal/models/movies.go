// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package models

// MovieList is the selector source: every distinct title, sorted.
type MovieList struct {
	Total  int      `json:"total"`
	Titles []string `json:"titles"`
}

// RecommendationCard is one similar movie with its OMDb metadata.
// Plot, Poster and Rating hold "N/A" when OMDb had nothing.
type RecommendationCard struct {
	Rank    int     `json:"rank"`
	MovieID int64   `json:"movie_id"`
	Title   string  `json:"title"`
	Score   float64 `json:"score"`
	Plot    string  `json:"plot"`
	Poster  string  `json:"poster"`
	Rating  string  `json:"rating"`
}

// RecommendationsResponse answers a similarity query. Cards is empty, and
// Notice explains why, when the title is not in the catalog.
type RecommendationsResponse struct {
	Query  string               `json:"query"`
	Count  int                  `json:"count"`
	Found  int                  `json:"found"`
	Notice string               `json:"notice,omitempty"`
	Cards  []RecommendationCard `json:"cards"`
}

// MovieDetails is the metadata for a single title.
type MovieDetails struct {
	Title  string `json:"title"`
	Plot   string `json:"plot"`
	Poster string `json:"poster"`
	Rating string `json:"rating"`
}

// HealthStatus is returned by the readiness probe.
type HealthStatus struct {
	Status       string      `json:"status"`
	Version      string      `json:"version"`
	Movies       int         `json:"movies"`
	Positional   bool        `json:"positional,omitempty"`
	BreakerState string      `json:"omdb_breaker_state,omitempty"`
	Memo         *MemoHealth `json:"memo,omitempty"`
	Uptime       float64     `json:"uptime_seconds"`
}

// MemoHealth summarizes the metadata memo.
type MemoHealth struct {
	Entries        int     `json:"entries"`
	HitRatePercent float64 `json:"hit_rate_percent"`
}
