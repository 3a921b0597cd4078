// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package omdb fetches plot, poster and rating for a title from the OMDb API.
//
// Every field of Details independently holds either the upstream value or the
// sentinel NotAvailable. Fetch never fails: network errors, non-2xx statuses,
// undecodable bodies and "Response":"False" all degrade to NotAvailable.
// Lookup exposes the failure class for callers that need to tell them apart.
//
// The layers compose outside-in:
//
//	CachedFetcher -> BreakerClient -> Client -> OMDb
//
// None of them retry.
package omdb

import (
	"context"
	"errors"
)

// NotAvailable is the sentinel for a field OMDb did not provide.
const NotAvailable = "N/A"

var (
	// ErrNotFound is returned when OMDb answers "Response":"False".
	ErrNotFound = errors.New("omdb: title not found")

	// ErrUpstream is returned for non-2xx statuses and undecodable bodies.
	ErrUpstream = errors.New("omdb: upstream error")
)

// Details is the metadata shown on a recommendation card.
type Details struct {
	Plot   string `json:"plot"`
	Poster string `json:"poster"`
	Rating string `json:"rating"`
}

// Unavailable returns Details with every field set to NotAvailable.
func Unavailable() Details {
	return Details{Plot: NotAvailable, Poster: NotAvailable, Rating: NotAvailable}
}

func present(v string) bool {
	return v != "" && v != NotAvailable
}

// HasPlot reports whether a plot is available.
func (d Details) HasPlot() bool { return present(d.Plot) }

// HasPoster reports whether a poster URL is available.
func (d Details) HasPoster() bool { return present(d.Poster) }

// HasRating reports whether a rating is available.
func (d Details) HasRating() bool { return present(d.Rating) }

// Fetcher looks up metadata for a title. Client and BreakerClient implement it.
type Fetcher interface {
	Lookup(ctx context.Context, title string) (Details, error)
}
