// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package api serves the Cinematch web page and JSON API on a chi router.

Routes:

	GET /                                   HTML page: selector, count slider, card grid
	GET /api/v1/movies                      sorted unique titles
	GET /api/v1/recommendations?title=&count=
	GET /api/v1/movies/{movieID}/similar?count=
	GET /api/v1/details?title=              memoized OMDb metadata
	GET /api/v1/health/live                 liveness
	GET /api/v1/health/ready                readiness with catalog size
	GET /metrics                            Prometheus

JSON responses use the models.APIResponse envelope. count defaults to the
configured default and must lie within the configured bounds (5 to 20 out of
the box); the HTML page clamps it instead of rejecting it.

An unknown title is not an error. The JSON API answers 200 with no cards and a
notice, and the page shows the same notice.

Metadata for each card is fetched sequentially in rank order through a
DetailsFetcher, which in production is the memoizing omdb.CachedFetcher.
*/
package api
