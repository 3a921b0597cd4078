// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package middleware provides HTTP instrumentation shared by the API routes.

PrometheusMetrics records request counts, durations and in-flight requests
through the metrics package. It is written as an http.HandlerFunc wrapper and
adapted to chi's r.Use signature by the api package:

	r.Use(chiMiddleware(middleware.PrometheusMetrics))

When a chi route context is present, the endpoint label is the matched route
pattern (for example /api/v1/movies/{movieID}/similar) rather than the raw
path, which keeps label cardinality bounded.
*/
package middleware
