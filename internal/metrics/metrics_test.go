// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	counter := APIRequestsTotal.WithLabelValues("GET", "/api/v1/test-record", "200")
	before := testutil.ToFloat64(counter)

	RecordAPIRequest("GET", "/api/v1/test-record", "200", 15*time.Millisecond)

	if got := testutil.ToFloat64(counter); got != before+1 {
		t.Errorf("api_requests_total = %v, want %v", got, before+1)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("after inc = %v, want %v", got, before+1)
	}

	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("after dec = %v, want %v", got, before)
	}
}

func TestRecordRecommendLookup(t *testing.T) {
	tests := []struct {
		by     string
		result string
	}{
		{"title", "hit"},
		{"title", "miss"},
		{"id", "hit"},
		{"id", "miss"},
	}

	for _, tt := range tests {
		t.Run(tt.by+"_"+tt.result, func(t *testing.T) {
			counter := RecommendLookupsTotal.WithLabelValues(tt.by, tt.result)
			before := testutil.ToFloat64(counter)

			RecordRecommendLookup(tt.by, tt.result, time.Millisecond)

			if got := testutil.ToFloat64(counter); got != before+1 {
				t.Errorf("recommend_lookups_total{%s,%s} = %v, want %v", tt.by, tt.result, got, before+1)
			}
		})
	}
}

func TestRecordOMDbRequest(t *testing.T) {
	for _, result := range []string{"ok", "not_found", "upstream_error", "transport_error", "rejected"} {
		counter := OMDbRequestsTotal.WithLabelValues(result)
		before := testutil.ToFloat64(counter)

		RecordOMDbRequest(result, 120*time.Millisecond)

		if got := testutil.ToFloat64(counter); got != before+1 {
			t.Errorf("omdb_requests_total{%s} = %v, want %v", result, got, before+1)
		}
	}
}

func TestRecordCacheLookup(t *testing.T) {
	hits := CacheHits.WithLabelValues("test")
	misses := CacheMisses.WithLabelValues("test")

	RecordCacheLookup("test", true)
	RecordCacheLookup("test", false)
	RecordCacheLookup("test", false)

	if got := testutil.ToFloat64(hits); got != 1 {
		t.Errorf("cache_hits_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(misses); got != 2 {
		t.Errorf("cache_misses_total = %v, want 2", got)
	}
}

func TestCollectorsRegistered(t *testing.T) {
	CircuitBreakerState.WithLabelValues("test-breaker").Set(2)
	if got := testutil.ToFloat64(CircuitBreakerState.WithLabelValues("test-breaker")); got != 2 {
		t.Errorf("circuit_breaker_state = %v, want 2", got)
	}

	if n := testutil.CollectAndCount(CatalogMovies); n != 1 {
		t.Errorf("catalog_movies collected %d series, want 1", n)
	}
}
