// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/cinematch/internal/metrics"
)

func chiAdapter(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

func TestPrometheusMetrics(t *testing.T) {
	t.Run("passes status through", func(t *testing.T) {
		handler := PrometheusMetrics(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		})

		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/raw/path", nil))

		if rec.Code != http.StatusTeapot {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusTeapot)
		}
		got := testutil.ToFloat64(metrics.APIRequestsTotal.WithLabelValues("GET", "/raw/path", "418"))
		if got < 1 {
			t.Errorf("api_requests_total{/raw/path,418} = %v, want >= 1", got)
		}
	})

	t.Run("implicit 200", func(t *testing.T) {
		handler := PrometheusMetrics(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("ok"))
		})

		before := testutil.ToFloat64(metrics.APIRequestsTotal.WithLabelValues("GET", "/implicit", "200"))
		handler(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/implicit", nil))
		after := testutil.ToFloat64(metrics.APIRequestsTotal.WithLabelValues("GET", "/implicit", "200"))

		if after-before != 1 {
			t.Errorf("delta = %v, want 1", after-before)
		}
	})

	t.Run("labels by chi route pattern", func(t *testing.T) {
		r := chi.NewRouter()
		r.Use(chiAdapter(PrometheusMetrics))
		r.Get("/movies/{movieID}/similar", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		pattern := metrics.APIRequestsTotal.WithLabelValues("GET", "/movies/{movieID}/similar", "404")
		before := testutil.ToFloat64(pattern)

		for _, id := range []string{"1", "2", "3"} {
			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/movies/"+id+"/similar", nil))
		}

		if d := testutil.ToFloat64(pattern) - before; d != 3 {
			t.Errorf("pattern delta = %v, want 3", d)
		}
		if v := testutil.ToFloat64(metrics.APIRequestsTotal.WithLabelValues("GET", "/movies/1/similar", "404")); v != 0 {
			t.Errorf("raw path label recorded %v times, want 0", v)
		}
	})

	t.Run("active requests return to baseline", func(t *testing.T) {
		base := testutil.ToFloat64(metrics.APIActiveRequests)
		var during float64
		handler := PrometheusMetrics(func(w http.ResponseWriter, r *http.Request) {
			during = testutil.ToFloat64(metrics.APIActiveRequests)
		})

		handler(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/active", nil))

		if during != base+1 {
			t.Errorf("active during request = %v, want %v", during, base+1)
		}
		if after := testutil.ToFloat64(metrics.APIActiveRequests); after != base {
			t.Errorf("active after request = %v, want %v", after, base)
		}
	})
}

func TestMetricsResponseWriter(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &metricsResponseWriter{ResponseWriter: rec, statusCode: http.StatusOK}

	rw.WriteHeader(http.StatusCreated)
	rw.WriteHeader(http.StatusInternalServerError)

	if rw.statusCode != http.StatusCreated {
		t.Errorf("statusCode = %d, want first written %d", rw.statusCode, http.StatusCreated)
	}
	if rw.Unwrap() != rec {
		t.Error("Unwrap did not return the underlying writer")
	}
}
