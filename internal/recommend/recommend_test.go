// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/metrics"
)

// newTestRecommender builds a five-movie catalog:
//
//	0 Avatar      1 Aliens     2 Titanic    3 The Abyss    4 avatar (remake)
func newTestRecommender(t *testing.T) *Recommender {
	t.Helper()

	table := catalog.Table{Movies: []catalog.Movie{
		{ID: 100, Title: "Avatar"},
		{ID: 200, Title: "Aliens"},
		{ID: 300, Title: "Titanic"},
		{ID: 400, Title: "The Abyss"},
		{ID: 500, Title: "avatar"},
	}}
	matrix := catalog.Matrix{
		IDs: []catalog.MovieID{100, 200, 300, 400, 500},
		Scores: [][]float64{
			{1.0, 0.7, 0.2, 0.7, 0.9},
			{0.7, 1.0, 0.1, 0.8, 0.3},
			{0.2, 0.1, 1.0, 0.4, 0.2},
			{0.7, 0.8, 0.4, 1.0, 0.5},
			// self-similarity is not the row maximum here
			{0.9, 0.3, 0.2, 0.5, 0.4},
		},
	}

	c, err := catalog.New(table, matrix)
	if err != nil {
		t.Fatalf("catalog.New() error = %v", err)
	}
	return NewRecommender(c, zerolog.Nop())
}

func titles(recs []Recommendation) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Title
	}
	return out
}

func TestSimilar(t *testing.T) {
	t.Parallel()
	r := newTestRecommender(t)

	tests := []struct {
		name  string
		title string
		n     int
		want  []string
	}{
		{"top two", "Avatar", 2, []string{"avatar", "Aliens"}},
		{"case insensitive", "AVATAR", 1, []string{"avatar"}},
		{"ties keep catalog order", "Avatar", 3, []string{"avatar", "Aliens", "The Abyss"}},
		{"n beyond corpus", "Titanic", 50, []string{"The Abyss", "Avatar", "avatar", "Aliens"}},
		{"self excluded by id", "The Abyss", 4, []string{"Aliens", "Avatar", "avatar", "Titanic"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			recs, err := r.Similar(context.Background(), tt.title, tt.n)
			if err != nil {
				t.Fatalf("Similar() error = %v", err)
			}
			got := titles(recs)
			if len(got) != len(tt.want) {
				t.Fatalf("Similar() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("Similar() = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestSimilarProperties(t *testing.T) {
	t.Parallel()
	r := newTestRecommender(t)
	ctx := context.Background()

	for _, m := range r.Catalog().Movies() {
		for n := 1; n <= 6; n++ {
			recs, err := r.SimilarByID(ctx, m.ID, n)
			if err != nil {
				t.Fatalf("SimilarByID(%d, %d) error = %v", m.ID, n, err)
			}

			want := n
			if want > r.Catalog().Len()-1 {
				want = r.Catalog().Len() - 1
			}
			if len(recs) != want {
				t.Errorf("SimilarByID(%d, %d) returned %d results, want %d", m.ID, n, len(recs), want)
			}

			for i, rec := range recs {
				if rec.MovieID == m.ID {
					t.Errorf("SimilarByID(%d) included the query movie", m.ID)
				}
				if rec.Rank != i+1 {
					t.Errorf("rank = %d, want %d", rec.Rank, i+1)
				}
				if i > 0 && rec.Score > recs[i-1].Score {
					t.Errorf("scores not non-increasing: %v then %v", recs[i-1].Score, rec.Score)
				}
			}
		}
	}
}

func TestSimilarSelfAtLowerScoreExcluded(t *testing.T) {
	t.Parallel()
	r := newTestRecommender(t)

	// Movie 500 scores itself 0.4, below Avatar and The Abyss.
	recs, err := r.SimilarByID(context.Background(), 500, 4)
	if err != nil {
		t.Fatal(err)
	}
	for _, rec := range recs {
		if rec.MovieID == 500 {
			t.Fatalf("query movie returned: %+v", recs)
		}
	}
	if recs[0].MovieID != 100 {
		t.Errorf("first result = %d, want 100", recs[0].MovieID)
	}
}

func TestSimilarUnknownTitle(t *testing.T) {
	t.Parallel()
	r := newTestRecommender(t)

	recs, err := r.Similar(context.Background(), "Nonexistent Movie", 10)
	if err != nil {
		t.Fatalf("Similar() error = %v, want nil", err)
	}
	if recs == nil || len(recs) != 0 {
		t.Errorf("Similar() = %v, want empty non-nil slice", recs)
	}
}

func TestSimilarInvalidCount(t *testing.T) {
	t.Parallel()
	r := newTestRecommender(t)

	for _, n := range []int{0, -1} {
		if _, err := r.Similar(context.Background(), "Avatar", n); !errors.Is(err, ErrInvalidCount) {
			t.Errorf("Similar(n=%d) error = %v, want ErrInvalidCount", n, err)
		}
		if _, err := r.SimilarByID(context.Background(), 100, n); !errors.Is(err, ErrInvalidCount) {
			t.Errorf("SimilarByID(n=%d) error = %v, want ErrInvalidCount", n, err)
		}
	}
}

func TestSimilarByIDNotFound(t *testing.T) {
	t.Parallel()
	r := newTestRecommender(t)

	if _, err := r.SimilarByID(context.Background(), 999, 5); !errors.Is(err, catalog.ErrMovieNotFound) {
		t.Errorf("SimilarByID(999) error = %v, want ErrMovieNotFound", err)
	}
}

func TestSimilarCanceledContext(t *testing.T) {
	t.Parallel()
	r := newTestRecommender(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Similar(ctx, "Avatar", 5); !errors.Is(err, context.Canceled) {
		t.Errorf("Similar() error = %v, want context.Canceled", err)
	}
}

func TestTitles(t *testing.T) {
	t.Parallel()
	r := newTestRecommender(t)

	want := []string{"Aliens", "Avatar", "The Abyss", "Titanic", "avatar"}
	got := r.Titles()
	if len(got) != len(want) {
		t.Fatalf("Titles() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Titles() = %v, want %v", got, want)
		}
	}
}

// Not parallel: reads a shared counter.
func TestSimilarRecordsMetrics(t *testing.T) {
	r := newTestRecommender(t)
	hits := metrics.RecommendLookupsTotal.WithLabelValues("title", "hit")
	misses := metrics.RecommendLookupsTotal.WithLabelValues("title", "miss")
	beforeHit, beforeMiss := testutil.ToFloat64(hits), testutil.ToFloat64(misses)

	_, _ = r.Similar(context.Background(), "Titanic", 3)
	_, _ = r.Similar(context.Background(), "Unknown", 3)

	if got := testutil.ToFloat64(hits) - beforeHit; got < 1 {
		t.Errorf("hit counter delta = %v, want >= 1", got)
	}
	if got := testutil.ToFloat64(misses) - beforeMiss; got < 1 {
		t.Errorf("miss counter delta = %v, want >= 1", got)
	}
}
