// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/cinematch/internal/cache"
	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/models"
	"github.com/tomtom215/cinematch/internal/omdb"
)

// blockingDetails waits for ctx to end on every fetch.
type blockingDetails struct {
	calls atomic.Int32
}

func (b *blockingDetails) Fetch(ctx context.Context, _ string) omdb.Details {
	b.calls.Add(1)
	<-ctx.Done()
	return omdb.Unavailable()
}

func TestBuildCards_BudgetSkipsRemainingFetches(t *testing.T) {
	t.Parallel()

	slow := &blockingDetails{}
	bounds := testBounds()
	bounds.CardBudget = 50 * time.Millisecond
	h := NewHandler(newTestRecommender(t), slow, bounds)

	recs, err := h.recommender.Similar(context.Background(), "Avatar", 5)
	if err != nil {
		t.Fatalf("Similar() error = %v", err)
	}

	start := time.Now()
	cards := h.buildCards(context.Background(), recs)
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("buildCards took %v, want about the 50ms budget", elapsed)
	}

	if len(cards) != 5 {
		t.Fatalf("len(cards) = %d, want 5", len(cards))
	}
	if got := slow.calls.Load(); got != 1 {
		t.Errorf("fetches = %d, want 1 before the budget ran out", got)
	}
	for i, c := range cards {
		if c.Plot != omdb.NotAvailable || c.Poster != omdb.NotAvailable || c.Rating != omdb.NotAvailable {
			t.Errorf("card %d = %+v, want all fields %q", i, c, omdb.NotAvailable)
		}
		if c.Title != recs[i].Title {
			t.Errorf("card %d title = %q, want %q", i, c.Title, recs[i].Title)
		}
	}
}

// A hanging OMDb must not push the response past the server write deadline.
func TestRecommendations_HangingUpstreamWithinWriteTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	t.Cleanup(func() {
		close(release)
		upstream.Close()
	})

	// Five sequential 200ms timeouts would take 1s, past the 600ms deadline.
	client := omdb.NewClient(&config.OMDbConfig{
		APIKey:  "test-key",
		BaseURL: upstream.URL,
		Timeout: 200 * time.Millisecond,
	})
	details := omdb.NewCachedFetcher(client, client.APIKey(), cache.New("test-budget", 0))

	bounds := testBounds()
	bounds.CardBudget = 250 * time.Millisecond
	h := NewHandler(newTestRecommender(t), details, bounds)

	srv := httptest.NewUnstartedServer(NewRouter(h, nil).SetupChi())
	srv.Config.WriteTimeout = 600 * time.Millisecond
	srv.Start()
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/api/v1/recommendations?title=Avatar&count=5")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var got models.RecommendationsResponse
	rec := httptest.NewRecorder()
	rec.Code = resp.StatusCode
	if _, err := rec.Body.ReadFrom(resp.Body); err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	decode(t, rec, &got)

	if len(got.Cards) != 5 {
		t.Fatalf("len(cards) = %d, want 5", len(got.Cards))
	}
	for i, c := range got.Cards {
		if c.Plot != omdb.NotAvailable || c.Poster != omdb.NotAvailable || c.Rating != omdb.NotAvailable {
			t.Errorf("card %d = %+v, want all fields %q", i, c, omdb.NotAvailable)
		}
	}
}
