// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package omdb

import (
	"context"
	"errors"

	"github.com/tomtom215/cinematch/internal/cache"
)

// CacheName labels the metadata memo in cache metrics.
const CacheName = "omdb"

// memoKey is hashed by cache.GenerateKey; the API key never appears in plain text.
type memoKey struct {
	Title  string `json:"title"`
	APIKey string `json:"api_key"`
}

// CachedFetcher memoizes metadata per (title, API key).
//
// Successful lookups and ErrNotFound answers are stored. Transport failures,
// upstream errors and breaker rejections are not, so a later request can
// still succeed.
type CachedFetcher struct {
	next   Fetcher
	apiKey string
	memo   *cache.Cache
}

// NewCachedFetcher wraps next with memo. apiKey is part of every memo key.
func NewCachedFetcher(next Fetcher, apiKey string, memo *cache.Cache) *CachedFetcher {
	return &CachedFetcher{next: next, apiKey: apiKey, memo: memo}
}

// Fetch returns memoized metadata for title, looking it up on a miss.
// It never fails; unavailable fields hold NotAvailable.
func (f *CachedFetcher) Fetch(ctx context.Context, title string) Details {
	key := cache.GenerateKey("omdb:title", memoKey{Title: title, APIKey: f.apiKey})

	if v, ok := f.memo.Get(key); ok {
		if d, ok := v.(Details); ok {
			return d
		}
	}

	d, err := f.next.Lookup(ctx, title)
	switch {
	case err == nil:
		f.memo.Set(key, d)
		return d
	case errors.Is(err, ErrNotFound):
		d = Unavailable()
		f.memo.Set(key, d)
		return d
	default:
		return Unavailable()
	}
}
