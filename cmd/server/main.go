// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package main is the entry point for the Cinematch server.
//
// Cinematch serves content-based movie recommendations: pick a title, get the
// most similar movies from a precomputed similarity matrix, each shown with
// plot, poster and IMDb rating from OMDb.
//
// Startup order:
//
//  1. Configuration (Koanf v2: defaults, config.yaml, environment)
//  2. Logging (zerolog)
//  3. Catalog: movie table and similarity matrix; any failure is fatal
//  4. OMDb client, circuit breaker and memo cache
//  5. HTTP router (chi)
//  6. Supervisor tree (suture) running the HTTP server and cache sweeper
//
// Required environment:
//
//	export OMDB_API_KEY=your-key
//	export MOVIES_PATH=data/movies.csv
//	export SIMILARITY_PATH=data/similarity.csv
//	./cinematch
//
// The server shuts down gracefully on SIGINT and SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/tomtom215/cinematch/internal/api"
	"github.com/tomtom215/cinematch/internal/cache"
	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/omdb"
	"github.com/tomtom215/cinematch/internal/recommend"
	"github.com/tomtom215/cinematch/internal/supervisor"
	"github.com/tomtom215/cinematch/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.LogFormat(),
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("movies_path", cfg.Data.MoviesPath).
		Str("similarity_path", cfg.Data.SimilarityPath).
		Bool("omdb_breaker", cfg.OMDb.Breaker.Enabled).
		Dur("cache_ttl", cfg.Cache.TTL).
		Msg("Starting Cinematch")
	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cat, err := catalog.Load(ctx, cfg.Data.MoviesPath, cfg.Data.SimilarityPath)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load movie data")
	}
	recommender := recommend.NewRecommender(cat, logging.Logger())

	// Lookups flow memo -> breaker -> client.
	client := omdb.NewClient(&cfg.OMDb)
	var fetcher omdb.Fetcher = client
	var handlerOpts []api.HandlerOption
	if cfg.OMDb.Breaker.Enabled {
		breaker := omdb.NewBreakerClient(client, &cfg.OMDb.Breaker)
		fetcher = breaker
		handlerOpts = append(handlerOpts, api.WithBreakerState(breaker.StateName))
	}
	memo := cache.New(omdb.CacheName, cfg.Cache.TTL)
	details := omdb.NewCachedFetcher(fetcher, client.APIKey(), memo)

	handlerOpts = append(handlerOpts, api.WithMemoStats(memo), api.WithVersion(version))
	handler := api.NewHandler(recommender, details, cfg.Recommend, handlerOpts...)
	router := api.NewRouter(handler, api.ChiMiddlewareConfigFromSecurity(&cfg.Security))

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	if memo.TTL() > 0 {
		tree.AddSupportService(services.NewCacheSweeperService(omdb.CacheName, memo, cache.SweepInterval))
	}
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	logging.Info().Str("addr", server.Addr).Int("movies", cat.Len()).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	// The channel carries exactly one value and is never closed.
	var serveErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, waiting for services to stop")
		serveErr = <-errCh
	case serveErr = <-errCh:
	}

	if serveErr != nil && !errors.Is(serveErr, context.Canceled) {
		logging.Error().Err(serveErr).Msg("Supervisor tree error")
	}

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
		}
	}

	logging.Info().Msg("Cinematch stopped")
}
