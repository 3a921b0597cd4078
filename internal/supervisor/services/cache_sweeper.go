// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package services

import (
	"context"
	"time"

	"github.com/tomtom215/cinematch/internal/logging"
)

// Sweeper removes expired entries and reports how many it removed.
// *cache.Cache satisfies it.
type Sweeper interface {
	Sweep() int
}

// CacheSweeperService calls Sweep on a fixed interval until canceled.
type CacheSweeperService struct {
	sweeper  Sweeper
	interval time.Duration
	name     string
}

// NewCacheSweeperService creates a sweeper service. name identifies the
// cache in logs and supervisor events.
func NewCacheSweeperService(name string, sweeper Sweeper, interval time.Duration) *CacheSweeperService {
	if interval <= 0 {
		interval = time.Minute
	}
	return &CacheSweeperService{
		sweeper:  sweeper,
		interval: interval,
		name:     name + "-cache-sweeper",
	}
}

// Serve implements suture.Service.
func (s *CacheSweeperService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if n := s.sweeper.Sweep(); n > 0 {
				logging.Debug().Str("service", s.name).Int("evicted", n).Msg("Expired cache entries swept")
			}
		}
	}
}

// String implements fmt.Stringer.
func (s *CacheSweeperService) String() string {
	return s.name
}
