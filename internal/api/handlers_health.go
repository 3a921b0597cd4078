// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/cinematch/internal/models"
)

// HealthLive handles liveness probe requests. It returns 200 whenever the
// process can serve HTTP.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"alive":  true,
			"uptime": time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthReady handles readiness probe requests. The catalog is loaded
// before the server starts, so readiness only fails for an empty catalog.
// An open OMDb circuit degrades cards but does not make the service unready.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	movies := 0
	positional := false
	if h.recommender != nil {
		movies = h.recommender.Catalog().Len()
		positional = h.recommender.Catalog().Positional()
	}

	health := models.HealthStatus{
		Status:     "ready",
		Version:    h.version,
		Movies:     movies,
		Positional: positional,
		Uptime:     time.Since(h.startTime).Seconds(),
	}
	if h.breakerState != nil {
		health.BreakerState = h.breakerState()
	}
	if h.memo != nil {
		health.Memo = &models.MemoHealth{
			Entries:        h.memo.Len(),
			HitRatePercent: h.memo.HitRate(),
		}
	}

	statusCode := http.StatusOK
	status := "success"
	if movies == 0 {
		statusCode = http.StatusServiceUnavailable
		status = "error"
		health.Status = "not_ready"
	} else if health.BreakerState == "open" {
		health.Status = "degraded"
	}

	respondJSON(w, statusCode, &models.APIResponse{
		Status: status,
		Data:   health,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}
