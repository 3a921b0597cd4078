// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package services adapts Cinematch components to suture's Serve(ctx) model.
//
//   - HTTPServerService runs an *http.Server and shuts it down gracefully.
//   - CacheSweeperService periodically removes expired memo entries.
package services
