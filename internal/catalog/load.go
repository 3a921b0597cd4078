// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metrics"
)

// Format identifies an artifact encoding.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatJSON    Format = "json"
	FormatParquet Format = "parquet"
	FormatSQLite  Format = "sqlite"
)

// DetectFormat picks the format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	case ".parquet":
		return FormatParquet, nil
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	default:
		return "", fmt.Errorf("unsupported artifact extension %q", filepath.Ext(path))
	}
}

// Load reads both artifacts and joins them. Any error here is meant to stop
// the process: the catalog is never served partially loaded.
func Load(ctx context.Context, moviesPath, similarityPath string) (*Catalog, error) {
	start := time.Now()

	table, err := ReadTable(ctx, moviesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read movie table %s: %w", moviesPath, err)
	}

	matrix, err := ReadMatrix(ctx, similarityPath, table)
	if err != nil {
		return nil, fmt.Errorf("failed to read similarity matrix %s: %w", similarityPath, err)
	}

	c, err := New(table, matrix)
	if err != nil {
		return nil, fmt.Errorf("failed to join movie table and similarity matrix: %w", err)
	}

	if c.Positional() {
		logging.Warn().
			Str("movies_path", moviesPath).
			Str("similarity_path", similarityPath).
			Msg("Artifacts joined by row position; add movie_id columns to join by ID")
	}

	metrics.CatalogMovies.Set(float64(c.Len()))
	metrics.CatalogLoadDuration.Observe(time.Since(start).Seconds())

	logging.Info().
		Int("movies", c.Len()).
		Dur("duration", time.Since(start)).
		Msg("Catalog loaded")

	return c, nil
}

// ReadTable reads a movie table in any supported format.
func ReadTable(ctx context.Context, path string) (Table, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return Table{}, err
	}

	switch format {
	case FormatCSV:
		return readTableCSV(path)
	case FormatJSON:
		return readTableJSON(path)
	case FormatParquet:
		return readTableParquet(ctx, path)
	default:
		return readTableSQLite(ctx, path)
	}
}

// ReadMatrix reads a similarity matrix in any supported format. Long-form
// sources are expanded against table's IDs.
func ReadMatrix(ctx context.Context, path string, table Table) (Matrix, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return Matrix{}, err
	}

	switch format {
	case FormatCSV:
		return readMatrixCSV(path)
	case FormatJSON:
		return readMatrixJSON(path)
	case FormatParquet:
		return readMatrixParquet(ctx, path, table)
	default:
		return readMatrixSQLite(ctx, path, table)
	}
}

// pair is one row of a long-form similarity source.
type pair struct {
	movieID MovieID
	otherID MovieID
	score   float64
}

// matrixFromPairs expands long-form rows into a square matrix in table order.
// A missing diagonal defaults to 1.0; any other missing pair is an error.
func matrixFromPairs(table Table, pairs []pair) (Matrix, error) {
	n := len(table.Movies)
	ids := make([]MovieID, n)
	index := make(map[MovieID]int, n)
	for i, m := range table.Movies {
		ids[i] = m.ID
		index[m.ID] = i
	}

	scores := make([][]float64, n)
	filled := make([][]bool, n)
	for i := range scores {
		scores[i] = make([]float64, n)
		filled[i] = make([]bool, n)
	}

	for _, p := range pairs {
		i, ok := index[p.movieID]
		if !ok {
			return Matrix{}, fmt.Errorf("similarity movie_id %d is not in the movie table", p.movieID)
		}
		j, ok := index[p.otherID]
		if !ok {
			return Matrix{}, fmt.Errorf("similarity other_id %d is not in the movie table", p.otherID)
		}
		if filled[i][j] {
			return Matrix{}, fmt.Errorf("duplicate similarity pair (%d, %d)", p.movieID, p.otherID)
		}
		scores[i][j] = p.score
		filled[i][j] = true
	}

	for i := range scores {
		for j := range scores[i] {
			if filled[i][j] {
				continue
			}
			if i != j {
				return Matrix{}, fmt.Errorf("missing similarity pair (%d, %d)", ids[i], ids[j])
			}
			scores[i][j] = 1.0
		}
	}

	return Matrix{IDs: ids, Scores: scores}, nil
}
