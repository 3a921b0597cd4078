// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

// jsonMovie allows movie_id to be absent so positional tables can be detected.
type jsonMovie struct {
	ID       *int64 `json:"movie_id"`
	Title    string `json:"title"`
	Genres   string `json:"genres"`
	Year     int    `json:"year"`
	Overview string `json:"overview"`
}

type jsonMatrix struct {
	IDs    []MovieID   `json:"ids"`
	Scores [][]float64 `json:"scores"`
}

func readTableJSON(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, err
	}

	var rows []jsonMovie
	if err := json.Unmarshal(data, &rows); err != nil {
		return Table{}, fmt.Errorf("failed to decode movie table: %w", err)
	}
	if len(rows) == 0 {
		return Table{}, errors.New("movie table is empty")
	}

	table := Table{
		Movies:     make([]Movie, len(rows)),
		Positional: rows[0].ID == nil,
	}
	for i, row := range rows {
		if (row.ID == nil) != table.Positional {
			return Table{}, fmt.Errorf("record %d: movie_id must be set on all records or none", i)
		}
		m := Movie{
			ID:       MovieID(i),
			Title:    row.Title,
			Genres:   row.Genres,
			Year:     row.Year,
			Overview: row.Overview,
		}
		if row.ID != nil {
			m.ID = MovieID(*row.ID)
		}
		table.Movies[i] = m
	}

	return table, nil
}

// readMatrixJSON reads {"ids": [...], "scores": [[...], ...]}. Omitting ids
// makes the matrix positional.
func readMatrixJSON(path string) (Matrix, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Matrix{}, err
	}

	var raw jsonMatrix
	if err := json.Unmarshal(data, &raw); err != nil {
		return Matrix{}, fmt.Errorf("failed to decode similarity matrix: %w", err)
	}
	if len(raw.Scores) == 0 {
		return Matrix{}, errors.New("similarity matrix is empty")
	}

	return Matrix(raw), nil
}
