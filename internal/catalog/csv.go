// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// movieColumns maps accepted header names to Movie fields.
var movieColumns = map[string]string{
	"movie_id": "id",
	"id":       "id",
	"title":    "title",
	"genres":   "genres",
	"year":     "year",
	"overview": "overview",
}

func readTableCSV(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, err
	}
	defer f.Close()

	r := csv.NewReader(f)

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Table{}, errors.New("movie table is empty")
		}
		return Table{}, fmt.Errorf("failed to read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		if field, ok := movieColumns[strings.ToLower(strings.TrimSpace(name))]; ok {
			if _, dup := cols[field]; !dup {
				cols[field] = i
			}
		}
	}
	if _, ok := cols["title"]; !ok {
		return Table{}, errors.New("movie table has no title column")
	}
	_, hasID := cols["id"]

	table := Table{Positional: !hasID}
	for line := 2; ; line++ {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Table{}, fmt.Errorf("line %d: %w", line, err)
		}

		m, err := movieFromRecord(rec, cols, len(table.Movies))
		if err != nil {
			return Table{}, fmt.Errorf("line %d: %w", line, err)
		}
		table.Movies = append(table.Movies, m)
	}

	return table, nil
}

func movieFromRecord(rec []string, cols map[string]int, position int) (Movie, error) {
	get := func(field string) string {
		if i, ok := cols[field]; ok && i < len(rec) {
			return strings.TrimSpace(rec[i])
		}
		return ""
	}

	m := Movie{
		ID:       MovieID(position),
		Title:    rec[cols["title"]],
		Genres:   get("genres"),
		Overview: get("overview"),
	}

	if raw := get("id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Movie{}, fmt.Errorf("invalid movie_id %q", raw)
		}
		m.ID = MovieID(id)
	} else if _, hasID := cols["id"]; hasID {
		return Movie{}, errors.New("empty movie_id")
	}

	if raw := get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return Movie{}, fmt.Errorf("invalid year %q", raw)
		}
		m.Year = year
	}

	return m, nil
}

// readMatrixCSV reads either an ID-headed matrix ("movie_id,<id>,<id>,...",
// then "<id>,<score>,...") or a headerless positional one.
func readMatrixCSV(path string) (Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return Matrix{}, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	first, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Matrix{}, errors.New("similarity matrix is empty")
		}
		return Matrix{}, fmt.Errorf("failed to read first line: %w", err)
	}

	var m Matrix
	headed := len(first) > 0 && isIDHeader(first[0])
	if headed {
		m.IDs = make([]MovieID, 0, len(first)-1)
		for _, raw := range first[1:] {
			id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
			if err != nil {
				return Matrix{}, fmt.Errorf("header: invalid movie_id %q", raw)
			}
			m.IDs = append(m.IDs, MovieID(id))
		}
	} else {
		row, err := parseScores(first)
		if err != nil {
			return Matrix{}, fmt.Errorf("line 1: %w", err)
		}
		m.Scores = append(m.Scores, row)
	}

	var rowIDs []MovieID
	for line := 2; ; line++ {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Matrix{}, fmt.Errorf("line %d: %w", line, err)
		}

		if headed {
			if len(rec) == 0 {
				return Matrix{}, fmt.Errorf("line %d: empty row", line)
			}
			id, err := strconv.ParseInt(strings.TrimSpace(rec[0]), 10, 64)
			if err != nil {
				return Matrix{}, fmt.Errorf("line %d: invalid movie_id %q", line, rec[0])
			}
			rowIDs = append(rowIDs, MovieID(id))
			rec = rec[1:]
		}

		row, err := parseScores(rec)
		if err != nil {
			return Matrix{}, fmt.Errorf("line %d: %w", line, err)
		}
		m.Scores = append(m.Scores, row)
	}

	if headed {
		return alignRows(m.IDs, rowIDs, m.Scores)
	}
	return m, nil
}

// alignRows re-orders rows so row k belongs to colIDs[k].
func alignRows(colIDs, rowIDs []MovieID, rows [][]float64) (Matrix, error) {
	if len(rowIDs) != len(colIDs) {
		return Matrix{}, fmt.Errorf("similarity matrix has %d rows for %d columns", len(rowIDs), len(colIDs))
	}

	col := make(map[MovieID]int, len(colIDs))
	for k, id := range colIDs {
		if _, dup := col[id]; dup {
			return Matrix{}, fmt.Errorf("duplicate movie_id %d in similarity header", id)
		}
		col[id] = k
	}

	aligned := make([][]float64, len(rows))
	for r, id := range rowIDs {
		k, ok := col[id]
		if !ok {
			return Matrix{}, fmt.Errorf("similarity row movie_id %d is not in the header", id)
		}
		if aligned[k] != nil {
			return Matrix{}, fmt.Errorf("duplicate similarity row for movie_id %d", id)
		}
		aligned[k] = rows[r]
	}

	return Matrix{IDs: colIDs, Scores: aligned}, nil
}

func isIDHeader(cell string) bool {
	switch strings.ToLower(strings.TrimSpace(cell)) {
	case "movie_id", "id", "":
		return true
	}
	return false
}

func parseScores(rec []string) ([]float64, error) {
	row := make([]float64, len(rec))
	for i, raw := range rec {
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("column %d: invalid score %q", i, raw)
		}
		row[i] = v
	}
	return row, nil
}
