// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
)

func testTable() Table {
	return Table{Movies: []Movie{
		{ID: 10, Title: "Avatar"},
		{ID: 20, Title: "Heat"},
		{ID: 30, Title: "avatar"},
	}}
}

func TestNewJoinsByID(t *testing.T) {
	t.Parallel()

	// Matrix rows and columns listed in a different order than the table.
	matrix := Matrix{
		IDs: []MovieID{30, 10, 20},
		Scores: [][]float64{
			{1.0, 0.9, 0.1}, // 30
			{0.9, 1.0, 0.4}, // 10
			{0.1, 0.4, 1.0}, // 20
		},
	}

	c, err := New(testTable(), matrix)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	e, err := c.ByID(10)
	if err != nil {
		t.Fatalf("ByID(10) error = %v", err)
	}
	// Catalog order is 10, 20, 30.
	want := []float64{1.0, 0.4, 0.9}
	if !reflect.DeepEqual(e.Scores, want) {
		t.Errorf("Scores = %v, want %v", e.Scores, want)
	}
	if c.Positional() {
		t.Error("catalog should not be positional")
	}
}

func TestNewRejectsInconsistentArtifacts(t *testing.T) {
	t.Parallel()

	square := [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

	tests := []struct {
		name    string
		table   Table
		matrix  Matrix
		wantErr string
	}{
		{
			name:    "empty table",
			table:   Table{},
			matrix:  Matrix{Scores: square},
			wantErr: "empty",
		},
		{
			name:    "duplicate table id",
			table:   Table{Movies: []Movie{{ID: 1, Title: "a"}, {ID: 1, Title: "b"}, {ID: 2, Title: "c"}}},
			matrix:  Matrix{IDs: []MovieID{1, 2, 3}, Scores: square},
			wantErr: "duplicate movie_id 1 in movie table",
		},
		{
			name:    "duplicate matrix id",
			table:   testTable(),
			matrix:  Matrix{IDs: []MovieID{10, 10, 20}, Scores: square},
			wantErr: "duplicate movie_id 10 in similarity matrix",
		},
		{
			name:    "unknown matrix id",
			table:   testTable(),
			matrix:  Matrix{IDs: []MovieID{10, 20, 99}, Scores: square},
			wantErr: "99 is not in the movie table",
		},
		{
			name:    "id count mismatch",
			table:   testTable(),
			matrix:  Matrix{IDs: []MovieID{10, 20}, Scores: [][]float64{{1, 0}, {0, 1}}},
			wantErr: "covers 2 movies",
		},
		{
			name:    "ragged row",
			table:   testTable(),
			matrix:  Matrix{IDs: []MovieID{10, 20, 30}, Scores: [][]float64{{1, 0, 0}, {0, 1}, {0, 0, 1}}},
			wantErr: "has 2 columns, want 3",
		},
		{
			name:    "positional wrong size",
			table:   testTable(),
			matrix:  Matrix{Scores: [][]float64{{1, 0}, {0, 1}}},
			wantErr: "positional similarity matrix has 2 rows",
		},
		{
			name:    "nan score",
			table:   testTable(),
			matrix:  Matrix{Scores: [][]float64{{1, math.NaN(), 0}, {0, 1, 0}, {0, 0, 1}}},
			wantErr: "non-finite",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := New(tt.table, tt.matrix)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("New() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestNewPositional(t *testing.T) {
	t.Parallel()

	table := Table{Positional: true, Movies: []Movie{{ID: 0, Title: "A"}, {ID: 1, Title: "B"}}}
	c, err := New(table, Matrix{Scores: [][]float64{{1, 0.5}, {0.5, 1}}})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if !c.Positional() {
		t.Error("expected positional catalog")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestByTitle(t *testing.T) {
	t.Parallel()

	c, err := New(testTable(), Matrix{Scores: [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}})
	if err != nil {
		t.Fatal(err)
	}

	e, ok := c.ByTitle("AVATAR")
	if !ok {
		t.Fatal("expected case-insensitive match")
	}
	if e.Movie.ID != 10 {
		t.Errorf("duplicate folded title should resolve to first entry, got %d", e.Movie.ID)
	}

	if _, ok := c.ByTitle("Avatar "); ok {
		t.Error("match must be exact apart from case")
	}
}

func TestByIDNotFound(t *testing.T) {
	t.Parallel()

	c, err := New(testTable(), Matrix{Scores: [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.ByID(404); !errors.Is(err, ErrMovieNotFound) {
		t.Errorf("ByID(404) error = %v, want ErrMovieNotFound", err)
	}
}

func TestTitles(t *testing.T) {
	t.Parallel()

	table := Table{Movies: []Movie{
		{ID: 1, Title: "Heat"},
		{ID: 2, Title: "Avatar"},
		{ID: 3, Title: "Heat"},
		{ID: 4, Title: "avatar"},
		{ID: 5, Title: ""},
	}}
	scores := [][]float64{{1, 0, 0, 0, 0}, {0, 1, 0, 0, 0}, {0, 0, 1, 0, 0}, {0, 0, 0, 1, 0}, {0, 0, 0, 0, 1}}
	c, err := New(table, Matrix{Scores: scores})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"Avatar", "Heat", "avatar"}
	if got := c.Titles(); !reflect.DeepEqual(got, want) {
		t.Errorf("Titles() = %v, want %v", got, want)
	}
}

func TestMatrixFromPairs(t *testing.T) {
	t.Parallel()

	table := Table{Movies: []Movie{{ID: 1, Title: "a"}, {ID: 2, Title: "b"}}}

	m, err := matrixFromPairs(table, []pair{{1, 2, 0.3}, {2, 1, 0.4}})
	if err != nil {
		t.Fatalf("matrixFromPairs() error = %v", err)
	}
	want := [][]float64{{1.0, 0.3}, {0.4, 1.0}}
	if !reflect.DeepEqual(m.Scores, want) {
		t.Errorf("Scores = %v, want %v (diagonal defaults to 1.0)", m.Scores, want)
	}

	if _, err := matrixFromPairs(table, []pair{{1, 2, 0.3}}); err == nil || !strings.Contains(err.Error(), "missing similarity pair (2, 1)") {
		t.Errorf("expected missing pair error, got %v", err)
	}
	if _, err := matrixFromPairs(table, []pair{{1, 2, 0.3}, {1, 2, 0.3}, {2, 1, 0.1}}); err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("expected duplicate pair error, got %v", err)
	}
	if _, err := matrixFromPairs(table, []pair{{1, 9, 0.3}}); err == nil {
		t.Error("expected unknown id error")
	}
}
