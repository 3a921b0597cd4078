// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package catalog holds the movie table and the precomputed similarity matrix.
//
// Both artifacts are read once at startup by Load and joined by movie ID into
// an immutable Catalog. Each Entry carries its similarity row re-ordered into
// catalog order, so row[j] is always the score against Movie(j) regardless of
// how the matrix file was laid out.
//
// A Catalog is never mutated after construction and is safe for concurrent use
// without locking.
package catalog

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// ErrMovieNotFound is returned when a movie ID is not in the catalog.
var ErrMovieNotFound = errors.New("movie not found")

// MovieID is the stable identifier joining the movie table and the matrix.
type MovieID int64

// Movie is one row of the movie table.
type Movie struct {
	ID       MovieID `json:"movie_id"`
	Title    string  `json:"title"`
	Genres   string  `json:"genres,omitempty"`
	Year     int     `json:"year,omitempty"`
	Overview string  `json:"overview,omitempty"`
}

// Entry is a movie together with its similarity row.
type Entry struct {
	Movie Movie

	// Index is the movie's position in catalog order.
	Index int

	// Scores[j] is the similarity between this movie and Movie(j).
	Scores []float64
}

// Table is a movie table as read from disk.
type Table struct {
	Movies []Movie

	// Positional is set when the source had no movie_id column and IDs were
	// assigned from row position.
	Positional bool
}

// Matrix is a similarity matrix as read from disk.
type Matrix struct {
	// IDs names the movie of each row and column. Nil means the matrix is
	// positional and must line up with the table row for row.
	IDs []MovieID

	Scores [][]float64
}

// Catalog is the joined, read-only view of movies and similarities.
type Catalog struct {
	entries    []Entry
	byID       map[MovieID]int
	byTitle    map[string]int
	positional bool
}

// New joins a table and a matrix by movie ID. It fails when the ID sets
// differ, an ID repeats, a row has the wrong width or a score is not finite.
func New(table Table, matrix Matrix) (*Catalog, error) {
	n := len(table.Movies)
	if n == 0 {
		return nil, errors.New("movie table is empty")
	}

	c := &Catalog{
		entries:    make([]Entry, n),
		byID:       make(map[MovieID]int, n),
		byTitle:    make(map[string]int, n),
		positional: table.Positional || matrix.IDs == nil,
	}

	for i, m := range table.Movies {
		if _, dup := c.byID[m.ID]; dup {
			return nil, fmt.Errorf("duplicate movie_id %d in movie table", m.ID)
		}
		c.byID[m.ID] = i
		key := foldTitle(m.Title)
		if _, seen := c.byTitle[key]; !seen {
			c.byTitle[key] = i
		}
	}

	pos, err := matrixPositions(table, matrix, c.byID)
	if err != nil {
		return nil, err
	}

	for i, m := range table.Movies {
		src := matrix.Scores[pos[i]]
		if len(src) != n {
			return nil, fmt.Errorf("similarity row for movie_id %d has %d columns, want %d", m.ID, len(src), n)
		}
		row := make([]float64, n)
		for j := range row {
			v := src[pos[j]]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("similarity row for movie_id %d: non-finite score at column %d", m.ID, pos[j])
			}
			row[j] = v
		}
		c.entries[i] = Entry{Movie: m, Index: i, Scores: row}
	}

	return c, nil
}

// matrixPositions returns, for each catalog index, the matching matrix row
// (and column) index.
func matrixPositions(table Table, matrix Matrix, byID map[MovieID]int) ([]int, error) {
	n := len(table.Movies)
	pos := make([]int, n)

	if matrix.IDs == nil {
		if len(matrix.Scores) != n {
			return nil, fmt.Errorf("positional similarity matrix has %d rows, movie table has %d", len(matrix.Scores), n)
		}
		for i := range pos {
			pos[i] = i
		}
		return pos, nil
	}

	if len(matrix.Scores) != len(matrix.IDs) {
		return nil, fmt.Errorf("similarity matrix has %d rows for %d ids", len(matrix.Scores), len(matrix.IDs))
	}
	if len(matrix.IDs) != n {
		return nil, fmt.Errorf("similarity matrix covers %d movies, movie table has %d", len(matrix.IDs), n)
	}

	seen := make(map[MovieID]bool, n)
	for k, id := range matrix.IDs {
		if seen[id] {
			return nil, fmt.Errorf("duplicate movie_id %d in similarity matrix", id)
		}
		seen[id] = true
		i, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("similarity matrix movie_id %d is not in the movie table", id)
		}
		pos[i] = k
	}
	return pos, nil
}

func foldTitle(title string) string {
	return strings.ToLower(title)
}

// Len returns the number of movies.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Positional reports whether the catalog was joined by row position.
func (c *Catalog) Positional() bool {
	return c.positional
}

// Movie returns the movie at catalog index i.
func (c *Catalog) Movie(i int) Movie {
	return c.entries[i].Movie
}

// Movies returns a copy of all movies in catalog order.
func (c *Catalog) Movies() []Movie {
	out := make([]Movie, len(c.entries))
	for i := range c.entries {
		out[i] = c.entries[i].Movie
	}
	return out
}

// ByID returns the entry for id, or ErrMovieNotFound.
func (c *Catalog) ByID(id MovieID) (Entry, error) {
	i, ok := c.byID[id]
	if !ok {
		return Entry{}, fmt.Errorf("movie_id %d: %w", id, ErrMovieNotFound)
	}
	return c.entries[i], nil
}

// ByTitle finds a movie by case-insensitive exact title. When several movies
// share a folded title the first in catalog order is returned.
func (c *Catalog) ByTitle(title string) (Entry, bool) {
	i, ok := c.byTitle[foldTitle(title)]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// Titles returns the sorted, de-duplicated list of non-empty titles.
func (c *Catalog) Titles() []string {
	seen := make(map[string]bool, len(c.entries))
	titles := make([]string, 0, len(c.entries))
	for i := range c.entries {
		t := c.entries[i].Movie.Title
		if t != "" && !seen[t] {
			seen[t] = true
			titles = append(titles, t)
		}
	}
	sort.Strings(titles)
	return titles
}
