// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// closeQuietly closes c, ignoring the error. Used in defers on read-only handles.
func closeQuietly(c interface{ Close() error }) {
	_ = c.Close() //nolint:errcheck // read-only handle
}

// queryTable runs a SELECT * style query and maps columns by name, so optional
// columns and the positional (no movie_id) layout work for any SQL source.
func queryTable(ctx context.Context, db *sql.DB, query string) (Table, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return Table{}, fmt.Errorf("failed to query movies: %w", err)
	}
	defer closeQuietly(rows)

	names, err := rows.Columns()
	if err != nil {
		return Table{}, fmt.Errorf("failed to read columns: %w", err)
	}
	cols := make(map[string]int, len(names))
	for i, name := range names {
		if field, ok := movieColumns[strings.ToLower(name)]; ok {
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
	values := make([]any, len(names))
	ptrs := make([]any, len(names))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return Table{}, fmt.Errorf("failed to scan movie: %w", err)
		}
		m, err := movieFromValues(values, cols, len(table.Movies))
		if err != nil {
			return Table{}, fmt.Errorf("row %d: %w", len(table.Movies)+1, err)
		}
		table.Movies = append(table.Movies, m)
	}
	if err := rows.Err(); err != nil {
		return Table{}, fmt.Errorf("failed to iterate movies: %w", err)
	}
	if len(table.Movies) == 0 {
		return Table{}, errors.New("movie table is empty")
	}

	return table, nil
}

func movieFromValues(values []any, cols map[string]int, position int) (Movie, error) {
	m := Movie{ID: MovieID(position)}

	if i, ok := cols["id"]; ok {
		id, err := toInt64(values[i])
		if err != nil {
			return Movie{}, fmt.Errorf("movie_id: %w", err)
		}
		m.ID = MovieID(id)
	}

	m.Title = toString(values[cols["title"]])
	if i, ok := cols["genres"]; ok {
		m.Genres = toString(values[i])
	}
	if i, ok := cols["overview"]; ok {
		m.Overview = toString(values[i])
	}
	if i, ok := cols["year"]; ok && values[i] != nil {
		year, err := toInt64(values[i])
		if err != nil {
			return Movie{}, fmt.Errorf("year: %w", err)
		}
		m.Year = int(year)
	}

	return m, nil
}

// queryPairs reads long-form (movie_id, other_id, score) rows.
func queryPairs(ctx context.Context, db *sql.DB, query string) ([]pair, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query similarity: %w", err)
	}
	defer closeQuietly(rows)

	var pairs []pair
	for rows.Next() {
		var p pair
		var movieID, otherID int64
		if err := rows.Scan(&movieID, &otherID, &p.score); err != nil {
			return nil, fmt.Errorf("failed to scan similarity: %w", err)
		}
		p.movieID, p.otherID = MovieID(movieID), MovieID(otherID)
		pairs = append(pairs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate similarity: %w", err)
	}
	if len(pairs) == 0 {
		return nil, errors.New("similarity table is empty")
	}

	return pairs, nil
}

func toInt64(v any) (int64, error) {
	switch x := v.(type) {
	case int64:
		return x, nil
	case int32:
		return int64(x), nil
	case int16:
		return int64(x), nil
	case int8:
		return int64(x), nil
	case int:
		return int64(x), nil
	case uint32:
		return int64(x), nil
	case uint16:
		return int64(x), nil
	case uint8:
		return int64(x), nil
	case float64:
		if x != float64(int64(x)) {
			return 0, fmt.Errorf("not an integer: %v", x)
		}
		return int64(x), nil
	case string:
		return strconv.ParseInt(strings.TrimSpace(x), 10, 64)
	case []byte:
		return strconv.ParseInt(strings.TrimSpace(string(x)), 10, 64)
	case nil:
		return 0, errors.New("null value")
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}

func toString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	default:
		return fmt.Sprint(x)
	}
}
