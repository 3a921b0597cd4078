// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"

	_ "modernc.org/sqlite" // register the pure-Go sqlite driver
)

// openSQLite opens an existing database read-only. A missing file is an error
// rather than a freshly created empty database.
func openSQLite(path string) (*sql.DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	dsn := url.URL{Scheme: "file", Path: path, RawQuery: "mode=ro"}
	db, err := sql.Open("sqlite", dsn.String())
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	return db, nil
}

func readTableSQLite(ctx context.Context, path string) (Table, error) {
	db, err := openSQLite(path)
	if err != nil {
		return Table{}, err
	}
	defer closeQuietly(db)

	return queryTable(ctx, db, "SELECT * FROM movies ORDER BY rowid")
}

func readMatrixSQLite(ctx context.Context, path string, table Table) (Matrix, error) {
	db, err := openSQLite(path)
	if err != nil {
		return Matrix{}, err
	}
	defer closeQuietly(db)

	pairs, err := queryPairs(ctx, db, "SELECT movie_id, other_id, score FROM similarity")
	if err != nil {
		return Matrix{}, err
	}
	return matrixFromPairs(table, pairs)
}
