// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2" // register the duckdb driver
)

// openDuckDB opens a throwaway in-memory DuckDB used only to scan parquet files.
// Extension autoload is disabled so startup never reaches the network.
func openDuckDB() (*sql.DB, error) {
	conn, err := sql.Open("duckdb", ":memory:?autoinstall_known_extensions=false&autoload_known_extensions=false")
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb: %w", err)
	}
	return conn, nil
}

// parquetSource renders read_parquet('<path>') with the path quoted as a SQL
// string literal. Table functions do not take bind parameters.
func parquetSource(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", err
	}
	return "read_parquet('" + strings.ReplaceAll(path, "'", "''") + "')", nil
}

func readTableParquet(ctx context.Context, path string) (Table, error) {
	src, err := parquetSource(path)
	if err != nil {
		return Table{}, err
	}

	db, err := openDuckDB()
	if err != nil {
		return Table{}, err
	}
	defer closeQuietly(db)

	return queryTable(ctx, db, "SELECT * FROM "+src)
}

func readMatrixParquet(ctx context.Context, path string, table Table) (Matrix, error) {
	src, err := parquetSource(path)
	if err != nil {
		return Matrix{}, err
	}

	db, err := openDuckDB()
	if err != nil {
		return Matrix{}, err
	}
	defer closeQuietly(db)

	pairs, err := queryPairs(ctx, db,
		"SELECT CAST(movie_id AS BIGINT), CAST(other_id AS BIGINT), CAST(score AS DOUBLE) FROM "+src)
	if err != nil {
		return Matrix{}, err
	}
	return matrixFromPairs(table, pairs)
}
