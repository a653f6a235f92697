// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: source/sqlite.go
// Summary: Grid content from a read-only SQLite query.

package source

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"github.com/framegrace/texelgrid/value"
)

// QuerySQLite runs query against the database at dbPath and returns the
// result set with the result column names as titles. The connection is
// opened query-only and closed before returning.
func QuerySQLite(ctx context.Context, dbPath, query string, args ...any) (*Static, error) {
	dsn := dbPath +
		"?_pragma=query_only(1)" +
		"&_pragma=busy_timeout(2000)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	titles, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	s := &Static{Titles: titles}
	raw := make([]any, len(titles))
	ptrs := make([]any, len(titles))
	for i := range raw {
		ptrs[i] = &raw[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row %d: %w", len(s.Data), err)
		}
		row := make([]value.Value, len(raw))
		for i, v := range raw {
			row[i] = fromSQL(v)
		}
		s.Data = append(s.Data, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}
	return s, nil
}

// fromSQL maps a driver value to a grid value. Text is inferred so dates
// and links stored as TEXT keep their kind.
func fromSQL(v any) value.Value {
	switch x := v.(type) {
	case nil:
		return value.String("")
	case int64:
		return value.Int(x)
	case float64:
		return value.Float(x)
	case bool:
		return value.String(strconv.FormatBool(x))
	case time.Time:
		return value.Date(x)
	case []byte:
		return value.Parse(string(x))
	case string:
		return value.Parse(x)
	}
	return value.String(fmt.Sprint(v))
}
