// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// Package source provides grid data sources: in-memory tables, SQLite
// query results and delimited or JSON files.
package source

import (
	"fmt"

	"github.com/framegrace/texelgrid/value"
)

// Static is an in-memory table. It satisfies grid.DataSource.
type Static struct {
	Titles []string
	Data   [][]value.Value
}

// NewStatic creates a static source.
func NewStatic(titles []string, rows [][]value.Value) *Static {
	return &Static{Titles: titles, Data: rows}
}

// ColumnCount is the number of titles.
func (s *Static) ColumnCount() int { return len(s.Titles) }

// HeaderTitle returns the title of column col.
func (s *Static) HeaderTitle(col int) (string, error) {
	if col < 0 || col >= len(s.Titles) {
		return "", fmt.Errorf("source: column %d out of range", col)
	}
	return s.Titles[col], nil
}

// RowCount is the number of rows.
func (s *Static) RowCount() int { return len(s.Data) }

// RowData returns row r.
func (s *Static) RowData(r int) ([]value.Value, error) {
	if r < 0 || r >= len(s.Data) {
		return nil, fmt.Errorf("source: row %d out of range", r)
	}
	return s.Data[r], nil
}
