// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package grid

import (
	"errors"
	"fmt"

	"github.com/framegrace/texelgrid/value"
)

// ErrReloadAborted is returned when a data source callback fails during
// Reload. The controller keeps its previous state.
var ErrReloadAborted = errors.New("grid: reload aborted")

// DataSource supplies grid content on Reload.
type DataSource interface {
	ColumnCount() int
	HeaderTitle(col int) (string, error)
	RowCount() int
	RowData(row int) ([]value.Value, error)
}

// pull reads headers and rows from ds. Any failing callback aborts the
// whole pull.
func pull(ds DataSource) ([][]value.Value, []string, error) {
	cols := ds.ColumnCount()
	if cols < 0 {
		return nil, nil, fmt.Errorf("%w: column count %d", ErrReloadAborted, cols)
	}
	headers := make([]string, cols)
	for col := 0; col < cols; col++ {
		title, err := ds.HeaderTitle(col)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: header %d: %v", ErrReloadAborted, col, err)
		}
		headers[col] = title
	}
	n := ds.RowCount()
	if n < 0 {
		return nil, nil, fmt.Errorf("%w: row count %d", ErrReloadAborted, n)
	}
	rows := make([][]value.Value, 0, n)
	for r := 0; r < n; r++ {
		data, err := ds.RowData(r)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: row %d: %v", ErrReloadAborted, r, err)
		}
		rows = append(rows, data)
	}
	return rows, headers, nil
}
