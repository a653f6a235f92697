// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"github.com/framegrace/texelgrid/colsort"
	"github.com/framegrace/texelgrid/value"
)

// Cell is the view model of one grid cell.
type Cell struct {
	Data value.Value
	// Highlighted marks the cell in the currently sorted column.
	Highlighted bool
}

// Row is the view model of one grid row. Rows have no synthetic key; two
// rows are the same row when their cell data is equal.
type Row []*Cell

// ValueAt returns the data of column col.
func (r Row) ValueAt(col int) value.Value { return r[col].Data }

// Highlight marks cell col as highlighted and clears every other cell.
func (r Row) Highlight(col int) {
	for i, c := range r {
		c.Highlighted = i == col
	}
}

// Equal reports whether both rows carry equal cell data.
func (r Row) Equal(o Row) bool {
	if len(r) != len(o) {
		return false
	}
	for i := range r {
		if !r[i].Data.Equal(o[i].Data) {
			return false
		}
	}
	return true
}

// Values returns the cell data of the row.
func (r Row) Values() []value.Value {
	out := make([]value.Value, len(r))
	for i, c := range r {
		out[i] = c.Data
	}
	return out
}

// HeaderFooter is the view model of a column header or footer.
type HeaderFooter struct {
	Title    string
	SortType colsort.SortType
}

// NewRows creates fresh view models for every kept row of tm.
func NewRows(tm *TableModel) []Row {
	rows := make([]Row, len(tm.rows))
	for ri, data := range tm.rows {
		row := make(Row, len(data))
		for ci, v := range data {
			row[ci] = &Cell{Data: v}
		}
		rows[ri] = row
	}
	return rows
}

// NewHeaders creates header view models with their initial sort types.
func NewHeaders(tm *TableModel) []*HeaderFooter {
	out := make([]*HeaderFooter, len(tm.headers))
	for i, title := range tm.headers {
		out[i] = &HeaderFooter{Title: title, SortType: tm.HeaderSortType(i)}
	}
	return out
}

// NewFooters creates footer view models.
func NewFooters(tm *TableModel) []*HeaderFooter {
	out := make([]*HeaderFooter, len(tm.footers))
	for i, title := range tm.footers {
		out[i] = &HeaderFooter{Title: title, SortType: tm.FooterSortType(i)}
	}
	return out
}

// StringRows converts plain string rows into value rows.
func StringRows(rows [][]string) [][]value.Value {
	out := make([][]value.Value, len(rows))
	for i, r := range rows {
		out[i] = value.Strings(r...)
	}
	return out
}
