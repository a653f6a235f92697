// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// Package model normalizes raw grid rows against the header arity and
// derives the per-column content metrics the layout engine sizes from.
package model

import (
	"slices"

	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texelgrid/colsort"
	"github.com/framegrace/texelgrid/value"
)

// Measurer returns the rendered width of a string.
type Measurer func(string) float64

// RuneWidth measures strings in terminal cells.
func RuneWidth(s string) float64 {
	return float64(runewidth.StringWidth(s))
}

// Option adjusts how a TableModel is built.
type Option func(*TableModel)

// WithHeaderMeasure sets the measurer used for header titles. Defaults to
// the row measurer.
func WithHeaderMeasure(m Measurer) Option {
	return func(tm *TableModel) {
		if m != nil {
			tm.headerMeasure = m
		}
	}
}

// WithTitleFitting toggles whether column averages grow to fit the title.
func WithTitleFitting(fit bool) Option {
	return func(tm *TableModel) { tm.fitTitles = fit }
}

// TableModel is the immutable data snapshot of one reload.
type TableModel struct {
	headers       []string
	footers       []string
	rows          [][]value.Value
	columnAverage []float64
	measure       Measurer
	headerMeasure Measurer
	fitTitles     bool
}

// New builds a TableModel. Rows with fewer values than headers are dropped;
// longer rows are kept untouched. Footer titles mirror the headers when
// footers is true.
func New(rows [][]value.Value, headers []string, measure Measurer, footers bool, opts ...Option) *TableModel {
	if measure == nil {
		measure = RuneWidth
	}
	tm := &TableModel{
		headers:   append([]string(nil), headers...),
		measure:   measure,
		fitTitles: true,
	}
	tm.headerMeasure = measure
	for _, opt := range opts {
		opt(tm)
	}

	tm.rows = make([][]value.Value, 0, len(rows))
	for _, row := range rows {
		if len(row) < len(headers) {
			continue
		}
		tm.rows = append(tm.rows, slices.Clone(row))
	}
	if footers {
		tm.footers = append([]string(nil), headers...)
	}
	tm.columnAverage = tm.processColumnAverages()
	return tm
}

// processColumnAverages returns the mean measured content width of every
// column, or 1 for each column when there are no rows.
func (tm *TableModel) processColumnAverages() []float64 {
	averages := make([]float64, len(tm.headers))
	for col := range tm.headers {
		if len(tm.rows) == 0 {
			averages[col] = 1
			continue
		}
		total := 0.0
		for _, row := range tm.rows {
			total += tm.measure(row[col].Display())
		}
		averages[col] = total / float64(len(tm.rows))
	}
	return averages
}

// ColumnCount is the number of header titles.
func (tm *TableModel) ColumnCount() int { return len(tm.headers) }

// RowCount is the number of kept rows.
func (tm *TableModel) RowCount() int { return len(tm.rows) }

// Headers returns the header titles.
func (tm *TableModel) Headers() []string { return tm.headers }

// Footers returns the footer titles, empty when footers are suppressed.
func (tm *TableModel) Footers() []string { return tm.footers }

// Rows returns the kept rows.
func (tm *TableModel) Rows() [][]value.Value { return tm.rows }

// ColumnAverageWidth returns the cached mean content width of column i.
func (tm *TableModel) ColumnAverageWidth(i int) float64 { return tm.columnAverage[i] }

// Measure measures row text with the row measurer.
func (tm *TableModel) Measure(s string) float64 { return tm.measure(s) }

// MeasureHeader measures text with the header measurer.
func (tm *TableModel) MeasureHeader(s string) float64 { return tm.headerMeasure(s) }

// AverageDataLengthForColumn returns the width column i needs for its
// average content, grown to the title width when title fitting is on.
func (tm *TableModel) AverageDataLengthForColumn(i int) float64 {
	if tm.fitTitles {
		return max(tm.columnAverage[i], tm.headerMeasure(tm.headers[i]))
	}
	return tm.columnAverage[i]
}

// AverageColumnDataLengthTotal sums AverageDataLengthForColumn over all columns.
func (tm *TableModel) AverageColumnDataLengthTotal() float64 {
	total := 0.0
	for i := range tm.headers {
		total += tm.AverageDataLengthForColumn(i)
	}
	return total
}

// HeaderSortType is the initial sort indicator of header i.
func (tm *TableModel) HeaderSortType(i int) colsort.SortType {
	if i < 0 || i >= len(tm.headers) {
		return colsort.Hidden
	}
	return colsort.Unspecified
}

// FooterSortType is the sort indicator of footer i. Footers never sort.
func (tm *TableModel) FooterSortType(i int) colsort.SortType {
	return colsort.Hidden
}
