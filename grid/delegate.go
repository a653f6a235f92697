// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: grid/delegate.go
// Summary: Optional per-grid overrides and their resolution against Options.

package grid

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelgrid/layout"
)

// IndexPath addresses one cell of the active rows.
type IndexPath struct {
	Row    int
	Column int
}

// Delegate holds optional overrides. A nil field falls back to the
// controller's Options; a set field always wins.
type Delegate struct {
	DidSelectItem   func(IndexPath)
	DidDeselectItem func(IndexPath)

	HeightForRow func(row int) float64
	// WidthForColumn may decline a column by returning false.
	WidthForColumn func(col int) (float64, bool)

	HighlightedColorForRow   func(row int) tcell.Color
	UnhighlightedColorForRow func(row int) tcell.Color

	ShouldShowSearchSection   func() bool
	ShouldShowFooter          func() bool
	ShouldShowPagination      func() bool
	ShouldSectionHeadersFloat func() bool
	ShouldSectionFootersFloat func() bool
	ShouldSearchHeaderFloat   func() bool

	HeightForSectionHeader  func() float64
	HeightForSectionFooter  func() float64
	HeightForSearchView     func() float64
	HeightOfInterRowSpacing func() float64

	HeaderStyle func() tcell.Style
	RowStyle    func() tcell.Style
	LinkStyle   func() tcell.Style

	FixedColumns             func() layout.FixedColumns
	ShouldSupportRightToLeft func() bool
	ShouldScaleToFill        func() bool

	ShouldShowVerticalScrollBars   func() bool
	ShouldShowHorizontalScrollBars func() bool
}

// resolve returns the override when present, else fallback.
func resolve[T any](override func() T, fallback T) T {
	if override != nil {
		return override()
	}
	return fallback
}

// resolveAt is resolve for per-index overrides.
func resolveAt[T any](override func(int) T, i int, fallback T) T {
	if override != nil {
		return override(i)
	}
	return fallback
}

// resolveOptional is resolve for overrides that may decline.
func resolveOptional[T any](override func(int) (T, bool), i int) (T, bool) {
	if override != nil {
		return override(i)
	}
	var zero T
	return zero, false
}

func notify(fn func(IndexPath), ip IndexPath) {
	if fn != nil {
		fn(ip)
	}
}
