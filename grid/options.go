// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: grid/options.go
// Summary: Configuration defaults of the grid controller.

package grid

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelgrid/colsort"
	"github.com/framegrace/texelgrid/internal/theming"
	"github.com/framegrace/texelgrid/layout"
	"github.com/framegrace/texelgrid/model"
)

// Options are the configuration defaults every delegate override falls
// back to.
type Options struct {
	ShowFooter     bool
	ShowSearch     bool
	ShowPagination bool

	HeadersFloat bool
	FootersFloat bool
	SearchFloat  bool

	ShowVerticalScrollBars   bool
	ShowHorizontalScrollBars bool

	// Alternating row colors, indexed by row modulo length.
	HighlightedRowColors   []tcell.Color
	UnhighlightedRowColors []tcell.Color

	HeaderStyle tcell.Style
	RowStyle    tcell.Style
	LinkStyle   tcell.Style

	FixedColumns layout.FixedColumns
	// DefaultOrdering is applied after every reload when set.
	DefaultOrdering *colsort.ColumnOrder
	ScaleToFill     bool
	// FitTitles grows column averages to the header title width.
	FitTitles   bool
	RightToLeft bool

	HeaderHeight     float64
	FooterHeight     float64
	SearchHeight     float64
	PaginationHeight float64
	RowHeight        float64
	InterRowSpacing  float64

	Metrics       layout.Metrics
	Measure       model.Measurer
	HeaderMeasure model.Measurer
	// CacheSize bounds the layout rectangle cache; zero uses the default.
	CacheSize int

	// RowKey gives rows a stable identity for search diffs. Without it
	// rows are matched by value.
	RowKey func(model.Row) string
}

// DefaultOptions returns point-based defaults.
func DefaultOptions() Options {
	palette := theming.Default()
	return Options{
		ShowFooter:               true,
		ShowSearch:               true,
		ShowPagination:           false,
		HeadersFloat:             true,
		FootersFloat:             true,
		SearchFloat:              true,
		ShowVerticalScrollBars:   true,
		ShowHorizontalScrollBars: true,
		HighlightedRowColors:     palette.Highlighted,
		UnhighlightedRowColors:   palette.Unhighlighted,
		HeaderStyle:              tcell.StyleDefault.Bold(true),
		RowStyle:                 tcell.StyleDefault,
		LinkStyle:                tcell.StyleDefault.Foreground(tcell.ColorBlue).Underline(true),
		ScaleToFill:              true,
		FitTitles:                true,
		HeaderHeight:             44,
		FooterHeight:             44,
		SearchHeight:             60,
		PaginationHeight:         35,
		RowHeight:                44,
		InterRowSpacing:          1,
		Metrics:                  layout.DefaultMetrics(),
		Measure:                  model.RuneWidth,
	}
}

// TerminalOptions returns cell-based defaults: one-line bands and rows
// with no spacing between them.
func TerminalOptions() Options {
	o := DefaultOptions()
	palette := theming.Terminal()
	o.HighlightedRowColors = palette.Highlighted
	o.UnhighlightedRowColors = palette.Unhighlighted
	o.HeaderStyle = tcell.StyleDefault.Bold(true).Foreground(tcell.GetColor("#cdd6f4"))
	o.RowStyle = tcell.StyleDefault.Foreground(tcell.GetColor("#cdd6f4"))
	o.LinkStyle = tcell.StyleDefault.Foreground(tcell.GetColor("#89b4fa")).Underline(true)
	o.HeaderHeight = 1
	o.FooterHeight = 1
	o.SearchHeight = 1
	o.PaginationHeight = 1
	o.RowHeight = 1
	o.InterRowSpacing = 0
	o.Metrics = layout.TerminalMetrics()
	return o
}

// WithRowColors returns o using the given alternating row colors. Empty
// sequences keep the current colors.
func (o Options) WithRowColors(highlighted, unhighlighted []tcell.Color) Options {
	if len(highlighted) > 0 {
		o.HighlightedRowColors = highlighted
	}
	if len(unhighlighted) > 0 {
		o.UnhighlightedRowColors = unhighlighted
	}
	return o
}
