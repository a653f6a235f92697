// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package layout

// Size is a width/height pair in layout units.
type Size struct {
	Width, Height float64
}

// Rect is an axis-aligned rectangle in content coordinates.
type Rect struct {
	X, Y, W, H float64
}

// MaxX returns the right edge.
func (r Rect) MaxX() float64 { return r.X + r.W }

// MaxY returns the bottom edge.
func (r Rect) MaxY() float64 { return r.Y + r.H }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Offset returns r translated by (dx, dy).
func (r Rect) Offset(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// FixedColumns is the number of leading and trailing columns frozen during
// horizontal scroll.
type FixedColumns struct {
	Left, Right int
}

// Pin describes how a column behaves during horizontal scroll.
type Pin int

const (
	PinNone Pin = iota
	PinLeading
	PinTrailing
)

// PinFor returns the pin of column col in a grid of n columns. Leading
// pins win when the two ranges overlap.
func (f FixedColumns) PinFor(col, n int) Pin {
	switch {
	case col < 0 || col >= n:
		return PinNone
	case col < f.Left:
		return PinLeading
	case col >= n-f.Right:
		return PinTrailing
	}
	return PinNone
}

// Metrics are the fixed sizing constants of the automatic column width.
type Metrics struct {
	// MinimumColumnWidth is the floor every automatic width is raised to.
	MinimumColumnWidth float64
	// SortIndicatorWidth is reserved for the sort arrow.
	SortIndicatorWidth float64
	// CellHorizontalMargin is the padding on each side of cell text.
	CellHorizontalMargin float64
}

// DefaultMetrics are point-based metrics for pixel renderers.
func DefaultMetrics() Metrics {
	return Metrics{MinimumColumnWidth: 70, SortIndicatorWidth: 10, CellHorizontalMargin: 15}
}

// TerminalMetrics are cell-based metrics for terminal renderers.
func TerminalMetrics() Metrics {
	return Metrics{MinimumColumnWidth: 6, SortIndicatorWidth: 2, CellHorizontalMargin: 1}
}

// Band is a non-cell region of the grid positioned as a unit.
type Band int

const (
	BandSearch Band = iota
	BandHeader
	BandFooter
	BandPagination
)

func (b Band) String() string {
	switch b {
	case BandSearch:
		return "search"
	case BandHeader:
		return "header"
	case BandFooter:
		return "footer"
	case BandPagination:
		return "pagination"
	}
	return "band?"
}

// BandSpec configures one band.
type BandSpec struct {
	Visible  bool
	Height   float64
	Floating bool
}

func (b BandSpec) height() float64 {
	if !b.Visible {
		return 0
	}
	return b.Height
}
