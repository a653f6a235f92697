// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: layout/layout.go
// Summary: Column width resolution, pinned column placement, band positions
// and the geometry cache of the grid.
//
// The engine is never authoritative: everything it returns is derived from
// its Source and rebuilt on demand. Cached geometry is keyed by a
// fingerprint of the geometry-affecting state (row count, frame size, fixed
// column spec); any other change must be announced through Invalidate.

package layout

import (
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the number of cached cell rectangles.
const DefaultCacheSize = 4096

// Source supplies the state the engine derives geometry from. The grid
// controller implements it.
type Source interface {
	ColumnCount() int
	RowCount() int
	// AverageDataLength is the average content width of a column.
	AverageDataLength(col int) float64
	// HeaderTitleWidth is the measured width of the (bold) header title.
	HeaderTitleWidth(col int) float64
	// ColumnWidthOverride returns a width that replaces the computed one.
	ColumnWidthOverride(col int) (float64, bool)
	RowHeight(row int) float64
	InterRowSpacing() float64
	Frame() Size
	ScaleToFill() bool
	FixedColumns() FixedColumns
	RightToLeft() bool
	Band(b Band) BandSpec
}

// Column is the resolved horizontal geometry of one column.
type Column struct {
	Index int
	Width float64
	// X is the natural offset: the running sum of the preceding widths,
	// mirrored for right-to-left layouts.
	X   float64
	Pin Pin
	// logicalX is the left-to-right running sum.
	logicalX float64
}

// Pinned reports whether the column is excluded from horizontal scroll.
func (c Column) Pinned() bool { return c.Pin != PinNone }

type fingerprint struct {
	rows  int
	frame Size
	fixed FixedColumns
}

type cellKey struct {
	fp       fingerprint
	row, col int
}

type snapshot struct {
	fp           fingerprint
	columns      []Column
	contentWidth float64
	rtl          bool

	bands      [4]BandSpec
	rowsTop    float64
	rowY       []float64
	rowH       []float64
	rowsHeight float64
}

// Engine resolves and caches grid geometry.
type Engine struct {
	metrics Metrics
	snap    *snapshot
	rects   *lru.Cache[cellKey, Rect]
	builds  int
}

// New creates an engine. A non-positive cacheSize selects DefaultCacheSize.
func New(metrics Metrics, cacheSize int) *Engine {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	rects, err := lru.New[cellKey, Rect](cacheSize)
	if err != nil {
		// Only returned for a non-positive size.
		panic(err)
	}
	return &Engine{metrics: metrics, rects: rects}
}

// Metrics returns the sizing constants in use.
func (e *Engine) Metrics() Metrics { return e.metrics }

// Invalidate drops all cached geometry. The next query rebuilds it.
func (e *Engine) Invalidate() {
	e.snap = nil
	e.rects.Purge()
}

// Builds counts how many times geometry was rebuilt.
func (e *Engine) Builds() int { return e.builds }

func fingerprintOf(src Source) fingerprint {
	return fingerprint{rows: src.RowCount(), frame: src.Frame(), fixed: src.FixedColumns()}
}

// resolve returns the current snapshot, rebuilding it on a miss.
func (e *Engine) resolve(src Source) *snapshot {
	fp := fingerprintOf(src)
	if e.snap != nil && e.snap.fp == fp {
		return e.snap
	}
	e.rects.Purge()
	e.snap = e.build(src, fp)
	e.builds++
	return e.snap
}

func (e *Engine) build(src Source, fp fingerprint) *snapshot {
	s := &snapshot{fp: fp, rtl: src.RightToLeft()}

	widths := e.ColumnWidths(src)
	n := len(widths)
	s.columns = make([]Column, n)
	x := 0.0
	for i, w := range widths {
		s.columns[i] = Column{Index: i, Width: w, logicalX: x, Pin: fp.fixed.PinFor(i, n)}
		x += w
	}
	s.contentWidth = x
	for i := range s.columns {
		c := &s.columns[i]
		c.X = c.logicalX
		if s.rtl {
			c.X = s.contentWidth - c.logicalX - c.Width
		}
	}

	for _, b := range []Band{BandSearch, BandHeader, BandFooter, BandPagination} {
		s.bands[b] = src.Band(b)
	}
	s.rowsTop = s.bands[BandSearch].height() + s.bands[BandHeader].height()

	spacing := src.InterRowSpacing()
	s.rowY = make([]float64, fp.rows)
	s.rowH = make([]float64, fp.rows)
	y := s.rowsTop
	for r := 0; r < fp.rows; r++ {
		if r > 0 {
			y += spacing
		}
		h := src.RowHeight(r)
		s.rowY[r] = y
		s.rowH[r] = h
		y += h
	}
	s.rowsHeight = y - s.rowsTop
	return s
}

// AutomaticWidth is the content-derived width of column col before any
// override or scaling.
func (e *Engine) AutomaticWidth(src Source, col int) float64 {
	m := e.metrics
	auto := src.AverageDataLength(col) + m.SortIndicatorWidth + 2*m.CellHorizontalMargin
	return max(auto, m.MinimumColumnWidth, src.HeaderTitleWidth(col))
}

// ColumnWidths resolves every column width: overrides win, the rest are
// automatic and, when enabled, scaled to fill the frame.
func (e *Engine) ColumnWidths(src Source) []float64 {
	n := src.ColumnCount()
	widths := make([]float64, n)
	overridden := make([]bool, n)
	for i := 0; i < n; i++ {
		if w, ok := src.ColumnWidthOverride(i); ok {
			widths[i] = w
			overridden[i] = true
			continue
		}
		widths[i] = e.AutomaticWidth(src, i)
	}
	if src.ScaleToFill() {
		ScaleToFill(widths, overridden, src.Frame().Width)
	}
	return widths
}

// ScaleToFill distributes the slack between the summed widths and
// frameWidth over the columns not marked fixed, proportionally to their
// width. Widths already meeting the frame are left untouched.
func ScaleToFill(widths []float64, fixed []bool, frameWidth float64) {
	total := 0.0
	scalable := 0.0
	for i, w := range widths {
		total += w
		if i >= len(fixed) || !fixed[i] {
			scalable += w
		}
	}
	if total >= frameWidth || scalable <= 0 {
		return
	}
	gap := frameWidth - total
	for i, w := range widths {
		if i < len(fixed) && fixed[i] {
			continue
		}
		widths[i] = w + gap*(w/scalable)
	}
}

// Columns returns the resolved geometry of every column.
func (e *Engine) Columns(src Source) []Column {
	return e.resolve(src).columns
}

// Column returns the resolved geometry of column col.
func (e *Engine) Column(src Source, col int) Column {
	return e.resolve(src).columns[col]
}

// ContentSize is the full scrollable size of the grid.
func (e *Engine) ContentSize(src Source) Size {
	s := e.resolve(src)
	h := s.rowsTop + s.rowsHeight + s.bands[BandFooter].height() + s.bands[BandPagination].height()
	return Size{Width: s.contentWidth, Height: h}
}

// RowY returns the top of row r in content coordinates.
func (e *Engine) RowY(src Source, r int) float64 {
	return e.resolve(src).rowY[r]
}

// CellRect returns the natural rectangle of a cell.
func (e *Engine) CellRect(src Source, row, col int) Rect {
	s := e.resolve(src)
	key := cellKey{fp: s.fp, row: row, col: col}
	if r, ok := e.rects.Get(key); ok {
		return r
	}
	c := s.columns[col]
	r := Rect{X: c.X, Y: s.rowY[row], W: c.Width, H: s.rowH[row]}
	e.rects.Add(key, r)
	return r
}

// HeaderRect returns the natural rectangle of header cell col.
func (e *Engine) HeaderRect(src Source, col int) Rect {
	s := e.resolve(src)
	c := s.columns[col]
	return Rect{X: c.X, Y: s.bands[BandSearch].height(), W: c.Width, H: s.bands[BandHeader].height()}
}

// FooterRect returns the natural rectangle of footer cell col.
func (e *Engine) FooterRect(src Source, col int) Rect {
	s := e.resolve(src)
	c := s.columns[col]
	return Rect{X: c.X, Y: s.rowsTop + s.rowsHeight, W: c.Width, H: s.bands[BandFooter].height()}
}

// RowsInView returns the half-open range [first, last) of rows that
// intersect the vertical span [top, top+height).
func (e *Engine) RowsInView(src Source, top, height float64) (first, last int) {
	s := e.resolve(src)
	n := len(s.rowY)
	first = sort.Search(n, func(i int) bool { return s.rowY[i]+s.rowH[i] > top })
	last = sort.Search(n, func(i int) bool { return s.rowY[i] >= top+height })
	if last < first {
		last = first
	}
	return first, last
}

// PinnedX returns where column col is drawn, in content coordinates, when
// the viewport is scrolled horizontally by scrollX. Leading pinned columns
// follow the visible leading edge, trailing pinned columns stick to the
// visible trailing edge, and other columns keep their natural offset.
func (e *Engine) PinnedX(src Source, col int, scrollX, viewportWidth float64) float64 {
	s := e.resolve(src)
	c := s.columns[col]
	if c.Pin == PinNone {
		return c.X
	}
	cw := s.contentWidth
	sx := scrollX
	if s.rtl {
		sx = max(0, cw-viewportWidth-scrollX)
	}
	x := c.logicalX
	switch c.Pin {
	case PinLeading:
		x = sx + c.logicalX
	case PinTrailing:
		x = min(c.logicalX, sx+viewportWidth-(cw-c.logicalX))
	}
	if s.rtl {
		x = cw - x - c.Width
	}
	return x
}

// Placed is a column positioned for one horizontal scroll offset.
type Placed struct {
	Column
	// DrawX is the column's x in viewport coordinates.
	DrawX float64
}

// ColumnsInView returns the columns visible in the viewport, unpinned
// columns first so pinned ones can be drawn over them.
func (e *Engine) ColumnsInView(src Source, scrollX, viewportWidth float64) []Placed {
	cols := e.resolve(src).columns
	var scrolling, pinned []Placed
	for _, c := range cols {
		x := e.PinnedX(src, c.Index, scrollX, viewportWidth) - scrollX
		if x+c.Width <= 0 || x >= viewportWidth {
			continue
		}
		p := Placed{Column: c, DrawX: x}
		if c.Pinned() {
			pinned = append(pinned, p)
		} else {
			scrolling = append(scrolling, p)
		}
	}
	return append(scrolling, pinned...)
}

// BandLayout holds the band rectangles for one vertical scroll offset.
type BandLayout struct {
	Search, Header, Footer, Pagination Rect
}

// Rect returns the rectangle of band b.
func (bl BandLayout) Rect(b Band) Rect {
	switch b {
	case BandSearch:
		return bl.Search
	case BandHeader:
		return bl.Header
	case BandFooter:
		return bl.Footer
	case BandPagination:
		return bl.Pagination
	}
	return Rect{}
}

// Bands positions the bands for a vertical scroll offset. Floating bands
// stay pinned to the viewport edge; the result is never cached. A
// non-positive viewportHeight uses the frame height.
func (e *Engine) Bands(src Source, scrollY, viewportHeight float64) BandLayout {
	s := e.resolve(src)
	if viewportHeight <= 0 {
		viewportHeight = s.fp.frame.Height
	}
	width := max(s.contentWidth, s.fp.frame.Width)

	search := s.bands[BandSearch]
	header := s.bands[BandHeader]
	footer := s.bands[BandFooter]
	pagination := s.bands[BandPagination]

	searchY := 0.0
	if search.Floating {
		searchY = max(searchY, scrollY)
	}
	headerY := search.height()
	if header.Floating {
		top := scrollY
		if search.Floating {
			top += search.height()
		}
		headerY = max(headerY, top)
	}

	footerY := s.rowsTop + s.rowsHeight
	paginationY := footerY + footer.height()
	bottom := scrollY + viewportHeight
	if pagination.Floating {
		paginationY = min(paginationY, bottom-pagination.height())
	}
	if footer.Floating {
		limit := bottom - footer.height()
		if pagination.Floating {
			limit -= pagination.height()
		}
		footerY = min(footerY, limit)
	}

	return BandLayout{
		Search:     Rect{X: 0, Y: searchY, W: width, H: search.height()},
		Header:     Rect{X: 0, Y: headerY, W: width, H: header.height()},
		Footer:     Rect{X: 0, Y: footerY, W: width, H: footer.height()},
		Pagination: Rect{X: 0, Y: paginationY, W: width, H: pagination.height()},
	}
}
