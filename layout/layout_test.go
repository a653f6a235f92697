// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package layout

import (
	"math"
	"testing"
)

type fakeSource struct {
	averages  []float64
	titles    []float64
	overrides map[int]float64
	rows      int
	rowHeight float64
	spacing   float64
	frame     Size
	scale     bool
	fixed     FixedColumns
	rtl       bool
	bands     map[Band]BandSpec
}

func newFakeSource(averages ...float64) *fakeSource {
	return &fakeSource{
		averages:  averages,
		titles:    make([]float64, len(averages)),
		rows:      3,
		rowHeight: 1,
		frame:     Size{Width: 80, Height: 24},
		bands:     map[Band]BandSpec{},
	}
}

func (f *fakeSource) ColumnCount() int                  { return len(f.averages) }
func (f *fakeSource) RowCount() int                     { return f.rows }
func (f *fakeSource) AverageDataLength(col int) float64 { return f.averages[col] }
func (f *fakeSource) HeaderTitleWidth(col int) float64  { return f.titles[col] }
func (f *fakeSource) ColumnWidthOverride(col int) (float64, bool) {
	w, ok := f.overrides[col]
	return w, ok
}
func (f *fakeSource) RowHeight(row int) float64  { return f.rowHeight }
func (f *fakeSource) InterRowSpacing() float64   { return f.spacing }
func (f *fakeSource) Frame() Size                { return f.frame }
func (f *fakeSource) ScaleToFill() bool          { return f.scale }
func (f *fakeSource) FixedColumns() FixedColumns { return f.fixed }
func (f *fakeSource) RightToLeft() bool          { return f.rtl }
func (f *fakeSource) Band(b Band) BandSpec       { return f.bands[b] }

func sum(ws []float64) float64 {
	t := 0.0
	for _, w := range ws {
		t += w
	}
	return t
}

func TestAutomaticWidth(t *testing.T) {
	e := New(DefaultMetrics(), 0)
	src := newFakeSource(100, 5, 20)
	src.titles[2] = 90

	// 100 + 10 + 2*15
	if got := e.AutomaticWidth(src, 0); got != 140 {
		t.Errorf("AutomaticWidth(0) = %v, want 140", got)
	}
	if got := e.AutomaticWidth(src, 1); got != 70 {
		t.Errorf("AutomaticWidth(1) = %v, want minimum 70", got)
	}
	if got := e.AutomaticWidth(src, 2); got != 90 {
		t.Errorf("AutomaticWidth(2) = %v, want header width 90", got)
	}
}

func TestScaleToFillFillsFrame(t *testing.T) {
	e := New(TerminalMetrics(), 0)
	src := newFakeSource(10, 4, 20)
	src.scale = true
	src.frame = Size{Width: 100, Height: 20}

	widths := e.ColumnWidths(src)
	if got := sum(widths); math.Abs(got-100) > 1e-9 {
		t.Errorf("sum(widths) = %v, want 100", got)
	}
	// Proportions preserved: 14:8:24 before scaling.
	if r := widths[0] / widths[2]; math.Abs(r-14.0/24.0) > 1e-9 {
		t.Errorf("width ratio = %v, want %v", r, 14.0/24.0)
	}
}

func TestScaleToFillLeavesWideContent(t *testing.T) {
	e := New(TerminalMetrics(), 0)
	src := newFakeSource(50, 60)
	src.scale = true
	src.frame = Size{Width: 40, Height: 10}

	widths := e.ColumnWidths(src)
	if widths[0] != 54 || widths[1] != 64 {
		t.Errorf("widths = %v, want unchanged [54 64]", widths)
	}
}

func TestScaleToFillDisabled(t *testing.T) {
	e := New(TerminalMetrics(), 0)
	src := newFakeSource(10)
	src.frame = Size{Width: 100}
	if got := e.ColumnWidths(src)[0]; got != 14 {
		t.Errorf("width = %v, want 14", got)
	}
}

func TestOverrideWinsAndIsNotScaled(t *testing.T) {
	e := New(TerminalMetrics(), 0)
	src := newFakeSource(10, 10)
	src.overrides = map[int]float64{0: 30}
	src.scale = true
	src.frame = Size{Width: 100}

	widths := e.ColumnWidths(src)
	if widths[0] != 30 {
		t.Errorf("override width = %v, want 30", widths[0])
	}
	if math.Abs(sum(widths)-100) > 1e-9 {
		t.Errorf("sum = %v, want 100", sum(widths))
	}
}

func TestPinnedColumns(t *testing.T) {
	e := New(TerminalMetrics(), 0)
	src := newFakeSource(10, 10, 10, 10, 10)
	src.fixed = FixedColumns{Left: 1, Right: 1}

	want := []bool{true, false, false, false, true}
	for i, c := range e.Columns(src) {
		if c.Pinned() != want[i] {
			t.Errorf("column %d pinned = %v, want %v", i, c.Pinned(), want[i])
		}
	}
}

func TestNaturalOffsets(t *testing.T) {
	e := New(TerminalMetrics(), 0)
	src := newFakeSource(10, 20, 30)
	cols := e.Columns(src)
	wantX := []float64{0, 14, 38}
	for i, c := range cols {
		if c.X != wantX[i] {
			t.Errorf("column %d X = %v, want %v", i, c.X, wantX[i])
		}
	}
	if got := e.ContentSize(src).Width; got != 72 {
		t.Errorf("content width = %v, want 72", got)
	}

	src.rtl = true
	e.Invalidate()
	cols = e.Columns(src)
	// Mirrored: 72-0-14, 72-14-24, 72-38-34.
	wantX = []float64{58, 34, 0}
	for i, c := range cols {
		if c.X != wantX[i] {
			t.Errorf("rtl column %d X = %v, want %v", i, c.X, wantX[i])
		}
	}
}

func TestPinnedX(t *testing.T) {
	e := New(TerminalMetrics(), 0)
	// Five columns of width 20, content width 100.
	src := newFakeSource(16, 16, 16, 16, 16)
	src.fixed = FixedColumns{Left: 1, Right: 1}
	viewport := 50.0

	if got := e.PinnedX(src, 0, 30, viewport); got != 30 {
		t.Errorf("leading PinnedX = %v, want 30", got)
	}
	// Trailing column natural X = 80; visible right edge at 30+50.
	if got := e.PinnedX(src, 4, 30, viewport); got != 60 {
		t.Errorf("trailing PinnedX = %v, want 60", got)
	}
	// Scrolled fully right: trailing column at its natural place.
	if got := e.PinnedX(src, 4, 50, viewport); got != 80 {
		t.Errorf("trailing PinnedX at end = %v, want 80", got)
	}
	if got := e.PinnedX(src, 2, 30, viewport); got != 40 {
		t.Errorf("unpinned PinnedX = %v, want natural 40", got)
	}
}

func TestColumnsInView(t *testing.T) {
	e := New(TerminalMetrics(), 0)
	src := newFakeSource(16, 16, 16, 16, 16)
	src.fixed = FixedColumns{Left: 1}

	placed := e.ColumnsInView(src, 45, 30)
	var idx []int
	for _, p := range placed {
		idx = append(idx, p.Index)
	}
	// Columns 2 (40..60) and 3 (60..80) intersect 45..75; pinned 0 drawn last.
	want := []int{2, 3, 0}
	if len(idx) != len(want) {
		t.Fatalf("visible columns = %v, want %v", idx, want)
	}
	for i := range want {
		if idx[i] != want[i] {
			t.Fatalf("visible columns = %v, want %v", idx, want)
		}
	}
	if placed[2].DrawX != 0 {
		t.Errorf("pinned DrawX = %v, want 0", placed[2].DrawX)
	}
}

func TestCacheFingerprintAndInvalidate(t *testing.T) {
	e := New(TerminalMetrics(), 16)
	src := newFakeSource(10, 10)

	r1 := e.CellRect(src, 1, 1)
	_ = e.CellRect(src, 2, 0)
	if e.Builds() != 1 {
		t.Fatalf("Builds = %d, want 1", e.Builds())
	}

	// Row-height change is not part of the fingerprint: stale until invalidated.
	src.rowHeight = 2
	if got := e.CellRect(src, 1, 1); got != r1 {
		t.Errorf("CellRect changed without invalidation: %+v", got)
	}
	e.Invalidate()
	if got := e.CellRect(src, 1, 1); got.Y != 2 || got.H != 2 {
		t.Errorf("CellRect after Invalidate = %+v, want Y=2 H=2", got)
	}
	if e.Builds() != 2 {
		t.Errorf("Builds = %d, want 2", e.Builds())
	}

	// Frame size is part of the fingerprint.
	src.frame = Size{Width: 100, Height: 30}
	_ = e.CellRect(src, 0, 0)
	if e.Builds() != 3 {
		t.Errorf("Builds after resize = %d, want 3", e.Builds())
	}
}

func TestRowGeometry(t *testing.T) {
	e := New(TerminalMetrics(), 0)
	src := newFakeSource(10)
	src.rows = 4
	src.rowHeight = 2
	src.spacing = 1
	src.bands[BandSearch] = BandSpec{Visible: true, Height: 1}
	src.bands[BandHeader] = BandSpec{Visible: true, Height: 1}
	src.bands[BandFooter] = BandSpec{Visible: true, Height: 1}
	src.bands[BandPagination] = BandSpec{Visible: false, Height: 5}

	// Rows start below search+header at y=2, stride 3.
	for r, want := range []float64{2, 5, 8, 11} {
		if got := e.RowY(src, r); got != want {
			t.Errorf("RowY(%d) = %v, want %v", r, got, want)
		}
	}
	if got := e.ContentSize(src).Height; got != 14 {
		t.Errorf("content height = %v, want 14", got)
	}
	// Row 0 ends exactly at 4 and is excluded; row 3 starts at 11.
	first, last := e.RowsInView(src, 4, 5)
	if first != 1 || last != 3 {
		t.Errorf("RowsInView(4,5) = [%d,%d), want [1,3)", first, last)
	}
	if r := e.HeaderRect(src, 0); r.Y != 1 || r.H != 1 {
		t.Errorf("HeaderRect = %+v", r)
	}
	if r := e.FooterRect(src, 0); r.Y != 13 {
		t.Errorf("FooterRect.Y = %v, want 13", r.Y)
	}
}

func TestBandsFloating(t *testing.T) {
	e := New(TerminalMetrics(), 0)
	src := newFakeSource(10)
	src.rows = 20
	src.frame = Size{Width: 40, Height: 10}
	src.bands[BandSearch] = BandSpec{Visible: true, Height: 1, Floating: true}
	src.bands[BandHeader] = BandSpec{Visible: true, Height: 1, Floating: true}
	src.bands[BandFooter] = BandSpec{Visible: true, Height: 1, Floating: true}

	bl := e.Bands(src, 5, 10)
	if bl.Search.Y != 5 || bl.Header.Y != 6 {
		t.Errorf("floating top bands at %v/%v, want 5/6", bl.Search.Y, bl.Header.Y)
	}
	if bl.Footer.Y != 14 {
		t.Errorf("floating footer at %v, want 14", bl.Footer.Y)
	}
	if bl.Search.W != 40 {
		t.Errorf("band width = %v, want frame width 40", bl.Search.W)
	}

	src.bands[BandHeader] = BandSpec{Visible: true, Height: 1}
	src.bands[BandFooter] = BandSpec{Visible: true, Height: 1}
	e.Invalidate()
	bl = e.Bands(src, 5, 10)
	if bl.Header.Y != 1 {
		t.Errorf("non-floating header at %v, want natural 1", bl.Header.Y)
	}
	if bl.Footer.Y != 22 {
		t.Errorf("non-floating footer at %v, want natural 22", bl.Footer.Y)
	}
}

func TestPinFor(t *testing.T) {
	f := FixedColumns{Left: 2, Right: 2}
	got := []Pin{f.PinFor(0, 3), f.PinFor(1, 3), f.PinFor(2, 3), f.PinFor(3, 3)}
	want := []Pin{PinLeading, PinLeading, PinTrailing, PinNone}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("PinFor(%d, 3) = %v, want %v", i, got[i], want[i])
		}
	}
}
