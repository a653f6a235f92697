// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/gridview/view.go
// Summary: Terminal view of a grid controller.
// Usage: Hosted by devshell; the view renders into a cell buffer and
// forwards keys and mouse input to the controller.

// Package gridview draws a grid.Controller into a terminal cell buffer.
package gridview

import (
	"math"
	"sync"

	"github.com/framegrace/texelui/core"
	"github.com/framegrace/texelui/scroll"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/sirupsen/logrus"

	"github.com/framegrace/texelgrid/colsort"
	"github.com/framegrace/texelgrid/grid"
	"github.com/framegrace/texelgrid/layout"
)

const (
	wheelStep = 3
	panStep   = 4
)

var _ core.App = (*View)(nil)

// View renders a controller and routes input to it. Every method except
// RequestReload must be called from the host's UI goroutine.
type View struct {
	mu   sync.Mutex
	ctrl *grid.Controller
	rows *snapshot
	log  *logrus.Entry

	title         string
	width, height int
	hscroll       scroll.State
	vscroll       scroll.State
	cursor        int
	gen           int

	pendingMu     sync.Mutex
	pendingReload bool
	pendingSource grid.DataSource
	stop          chan struct{}
	stopOnce      sync.Once
	refreshChan   chan<- bool
}

// New creates a view over ctrl.
func New(ctrl *grid.Controller, title string) *View {
	return &View{
		ctrl:  ctrl,
		rows:  newSnapshot(ctrl),
		log:   logrus.WithField("component", "gridview"),
		title: title,
		gen:   ctrl.Generation(),
		stop:  make(chan struct{}),
	}
}

// Controller returns the controller the view draws.
func (v *View) Controller() *grid.Controller { return v.ctrl }

func (v *View) SetRefreshNotifier(refreshChan chan<- bool) {
	v.refreshChan = refreshChan
}

// Run blocks until Stop. The view has no background work of its own.
func (v *View) Run() error {
	<-v.stop
	return nil
}

func (v *View) Stop() {
	v.stopOnce.Do(func() { close(v.stop) })
}

func (v *View) Resize(cols, rows int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.width, v.height = cols, rows
}

func (v *View) GetTitle() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	if n := v.ctrl.Needle(); n != "" {
		return v.title + " /" + n
	}
	return v.title
}

// RequestReload asks the view to reload on the next render. A non-nil ds
// replaces the controller's data source first; nil pulls the current one
// again. It is safe to call from any goroutine.
func (v *View) RequestReload(ds grid.DataSource) {
	v.pendingMu.Lock()
	v.pendingReload = true
	if ds != nil {
		v.pendingSource = ds
	}
	v.pendingMu.Unlock()
	v.requestRefresh()
}

func (v *View) takePending() (grid.DataSource, bool) {
	v.pendingMu.Lock()
	defer v.pendingMu.Unlock()
	ds, ok := v.pendingSource, v.pendingReload
	v.pendingSource, v.pendingReload = nil, false
	return ds, ok
}

func (v *View) requestRefresh() {
	if v.refreshChan == nil {
		return
	}
	select {
	case v.refreshChan <- true:
	default:
	}
}

// sync brings the view up to date with the controller before drawing.
func (v *View) sync() {
	if ds, ok := v.takePending(); ok {
		if ds != nil {
			v.ctrl.SetDataSource(ds)
		}
		if err := v.ctrl.Reload(); err != nil {
			v.log.WithError(err).Warn("Gridview: reload failed, keeping previous rows")
		}
	}
	if g := v.ctrl.Generation(); g != v.gen {
		v.gen = g
		v.hscroll = v.hscroll.ScrollToTop()
		v.vscroll = v.vscroll.ScrollToTop()
		v.rows.ReloadAll()
	}
	if v.cursor >= v.ctrl.ColumnCount() {
		v.cursor = max(0, v.ctrl.ColumnCount()-1)
	}
	v.ctrl.SetFrame(layout.Size{Width: float64(v.width), Height: float64(v.height)})
	v.clampScroll()
}

// clampScroll refreshes both scroll states from the content size. The
// horizontal state measures columns in its height fields.
func (v *View) clampScroll() {
	size := v.ctrl.ContentSize()
	v.hscroll = scroll.State{
		ContentHeight:  int(math.Ceil(size.Width)),
		ViewportHeight: v.width,
		Offset:         v.hscroll.Offset,
	}.Clamp()
	v.vscroll = scroll.State{
		ContentHeight:  int(math.Ceil(size.Height)),
		ViewportHeight: v.height,
		Offset:         v.vscroll.Offset,
	}.Clamp()
}

func (v *View) scrollX() float64 { return float64(v.hscroll.Offset) }
func (v *View) scrollY() float64 { return float64(v.vscroll.Offset) }

// Render draws the grid into a buffer the size of the view.
func (v *View) Render() [][]core.Cell {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.width <= 0 || v.height <= 0 {
		return [][]core.Cell{}
	}
	v.sync()

	buf := newBuffer(v.width, v.height)
	p := core.NewPainter(buf, core.Rect{W: v.width, H: v.height})
	fill(p, 0, 0, v.width, v.height, v.ctrl.RowStyle())

	w, h := float64(v.width), float64(v.height)
	cols := v.ctrl.ColumnsInView(v.scrollX(), w)
	v.drawRows(p, cols)

	bands := v.ctrl.Bands(v.scrollY(), h)
	v.drawHeaders(p, cols, bands.Header)
	v.drawFooters(p, cols, bands.Footer)
	v.drawSearch(p, bands.Search)
	v.drawPagination(p, bands.Pagination)
	v.drawScrollBars(p)
	return buf
}

func (v *View) margin() int {
	return int(v.ctrl.Options().Metrics.CellHorizontalMargin)
}

func (v *View) drawRows(p *core.Painter, cols []layout.Placed) {
	first, last := v.ctrl.RowsInView(v.scrollY(), float64(v.height))
	last = min(last, len(v.rows.rows), v.ctrl.RowCount())
	sel, hasSel := v.ctrl.Selected()
	m := v.margin()
	for r := first; r < last; r++ {
		y := int(v.ctrl.RowY(r) - v.scrollY())
		rh := max(1, int(v.ctrl.HeightForRow(r)))
		row := v.rows.rows[r]
		for _, pc := range cols {
			x, cw := int(pc.DrawX), int(pc.Width)
			style := v.ctrl.CellStyle(r, pc.Index)
			if hasSel && sel.Row == r {
				style = style.Reverse(true)
			}
			fill(p, x, y, cw, rh, style)
			v.drawAligned(p, x+m, x+cw-m, y, row.ValueAt(pc.Index).Display(), style)
		}
	}
}

// drawAligned writes s between x0 and x1, right-aligned for right-to-left
// grids.
func (v *View) drawAligned(p *core.Painter, x0, x1, y int, s string, style tcell.Style) {
	start := x0
	if v.ctrl.RightToLeft() {
		start = max(x0, x1-runewidth.StringWidth(s))
	}
	text(p, start, y, x0, x1, s, style)
}

// bandRow converts a band rectangle to its first viewport row.
func (v *View) bandRow(r layout.Rect) (int, bool) {
	if r.Empty() {
		return 0, false
	}
	y := int(r.Y - v.scrollY())
	return y, y >= 0 && y < v.height
}

func sortIndicator(t colsort.SortType) string {
	switch t {
	case colsort.Ascending:
		return "▲"
	case colsort.Descending:
		return "▼"
	case colsort.Unspecified:
		return "↕"
	}
	return ""
}

func (v *View) drawHeaders(p *core.Painter, cols []layout.Placed, band layout.Rect) {
	y, ok := v.bandRow(band)
	if !ok {
		return
	}
	base := v.ctrl.HeaderStyle()
	fill(p, 0, y, v.width, int(band.H), base)
	headers := v.ctrl.Headers()
	m := v.margin()
	indicator := int(v.ctrl.Options().Metrics.SortIndicatorWidth)
	for _, pc := range cols {
		x, cw := int(pc.DrawX), int(pc.Width)
		style := base
		if pc.Index == v.cursor {
			style = style.Reverse(true)
		}
		fill(p, x, y, cw, int(band.H), style)
		h := headers[pc.Index]
		v.drawAligned(p, x+m, x+cw-m-indicator, y, h.Title, style)
		if arrow := sortIndicator(h.SortType); arrow != "" {
			text(p, x+cw-m-1, y, x, x+cw, arrow, style)
		}
	}
}

func (v *View) drawFooters(p *core.Painter, cols []layout.Placed, band layout.Rect) {
	y, ok := v.bandRow(band)
	if !ok {
		return
	}
	style := v.ctrl.HeaderStyle()
	fill(p, 0, y, v.width, int(band.H), style)
	footers := v.ctrl.Footers()
	m := v.margin()
	for _, pc := range cols {
		if pc.Index >= len(footers) {
			continue
		}
		x, cw := int(pc.DrawX), int(pc.Width)
		v.drawAligned(p, x+m, x+cw-m, y, footers[pc.Index].Title, style)
	}
}

func (v *View) drawSearch(p *core.Painter, band layout.Rect) {
	y, ok := v.bandRow(band)
	if !ok {
		return
	}
	style := v.ctrl.RowStyle()
	fill(p, 0, y, v.width, int(band.H), style)
	n := text(p, v.margin(), y, 0, v.width, "Search: ", style.Bold(true))
	n += text(p, v.margin()+n, y, 0, v.width, v.ctrl.Needle(), style)
	text(p, v.margin()+n, y, 0, v.width, "▏", style)
}

func (v *View) drawPagination(p *core.Painter, band layout.Rect) {
	y, ok := v.bandRow(band)
	if !ok {
		return
	}
	style := v.ctrl.RowStyle()
	fill(p, 0, y, v.width, int(band.H), style)
	title := v.ctrl.Supplementary(grid.KindPagination, 0).Title
	x := v.width - v.margin() - runewidth.StringWidth(title)
	text(p, x, y, 0, v.width, title, style)
}

// drawScrollBars draws the vertical bar on the trailing column and the
// horizontal bar on the last row. The horizontal bar is drawn as a vertical
// one into a transposed strip.
func (v *View) drawScrollBars(p *core.Painter) {
	style := v.ctrl.RowStyle()
	if v.ctrl.ShowVerticalScrollBars() && v.vscroll.CanScroll() {
		cfg := scroll.DefaultScrollbarConfig(style.Bold(true), style)
		cfg.ThumbChar, cfg.TrackChar = '┃', '│'
		scroll.DrawScrollbar(p, core.Rect{X: v.width - 1, W: 1, H: v.height}, v.vscroll, cfg)
	}
	if v.ctrl.ShowHorizontalScrollBars() && v.hscroll.CanScroll() {
		cfg := scroll.DefaultScrollbarConfig(style.Bold(true), style)
		cfg.ThumbChar, cfg.TrackChar = '━', '─'
		cfg.UpArrow, cfg.DownArrow = '◀', '▶'
		strip := newBuffer(1, v.width)
		scroll.DrawScrollbar(core.NewPainter(strip, core.Rect{W: 1, H: v.width}), core.Rect{W: 1, H: v.width}, v.hscroll, cfg)
		for x, c := range strip {
			p.SetCell(x, v.height-1, c[0].Ch, c[0].Style)
		}
	}
}
