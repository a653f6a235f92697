// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/gridview/input.go
// Summary: Keyboard and mouse handling of the grid view.

package gridview

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelgrid/grid"
	"github.com/framegrace/texelgrid/layout"
)

// HandleKey edits the search needle, scrolls and sorts.
//
//	printable keys   append to the search text
//	Backspace        remove the last search rune
//	Esc              clear the search text
//	arrows, PgUp/PgDn, Home/End  scroll
//	Tab / Shift-Tab  move the column cursor
//	Enter            cycle the sort order of the cursor column
func (v *View) HandleKey(ev *tcell.EventKey) {
	v.mu.Lock()
	defer v.mu.Unlock()

	switch ev.Key() {
	case tcell.KeyRune:
		v.search(v.ctrl.Needle() + string(ev.Rune()))
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if n := []rune(v.ctrl.Needle()); len(n) > 0 {
			v.search(string(n[:len(n)-1]))
		}
	case tcell.KeyEscape:
		if v.ctrl.Needle() != "" {
			v.search("")
		}
	case tcell.KeyUp:
		v.vscroll = v.vscroll.ScrollBy(-v.step())
	case tcell.KeyDown:
		v.vscroll = v.vscroll.ScrollBy(v.step())
	case tcell.KeyPgUp:
		v.vscroll = v.vscroll.ScrollBy(-v.height)
	case tcell.KeyPgDn:
		v.vscroll = v.vscroll.ScrollBy(v.height)
	case tcell.KeyHome:
		v.vscroll = v.vscroll.ScrollToTop()
	case tcell.KeyEnd:
		v.vscroll = v.vscroll.ScrollToBottom()
	case tcell.KeyLeft:
		v.hscroll = v.hscroll.ScrollBy(-panStep)
	case tcell.KeyRight:
		v.hscroll = v.hscroll.ScrollBy(panStep)
	case tcell.KeyTab:
		v.moveCursor(1)
	case tcell.KeyBacktab:
		v.moveCursor(-1)
	case tcell.KeyEnter:
		v.tap(v.cursor)
	default:
		return
	}
	v.clampScroll()
}

// HandleMouse sorts on header clicks, selects on row clicks and scrolls on
// the wheel.
func (v *View) HandleMouse(ev *tcell.EventMouse) {
	v.mu.Lock()
	defer v.mu.Unlock()

	x, y := ev.Position()
	buttons := ev.Buttons()
	switch {
	case buttons&tcell.WheelUp != 0:
		v.vscroll = v.vscroll.ScrollBy(-wheelStep * v.step())
	case buttons&tcell.WheelDown != 0:
		v.vscroll = v.vscroll.ScrollBy(wheelStep * v.step())
	case buttons&tcell.WheelLeft != 0:
		v.hscroll = v.hscroll.ScrollBy(-panStep)
	case buttons&tcell.WheelRight != 0:
		v.hscroll = v.hscroll.ScrollBy(panStep)
	case buttons&tcell.Button1 != 0:
		v.click(x, y)
	default:
		return
	}
	v.clampScroll()
}

func (v *View) click(x, y int) {
	col, ok := v.columnAt(x)
	if !ok {
		return
	}
	bands := v.ctrl.Bands(v.scrollY(), float64(v.height))
	fy := float64(y) + v.scrollY()
	if within(bands.Header, fy) {
		v.cursor = col
		v.tap(col)
		return
	}
	if within(bands.Search, fy) || within(bands.Footer, fy) || within(bands.Pagination, fy) {
		return
	}
	first, last := v.ctrl.RowsInView(fy, 1)
	if first >= last {
		return
	}
	ip := grid.IndexPath{Row: first, Column: col}
	if sel, ok := v.ctrl.Selected(); ok && sel == ip {
		v.ctrl.DeselectItem(ip)
		return
	}
	v.ctrl.SelectItem(ip)
}

func within(r layout.Rect, y float64) bool {
	return !r.Empty() && y >= r.Y && y < r.MaxY()
}

// columnAt returns the column drawn at viewport x. Pinned columns are
// drawn last and win.
func (v *View) columnAt(x int) (int, bool) {
	cols := v.ctrl.ColumnsInView(v.scrollX(), float64(v.width))
	fx := float64(x)
	for i := len(cols) - 1; i >= 0; i-- {
		pc := cols[i]
		if fx >= pc.DrawX && fx < pc.DrawX+pc.Width {
			return pc.Index, true
		}
	}
	return 0, false
}

func (v *View) step() int {
	return max(1, int(v.ctrl.HeightForRow(0)+v.ctrl.InterRowSpacing()))
}

func (v *View) search(needle string) {
	if err := v.ctrl.ApplySearch(v.rows, needle); err != nil {
		v.log.WithError(err).Debug("Gridview: search batch replaced by reload")
	}
	v.vscroll = v.vscroll.ScrollToTop()
}

func (v *View) tap(col int) {
	v.ctrl.OnColumnTap(col)
	v.rows.ReloadAll()
}

// moveCursor advances the column cursor by delta, wrapping, and scrolls the
// cursor column into view.
func (v *View) moveCursor(delta int) {
	n := v.ctrl.ColumnCount()
	if n == 0 {
		return
	}
	v.cursor = ((v.cursor+delta)%n + n) % n
	c := v.ctrl.Column(v.cursor)
	if c.Pinned() {
		return
	}
	v.hscroll = v.hscroll.ScrollTo(int(c.X))
	if end := int(math.Ceil(c.X + c.Width)); end > v.hscroll.Offset+v.width {
		v.hscroll = v.hscroll.WithOffset(end - v.width)
	}
}
