// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/gridview/paint.go
// Summary: Painter helpers for clipped, width-aware text.

package gridview

import (
	"github.com/framegrace/texelui/core"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

func newBuffer(w, h int) [][]core.Cell {
	b := make([][]core.Cell, h)
	for y := range b {
		b[y] = make([]core.Cell, w)
	}
	return b
}

func fill(p *core.Painter, x, y, w, h int, style tcell.Style) {
	p.Fill(core.Rect{X: x, Y: y, W: w, H: h}, ' ', style)
}

// text writes s at (x, y) without crossing clipX0 or clipX1 and returns
// the number of columns it advanced. The trailing half of a wide rune is
// written with a zero Ch so hosts skip it.
func text(p *core.Painter, x, y, clipX0, clipX1 int, s string, style tcell.Style) int {
	if clipX1 <= clipX0 {
		return 0
	}
	cp := p.WithClip(core.Rect{X: clipX0, Y: y, W: clipX1 - clipX0, H: 1})
	start := x
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > clipX1 {
			break
		}
		cp.SetCell(x, y, r, style)
		for i := 1; i < w; i++ {
			cp.SetCell(x+i, y, 0, style)
		}
		x += w
	}
	return x - start
}
