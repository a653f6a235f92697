// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: grid/geometry.go
// Summary: Geometry queries of the controller. The controller is the
// layout.Source of its own layout engine.

package grid

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelgrid/layout"
	"github.com/framegrace/texelgrid/value"
)

var _ layout.Source = (*Controller)(nil)

// ColumnCount is the number of header columns.
func (c *Controller) ColumnCount() int { return c.model.ColumnCount() }

// RowCount is the number of active rows.
func (c *Controller) RowCount() int { return len(c.active) }

// AverageDataLength is the average content width of column col.
func (c *Controller) AverageDataLength(col int) float64 {
	return c.model.AverageDataLengthForColumn(col)
}

// HeaderTitleWidth measures the header title of column col.
func (c *Controller) HeaderTitleWidth(col int) float64 {
	return c.model.MeasureHeader(c.model.Headers()[col])
}

// ColumnWidthOverride returns the delegate width of column col, if any.
func (c *Controller) ColumnWidthOverride(col int) (float64, bool) {
	return resolveOptional(c.delegate.WidthForColumn, col)
}

// RowHeight is the height of active row r.
func (c *Controller) RowHeight(r int) float64 {
	return resolveAt(c.delegate.HeightForRow, r, c.opts.RowHeight)
}

// InterRowSpacing is the vertical gap between rows.
func (c *Controller) InterRowSpacing() float64 {
	return resolve(c.delegate.HeightOfInterRowSpacing, c.opts.InterRowSpacing)
}

// Frame is the size of the grid's viewport.
func (c *Controller) Frame() layout.Size { return c.frame }

// SetFrame resizes the viewport. Geometry is rebuilt on the next query.
func (c *Controller) SetFrame(s layout.Size) { c.frame = s }

// ScaleToFill reports whether columns stretch to the frame width.
func (c *Controller) ScaleToFill() bool {
	return resolve(c.delegate.ShouldScaleToFill, c.opts.ScaleToFill)
}

// FixedColumns is the pinned column spec.
func (c *Controller) FixedColumns() layout.FixedColumns {
	return resolve(c.delegate.FixedColumns, c.opts.FixedColumns)
}

// RightToLeft reports whether columns run right to left.
func (c *Controller) RightToLeft() bool {
	return resolve(c.delegate.ShouldSupportRightToLeft, c.opts.RightToLeft)
}

// Band describes band b for the layout engine.
func (c *Controller) Band(b layout.Band) layout.BandSpec {
	switch b {
	case layout.BandSearch:
		return layout.BandSpec{
			Visible:  c.showSearch(),
			Height:   resolve(c.delegate.HeightForSearchView, c.opts.SearchHeight),
			Floating: resolve(c.delegate.ShouldSearchHeaderFloat, c.opts.SearchFloat),
		}
	case layout.BandHeader:
		return layout.BandSpec{
			Visible:  true,
			Height:   resolve(c.delegate.HeightForSectionHeader, c.opts.HeaderHeight),
			Floating: resolve(c.delegate.ShouldSectionHeadersFloat, c.opts.HeadersFloat),
		}
	case layout.BandFooter:
		return layout.BandSpec{
			Visible:  c.showFooter() && len(c.footers) > 0,
			Height:   resolve(c.delegate.HeightForSectionFooter, c.opts.FooterHeight),
			Floating: resolve(c.delegate.ShouldSectionFootersFloat, c.opts.FootersFloat),
		}
	case layout.BandPagination:
		return layout.BandSpec{
			Visible:  c.showPagination(),
			Height:   c.opts.PaginationHeight,
			Floating: resolve(c.delegate.ShouldSectionFootersFloat, c.opts.FootersFloat),
		}
	}
	return layout.BandSpec{}
}

func (c *Controller) showSearch() bool {
	return resolve(c.delegate.ShouldShowSearchSection, c.opts.ShowSearch)
}

func (c *Controller) showFooter() bool {
	return resolve(c.delegate.ShouldShowFooter, c.opts.ShowFooter)
}

func (c *Controller) showPagination() bool {
	return resolve(c.delegate.ShouldShowPagination, c.opts.ShowPagination)
}

// InvalidateLayout drops cached geometry, e.g. after the host rotated or
// a delegate answer changed.
func (c *Controller) InvalidateLayout() { c.layout.Invalidate() }

// LayoutBuilds counts geometry rebuilds.
func (c *Controller) LayoutBuilds() int { return c.layout.Builds() }

// WidthForColumn is the resolved width of column col.
func (c *Controller) WidthForColumn(col int) float64 {
	return c.layout.Column(c, col).Width
}

// HeightForRow is the height of active row r.
func (c *Controller) HeightForRow(r int) float64 { return c.RowHeight(r) }

// HeightForSectionHeader is the header band height.
func (c *Controller) HeightForSectionHeader() float64 {
	return c.bandHeight(layout.BandHeader)
}

// HeightForSectionFooter is the footer band height, zero when hidden.
func (c *Controller) HeightForSectionFooter() float64 {
	return c.bandHeight(layout.BandFooter)
}

// HeightForSearchView is the search band height, zero when hidden.
func (c *Controller) HeightForSearchView() float64 {
	return c.bandHeight(layout.BandSearch)
}

// HeightForPaginationView is the pagination band height, zero when hidden.
func (c *Controller) HeightForPaginationView() float64 {
	return c.bandHeight(layout.BandPagination)
}

func (c *Controller) bandHeight(b layout.Band) float64 {
	spec := c.Band(b)
	if !spec.Visible {
		return 0
	}
	return spec.Height
}

// Column is the resolved geometry of column col.
func (c *Controller) Column(col int) layout.Column { return c.layout.Column(c, col) }

// Columns is the resolved geometry of every column.
func (c *Controller) Columns() []layout.Column { return c.layout.Columns(c) }

// CellRect is the natural rectangle of an active cell.
func (c *Controller) CellRect(row, col int) layout.Rect { return c.layout.CellRect(c, row, col) }

// RowY is the top of active row r.
func (c *Controller) RowY(r int) float64 { return c.layout.RowY(c, r) }

// ContentSize is the full scrollable size.
func (c *Controller) ContentSize() layout.Size { return c.layout.ContentSize(c) }

// CalculateContentWidth is the sum of all column widths.
func (c *Controller) CalculateContentWidth() float64 { return c.ContentSize().Width }

// Bands positions the bands for a vertical scroll offset.
func (c *Controller) Bands(scrollY, viewportHeight float64) layout.BandLayout {
	return c.layout.Bands(c, scrollY, viewportHeight)
}

// PinnedX is where column col is drawn for a horizontal scroll offset.
func (c *Controller) PinnedX(col int, scrollX, viewportWidth float64) float64 {
	return c.layout.PinnedX(c, col, scrollX, viewportWidth)
}

// ColumnsInView lists the columns visible for a horizontal scroll offset.
func (c *Controller) ColumnsInView(scrollX, viewportWidth float64) []layout.Placed {
	return c.layout.ColumnsInView(c, scrollX, viewportWidth)
}

// RowsInView returns the active rows intersecting [top, top+height).
func (c *Controller) RowsInView(top, height float64) (first, last int) {
	return c.layout.RowsInView(c, top, height)
}

// CellColor is the background of an active cell. Cells in the sorted
// column use the highlighted sequence, others the unhighlighted one.
func (c *Controller) CellColor(row, col int) tcell.Color {
	if c.active[row][col].Highlighted {
		return resolveAt(c.delegate.HighlightedColorForRow, row, paletteAt(c.opts.HighlightedRowColors, row))
	}
	return resolveAt(c.delegate.UnhighlightedColorForRow, row, paletteAt(c.opts.UnhighlightedRowColors, row))
}

func paletteAt(colors []tcell.Color, row int) tcell.Color {
	if len(colors) == 0 {
		return tcell.ColorDefault
	}
	return colors[row%len(colors)]
}

// CellStyle is the text style of an active cell, on its CellColor.
func (c *Controller) CellStyle(row, col int) tcell.Style {
	style := c.RowStyle()
	if c.active[row][col].Data.Kind() == value.KindLink {
		style = c.LinkStyle()
	}
	return style.Background(c.CellColor(row, col))
}

// HeaderStyle is the text style of header and footer titles.
func (c *Controller) HeaderStyle() tcell.Style {
	return resolve(c.delegate.HeaderStyle, c.opts.HeaderStyle)
}

// RowStyle is the text style of row cells.
func (c *Controller) RowStyle() tcell.Style {
	return resolve(c.delegate.RowStyle, c.opts.RowStyle)
}

// LinkStyle is the text style of link cells.
func (c *Controller) LinkStyle() tcell.Style {
	return resolve(c.delegate.LinkStyle, c.opts.LinkStyle)
}

// ShowVerticalScrollBars reports whether the host draws a vertical
// scroll indicator.
func (c *Controller) ShowVerticalScrollBars() bool {
	return resolve(c.delegate.ShouldShowVerticalScrollBars, c.opts.ShowVerticalScrollBars)
}

// ShowHorizontalScrollBars reports whether the host draws a horizontal
// scroll indicator.
func (c *Controller) ShowHorizontalScrollBars() bool {
	return resolve(c.delegate.ShouldShowHorizontalScrollBars, c.opts.ShowHorizontalScrollBars)
}
