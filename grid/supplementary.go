// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package grid

import (
	"fmt"

	"github.com/framegrace/texelgrid/colsort"
	"github.com/framegrace/texelgrid/layout"
)

// Supplementary view kinds.
const (
	KindPagination   = "pagination"
	KindColumnHeader = "column-header"
	KindFooter       = "footer"
	KindSearch       = "search"
)

// Supplementary describes one non-cell view of the grid at its natural
// position.
type Supplementary struct {
	Kind     string
	Index    int
	Title    string
	SortType colsort.SortType
	Rect     layout.Rect
}

// Supplementary resolves the view of kind for column index. Index is
// ignored for the search and pagination bands. An unknown kind is a
// programming error and panics.
func (c *Controller) Supplementary(kind string, index int) Supplementary {
	s := Supplementary{Kind: kind, Index: index, SortType: colsort.Hidden}
	switch kind {
	case KindColumnHeader:
		h := c.headers[index]
		s.Title, s.SortType = h.Title, h.SortType
		s.Rect = c.layout.HeaderRect(c, index)
	case KindFooter:
		f := c.footers[index]
		s.Title, s.SortType = f.Title, f.SortType
		s.Rect = c.layout.FooterRect(c, index)
	case KindSearch:
		s.Title = c.needle
		s.Rect = c.naturalBands().Search
	case KindPagination:
		s.Title = fmt.Sprintf("%d of %d", len(c.active), len(c.baseline))
		s.Rect = c.naturalBands().Pagination
	default:
		panic(fmt.Sprintf("grid: unknown supplementary kind %q", kind))
	}
	return s
}

// naturalBands positions the bands as if the whole content were visible.
func (c *Controller) naturalBands() layout.BandLayout {
	return c.Bands(0, c.ContentSize().Height)
}
