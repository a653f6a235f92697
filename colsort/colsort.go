// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: colsort/colsort.go
// Summary: Per-column sort indicator state machine and the stable column sort.
//
// Only one column carries an active indicator at a time. Tapping a column
// cycles its indicator and resets every other column to its default.

package colsort

import (
	"sort"

	"github.com/framegrace/texelgrid/value"
)

// SortType is the sort indicator state of a column.
type SortType int

const (
	Unspecified SortType = iota
	Ascending
	Descending
	Hidden
)

func (t SortType) String() string {
	switch t {
	case Unspecified:
		return "unspecified"
	case Ascending:
		return "ascending"
	case Descending:
		return "descending"
	case Hidden:
		return "hidden"
	}
	return "unknown"
}

// Toggle returns the next state in the unspecified → ascending →
// descending → unspecified cycle. Hidden columns stay hidden.
func (t SortType) Toggle() SortType {
	switch t {
	case Unspecified:
		return Ascending
	case Ascending:
		return Descending
	case Descending:
		return Unspecified
	}
	return t
}

// Default returns the resting state of a column whose indicator was reset.
func (t SortType) Default() SortType {
	if t == Hidden {
		return Hidden
	}
	return Unspecified
}

// Active reports whether t orders rows.
func (t SortType) Active() bool {
	return t == Ascending || t == Descending
}

// ParseSortType maps a config string to a SortType.
func ParseSortType(s string) (SortType, bool) {
	switch s {
	case "unspecified", "":
		return Unspecified, true
	case "ascending", "asc":
		return Ascending, true
	case "descending", "desc":
		return Descending, true
	case "hidden":
		return Hidden, true
	}
	return Unspecified, false
}

// ColumnOrder pins a sort state to a column.
type ColumnOrder struct {
	Index int
	Order SortType
}

// Engine holds the sort indicator of every column.
type Engine struct {
	states []SortType
}

// New creates an engine seeded with the given initial states.
func New(initial []SortType) *Engine {
	return &Engine{states: append([]SortType(nil), initial...)}
}

// Len returns the number of columns.
func (e *Engine) Len() int { return len(e.states) }

// State returns the indicator of column i, Hidden when out of range.
func (e *Engine) State(i int) SortType {
	if i < 0 || i >= len(e.states) {
		return Hidden
	}
	return e.states[i]
}

// Toggle advances column k and resets every other column. It returns the
// new state of column k.
func (e *Engine) Toggle(k int) SortType {
	for i := range e.states {
		if i == k {
			e.states[i] = e.states[i].Toggle()
		} else {
			e.states[i] = e.states[i].Default()
		}
	}
	return e.State(k)
}

// Apply forces order onto its column and resets every other column.
func (e *Engine) Apply(order ColumnOrder) {
	for i := range e.states {
		if i == order.Index {
			e.states[i] = order.Order
		} else {
			e.states[i] = e.states[i].Default()
		}
	}
}

// Active returns the column currently ordering rows, if any.
func (e *Engine) Active() (ColumnOrder, bool) {
	for i, s := range e.states {
		if s.Active() {
			return ColumnOrder{Index: i, Order: s}, true
		}
	}
	return ColumnOrder{}, false
}

// Row is a sortable, highlightable grid row.
type Row interface {
	ValueAt(col int) value.Value
	Highlight(col int)
}

// Sort stably orders rows by column col. Unspecified and Hidden leave the
// rows as they are.
func Sort[R Row](rows []R, col int, t SortType) {
	switch t {
	case Ascending:
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].ValueAt(col).Compare(rows[j].ValueAt(col)) < 0
		})
	case Descending:
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].ValueAt(col).Compare(rows[j].ValueAt(col)) > 0
		})
	}
}

// Highlight marks column col on every row.
func Highlight[R Row](rows []R, col int) {
	for _, r := range rows {
		r.Highlight(col)
	}
}
