// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/gridview/snapshot.go
// Summary: The rows a view currently displays, updated by search batches.

package gridview

import (
	"slices"

	"github.com/framegrace/texelgrid/grid"
	"github.com/framegrace/texelgrid/model"
	"github.com/framegrace/texelgrid/search"
)

var _ search.Target = (*snapshot)(nil)

// snapshot implements search.Target over the displayed rows. It is not
// synchronised; the owning View guards it.
type snapshot struct {
	ctrl *grid.Controller
	rows []model.Row

	batches   int
	reloads   int
	refreshes int
}

func newSnapshot(ctrl *grid.Controller) *snapshot {
	s := &snapshot{ctrl: ctrl}
	s.ReloadAll()
	return s
}

func (s *snapshot) RowCount() int { return len(s.rows) }

// PerformBatch removes the deleted rows and splices in the inserted ones
// from the controller's active rows.
func (s *snapshot) PerformBatch(d search.Diff) {
	s.batches++
	for i := len(d.Deleted) - 1; i >= 0; i-- {
		idx := d.Deleted[i]
		if idx >= 0 && idx < len(s.rows) {
			s.rows = slices.Delete(s.rows, idx, idx+1)
		}
	}
	next := s.ctrl.Rows()
	for _, idx := range d.Inserted {
		if idx < 0 || idx >= len(next) {
			continue
		}
		at := min(idx, len(s.rows))
		s.rows = slices.Insert(s.rows, at, next[idx])
	}
}

// RefreshVisible re-points every kept row at the controller's current
// content. Rows share cell storage, so this is a slice copy.
func (s *snapshot) RefreshVisible() {
	s.refreshes++
	s.rows = slices.Clone(s.ctrl.Rows())
}

func (s *snapshot) ReloadAll() {
	s.reloads++
	s.rows = slices.Clone(s.ctrl.Rows())
}
