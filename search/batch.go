// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package search

import (
	"errors"
	"fmt"
)

// ErrBatchAborted is returned by Apply when the target no longer shows the
// snapshot the diff was computed against.
var ErrBatchAborted = errors.New("search: batch aborted")

// Target is the rendering surface a diff is applied to.
type Target interface {
	// RowCount is the number of rows the target currently displays.
	RowCount() int
	// PerformBatch applies all deletions and insertions of d as one update.
	PerformBatch(d Diff)
	// RefreshVisible re-renders every visible row after a batch.
	RefreshVisible()
	// ReloadAll re-renders everything from the current rows.
	ReloadAll()
}

// Apply applies d to target as a single batch. When the target's row count
// does not match the snapshot d was computed from, nothing of the batch is
// applied; the target is fully reloaded instead and ErrBatchAborted is
// returned.
func Apply(target Target, d Diff) error {
	if got := target.RowCount(); got != d.OldCount {
		target.ReloadAll()
		return fmt.Errorf("%w: target shows %d rows, diff expects %d", ErrBatchAborted, got, d.OldCount)
	}
	target.PerformBatch(d)
	target.RefreshVisible()
	return nil
}
