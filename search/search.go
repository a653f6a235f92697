// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: search/search.go
// Summary: Substring row filter and the old/new result diff used to animate
// transitions between result sets.

package search

import (
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/framegrace/texelgrid/model"
	"github.com/framegrace/texelgrid/value"
)

// Filter keeps the rows where any cell's display string contains needle,
// ignoring case. An empty needle returns rows itself.
func Filter(rows []model.Row, needle string) []model.Row {
	if needle == "" {
		return rows
	}
	needle = strings.ToLower(needle)
	filtered := make([]model.Row, 0, len(rows))
	for _, row := range rows {
		for _, cell := range row {
			if strings.Contains(strings.ToLower(cell.Data.Display()), needle) {
				filtered = append(filtered, row)
				break
			}
		}
	}
	return filtered
}

// Diff is the difference between two result sets. Deleted holds indices
// into the old rows, Inserted indices into the new rows; both are sorted.
// Rows in neither set are kept in place but may carry stale content.
type Diff struct {
	Deleted  []int
	Inserted []int
	OldCount int
	NewCount int
}

// Empty reports whether nothing was inserted or deleted.
func (d Diff) Empty() bool {
	return len(d.Deleted) == 0 && len(d.Inserted) == 0
}

// Compute diffs two result sets by row value equality, not position. An
// old row is deleted when no equal row exists anywhere in newRows; a new
// row is inserted when no equal row exists anywhere in oldRows.
//
// Rows carry no key, so duplicate rows are indistinguishable: every copy of
// a duplicated row matches any equal row on the other side. Use
// ComputeKeyed when rows have a stable identity.
func Compute(oldRows, newRows []model.Row) Diff {
	oldIndex := newRowIndex(oldRows)
	newIndex := newRowIndex(newRows)

	d := Diff{OldCount: len(oldRows), NewCount: len(newRows)}
	for i, row := range oldRows {
		if !newIndex.contains(row) {
			d.Deleted = append(d.Deleted, i)
		}
	}
	for i, row := range newRows {
		if !oldIndex.contains(row) {
			d.Inserted = append(d.Inserted, i)
		}
	}
	return d
}

// ComputeKeyed diffs two result sets using a caller-supplied stable row key.
func ComputeKeyed(oldRows, newRows []model.Row, key func(model.Row) string) Diff {
	oldKeys := make(map[string]struct{}, len(oldRows))
	for _, row := range oldRows {
		oldKeys[key(row)] = struct{}{}
	}
	newKeys := make(map[string]struct{}, len(newRows))
	for _, row := range newRows {
		newKeys[key(row)] = struct{}{}
	}

	d := Diff{OldCount: len(oldRows), NewCount: len(newRows)}
	for i, row := range oldRows {
		if _, ok := newKeys[key(row)]; !ok {
			d.Deleted = append(d.Deleted, i)
		}
	}
	for i, row := range newRows {
		if _, ok := oldKeys[key(row)]; !ok {
			d.Inserted = append(d.Inserted, i)
		}
	}
	return d
}

// rowIndex buckets rows by content hash. Bucket hits are confirmed with
// model.Row.Equal, so the result matches a pairwise equality scan.
type rowIndex map[uint64][]model.Row

func newRowIndex(rows []model.Row) rowIndex {
	idx := make(rowIndex, len(rows))
	for _, row := range rows {
		h := HashRow(row)
		idx[h] = append(idx[h], row)
	}
	return idx
}

func (idx rowIndex) contains(row model.Row) bool {
	return slices.ContainsFunc(idx[HashRow(row)], row.Equal)
}

// HashRow returns a content hash consistent with model.Row.Equal.
func HashRow(row model.Row) uint64 {
	d := xxhash.New()
	var kind [1]byte
	for _, cell := range row {
		v := cell.Data
		kind[0] = byte(v.Kind())
		_, _ = d.Write(kind[:])
		switch v.Kind() {
		case value.KindDate:
			t, _ := v.Time()
			_, _ = d.WriteString(t.UTC().Format("20060102150405.000000000"))
		case value.KindFloat:
			// -0 and +0 are equal values.
			if f, _ := v.Number(); f == 0 {
				_, _ = d.WriteString("0")
				break
			}
			_, _ = d.WriteString(v.Display())
		default:
			_, _ = d.WriteString(v.Display())
		}
		_, _ = d.Write([]byte{0})
	}
	return d.Sum64()
}
