// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package grid

import (
	"errors"
	"math"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/google/go-cmp/cmp"

	"github.com/framegrace/texelgrid/colsort"
	"github.com/framegrace/texelgrid/layout"
	"github.com/framegrace/texelgrid/model"
	"github.com/framegrace/texelgrid/search"
	"github.com/framegrace/texelgrid/value"
)

func people() ([][]value.Value, []string) {
	rows := [][]value.Value{
		{value.String("Carol"), value.Int(35)},
		{value.String("alice"), value.Int(30)},
		{value.String("Bob"), value.Int(25)},
		{value.String("short")},
	}
	return rows, []string{"Name", "Age"}
}

func newLoaded(t *testing.T, opts Options, d Delegate) *Controller {
	t.Helper()
	c := New(opts, d)
	rows, headers := people()
	c.Load(rows, headers)
	c.SetFrame(layout.Size{Width: 80, Height: 24})
	return c
}

func names(c *Controller) []string {
	var out []string
	for _, r := range c.Rows() {
		out = append(out, r[0].Data.Display())
	}
	return out
}

func TestLoadDropsShortRowsAndKeepsOrder(t *testing.T) {
	c := newLoaded(t, TerminalOptions(), Delegate{})
	if diff := cmp.Diff([]string{"Carol", "alice", "Bob"}, names(c)); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
	if c.RowCount() != 3 || c.ColumnCount() != 2 {
		t.Errorf("counts = %d rows %d cols, want 3 and 2", c.RowCount(), c.ColumnCount())
	}
	if len(c.Footers()) != 2 {
		t.Errorf("footers = %d, want 2", len(c.Footers()))
	}
	if got := c.Data(1, 1); !got.Equal(value.Int(30)) {
		t.Errorf("Data(1,1) = %v, want 30", got)
	}
}

func TestColumnTapCycle(t *testing.T) {
	c := newLoaded(t, TerminalOptions(), Delegate{})

	c.OnColumnTap(1)
	if c.SortState(1) != colsort.Ascending || c.Headers()[1].SortType != colsort.Ascending {
		t.Fatalf("sort state = %v, want ascending", c.SortState(1))
	}
	if diff := cmp.Diff([]string{"Bob", "alice", "Carol"}, names(c)); diff != "" {
		t.Errorf("ascending mismatch (-want +got):\n%s", diff)
	}
	for _, r := range c.Rows() {
		if !r[1].Highlighted || r[0].Highlighted {
			t.Fatal("only the tapped column should be highlighted")
		}
	}

	c.OnColumnTap(1)
	if diff := cmp.Diff([]string{"Carol", "alice", "Bob"}, names(c)); diff != "" {
		t.Errorf("descending mismatch (-want +got):\n%s", diff)
	}

	c.OnColumnTap(1)
	if c.SortState(1) != colsort.Unspecified {
		t.Errorf("sort state = %v, want unspecified", c.SortState(1))
	}
	if diff := cmp.Diff([]string{"Carol", "alice", "Bob"}, names(c)); diff != "" {
		t.Errorf("unspecified should keep order (-want +got):\n%s", diff)
	}

	c.OnColumnTap(1)
	c.OnColumnTap(0)
	if c.SortState(1) != colsort.Unspecified || c.SortState(0) != colsort.Ascending {
		t.Errorf("states = %v/%v, want ascending/unspecified", c.SortState(0), c.SortState(1))
	}
}

func TestColumnTapInvalidatesLayout(t *testing.T) {
	c := newLoaded(t, TerminalOptions(), Delegate{})
	_ = c.ContentSize()
	before := c.LayoutBuilds()
	c.OnColumnTap(0)
	_ = c.ContentSize()
	if c.LayoutBuilds() != before+1 {
		t.Errorf("builds = %d, want %d", c.LayoutBuilds(), before+1)
	}
}

func TestSearchDiffAndResort(t *testing.T) {
	c := newLoaded(t, TerminalOptions(), Delegate{})
	c.OnColumnTap(1) // Bob, alice, Carol

	d := c.OnSearchTextChanged("o")
	if diff := cmp.Diff([]string{"Bob", "Carol"}, names(c)); diff != "" {
		t.Errorf("filtered mismatch (-want +got):\n%s", diff)
	}
	want := search.Diff{Deleted: []int{1}, OldCount: 3, NewCount: 2}
	if diff := cmp.Diff(want, d); diff != "" {
		t.Errorf("diff mismatch (-want +got):\n%s", diff)
	}

	d = c.OnSearchTextChanged("")
	if diff := cmp.Diff([]string{"Bob", "alice", "Carol"}, names(c)); diff != "" {
		t.Errorf("cleared search should restore sorted rows (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1}, d.Inserted); diff != "" {
		t.Errorf("inserted mismatch (-want +got):\n%s", diff)
	}
	if c.Needle() != "" {
		t.Errorf("needle = %q, want empty", c.Needle())
	}
}

func TestSearchDoesNotReorderBaseline(t *testing.T) {
	c := newLoaded(t, TerminalOptions(), Delegate{})
	c.OnSearchTextChanged("")
	c.OnColumnTap(0)
	c.OnColumnTap(0)
	c.OnColumnTap(0) // back to unspecified, current order kept
	c.OnSearchTextChanged("zzz")
	c.OnSearchTextChanged("")
	if diff := cmp.Diff([]string{"Carol", "alice", "Bob"}, names(c)); diff != "" {
		t.Errorf("baseline order changed (-want +got):\n%s", diff)
	}
}

type countingTarget struct {
	rows     int
	batches  int
	reloaded int
}

func (t *countingTarget) RowCount() int              { return t.rows }
func (t *countingTarget) PerformBatch(d search.Diff) { t.batches++; t.rows = d.NewCount }
func (t *countingTarget) RefreshVisible()            {}
func (t *countingTarget) ReloadAll()                 { t.reloaded++ }

func TestApplySearch(t *testing.T) {
	c := newLoaded(t, TerminalOptions(), Delegate{})
	target := &countingTarget{rows: 3}
	if err := c.ApplySearch(target, "bob"); err != nil {
		t.Fatalf("ApplySearch: %v", err)
	}
	if target.batches != 1 || target.rows != 1 {
		t.Errorf("target = %+v, want one batch leaving 1 row", target)
	}

	stale := &countingTarget{rows: 7}
	err := c.ApplySearch(stale, "")
	if !errors.Is(err, search.ErrBatchAborted) {
		t.Fatalf("err = %v, want ErrBatchAborted", err)
	}
	if stale.batches != 0 || stale.reloaded != 1 {
		t.Errorf("stale target = %+v, want full reload only", stale)
	}
	if c.RowCount() != 3 {
		t.Errorf("controller rows = %d, want 3 after abort", c.RowCount())
	}
}

func TestRowKeyDisambiguatesDuplicates(t *testing.T) {
	opts := TerminalOptions()
	opts.RowKey = func(r model.Row) string { return r[0].Data.Display() }
	c := New(opts, Delegate{})
	c.Load([][]value.Value{
		{value.String("a1"), value.String("x")},
		{value.String("a2"), value.String("x")},
	}, []string{"id", "v"})

	d := c.OnSearchTextChanged("a2")
	if diff := cmp.Diff([]int{0}, d.Deleted); diff != "" {
		t.Errorf("deleted mismatch (-want +got):\n%s", diff)
	}
}

type fakeSource struct {
	headers []string
	rows    [][]value.Value
	failRow int
}

func (f *fakeSource) ColumnCount() int { return len(f.headers) }
func (f *fakeSource) HeaderTitle(col int) (string, error) {
	return f.headers[col], nil
}
func (f *fakeSource) RowCount() int { return len(f.rows) }
func (f *fakeSource) RowData(row int) ([]value.Value, error) {
	if row == f.failRow {
		return nil, errors.New("backend gone")
	}
	return f.rows[row], nil
}

func TestReloadFromDataSource(t *testing.T) {
	c := New(TerminalOptions(), Delegate{})
	rows, headers := people()
	c.SetDataSource(&fakeSource{headers: headers, rows: rows, failRow: -1})
	if err := c.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if c.RowCount() != 3 {
		t.Errorf("rows = %d, want 3", c.RowCount())
	}
}

func TestReloadAbortKeepsState(t *testing.T) {
	c := newLoaded(t, TerminalOptions(), Delegate{})
	c.OnColumnTap(0)
	gen := c.Generation()

	c.SetDataSource(&fakeSource{
		headers: []string{"x"},
		rows:    [][]value.Value{{value.Int(1)}, {value.Int(2)}},
		failRow: 1,
	})
	err := c.Reload()
	if !errors.Is(err, ErrReloadAborted) {
		t.Fatalf("err = %v, want ErrReloadAborted", err)
	}
	if c.ColumnCount() != 2 || c.RowCount() != 3 || c.SortState(0) != colsort.Ascending {
		t.Error("aborted reload must leave state untouched")
	}
	if c.Generation() != gen {
		t.Errorf("generation = %d, want %d", c.Generation(), gen)
	}
}

func TestDefaultOrderingAppliedOnReload(t *testing.T) {
	opts := TerminalOptions()
	opts.DefaultOrdering = &colsort.ColumnOrder{Index: 1, Order: colsort.Descending}
	c := newLoaded(t, opts, Delegate{})
	if diff := cmp.Diff([]string{"Carol", "alice", "Bob"}, names(c)); diff != "" {
		t.Errorf("default ordering mismatch (-want +got):\n%s", diff)
	}
	if c.Headers()[1].SortType != colsort.Descending {
		t.Errorf("header sort = %v, want descending", c.Headers()[1].SortType)
	}
	if !c.Rows()[0][1].Highlighted {
		t.Error("default ordering column should be highlighted")
	}
	c.OnSearchTextChanged("a")
	rows, headers := people()
	c.Load(rows, headers)
	if c.Needle() != "" || c.SortState(1) != colsort.Descending {
		t.Error("reload should clear the needle and re-apply the default ordering")
	}
}

func TestDelegateOverridesWin(t *testing.T) {
	d := Delegate{
		HeightForRow:        func(row int) float64 { return float64(row + 2) },
		WidthForColumn:      func(col int) (float64, bool) { return 40, col == 0 },
		ShouldShowFooter:    func() bool { return false },
		ShouldScaleToFill:   func() bool { return false },
		HeightForSearchView: func() float64 { return 3 },
	}
	c := newLoaded(t, TerminalOptions(), d)

	if got := c.HeightForRow(1); got != 3 {
		t.Errorf("HeightForRow(1) = %v, want 3", got)
	}
	if got := c.WidthForColumn(0); got != 40 {
		t.Errorf("WidthForColumn(0) = %v, want 40", got)
	}
	// "Age" fits its title: 3 + 2 + 2.
	if got := c.WidthForColumn(1); got != 7 {
		t.Errorf("WidthForColumn(1) = %v, want 7", got)
	}
	if got := c.HeightForSectionFooter(); got != 0 {
		t.Errorf("HeightForSectionFooter = %v, want 0", got)
	}
	if got := c.HeightForSearchView(); got != 3 {
		t.Errorf("HeightForSearchView = %v, want 3", got)
	}
	if got := c.HeightForPaginationView(); got != 0 {
		t.Errorf("HeightForPaginationView = %v, want 0", got)
	}
}

func TestOptionDefaults(t *testing.T) {
	c := newLoaded(t, DefaultOptions(), Delegate{})
	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"header", c.HeightForSectionHeader(), 44},
		{"footer", c.HeightForSectionFooter(), 44},
		{"search", c.HeightForSearchView(), 60},
		{"row", c.HeightForRow(0), 44},
		{"spacing", c.InterRowSpacing(), 1},
	}
	for _, tc := range checks {
		if tc.got != tc.want {
			t.Errorf("%s height = %v, want %v", tc.name, tc.got, tc.want)
		}
	}
	if !c.ShowVerticalScrollBars() || !c.ShowHorizontalScrollBars() {
		t.Error("scroll indicators should default on")
	}
	if len(c.Options().HighlightedRowColors) != 7 || len(c.Options().UnhighlightedRowColors) != 7 {
		t.Error("default palettes should have 7 entries")
	}
}

func TestScaleToFillThroughController(t *testing.T) {
	c := newLoaded(t, TerminalOptions(), Delegate{})
	if got := c.CalculateContentWidth(); math.Abs(got-80) > 1e-9 {
		t.Errorf("content width = %v, want frame width 80", got)
	}
	c.SetFrame(layout.Size{Width: 10, Height: 5})
	if got := c.CalculateContentWidth(); got <= 10 {
		t.Errorf("content width = %v, want natural width above 10", got)
	}
}

func TestCellColor(t *testing.T) {
	opts := TerminalOptions()
	opts.HighlightedRowColors = []tcell.Color{tcell.ColorRed, tcell.ColorOrange}
	opts.UnhighlightedRowColors = []tcell.Color{tcell.ColorBlack, tcell.ColorWhite}
	c := newLoaded(t, opts, Delegate{})
	c.OnColumnTap(0)

	if got := c.CellColor(2, 0); got != tcell.ColorRed {
		t.Errorf("highlighted row 2 = %v, want red", got)
	}
	if got := c.CellColor(1, 1); got != tcell.ColorWhite {
		t.Errorf("unhighlighted row 1 = %v, want white", got)
	}

	c.SetDelegate(Delegate{
		UnhighlightedColorForRow: func(int) tcell.Color { return tcell.ColorGreen },
	})
	if got := c.CellColor(1, 1); got != tcell.ColorGreen {
		t.Errorf("delegate color = %v, want green", got)
	}
}

func TestCellStyleUsesLinkStyle(t *testing.T) {
	c := New(TerminalOptions(), Delegate{})
	c.Load([][]value.Value{{value.Link("https://example.com"), value.String("x")}}, []string{"url", "v"})
	if got, want := c.CellStyle(0, 0), c.LinkStyle().Background(c.CellColor(0, 0)); got != want {
		t.Errorf("link cell style = %v, want link style", got)
	}
	if got, want := c.CellStyle(0, 1), c.RowStyle().Background(c.CellColor(0, 1)); got != want {
		t.Errorf("plain cell style = %v, want row style", got)
	}
}

func TestSelection(t *testing.T) {
	var selected, deselected []IndexPath
	d := Delegate{
		DidSelectItem:   func(ip IndexPath) { selected = append(selected, ip) },
		DidDeselectItem: func(ip IndexPath) { deselected = append(deselected, ip) },
	}
	c := newLoaded(t, TerminalOptions(), d)
	c.SelectItem(IndexPath{Row: 0, Column: 1})
	c.SelectItem(IndexPath{Row: 2, Column: 0})
	c.SelectItem(IndexPath{Row: 9, Column: 0})

	if diff := cmp.Diff([]IndexPath{{0, 1}, {2, 0}}, selected); diff != "" {
		t.Errorf("selected mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]IndexPath{{0, 1}}, deselected); diff != "" {
		t.Errorf("deselected mismatch (-want +got):\n%s", diff)
	}
	if ip, ok := c.Selected(); !ok || ip != (IndexPath{2, 0}) {
		t.Errorf("Selected = %v, %v", ip, ok)
	}
}

func TestSupplementary(t *testing.T) {
	c := newLoaded(t, TerminalOptions(), Delegate{})
	c.OnColumnTap(0)

	h := c.Supplementary(KindColumnHeader, 0)
	if h.Title != "Name" || h.SortType != colsort.Ascending {
		t.Errorf("header = %+v", h)
	}
	if h.Rect.Y != 1 || h.Rect.H != 1 {
		t.Errorf("header rect = %+v, want below the search band", h.Rect)
	}
	f := c.Supplementary(KindFooter, 1)
	if f.Title != "Age" || f.SortType != colsort.Hidden {
		t.Errorf("footer = %+v", f)
	}
	if f.Rect.Y != 5 {
		t.Errorf("footer y = %v, want 5", f.Rect.Y)
	}
	if s := c.Supplementary(KindSearch, 0); s.Rect.Y != 0 || s.Rect.H != 1 {
		t.Errorf("search = %+v", s)
	}

	defer func() {
		if recover() == nil {
			t.Error("unknown kind should panic")
		}
	}()
	c.Supplementary("sidebar", 0)
}

func TestUnchangedSearchKeepsNaNRows(t *testing.T) {
	c := New(TerminalOptions(), Delegate{})
	c.Load([][]value.Value{{value.Float(math.NaN())}, {value.Float(1)}}, []string{"x"})
	if d := c.OnSearchTextChanged(""); !d.Empty() {
		t.Errorf("empty needle over unchanged rows = %+v, want empty diff", d)
	}
}

type countSource struct {
	cols, rows int
}

func (s countSource) ColumnCount() int                   { return s.cols }
func (s countSource) HeaderTitle(int) (string, error)    { return "h", nil }
func (s countSource) RowCount() int                      { return s.rows }
func (s countSource) RowData(int) ([]value.Value, error) { return []value.Value{value.Int(1)}, nil }

func TestReloadRejectsNegativeCounts(t *testing.T) {
	for _, src := range []countSource{{cols: -1, rows: 1}, {cols: 1, rows: -3}} {
		c := newLoaded(t, TerminalOptions(), Delegate{})
		c.SetDataSource(src)
		if err := c.Reload(); !errors.Is(err, ErrReloadAborted) {
			t.Errorf("Reload(%+v) err = %v, want ErrReloadAborted", src, err)
		}
		if c.RowCount() != 3 {
			t.Errorf("aborted reload changed rows to %d", c.RowCount())
		}
	}
}
