// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: grid/controller.go
// Summary: Grid state owner: model, baseline and active rows, sort state,
// search needle and the layout engine deriving geometry from them.
//
// The controller is single-threaded. Every mutation (reload, column tap,
// search) runs to completion and leaves the layout cache invalidated.

package grid

import (
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/framegrace/texelgrid/colsort"
	"github.com/framegrace/texelgrid/layout"
	"github.com/framegrace/texelgrid/model"
	"github.com/framegrace/texelgrid/search"
	"github.com/framegrace/texelgrid/value"
)

// Controller owns the state of one grid.
type Controller struct {
	opts     Options
	delegate Delegate
	source   DataSource

	model    *model.TableModel
	headers  []*model.HeaderFooter
	footers  []*model.HeaderFooter
	baseline []model.Row
	active   []model.Row
	sorter   *colsort.Engine
	needle   string

	layout     *layout.Engine
	frame      layout.Size
	selected   *IndexPath
	generation int

	log *logrus.Entry
}

// New creates an empty controller.
func New(opts Options, delegate Delegate) *Controller {
	if opts.Measure == nil {
		opts.Measure = model.RuneWidth
	}
	c := &Controller{
		opts:     opts,
		delegate: delegate,
		layout:   layout.New(opts.Metrics, opts.CacheSize),
		log:      logrus.WithField("component", "grid"),
	}
	c.Load(nil, nil)
	return c
}

// SetLogger replaces the controller's logger.
func (c *Controller) SetLogger(l *logrus.Entry) {
	if l != nil {
		c.log = l
	}
}

// Options returns the configuration defaults in use.
func (c *Controller) Options() Options { return c.opts }

// SetDelegate replaces the delegate and invalidates geometry.
func (c *Controller) SetDelegate(d Delegate) {
	c.delegate = d
	c.layout.Invalidate()
}

// SetDataSource sets the source Reload pulls from.
func (c *Controller) SetDataSource(ds DataSource) { c.source = ds }

// Load replaces all content with rows under headers.
func (c *Controller) Load(rows [][]value.Value, headers []string) {
	tm := model.New(rows, headers, c.opts.Measure, c.showFooter(),
		model.WithHeaderMeasure(c.opts.HeaderMeasure),
		model.WithTitleFitting(c.opts.FitTitles),
	)
	c.install(tm)
}

// ReloadWith replaces the options, then the content.
func (c *Controller) ReloadWith(rows [][]value.Value, headers []string, opts Options) {
	if opts.Measure == nil {
		opts.Measure = model.RuneWidth
	}
	if opts.Metrics != c.opts.Metrics || opts.CacheSize != c.opts.CacheSize {
		c.layout = layout.New(opts.Metrics, opts.CacheSize)
	}
	c.opts = opts
	c.Load(rows, headers)
}

// Reload pulls headers and rows from the data source. When any callback
// fails nothing changes and the error wraps ErrReloadAborted.
func (c *Controller) Reload() error {
	if c.source == nil {
		c.log.Debug("Grid: reload without data source")
		return nil
	}
	rows, headers, err := pull(c.source)
	if err != nil {
		c.log.WithError(err).Debug("Grid: reload aborted")
		return err
	}
	c.Load(rows, headers)
	return nil
}

func (c *Controller) install(tm *model.TableModel) {
	c.model = tm
	c.headers = model.NewHeaders(tm)
	c.footers = model.NewFooters(tm)
	c.baseline = model.NewRows(tm)
	c.active = slices.Clone(c.baseline)

	states := make([]colsort.SortType, len(c.headers))
	for i, h := range c.headers {
		states[i] = h.SortType
	}
	c.sorter = colsort.New(states)
	c.needle = ""
	c.selected = nil
	c.generation++

	if o := c.opts.DefaultOrdering; o != nil && o.Index >= 0 && o.Index < tm.ColumnCount() {
		c.applyColumnOrder(*o)
	}
	c.layout.Invalidate()
	c.log.WithFields(logrus.Fields{
		"columns": tm.ColumnCount(),
		"rows":    tm.RowCount(),
	}).Debug("Grid: loaded")
}

func (c *Controller) applyColumnOrder(o colsort.ColumnOrder) {
	colsort.Highlight(c.baseline, o.Index)
	c.sorter.Apply(o)
	c.syncHeaders()
	colsort.Sort(c.active, o.Index, c.sorter.State(o.Index))
}

func (c *Controller) syncHeaders() {
	for i, h := range c.headers {
		h.SortType = c.sorter.State(i)
	}
}

// Generation increases on every reload. Hosts reset their scroll position
// when it changes.
func (c *Controller) Generation() int { return c.generation }

// OnColumnTap advances the sort indicator of column k, highlights it and
// reorders the active rows. Returning to unspecified keeps the current
// order.
func (c *Controller) OnColumnTap(k int) {
	if k < 0 || k >= len(c.headers) {
		return
	}
	state := c.sorter.Toggle(k)
	c.syncHeaders()
	colsort.Highlight(c.baseline, k)
	colsort.Sort(c.active, k, state)
	c.layout.Invalidate()
	c.log.WithFields(logrus.Fields{"column": k, "order": state}).Debug("Grid: column tapped")
}

// OnSearchTextChanged filters the baseline rows by needle, re-applies the
// active sort, replaces the active rows and returns the diff between the
// previous and the new active rows.
func (c *Controller) OnSearchTextChanged(needle string) search.Diff {
	next := slices.Clone(search.Filter(c.baseline, needle))
	if order, ok := c.sorter.Active(); ok {
		colsort.Sort(next, order.Index, order.Order)
	}

	var d search.Diff
	if c.opts.RowKey != nil {
		d = search.ComputeKeyed(c.active, next, c.opts.RowKey)
	} else {
		d = search.Compute(c.active, next)
	}
	c.active = next
	c.needle = needle
	c.selected = nil
	c.layout.Invalidate()
	c.log.WithFields(logrus.Fields{
		"needle":   needle,
		"deleted":  len(d.Deleted),
		"inserted": len(d.Inserted),
	}).Debug("Grid: search")
	return d
}

// ApplySearch runs OnSearchTextChanged and applies the diff to target as
// one batch.
func (c *Controller) ApplySearch(target search.Target, needle string) error {
	d := c.OnSearchTextChanged(needle)
	if err := search.Apply(target, d); err != nil {
		c.log.WithError(err).Warn("Grid: batch replaced by full reload")
		return err
	}
	return nil
}

// Needle returns the current search text.
func (c *Controller) Needle() string { return c.needle }

// Model returns the data snapshot of the last reload.
func (c *Controller) Model() *model.TableModel { return c.model }

// Rows returns the active rows.
func (c *Controller) Rows() []model.Row { return c.active }

// Data returns the value at an active row and column.
func (c *Controller) Data(row, col int) value.Value { return c.active[row][col].Data }

// Headers returns the header view models.
func (c *Controller) Headers() []*model.HeaderFooter { return c.headers }

// Footers returns the footer view models.
func (c *Controller) Footers() []*model.HeaderFooter { return c.footers }

// SortState returns the sort indicator of column col.
func (c *Controller) SortState(col int) colsort.SortType { return c.sorter.State(col) }

// SelectItem records ip as selected and notifies the delegate.
func (c *Controller) SelectItem(ip IndexPath) {
	if ip.Row < 0 || ip.Row >= len(c.active) || ip.Column < 0 || ip.Column >= c.ColumnCount() {
		return
	}
	if c.selected != nil && *c.selected != ip {
		c.DeselectItem(*c.selected)
	}
	c.selected = &ip
	notify(c.delegate.DidSelectItem, ip)
}

// DeselectItem clears the selection of ip and notifies the delegate.
func (c *Controller) DeselectItem(ip IndexPath) {
	if c.selected != nil && *c.selected == ip {
		c.selected = nil
	}
	notify(c.delegate.DidDeselectItem, ip)
}

// Selected returns the selected cell, if any.
func (c *Controller) Selected() (IndexPath, bool) {
	if c.selected == nil {
		return IndexPath{}, false
	}
	return *c.selected, true
}
