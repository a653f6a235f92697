// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelgrid/root.go
// Summary: Root command, shared flags and grid construction.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/framegrace/texelgrid/colsort"
	"github.com/framegrace/texelgrid/config"
	"github.com/framegrace/texelgrid/grid"
	"github.com/framegrace/texelgrid/internal/theming"
	"github.com/framegrace/texelgrid/source"
)

type rootParams struct {
	configPath string
	logFile    string
	theme      string
	format     string
	dbPath     string
	query      string
	sort       string
	search     string
	fixedLeft  int
	fixedRight int
	rtl        bool

	cfg config.Config
}

func newRootCommand() *cobra.Command {
	params := &rootParams{}
	root := &cobra.Command{
		Use:   "texelgrid",
		Short: "Sortable, searchable data grids for the terminal",
		Long: `texelgrid lays out tabular data as a grid with sortable columns,
incremental search and pinned columns.

Data comes from a CSV, TSV or JSON file, or from a SQLite query:

  $ texelgrid view people.csv
  $ texelgrid print --db app.db --query 'SELECT * FROM users' --sort name
`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return params.setup(cmd)
		},
	}
	addSharedFlags(root.PersistentFlags(), params)
	root.AddCommand(newViewCommand(params), newPrintCommand(params), newConfigCommand(params))
	return root
}

func addSharedFlags(fs *pflag.FlagSet, p *rootParams) {
	fs.StringVar(&p.configPath, "config", "", "config file (default: the user config)")
	fs.StringVar(&p.logFile, "log-file", "", "append logs to this file")
	fs.StringVar(&p.theme, "theme", "", "row color theme: default, terminal, rainbow or a chroma style name")
	fs.StringVar(&p.format, "format", "", "input format: csv, tsv or json (default: detect)")
	fs.StringVar(&p.dbPath, "db", "", "SQLite database to query")
	fs.StringVar(&p.query, "query", "", "SQL query to run against --db")
	fs.StringVar(&p.sort, "sort", "", "initial ordering as column[:asc|desc]; column is a title or index")
	fs.StringVar(&p.search, "search", "", "initial search text")
	fs.IntVar(&p.fixedLeft, "fixed-left", -1, "columns pinned to the leading edge")
	fs.IntVar(&p.fixedRight, "fixed-right", -1, "columns pinned to the trailing edge")
	fs.BoolVar(&p.rtl, "rtl", false, "lay columns out right to left")
}

// setup loads the configuration and configures logging.
func (p *rootParams) setup(cmd *cobra.Command) error {
	if p.configPath != "" {
		cfg, err := config.Load(p.configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		p.cfg = cfg
	} else {
		p.cfg = config.System()
		if err := config.Err(); err != nil {
			logrus.WithError(err).Warn("Config: using defaults")
		}
	}

	level, err := logrus.ParseLevel(p.cfg.GetString("log", "level", "info"))
	if err != nil {
		return fmt.Errorf("config log.level: %w", err)
	}
	logrus.SetLevel(level)

	switch {
	case p.logFile != "":
		f, err := os.OpenFile(p.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		logrus.SetOutput(f)
	case cmd.Name() == "view":
		// The screen belongs to the grid.
		logrus.SetOutput(io.Discard)
	}
	return nil
}

// watchPath is the file whose changes should reload the grid.
func (p *rootParams) watchPath(args []string) string {
	if p.dbPath != "" {
		return p.dbPath
	}
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

// load reads the grid content named by the flags and args.
func (p *rootParams) load(ctx context.Context, args []string) (*source.Static, error) {
	if p.dbPath != "" {
		if p.query == "" {
			return nil, errors.New("--db needs --query")
		}
		return source.QuerySQLite(ctx, p.dbPath, p.query)
	}
	if len(args) == 0 {
		return nil, errors.New("no input: pass a file or --db and --query")
	}
	if p.format == "" {
		return source.LoadFile(args[0])
	}
	f, ok := source.ParseFormat(p.format)
	if !ok {
		return nil, fmt.Errorf("%w: %q", source.ErrUnknownFormat, p.format)
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, err
	}
	return source.Parse(f, data)
}

// options resolves the grid options: base, then config, then flags.
func (p *rootParams) options(base grid.Options, titles []string) (grid.Options, error) {
	o := grid.OptionsFromConfig(p.cfg, base)
	if p.theme != "" {
		palette, err := theming.Named(p.theme)
		if err != nil {
			return o, err
		}
		o = o.WithRowColors(palette.Highlighted, palette.Unhighlighted)
	}
	if p.fixedLeft >= 0 {
		o.FixedColumns.Left = p.fixedLeft
	}
	if p.fixedRight >= 0 {
		o.FixedColumns.Right = p.fixedRight
	}
	if p.rtl {
		o.RightToLeft = true
	}
	if p.sort != "" {
		order, err := parseSort(p.sort, titles)
		if err != nil {
			return o, err
		}
		o.DefaultOrdering = &order
	}
	return o, nil
}

// parseSort parses column[:order]. The column is matched against titles
// ignoring case before being tried as an index.
func parseSort(spec string, titles []string) (colsort.ColumnOrder, error) {
	name, orderName, hasOrder := strings.Cut(spec, ":")
	order := colsort.Ascending
	if hasOrder {
		t, ok := colsort.ParseSortType(orderName)
		if !ok || !t.Active() {
			return colsort.ColumnOrder{}, fmt.Errorf("sort %q: order must be asc or desc", spec)
		}
		order = t
	}
	for i, t := range titles {
		if strings.EqualFold(t, name) {
			return colsort.ColumnOrder{Index: i, Order: order}, nil
		}
	}
	idx, err := strconv.Atoi(name)
	if err != nil || idx < 0 || idx >= len(titles) {
		return colsort.ColumnOrder{}, fmt.Errorf("sort %q: no such column", spec)
	}
	return colsort.ColumnOrder{Index: idx, Order: order}, nil
}

// newController builds a controller over src and applies the initial
// search.
func (p *rootParams) newController(base grid.Options, delegate grid.Delegate, src *source.Static) (*grid.Controller, error) {
	opts, err := p.options(base, src.Titles)
	if err != nil {
		return nil, err
	}
	c := grid.New(opts, delegate)
	c.SetDataSource(src)
	if err := c.Reload(); err != nil {
		return nil, err
	}
	if p.search != "" {
		c.OnSearchTextChanged(p.search)
	}
	return c, nil
}
