// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelgrid/view.go
// Summary: Interactive grid in the terminal, optionally following file
// changes.

package main

import (
	"context"
	"path/filepath"

	"github.com/framegrace/texelui/core"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/framegrace/texelgrid/config"
	"github.com/framegrace/texelgrid/grid"
	"github.com/framegrace/texelgrid/internal/devshell"
	"github.com/framegrace/texelgrid/internal/gridview"
)

func newViewCommand(params *rootParams) *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "view [file]",
		Short: "Browse data in an interactive grid",
		Long: `Browse data in an interactive grid.

Type to search, Backspace and Esc edit the search text. Tab and Shift-Tab
move the column cursor and Enter cycles its sort order; clicking a header
does the same. Arrows, PgUp/PgDn and Home/End scroll. Ctrl-C quits.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd.Context(), params, args, watch)
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "reload when the input file changes")
	return cmd
}

func runView(ctx context.Context, params *rootParams, args []string, watch bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	src, err := params.load(ctx, args)
	if err != nil {
		return err
	}
	log := logrus.WithField("component", "texelgrid")
	delegate := grid.Delegate{
		DidSelectItem: func(ip grid.IndexPath) {
			log.WithFields(logrus.Fields{"row": ip.Row, "column": ip.Column}).Debug("Texelgrid: selected")
		},
	}
	ctrl, err := params.newController(grid.TerminalOptions(), delegate, src)
	if err != nil {
		return err
	}

	title := "texelgrid"
	path := params.watchPath(args)
	if path != "" {
		title = filepath.Base(path)
	}
	view := gridview.New(ctrl, title)

	if watch && path != "" {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()
		err := config.Watch(ctx, []string{path}, func(string) {
			next, err := params.load(ctx, args)
			if err != nil {
				log.WithError(err).Warn("Texelgrid: reload skipped")
				return
			}
			view.RequestReload(next)
		})
		if err != nil {
			return err
		}
	}

	return devshell.Run(func([]string) (core.App, error) { return view, nil }, args)
}
