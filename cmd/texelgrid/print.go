// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelgrid/print.go
// Summary: One-shot rendering of a grid as a text table.

package main

import (
	"context"
	"io"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/framegrace/texelgrid/colsort"
	"github.com/framegrace/texelgrid/grid"
	"github.com/framegrace/texelgrid/layout"
)

const defaultPrintWidth = 120

func newPrintCommand(params *rootParams) *cobra.Command {
	var width int
	cmd := &cobra.Command{
		Use:   "print [file]",
		Short: "Print the sorted and filtered grid as a table",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			src, err := params.load(ctx, args)
			if err != nil {
				return err
			}
			ctrl, err := params.newController(grid.TerminalOptions(), grid.Delegate{}, src)
			if err != nil {
				return err
			}
			if width <= 0 {
				width = outputWidth(os.Stdout)
			}
			ctrl.SetFrame(layout.Size{Width: float64(width)})
			printGrid(cmd.OutOrStdout(), ctrl)
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", 0, "table width in cells (default: the terminal width)")
	return cmd
}

// outputWidth is the terminal width of f, or a fixed width when f is not
// a terminal.
func outputWidth(f *os.File) int {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return defaultPrintWidth
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return defaultPrintWidth
	}
	return w
}

func headerTitle(title string, t colsort.SortType) string {
	switch t {
	case colsort.Ascending:
		return title + " ▲"
	case colsort.Descending:
		return title + " ▼"
	}
	return title
}

// printGrid writes the active rows of c with the grid's column widths as
// minimum widths.
func printGrid(w io.Writer, c *grid.Controller) {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetRowLine(false)
	align := tablewriter.ALIGN_LEFT
	if c.RightToLeft() {
		align = tablewriter.ALIGN_RIGHT
	}
	table.SetAlignment(align)
	table.SetHeaderAlignment(align)

	var headers []string
	for i, h := range c.Headers() {
		headers = append(headers, headerTitle(h.Title, h.SortType))
		table.SetColMinWidth(i, int(c.WidthForColumn(i)))
	}
	table.SetHeader(headers)

	for _, row := range c.Rows() {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = cell.Data.Display()
		}
		table.Append(cells)
	}

	if c.HeightForSectionFooter() > 0 {
		var footers []string
		for _, f := range c.Footers() {
			footers = append(footers, f.Title)
		}
		table.SetFooter(footers)
	}
	if c.HeightForPaginationView() > 0 {
		table.SetCaption(true, c.Supplementary(grid.KindPagination, 0).Title)
	}
	table.Render()
}
