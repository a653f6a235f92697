// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package grid

import (
	"github.com/sirupsen/logrus"

	"github.com/framegrace/texelgrid/colsort"
	"github.com/framegrace/texelgrid/config"
	"github.com/framegrace/texelgrid/internal/theming"
	"github.com/framegrace/texelgrid/layout"
)

// ConfigSection is the config section OptionsFromConfig reads.
const ConfigSection = "grid"

// OptionsFromConfig overlays the grid section of cfg onto base. Missing
// keys keep the base value.
func OptionsFromConfig(cfg config.Config, base Options) Options {
	o := base
	s := ConfigSection

	o.ShowFooter = cfg.GetBool(s, "show_footer", o.ShowFooter)
	o.ShowSearch = cfg.GetBool(s, "show_search", o.ShowSearch)
	o.ShowPagination = cfg.GetBool(s, "show_pagination", o.ShowPagination)
	o.HeadersFloat = cfg.GetBool(s, "headers_float", o.HeadersFloat)
	o.FootersFloat = cfg.GetBool(s, "footers_float", o.FootersFloat)
	o.SearchFloat = cfg.GetBool(s, "search_float", o.SearchFloat)
	o.ShowVerticalScrollBars = cfg.GetBool(s, "vertical_scroll_bars", o.ShowVerticalScrollBars)
	o.ShowHorizontalScrollBars = cfg.GetBool(s, "horizontal_scroll_bars", o.ShowHorizontalScrollBars)
	o.ScaleToFill = cfg.GetBool(s, "scale_to_fill", o.ScaleToFill)
	o.FitTitles = cfg.GetBool(s, "fit_titles", o.FitTitles)
	o.RightToLeft = cfg.GetBool(s, "right_to_left", o.RightToLeft)

	o.FixedColumns = layout.FixedColumns{
		Left:  cfg.GetInt(s, "fixed_left", o.FixedColumns.Left),
		Right: cfg.GetInt(s, "fixed_right", o.FixedColumns.Right),
	}

	o.HeaderHeight = cfg.GetFloat(s, "header_height", o.HeaderHeight)
	o.FooterHeight = cfg.GetFloat(s, "footer_height", o.FooterHeight)
	o.SearchHeight = cfg.GetFloat(s, "search_height", o.SearchHeight)
	o.PaginationHeight = cfg.GetFloat(s, "pagination_height", o.PaginationHeight)
	o.RowHeight = cfg.GetFloat(s, "row_height", o.RowHeight)
	o.InterRowSpacing = cfg.GetFloat(s, "inter_row_spacing", o.InterRowSpacing)

	if col, ok := cfg.GetOptionalInt(s, "sort_column"); ok && col >= 0 {
		name := cfg.GetString(s, "sort_order", "ascending")
		order, ok := colsort.ParseSortType(name)
		if !ok || !order.Active() {
			// Hidden and unspecified would pin the column out of the tap cycle.
			logrus.WithField("component", "grid").Warnf("Grid: sort_order %q is not asc or desc, using ascending", name)
			order = colsort.Ascending
		}
		o.DefaultOrdering = &colsort.ColumnOrder{Index: col, Order: order}
	}

	if name := cfg.GetString(s, "theme", ""); name != "" {
		p, err := theming.Named(name)
		if err != nil {
			logrus.WithField("component", "grid").WithError(err).Warn("Grid: theme not applied")
		} else {
			o = o.WithRowColors(p.Highlighted, p.Unhighlighted)
		}
	}
	o = o.WithRowColors(
		cfg.GetColors(s, "highlighted_colors"),
		cfg.GetColors(s, "unhighlighted_colors"),
	)
	return o
}
