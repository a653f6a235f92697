// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/theming/palette.go
// Summary: Alternating row palettes for the grid.

package theming

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// PaletteSize is the number of entries in the built-in palettes.
const PaletteSize = 7

// Palette holds the alternating row colors. Highlighted colors paint cells
// of the sorted column, unhighlighted colors every other cell.
type Palette struct {
	Highlighted   []tcell.Color
	Unhighlighted []tcell.Color
}

// Valid reports whether both color sequences are non-empty.
func (p Palette) Valid() bool {
	return len(p.Highlighted) > 0 && len(p.Unhighlighted) > 0
}

func hexColors(hex ...string) []tcell.Color {
	out := make([]tcell.Color, len(hex))
	for i, h := range hex {
		out[i] = tcell.GetColor(h)
	}
	return out
}

// Default is the light palette used by DefaultOptions.
func Default() Palette {
	return Palette{
		Highlighted: hexColors(
			"#e3e3e8", "#ececf0", "#e3e3e8", "#ececf0", "#e3e3e8", "#ececf0", "#e3e3e8",
		),
		Unhighlighted: hexColors(
			"#f4f4f6", "#ffffff", "#f4f4f6", "#ffffff", "#f4f4f6", "#ffffff", "#f4f4f6",
		),
	}
}

// Terminal is a dark palette on mocha surface tones.
func Terminal() Palette {
	return Palette{
		Highlighted: hexColors(
			"#313244", "#3a3c52", "#313244", "#3a3c52", "#313244", "#3a3c52", "#313244",
		),
		Unhighlighted: hexColors(
			"#1e1e2e", "#181825", "#1e1e2e", "#181825", "#1e1e2e", "#181825", "#1e1e2e",
		),
	}
}

// Rainbow cycles pastel hues per row.
func Rainbow() Palette {
	return Palette{
		Highlighted: hexColors(
			"#ffb3b3", "#ffb380", "#ffff80", "#80ff80", "#80b3ff", "#8080ff", "#ff8080",
		),
		Unhighlighted: hexColors(
			"#ffe6e6", "#ffe6b3", "#ffffb3", "#b3ffb3", "#b3e6ff", "#b3b3ff", "#ffb3b3",
		),
	}
}

// Named resolves a built-in palette name, falling back to a chroma style
// of the same name.
func Named(name string) (Palette, error) {
	switch strings.ToLower(name) {
	case "", "default", "light":
		return Default(), nil
	case "terminal", "dark", "mocha":
		return Terminal(), nil
	case "rainbow":
		return Rainbow(), nil
	}
	p, err := PaletteFromStyle(name)
	if err != nil {
		return Palette{}, fmt.Errorf("theming: palette %q: %w", name, err)
	}
	return p, nil
}
