// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package theming

import (
	"errors"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"
)

// ErrUnknownStyle is returned for a style name chroma does not register.
var ErrUnknownStyle = errors.New("unknown chroma style")

// accentTokens seed the highlighted colors, one per palette entry.
var accentTokens = [PaletteSize]chroma.TokenType{
	chroma.Keyword,
	chroma.NameFunction,
	chroma.LiteralString,
	chroma.LiteralNumber,
	chroma.NameClass,
	chroma.NameBuiltin,
	chroma.Operator,
}

const (
	accentMix   = 0.3
	stripeShift = 0.04
)

// PaletteFromStyle derives a palette from a chroma style: unhighlighted
// rows stripe the style background, highlighted rows tint it with the
// style's token accents.
func PaletteFromStyle(name string) (Palette, error) {
	style, ok := styles.Registry[strings.ToLower(name)]
	if !ok {
		return Palette{}, ErrUnknownStyle
	}
	bg := style.Get(chroma.Background).Background
	if !bg.IsSet() {
		bg = chroma.MustParseColour("#ffffff")
	}
	stripe := bg.BrightenOrDarken(stripeShift)

	p := Palette{
		Highlighted:   make([]tcell.Color, PaletteSize),
		Unhighlighted: make([]tcell.Color, PaletteSize),
	}
	for i, tok := range accentTokens {
		base := bg
		if i%2 == 1 {
			base = stripe
		}
		p.Unhighlighted[i] = toTcell(base)

		accent := style.Get(tok).Colour
		if !accent.IsSet() {
			p.Highlighted[i] = toTcell(base.BrightenOrDarken(0.15))
			continue
		}
		p.Highlighted[i] = mix(base, accent, accentMix)
	}
	return p, nil
}

func toTcell(c chroma.Colour) tcell.Color {
	return tcell.NewRGBColor(int32(c.Red()), int32(c.Green()), int32(c.Blue()))
}

func mix(a, b chroma.Colour, t float64) tcell.Color {
	ch := func(x, y uint8) int32 {
		return int32(float64(x)*(1-t) + float64(y)*t + 0.5)
	}
	return tcell.NewRGBColor(ch(a.Red(), b.Red()), ch(a.Green(), b.Green()), ch(a.Blue(), b.Blue()))
}
