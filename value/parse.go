// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package value

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	reInt   = regexp.MustCompile(`^-?[0-9]+$`)
	reFloat = regexp.MustCompile(`^-?([0-9]+\.[0-9]*|\.[0-9]+)([eE][-+]?[0-9]+)?$`)
	reLink  = regexp.MustCompile(`^(https?|ftp)://\S+$|^mailto:\S+@\S+$`)
)

// dateLayouts are tried in order when inferring a date.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	time.DateTime,
	time.DateOnly,
	"2006/01/02",
	"02 Jan 2006",
	"Jan 2, 2006",
}

// Parse infers a Value from raw text. Integers, decimals, ISO-like dates and
// URLs get their own kind; everything else stays a String. Surrounding
// whitespace is ignored for inference but kept in String values.
func Parse(raw string) Value {
	s := strings.TrimSpace(raw)
	if s == "" {
		return String(raw)
	}
	if reInt.MatchString(s) {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return Int(n)
		}
	}
	if reFloat.MatchString(s) {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return Float(f)
		}
	}
	if reLink.MatchString(s) {
		return Link(s)
	}
	if t, ok := parseDate(s); ok {
		return Date(t)
	}
	return String(raw)
}

// ParseAll converts a row of raw text into values.
func ParseAll(raw []string) []Value {
	out := make([]Value, len(raw))
	for i, s := range raw {
		out[i] = Parse(s)
	}
	return out
}

func parseDate(s string) (time.Time, bool) {
	if len(s) < len("2 Jan 06") {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
