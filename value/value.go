// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// Package value defines the tagged cell value shown by the grid, its display
// projection and the order relation used when sorting columns.
package value

import (
	"cmp"
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindDate
	KindLink
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindDate:
		return "date"
	case KindLink:
		return "link"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a single cell value. The zero Value is an empty string.
type Value struct {
	kind Kind
	s    string
	i    int64
	f    float64
	t    time.Time
}

// String wraps plain text.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Int wraps an integer.
func Int(n int64) Value { return Value{kind: KindInt, i: n} }

// Float wraps a floating point number.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Date wraps a point in time.
func Date(t time.Time) Value { return Value{kind: KindDate, t: t} }

// Link wraps a hyperlink. The URL is also its display text.
func Link(url string) Value { return Value{kind: KindLink, s: url} }

// Strings converts plain strings into String values.
func Strings(ss ...string) []Value {
	out := make([]Value, len(ss))
	for i, s := range ss {
		out[i] = String(s)
	}
	return out
}

func (v Value) Kind() Kind { return v.kind }

// Display returns the canonical string projection used for rendering,
// measuring and searching.
func (v Value) Display() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case KindDate:
		if v.t.Hour() == 0 && v.t.Minute() == 0 && v.t.Second() == 0 && v.t.Nanosecond() == 0 {
			return v.t.Format(time.DateOnly)
		}
		return v.t.Format(time.DateTime)
	default:
		return v.s
	}
}

// String implements fmt.Stringer.
func (v Value) String() string { return v.Display() }

// Time returns the wrapped time for KindDate values.
func (v Value) Time() (time.Time, bool) {
	return v.t, v.kind == KindDate
}

// Number returns the numeric value for KindInt and KindFloat values.
func (v Value) Number() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindFloat:
		return v.f, true
	}
	return 0, false
}

// Compare orders two values. Values of the same kind compare naturally.
// Values of different kinds compare by their display strings, with the kind
// rank breaking ties, so the result is deterministic for any pair.
func (v Value) Compare(o Value) int {
	if v.kind == o.kind {
		switch v.kind {
		case KindInt:
			return cmp.Compare(v.i, o.i)
		case KindFloat:
			return cmp.Compare(v.f, o.f)
		case KindDate:
			return v.t.Compare(o.t)
		default:
			return strings.Compare(v.s, o.s)
		}
	}
	if c := strings.Compare(v.Display(), o.Display()); c != 0 {
		return c
	}
	return cmp.Compare(v.kind, o.kind)
}

// Less reports whether v sorts before o.
func (v Value) Less(o Value) bool { return v.Compare(o) < 0 }

// Equal reports value equality. Dates are equal when they denote the same
// instant regardless of location, and NaN equals NaN.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f || (math.IsNaN(v.f) && math.IsNaN(o.f))
	case KindDate:
		return v.t.Equal(o.t)
	default:
		return v.s == o.s
	}
}
