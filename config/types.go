// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/types.go
// Summary: Typed access to config values decoded from JSON, YAML or the
// command line.

package config

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"gopkg.in/yaml.v3"
)

// Section returns the named section or nil if missing. The empty name
// addresses the top level.
func (c Config) Section(sectionName string) Section {
	if c == nil {
		return nil
	}
	if sectionName == "" {
		return Section(c)
	}
	switch v := c[sectionName].(type) {
	case Section:
		return v
	case map[string]interface{}:
		return Section(v)
	}
	return nil
}

// RegisterDefaults ensures a section has defaults without overwriting existing keys.
func (c Config) RegisterDefaults(sectionName string, defaults Section) {
	if c == nil || defaults == nil {
		return
	}
	section := c.Section(sectionName)
	if section == nil {
		section = make(Section)
		c[sectionName] = section
	}
	for key, value := range defaults {
		if _, ok := section[key]; !ok {
			section[key] = value
		}
	}
}

// Set stores value under section.key, creating the section when needed.
func (c Config) Set(sectionName, key string, value interface{}) {
	section := c.Section(sectionName)
	if section == nil {
		section = make(Section)
		c[sectionName] = section
	}
	section[key] = value
}

func (c Config) lookup(sectionName, key string) (interface{}, bool) {
	section := c.Section(sectionName)
	if section == nil {
		return nil, false
	}
	v, ok := section[key]
	return v, ok
}

// number converts the numeric shapes JSON, YAML and hand-built configs
// produce. Strings are parsed.
func number(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

// GetString retrieves a string value from the config.
func (c Config) GetString(sectionName, key, defaultValue string) string {
	v, _ := c.lookup(sectionName, key)
	if s, ok := v.(string); ok {
		return s
	}
	return defaultValue
}

// GetFloat retrieves a float value from the config.
func (c Config) GetFloat(sectionName, key string, defaultValue float64) float64 {
	v, ok := c.lookup(sectionName, key)
	if !ok {
		return defaultValue
	}
	if f, ok := number(v); ok && !math.IsNaN(f) {
		return f
	}
	return defaultValue
}

// GetInt retrieves an integer value from the config. Fractions are
// truncated.
func (c Config) GetInt(sectionName, key string, defaultValue int) int {
	if n, ok := c.GetOptionalInt(sectionName, key); ok {
		return n
	}
	return defaultValue
}

// GetOptionalInt reports whether section.key holds a number and returns it
// truncated to an int.
func (c Config) GetOptionalInt(sectionName, key string) (int, bool) {
	v, ok := c.lookup(sectionName, key)
	if !ok {
		return 0, false
	}
	f, ok := number(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(f), true
}

// GetBool retrieves a boolean value from the config. Numbers are true when
// non-zero.
func (c Config) GetBool(sectionName, key string, defaultValue bool) bool {
	v, ok := c.lookup(sectionName, key)
	if !ok {
		return defaultValue
	}
	if b, ok := v.(bool); ok {
		return b
	}
	if s, ok := v.(string); ok {
		if parsed, err := strconv.ParseBool(s); err == nil {
			return parsed
		}
		return defaultValue
	}
	if f, ok := number(v); ok {
		return f != 0
	}
	return defaultValue
}

// GetStringList retrieves a list of strings. Non-string entries are skipped;
// a single string value is returned as a one-element list.
func (c Config) GetStringList(sectionName, key string, defaultValue []string) []string {
	v, _ := c.lookup(sectionName, key)
	switch v := v.(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		if v != "" {
			return []string{v}
		}
	}
	return defaultValue
}

// GetColors reads a list of color names or #rrggbb values. Names tcell
// does not know are skipped, and a missing key yields nil.
func (c Config) GetColors(sectionName, key string) []tcell.Color {
	var out []tcell.Color
	for _, name := range c.GetStringList(sectionName, key, nil) {
		if col := tcell.GetColor(strings.TrimSpace(name)); col != tcell.ColorDefault {
			out = append(out, col)
		}
	}
	return out
}

// ParseValue decodes a command line value the way a YAML file would: 2 is
// an int, true a bool and [a, b] a list. Anything else stays a string.
func ParseValue(s string) interface{} {
	var v interface{}
	if err := yaml.Unmarshal([]byte(s), &v); err != nil || v == nil {
		return s
	}
	if _, ok := v.(map[string]interface{}); ok {
		return s
	}
	return v
}
