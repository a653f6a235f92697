// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Default values for the system configuration file.
// The embedded default.yaml is the single source of truth.

package config

import (
	_ "embed"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

var (
	embeddedOnce sync.Once
	embedded     Config
)

// embeddedDefaults returns the parsed embedded defaults. The result is
// cached after the first call.
func embeddedDefaults() Config {
	embeddedOnce.Do(func() {
		var cfg Config
		if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
			log.WithError(err).Error("Config: Embedded defaults are invalid")
			cfg = make(Config)
		}
		embedded = cfg
	})
	return embedded
}

func defaultSystemConfig() Config {
	return Clone(embeddedDefaults())
}

func applySystemDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	for name, raw := range embeddedDefaults() {
		if section, ok := raw.(map[string]interface{}); ok {
			cfg.RegisterDefaults(name, Section(section))
			continue
		}
		if _, ok := cfg[name]; !ok {
			cfg[name] = raw
		}
	}
}
