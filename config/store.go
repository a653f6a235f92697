// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/store.go
// Summary: Load and default-seeding logic for the config store.

package config

func loadSystemLocked() error {
	path, err := systemConfigPath()
	if err != nil {
		log.WithError(err).Warn("Config: Failed to resolve system config path")
		system = make(Config)
		applySystemDefaults(system)
		return err
	}

	cfg, exists, readErr := readConfig(path)
	if readErr != nil {
		log.WithError(readErr).Warnf("Config: Failed to read system config %s", path)
		cfg = make(Config)
	}

	if !exists || (readErr == nil && len(cfg) == 0) {
		cfg = defaultSystemConfig()
		if err := writeConfig(path, cfg); err != nil {
			log.WithError(err).Warn("Config: Failed to write default system config")
			if readErr == nil {
				readErr = err
			}
		}
	} else {
		applySystemDefaults(cfg)
	}

	system = cfg
	if readErr == nil && exists {
		log.Debugf("Config: Loaded system config from %s", path)
	}
	return readErr
}
