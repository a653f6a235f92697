// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelgrid/configcmd.go
// Summary: Inspect and edit the system configuration.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/framegrace/texelgrid/config"
)

func newConfigCommand(params *rootParams) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or edit the texelgrid configuration",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "path",
			Short: "Print where the system config lives",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				path, err := config.SystemPath()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
				return nil
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration as YAML",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				out, err := yaml.Marshal(params.cfg)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(out)
				return err
			},
		},
		&cobra.Command{
			Use:   "set section.key value",
			Short: "Store a value in the system config",
			Long: `Store a value in the system config. Values are read as YAML, so
2 is a number, true a boolean and "[red, blue]" a list:

  $ texelgrid config set grid.fixed_left 1
  $ texelgrid config set grid.highlighted_colors "[\"#303030\", navy]"`,
			Args: cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return setSystemValue(args[0], args[1])
			},
		},
	)
	return cmd
}

// setSystemValue rewrites the system config on disk with section.key set.
func setSystemValue(path, raw string) error {
	section, key, ok := strings.Cut(path, ".")
	if !ok || section == "" || key == "" {
		return fmt.Errorf("config key %q: want section.key", path)
	}
	if err := config.Reload(); err != nil {
		return fmt.Errorf("reload config: %w", err)
	}
	cfg := config.Clone(config.System())
	cfg.Set(section, key, config.ParseValue(raw))
	config.SetSystem(cfg)
	if err := config.SaveSystem(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}
