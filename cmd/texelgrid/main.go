// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelgrid/main.go
// Summary: texelgrid command line entry point.
// Usage: `texelgrid view people.csv` opens the interactive grid;
// `texelgrid print --sort age:desc people.csv` prints it once.

package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
