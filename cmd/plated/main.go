// SPDX-FileCopyrightText: © 2025 The Plated contributors
//
// SPDX-License-Identifier: AGPL-3.0-only

// Command plated extracts structured recipe records from saved HTML
// pages.
package main

import (
	"fmt"
	"os"

	"codeberg.org/plated/plated/internal/app"
)

func main() {
	if err := app.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err) // nolint:errcheck
		os.Exit(1)
	}
}
