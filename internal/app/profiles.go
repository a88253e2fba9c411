// SPDX-FileCopyrightText: © 2025 The Plated contributors
//
// SPDX-License-Identifier: AGPL-3.0-only

package app

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/cristalhq/acmd"
)

func init() {
	commands = append(commands, acmd.Command{
		Name:        "profiles",
		Description: "List the available extraction profiles",
		ExecFunc:    runProfiles,
	})
}

func runProfiles(_ context.Context, _ []string) error {
	cfg, err := appInit()
	if err != nil {
		return err
	}
	registry, err := loadRegistry(cfg)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tLOCALE\tSITES") // nolint:errcheck
	for _, name := range registry.Names() {
		p, _ := registry.Get(name)
		fmt.Fprintf( // nolint:errcheck
			w, "%s\t%s\t%s\n",
			p.Name, p.LanguageTag(), strings.Join(p.Sites, ", "),
		)
	}
	return w.Flush()
}
