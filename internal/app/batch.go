// SPDX-FileCopyrightText: © 2025 The Plated contributors
//
// SPDX-License-Identifier: AGPL-3.0-only

package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/cristalhq/acmd"

	"codeberg.org/plated/plated/internal/batch"
)

func init() {
	commands = append(commands, acmd.Command{
		Name:        "batch",
		Description: "Extract every HTML file of a directory",
		ExecFunc:    runBatch,
	})
}

func runBatch(ctx context.Context, args []string) error {
	var out string
	var profileName string
	var pretty bool

	fs := flag.NewFlagSet("batch", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: batch [arguments...] DIRECTORY") // nolint:errcheck
		fs.PrintDefaults()
	}
	fs.StringVar(&out, "out", "records", "output directory")
	fs.StringVar(&profileName, "profile", "", "force one profile for every file")
	fs.BoolVar(&pretty, "pretty", false, "indent JSON output")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	dir := strings.TrimSpace(fs.Arg(0))
	if dir == "" {
		return errors.New("input directory is required")
	}

	cfg, err := appInit()
	if err != nil {
		return err
	}
	registry, err := loadRegistry(cfg)
	if err != nil {
		return err
	}

	stats, err := batch.New(registry, batch.Options{
		InputDir:  dir,
		OutputDir: out,
		Profile:   profileName,
		Workers:   cfg.Workers,
		Pretty:    pretty,
	}).Run(ctx)
	if err != nil {
		return err
	}
	if stats.Failed > 0 {
		return fmt.Errorf("%d of %d files failed", stats.Failed, stats.Failed+stats.Processed)
	}
	return nil
}
