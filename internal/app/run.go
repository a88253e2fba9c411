// SPDX-FileCopyrightText: © 2025 The Plated contributors
//
// SPDX-License-Identifier: AGPL-3.0-only

package app

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/cristalhq/acmd"

	"codeberg.org/plated/plated/pkg/extract"
)

func init() {
	commands = append(commands, acmd.Command{
		Name:        "run",
		Description: "Extract one HTML file and print the record",
		ExecFunc:    runExtract,
	})
}

func runExtract(_ context.Context, args []string) error {
	var profileName string
	var compact bool

	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: run [arguments...] FILE") // nolint:errcheck
		fs.PrintDefaults()
	}
	fs.StringVar(&profileName, "profile", "", "profile name (default: matched from the file name)")
	fs.BoolVar(&compact, "compact", false, "print compact JSON")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	src := strings.TrimSpace(fs.Arg(0))
	if src == "" {
		return errors.New("input file is required")
	}

	cfg, err := appInit()
	if err != nil {
		return err
	}
	registry, err := loadRegistry(cfg)
	if err != nil {
		return err
	}

	profile := registry.ForSite(filepath.Base(src))
	if profileName != "" {
		p, ok := registry.Get(profileName)
		if !ok {
			return fmt.Errorf("unknown profile %q", profileName)
		}
		profile = p
	}
	if profile == nil {
		return fmt.Errorf("no profile matches %q", src)
	}

	pipeline, err := profile.Build(slog.Default())
	if err != nil {
		return err
	}

	fd, err := os.Open(src)
	if err != nil {
		return err
	}
	defer fd.Close() // nolint:errcheck

	doc, err := extract.NewDocument(fd, filepath.Base(src))
	if err != nil {
		return err
	}
	rec := pipeline.Process(doc)

	enc := json.NewEncoder(os.Stdout)
	if !compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(rec)
}
