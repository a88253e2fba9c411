// SPDX-FileCopyrightText: © 2025 The Plated contributors
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package batch runs the extraction pipeline over a directory of
// saved HTML pages. Files are processed concurrently and every file
// is isolated: one broken page never stops the run.
package batch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/sync/errgroup"

	"codeberg.org/plated/plated/internal/profiles"
	"codeberg.org/plated/plated/pkg/extract"
)

// Options configures a batch [Runner].
type Options struct {
	// InputDir is scanned recursively for HTML files.
	InputDir string

	// OutputDir receives one .json record per input file, mirroring
	// the input directory layout. It is created when missing.
	OutputDir string

	// Profile forces one profile for every file. When empty, each
	// file picks its profile from its name via [profiles.Registry.ForSite].
	Profile string

	// Workers caps concurrent extractions. Zero means one per CPU.
	Workers int

	// Pretty indents the JSON output.
	Pretty bool

	Logger *slog.Logger
}

// Stats summarizes one run.
type Stats struct {
	Processed int
	Failed    int
	Skipped   int
}

// Runner extracts every HTML file of a directory tree.
type Runner struct {
	opts     Options
	registry *profiles.Registry
	logger   *slog.Logger

	mu        sync.Mutex
	pipelines map[string]*extract.Pipeline
}

// New creates a runner over a profile registry.
func New(registry *profiles.Registry, opts Options) *Runner {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		opts:      opts,
		registry:  registry,
		logger:    logger,
		pipelines: map[string]*extract.Pipeline{},
	}
}

// Run walks the input directory and extracts every HTML file. The
// returned error covers the walk and the output directory only;
// per-file failures are logged and counted in [Stats].
func (r *Runner) Run(ctx context.Context) (Stats, error) {
	stats := struct {
		processed atomic.Int64
		failed    atomic.Int64
		skipped   atomic.Int64
	}{}

	if err := os.MkdirAll(r.opts.OutputDir, 0o755); err != nil {
		return Stats{}, err
	}

	files := []string{}
	err := filepath.WalkDir(r.opts.InputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return Stats{}, err
	}

	g, ctx := errgroup.WithContext(ctx)
	if r.opts.Workers > 0 {
		g.SetLimit(r.opts.Workers)
	} else {
		g.SetLimit(runtime.NumCPU())
	}

	for _, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			switch err := r.processFile(path); {
			case err == errNotHTML:
				stats.skipped.Add(1)
			case err != nil:
				stats.failed.Add(1)
				r.logger.Error("extraction failed",
					slog.String("file", path),
					slog.Any("err", err),
				)
			default:
				stats.processed.Add(1)
			}
			return nil
		})
	}
	err = g.Wait()

	out := Stats{
		Processed: int(stats.processed.Load()),
		Failed:    int(stats.failed.Load()),
		Skipped:   int(stats.skipped.Load()),
	}
	r.logger.Info("batch finished",
		slog.Int("processed", out.Processed),
		slog.Int("failed", out.Failed),
		slog.Int("skipped", out.Skipped),
	)
	return out, err
}

var errNotHTML = fmt.Errorf("not an html file")

func (r *Runner) processFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
	default:
		if !mimetype.Detect(raw).Is("text/html") {
			return errNotHTML
		}
	}

	name := filepath.Base(path)
	pipeline, err := r.pipelineFor(name)
	if err != nil {
		return err
	}

	doc, err := extract.NewDocument(bytes.NewReader(raw), name)
	if err != nil {
		return err
	}
	rec := pipeline.Process(doc)

	var data []byte
	if r.opts.Pretty {
		data, err = json.MarshalIndent(rec, "", "  ")
	} else {
		data, err = json.Marshal(rec)
	}
	if err != nil {
		return err
	}
	data = append(data, '\n')

	rel, err := filepath.Rel(r.opts.InputDir, path)
	if err != nil {
		rel = name
	}
	dest := filepath.Join(r.opts.OutputDir, jsonName(rel))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dest, data, 0o644)
}

// pipelineFor returns the pipeline of the profile matching a file
// name, building it on first use.
func (r *Runner) pipelineFor(name string) (*extract.Pipeline, error) {
	profile := r.registry.ForSite(name)
	if r.opts.Profile != "" {
		p, ok := r.registry.Get(r.opts.Profile)
		if !ok {
			return nil, fmt.Errorf("unknown profile %q", r.opts.Profile)
		}
		profile = p
	}
	if profile == nil {
		return nil, fmt.Errorf("no profile matches %q", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.pipelines[profile.Name]; ok {
		return p, nil
	}
	p, err := profile.Build(r.logger)
	if err != nil {
		return nil, err
	}
	r.pipelines[profile.Name] = p
	return p, nil
}

func jsonName(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm":
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	return name + ".json"
}
