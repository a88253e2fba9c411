// SPDX-FileCopyrightText: © 2025 The Plated contributors
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package app holds the command line application: configuration from
// the environment, logging setup and the top level commands.
package app

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/cristalhq/acmd"

	"codeberg.org/plated/plated/internal/profiles"
)

var version = "dev"

// commands is populated by each command file's init.
var commands []acmd.Command

// Config is the process configuration, read from PLATED_* environment
// variables.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"PLATED_LOG_LEVEL" envDefault:"info"`

	// DevMode enables the colored development log theme.
	DevMode bool `env:"PLATED_DEV_MODE"`

	// ProfileDir optionally adds profiles on top of the embedded ones.
	ProfileDir string `env:"PLATED_PROFILE_DIR"`

	// Workers caps batch concurrency. Zero means one per CPU.
	Workers int `env:"PLATED_WORKERS"`
}

func loadConfig() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("configuration: %w", err)
	}
	return cfg, nil
}

func logLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", name)
}

// appInit loads the configuration and installs the default logger.
func appInit() (Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return cfg, err
	}
	level, err := logLevel(cfg.LogLevel)
	if err != nil {
		return cfg, err
	}
	slog.SetDefault(newLogger(level, cfg.DevMode))
	return cfg, nil
}

// loadRegistry loads the embedded profiles plus the configured
// profile directory.
func loadRegistry(cfg Config) (*profiles.Registry, error) {
	registry, err := profiles.Load()
	if err != nil {
		return nil, err
	}
	if cfg.ProfileDir != "" {
		if err := registry.LoadDir(cfg.ProfileDir); err != nil {
			return nil, fmt.Errorf("profile directory %s: %w", cfg.ProfileDir, err)
		}
	}
	return registry, nil
}

// Run executes the command line application.
func Run() error {
	return acmd.RunnerOf(commands, acmd.Config{
		AppName:        "plated",
		AppDescription: "Extract structured recipe records from saved HTML pages",
		Version:        version,
	}).Run()
}
