// Copyright 2025 XintLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xintlabs/xint/internal/errors"
)

// dataRootFromConfig resolves the storage root with precedence:
// XINT_DATA_DIR > data_dir from config > ~/.xint/data.
func dataRootFromConfig(cfg *Config, configPath string) (string, error) {
	if envDir := os.Getenv("XINT_DATA_DIR"); envDir != "" {
		return absPath(envDir)
	}

	if cfg != nil && cfg.DataDir != "" {
		custom := cfg.DataDir
		if filepath.IsAbs(custom) {
			return filepath.Clean(custom), nil
		}

		cfgFilePath, err := resolvedConfigPath(configPath)
		if err == nil {
			baseDir := filepath.Dir(cfgFilePath)
			return filepath.Clean(filepath.Join(baseDir, custom)), nil
		}

		return absPath(custom)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.NewInternalError(
			"Cannot determine home directory",
			"Operating system did not provide user home directory path",
			"Check your system configuration or set HOME environment variable",
			err,
		)
	}
	return filepath.Join(home, ".xint", "data"), nil
}

// projectDataDir resolves the effective per-project data directory.
func projectDataDir(cfg *Config, configPath string) (string, error) {
	root, err := dataRootFromConfig(cfg, configPath)
	if err != nil {
		return "", err
	}
	if cfg == nil || cfg.ProjectID == "" {
		return root, nil
	}
	return filepath.Join(root, cfg.ProjectID), nil
}

// costsPath resolves the budget ledger location: explicit config value
// first, then <project data dir>/costs.json.
func costsPath(cfg *Config, configPath string) (string, error) {
	if cfg != nil && cfg.Budget.CostsPath != "" {
		return absPath(cfg.Budget.CostsPath)
	}
	dir, err := projectDataDir(cfg, configPath)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "costs.json"), nil
}

// reliabilityPath resolves the operation log location: explicit config
// value first, then <project data dir>/reliability.jsonl.
func reliabilityPath(cfg *Config, configPath string) (string, error) {
	if cfg != nil && cfg.Reliability.Path != "" {
		return absPath(cfg.Reliability.Path)
	}
	dir, err := projectDataDir(cfg, configPath)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "reliability.jsonl"), nil
}

func resolvedConfigPath(configPath string) (string, error) {
	if configPath != "" {
		return absPath(configPath)
	}
	if envPath := os.Getenv("XINT_CONFIG_PATH"); envPath != "" {
		return absPath(envPath)
	}
	path, err := findConfigFile()
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return absPath(path)
}

func absPath(path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.Clean(abs), nil
}
