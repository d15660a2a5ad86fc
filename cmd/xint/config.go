// Copyright 2025 XintLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@xintlabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/xintlabs/xint/internal/errors"
)

const (
	defaultConfigDir  = ".xint"
	defaultConfigFile = "project.yaml"
	configVersion     = "1"
)

// Config represents the .xint/project.yaml configuration file.
type Config struct {
	Version     string            `yaml:"version"`
	ProjectID   string            `yaml:"project_id"`
	DataDir     string            `yaml:"data_dir,omitempty"`
	PackageAPI  PackageAPIConfig  `yaml:"package_api,omitempty"`
	Budget      BudgetConfig      `yaml:"budget,omitempty"`
	Reliability ReliabilityConfig `yaml:"reliability,omitempty"`
	TUI         TUIConfig         `yaml:"tui,omitempty"`
	Policy      PolicyConfig      `yaml:"policy,omitempty"`
}

// PackageAPIConfig points at the remote intelligence package service.
type PackageAPIConfig struct {
	BaseURL string `yaml:"base_url,omitempty"`
	APIKey  string `yaml:"api_key,omitempty"`
}

// BudgetConfig controls the spend guard for metered operations.
type BudgetConfig struct {
	LimitUSD  float64 `yaml:"limit_usd,omitempty"`
	CostsPath string  `yaml:"costs_path,omitempty"`
}

// ReliabilityConfig controls where operation outcomes are logged.
type ReliabilityConfig struct {
	Path string `yaml:"path,omitempty"`
}

// TUIConfig holds dashboard preferences.
type TUIConfig struct {
	Theme string `yaml:"theme,omitempty"` // classic, minimal, neon
}

// PolicyConfig sets the default policy mode when no flag is given.
type PolicyConfig struct {
	Default string `yaml:"default,omitempty"` // read_only, engagement
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig(projectID string) *Config {
	return &Config{
		Version:   configVersion,
		ProjectID: projectID,
		PackageAPI: PackageAPIConfig{
			BaseURL: getEnv("XINT_PACKAGE_API_BASE_URL", ""),
		},
		Budget: BudgetConfig{
			LimitUSD: 25,
		},
		TUI: TUIConfig{
			Theme: "classic",
		},
		Policy: PolicyConfig{
			Default: "read_only",
		},
	}
}

// LoadConfig loads configuration from the specified path or finds it
// automatically.
//
// If configPath is empty, XINT_CONFIG_PATH is consulted, then
// .xint/project.yaml is searched for in the current directory and its
// parents. Environment variables override file values after loading.
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = os.Getenv("XINT_CONFIG_PATH")
	}
	if configPath == "" {
		var err error
		configPath, err = findConfigFile()
		if err != nil {
			return nil, err // findConfigFile returns UserError
		}
	}

	data, err := os.ReadFile(configPath) //nolint:gosec // G304: Path comes from user config or discovery
	if err != nil {
		return nil, errors.NewConfigError(
			"Cannot read configuration file",
			fmt.Sprintf("Failed to read %s", configPath),
			"Check file permissions and ensure the file exists",
			err,
		)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.NewConfigError(
			"Invalid configuration format",
			"YAML parsing failed - the config file contains syntax errors",
			fmt.Sprintf("Edit %s to fix syntax errors, or run 'xint config init --force' to recreate", configPath),
			err,
		)
	}

	// Validate version
	if cfg.Version != configVersion {
		return nil, errors.NewConfigError(
			"Unsupported configuration version",
			fmt.Sprintf("Config version '%s' is not supported (expected '%s')", cfg.Version, configVersion),
			"Run 'xint config init --force' to regenerate the configuration file",
			nil,
		)
	}

	cfg.applyEnvOverrides()

	return &cfg, nil
}

// loadConfigOrDefault is LoadConfig that degrades to defaults when no
// config file exists. Environment overrides still apply, so the TUI
// and MCP server work out of the box in an uninitialized directory.
func loadConfigOrDefault(configPath string) *Config {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		cfg = DefaultConfig(filepath.Base(mustGetwd()))
		cfg.applyEnvOverrides()
	}
	return cfg
}

func mustGetwd() string {
	dir, err := os.Getwd()
	if err != nil {
		return "xint"
	}
	return dir
}

// SaveConfig writes the configuration to the specified path as YAML,
// creating the .xint directory if needed.
func SaveConfig(cfg *Config, configPath string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.NewInternalError(
			"Cannot encode configuration",
			"YAML marshaling failed unexpectedly",
			"This is a bug. Please report it with your configuration details",
			err,
		)
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return errors.NewPermissionError(
			"Cannot create configuration directory",
			fmt.Sprintf("Permission denied creating %s", dir),
			"Check directory permissions or run with appropriate privileges",
			err,
		)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return errors.NewPermissionError(
			"Cannot write configuration file",
			fmt.Sprintf("Permission denied writing to %s", configPath),
			"Check file permissions and ensure sufficient disk space",
			err,
		)
	}

	return nil
}

// ConfigPath returns the path to the config file in the given directory.
func ConfigPath(dir string) string {
	return filepath.Join(dir, defaultConfigDir, defaultConfigFile)
}

// ConfigDir returns the path to the .xint directory in the given directory.
func ConfigDir(dir string) string {
	return filepath.Join(dir, defaultConfigDir)
}

// findConfigFile searches for .xint/project.yaml in current and parent
// directories.
func findConfigFile() (string, error) {
	if configPath := os.Getenv("XINT_CONFIG_PATH"); configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
		return "", errors.NewConfigError(
			"Configuration file not found",
			fmt.Sprintf("XINT_CONFIG_PATH is set to '%s' but the file does not exist", configPath),
			"Fix the XINT_CONFIG_PATH environment variable or run 'xint config init' to create a config",
			nil,
		)
	}

	dir, err := os.Getwd()
	if err != nil {
		return "", errors.NewInternalError(
			"Cannot access working directory",
			"Failed to determine current directory path",
			"Check system permissions and try again",
			err,
		)
	}

	for {
		configPath := ConfigPath(dir)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			break
		}
		dir = parent
	}

	return "", errors.NewConfigError(
		"Configuration not found",
		"No .xint/project.yaml file found in current directory or any parent directory",
		"Run 'xint config init' to create a new configuration",
		nil,
	)
}

// applyEnvOverrides applies environment variable overrides to the
// configuration. Environment variables take precedence over file
// values so deployments can reconfigure without editing YAML.
//
// Supported environment variables:
//   - XINT_PROJECT_ID: Override project identifier
//   - XINT_DATA_DIR: Override data directory
//   - XINT_PACKAGE_API_BASE_URL: Override package API root URL
//   - XINT_PACKAGE_API_KEY: Override package API bearer token
//   - XINT_BUDGET_LIMIT_USD: Override spend limit
//   - XINT_TUI_THEME: Override dashboard theme
//   - XINT_POLICY: Override default policy mode
func (c *Config) applyEnvOverrides() {
	if id := os.Getenv("XINT_PROJECT_ID"); id != "" {
		c.ProjectID = id
	}
	if dir := os.Getenv("XINT_DATA_DIR"); dir != "" {
		c.DataDir = dir
	}
	if url := os.Getenv("XINT_PACKAGE_API_BASE_URL"); url != "" {
		c.PackageAPI.BaseURL = url
	}
	if key := os.Getenv("XINT_PACKAGE_API_KEY"); key != "" {
		c.PackageAPI.APIKey = key
	}
	if limit := os.Getenv("XINT_BUDGET_LIMIT_USD"); limit != "" {
		if v, err := strconv.ParseFloat(limit, 64); err == nil {
			c.Budget.LimitUSD = v
		}
	}
	if theme := os.Getenv("XINT_TUI_THEME"); theme != "" {
		c.TUI.Theme = theme
	}
	if mode := os.Getenv("XINT_POLICY"); mode != "" {
		c.Policy.Default = mode
	}
}

// getEnv retrieves an environment variable or returns a fallback value
// if not set.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
