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

	flag "github.com/spf13/pflag"

	"github.com/xintlabs/xint/internal/errors"
	"github.com/xintlabs/xint/internal/ui"
)

// ConfigOutput represents the configuration for JSON output.
// The package API key is intentionally omitted.
type ConfigOutput struct {
	ConfigPath        string  `json:"config_path"`
	Version           string  `json:"version"`
	ProjectID         string  `json:"project_id"`
	DataDir           string  `json:"data_dir,omitempty"`
	PackageAPIBaseURL string  `json:"package_api_base_url,omitempty"`
	BudgetLimitUSD    float64 `json:"budget_limit_usd"`
	TUITheme          string  `json:"tui_theme,omitempty"`
	PolicyDefault     string  `json:"policy_default,omitempty"`
}

// runConfigCmd executes the 'config' CLI command with verbs show
// (default) and init.
func runConfigCmd(args []string, configPath string, globals GlobalFlags) {
	verb := "show"
	if len(args) > 0 && (args[0] == "show" || args[0] == "init") {
		verb = args[0]
		args = args[1:]
	}

	switch verb {
	case "init":
		runConfigInit(args, globals)
	default:
		runConfigShow(args, configPath, globals)
	}
}

func runConfigShow(args []string, configPath string, globals GlobalFlags) {
	fs := flag.NewFlagSet("config show", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: xint config [show] [options]

Description:
  Display the current xint configuration. This reads .xint/project.yaml
  and applies environment variable overrides.

  Note: the package API key is never displayed.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  xint config
  xint config --json | jq '.budget_limit_usd'

`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		errors.FatalError(err, globals.JSON)
	}
	path, err := resolvedConfigPath(configPath)
	if err != nil {
		path = ""
	}

	if globals.JSON {
		outputJSON(ConfigOutput{
			ConfigPath:        path,
			Version:           cfg.Version,
			ProjectID:         cfg.ProjectID,
			DataDir:           cfg.DataDir,
			PackageAPIBaseURL: cfg.PackageAPI.BaseURL,
			BudgetLimitUSD:    cfg.Budget.LimitUSD,
			TUITheme:          cfg.TUI.Theme,
			PolicyDefault:     cfg.Policy.Default,
		})
		return
	}

	ui.Header("xint Configuration")
	fmt.Printf("%s      %s\n", ui.Label("Config:"), ui.DimText(path))
	fmt.Printf("%s     %s\n", ui.Label("Project:"), cfg.ProjectID)
	if cfg.DataDir != "" {
		fmt.Printf("%s    %s\n", ui.Label("Data dir:"), ui.DimText(cfg.DataDir))
	}
	if cfg.PackageAPI.BaseURL != "" {
		fmt.Printf("%s %s\n", ui.Label("Package API:"), ui.DimText(cfg.PackageAPI.BaseURL))
	}
	fmt.Printf("%s      $%.2f\n", ui.Label("Budget:"), cfg.Budget.LimitUSD)
	fmt.Printf("%s       %s\n", ui.Label("Theme:"), cfg.TUI.Theme)
	fmt.Printf("%s      %s\n", ui.Label("Policy:"), cfg.Policy.Default)
}

func runConfigInit(args []string, globals GlobalFlags) {
	fs := flag.NewFlagSet("config init", flag.ExitOnError)
	force := fs.Bool("force", false, "Overwrite an existing configuration")
	projectID := fs.String("project-id", "", "Project identifier (default: directory name)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: xint config init [options]

Description:
  Create .xint/project.yaml in the current directory with defaults.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  xint config init
  xint config init --project-id storm-watch --force

`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	cwd, err := os.Getwd()
	if err != nil {
		errors.FatalError(errors.NewInternalError(
			"Cannot access working directory",
			"Failed to determine current directory path",
			"Check system permissions and try again",
			err,
		), globals.JSON)
	}

	path := ConfigPath(cwd)
	if _, err := os.Stat(path); err == nil && !*force {
		errors.FatalError(errors.NewInputError(
			"Configuration already exists",
			fmt.Sprintf("%s is already present", path),
			"Re-run with --force to overwrite it",
			nil,
		), globals.JSON)
	}

	id := *projectID
	if id == "" {
		id = filepath.Base(cwd)
	}

	cfg := DefaultConfig(id)
	if err := SaveConfig(cfg, path); err != nil {
		errors.FatalError(err, globals.JSON)
	}

	if globals.JSON {
		outputJSON(map[string]string{"config_path": path, "project_id": id})
		return
	}
	ui.Success(fmt.Sprintf("Created %s", path))
	ui.Info("Edit it to set package_api.base_url and the budget limit.")
}
