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
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/xintlabs/xint/internal/errors"
	"github.com/xintlabs/xint/internal/ui"
)

// DiffResult represents a diff invocation for JSON output.
type DiffResult struct {
	Op        string    `json:"op"`
	Username  string    `json:"username"`
	Following bool      `json:"following"`
	Result    string    `json:"result"`
	Timestamp time.Time `json:"timestamp"`
}

// runDiff executes the 'diff' CLI command. The engagement policy gate
// runs in main before dispatch.
func runDiff(args []string, configPath string, globals GlobalFlags) {
	started := time.Now()
	cfg := loadConfigOrDefault(configPath)

	fs := flag.NewFlagSet("diff", flag.ExitOnError)
	following := fs.Bool("following", false, "Track following instead of followers")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: xint diff [options] <username>

Description:
  Track follower or following changes for a user between runs.
  Requires the engagement policy mode.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  xint --policy engagement diff nasa
  xint --policy engagement diff nasa --following

`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	username := strings.TrimPrefix(strings.TrimSpace(strings.Join(fs.Args(), " ")), "@")
	if username == "" {
		recordOutcome(cfg, configPath, "diff", started, false, globals, true)
		errors.FatalError(errors.NewInputError(
			"Missing username",
			"No username was provided",
			"Run 'xint diff <username>'",
			nil,
		), globals.JSON)
	}

	result := DiffResult{
		Op:        "diff",
		Username:  username,
		Following: *following,
		Result:    fmt.Sprintf("Diff tracking for @%s", username),
		Timestamp: time.Now(),
	}

	recordOutcome(cfg, configPath, "diff", started, true, globals, true)

	if globals.JSON {
		outputJSON(result)
		return
	}

	ui.Header("Diff")
	fmt.Printf("%s  @%s\n", ui.Label("User:"), username)
	fmt.Println()
	fmt.Println(result.Result)
}
