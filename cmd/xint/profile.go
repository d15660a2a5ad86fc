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

// ProfileResult represents a profile invocation for JSON output.
type ProfileResult struct {
	Op        string    `json:"op"`
	Username  string    `json:"username"`
	Count     int       `json:"count"`
	Result    string    `json:"result"`
	Timestamp time.Time `json:"timestamp"`
}

// runProfile executes the 'profile' CLI command. A leading @ on the
// username is accepted and trimmed.
func runProfile(args []string, configPath string, globals GlobalFlags) {
	started := time.Now()
	cfg := loadConfigOrDefault(configPath)

	fs := flag.NewFlagSet("profile", flag.ExitOnError)
	count := fs.Int("count", 20, "Number of tweets")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: xint profile [options] <username>

Description:
  Fetch recent posts from a specific X/Twitter user.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  xint profile nasa
  xint profile @nasa --count 50 --json

`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	username := strings.TrimPrefix(strings.TrimSpace(strings.Join(fs.Args(), " ")), "@")
	if username == "" {
		recordOutcome(cfg, configPath, "profile", started, false, globals, true)
		errors.FatalError(errors.NewInputError(
			"Missing username",
			"No username was provided",
			"Run 'xint profile <username>'",
			nil,
		), globals.JSON)
	}

	result := ProfileResult{
		Op:        "profile",
		Username:  username,
		Count:     *count,
		Result:    fmt.Sprintf("Profile: @%s", username),
		Timestamp: time.Now(),
	}

	recordOutcome(cfg, configPath, "profile", started, true, globals, true)

	if globals.JSON {
		outputJSON(result)
		return
	}

	ui.Header("Profile")
	fmt.Printf("%s  @%s\n", ui.Label("User:"), username)
	fmt.Println()
	fmt.Println(result.Result)
}
