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
	"time"

	flag "github.com/spf13/pflag"

	"github.com/xintlabs/xint/internal/ui"
)

// BookmarksResult represents a bookmarks invocation for JSON output.
type BookmarksResult struct {
	Op        string    `json:"op"`
	Limit     int       `json:"limit"`
	Since     string    `json:"since,omitempty"`
	Result    string    `json:"result"`
	Timestamp time.Time `json:"timestamp"`
}

// runBookmarks executes the 'bookmarks' CLI command. The engagement
// policy gate runs in main before dispatch.
func runBookmarks(args []string, configPath string, globals GlobalFlags) {
	started := time.Now()
	cfg := loadConfigOrDefault(configPath)

	fs := flag.NewFlagSet("bookmarks", flag.ExitOnError)
	limit := fs.Int("limit", 20, "Max bookmarks")
	since := fs.String("since", "", "Filter by recency: 1h, 1d, 7d")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: xint bookmarks [options]

Description:
  List the account's bookmarked tweets. Requires OAuth credentials
  and the engagement policy mode.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  xint --policy engagement bookmarks
  xint --policy engagement bookmarks --limit 50 --since 7d

`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	result := BookmarksResult{
		Op:        "bookmarks",
		Limit:     *limit,
		Since:     *since,
		Result:    "Bookmarks: OAuth required",
		Timestamp: time.Now(),
	}

	recordOutcome(cfg, configPath, "bookmarks", started, true, globals, true)

	if globals.JSON {
		outputJSON(result)
		return
	}

	ui.Header("Bookmarks")
	fmt.Println(result.Result)
}
