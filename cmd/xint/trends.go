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

	"github.com/xintlabs/xint/internal/ui"
)

// TrendsResult represents a trends invocation for JSON output.
type TrendsResult struct {
	Op        string    `json:"op"`
	Location  string    `json:"location"`
	Limit     int       `json:"limit"`
	Result    string    `json:"result"`
	Timestamp time.Time `json:"timestamp"`
}

// runTrends executes the 'trends' CLI command. The location is
// optional and defaults to worldwide.
func runTrends(args []string, configPath string, globals GlobalFlags) {
	started := time.Now()
	cfg := loadConfigOrDefault(configPath)

	fs := flag.NewFlagSet("trends", flag.ExitOnError)
	location := fs.String("location", "", "Location or WOEID (default: worldwide)")
	limit := fs.Int("limit", 20, "Number of trends")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: xint trends [options] [location]

Description:
  Show trending topics on X for a location. Without a location the
  worldwide trends are shown.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  xint trends
  xint trends tokyo
  xint trends --location "new york" --limit 10 --json

`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	loc := *location
	if loc == "" {
		loc = strings.TrimSpace(strings.Join(fs.Args(), " "))
	}
	if loc == "" {
		loc = "worldwide"
	}

	result := TrendsResult{
		Op:        "trends",
		Location:  loc,
		Limit:     *limit,
		Result:    fmt.Sprintf("Trends for: %s", loc),
		Timestamp: time.Now(),
	}

	recordOutcome(cfg, configPath, "trends", started, true, globals, true)

	if globals.JSON {
		outputJSON(result)
		return
	}

	ui.Header("Trends")
	fmt.Printf("%s  %s\n", ui.Label("Location:"), loc)
	fmt.Println()
	fmt.Println(result.Result)
}
