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

// SearchResult represents a search invocation for JSON output.
type SearchResult struct {
	Op        string    `json:"op"`
	Query     string    `json:"query"`
	Limit     int       `json:"limit"`
	Since     string    `json:"since,omitempty"`
	Sort      string    `json:"sort,omitempty"`
	Result    string    `json:"result"`
	Timestamp time.Time `json:"timestamp"`
}

// runSearch executes the 'search' CLI command.
//
// Examples:
//
//	xint search --query "solar flare" --limit 10
//	xint search "solar flare" --since 1d --json
func runSearch(args []string, configPath string, globals GlobalFlags) {
	started := time.Now()
	cfg := loadConfigOrDefault(configPath)

	fs := flag.NewFlagSet("search", flag.ExitOnError)
	query := fs.String("query", "", "Search query (or pass as positional argument)")
	limit := fs.Int("limit", 15, "Max results")
	since := fs.String("since", "", "Time filter: 1h, 1d, 7d")
	sort := fs.String("sort", "", "Sort order: likes, retweets, recent")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: xint search [options] [query]

Description:
  Search recent posts on X/Twitter for a query.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  xint search --query "solar flare" --limit 10
  xint search "solar flare" --since 1d
  xint search "launch window" --sort likes --json

`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	q := *query
	if q == "" {
		q = strings.TrimSpace(strings.Join(fs.Args(), " "))
	}
	if q == "" {
		recordOutcome(cfg, configPath, "search", started, false, globals, true)
		errors.FatalError(errors.NewInputError(
			"Missing search query",
			"No query was provided via --query or positional arguments",
			"Run 'xint search --query \"your terms\"'",
			nil,
		), globals.JSON)
	}

	result := SearchResult{
		Op:        "search",
		Query:     q,
		Limit:     *limit,
		Since:     *since,
		Sort:      *sort,
		Result:    fmt.Sprintf("Search: %s (limit: %d)", q, *limit),
		Timestamp: time.Now(),
	}

	recordOutcome(cfg, configPath, "search", started, true, globals, true)

	if globals.JSON {
		outputJSON(result)
		return
	}

	ui.Header("Search")
	fmt.Printf("%s  %s\n", ui.Label("Query:"), q)
	fmt.Printf("%s  %s\n", ui.Label("Limit:"), ui.CountText(*limit))
	if *since != "" {
		fmt.Printf("%s  %s\n", ui.Label("Since:"), *since)
	}
	fmt.Println()
	fmt.Println(result.Result)
}
