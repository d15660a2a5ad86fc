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

// ThreadResult represents a thread invocation for JSON output.
type ThreadResult struct {
	Op        string    `json:"op"`
	TweetID   string    `json:"tweet_id"`
	Pages     int       `json:"pages"`
	Result    string    `json:"result"`
	Timestamp time.Time `json:"timestamp"`
}

// runThread executes the 'thread' CLI command.
func runThread(args []string, configPath string, globals GlobalFlags) {
	started := time.Now()
	cfg := loadConfigOrDefault(configPath)

	fs := flag.NewFlagSet("thread", flag.ExitOnError)
	pages := fs.Int("pages", 2, "Pages to fetch")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: xint thread [options] <tweet-id-or-url>

Description:
  Expand a tweet into its full conversation thread.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  xint thread 1234567890
  xint thread https://x.com/nasa/status/1234567890 --pages 4

`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	tweetID := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if tweetID == "" {
		recordOutcome(cfg, configPath, "thread", started, false, globals, true)
		errors.FatalError(errors.NewInputError(
			"Missing tweet reference",
			"No tweet ID or URL was provided",
			"Run 'xint thread <tweet-id-or-url>'",
			nil,
		), globals.JSON)
	}

	result := ThreadResult{
		Op:        "thread",
		TweetID:   tweetID,
		Pages:     *pages,
		Result:    fmt.Sprintf("Thread for tweet: %s", tweetID),
		Timestamp: time.Now(),
	}

	recordOutcome(cfg, configPath, "thread", started, true, globals, true)

	if globals.JSON {
		outputJSON(result)
		return
	}

	ui.Header("Thread")
	fmt.Printf("%s  %s\n", ui.Label("Tweet:"), tweetID)
	fmt.Println()
	fmt.Println(result.Result)
}
