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

// ReportResult represents a report invocation for JSON output.
type ReportResult struct {
	Op        string    `json:"op"`
	Topic     string    `json:"topic"`
	Sentiment bool      `json:"sentiment"`
	Model     string    `json:"model"`
	Pages     int       `json:"pages"`
	Result    string    `json:"result"`
	Timestamp time.Time `json:"timestamp"`
}

// runReport executes the 'report' CLI command.
func runReport(args []string, configPath string, globals GlobalFlags) {
	started := time.Now()
	cfg := loadConfigOrDefault(configPath)

	fs := flag.NewFlagSet("report", flag.ExitOnError)
	sentiment := fs.Bool("sentiment", false, "Include sentiment analysis")
	model := fs.String("model", "grok-3-mini", "Grok model")
	pages := fs.Int("pages", 2, "Search pages")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: xint report [options] <topic>

Description:
  Generate an AI-powered intelligence report on a topic. Requires
  XAI_API_KEY for the analysis backend.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  xint report "grid storage economics"
  xint report "election coverage" --sentiment --model grok-3

`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	topic := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if topic == "" {
		recordOutcome(cfg, configPath, "report", started, false, globals, true)
		errors.FatalError(errors.NewInputError(
			"Missing report topic",
			"No topic was provided",
			"Run 'xint report <topic>'",
			nil,
		), globals.JSON)
	}

	result := ReportResult{
		Op:        "report",
		Topic:     topic,
		Sentiment: *sentiment,
		Model:     *model,
		Pages:     *pages,
		Result:    fmt.Sprintf("Report on: %s (requires XAI_API_KEY)", topic),
		Timestamp: time.Now(),
	}

	recordOutcome(cfg, configPath, "report", started, true, globals, true)

	if globals.JSON {
		outputJSON(result)
		return
	}

	ui.Header("Report")
	fmt.Printf("%s  %s\n", ui.Label("Topic:"), topic)
	fmt.Printf("%s  %s\n", ui.Label("Model:"), *model)
	fmt.Println()
	fmt.Println(result.Result)
}
