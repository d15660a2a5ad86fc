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

import "strings"

// MenuOption is one entry of the dashboard command menu. The table
// below is the single source of truth consumed by the renderer, the
// strict choice resolver, and the palette scorer.
type MenuOption struct {
	Key     string
	Label   string
	Aliases []string
	Hint    string
}

var menuOptions = []MenuOption{
	{
		Key:     "1",
		Label:   "Search",
		Aliases: []string{"search", "s", "find", "query"},
		Hint:    "Search recent posts for a query",
	},
	{
		Key:     "2",
		Label:   "Trends",
		Aliases: []string{"trends", "t", "trending"},
		Hint:    "Show trending topics for a location",
	},
	{
		Key:     "3",
		Label:   "Profile",
		Aliases: []string{"profile", "p", "user", "u"},
		Hint:    "Fetch a profile summary for a username",
	},
	{
		Key:     "4",
		Label:   "Thread",
		Aliases: []string{"thread", "th", "conversation"},
		Hint:    "Expand a tweet into its full thread",
	},
	{
		Key:     "5",
		Label:   "Article",
		Aliases: []string{"article", "a", "url", "link"},
		Hint:    "Extract and summarize a linked article",
	},
	{
		Key:     "6",
		Label:   "Help",
		Aliases: []string{"help", "h", "?"},
		Hint:    "Show key bindings and usage",
	},
	{
		Key:     "0",
		Label:   "Exit",
		Aliases: []string{"exit", "quit", "q", "x"},
		Hint:    "Leave the dashboard",
	},
}

// helpLines is the static content of the Help tab.
var helpLines = []string{
	"Keys:",
	"  Up/Down      move selection",
	"  Enter        run the selected command",
	"  1-6, 0       jump straight to a command",
	"  Tab          cycle tabs (Commands / Output / Help)",
	"  /            open the command palette",
	"  f            filter output lines",
	"  PgUp/PgDn    scroll output",
	"  q, Esc       quit",
	"",
	"Every command runs as a child process of this binary with the",
	"current --policy mode. Output is captured into the Output tab",
	"(most recent 1200 lines).",
	"",
	"Theme: set XINT_TUI_THEME to classic, minimal, or neon.",
}

// resolveChoice maps free-text input to a menu option key. Matching is
// exact (after trimming and lowercasing) against the key and each
// alias. Empty or unknown input yields ok == false.
func resolveChoice(input string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return "", false
	}
	for _, opt := range menuOptions {
		if normalized == opt.Key {
			return opt.Key, true
		}
		for _, alias := range opt.Aliases {
			if normalized == alias {
				return opt.Key, true
			}
		}
	}
	return "", false
}

// Palette score weights, strongest match first.
const (
	scoreExactKey       = 100
	scoreExactLabel     = 90
	scoreExactAlias     = 80
	scoreLabelPrefix    = 70
	scoreAliasPrefix    = 60
	scoreLabelSubstring = 40
	scoreHintSubstring  = 20
)

// scoreOption ranks how well a palette query matches one option.
// Zero means no match at all.
func scoreOption(query string, opt MenuOption) int {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return 0
	}
	label := strings.ToLower(opt.Label)

	if q == opt.Key {
		return scoreExactKey
	}
	if q == label {
		return scoreExactLabel
	}
	for _, alias := range opt.Aliases {
		if q == alias {
			return scoreExactAlias
		}
	}
	if strings.HasPrefix(label, q) {
		return scoreLabelPrefix
	}
	for _, alias := range opt.Aliases {
		if strings.HasPrefix(alias, q) {
			return scoreAliasPrefix
		}
	}
	if strings.Contains(label, q) {
		return scoreLabelSubstring
	}
	if strings.Contains(strings.ToLower(opt.Hint), q) {
		return scoreHintSubstring
	}
	return 0
}

// matchPalette returns the index of the best-scoring option for a
// palette query. Ties resolve to the first-declared option; an
// all-zero scoreboard yields ok == false.
func matchPalette(query string) (int, bool) {
	bestIdx := -1
	bestScore := 0
	for i, opt := range menuOptions {
		if s := scoreOption(query, opt); s > bestScore {
			bestScore = s
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return 0, false
	}
	return bestIdx, true
}

// optionByKey returns the menu option with the given key.
func optionByKey(key string) (MenuOption, bool) {
	for _, opt := range menuOptions {
		if opt.Key == key {
			return opt, true
		}
	}
	return MenuOption{}, false
}

// clipText truncates s to max runes, appending an ellipsis when
// something was cut.
func clipText(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}
