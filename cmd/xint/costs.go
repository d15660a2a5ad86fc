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
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	flag "github.com/spf13/pflag"

	"github.com/xintlabs/xint/internal/costs"
	"github.com/xintlabs/xint/internal/errors"
	"github.com/xintlabs/xint/internal/ui"
)

const costsRefreshDebounce = 500 * time.Millisecond

// CostsResult represents the budget state for JSON output.
type CostsResult struct {
	Op           string    `json:"op"`
	LedgerPath   string    `json:"ledger_path"`
	SpentUSD     float64   `json:"spent_usd"`
	LimitUSD     float64   `json:"limit_usd"`
	RemainingUSD float64   `json:"remaining_usd"`
	Allowed      bool      `json:"allowed"`
	Timestamp    time.Time `json:"timestamp"`
}

// runCosts executes the 'costs' CLI command: it prints the accumulated
// spend against the configured budget. With --follow it keeps watching
// the ledger file and re-prints on every change.
func runCosts(args []string, configPath string, globals GlobalFlags) {
	started := time.Now()
	cfg := loadConfigOrDefault(configPath)

	fs := flag.NewFlagSet("costs", flag.ExitOnError)
	follow := fs.Bool("follow", false, "Keep watching the ledger and re-print on change")
	setLimit := fs.Float64("set-limit", -1, "Set the budget limit in USD and exit")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: xint costs [options]

Description:
  Show accumulated spend against the configured budget. The ledger is
  a JSON file written by metered operations.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  xint costs
  xint costs --json | jq '.remaining_usd'
  xint costs --follow
  xint costs --set-limit 50

`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	ledger, err := costsPath(cfg, configPath)
	if err != nil {
		errors.FatalError(err, globals.JSON)
	}

	if *setLimit >= 0 {
		if err := costs.SetLimit(ledger, *setLimit); err != nil {
			recordOutcome(cfg, configPath, "costs", started, false, globals, false)
			errors.FatalError(errors.NewInternalError(
				"Cannot update budget limit",
				fmt.Sprintf("Failed to rewrite %s", ledger),
				"Check file permissions on the data directory",
				err,
			), globals.JSON)
		}
		recordOutcome(cfg, configPath, "costs", started, true, globals, false)
		if !globals.Quiet {
			ui.Success(fmt.Sprintf("Budget limit set to $%.2f", *setLimit))
		}
		return
	}

	printBudget := func() {
		status, err := costs.CheckBudget(ledger)
		if err != nil {
			errors.FatalError(errors.NewConfigError(
				"Cannot read costs ledger",
				fmt.Sprintf("Failed to parse %s", ledger),
				"Delete the ledger to start over, or fix the JSON by hand",
				err,
			), globals.JSON)
		}

		if globals.JSON {
			outputJSON(CostsResult{
				Op:           "costs",
				LedgerPath:   ledger,
				SpentUSD:     status.SpentUSD,
				LimitUSD:     status.LimitUSD,
				RemainingUSD: status.RemainingUSD,
				Allowed:      status.Allowed,
				Timestamp:    time.Now(),
			})
			return
		}

		ui.Header("Costs")
		fmt.Printf("%s  %s\n", ui.Label("Ledger:"), ui.DimText(ledger))
		fmt.Printf("%s   $%.2f\n", ui.Label("Spent:"), status.SpentUSD)
		if status.LimitUSD > 0 {
			fmt.Printf("%s   $%.2f\n", ui.Label("Limit:"), status.LimitUSD)
			fmt.Printf("%s    $%.2f\n", ui.Label("Left:"), status.RemainingUSD)
		} else {
			fmt.Printf("%s   %s\n", ui.Label("Limit:"), ui.DimText("none"))
		}
		if !status.Allowed {
			ui.Warning("Budget exceeded: metered operations are blocked")
		}
	}

	printBudget()
	recordOutcome(cfg, configPath, "costs", started, true, globals, false)

	if !*follow {
		return
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		errors.FatalError(errors.NewInternalError(
			"Cannot watch costs ledger",
			"fsnotify initialization failed",
			"Re-run without --follow",
			err,
		), globals.JSON)
	}
	defer watcher.Close()

	// Watch the directory: the ledger is rewritten atomically on some
	// platforms, which replaces the inode a file watch would follow.
	dir := filepath.Dir(ledger)
	if err := os.MkdirAll(dir, 0o755); err == nil {
		err = watcher.Add(dir)
	}
	if err != nil {
		errors.FatalError(errors.NewInternalError(
			"Cannot watch costs ledger",
			fmt.Sprintf("Failed to watch %s", dir),
			"Re-run without --follow",
			err,
		), globals.JSON)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var debounce *time.Timer
	var timerCh <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Name != ledger {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.NewTimer(costsRefreshDebounce)
			timerCh = debounce.C
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			fmt.Fprintf(os.Stderr, "Warning: ledger watch error: %v\n", err)
		case <-timerCh:
			timerCh = nil
			if !globals.JSON {
				fmt.Println()
			}
			printBudget()
		}
	}
}
