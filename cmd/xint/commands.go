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
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/xintlabs/xint/internal/reliability"
)

// outputJSON writes v as indented JSON to stdout.
//
// Used by every subcommand when the --json flag is provided.
func outputJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// recordOutcome logs one subcommand result to the reliability log,
// keyed as cli:<op>. Recording failures are warnings, never fatal.
func recordOutcome(cfg *Config, configPath, op string, started time.Time, success bool, globals GlobalFlags, budgetGuarded bool) {
	path, err := reliabilityPath(cfg, configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot resolve reliability log: %v\n", err)
		return
	}
	elapsed := time.Since(started).Milliseconds()
	if err := reliability.RecordCommandResult(path, "cli:"+op, success, elapsed, globals.Policy.String(), budgetGuarded); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: reliability record failed: %v\n", err)
	}
}
