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
	"path/filepath"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/xintlabs/xint/internal/errors"
	"github.com/xintlabs/xint/internal/ui"
)

// CacheResult represents the cache state for JSON output.
type CacheResult struct {
	Op        string    `json:"op"`
	Dir       string    `json:"dir"`
	Files     int       `json:"files"`
	Bytes     int64     `json:"bytes"`
	Cleared   bool      `json:"cleared"`
	Timestamp time.Time `json:"timestamp"`
}

// cacheDir resolves the local response cache directory.
func cacheDir(cfg *Config, configPath string) (string, error) {
	dir, err := projectDataDir(cfg, configPath)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "cache"), nil
}

// runCache executes the 'cache' CLI command: shows the local response
// cache, or clears it with --clear.
func runCache(args []string, configPath string, globals GlobalFlags) {
	started := time.Now()
	cfg := loadConfigOrDefault(configPath)

	fs := flag.NewFlagSet("cache", flag.ExitOnError)
	clear := fs.Bool("clear", false, "Delete all cached responses")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: xint cache [options]

Description:
  Show or clear the local response cache.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  xint cache
  xint cache --clear

`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	dir, err := cacheDir(cfg, configPath)
	if err != nil {
		errors.FatalError(err, globals.JSON)
	}

	result := CacheResult{
		Op:        "cache",
		Dir:       dir,
		Timestamp: time.Now(),
	}

	if *clear {
		if err := os.RemoveAll(dir); err != nil {
			recordOutcome(cfg, configPath, "cache", started, false, globals, false)
			errors.FatalError(errors.NewPermissionError(
				"Cannot clear cache",
				fmt.Sprintf("Failed to remove %s", dir),
				"Check directory permissions",
				err,
			), globals.JSON)
		}
		result.Cleared = true
		recordOutcome(cfg, configPath, "cache", started, true, globals, false)

		if globals.JSON {
			outputJSON(result)
			return
		}
		ui.Success("Cache cleared")
		return
	}

	_ = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil //nolint:nilerr // A vanished entry just drops out of the count
		}
		result.Files++
		result.Bytes += info.Size()
		return nil
	})

	recordOutcome(cfg, configPath, "cache", started, true, globals, false)

	if globals.JSON {
		outputJSON(result)
		return
	}

	ui.Header("Cache")
	fmt.Printf("%s  %s\n", ui.Label("Dir:"), ui.DimText(dir))
	fmt.Printf("%s  %s\n", ui.Label("Files:"), ui.CountText(result.Files))
	fmt.Printf("%s  %d\n", ui.Label("Bytes:"), result.Bytes)
}
