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

// Package ui holds shared terminal output helpers for xint commands.
package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold)
	subColor     = color.New(color.FgCyan)
	labelColor   = color.New(color.Bold)
	dimColor     = color.New(color.Faint)
	countColor   = color.New(color.FgGreen, color.Bold)
	infoColor    = color.New(color.FgBlue)
	warnColor    = color.New(color.FgYellow, color.Bold)
	successColor = color.New(color.FgGreen)
)

// InitColors disables color output when requested or when stdout is
// not a terminal. Call once from main before any output.
func InitColors(noColor bool) {
	if noColor {
		color.NoColor = true
		return
	}
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}
}

// Header prints a top-level section heading.
func Header(text string) {
	headerColor.Println(text)
	fmt.Println()
}

// SubHeader prints a secondary heading.
func SubHeader(text string) {
	subColor.Println(text)
}

// Label returns a bolded field label.
func Label(text string) string {
	return labelColor.Sprint(text)
}

// DimText returns de-emphasized text for paths and URLs.
func DimText(text string) string {
	return dimColor.Sprint(text)
}

// CountText returns a highlighted numeric value.
func CountText(n int) string {
	return countColor.Sprintf("%d", n)
}

// Info prints an informational line.
func Info(text string) {
	infoColor.Println(text)
}

// Warning prints a warning line to stderr.
func Warning(text string) {
	warnColor.Fprintln(os.Stderr, text)
}

// Warningf prints a formatted warning line to stderr.
func Warningf(format string, args ...any) {
	warnColor.Fprintf(os.Stderr, format+"\n", args...)
}

// Success prints a confirmation line.
func Success(text string) {
	successColor.Println(text)
}
