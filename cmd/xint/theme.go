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

import "github.com/charmbracelet/lipgloss"

// tuiTheme is one named style set for the dashboard.
type tuiTheme struct {
	name string

	title        lipgloss.Style
	tabActive    lipgloss.Style
	tabInactive  lipgloss.Style
	pane         lipgloss.Style
	menuItem     lipgloss.Style
	menuSelected lipgloss.Style
	hint         lipgloss.Style
	status       lipgloss.Style
	spinner      lipgloss.Style
}

// themeByName selects a theme; unknown names fall back to classic.
func themeByName(name string) tuiTheme {
	switch name {
	case "minimal":
		return minimalTheme()
	case "neon":
		return neonTheme()
	default:
		return classicTheme()
	}
}

func classicTheme() tuiTheme {
	cyan := lipgloss.Color("6")
	white := lipgloss.Color("15")
	grey := lipgloss.Color("8")

	return tuiTheme{
		name:  "classic",
		title: lipgloss.NewStyle().Foreground(cyan).Bold(true),
		tabActive: lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(cyan).
			Bold(true),
		tabInactive: lipgloss.NewStyle().Foreground(grey),
		pane: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(cyan).
			Padding(0, 1),
		menuItem:     lipgloss.NewStyle().Foreground(white),
		menuSelected: lipgloss.NewStyle().Foreground(cyan).Bold(true),
		hint:         lipgloss.NewStyle().Foreground(grey),
		status:       lipgloss.NewStyle().Foreground(cyan),
		spinner:      lipgloss.NewStyle().Foreground(cyan),
	}
}

func minimalTheme() tuiTheme {
	plain := lipgloss.NewStyle()
	return tuiTheme{
		name:         "minimal",
		title:        plain.Bold(true),
		tabActive:    plain.Reverse(true),
		tabInactive:  plain,
		pane:         lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).Padding(0, 1),
		menuItem:     plain,
		menuSelected: plain.Bold(true),
		hint:         lipgloss.NewStyle().Faint(true),
		status:       plain,
		spinner:      plain,
	}
}

func neonTheme() tuiTheme {
	pink := lipgloss.Color("#ff71ce")
	blue := lipgloss.Color("#01cdfe")
	mint := lipgloss.Color("#05ffa1")
	muted := lipgloss.Color("#9ca3d8")

	return tuiTheme{
		name:  "neon",
		title: lipgloss.NewStyle().Foreground(pink).Bold(true),
		tabActive: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#22062f")).
			Background(pink).
			Bold(true),
		tabInactive: lipgloss.NewStyle().Foreground(muted),
		pane: lipgloss.NewStyle().
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(blue).
			Padding(0, 1),
		menuItem:     lipgloss.NewStyle().Foreground(blue),
		menuSelected: lipgloss.NewStyle().Foreground(mint).Bold(true),
		hint:         lipgloss.NewStyle().Foreground(muted),
		status:       lipgloss.NewStyle().Foreground(mint),
		spinner:      lipgloss.NewStyle().Foreground(pink),
	}
}
