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

// Package policy defines the ordered permission levels that gate xint
// operations. A caller holding a mode may invoke any operation whose
// required mode is less than or equal to its own.
package policy

import (
	"fmt"
	"strings"
)

// Mode is an ordered permission level. Higher values grant more.
type Mode int

const (
	// ReadOnly permits lookups and analysis that never touch the
	// caller's account state.
	ReadOnly Mode = iota
	// Engagement additionally permits operations tied to an
	// authenticated account (bookmarks, diffs, publishing).
	Engagement
)

// String returns the canonical snake_case name used on the CLI
// (--policy flag) and in denial payloads.
func (m Mode) String() string {
	switch m {
	case Engagement:
		return "engagement"
	default:
		return "read_only"
	}
}

// Parse maps a user-supplied policy name to a Mode. Matching is
// case-insensitive and tolerates the underscore-free spelling.
func Parse(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "read_only", "readonly", "read-only":
		return ReadOnly, nil
	case "engagement":
		return Engagement, nil
	default:
		return ReadOnly, fmt.Errorf("unknown policy mode %q (expected read_only or engagement)", s)
	}
}

// IsAllowed reports whether a caller holding mode have may invoke an
// operation that requires mode need.
func IsAllowed(have, need Mode) bool {
	return have >= need
}
