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

// Package errors provides user-facing errors for the xint CLI.
//
// A UserError carries a short title, a longer detail line, and a
// concrete suggestion for what to do next. Library code returns plain
// wrapped errors; commands convert them to UserErrors at the edge so
// the terminal output stays actionable.
package errors

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Kind classifies a UserError for JSON output and exit handling.
type Kind string

const (
	KindConfig     Kind = "config"
	KindNetwork    Kind = "network"
	KindInput      Kind = "input"
	KindInternal   Kind = "internal"
	KindPermission Kind = "permission"
)

// UserError is an error with enough context to be shown to a human.
type UserError struct {
	Kind       Kind   `json:"kind"`
	Title      string `json:"title"`
	Detail     string `json:"detail,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
	Err        error  `json:"-"`
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Title, e.Err)
	}
	return e.Title
}

func (e *UserError) Unwrap() error { return e.Err }

// Format renders the error for terminal output. With noColor set the
// output is plain text suitable for pipes and logs.
func (e *UserError) Format(noColor bool) string {
	var b strings.Builder

	title := "Error: " + e.Title
	if noColor {
		b.WriteString(title)
	} else {
		b.WriteString(color.New(color.FgRed, color.Bold).Sprint(title))
	}
	b.WriteString("\n")

	if e.Detail != "" {
		b.WriteString("  " + e.Detail + "\n")
	}
	if e.Err != nil {
		cause := fmt.Sprintf("  Cause: %v", e.Err)
		if noColor {
			b.WriteString(cause)
		} else {
			b.WriteString(color.New(color.Faint).Sprint(cause))
		}
		b.WriteString("\n")
	}
	if e.Suggestion != "" {
		hint := "  Hint: " + e.Suggestion
		if noColor {
			b.WriteString(hint)
		} else {
			b.WriteString(color.New(color.FgYellow).Sprint(hint))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func newUserError(kind Kind, title, detail, suggestion string, err error) *UserError {
	return &UserError{Kind: kind, Title: title, Detail: detail, Suggestion: suggestion, Err: err}
}

// NewConfigError reports a problem with configuration files or values.
func NewConfigError(title, detail, suggestion string, err error) *UserError {
	return newUserError(KindConfig, title, detail, suggestion, err)
}

// NewNetworkError reports a failure reaching a remote service.
func NewNetworkError(title, detail, suggestion string, err error) *UserError {
	return newUserError(KindNetwork, title, detail, suggestion, err)
}

// NewInputError reports invalid or missing user input.
func NewInputError(title, detail, suggestion string, err error) *UserError {
	return newUserError(KindInput, title, detail, suggestion, err)
}

// NewInternalError reports a bug or unexpected state.
func NewInternalError(title, detail, suggestion string, err error) *UserError {
	return newUserError(KindInternal, title, detail, suggestion, err)
}

// NewPermissionError reports a policy or filesystem permission denial.
func NewPermissionError(title, detail, suggestion string, err error) *UserError {
	return newUserError(KindPermission, title, detail, suggestion, err)
}

// FatalError prints err and exits with status 1. With jsonMode the
// error is emitted as a JSON object on stdout for machine consumers;
// otherwise it is formatted for the terminal on stderr.
func FatalError(err error, jsonMode bool) {
	ue, ok := err.(*UserError)
	if !ok {
		ue = NewInternalError("Unexpected error", "", "", err)
	}

	if jsonMode {
		payload := struct {
			Error *UserError `json:"error"`
			Cause string     `json:"cause,omitempty"`
		}{Error: ue}
		if ue.Err != nil {
			payload.Cause = ue.Err.Error()
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(payload)
	} else {
		fmt.Fprint(os.Stderr, ue.Format(color.NoColor))
	}
	os.Exit(1)
}
