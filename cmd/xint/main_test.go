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
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xintlabs/xint/internal/policy"
)

func TestPrintVersion(t *testing.T) {
	var buf bytes.Buffer
	printVersion(&buf)

	out := buf.String()
	for _, want := range []string{"xint version " + version, "commit: " + commit, "built: " + date} {
		if !strings.Contains(out, want) {
			t.Errorf("version output missing %q:\n%s", want, out)
		}
	}
	if got := len(strings.Split(strings.TrimSpace(out), "\n")); got != 3 {
		t.Errorf("version output lines = %d, want 3", got)
	}
}

func writeProjectConfig(t *testing.T, defaultPolicy string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "project.yaml")
	content := "version: \"1\"\nproject_id: demo\npolicy:\n  default: " + defaultPolicy + "\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestResolvePolicyPrecedence(t *testing.T) {
	path := writeProjectConfig(t, "engagement")

	t.Setenv("XINT_POLICY", "")
	mode, err := resolvePolicy("", path)
	if err != nil {
		t.Fatal(err)
	}
	if mode != policy.Engagement {
		t.Errorf("config default mode = %s, want engagement", mode)
	}

	// Environment beats the file.
	t.Setenv("XINT_POLICY", "read_only")
	mode, err = resolvePolicy("", path)
	if err != nil {
		t.Fatal(err)
	}
	if mode != policy.ReadOnly {
		t.Errorf("env mode = %s, want read_only", mode)
	}

	// Flag beats both.
	mode, err = resolvePolicy("engagement", path)
	if err != nil {
		t.Fatal(err)
	}
	if mode != policy.Engagement {
		t.Errorf("flag mode = %s, want engagement", mode)
	}
}

func TestResolvePolicyFallsBackToReadOnly(t *testing.T) {
	t.Setenv("XINT_POLICY", "")
	t.Setenv("XINT_CONFIG_PATH", "")

	mode, err := resolvePolicy("", filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if mode != policy.ReadOnly {
		t.Errorf("fallback mode = %s, want read_only", mode)
	}
}

func TestResolvePolicyRejectsUnknownMode(t *testing.T) {
	if _, err := resolvePolicy("superuser", ""); err == nil {
		t.Fatal("expected error for unknown policy mode")
	}
}
