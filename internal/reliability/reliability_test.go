// Copyright 2025 XintLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package reliability

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAndSummarize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reliability.jsonl")

	require.NoError(t, RecordCommandResult(path, "mcp:xint_search", true, 120, "read_only", true))
	require.NoError(t, RecordCommandResult(path, "mcp:xint_search", false, 80, "read_only", true))
	require.NoError(t, RecordCommandResult(path, "cli:profile", true, 40, "engagement", false))

	sums, err := Summarize(path)
	require.NoError(t, err)
	require.Len(t, sums, 2)

	search := sums["mcp:xint_search"]
	assert.Equal(t, 2, search.Total)
	assert.Equal(t, 1, search.Failures)
	assert.InDelta(t, 100.0, search.AvgMS, 1e-9)
	assert.InDelta(t, 50.0, search.SuccessPct, 1e-9)

	profile := sums["cli:profile"]
	assert.Equal(t, 1, profile.Total)
	assert.Zero(t, profile.Failures)
}

func TestSummarizeMissingFile(t *testing.T) {
	sums, err := Summarize(filepath.Join(t.TempDir(), "nope.jsonl"))
	require.NoError(t, err)
	assert.Empty(t, sums)
}

func TestSummarizeSkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reliability.jsonl")
	body := `{"op":"cli:search","success":true,"elapsed_ms":10}` + "\n" +
		"garbage line\n" +
		`{"op":"cli:search","success":true,"elapsed_ms":30}` + "\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	sums, err := Summarize(path)
	require.NoError(t, err)
	require.Len(t, sums, 1)
	assert.Equal(t, 2, sums["cli:search"].Total)
}

func TestRecordWithEmptyPathIsNoop(t *testing.T) {
	require.NoError(t, RecordCommandResult("", "cli:search", true, 5, "read_only", false))
}
