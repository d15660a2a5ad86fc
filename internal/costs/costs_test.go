// Copyright 2025 XintLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package costs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckBudgetMissingFile(t *testing.T) {
	status, err := CheckBudget(filepath.Join(t.TempDir(), "costs.json"))
	require.NoError(t, err)
	assert.True(t, status.Allowed)
	assert.Zero(t, status.SpentUSD)
}

func TestCheckBudgetUnderLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "costs.json")
	require.NoError(t, SetLimit(path, 10))
	require.NoError(t, RecordSpend(path, "search", 2.5))
	require.NoError(t, RecordSpend(path, "report", 1.5))

	status, err := CheckBudget(path)
	require.NoError(t, err)
	assert.True(t, status.Allowed)
	assert.InDelta(t, 4.0, status.SpentUSD, 1e-9)
	assert.InDelta(t, 10.0, status.LimitUSD, 1e-9)
	assert.InDelta(t, 6.0, status.RemainingUSD, 1e-9)
}

func TestCheckBudgetOverLimitClampsRemaining(t *testing.T) {
	path := filepath.Join(t.TempDir(), "costs.json")
	require.NoError(t, SetLimit(path, 3))
	require.NoError(t, RecordSpend(path, "report", 5))

	status, err := CheckBudget(path)
	require.NoError(t, err)
	assert.False(t, status.Allowed)
	assert.InDelta(t, 5.0, status.SpentUSD, 1e-9)
	assert.Zero(t, status.RemainingUSD, "remaining must never go negative")
}

func TestCheckBudgetNoLimitConfigured(t *testing.T) {
	path := filepath.Join(t.TempDir(), "costs.json")
	require.NoError(t, RecordSpend(path, "search", 100))

	status, err := CheckBudget(path)
	require.NoError(t, err)
	assert.True(t, status.Allowed)
	assert.InDelta(t, 100.0, status.SpentUSD, 1e-9)
}

func TestCheckBudgetCorruptLedger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "costs.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := CheckBudget(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse costs ledger")
}
