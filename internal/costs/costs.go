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

// Package costs tracks accumulated spend for metered external calls.
//
// The ledger is a single JSON file. Metered operations append entries;
// gatekeepers read the whole file and compare the running total against
// the configured limit. A missing ledger means nothing has been spent.
package costs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Entry is one metered spend event.
type Entry struct {
	Timestamp time.Time `json:"ts"`
	Op        string    `json:"op"`
	AmountUSD float64   `json:"amount_usd"`
}

// Ledger is the on-disk format of the costs file.
type Ledger struct {
	LimitUSD float64 `json:"limit_usd"`
	Entries  []Entry `json:"entries"`
}

// BudgetStatus is the result of a budget check. RemainingUSD is
// clamped at zero so callers can surface it directly to users.
type BudgetStatus struct {
	Allowed      bool    `json:"allowed"`
	SpentUSD     float64 `json:"spent_usd"`
	LimitUSD     float64 `json:"limit_usd"`
	RemainingUSD float64 `json:"remaining_usd"`
}

// CheckBudget reads the ledger at path and reports whether further
// metered spend is allowed. A missing file means zero spend and
// allowed. A limit of zero or less means no limit is configured.
func CheckBudget(path string) (BudgetStatus, error) {
	ledger, err := loadLedger(path)
	if err != nil {
		if os.IsNotExist(err) {
			return BudgetStatus{Allowed: true}, nil
		}
		return BudgetStatus{}, err
	}

	spent := 0.0
	for _, e := range ledger.Entries {
		spent += e.AmountUSD
	}

	status := BudgetStatus{
		SpentUSD: spent,
		LimitUSD: ledger.LimitUSD,
	}
	if ledger.LimitUSD <= 0 {
		status.Allowed = true
		return status, nil
	}

	status.Allowed = spent < ledger.LimitUSD
	if remaining := ledger.LimitUSD - spent; remaining > 0 {
		status.RemainingUSD = remaining
	}
	return status, nil
}

// RecordSpend appends a spend entry to the ledger at path, creating
// the ledger (with no limit) if it does not exist yet.
func RecordSpend(path, op string, amountUSD float64) error {
	ledger, err := loadLedger(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		ledger = &Ledger{}
	}

	ledger.Entries = append(ledger.Entries, Entry{
		Timestamp: time.Now().UTC(),
		Op:        op,
		AmountUSD: amountUSD,
	})
	return saveLedger(path, ledger)
}

// SetLimit rewrites the ledger's spend limit, preserving entries.
func SetLimit(path string, limitUSD float64) error {
	ledger, err := loadLedger(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		ledger = &Ledger{}
	}
	ledger.LimitUSD = limitUSD
	return saveLedger(path, ledger)
}

func loadLedger(path string) (*Ledger, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var ledger Ledger
	if err := json.Unmarshal(data, &ledger); err != nil {
		return nil, fmt.Errorf("parse costs ledger %s: %w", path, err)
	}
	return &ledger, nil
}

func saveLedger(path string, ledger *Ledger) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create costs dir: %w", err)
		}
	}
	data, err := json.MarshalIndent(ledger, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
