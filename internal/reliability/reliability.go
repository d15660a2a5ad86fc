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

// Package reliability records the outcome of every xint operation,
// CLI subcommand and MCP tool call alike, in an append-only JSONL log.
// The same events feed Prometheus counters so a long-running MCP
// server can expose them over /metrics.
package reliability

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	commandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "xint_commands_total",
		Help: "Operations executed, labelled by operation name and outcome.",
	}, []string{"op", "outcome"})

	commandDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "xint_command_duration_ms",
		Help:    "Operation latency in milliseconds.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	})
)

// Record is one logged operation outcome.
type Record struct {
	Timestamp     time.Time `json:"ts"`
	Op            string    `json:"op"`
	Success       bool      `json:"success"`
	ElapsedMS     int64     `json:"elapsed_ms"`
	PolicyMode    string    `json:"policy_mode"`
	BudgetGuarded bool      `json:"budget_guarded"`
}

// Summary aggregates the log for one operation name.
type Summary struct {
	Op         string  `json:"op"`
	Total      int     `json:"total"`
	Failures   int     `json:"failures"`
	AvgMS      float64 `json:"avg_ms"`
	SuccessPct float64 `json:"success_pct"`
}

// RecordCommandResult appends one outcome to the JSONL log at path and
// bumps the in-process metrics. Logging failures are returned so the
// caller can report them on stderr; they must never be fatal.
func RecordCommandResult(path, op string, success bool, elapsedMS int64, policyMode string, budgetGuarded bool) error {
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	commandsTotal.WithLabelValues(op, outcome).Inc()
	commandDuration.Observe(float64(elapsedMS))

	if path == "" {
		return nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create reliability dir: %w", err)
		}
	}

	rec := Record{
		Timestamp:     time.Now().UTC(),
		Op:            op,
		Success:       success,
		ElapsedMS:     elapsedMS,
		PolicyMode:    policyMode,
		BudgetGuarded: budgetGuarded,
	}
	line, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open reliability log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("append reliability log: %w", err)
	}
	return nil
}

// Summarize reads the JSONL log and aggregates outcomes per operation.
// Malformed lines are skipped; a missing file yields an empty summary.
func Summarize(path string) (map[string]Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]Summary{}, nil
		}
		return nil, err
	}
	defer f.Close()

	type agg struct {
		total, failures int
		elapsed         int64
	}
	byOp := map[string]*agg{}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		var rec Record
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			continue
		}
		a := byOp[rec.Op]
		if a == nil {
			a = &agg{}
			byOp[rec.Op] = a
		}
		a.total++
		if !rec.Success {
			a.failures++
		}
		a.elapsed += rec.ElapsedMS
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read reliability log: %w", err)
	}

	out := make(map[string]Summary, len(byOp))
	for op, a := range byOp {
		s := Summary{Op: op, Total: a.total, Failures: a.failures}
		if a.total > 0 {
			s.AvgMS = float64(a.elapsed) / float64(a.total)
			s.SuccessPct = 100 * float64(a.total-a.failures) / float64(a.total)
		}
		out[op] = s
	}
	return out, nil
}
