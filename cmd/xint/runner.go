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
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
)

// runnerLine is one captured output line from a child process.
type runnerLine struct {
	Text   string
	Stderr bool
}

// runnerResult is the final status of a finished child process.
type runnerResult struct {
	Status  string // "success", "failed (exit N)", "signal"
	Success bool
}

// commandRun is a child-process invocation of this binary. Lines
// arrive on Lines until it closes; Done then yields exactly one
// result. Both channels are drained by the dashboard event loop, so
// no polling is needed while the child runs.
type commandRun struct {
	CommandLine string
	Lines       <-chan runnerLine
	Done        <-chan runnerResult
}

// startCommand re-invokes the current executable as a child process:
//
//	<exe> --policy <mode> <subcommand> [args...]
//
// stdout and stderr are read concurrently line by line into a single
// ordered channel. A spawn failure is returned to the caller, who
// surfaces it as status text; it must never crash the session.
func startCommand(policyMode, subcommand string, args []string) (*commandRun, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("locate executable: %w", err)
	}

	argv := append([]string{"--policy", policyMode, subcommand}, args...)
	cmd := exec.Command(exe, argv...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("spawn %s: %w", subcommand, err)
	}

	lines := make(chan runnerLine, 64)
	done := make(chan runnerResult, 1)

	var wg sync.WaitGroup
	wg.Add(2)
	go readLines(stdout, false, lines, &wg)
	go readLines(stderr, true, lines, &wg)

	go func() {
		wg.Wait()
		close(lines)
		err := cmd.Wait()
		done <- resultFromWait(err)
		close(done)
	}()

	display := "xint --policy " + policyMode + " " + subcommand
	for _, a := range args {
		display += " " + a
	}

	return &commandRun{
		CommandLine: display,
		Lines:       lines,
		Done:        done,
	}, nil
}

func readLines(r io.Reader, isStderr bool, out chan<- runnerLine, wg *sync.WaitGroup) {
	defer wg.Done()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		out <- runnerLine{Text: scanner.Text(), Stderr: isStderr}
	}
}

// resultFromWait converts cmd.Wait's error into display status text.
func resultFromWait(err error) runnerResult {
	if err == nil {
		return runnerResult{Status: "success", Success: true}
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		code := exitErr.ExitCode()
		if code < 0 {
			return runnerResult{Status: "signal"}
		}
		return runnerResult{Status: fmt.Sprintf("failed (exit %d)", code)}
	}
	return runnerResult{Status: "failed (" + err.Error() + ")"}
}
