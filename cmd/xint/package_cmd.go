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
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/xintlabs/xint/internal/errors"
	"github.com/xintlabs/xint/internal/packageapi"
	"github.com/xintlabs/xint/internal/policy"
)

const packageUsage = `Usage: xint package <verb> [options]

Description:
  Manage remote intelligence packages: bounded, refreshable snapshots
  of collected X/Twitter data that can be queried for cited claims.

Verbs:
  create    Create a package ingest job
  status    Show package metadata and freshness
  query     Ask a question over one or more packages
  refresh   Trigger re-collection and a new snapshot
  search    Search the package catalog
  publish   Publish a snapshot to the shared catalog (engagement)

Examples:
  xint package create --name "storm watch" --topic "hurricane" --sources x_api_v2
  xint package status pkg_abc123
  xint package query --ids pkg-1,pkg-2 --question "what changed?"
  xint package refresh pkg_abc123 --reason manual
  xint package search "hurricane"
  xint --policy engagement package publish pkg_abc123 --snapshot 3

For verb-specific options: xint package <verb> --help

`

// runPackage dispatches the 'package' CLI verbs. Every verb forwards
// to the remote Package API and relays the JSON response verbatim.
func runPackage(args []string, configPath string, globals GlobalFlags) {
	started := time.Now()
	cfg := loadConfigOrDefault(configPath)

	if len(args) == 0 {
		fmt.Fprint(os.Stderr, packageUsage)
		os.Exit(1)
	}
	verb := args[0]
	verbArgs := args[1:]

	if verb == "publish" && !policy.IsAllowed(globals.Policy, policy.Engagement) {
		recordOutcome(cfg, configPath, "package", started, false, globals, true)
		errors.FatalError(errors.NewPermissionError(
			"Command 'package publish' requires engagement policy",
			fmt.Sprintf("Current policy is %s", globals.Policy),
			"Re-run with --policy engagement",
			nil,
		), globals.JSON)
	}

	client, err := packageapi.NewFromEnv(cfg.PackageAPI.BaseURL, cfg.PackageAPI.APIKey)
	if err != nil {
		recordOutcome(cfg, configPath, "package", started, false, globals, true)
		errors.FatalError(errors.NewConfigError(
			"Package API not configured",
			err.Error(),
			"Set XINT_PACKAGE_API_BASE_URL or add package_api.base_url to .xint/project.yaml",
			nil,
		), globals.JSON)
	}

	ctx := context.Background()
	var body string

	switch verb {
	case "create":
		body, err = packageCreate(ctx, client, verbArgs)
	case "status", "get":
		body, err = packageStatus(ctx, client, verbArgs)
	case "query":
		body, err = packageQuery(ctx, client, verbArgs)
	case "refresh":
		body, err = packageRefresh(ctx, client, verbArgs)
	case "search":
		body, err = packageSearch(ctx, client, verbArgs)
	case "publish":
		body, err = packagePublish(ctx, client, verbArgs)
	default:
		fmt.Fprintf(os.Stderr, "Unknown package verb: %s\n\n", verb)
		fmt.Fprint(os.Stderr, packageUsage)
		os.Exit(1)
	}

	if err != nil {
		recordOutcome(cfg, configPath, "package", started, false, globals, true)
		errors.FatalError(errors.NewNetworkError(
			fmt.Sprintf("Package %s failed", verb),
			err.Error(),
			"Check the Package API server and your network connection",
			nil,
		), globals.JSON)
	}

	recordOutcome(cfg, configPath, "package", started, true, globals, true)
	fmt.Println(body)
}

func packageCreate(ctx context.Context, client *packageapi.Client, args []string) (string, error) {
	fs := flag.NewFlagSet("package create", flag.ExitOnError)
	name := fs.String("name", "", "Human-readable package name")
	topic := fs.String("topic", "", "Topic query used for ingest and refresh")
	sources := fs.StringSlice("sources", []string{"x_api_v2"}, "Data sources: x_api_v2, xai_search, web_article")
	from := fs.String("from", "", "Time window start (RFC 3339, default: 24h ago)")
	to := fs.String("to", "", "Time window end (RFC 3339, default: now)")
	pkgPolicy := fs.String("package-policy", "private", "Visibility: private or shared_candidate")
	profile := fs.String("profile", "summary", "Analysis profile: summary, analyst, forensic")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *name == "" || *topic == "" {
		return "", fmt.Errorf("both --name and --topic are required")
	}

	now := time.Now().UTC()
	if *from == "" {
		*from = now.Add(-24 * time.Hour).Format(time.RFC3339)
	}
	if *to == "" {
		*to = now.Format(time.RFC3339)
	}

	return client.CreatePackage(ctx, map[string]any{
		"name":             *name,
		"topic_query":      *topic,
		"sources":          *sources,
		"time_window":      map[string]any{"from": *from, "to": *to},
		"policy":           *pkgPolicy,
		"analysis_profile": *profile,
	})
}

func packageStatus(ctx context.Context, client *packageapi.Client, args []string) (string, error) {
	fs := flag.NewFlagSet("package status", flag.ExitOnError)
	snapshot := fs.Int("snapshot", 0, "Snapshot version (default: latest)")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	id := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if id == "" {
		return "", fmt.Errorf("package ID is required")
	}
	return client.GetPackage(ctx, id, *snapshot)
}

func packageQuery(ctx context.Context, client *packageapi.Client, args []string) (string, error) {
	fs := flag.NewFlagSet("package query", flag.ExitOnError)
	question := fs.String("question", "", "Question to ask over package memory")
	ids := fs.StringSlice("ids", nil, "Package IDs in retrieval scope")
	maxClaims := fs.Int("max-claims", 10, "Maximum number of claims")
	noCitations := fs.Bool("no-citations", false, "Do not require citations")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	q := *question
	if q == "" {
		q = strings.TrimSpace(strings.Join(fs.Args(), " "))
	}
	if q == "" {
		return "", fmt.Errorf("a question is required (--question or positional)")
	}
	if len(*ids) == 0 {
		return "", fmt.Errorf("at least one package ID is required (--ids)")
	}

	return client.Query(ctx, map[string]any{
		"query":             q,
		"package_ids":       *ids,
		"max_claims":        *maxClaims,
		"require_citations": !*noCitations,
	})
}

func packageRefresh(ctx context.Context, client *packageapi.Client, args []string) (string, error) {
	fs := flag.NewFlagSet("package refresh", flag.ExitOnError)
	reason := fs.String("reason", "manual", "Refresh reason: ttl, manual, event")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	id := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if id == "" {
		return "", fmt.Errorf("package ID is required")
	}
	return client.Refresh(ctx, id, map[string]any{"reason": *reason})
}

func packageSearch(ctx context.Context, client *packageapi.Client, args []string) (string, error) {
	fs := flag.NewFlagSet("package search", flag.ExitOnError)
	limit := fs.Int("limit", 20, "Max packages to return")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	q := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if q == "" {
		return "", fmt.Errorf("a search query is required")
	}
	return client.Search(ctx, q, *limit)
}

func packagePublish(ctx context.Context, client *packageapi.Client, args []string) (string, error) {
	fs := flag.NewFlagSet("package publish", flag.ExitOnError)
	snapshot := fs.Int("snapshot", 0, "Snapshot version to publish")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	id := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if id == "" {
		return "", fmt.Errorf("package ID is required")
	}
	if *snapshot <= 0 {
		return "", fmt.Errorf("--snapshot must name the version to publish")
	}
	return client.Publish(ctx, id, map[string]any{"snapshot_version": *snapshot})
}
