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

// Package main implements the xint CLI.
//
// xint is an intelligence-gathering tool for X/Twitter: searches,
// profiles, threads, trends, linked articles, and remote "packages" of
// collected data that can be queried for cited claims. It ships two
// front ends on top of the same subcommands: an interactive terminal
// dashboard and a Model Context Protocol (MCP) server for AI agents.
//
// # Quick Start
//
// Create a project configuration:
//
//	cd /path/to/your/project
//	xint config init
//
// Search recent posts:
//
//	xint search --query "solar flare" --limit 10
//
// Start the interactive dashboard:
//
//	xint tui
//
// Start as an MCP server for AI assistants:
//
//	xint --mcp
//
// # Commands
//
//	search        Search recent posts for a query
//	trends        Show trending topics for a location
//	profile       Fetch a profile summary
//	thread        Expand a tweet into its full thread
//	article       Extract and summarize a linked article
//	report        Generate an AI analysis report on a topic
//	watch         Poll a query for new matches
//	diff          Track follower changes (engagement)
//	bookmarks     List account bookmarks (engagement)
//	collections   List or search saved collections
//	costs         Show accumulated spend against the budget
//	cache         Show or clear the local response cache
//	package       Manage remote intelligence packages
//	tui           Start the interactive dashboard
//	config        Show or create configuration
//	version       Show version information
//
// # Policy Modes
//
// Every invocation runs under a policy mode: read_only (default) or
// engagement. Commands that touch account state (bookmarks, diff,
// package publish) require engagement:
//
//	xint --policy engagement bookmarks
//
// The mode resolves from the --policy flag, then XINT_POLICY, then
// policy.default in project.yaml, then read_only.
//
// # MCP Server Mode
//
// With --mcp, xint speaks JSON-RPC 2.0 over stdio and exposes 23 tools
// (xint_search, xint_profile, xint_thread, xint_trends, xint_article,
// xint_report, xint_package_create, xint_package_query, and more).
// Policy and budget gates apply to every tools/call; denials come back
// as structured JSON payloads in the tool result.
//
// Configure xint in your MCP client:
//
//	{
//	  "mcpServers": {
//	    "xint": {
//	      "command": "xint",
//	      "args": ["--mcp"],
//	      "env": {
//	        "XINT_PACKAGE_API_BASE_URL": "http://localhost:8080/v1"
//	      }
//	    }
//	  }
//	}
//
// # Configuration
//
// xint is configured through .xint/project.yaml (discovered from the
// working directory upward) and environment variables:
//
//	XINT_CONFIG_PATH           Explicit path to project.yaml
//	XINT_PROJECT_ID            Project identifier
//	XINT_DATA_DIR              Data directory (default: ~/.xint/data)
//	XINT_PACKAGE_API_BASE_URL  Package API root URL
//	XINT_PACKAGE_API_KEY       Package API bearer token
//	XINT_BUDGET_LIMIT_USD      Spend limit for metered operations
//	XINT_POLICY                Default policy mode
//	XINT_TUI_THEME             Dashboard theme (classic|minimal|neon)
//
// # Data Storage
//
// Per-project data lives under <data_dir>/<project_id>/: the costs
// ledger (costs.json), the reliability log (reliability.jsonl), and
// the response cache.
//
// See xint --help for complete usage information.
package main
