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
	"time"
)

// getTools returns the static catalog of MCP tools exposed by xint.
//
// The catalog is the single source of truth for tool names, descriptions,
// and input schemas. tools/list serves it verbatim.
func getTools() []mcpTool {
	return []mcpTool{
		{
			Name:        "xint_search",
			Description: "Search recent tweets on X/Twitter with advanced filters",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"query": map[string]any{"type": "string", "description": "Search query"},
					"limit": map[string]any{"type": "number", "description": "Max results (default: 15)"},
					"since": map[string]any{"type": "string", "description": "Time filter: 1h, 1d, 7d"},
					"sort":  map[string]any{"type": "string", "enum": []string{"likes", "retweets", "recent"}, "description": "Sort order"},
				},
				"required": []string{"query"},
			},
		},
		{
			Name:        "xint_profile",
			Description: "Get recent tweets from a specific X/Twitter user",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"username": map[string]any{"type": "string", "description": "Twitter username (without @)"},
					"count":    map[string]any{"type": "number", "description": "Number of tweets (default: 20)"},
				},
				"required": []string{"username"},
			},
		},
		{
			Name:        "xint_thread",
			Description: "Get full conversation thread from a tweet",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"tweet_id": map[string]any{"type": "string", "description": "Tweet ID or URL"},
					"pages":    map[string]any{"type": "number", "description": "Pages to fetch (default: 2)"},
				},
				"required": []string{"tweet_id"},
			},
		},
		{
			Name:        "xint_tweet",
			Description: "Get a single tweet by ID",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"tweet_id": map[string]any{"type": "string", "description": "Tweet ID or URL"},
				},
				"required": []string{"tweet_id"},
			},
		},
		{
			Name:        "xint_trends",
			Description: "Get trending topics on X",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"location": map[string]any{"type": "string", "description": "Location or WOEID (default: worldwide)"},
					"limit":    map[string]any{"type": "number", "description": "Number of trends (default: 20)"},
				},
			},
		},
		{
			Name:        "xint_xsearch",
			Description: "Search X using xAI's Grok x-search for AI-powered results",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"query": map[string]any{"type": "string", "description": "Search query"},
					"limit": map[string]any{"type": "number", "description": "Max results (default: 10)"},
				},
				"required": []string{"query"},
			},
		},
		{
			Name:        "xint_collections_list",
			Description: "List all xAI Collections knowledge base collections",
			InputSchema: map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			},
		},
		{
			Name:        "xint_analyze",
			Description: "Analyze tweets or answer questions using Grok AI",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"query": map[string]any{"type": "string", "description": "Question or analysis request"},
					"model": map[string]any{"type": "string", "description": "Grok model (grok-3-mini, grok-3)"},
				},
				"required": []string{"query"},
			},
		},
		{
			Name:        "xint_article",
			Description: "Fetch and extract content from a URL article. Also supports X tweet URLs - extracts linked article automatically. Use ai_prompt to analyze with Grok.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"url":       map[string]any{"type": "string", "description": "Article URL or X tweet URL to fetch"},
					"full":      map[string]any{"type": "boolean", "description": "Fetch full content (default: false)"},
					"ai_prompt": map[string]any{"type": "string", "description": "Analyze article with Grok AI - ask a question about the content"},
				},
				"required": []string{"url"},
			},
		},
		{
			Name:        "xint_collections_search",
			Description: "Search within an xAI Collections knowledge base",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"collection_id": map[string]any{"type": "string", "description": "Collection ID to search in"},
					"query":         map[string]any{"type": "string", "description": "Search query"},
					"limit":         map[string]any{"type": "number", "description": "Max results (default: 5)"},
				},
				"required": []string{"collection_id", "query"},
			},
		},
		{
			Name:        "xint_bookmarks",
			Description: "Get your bookmarked tweets (requires OAuth)",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"limit": map[string]any{"type": "number", "description": "Max bookmarks (default: 20)"},
					"since": map[string]any{"type": "string", "description": "Filter by recency: 1h, 1d, 7d"},
				},
			},
		},
		{
			Name:        "xint_package_create",
			Description: "Create an agent memory package ingest job (v1 draft contract)",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name":        map[string]any{"type": "string", "description": "Human-readable package name"},
					"topic_query": map[string]any{"type": "string", "description": "Topic query used for ingest and refresh"},
					"sources": map[string]any{
						"type":        "array",
						"items":       map[string]any{"type": "string", "enum": []string{"x_api_v2", "xai_search", "web_article"}},
						"description": "Data sources to ingest",
					},
					"time_window": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"from": map[string]any{"type": "string", "format": "date-time"},
							"to":   map[string]any{"type": "string", "format": "date-time"},
						},
						"required": []string{"from", "to"},
					},
					"policy":           map[string]any{"type": "string", "enum": []string{"private", "shared_candidate"}},
					"analysis_profile": map[string]any{"type": "string", "enum": []string{"summary", "analyst", "forensic"}},
				},
				"required": []string{"name", "topic_query", "sources", "time_window", "policy", "analysis_profile"},
			},
		},
		{
			Name:        "xint_package_status",
			Description: "Get package metadata and freshness (v1 draft contract)",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"package_id": map[string]any{"type": "string", "description": "Package identifier (pkg_*)"},
				},
				"required": []string{"package_id"},
			},
		},
		{
			Name:        "xint_package_query",
			Description: "Query one or more packages and return claims with citations (v1 draft contract)",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"query": map[string]any{"type": "string", "description": "Question to ask over package memory"},
					"package_ids": map[string]any{
						"type":        "array",
						"items":       map[string]any{"type": "string"},
						"description": "Package IDs included in retrieval scope",
					},
					"max_claims":        map[string]any{"type": "number", "description": "Maximum number of claims (default: 10)"},
					"require_citations": map[string]any{"type": "boolean", "description": "Require citations in response (default: true)"},
				},
				"required": []string{"query", "package_ids"},
			},
		},
		{
			Name:        "xint_package_refresh",
			Description: "Trigger package refresh and create a new snapshot (v1 draft contract)",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"package_id": map[string]any{"type": "string", "description": "Package identifier"},
					"reason":     map[string]any{"type": "string", "enum": []string{"ttl", "manual", "event"}},
				},
				"required": []string{"package_id", "reason"},
			},
		},
		{
			Name:        "xint_package_search",
			Description: "Search private and shared package catalog (v1 draft contract)",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"query": map[string]any{"type": "string", "description": "Search query for package catalog"},
					"limit": map[string]any{"type": "number", "description": "Max packages to return (default: 20)"},
				},
				"required": []string{"query"},
			},
		},
		{
			Name:        "xint_package_publish",
			Description: "Publish a package snapshot to shared catalog (v1 draft contract)",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"package_id":       map[string]any{"type": "string", "description": "Package identifier"},
					"snapshot_version": map[string]any{"type": "number", "description": "Snapshot version to publish"},
				},
				"required": []string{"package_id", "snapshot_version"},
			},
		},
		{
			Name:        "xint_cache_clear",
			Description: "Clear the xint search cache",
			InputSchema: map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			},
		},
		{
			Name:        "xint_watch",
			Description: "Monitor X in real-time with polling. Returns new tweets since last check.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"query": map[string]any{"type": "string", "description": "Search query to monitor"},
					"limit": map[string]any{"type": "number", "description": "Max tweets per check (default: 10)"},
					"since": map[string]any{"type": "string", "description": "Time window: 1h, 1d (default: 1h)"},
				},
				"required": []string{"query"},
			},
		},
		{
			Name:        "xint_diff",
			Description: "Track follower/following changes for a user",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"username":  map[string]any{"type": "string", "description": "Twitter username to track"},
					"following": map[string]any{"type": "boolean", "description": "Track following instead of followers (default: false)"},
				},
				"required": []string{"username"},
			},
		},
		{
			Name:        "xint_report",
			Description: "Generate an AI-powered intelligence report on a topic",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"topic":     map[string]any{"type": "string", "description": "Report topic or query"},
					"sentiment": map[string]any{"type": "boolean", "description": "Include sentiment analysis (default: false)"},
					"model":     map[string]any{"type": "string", "description": "Grok model (default: grok-3-mini)"},
					"pages":     map[string]any{"type": "number", "description": "Search pages (default: 2)"},
				},
				"required": []string{"topic"},
			},
		},
		{
			Name:        "xint_sentiment",
			Description: "Analyze sentiment of tweets",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"tweets": map[string]any{"type": "array", "description": "Array of tweets to analyze"},
				},
				"required": []string{"tweets"},
			},
		},
		{
			Name:        "xint_costs",
			Description: "Get API cost tracking information",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"period": map[string]any{"type": "string", "enum": []string{"today", "week", "month", "all"}, "description": "Time period (default: today)"},
				},
			},
		},
	}
}

// toolHandler executes one MCP tool and returns its text content.
type toolHandler func(ctx context.Context, s *mcpServer, args map[string]any) (string, error)

var toolHandlers = map[string]toolHandler{
	"xint_search": func(_ context.Context, _ *mcpServer, args map[string]any) (string, error) {
		query, err := requireStringArg(args, "query")
		if err != nil {
			return "", err
		}
		limit, _ := getIntArg(args, "limit", 15)
		return fmt.Sprintf("Search: %s (limit: %d)", query, limit), nil
	},

	"xint_profile": func(_ context.Context, _ *mcpServer, args map[string]any) (string, error) {
		username, err := requireStringArg(args, "username")
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Profile: @%s", username), nil
	},

	"xint_thread": func(_ context.Context, _ *mcpServer, args map[string]any) (string, error) {
		tweetID, err := requireStringArg(args, "tweet_id")
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Thread for tweet: %s", tweetID), nil
	},

	"xint_tweet": func(_ context.Context, _ *mcpServer, args map[string]any) (string, error) {
		tweetID, err := requireStringArg(args, "tweet_id")
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Tweet: %s", tweetID), nil
	},

	"xint_trends": func(_ context.Context, _ *mcpServer, args map[string]any) (string, error) {
		location := getStringArg(args, "location", "worldwide")
		return fmt.Sprintf("Trends for: %s", location), nil
	},

	"xint_xsearch": func(_ context.Context, _ *mcpServer, args map[string]any) (string, error) {
		query, err := requireStringArg(args, "query")
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("X-Search: %s", query), nil
	},

	"xint_collections_list": func(_ context.Context, _ *mcpServer, _ map[string]any) (string, error) {
		return "Collections: []", nil
	},

	"xint_analyze": func(_ context.Context, _ *mcpServer, args map[string]any) (string, error) {
		query, err := requireStringArg(args, "query")
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Analysis: %s", query), nil
	},

	"xint_article": func(_ context.Context, _ *mcpServer, args map[string]any) (string, error) {
		url, err := requireStringArg(args, "url")
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Article: %s", url), nil
	},

	"xint_collections_search": func(_ context.Context, _ *mcpServer, args map[string]any) (string, error) {
		collectionID, err := requireStringArg(args, "collection_id")
		if err != nil {
			return "", err
		}
		query, err := requireStringArg(args, "query")
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Collections search in %s: %s", collectionID, query), nil
	},

	"xint_bookmarks": func(_ context.Context, _ *mcpServer, _ map[string]any) (string, error) {
		return "Bookmarks: OAuth required", nil
	},

	"xint_package_create": func(ctx context.Context, s *mcpServer, args map[string]any) (string, error) {
		client, err := s.newPackageClient()
		if err != nil {
			return "", err
		}

		timeWindow, ok := args["time_window"]
		if !ok {
			now := time.Now().UTC()
			timeWindow = map[string]any{
				"from": now.Add(-24 * time.Hour).Format(time.RFC3339),
				"to":   now.Format(time.RFC3339),
			}
		}
		sources := extractStringArray(args, "sources")
		if sources == nil {
			sources = []string{}
		}

		body := map[string]any{
			"name":             getStringArg(args, "name", ""),
			"topic_query":      getStringArg(args, "topic_query", ""),
			"sources":          sources,
			"time_window":      timeWindow,
			"policy":           getStringArg(args, "policy", "private"),
			"analysis_profile": getStringArg(args, "analysis_profile", "summary"),
		}
		return client.CreatePackage(ctx, body)
	},

	"xint_package_status": func(ctx context.Context, s *mcpServer, args map[string]any) (string, error) {
		packageID, err := requireStringArg(args, "package_id")
		if err != nil {
			return "", err
		}
		client, err := s.newPackageClient()
		if err != nil {
			return "", err
		}
		return client.GetPackage(ctx, packageID, 0)
	},

	"xint_package_query": func(ctx context.Context, s *mcpServer, args map[string]any) (string, error) {
		query, err := requireStringArg(args, "query")
		if err != nil {
			return "", err
		}
		packageIDs := extractStringArray(args, "package_ids")
		if len(packageIDs) == 0 {
			return "", fmt.Errorf("Missing package_ids")
		}
		client, err := s.newPackageClient()
		if err != nil {
			return "", err
		}

		maxClaims, _ := getIntArg(args, "max_claims", 10)
		requireCitations := true
		if v, ok := args["require_citations"].(bool); ok {
			requireCitations = v
		}
		return client.Query(ctx, map[string]any{
			"query":             query,
			"package_ids":       packageIDs,
			"max_claims":        maxClaims,
			"require_citations": requireCitations,
		})
	},

	"xint_package_refresh": func(ctx context.Context, s *mcpServer, args map[string]any) (string, error) {
		packageID, err := requireStringArg(args, "package_id")
		if err != nil {
			return "", err
		}
		reason, err := requireStringArg(args, "reason")
		if err != nil {
			return "", err
		}
		client, err := s.newPackageClient()
		if err != nil {
			return "", err
		}
		return client.Refresh(ctx, packageID, map[string]any{"reason": reason})
	},

	"xint_package_search": func(ctx context.Context, s *mcpServer, args map[string]any) (string, error) {
		query, err := requireStringArg(args, "query")
		if err != nil {
			return "", err
		}
		limit, _ := getIntArg(args, "limit", 20)
		client, err := s.newPackageClient()
		if err != nil {
			return "", err
		}
		return client.Search(ctx, query, limit)
	},

	"xint_package_publish": func(ctx context.Context, s *mcpServer, args map[string]any) (string, error) {
		packageID, err := requireStringArg(args, "package_id")
		if err != nil {
			return "", err
		}
		snapshotVersion, ok := getIntArg(args, "snapshot_version", 0)
		if !ok {
			return "", fmt.Errorf("Missing snapshot_version")
		}
		client, err := s.newPackageClient()
		if err != nil {
			return "", err
		}
		return client.Publish(ctx, packageID, map[string]any{"snapshot_version": snapshotVersion})
	},

	"xint_cache_clear": func(_ context.Context, _ *mcpServer, _ map[string]any) (string, error) {
		return "Cache cleared", nil
	},

	"xint_watch": func(_ context.Context, _ *mcpServer, args map[string]any) (string, error) {
		query, err := requireStringArg(args, "query")
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Watch: %s (use CLI for real-time monitoring)", query), nil
	},

	"xint_diff": func(_ context.Context, _ *mcpServer, args map[string]any) (string, error) {
		username, err := requireStringArg(args, "username")
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Diff tracking for @%s", username), nil
	},

	"xint_report": func(_ context.Context, _ *mcpServer, args map[string]any) (string, error) {
		topic, err := requireStringArg(args, "topic")
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Report on: %s (requires XAI_API_KEY)", topic), nil
	},

	"xint_sentiment": func(_ context.Context, _ *mcpServer, _ map[string]any) (string, error) {
		return "Sentiment analysis (requires XAI_API_KEY)", nil
	},

	"xint_costs": func(_ context.Context, _ *mcpServer, args map[string]any) (string, error) {
		period := getStringArg(args, "period", "today")
		return fmt.Sprintf("Cost tracking for period: %s", period), nil
	},
}
