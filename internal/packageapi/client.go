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

// Package packageapi is the HTTP client for the remote intelligence
// package service. Responses are relayed to callers as pretty-printed
// JSON text; failures become descriptive errors, never panics.
package packageapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const (
	// EnvBaseURL configures the service root, e.g. https://api.example.com.
	EnvBaseURL = "XINT_PACKAGE_API_BASE_URL"
	// EnvAPIKey optionally supplies a bearer token.
	EnvAPIKey = "XINT_PACKAGE_API_KEY"

	errBodyLimit = 300
)

// Client talks to one package API deployment.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewFromEnv builds a client from the XINT_PACKAGE_API_* environment
// variables, falling back to the given defaults (typically from the
// config file). An empty base URL after both sources is an error.
func NewFromEnv(defaultBaseURL, defaultAPIKey string) (*Client, error) {
	baseURL := os.Getenv(EnvBaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if baseURL == "" {
		return nil, fmt.Errorf("package API base URL not configured (set %s)", EnvBaseURL)
	}
	apiKey := os.Getenv(EnvAPIKey)
	if apiKey == "" {
		apiKey = defaultAPIKey
	}
	return New(baseURL, apiKey), nil
}

// New builds a client for the given base URL. apiKey may be empty.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// CreatePackage creates a new intelligence package.
func (c *Client) CreatePackage(ctx context.Context, body map[string]any) (string, error) {
	return c.do(ctx, http.MethodPost, "/packages", body)
}

// GetPackage fetches one package by id, optionally at a snapshot version.
func (c *Client) GetPackage(ctx context.Context, id string, snapshotVersion int) (string, error) {
	path := "/packages/" + url.PathEscape(id)
	if snapshotVersion > 0 {
		path += fmt.Sprintf("?snapshot_version=%d", snapshotVersion)
	}
	return c.do(ctx, http.MethodGet, path, nil)
}

// Query runs a question against one or more packages.
func (c *Client) Query(ctx context.Context, body map[string]any) (string, error) {
	return c.do(ctx, http.MethodPost, "/query", body)
}

// Refresh triggers re-collection of a package's sources.
func (c *Client) Refresh(ctx context.Context, id string, body map[string]any) (string, error) {
	return c.do(ctx, http.MethodPost, "/packages/"+url.PathEscape(id)+"/refresh", body)
}

// Search finds packages matching a free-text query.
func (c *Client) Search(ctx context.Context, query string, limit int) (string, error) {
	path := "/packages/search?q=" + url.QueryEscape(query)
	if limit > 0 {
		path += fmt.Sprintf("&limit=%d", limit)
	}
	return c.do(ctx, http.MethodGet, path, nil)
}

// Publish promotes a package according to the given policy.
func (c *Client) Publish(ctx context.Context, id string, body map[string]any) (string, error) {
	return c.do(ctx, http.MethodPost, "/packages/"+url.PathEscape(id)+"/publish", body)
}

// do issues one request and relays the response body as indented JSON.
func (c *Client) do(ctx context.Context, method, path string, body map[string]any) (string, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return "", fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return "", fmt.Errorf("build request %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("package API request %s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read package API response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt := string(raw)
		if len(excerpt) > errBodyLimit {
			excerpt = excerpt[:errBodyLimit]
		}
		return "", fmt.Errorf("package API returned %d for %s %s: %s", resp.StatusCode, method, path, excerpt)
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return "{}", nil
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", fmt.Errorf("package API returned malformed JSON for %s %s: %w", method, path, err)
	}
	pretty, err := json.MarshalIndent(decoded, "", "  ")
	if err != nil {
		return "", err
	}
	return string(pretty), nil
}
