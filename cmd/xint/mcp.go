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
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xintlabs/xint/internal/costs"
	"github.com/xintlabs/xint/internal/errors"
	"github.com/xintlabs/xint/internal/packageapi"
	"github.com/xintlabs/xint/internal/policy"
	"github.com/xintlabs/xint/internal/reliability"
)

const (
	mcpVersion    = "1.0.0"
	mcpServerName = "xint"
)

// jsonRPCRequest represents a JSON-RPC 2.0 request from the MCP client.
//
// The MCP protocol uses JSON-RPC 2.0 for all client-server communication.
type jsonRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"` // Request parameters (tool-specific)
}

// jsonRPCResponse represents a JSON-RPC 2.0 response to the MCP client.
//
// Contains either a result (on success) or an error (on failure), never both.
type jsonRPCResponse struct {
	JSONRPC string    `json:"jsonrpc"`
	ID      any       `json:"id,omitempty"`
	Result  any       `json:"result,omitempty"`
	Error   *rpcError `json:"error,omitempty"` // Error details (if request failed)
}

// rpcError represents a JSON-RPC 2.0 error object.
type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"` // Additional error data (optional)
}

// mcpServerInfo provides server identification for MCP protocol handshake.
type mcpServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type mcpCapabilities struct {
	Tools map[string]any `json:"tools,omitempty"` // Tool capabilities declaration
}

// mcpInitializeResult is the response to the MCP initialize request.
type mcpInitializeResult struct {
	ProtocolVersion string          `json:"protocolVersion"`
	Capabilities    mcpCapabilities `json:"capabilities"`
	ServerInfo      mcpServerInfo   `json:"serverInfo"` // Server identification
}

// mcpTool describes a single tool exposed by the MCP server.
//
// Each tool has a name, description, and JSON Schema defining its input parameters.
type mcpTool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"` // JSON Schema for tool parameters
}

// mcpToolsListResult is the response to the tools/list request.
type mcpToolsListResult struct {
	Tools []mcpTool `json:"tools"`
}

type mcpToolCallParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"` // Tool-specific arguments
}

// mcpToolResult is the result of a tool execution.
//
// Contains the tool's output as an array of content blocks (typically text).
type mcpToolResult struct {
	Content []mcpContent `json:"content"`
	IsError bool         `json:"isError,omitempty"` // True if tool execution failed
}

// mcpContent represents a single content block in a tool result.
//
// MCP supports multiple content types; xint uses text content exclusively.
type mcpContent struct {
	Type string `json:"type"`
	Text string `json:"text"` // Content text
}

// mcpServer maintains state for the running MCP server instance.
//
// Holds the policy mode this session was granted, the budget guard
// switch, and the paths of the costs ledger and reliability log.
type mcpServer struct {
	initialized     bool
	policyMode      policy.Mode
	enforceBudget   bool
	costsPath       string
	reliabilityPath string

	pkgBaseURL string
	pkgAPIKey  string
}

// newPackageClient builds a package API client for one tool call.
// The base URL is resolved lazily so the server can start without it;
// package tools then fail with a descriptive error instead.
func (s *mcpServer) newPackageClient() (*packageapi.Client, error) {
	return packageapi.NewFromEnv(s.pkgBaseURL, s.pkgAPIKey)
}

// runMCPServer starts the xint Model Context Protocol server.
//
// It initializes a JSON-RPC 2.0 server over stdin/stdout and exposes
// the xint operations as MCP tools for AI assistants. The server runs
// until stdin is closed or an unrecoverable error occurs.
//
// MCP Protocol Flow:
//  1. Client sends initialize request
//  2. Server responds with capabilities and server info
//  3. Client sends tools/list to discover available tools
//  4. Client sends tools/call requests to invoke specific tools
//  5. Server executes tool and returns results as content blocks
//
// Every tools/call passes the policy gate first and the budget guard
// second; denials come back as structured JSON payloads inside an
// error-flagged tool result, never as dropped connections.
//
// Parameters:
//   - configPath: Path to .xint/project.yaml (empty string to auto-detect)
//   - metricsAddr: Optional host:port to expose Prometheus metrics on
//   - mode: Policy mode granted to this server session
func runMCPServer(configPath, metricsAddr string, mode policy.Mode) {
	cwd, _ := os.Getwd()
	fmt.Fprintf(os.Stderr, "MCP Server CWD: %s\n", cwd)
	fmt.Fprintf(os.Stderr, "Config path arg: %q\n", configPath)

	cfg, err := LoadConfig(configPath)
	if err != nil {
		ue := errors.NewConfigError(
			"Cannot load xint configuration file",
			"Configuration file is missing or invalid",
			"Using environment variables as fallback. Run 'xint config init' to create a proper config.",
			err,
		)
		// Don't fatal, just log warning
		fmt.Fprintf(os.Stderr, "%s\n", ue.Format(false))

		cfg = DefaultConfig("")
		cfg.applyEnvOverrides()
	}

	costsFile, err := costsPath(cfg, configPath)
	if err != nil {
		errors.FatalError(err, false)
	}
	reliabilityFile, err := reliabilityPath(cfg, configPath)
	if err != nil {
		errors.FatalError(err, false)
	}

	// Make sure the ledger carries the configured limit so the budget
	// guard has something to compare against.
	if cfg.Budget.LimitUSD > 0 {
		if err := costs.SetLimit(costsFile, cfg.Budget.LimitUSD); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cannot set budget limit: %v\n", err)
		}
	}

	server := &mcpServer{
		policyMode:      mode,
		enforceBudget:   cfg.Budget.LimitUSD > 0,
		costsPath:       costsFile,
		reliabilityPath: reliabilityFile,
		pkgBaseURL:      cfg.PackageAPI.BaseURL,
		pkgAPIKey:       cfg.PackageAPI.APIKey,
	}

	if metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			slog.Info("metrics listener started", "addr", metricsAddr)
			if err := http.ListenAndServe(metricsAddr, mux); err != nil {
				slog.Error("metrics listener failed", "error", err)
			}
		}()
	}

	fmt.Fprintf(os.Stderr, "xint MCP Server v%s starting...\n", mcpVersion)
	fmt.Fprintf(os.Stderr, "  Policy: %s\n", mode)
	fmt.Fprintf(os.Stderr, "  Budget guard: %v\n", server.enforceBudget)
	fmt.Fprintf(os.Stderr, "  Costs ledger: %s\n", costsFile)

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 1024*1024), 10*1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		var req jsonRPCRequest
		if err := json.Unmarshal([]byte(line), &req); err != nil {
			ue := errors.NewInputError(
				"Invalid JSON in MCP request",
				"The request does not conform to JSON-RPC 2.0 format",
				"Check your MCP client configuration",
				err,
			)
			fmt.Fprintf(os.Stderr, "%s\n", ue.Format(false))
			continue
		}

		fmt.Fprintf(os.Stderr, "-> %s\n", req.Method)

		ctx := context.Background()
		resp := server.handleRequest(ctx, req)

		if resp.ID == nil && resp.Result == nil && resp.Error == nil {
			continue
		}

		respBytes, err := json.Marshal(resp)
		if err != nil {
			ue := errors.NewInternalError(
				"Cannot encode MCP response",
				"Failed to marshal response to JSON",
				"This is a bug. Please report it with the request details.",
				err,
			)
			fmt.Fprintf(os.Stderr, "%s\n", ue.Format(false))
			continue
		}

		_, _ = fmt.Fprintf(os.Stdout, "%s\n", respBytes)
		_ = os.Stdout.Sync()

		fmt.Fprintf(os.Stderr, "<- response sent for %s\n", req.Method)
	}

	if err := scanner.Err(); err != nil {
		ue := errors.NewInternalError(
			"MCP server input error",
			"Failed to read from stdin",
			"Check if stdin is closed or if there's a pipe issue.",
			err,
		)
		errors.FatalError(ue, false)
	}
}

func (s *mcpServer) handleRequest(ctx context.Context, req jsonRPCRequest) jsonRPCResponse {
	switch req.Method {
	case "initialize":
		s.initialized = true
		return jsonRPCResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result: mcpInitializeResult{
				ProtocolVersion: "2024-11-05",
				Capabilities: mcpCapabilities{
					Tools: map[string]any{},
				},
				ServerInfo: mcpServerInfo{
					Name:    mcpServerName,
					Version: mcpVersion,
				},
			},
		}

	case "notifications/initialized", "initialized":
		return jsonRPCResponse{}

	case "tools/list":
		return jsonRPCResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result: mcpToolsListResult{
				Tools: getTools(),
			},
		}

	case "tools/call":
		var params mcpToolCallParams
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return jsonRPCResponse{
				JSONRPC: "2.0",
				ID:      req.ID,
				Error: &rpcError{
					Code:    -32602,
					Message: "Invalid params",
					Data:    err.Error(),
				},
			}
		}

		result, err := s.handleToolCall(ctx, params)
		if err != nil {
			return jsonRPCResponse{
				JSONRPC: "2.0",
				ID:      req.ID,
				Error: &rpcError{
					Code:    -32603,
					Message: "Internal error",
					Data:    err.Error(),
				},
			}
		}

		return jsonRPCResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  result,
		}

	default:
		return jsonRPCResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &rpcError{
				Code:    -32601,
				Message: "Method not found",
				Data:    req.Method,
			},
		}
	}
}

// toolRequiredPolicy returns the minimum policy mode a tool needs.
func toolRequiredPolicy(name string) policy.Mode {
	switch name {
	case "xint_bookmarks", "xint_diff", "xint_package_publish":
		return policy.Engagement
	default:
		return policy.ReadOnly
	}
}

// budgetGuardedTools lists the tools whose execution is metered.
// Status, cache, and cost introspection tools are free.
var budgetGuardedTools = map[string]bool{
	"xint_search":             true,
	"xint_profile":            true,
	"xint_thread":             true,
	"xint_tweet":              true,
	"xint_trends":             true,
	"xint_xsearch":            true,
	"xint_collections_list":   true,
	"xint_collections_search": true,
	"xint_analyze":            true,
	"xint_article":            true,
	"xint_bookmarks":          true,
	"xint_watch":              true,
	"xint_diff":               true,
	"xint_report":             true,
	"xint_sentiment":          true,
	"xint_package_create":     true,
	"xint_package_query":      true,
	"xint_package_refresh":    true,
	"xint_package_search":     true,
	"xint_package_publish":    true,
}

// policyDenial builds the POLICY_DENIED payload returned when the
// session's policy mode is weaker than the tool requires.
func (s *mcpServer) policyDenial(name string) *mcpToolResult {
	required := toolRequiredPolicy(name)
	payload, _ := json.Marshal(map[string]any{
		"code":          "POLICY_DENIED",
		"message":       fmt.Sprintf("MCP tool '%s' requires '%s' policy mode", name, required),
		"tool":          name,
		"policy_mode":   s.policyMode.String(),
		"required_mode": required.String(),
	})
	return &mcpToolResult{
		Content: []mcpContent{{Type: "text", Text: string(payload)}},
		IsError: true,
	}
}

// budgetDenial builds the BUDGET_DENIED payload for a metered tool
// whose budget is exhausted.
func budgetDenial(name string, status costs.BudgetStatus) *mcpToolResult {
	payload, _ := json.Marshal(map[string]any{
		"code":          "BUDGET_DENIED",
		"message":       fmt.Sprintf("Daily budget exceeded ($%.2f / $%.2f)", status.SpentUSD, status.LimitUSD),
		"tool":          name,
		"spent_usd":     status.SpentUSD,
		"limit_usd":     status.LimitUSD,
		"remaining_usd": status.RemainingUSD,
	})
	return &mcpToolResult{
		Content: []mcpContent{{Type: "text", Text: string(payload)}},
		IsError: true,
	}
}

// handleToolCall runs the gates and the tool, and records the outcome
// keyed as mcp:<tool>. The policy gate always runs before the budget
// guard, so an out-of-policy call is denied even with budget left.
func (s *mcpServer) handleToolCall(ctx context.Context, params mcpToolCallParams) (*mcpToolResult, error) {
	started := time.Now()
	name := params.Name
	guarded := budgetGuardedTools[name]

	record := func(success bool) {
		elapsed := time.Since(started).Milliseconds()
		if err := reliability.RecordCommandResult(s.reliabilityPath, "mcp:"+name, success, elapsed, s.policyMode.String(), guarded); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: reliability record failed: %v\n", err)
		}
	}

	handler, ok := toolHandlers[name]
	if !ok {
		record(false)
		return &mcpToolResult{
			Content: []mcpContent{{Type: "text", Text: fmt.Sprintf("Unknown tool: %s", name)}},
			IsError: true,
		}, nil
	}

	if !policy.IsAllowed(s.policyMode, toolRequiredPolicy(name)) {
		record(false)
		return s.policyDenial(name), nil
	}

	if s.enforceBudget && guarded {
		status, err := costs.CheckBudget(s.costsPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: budget check failed: %v\n", err)
		} else if !status.Allowed {
			record(false)
			return budgetDenial(name, status), nil
		}
	}

	text, err := handler(ctx, s, params.Arguments)
	if err != nil {
		record(false)
		return &mcpToolResult{
			Content: []mcpContent{{Type: "text", Text: err.Error()}},
			IsError: true,
		}, nil
	}

	record(true)
	return &mcpToolResult{
		Content: []mcpContent{{Type: "text", Text: text}},
	}, nil
}

// getIntArg retrieves an integer argument from the params map, with a default fallback
func getIntArg(args map[string]any, key string, fallback int) (int, bool) {
	if v, ok := args[key]; ok {
		if f, ok := v.(float64); ok {
			return int(f), true
		}
		if i, ok := v.(int); ok {
			return i, true
		}
	}
	return fallback, false
}

// getStringArg retrieves a string argument with a default fallback.
func getStringArg(args map[string]any, key, fallback string) string {
	if v, ok := args[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

// requireStringArg retrieves a mandatory string argument.
func requireStringArg(args map[string]any, key string) (string, error) {
	v, ok := args[key].(string)
	if !ok || v == "" {
		return "", fmt.Errorf("Missing %s", key)
	}
	return v, nil
}

// extractStringArray extracts a string array from the arguments map.
func extractStringArray(args map[string]any, key string) []string {
	var result []string
	if raw, ok := args[key].([]interface{}); ok {
		for _, item := range raw {
			if s, ok := item.(string); ok {
				result = append(result, s)
			}
		}
	}
	return result
}
