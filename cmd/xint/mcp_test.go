package main

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xintlabs/xint/internal/costs"
	"github.com/xintlabs/xint/internal/policy"
	"github.com/xintlabs/xint/internal/reliability"
)

func testServer(t *testing.T, mode policy.Mode, enforceBudget bool) *mcpServer {
	t.Helper()
	dir := t.TempDir()
	return &mcpServer{
		policyMode:      mode,
		enforceBudget:   enforceBudget,
		costsPath:       filepath.Join(dir, "costs.json"),
		reliabilityPath: filepath.Join(dir, "reliability.jsonl"),
	}
}

func callTool(t *testing.T, s *mcpServer, name string, args map[string]any) *mcpToolResult {
	t.Helper()
	result, err := s.handleToolCall(context.Background(), mcpToolCallParams{Name: name, Arguments: args})
	if err != nil {
		t.Fatalf("handleToolCall(%s) error: %v", name, err)
	}
	if result == nil || len(result.Content) == 0 {
		t.Fatalf("handleToolCall(%s) returned empty result", name)
	}
	return result
}

func TestGetToolsCatalog(t *testing.T) {
	tools := getTools()
	if len(tools) != 23 {
		t.Fatalf("catalog has %d tools, want 23", len(tools))
	}

	seen := make(map[string]bool)
	for _, tool := range tools {
		if seen[tool.Name] {
			t.Errorf("duplicate tool name %s", tool.Name)
		}
		seen[tool.Name] = true

		if tool.Description == "" {
			t.Errorf("tool %s has no description", tool.Name)
		}
		if tool.InputSchema["type"] != "object" {
			t.Errorf("tool %s schema type = %v", tool.Name, tool.InputSchema["type"])
		}
		if _, ok := toolHandlers[tool.Name]; !ok {
			t.Errorf("tool %s has no handler", tool.Name)
		}
	}

	for name := range toolHandlers {
		if !seen[name] {
			t.Errorf("handler %s is not in the catalog", name)
		}
	}
}

func TestInitializeResponse(t *testing.T) {
	s := testServer(t, policy.ReadOnly, false)
	resp := s.handleRequest(context.Background(), jsonRPCRequest{
		JSONRPC: "2.0",
		ID:      float64(1),
		Method:  "initialize",
	})

	if resp.Error != nil {
		t.Fatalf("initialize returned error: %+v", resp.Error)
	}
	result, ok := resp.Result.(mcpInitializeResult)
	if !ok {
		t.Fatalf("initialize result type %T", resp.Result)
	}
	if result.ProtocolVersion != "2024-11-05" {
		t.Errorf("protocol version = %s", result.ProtocolVersion)
	}
	if result.ServerInfo.Name != "xint" || result.ServerInfo.Version != "1.0.0" {
		t.Errorf("server info = %+v", result.ServerInfo)
	}
	if !s.initialized {
		t.Error("initialize did not set the initialized flag")
	}
}

func TestInitializedNotificationIsSilent(t *testing.T) {
	s := testServer(t, policy.ReadOnly, false)
	resp := s.handleRequest(context.Background(), jsonRPCRequest{
		JSONRPC: "2.0",
		Method:  "notifications/initialized",
	})
	if resp.ID != nil || resp.Result != nil || resp.Error != nil {
		t.Fatalf("notification produced a reply: %+v", resp)
	}
}

func TestUnknownMethod(t *testing.T) {
	s := testServer(t, policy.ReadOnly, false)
	resp := s.handleRequest(context.Background(), jsonRPCRequest{
		JSONRPC: "2.0",
		ID:      float64(7),
		Method:  "resources/list",
	})
	if resp.Error == nil || resp.Error.Code != -32601 {
		t.Fatalf("unknown method error = %+v, want -32601", resp.Error)
	}
}

func TestToolsCallInvalidParams(t *testing.T) {
	s := testServer(t, policy.ReadOnly, false)
	resp := s.handleRequest(context.Background(), jsonRPCRequest{
		JSONRPC: "2.0",
		ID:      float64(3),
		Method:  "tools/call",
		Params:  json.RawMessage(`"not an object"`),
	})
	if resp.Error == nil || resp.Error.Code != -32602 {
		t.Fatalf("invalid params error = %+v, want -32602", resp.Error)
	}
}

func TestUnknownToolIsErrorResult(t *testing.T) {
	s := testServer(t, policy.ReadOnly, false)
	result := callTool(t, s, "xint_bogus", nil)
	if !result.IsError {
		t.Fatal("unknown tool must produce an error result")
	}
	if result.Content[0].Text != "Unknown tool: xint_bogus" {
		t.Fatalf("unknown tool text = %q", result.Content[0].Text)
	}
}

func TestPlaceholderTools(t *testing.T) {
	s := testServer(t, policy.Engagement, false)

	cases := []struct {
		tool string
		args map[string]any
		want string
	}{
		{"xint_search", map[string]any{"query": "golang"}, "Search: golang (limit: 15)"},
		{"xint_search", map[string]any{"query": "golang", "limit": float64(5)}, "Search: golang (limit: 5)"},
		{"xint_profile", map[string]any{"username": "nasa"}, "Profile: @nasa"},
		{"xint_thread", map[string]any{"tweet_id": "123"}, "Thread for tweet: 123"},
		{"xint_tweet", map[string]any{"tweet_id": "456"}, "Tweet: 456"},
		{"xint_trends", nil, "Trends for: worldwide"},
		{"xint_trends", map[string]any{"location": "tokyo"}, "Trends for: tokyo"},
		{"xint_xsearch", map[string]any{"query": "ai"}, "X-Search: ai"},
		{"xint_collections_list", nil, "Collections: []"},
		{"xint_analyze", map[string]any{"query": "why"}, "Analysis: why"},
		{"xint_article", map[string]any{"url": "https://example.com"}, "Article: https://example.com"},
		{"xint_collections_search", map[string]any{"collection_id": "col_1", "query": "q"}, "Collections search in col_1: q"},
		{"xint_bookmarks", nil, "Bookmarks: OAuth required"},
		{"xint_cache_clear", nil, "Cache cleared"},
		{"xint_watch", map[string]any{"query": "breaking"}, "Watch: breaking (use CLI for real-time monitoring)"},
		{"xint_diff", map[string]any{"username": "nasa"}, "Diff tracking for @nasa"},
		{"xint_report", map[string]any{"topic": "energy"}, "Report on: energy (requires XAI_API_KEY)"},
		{"xint_sentiment", map[string]any{"tweets": []any{}}, "Sentiment analysis (requires XAI_API_KEY)"},
		{"xint_costs", nil, "Cost tracking for period: today"},
		{"xint_costs", map[string]any{"period": "week"}, "Cost tracking for period: week"},
	}

	for _, tc := range cases {
		result := callTool(t, s, tc.tool, tc.args)
		if result.IsError {
			t.Errorf("%s returned error: %s", tc.tool, result.Content[0].Text)
			continue
		}
		if result.Content[0].Text != tc.want {
			t.Errorf("%s = %q, want %q", tc.tool, result.Content[0].Text, tc.want)
		}
	}
}

func TestMissingRequiredArgument(t *testing.T) {
	s := testServer(t, policy.ReadOnly, false)

	result := callTool(t, s, "xint_search", nil)
	if !result.IsError || result.Content[0].Text != "Missing query" {
		t.Fatalf("xint_search without query = %+v", result)
	}

	result = callTool(t, s, "xint_thread", map[string]any{})
	if !result.IsError || result.Content[0].Text != "Missing tweet_id" {
		t.Fatalf("xint_thread without tweet_id = %+v", result)
	}
}

func TestPolicyDenial(t *testing.T) {
	s := testServer(t, policy.ReadOnly, false)
	result := callTool(t, s, "xint_diff", map[string]any{"username": "nasa"})
	if !result.IsError {
		t.Fatal("engagement tool must be denied in read_only mode")
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(result.Content[0].Text), &payload); err != nil {
		t.Fatalf("denial payload is not JSON: %v", err)
	}
	if payload["code"] != "POLICY_DENIED" {
		t.Errorf("code = %v", payload["code"])
	}
	if payload["tool"] != "xint_diff" {
		t.Errorf("tool = %v", payload["tool"])
	}
	if payload["policy_mode"] != "read_only" || payload["required_mode"] != "engagement" {
		t.Errorf("modes = %v / %v", payload["policy_mode"], payload["required_mode"])
	}
	if msg, _ := payload["message"].(string); !strings.Contains(msg, "requires 'engagement' policy mode") {
		t.Errorf("message = %q", msg)
	}
}

func TestEngagementToolsAllowedInEngagementMode(t *testing.T) {
	s := testServer(t, policy.Engagement, false)
	for _, tc := range []struct {
		tool string
		args map[string]any
	}{
		{"xint_bookmarks", nil},
		{"xint_diff", map[string]any{"username": "nasa"}},
	} {
		result := callTool(t, s, tc.tool, tc.args)
		if result.IsError {
			t.Errorf("%s denied in engagement mode: %s", tc.tool, result.Content[0].Text)
		}
	}
}

func TestBudgetDenial(t *testing.T) {
	s := testServer(t, policy.ReadOnly, true)
	if err := costs.SetLimit(s.costsPath, 1.00); err != nil {
		t.Fatal(err)
	}
	if err := costs.RecordSpend(s.costsPath, "cli:search", 1.50); err != nil {
		t.Fatal(err)
	}

	result := callTool(t, s, "xint_search", map[string]any{"query": "golang"})
	if !result.IsError {
		t.Fatal("metered tool must be denied over budget")
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(result.Content[0].Text), &payload); err != nil {
		t.Fatalf("denial payload is not JSON: %v", err)
	}
	if payload["code"] != "BUDGET_DENIED" {
		t.Errorf("code = %v", payload["code"])
	}
	if payload["spent_usd"].(float64) != 1.50 || payload["limit_usd"].(float64) != 1.00 {
		t.Errorf("spent/limit = %v / %v", payload["spent_usd"], payload["limit_usd"])
	}
	if payload["remaining_usd"].(float64) != 0 {
		t.Errorf("remaining_usd = %v, want 0", payload["remaining_usd"])
	}
	if msg, _ := payload["message"].(string); !strings.Contains(msg, "Daily budget exceeded ($1.50 / $1.00)") {
		t.Errorf("message = %q", msg)
	}
}

func TestUnmeteredToolsBypassBudget(t *testing.T) {
	s := testServer(t, policy.ReadOnly, true)
	if err := costs.SetLimit(s.costsPath, 1.00); err != nil {
		t.Fatal(err)
	}
	if err := costs.RecordSpend(s.costsPath, "cli:search", 2.00); err != nil {
		t.Fatal(err)
	}

	for _, tool := range []string{"xint_cache_clear", "xint_costs"} {
		result := callTool(t, s, tool, nil)
		if result.IsError {
			t.Errorf("%s blocked by budget guard: %s", tool, result.Content[0].Text)
		}
	}
}

func TestPolicyGateRunsBeforeBudgetGuard(t *testing.T) {
	s := testServer(t, policy.ReadOnly, true)
	if err := costs.SetLimit(s.costsPath, 1.00); err != nil {
		t.Fatal(err)
	}
	if err := costs.RecordSpend(s.costsPath, "cli:search", 2.00); err != nil {
		t.Fatal(err)
	}

	result := callTool(t, s, "xint_bookmarks", nil)
	if !result.IsError {
		t.Fatal("expected denial")
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(result.Content[0].Text), &payload); err != nil {
		t.Fatal(err)
	}
	if payload["code"] != "POLICY_DENIED" {
		t.Fatalf("code = %v, want POLICY_DENIED before budget check", payload["code"])
	}
}

func TestPackageQueryRejectsEmptyScope(t *testing.T) {
	s := testServer(t, policy.ReadOnly, false)
	result := callTool(t, s, "xint_package_query", map[string]any{
		"query":       "what happened",
		"package_ids": []any{},
	})
	if !result.IsError || result.Content[0].Text != "Missing package_ids" {
		t.Fatalf("empty package_ids = %+v", result)
	}
}

func TestToolCallsAreRecorded(t *testing.T) {
	s := testServer(t, policy.ReadOnly, false)

	callTool(t, s, "xint_trends", nil)
	callTool(t, s, "xint_bogus", nil)

	result := callTool(t, s, "xint_trends", nil)
	if result.IsError {
		t.Fatalf("xint_trends failed: %s", result.Content[0].Text)
	}

	summaries, err := reliability.Summarize(s.reliabilityPath)
	if err != nil {
		t.Fatal(err)
	}
	trends, ok := summaries["mcp:xint_trends"]
	if !ok || trends.Total != 2 || trends.Failures != 0 {
		t.Fatalf("mcp:xint_trends summary = %+v", trends)
	}
	bogus, ok := summaries["mcp:xint_bogus"]
	if !ok || bogus.Failures != 1 {
		t.Fatalf("mcp:xint_bogus summary = %+v", bogus)
	}
}
