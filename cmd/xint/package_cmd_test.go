package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/xintlabs/xint/internal/packageapi"
)

func TestPackageQueryRequiresIDs(t *testing.T) {
	client := packageapi.New("http://localhost:0", "")
	_, err := packageQuery(context.Background(), client, []string{"--question", "what changed?"})
	if err == nil || !strings.Contains(err.Error(), "package ID") {
		t.Fatalf("missing ids error = %v", err)
	}
}

func TestPackageQueryRequiresQuestion(t *testing.T) {
	client := packageapi.New("http://localhost:0", "")
	_, err := packageQuery(context.Background(), client, []string{"--ids", "pkg-1"})
	if err == nil || !strings.Contains(err.Error(), "question") {
		t.Fatalf("missing question error = %v", err)
	}
}

func TestPackagePublishRequiresSnapshot(t *testing.T) {
	client := packageapi.New("http://localhost:0", "")
	_, err := packagePublish(context.Background(), client, []string{"pkg_abc"})
	if err == nil || !strings.Contains(err.Error(), "--snapshot") {
		t.Fatalf("missing snapshot error = %v", err)
	}
}

func TestPackageCreateForwardsBody(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/packages" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"package_id":"pkg_new","status":"ingesting"}`))
	}))
	defer srv.Close()

	client := packageapi.New(srv.URL, "")
	out, err := packageCreate(context.Background(), client, []string{
		"--name", "storm watch",
		"--topic", "hurricane",
		"--sources", "x_api_v2,web_article",
	})
	if err != nil {
		t.Fatal(err)
	}

	if got["name"] != "storm watch" || got["topic_query"] != "hurricane" {
		t.Fatalf("forwarded body = %v", got)
	}
	if got["policy"] != "private" || got["analysis_profile"] != "summary" {
		t.Fatalf("defaults not applied: %v", got)
	}
	window, ok := got["time_window"].(map[string]any)
	if !ok || window["from"] == "" || window["to"] == "" {
		t.Fatalf("time window missing: %v", got["time_window"])
	}
	if !strings.Contains(out, "pkg_new") {
		t.Fatalf("response not relayed: %q", out)
	}
}

func TestPackageStatusAndSearchPaths(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.String())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := packageapi.New(srv.URL, "")
	if _, err := packageStatus(context.Background(), client, []string{"pkg_abc"}); err != nil {
		t.Fatal(err)
	}
	if _, err := packageSearch(context.Background(), client, []string{"--limit", "5", "storm surge"}); err != nil {
		t.Fatal(err)
	}

	if len(paths) != 2 {
		t.Fatalf("requests = %v", paths)
	}
	if paths[0] != "/packages/pkg_abc" {
		t.Errorf("status path = %s", paths[0])
	}
	if paths[1] != "/packages/search?q=storm+surge&limit=5" {
		t.Errorf("search path = %s", paths[1])
	}
}
