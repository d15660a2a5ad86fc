// Copyright 2025 XintLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package packageapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryRelaysPrettyJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/query", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"answer":"42","sources":[]}`))
	}))
	defer srv.Close()

	client := New(srv.URL, "")
	out, err := client.Query(context.Background(), map[string]any{
		"package_ids": []string{"pkg-1"},
		"question":    "what changed?",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "\"answer\": \"42\"")
	assert.True(t, strings.HasPrefix(out, "{\n"), "response must be indented")
}

func TestBearerTokenSent(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := New(srv.URL, "secret-token")
	_, err := client.GetPackage(context.Background(), "pkg-1", 0)
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret-token", gotAuth)
}

func TestSearchEscapesQuery(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/packages/search", r.URL.Path)
		gotQuery = r.URL.Query().Get("q")
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := New(srv.URL, "")
	_, err := client.Search(context.Background(), "crypto scam ring", 5)
	require.NoError(t, err)
	assert.Equal(t, "crypto scam ring", gotQuery)
}

func TestNonSuccessStatusBecomesError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(strings.Repeat("x", 1000)))
	}))
	defer srv.Close()

	client := New(srv.URL, "")
	_, err := client.Query(context.Background(), map[string]any{"question": "q"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.LessOrEqual(t, len(err.Error()), 300+120, "error body excerpt must be truncated")
}

func TestEmptyBodyBecomesEmptyObject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := New(srv.URL, "")
	out, err := client.Publish(context.Background(), "pkg-1", map[string]any{"policy": "private"})
	require.NoError(t, err)
	assert.Equal(t, "{}", out)
}

func TestMalformedJSONBecomesError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	client := New(srv.URL, "")
	_, err := client.GetPackage(context.Background(), "pkg-1", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed JSON")
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv(EnvBaseURL, "https://pkg.example.com/")
	t.Setenv(EnvAPIKey, "k")
	client, err := NewFromEnv("", "")
	require.NoError(t, err)
	assert.Equal(t, "https://pkg.example.com", client.baseURL)
	assert.Equal(t, "k", client.apiKey)
}

func TestNewFromEnvMissingBaseURL(t *testing.T) {
	t.Setenv(EnvBaseURL, "")
	_, err := NewFromEnv("", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvBaseURL)
}
