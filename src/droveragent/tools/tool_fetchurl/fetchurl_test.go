package tool_fetchurl

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/elee1766/drover/src/aisdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fetch(t *testing.T, args map[string]interface{}) (*aisdk.ToolResponse, FetchURLOutput) {
	t.Helper()
	tool, err := Tool()
	require.NoError(t, err)

	argsJSON, err := json.Marshal(args)
	require.NoError(t, err)

	resp, err := tool.Execute(context.Background(), &aisdk.ToolCall{
		Function: aisdk.FunctionCall{Arguments: argsJSON},
	})
	require.NoError(t, err)

	var out FetchURLOutput
	if !resp.IsError {
		require.NoError(t, json.Unmarshal(resp.Content, &out))
	}
	return resp, out
}

func TestFetchURLPlainText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("hello from server"))
	}))
	defer srv.Close()

	resp, out := fetch(t, map[string]interface{}{"url": srv.URL})
	require.False(t, resp.IsError, "unexpected tool error: %s", resp.Content)
	assert.Equal(t, "hello from server", out.Content)
	assert.Equal(t, http.StatusOK, out.StatusCode)
}

func TestFetchURLExtractsTextFromHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><head><script>evil()</script></head><body><h1>Title</h1><p>Body text</p></body></html>`))
	}))
	defer srv.Close()

	resp, out := fetch(t, map[string]interface{}{"url": srv.URL, "format": "text"})
	require.False(t, resp.IsError)
	assert.Contains(t, out.Content, "Title")
	assert.Contains(t, out.Content, "Body text")
	assert.NotContains(t, out.Content, "evil()")
}

func TestFetchURLMarkdownConversion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><body><h1>Heading</h1><p>Some <strong>bold</strong> text</p></body></html>`))
	}))
	defer srv.Close()

	resp, out := fetch(t, map[string]interface{}{"url": srv.URL, "format": "markdown"})
	require.False(t, resp.IsError)
	assert.Contains(t, out.Content, "# Heading")
	assert.Contains(t, out.Content, "**bold**")
}

func TestFetchURLErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	resp, _ := fetch(t, map[string]interface{}{"url": srv.URL})
	assert.True(t, resp.IsError)

	resp, _ = fetch(t, map[string]interface{}{"url": "ftp://example.com/file"})
	assert.True(t, resp.IsError)

	resp, _ = fetch(t, map[string]interface{}{"url": srv.URL, "format": "yaml"})
	assert.True(t, resp.IsError)
}
