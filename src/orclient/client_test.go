package orclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/elee1766/drover/src/aisdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(Config{
		APIKey:     "test-key",
		BaseURL:    srv.URL,
		RetryCount: 3,
		RetryDelay: time.Millisecond,
	})
	return srv, client
}

func completionRequest() *aisdk.ChatCompletionRequest {
	return &aisdk.ChatCompletionRequest{
		Model:    "test/model",
		Messages: []*aisdk.Message{{Role: "user", Content: "hi"}},
	}
}

func TestCreateChatCompletion(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req aisdk.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test/model", req.Model)

		json.NewEncoder(w).Encode(&aisdk.ChatCompletionResponse{
			Model: req.Model,
			Choices: []aisdk.Choice{{
				Message:      aisdk.Message{Role: "assistant", Content: "hello"},
				FinishReason: "stop",
			}},
			Usage: aisdk.Usage{TotalTokens: 12},
		})
	})

	resp, err := client.createChatCompletion(context.Background(), completionRequest())
	require.NoError(t, err)
	require.Len(t, resp.Choices, 1)
	assert.Equal(t, "hello", resp.Choices[0].Message.Content)
}

func TestCreateChatCompletionRetriesServerErrors(t *testing.T) {
	var calls atomic.Int64
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(&aisdk.ChatCompletionResponse{
			Choices: []aisdk.Choice{{Message: aisdk.Message{Role: "assistant", Content: "ok"}}},
		})
	})

	resp, err := client.createChatCompletion(context.Background(), completionRequest())
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Choices[0].Message.Content)
	assert.Equal(t, int64(3), calls.Load())
}

func TestCreateChatCompletionDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int64
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(&ErrorResponse{Error: APIError{
			Message: "slow down",
			Code:    "rate_limit_exceeded",
		}})
	})

	_, err := client.createChatCompletion(context.Background(), completionRequest())
	require.Error(t, err)
	assert.Equal(t, int64(1), calls.Load())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsRateLimit())
	assert.Equal(t, 30*time.Second, apiErr.RetryAfter)
}

func TestCreateChatCompletionEmptyChoices(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(&aisdk.ChatCompletionResponse{})
	})

	_, err := client.createChatCompletion(context.Background(), completionRequest())
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestModelBindsAndCaches(t *testing.T) {
	var listCalls atomic.Int64
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/models", r.URL.Path)
		listCalls.Add(1)
		json.NewEncoder(w).Encode(&ModelsResponse{Data: []*aisdk.ModelInfo{
			{ID: "test/model", Name: "Test Model", ContextLength: 8192},
		}})
	})

	mc, err := client.Model(context.Background(), "test/model")
	require.NoError(t, err)
	assert.Equal(t, "Test Model", mc.GetModelInfo().Name)

	// Second bind is served from cache.
	_, err = client.Model(context.Background(), "test/model")
	require.NoError(t, err)
	assert.Equal(t, int64(1), listCalls.Load())

	_, err = client.Model(context.Background(), "missing/model")
	assert.ErrorIs(t, err, ErrModelNotFound)
}
