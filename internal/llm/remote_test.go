package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/planforge/internal/domain"
)

func TestRemoteClient_Chat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/openai/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer gsk-test", r.Header.Get("Authorization"))

		var body struct {
			Model       string    `json:"model"`
			Messages    []Message `json:"messages"`
			Temperature float64   `json:"temperature"`
			MaxTokens   int       `json:"max_tokens"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "llama-3.1-8b-instant", body.Model)
		assert.InDelta(t, 0.7, body.Temperature, 1e-6)
		assert.Equal(t, 256, body.MaxTokens)
		require.Len(t, body.Messages, 2)
		assert.Equal(t, RoleSystem, body.Messages[0].Role)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"c1","object":"chat.completion","model":"llama-3.1-8b-instant",
			"choices":[{"index":0,"message":{"role":"assistant","content":"Who buys it?"},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.GroqBaseURL = srv.URL + "/openai/v1"
	c, err := NewClient(domain.AISettings{Provider: domain.ProviderGroq, APIKey: "gsk-test"}, cfg, nil, nil)
	require.NoError(t, err)

	resp, err := c.Chat(context.Background(), userTurn("I sell honey"))
	require.NoError(t, err)
	assert.Equal(t, "Who buys it?", resp.Text)
}

func TestRemoteClient_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"c1","object":"chat.completion","model":"m","choices":[]}`))
	}))
	defer srv.Close()

	c := NewRemoteClient(domain.ProviderOpenAI, srv.URL, "sk", "m", DefaultConfig(), nil)
	resp, err := c.Chat(context.Background(), userTurn("hi"))
	require.NoError(t, err)
	assert.Empty(t, resp.Text)
}

func TestRemoteClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"Invalid API Key","type":"invalid_request_error","code":"invalid_api_key"}}`))
	}))
	defer srv.Close()

	var captured CallEvent
	obs := &captureObserver{fn: func(e CallEvent) { captured = e }}
	c := NewRemoteClient(domain.ProviderOpenAI, srv.URL, "sk-bad", "gpt-3.5-turbo", DefaultConfig(), obs)
	_, err := c.Chat(context.Background(), userTurn("hi"))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProviderAPI)
	assert.Contains(t, err.Error(), "Invalid API Key")
	assert.Equal(t, "API", captured.ErrorCode)
	assert.Equal(t, domain.ProviderOpenAI, captured.Provider)
}
