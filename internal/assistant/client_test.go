package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/finance-aggregator/internal/config"
	"github.com/magabrotheeeer/finance-aggregator/internal/models"
)

func TestClient_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req completionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		assert.Equal(t, 900, req.MaxTokens)
		require.NotEmpty(t, req.Messages)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "Cut your subscriptions."}},
			},
		})
	}))
	defer server.Close()

	client := NewClient(config.Assistant{
		AssistantAPIURL:  server.URL,
		AssistantAPIKey:  "test-key",
		AssistantModel:   "gpt-4o-mini",
		AssistantTimeout: 30 * time.Second,
	})

	got, err := client.Complete(context.Background(), []models.ChatMessage{
		{Role: "user", Content: "help"},
	}, "uid-1")

	require.NoError(t, err)
	assert.Equal(t, "Cut your subscriptions.", got)
}

func TestClient_Complete_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "rate limited", "type": "rate_limit_error"},
		})
	}))
	defer server.Close()

	client := NewClient(config.Assistant{
		AssistantAPIURL:  server.URL,
		AssistantAPIKey:  "test-key",
		AssistantModel:   "gpt-4o-mini",
		AssistantTimeout: 30 * time.Second,
	})

	_, err := client.Complete(context.Background(), []models.ChatMessage{{Role: "user", Content: "hi"}}, "uid-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestClient_Complete_NoAPIKey(t *testing.T) {
	client := NewClient(config.Assistant{AssistantAPIURL: "http://localhost", AssistantModel: "gpt-4o-mini"})
	_, err := client.Complete(context.Background(), nil, "uid-1")
	require.Error(t, err)
}
