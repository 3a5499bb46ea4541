package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JelteF/pg-human/internal/config"
	pgherrors "github.com/JelteF/pg-human/internal/errors"
)

// completionsStub serves a fixed chat-completions response and records the
// request so tests can assert on what was sent over the wire.
func completionsStub(t *testing.T, content string, gotReq *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(gotReq))

		w.Header().Set("Content-Type", "application/json")
		resp := map[string]any{
			"id":     "chatcmpl-test",
			"object": "chat.completion",
			"model":  "gpt-4o-mini",
			"choices": []map[string]any{
				{
					"index":         0,
					"finish_reason": "stop",
					"message":       map[string]any{"role": "assistant", "content": content},
				},
			},
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

func customConfig(baseURL string) config.Config {
	cfg := config.Default()
	cfg.Provider = config.ProviderCustom
	cfg.BaseURL = baseURL
	return cfg
}

func TestOpenAIClient_Complete(t *testing.T) {
	var gotReq map[string]any
	srv := completionsStub(t, "```sql\nSELECT 1;\n```", &gotReq)
	defer srv.Close()

	client := NewOpenAIClient(customConfig(srv.URL), "sk-test")
	out, err := client.Complete(context.Background(), []Message{
		{Role: RoleSystem, Content: "You are a PostgreSQL expert"},
		{Role: RoleUser, Content: "count the users"},
	})
	require.NoError(t, err)
	assert.Equal(t, "```sql\nSELECT 1;\n```", out)

	assert.Equal(t, "gpt-4o-mini", gotReq["model"])
	msgs, ok := gotReq["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 2)
	first, ok := msgs[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "system", first["role"])
}

func TestOpenAIClient_Complete_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	client := NewOpenAIClient(customConfig(srv.URL), "sk-wrong")
	_, err := client.Complete(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})
	require.Error(t, err)
	assert.True(t, pgherrors.IsKind(err, pgherrors.CompletionFailed))
}

func TestOpenAIClient_Complete_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"chatcmpl-test","object":"chat.completion","choices":[]}`))
	}))
	defer srv.Close()

	client := NewOpenAIClient(customConfig(srv.URL), "sk-test")
	_, err := client.Complete(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})
	require.Error(t, err)
	assert.True(t, pgherrors.IsKind(err, pgherrors.CompletionFailed))
}
