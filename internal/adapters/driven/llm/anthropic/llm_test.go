package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/counterline-labs/shoptalk/internal/core/domain"
	"github.com/counterline-labs/shoptalk/internal/core/ports/driven"
)

func TestNewLLMService_RequiresAPIKey(t *testing.T) {
	_, err := NewLLMService(Config{})
	assert.Error(t, err)
}

func TestChat_SystemPromptAndText(t *testing.T) {
	var gotReq map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "sk-ant-test", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]any{
				{"type": "text", "text": "Our smartphone costs 3999."},
			},
			"stop_reason": "end_turn",
		})
	}))
	defer server.Close()

	svc, err := NewLLMService(Config{APIKey: "sk-ant-test", BaseURL: server.URL})
	require.NoError(t, err)

	reply, err := svc.Chat(context.Background(), []driven.ChatMessage{
		{Role: "system", Content: "You are a shopping assistant."},
		{Role: "user", Content: "How much is the smartphone?"},
	}, driven.ChatOptions{})
	require.NoError(t, err)

	assert.Equal(t, "Our smartphone costs 3999.", reply.Content)
	assert.Empty(t, reply.ToolCalls)

	// System turn must be hoisted out of the message list.
	assert.Equal(t, "You are a shopping assistant.", gotReq["system"])
	messages := gotReq["messages"].([]any)
	require.Len(t, messages, 1)
	// max_tokens is mandatory, so a default is applied.
	assert.EqualValues(t, defaultMaxTokens, gotReq["max_tokens"])
}

func TestChat_ToolUse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		tools := req["tools"].([]any)
		require.Len(t, tools, 1)
		tool := tools[0].(map[string]any)
		assert.Equal(t, "search_products", tool["name"])
		assert.NotNil(t, tool["input_schema"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]any{
				{"type": "text", "text": "Let me check."},
				{
					"type":  "tool_use",
					"id":    "toolu_1",
					"name":  "search_products",
					"input": map[string]any{"query": "earbuds"},
				},
			},
			"stop_reason": "tool_use",
		})
	}))
	defer server.Close()

	svc, err := NewLLMService(Config{APIKey: "sk-ant-test", BaseURL: server.URL})
	require.NoError(t, err)

	reply, err := svc.Chat(context.Background(), []driven.ChatMessage{
		{Role: "user", Content: "got earbuds?"},
	}, driven.ChatOptions{
		Tools: []driven.ToolDef{
			{Name: "search_products", Parameters: map[string]any{"type": "object"}},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Let me check.", reply.Content)
	require.Len(t, reply.ToolCalls, 1)
	assert.Equal(t, "toolu_1", reply.ToolCalls[0].ID)
	assert.Equal(t, "search_products", reply.ToolCalls[0].Name)
	assert.JSONEq(t, `{"query":"earbuds"}`, reply.ToolCalls[0].Arguments)
}

func TestChat_ReplaysToolRoundTrip(t *testing.T) {
	var gotReq struct {
		Messages []messagesMessage `json:"messages"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]any{
				{"type": "text", "text": "It is in stock."},
			},
		})
	}))
	defer server.Close()

	svc, err := NewLLMService(Config{APIKey: "sk-ant-test", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = svc.Chat(context.Background(), []driven.ChatMessage{
		{Role: "user", Content: "is the laptop in stock?"},
		{
			Role: "assistant",
			ToolCalls: []domain.ToolCall{
				{ID: "toolu_1", Name: "get_product_details", Arguments: `{"product_id":"1"}`},
			},
		},
		{Role: "tool", ToolCallID: "toolu_1", Content: `{"id":"1","stock":10}`},
	}, driven.ChatOptions{})
	require.NoError(t, err)

	require.Len(t, gotReq.Messages, 3)

	// The assistant turn carries a tool_use block.
	assistantBlocks, err := json.Marshal(gotReq.Messages[1].Content)
	require.NoError(t, err)
	assert.Contains(t, string(assistantBlocks), `"tool_use"`)
	assert.Contains(t, string(assistantBlocks), `"toolu_1"`)

	// The tool result rides on a user turn.
	assert.Equal(t, "user", gotReq.Messages[2].Role)
	resultBlocks, err := json.Marshal(gotReq.Messages[2].Content)
	require.NoError(t, err)
	assert.Contains(t, string(resultBlocks), `"tool_result"`)
}

func TestChat_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"type": "authentication_error", "message": "invalid x-api-key"},
		})
	}))
	defer server.Close()

	svc, err := NewLLMService(Config{APIKey: "sk-ant-bad", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = svc.Chat(context.Background(), []driven.ChatMessage{{Role: "user", Content: "hi"}}, driven.ChatOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid x-api-key")
}

func TestGenerate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]any{
				{"type": "text", "text": "generated"},
			},
		})
	}))
	defer server.Close()

	svc, err := NewLLMService(Config{APIKey: "sk-ant-test", BaseURL: server.URL})
	require.NoError(t, err)

	out, err := svc.Generate(context.Background(), "say something", driven.GenerateOptions{})
	require.NoError(t, err)
	assert.Equal(t, "generated", out)
}

func TestPing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/models", r.URL.Path)
		assert.Equal(t, "sk-ant-test", r.Header.Get("x-api-key"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	svc, err := NewLLMService(Config{APIKey: "sk-ant-test", BaseURL: server.URL})
	require.NoError(t, err)
	assert.NoError(t, svc.Ping(context.Background()))
}
