package oracle

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ppiankov/verimatch/internal/model"
	"github.com/sashabaranov/go-openai"
)

func TestOpenAIOracle_Compare_Success(t *testing.T) {
	// Mock server
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Verify request
		if r.URL.Path != "/chat/completions" {
			t.Errorf("Expected path /chat/completions, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("Expected Authorization header Bearer test-key, got %s", r.Header.Get("Authorization"))
		}

		resp := openai.ChatCompletionResponse{
			ID:     "chatcmpl-123",
			Object: "chat.completion",
			Model:  "gpt-4o-mini",
			Choices: []openai.ChatCompletionChoice{
				{
					Index: 0,
					Message: openai.ChatCompletionMessage{
						Role:    "assistant",
						Content: `{"relation": "contradictory", "confidence": "high", "explanation": "the fact-check refutes the claim"}`,
					},
					FinishReason: "stop",
				},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	config := model.OracleConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "gpt-4o-mini",
		Timeout: 5,
	}
	oracle, err := NewOpenAIOracle(config)
	if err != nil {
		t.Fatalf("Failed to create oracle: %v", err)
	}

	cmp, err := oracle.Compare(context.Background(), "the moon landing was faked", "Moon landing conspiracy theories debunked")
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}

	if cmp.Relation != RelationContradictory {
		t.Errorf("Expected contradictory, got %s", cmp.Relation)
	}
	if cmp.Score() != 85 {
		t.Errorf("Expected score 85, got %d", cmp.Score())
	}
}

func TestOpenAIOracle_Compare_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	oracle, err := NewOpenAIOracle(model.OracleConfig{APIKey: "test-key", BaseURL: server.URL, Timeout: 5})
	if err != nil {
		t.Fatalf("Failed to create oracle: %v", err)
	}

	if _, err := oracle.Compare(context.Background(), "claim", "text"); err == nil {
		t.Error("Expected error from failing server")
	}
}

func TestOpenAIOracle_Compare_UnparseableContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Role: "assistant", Content: "I refuse to answer in JSON."}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	oracle, err := NewOpenAIOracle(model.OracleConfig{APIKey: "test-key", BaseURL: server.URL, Timeout: 5})
	if err != nil {
		t.Fatalf("Failed to create oracle: %v", err)
	}

	if _, err := oracle.Compare(context.Background(), "claim", "text"); err == nil {
		t.Error("Expected error for unparseable oracle response")
	}
}

func TestNewOpenAIOracle_RequiresKey(t *testing.T) {
	if _, err := NewOpenAIOracle(model.OracleConfig{}); err == nil {
		t.Error("Expected error for missing API key")
	}
}
