package oracle

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ppiankov/verimatch/internal/model"
)

func TestAnthropicOracle_Compare_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("Expected path /v1/messages, got %s", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("Expected x-api-key header test-key, got %s", r.Header.Get("x-api-key"))
		}
		if r.Header.Get("anthropic-version") == "" {
			t.Error("Expected anthropic-version header")
		}

		resp := anthropicResponse{
			Model: "claude-3-5-haiku-20241022",
			Content: []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			}{
				{Type: "text", Text: `{"relation": "equivalent", "confidence": "medium"}`},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	oracle, err := NewAnthropicOracle(model.OracleConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Timeout: 5,
	})
	if err != nil {
		t.Fatalf("Failed to create oracle: %v", err)
	}

	cmp, err := oracle.Compare(context.Background(), "claim text", "candidate text")
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}

	if cmp.Relation != RelationEquivalent {
		t.Errorf("Expected equivalent, got %s", cmp.Relation)
	}
	if cmp.Confidence != ConfidenceMedium {
		t.Errorf("Expected medium confidence, got %s", cmp.Confidence)
	}
}

func TestAnthropicOracle_Compare_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"type": "invalid_request_error", "message": "bad request"},
		})
	}))
	defer server.Close()

	oracle, err := NewAnthropicOracle(model.OracleConfig{APIKey: "test-key", BaseURL: server.URL, Timeout: 5})
	if err != nil {
		t.Fatalf("Failed to create oracle: %v", err)
	}

	if _, err := oracle.Compare(context.Background(), "claim", "text"); err == nil {
		t.Error("Expected error from API failure")
	}
}

func TestNewAnthropicOracle_RequiresKey(t *testing.T) {
	if _, err := NewAnthropicOracle(model.OracleConfig{}); err == nil {
		t.Error("Expected error for missing API key")
	}
}
