package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ppiankov/verimatch/internal/model"
)

// AnthropicOracle implements the Oracle interface over Anthropic models
type AnthropicOracle struct {
	apiKey     string
	baseURL    string
	model      string
	maxTokens  int
	httpClient *http.Client
}

// Anthropic API structures
type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Messages    []anthropicMessage `json:"messages"`
	System      string             `json:"system,omitempty"`
	Temperature float64            `json:"temperature,omitempty"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Model string `json:"model"`
}

type anthropicError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// NewAnthropicOracle creates an Anthropic-backed oracle
func NewAnthropicOracle(config model.OracleConfig) (*AnthropicOracle, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required")
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = "https://api.anthropic.com"
	}

	chatModel := config.Model
	if chatModel == "" {
		chatModel = "claude-3-5-haiku-20241022"
	}

	maxTokens := config.MaxTokens
	if maxTokens == 0 {
		maxTokens = 300
	}

	timeout := time.Duration(config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	return &AnthropicOracle{
		apiKey:    config.APIKey,
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		model:     chatModel,
		maxTokens: maxTokens,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Name returns the provider name
func (o *AnthropicOracle) Name() string {
	return "anthropic"
}

// Compare classifies the relation using Anthropic's Messages API
func (o *AnthropicOracle) Compare(ctx context.Context, claim, candidateText string) (*Comparison, error) {
	apiReq := anthropicRequest{
		Model:     o.model,
		MaxTokens: o.maxTokens,
		System:    "You classify the semantic relation between a factual claim and a candidate verification text. Respond only with the requested JSON.",
		Messages: []anthropicMessage{
			{Role: "user", Content: buildPrompt(claim, candidateText)},
		},
		Temperature: 0.1,
	}

	resp, err := o.makeRequest(ctx, apiReq)
	if err != nil {
		return nil, fmt.Errorf("Anthropic API error: %w", err)
	}

	if len(resp.Content) == 0 {
		return nil, fmt.Errorf("no content in Anthropic response")
	}

	return parseComparison(resp.Content[0].Text)
}

// makeRequest makes an HTTP request to the Anthropic API
func (o *AnthropicOracle) makeRequest(ctx context.Context, apiReq anthropicRequest) (*anthropicResponse, error) {
	body, err := json.Marshal(apiReq)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/messages", o.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", o.apiKey)
	httpReq.Header.Set("anthropic-version", "2023-06-01")

	httpResp, err := o.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		var apiErr anthropicError
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("API error (%d): %s - %s", httpResp.StatusCode, apiErr.Error.Type, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("API error (%d): %s", httpResp.StatusCode, string(respBody))
	}

	var resp anthropicResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	return &resp, nil
}
