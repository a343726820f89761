package oracle

import (
	"context"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/ppiankov/verimatch/internal/model"
)

// OpenAIOracle implements the Oracle interface over OpenAI models
type OpenAIOracle struct {
	client *openai.Client
	config model.OracleConfig
}

// NewOpenAIOracle creates an OpenAI-backed oracle
func NewOpenAIOracle(config model.OracleConfig) (*OpenAIOracle, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &OpenAIOracle{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Name returns the provider name
func (o *OpenAIOracle) Name() string {
	return "openai"
}

// Compare classifies the relation using OpenAI's Chat Completions API
func (o *OpenAIOracle) Compare(ctx context.Context, claim, candidateText string) (*Comparison, error) {
	chatModel := o.config.Model
	if chatModel == "" {
		chatModel = openai.GPT4oMini
	}

	maxTokens := o.config.MaxTokens
	if maxTokens == 0 {
		maxTokens = 300
	}

	timeout := time.Duration(o.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	chatReq := openai.ChatCompletionRequest{
		Model: chatModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You classify the semantic relation between a factual claim and a candidate verification text. Respond only with the requested JSON.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildPrompt(claim, candidateText),
			},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.1, // Classification, not generation
	}

	resp, err := o.client.CreateChatCompletion(ctxWithTimeout, chatReq)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	return parseComparison(resp.Choices[0].Message.Content)
}
