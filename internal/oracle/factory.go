package oracle

import (
	"fmt"
	"strings"

	"github.com/ppiankov/verimatch/internal/model"
)

// NewOracle creates an oracle based on configuration. An empty provider
// selects the deterministic lexical fallback.
func NewOracle(config model.OracleConfig) (Oracle, error) {
	provider := strings.ToLower(config.Provider)

	switch provider {
	case "openai":
		return NewOpenAIOracle(config)

	case "anthropic", "claude":
		return NewAnthropicOracle(config)

	case "", "lexical":
		return NewLexicalOracle(), nil

	default:
		return nil, fmt.Errorf("unknown oracle provider: %s (supported: openai, anthropic, lexical)", config.Provider)
	}
}
