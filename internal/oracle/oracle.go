// Package oracle provides semantic comparison between a claim and a
// candidate's text, backed by an external LLM service with a
// deterministic lexical fallback.
package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Relation classifies how a candidate's text relates to the claim
type Relation string

const (
	RelationEquivalent    Relation = "equivalent"
	RelationContradictory Relation = "contradictory"
	RelationRelated       Relation = "related"
	RelationTangential    Relation = "tangential"
	RelationUnrelated     Relation = "unrelated"
)

// Confidence expresses how sure the oracle is of its classification
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Comparison is the oracle's judgment on one claim/candidate pair
type Comparison struct {
	Relation    Relation   `json:"relation"`
	Confidence  Confidence `json:"confidence"`
	Explanation string     `json:"explanation,omitempty"`
}

// Score maps the comparison onto the 0-100 relevance scale used for
// candidate ranking. A contradictory match still scores high: a
// fact-check refuting the claim is a strong verification signal.
func (c *Comparison) Score() int {
	var base int
	switch c.Relation {
	case RelationEquivalent:
		base = 95
	case RelationContradictory:
		base = 85
	case RelationRelated:
		base = 60
	case RelationTangential:
		base = 30
	default:
		base = 5
	}

	switch c.Confidence {
	case ConfidenceHigh:
		return base
	case ConfidenceMedium:
		return base * 8 / 10
	default:
		return base / 2
	}
}

// Unrelated is the fail-soft comparison returned when a provider errors
// or answers with something unusable
func Unrelated() *Comparison {
	return &Comparison{Relation: RelationUnrelated, Confidence: ConfidenceLow}
}

// Oracle scores the semantic relation between a claim and candidate text
type Oracle interface {
	// Name returns the provider name
	Name() string

	// Compare classifies the relation between the claim and the text
	Compare(ctx context.Context, claim, candidateText string) (*Comparison, error)
}

// buildPrompt constructs the comparison prompt sent to LLM providers
func buildPrompt(claim, candidateText string) string {
	return fmt.Sprintf(`Compare the CLAIM against the CANDIDATE text from a fact-checking source.

CLAIM: %s

CANDIDATE: %s

Classify the relation as exactly one of: equivalent, contradictory, related, tangential, unrelated.
- equivalent: the candidate addresses the same factual assertion
- contradictory: the candidate directly disputes the assertion
- related: the candidate covers the same topic and touches the assertion
- tangential: same topic, different assertion
- unrelated: different topic

Respond with ONLY a JSON object:
{"relation": "...", "confidence": "high|medium|low", "explanation": "one sentence"}`, claim, candidateText)
}

// parseComparison extracts the JSON judgment from an LLM response,
// tolerating surrounding prose and code fences
func parseComparison(raw string) (*Comparison, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in response")
	}

	var c Comparison
	if err := json.Unmarshal([]byte(raw[start:end+1]), &c); err != nil {
		return nil, fmt.Errorf("unmarshal comparison: %w", err)
	}

	switch c.Relation {
	case RelationEquivalent, RelationContradictory, RelationRelated, RelationTangential, RelationUnrelated:
	default:
		return nil, fmt.Errorf("unknown relation: %q", c.Relation)
	}

	switch c.Confidence {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
	default:
		c.Confidence = ConfidenceLow
	}

	return &c, nil
}
