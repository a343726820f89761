package oracle

import (
	"context"

	"github.com/ppiankov/verimatch/internal/lexical"
)

// LexicalOracle is the deterministic local fallback: it never fails and
// requires no external service, so tests and offline deployments work
// without a live provider.
type LexicalOracle struct{}

// NewLexicalOracle creates the lexical fallback oracle
func NewLexicalOracle() *LexicalOracle {
	return &LexicalOracle{}
}

// Name returns the provider name
func (o *LexicalOracle) Name() string {
	return "lexical"
}

// Compare derives a relation from word-overlap Jaccard similarity.
// Confidence is always low: token overlap cannot distinguish agreement
// from contradiction.
func (o *LexicalOracle) Compare(ctx context.Context, claim, candidateText string) (*Comparison, error) {
	score := lexical.Jaccard(claim, candidateText)

	var relation Relation
	switch {
	case score >= 70:
		relation = RelationEquivalent
	case score >= 40:
		relation = RelationRelated
	case score >= 15:
		relation = RelationTangential
	default:
		relation = RelationUnrelated
	}

	return &Comparison{
		Relation:   relation,
		Confidence: ConfidenceLow,
	}, nil
}
