package model

import "strings"

// Claim represents the factual assertion being checked
type Claim struct {
	Text       string `json:"text"`       // The claim text as received
	Normalized string `json:"normalized"` // Lowercased, whitespace-collapsed form
}

// NewClaim creates a claim with its normalized form derived.
// Two claims with equal normalized text are interchangeable.
func NewClaim(text string) Claim {
	return Claim{
		Text:       text,
		Normalized: NormalizeClaim(text),
	}
}

// NormalizeClaim lowercases the claim and collapses runs of whitespace.
// The normalized form is used for cache keying and lexical comparison.
func NormalizeClaim(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// IsEmpty reports whether the claim has no usable content
func (c Claim) IsEmpty() bool {
	return c.Normalized == ""
}
