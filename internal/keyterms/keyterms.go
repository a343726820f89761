// Package keyterms extracts the focus terms of a claim for building
// provider queries when the full claim text is too long or noisy.
package keyterms

import (
	"strings"
	"unicode"
)

// stopwords contains common English words excluded from key-term extraction
var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "is": true, "are": true,
	"was": true, "were": true, "do": true, "does": true, "did": true,
	"have": true, "has": true, "had": true, "be": true, "been": true,
	"being": true, "will": true, "would": true, "could": true, "should": true,
	"may": true, "might": true, "can": true, "shall": true, "not": true,
	"no": true, "and": true, "or": true, "but": true, "if": true,
	"then": true, "than": true, "so": true, "as": true, "at": true,
	"by": true, "for": true, "from": true, "in": true, "into": true,
	"of": true, "on": true, "to": true, "with": true, "about": true,
	"that": true, "this": true, "these": true, "those": true, "there": true,
	"what": true, "which": true, "who": true, "when": true, "where": true,
	"according": true, "says": true, "said": true, "report": true,
	"reports": true, "study": true, "shows": true, "claims": true,
	"because": true, "after": true, "before": true, "during": true,
	"their": true, "they": true, "more": true, "most": true, "some": true,
	"such": true, "also": true, "only": true, "over": true, "under": true,
}

const minTermLength = 4

// Extract returns up to limit key terms from the claim: alphabetic tokens
// of length >= 4 that are not stop words, ordered by first occurrence.
func Extract(claim string, limit int) []string {
	if limit <= 0 {
		limit = 5
	}

	words := strings.FieldsFunc(strings.ToLower(claim), func(r rune) bool {
		return !unicode.IsLetter(r)
	})

	seen := make(map[string]bool)
	var terms []string
	for _, w := range words {
		if len(w) < minTermLength || stopwords[w] || seen[w] {
			continue
		}
		seen[w] = true
		terms = append(terms, w)
		if len(terms) == limit {
			break
		}
	}
	return terms
}

// Query joins key terms into a provider query string. Falls back to the
// raw claim when no term survives extraction.
func Query(claim string, limit int) string {
	terms := Extract(claim, limit)
	if len(terms) == 0 {
		return strings.TrimSpace(claim)
	}
	return strings.Join(terms, " ")
}
