// Package lexical provides cheap token-based similarity scores on a
// 0-100 scale, used for candidate relevance ranking and as the
// deterministic fallback when the semantic oracle is unavailable.
package lexical

import (
	"strings"
	"unicode"
)

// tokenSet splits text into a set of lowercase alphanumeric tokens
func tokenSet(text string) map[string]bool {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	set := make(map[string]bool, len(words))
	for _, w := range words {
		if len(w) >= 2 {
			set[w] = true
		}
	}
	return set
}

// TokenSetRatio scores how much of the smaller token set is contained in
// the larger one, 0-100. A short title that repeats the claim's terms
// scores high even when the claim carries extra words.
func TokenSetRatio(a, b string) int {
	sa, sb := tokenSet(a), tokenSet(b)
	if len(sa) == 0 || len(sb) == 0 {
		return 0
	}

	small, large := sa, sb
	if len(sb) < len(sa) {
		small, large = sb, sa
	}

	shared := 0
	for t := range small {
		if large[t] {
			shared++
		}
	}
	return shared * 100 / len(small)
}

// Jaccard scores token overlap as intersection over union, 0-100
func Jaccard(a, b string) int {
	sa, sb := tokenSet(a), tokenSet(b)
	if len(sa) == 0 && len(sb) == 0 {
		return 0
	}

	shared := 0
	for t := range sa {
		if sb[t] {
			shared++
		}
	}
	union := len(sa) + len(sb) - shared
	if union == 0 {
		return 0
	}
	return shared * 100 / union
}
