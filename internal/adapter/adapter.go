// Package adapter implements the source adapters the escalation
// orchestrator sequences. Every adapter fails soft: provider errors,
// non-2xx responses, and per-call timeouts degrade to zero candidates
// and a stderr warning, never an error to the caller.
package adapter

import (
	"context"
	"net/url"
	"strings"

	"github.com/ppiankov/verimatch/internal/model"
)

// SourceAdapter exposes a uniform "fetch candidates for claim" capability.
// Cost and latency profiles differ per adapter; the orchestrator groups
// them into tiers accordingly.
type SourceAdapter interface {
	// Name identifies the adapter in provenance tags
	Name() string

	// Tier returns the escalation tier this adapter belongs to
	Tier() model.Tier

	// FetchCandidates returns candidate verifications for the claim.
	// It never returns an error: failures degrade to an empty slice.
	FetchCandidates(ctx context.Context, claim model.Claim) []model.Candidate
}

// verdictKeywords maps verdict keywords to normalized verdicts.
// Scanned in order; first match wins.
var verdictKeywords = []struct {
	keyword string
	verdict model.Verdict
}{
	{"false", model.VerdictFalse},
	{"true", model.VerdictTrue},
	{"mixed", model.VerdictMixed},
	{"misleading", model.VerdictMisleading},
	{"debunked", model.VerdictFalse},
	{"confirmed", model.VerdictTrue},
}

// ExtractVerdict scans free text for verdict keywords, case-insensitive,
// first match wins. Returns the empty verdict when nothing matches.
func ExtractVerdict(text string) model.Verdict {
	lower := strings.ToLower(text)
	for _, vk := range verdictKeywords {
		if strings.Contains(lower, vk.keyword) {
			return vk.verdict
		}
	}
	return ""
}

// sourceName derives a publisher name from a result URL
func sourceName(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return rawURL
	}
	return strings.TrimPrefix(parsed.Host, "www.")
}
