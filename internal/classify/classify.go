// Package classify assigns quality labels to candidate verifications and
// summarizes a candidate set for escalation decisions.
package classify

import (
	"net/url"
	"strings"

	"github.com/ppiankov/verimatch/internal/model"
)

// Classifier maps candidates to quality tiers based on relevance score,
// source authority, and verdict presence. Classification is pure: the
// same candidate always yields the same label.
type Classifier struct {
	verifierMap   map[string]bool
	strongFloor   int
	moderateFloor int
}

// NewClassifier creates a classifier from the curated major-verifier
// allow-list and score thresholds
func NewClassifier(cfg *model.Config) *Classifier {
	verifierMap := make(map[string]bool, len(cfg.Sources.MajorVerifiers))
	for _, domain := range cfg.Sources.MajorVerifiers {
		verifierMap[domain] = true
	}

	return &Classifier{
		verifierMap:   verifierMap,
		strongFloor:   cfg.Match.StrongThreshold,
		moderateFloor: cfg.Match.ModerateThresh,
	}
}

// Classify returns the quality label for a candidate:
// strong requires a high relevance score, a major-verifier source, and a
// definitive verdict; moderate requires a useful score and either of the
// other two signals; everything else is weak.
func (c *Classifier) Classify(candidate model.Candidate) model.Quality {
	score := candidate.Score()
	major := c.IsMajorVerifier(candidate)

	if score > c.strongFloor && major && candidate.Verdict.IsDefinitive() {
		return model.QualityStrong
	}
	if score > c.moderateFloor && (major || candidate.Verdict.IsRecognized()) {
		return model.QualityModerate
	}
	return model.QualityWeak
}

// IsMajorVerifier checks the candidate's source against the curated
// allow-list, matching subdomains as well (fact-check.example.org
// matches example.org).
func (c *Classifier) IsMajorVerifier(candidate model.Candidate) bool {
	host := candidate.SourceName
	if candidate.SourceURL != "" {
		if parsed, err := url.Parse(candidate.SourceURL); err == nil && parsed.Host != "" {
			host = parsed.Host
		}
	}

	host = strings.TrimPrefix(strings.ToLower(host), "www.")
	if idx := strings.Index(host, ":"); idx > 0 {
		host = host[:idx]
	}

	if c.verifierMap[host] {
		return true
	}
	for domain := range c.verifierMap {
		if strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

// Summary groups a candidate set by quality label
type Summary struct {
	HasStrong   bool
	HasModerate bool
	Strong      []model.Candidate
	Moderate    []model.Candidate
	Weak        []model.Candidate
}

// Summarize labels every candidate and groups them by quality. The
// orchestrator uses the result to decide whether to escalate.
func (c *Classifier) Summarize(candidates []model.Candidate) Summary {
	var s Summary
	for _, candidate := range candidates {
		candidate.Quality = c.Classify(candidate)
		switch candidate.Quality {
		case model.QualityStrong:
			s.Strong = append(s.Strong, candidate)
		case model.QualityModerate:
			s.Moderate = append(s.Moderate, candidate)
		default:
			s.Weak = append(s.Weak, candidate)
		}
	}
	s.HasStrong = len(s.Strong) > 0
	s.HasModerate = len(s.Moderate) > 0
	return s
}
