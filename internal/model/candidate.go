package model

import (
	"strings"
	"time"
	"unicode/utf8"
)

// MaxBodyText bounds the stored body text of a candidate
const MaxBodyText = 500

// Candidate represents a single external verification record discovered
// by a source adapter
type Candidate struct {
	SourceName    string     `json:"source_name"`              // Publisher name (e.g., "snopes.com")
	SourceURL     string     `json:"source_url"`               // Full URL of the verification
	Headline      string     `json:"headline"`                 // Article headline or page title
	BodyText      string     `json:"body_text,omitempty"`      // Excerpt, truncated to MaxBodyText
	Verdict       Verdict    `json:"verdict,omitempty"`        // Normalized verdict, empty when none found
	RawScore      int        `json:"raw_score,omitempty"`      // Lexical/domain relevance, 0-100
	SemanticScore int        `json:"semantic_score,omitempty"` // Oracle relevance, 0-100, 0 when unscored
	SourceTier    Tier       `json:"source_tier"`              // Escalation tier that produced it
	Adapter       string     `json:"adapter,omitempty"`        // Adapter name (provenance)
	Quality       Quality    `json:"quality,omitempty"`        // Classifier label, attached post-classification
	PublishDate   *time.Time `json:"publish_date,omitempty"`
}

// Key returns the deduplication identity: the URL when present,
// else the (source, headline) pair.
func (c Candidate) Key() string {
	if c.SourceURL != "" {
		return c.SourceURL
	}
	return c.SourceName + "|" + c.Headline
}

// Score returns the best available relevance signal, preferring the
// semantic score over the lexical one.
func (c Candidate) Score() int {
	if c.SemanticScore > 0 {
		return c.SemanticScore
	}
	return c.RawScore
}

// TruncateBody bounds the candidate's body text, backing off to the
// nearest rune boundary so the cut never leaves invalid UTF-8
func (c *Candidate) TruncateBody() {
	if len(c.BodyText) <= MaxBodyText {
		return
	}
	cut := MaxBodyText
	for cut > 0 && !utf8.RuneStart(c.BodyText[cut]) {
		cut--
	}
	c.BodyText = c.BodyText[:cut]
}

// Verdict is a normalized fact-check verdict
type Verdict string

const (
	VerdictTrue        Verdict = "true"
	VerdictFalse       Verdict = "false"
	VerdictMostlyTrue  Verdict = "mostly-true"
	VerdictMostlyFalse Verdict = "mostly-false"
	VerdictMixed       Verdict = "mixed"
	VerdictMisleading  Verdict = "misleading"
	VerdictUnknown     Verdict = "unknown"
)

// NormalizeVerdict maps free-text verdict strings from providers onto the
// recognized verdict set. Unrecognized non-empty input becomes "unknown".
func NormalizeVerdict(raw string) Verdict {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch s {
	case "":
		return ""
	case "true", "correct", "accurate", "confirmed":
		return VerdictTrue
	case "false", "incorrect", "fake", "debunked", "pants on fire":
		return VerdictFalse
	case "mostly true", "mostly-true":
		return VerdictMostlyTrue
	case "mostly false", "mostly-false":
		return VerdictMostlyFalse
	case "mixed", "mixture", "half true", "half-true":
		return VerdictMixed
	case "misleading", "missing context", "out of context":
		return VerdictMisleading
	default:
		return VerdictUnknown
	}
}

// IsDefinitive reports whether the verdict belongs to the definitive set
// used by the quality classifier.
func (v Verdict) IsDefinitive() bool {
	switch v {
	case VerdictTrue, VerdictFalse, VerdictMostlyTrue, VerdictMostlyFalse, VerdictMisleading:
		return true
	}
	return false
}

// IsRecognized reports whether the verdict is any normalized non-unknown value
func (v Verdict) IsRecognized() bool {
	return v != "" && v != VerdictUnknown
}

// Quality classifies a candidate's evidentiary value
type Quality int

const (
	QualityWeak Quality = iota
	QualityModerate
	QualityStrong
)

func (q Quality) String() string {
	switch q {
	case QualityStrong:
		return "strong"
	case QualityModerate:
		return "moderate"
	default:
		return "weak"
	}
}

// MarshalText implements encoding.TextMarshaler so labels serialize as words
func (q Quality) MarshalText() ([]byte, error) {
	return []byte(q.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (q *Quality) UnmarshalText(b []byte) error {
	switch string(b) {
	case "strong":
		*q = QualityStrong
	case "moderate":
		*q = QualityModerate
	default:
		*q = QualityWeak
	}
	return nil
}

// Tier identifies an escalation stage
type Tier int

const (
	Tier1 Tier = 1 // Domain-filtered broad search
	Tier2 Tier = 2 // Targeted per-site search
	Tier3 Tier = 3 // Verified-media search and deep crawl
)
