package model

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestNormalizeClaim_CollapsesWhitespaceAndCase(t *testing.T) {
	got := NormalizeClaim("  The   Moon\tLanding\n was REAL  ")
	want := "the moon landing was real"
	if got != want {
		t.Errorf("Expected '%s', got '%s'", want, got)
	}
}

func TestNormalizeClaim_EquivalentClaimsShareNormalForm(t *testing.T) {
	a := NewClaim("Vaccines are SAFE")
	b := NewClaim("  vaccines   are safe ")
	if a.Normalized != b.Normalized {
		t.Errorf("Expected equal normal forms, got '%s' and '%s'", a.Normalized, b.Normalized)
	}
}

func TestClaim_IsEmpty(t *testing.T) {
	if !NewClaim("   \t\n ").IsEmpty() {
		t.Error("Expected whitespace-only claim to be empty")
	}
	if NewClaim("x").IsEmpty() {
		t.Error("Expected non-blank claim to not be empty")
	}
}

func TestNormalizeVerdict(t *testing.T) {
	tests := []struct {
		raw  string
		want Verdict
	}{
		{"False", VerdictFalse},
		{"TRUE", VerdictTrue},
		{"Mostly True", VerdictMostlyTrue},
		{"mixture", VerdictMixed},
		{"no rating here", VerdictUnknown},
		{"", Verdict("")},
	}
	for _, tt := range tests {
		if got := NormalizeVerdict(tt.raw); got != tt.want {
			t.Errorf("NormalizeVerdict(%q): expected %q, got %q", tt.raw, tt.want, got)
		}
	}
}

func TestVerdict_IsDefinitive(t *testing.T) {
	definitive := []Verdict{VerdictTrue, VerdictFalse, VerdictMostlyTrue, VerdictMostlyFalse, VerdictMisleading}
	for _, v := range definitive {
		if !v.IsDefinitive() {
			t.Errorf("Expected %q to be definitive", v)
		}
	}
	if VerdictMixed.IsDefinitive() {
		t.Error("Expected mixed to not be definitive")
	}
	if VerdictUnknown.IsDefinitive() {
		t.Error("Expected unknown to not be definitive")
	}
}

func TestCandidate_Key(t *testing.T) {
	withURL := Candidate{SourceURL: "https://snopes.com/fact-check/x", SourceName: "snopes.com", Headline: "X"}
	if withURL.Key() != "https://snopes.com/fact-check/x" {
		t.Errorf("Expected URL key, got '%s'", withURL.Key())
	}

	noURL := Candidate{SourceName: "snopes.com", Headline: "X"}
	if noURL.Key() != "snopes.com|X" {
		t.Errorf("Expected name|headline key, got '%s'", noURL.Key())
	}
}

func TestCandidate_ScorePrefersSemantic(t *testing.T) {
	c := Candidate{RawScore: 30, SemanticScore: 80}
	if c.Score() != 80 {
		t.Errorf("Expected semantic score 80, got %d", c.Score())
	}
	c.SemanticScore = 0
	if c.Score() != 30 {
		t.Errorf("Expected raw score 30, got %d", c.Score())
	}
}

func TestCandidate_TruncateBody(t *testing.T) {
	body := make([]byte, MaxBodyText+100)
	for i := range body {
		body[i] = 'a'
	}
	c := Candidate{BodyText: string(body)}
	c.TruncateBody()
	if len(c.BodyText) != MaxBodyText {
		t.Errorf("Expected body truncated to %d, got %d", MaxBodyText, len(c.BodyText))
	}
}

func TestCandidate_TruncateBodyKeepsValidUTF8(t *testing.T) {
	// A two-byte rune straddling the limit must be dropped whole.
	c := Candidate{BodyText: strings.Repeat("a", MaxBodyText-1) + "é"}
	c.TruncateBody()
	if !utf8.ValidString(c.BodyText) {
		t.Error("Expected valid UTF-8 after truncation")
	}
	if len(c.BodyText) != MaxBodyText-1 {
		t.Errorf("Expected cut at the rune boundary (%d bytes), got %d", MaxBodyText-1, len(c.BodyText))
	}
}
