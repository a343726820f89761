package model

import "time"

// MatchResult is the engine's output for one claim: the capped, ranked
// candidate list plus aggregate metadata
type MatchResult struct {
	Claim      Claim       `json:"claim"`
	Candidates []Candidate `json:"candidates"`

	TiersUsed           []Tier        `json:"tiers_used"`            // Tiers actually invoked, in order
	QualityAchieved     Quality       `json:"quality_achieved"`      // Highest quality label reached
	TotalCandidatesSeen int           `json:"total_candidates_seen"` // Pre-dedup/cap count
	ElapsedTime         time.Duration `json:"elapsed_time"`          // Wall-clock duration of the lookup
	FromCache           bool          `json:"from_cache"`
	RequestID           string        `json:"request_id,omitempty"`
}

// HasCandidates reports whether any verification was found
func (r *MatchResult) HasCandidates() bool {
	return len(r.Candidates) > 0
}
