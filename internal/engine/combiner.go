package engine

import (
	"github.com/ppiankov/verimatch/internal/classify"
	"github.com/ppiankov/verimatch/internal/model"
)

// Combiner deduplicates, orders, and caps the merged candidate set into
// the final result
type Combiner struct {
	classifier *classify.Classifier
	cap        int
}

// NewCombiner creates a combiner with the given output cap
func NewCombiner(classifier *classify.Classifier, limit int) *Combiner {
	return &Combiner{classifier: classifier, cap: limit}
}

// Combine builds the final MatchResult from an accumulated run.
// Duplicates collapse to their highest-quality occurrence; ordering is
// strong, then moderate, then weak, stable within each group.
func (c *Combiner) Combine(run *matchRun) *model.MatchResult {
	labeled := make([]model.Candidate, len(run.candidates))
	for i, candidate := range run.candidates {
		candidate.Quality = c.classifier.Classify(candidate)
		candidate.TruncateBody()
		labeled[i] = candidate
	}

	deduped := dedupe(labeled)

	ordered := make([]model.Candidate, 0, len(deduped))
	for _, want := range []model.Quality{model.QualityStrong, model.QualityModerate, model.QualityWeak} {
		for _, candidate := range deduped {
			if candidate.Quality == want {
				ordered = append(ordered, candidate)
			}
		}
	}
	if len(ordered) > c.cap {
		ordered = ordered[:c.cap]
	}

	return &model.MatchResult{
		Claim:               run.claim,
		Candidates:          ordered,
		TiersUsed:           run.tiersUsed,
		QualityAchieved:     run.quality,
		TotalCandidatesSeen: len(run.candidates),
	}
}

// dedupe collapses candidates sharing a key, keeping the best-quality
// occurrence (earliest wins a tie) and preserving first-seen order
func dedupe(candidates []model.Candidate) []model.Candidate {
	index := make(map[string]int, len(candidates))
	out := make([]model.Candidate, 0, len(candidates))
	for _, candidate := range candidates {
		key := candidate.Key()
		if at, seen := index[key]; seen {
			if candidate.Quality > out[at].Quality {
				out[at] = candidate
			}
			continue
		}
		index[key] = len(out)
		out = append(out, candidate)
	}
	return out
}
