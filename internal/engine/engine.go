// Package engine orchestrates a claim lookup across escalating source
// tiers, re-scores ambiguous candidates through the semantic oracle,
// and combines everything into one ranked result.
package engine

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ppiankov/verimatch/internal/adapter"
	"github.com/ppiankov/verimatch/internal/cache"
	"github.com/ppiankov/verimatch/internal/classify"
	"github.com/ppiankov/verimatch/internal/lexical"
	"github.com/ppiankov/verimatch/internal/model"
	"github.com/ppiankov/verimatch/internal/oracle"
	"github.com/ppiankov/verimatch/internal/provider"
)

// ErrInvalidClaim is returned for empty or whitespace-only claims. It is
// the only hard input error; provider and cache failures degrade softly.
var ErrInvalidClaim = errors.New("claim is empty")

// maxOracleCalls bounds semantic re-scoring per lookup so a noisy tier
// cannot blow the cost budget
const maxOracleCalls = 8

// Deps carries the external dependencies the engine wires into its
// standard adapter stack.
type Deps struct {
	Store  *cache.ResultStore // nil disables result caching
	Search provider.SearchProvider
	Crawl  provider.CrawlProvider // nil disables the deep crawl
	Oracle oracle.Oracle
}

// Adapters is the per-tier adapter set, injectable for testing
type Adapters struct {
	Tier1 []adapter.SourceAdapter
	Tier2 []adapter.SourceAdapter
	Tier3 []adapter.SourceAdapter // verified-media search
	Crawl adapter.SourceAdapter   // deep crawl, nil to disable
}

// Engine runs the tiered escalation for one claim at a time. It is safe
// for concurrent use.
type Engine struct {
	cfg        *model.Config
	store      *cache.ResultStore
	adapters   Adapters
	oracle     oracle.Oracle
	classifier *classify.Classifier
	combiner   *Combiner
}

// New builds an engine with the standard adapter stack: broad search at
// tier 1, per-site search at tier 2, verified-media search plus the
// deep crawl at tier 3.
func New(cfg *model.Config, deps Deps) *Engine {
	adapters := Adapters{
		Tier1: []adapter.SourceAdapter{adapter.NewBroadSearch(deps.Search, cfg)},
		Tier2: []adapter.SourceAdapter{adapter.NewSiteSearch(deps.Search, cfg)},
		Tier3: []adapter.SourceAdapter{adapter.NewVerifiedMediaSearch(deps.Search, cfg)},
	}
	if deps.Crawl != nil {
		adapters.Crawl = adapter.NewCrawlMatch(deps.Crawl, cfg)
	}
	return NewWithAdapters(cfg, deps.Store, deps.Oracle, adapters)
}

// NewWithAdapters builds an engine around an explicit adapter set
func NewWithAdapters(cfg *model.Config, store *cache.ResultStore, orc oracle.Oracle, adapters Adapters) *Engine {
	classifier := classify.NewClassifier(cfg)
	return &Engine{
		cfg:        cfg,
		store:      store,
		adapters:   adapters,
		oracle:     orc,
		classifier: classifier,
		combiner:   NewCombiner(classifier, cfg.Match.MaxCandidates),
	}
}

// matchRun accumulates state for a single lookup
type matchRun struct {
	claim       model.Claim
	candidates  []model.Candidate
	tiersUsed   []model.Tier
	summary     classify.Summary
	quality     model.Quality
	oracleCalls int
	tier3Found  int // candidates produced by tier 3 adapters
}

// Match looks up prior verifications for the claim. It always returns a
// well-formed result unless the claim is invalid or the caller cancels;
// budget exhaustion finalizes with whatever partial candidates exist.
func (e *Engine) Match(ctx context.Context, text string) (*model.MatchResult, error) {
	claim := model.NewClaim(text)
	if claim.IsEmpty() {
		return nil, ErrInvalidClaim
	}

	start := time.Now()
	if cached, found := e.store.Get(claim); found {
		cached.FromCache = true
		cached.ElapsedTime = time.Since(start)
		return cached, nil
	}

	budgetCtx, cancel := context.WithTimeout(ctx, e.cfg.Match.Budget)
	defer cancel()

	run := &matchRun{claim: claim}
	for state := StateInit; state != StateDone; {
		if err := ctx.Err(); err != nil {
			// Caller cancellation, distinct from budget expiry on
			// budgetCtx, aborts the lookup outright.
			return nil, err
		}
		if budgetCtx.Err() != nil {
			break
		}
		state = e.transition(budgetCtx, state, run)
	}

	result := e.combiner.Combine(run)
	result.RequestID = uuid.NewString()
	result.ElapsedTime = time.Since(start)
	e.store.Put(claim, result)
	return result, nil
}

// transition performs the work of one state and returns the next. Each
// escalation decision lives here and nowhere else.
func (e *Engine) transition(ctx context.Context, state State, run *matchRun) State {
	switch state {
	case StateInit:
		return StateTier1Running

	case StateTier1Running:
		run.collect(model.Tier1, e.runTier(ctx, run.claim, e.adapters.Tier1))
		return StateTier1Evaluated

	case StateTier1Evaluated:
		e.rescore(ctx, run)
		run.summary = e.classifier.Summarize(run.candidates)
		switch {
		case run.summary.HasStrong:
			run.quality = model.QualityStrong
			return StateDone
		case run.summary.HasModerate:
			return StateTier2Running
		default:
			return StateTier3Running
		}

	case StateTier2Running:
		run.collect(model.Tier2, e.runTier(ctx, run.claim, e.adapters.Tier2))
		return StateTier2Evaluated

	case StateTier2Evaluated:
		e.rescore(ctx, run)
		run.summary = e.classifier.Summarize(run.candidates)
		if run.summary.HasStrong {
			run.quality = model.QualityStrong
		} else {
			run.quality = model.QualityModerate
		}
		return StateDone

	case StateTier3Running:
		adapters := run.tier3Adapters(e)
		found := e.runTier(ctx, run.claim, adapters)
		run.tier3Found = len(found)
		run.collect(model.Tier3, found)
		return StateTier3Evaluated

	case StateTier3Evaluated:
		e.rescore(ctx, run)
		run.summary = e.classifier.Summarize(run.candidates)
		switch {
		case run.summary.HasStrong:
			run.quality = model.QualityStrong
		case run.summary.HasModerate || run.tier3Found > 0:
			run.quality = model.QualityModerate
		default:
			run.quality = model.QualityWeak
		}
		return StateDone

	default:
		return StateDone
	}
}

// tier3Adapters returns the verified-media set, adding the deep crawl
// only when every earlier tier came back completely empty
func (r *matchRun) tier3Adapters(e *Engine) []adapter.SourceAdapter {
	adapters := e.adapters.Tier3
	if len(r.candidates) == 0 && e.adapters.Crawl != nil {
		adapters = append(append([]adapter.SourceAdapter{}, adapters...), e.adapters.Crawl)
	}
	return adapters
}

// collect merges a tier's candidates into the run
func (r *matchRun) collect(tier model.Tier, found []model.Candidate) {
	r.tiersUsed = append(r.tiersUsed, tier)
	r.candidates = append(r.candidates, found...)
}

// runTier fans out one tier's adapters under the aggregate tier timeout.
// Adapters never error: a failed adapter contributes zero candidates, and
// an adapter that ignores its context is abandoned at the deadline so one
// stuck provider cannot wedge the whole lookup.
func (e *Engine) runTier(ctx context.Context, claim model.Claim, adapters []adapter.SourceAdapter) []model.Candidate {
	if len(adapters) == 0 {
		return nil
	}

	tierCtx, cancel := context.WithTimeout(ctx, e.cfg.Match.TierTimeout)
	defer cancel()

	// Buffered so abandoned goroutines can still send and exit
	results := make(chan []model.Candidate, len(adapters))
	sem := make(chan struct{}, e.cfg.Concurrency.TierWorkers)

	for _, a := range adapters {
		go func(a adapter.SourceAdapter) {
			select {
			case <-tierCtx.Done():
				results <- nil
				return
			case sem <- struct{}{}:
			}
			defer func() { <-sem }()
			results <- a.FetchCandidates(tierCtx, claim)
		}(a)
	}

	var out []model.Candidate
	for range adapters {
		select {
		case found := <-results:
			out = append(out, found...)
		case <-tierCtx.Done():
			return out
		}
	}
	return out
}

// rescore asks the oracle about candidates whose lexical score is
// ambiguous and which carry no recognized verdict. On oracle failure
// the lexical similarity of claim and body stands in.
func (e *Engine) rescore(ctx context.Context, run *matchRun) {
	if e.oracle == nil {
		return
	}
	for i := range run.candidates {
		if run.oracleCalls >= maxOracleCalls {
			return
		}
		c := &run.candidates[i]
		if c.SemanticScore > 0 || c.Verdict.IsRecognized() {
			continue
		}
		if c.RawScore > e.cfg.Match.StrongThreshold {
			continue
		}

		run.oracleCalls++
		text := c.Headline
		if c.BodyText != "" {
			text += "\n" + c.BodyText
		}
		cmp, err := e.oracle.Compare(ctx, run.claim.Text, text)
		if err != nil || cmp == nil {
			c.SemanticScore = lexical.Jaccard(run.claim.Normalized, text)
			continue
		}
		c.SemanticScore = cmp.Score()
	}
}
