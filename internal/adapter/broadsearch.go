package adapter

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ppiankov/verimatch/internal/keyterms"
	"github.com/ppiankov/verimatch/internal/lexical"
	"github.com/ppiankov/verimatch/internal/model"
	"github.com/ppiankov/verimatch/internal/provider"
)

// BroadSearch queries a general search capability restricted to a fixed
// allow-list of domains and interprets free-text results into candidates
// with heuristic verdict extraction. Used both for the Tier-1
// fact-checker search and the Tier-3 verified-media search.
type BroadSearch struct {
	name     string
	tier     model.Tier
	search   provider.SearchProvider
	domains  []string
	limit    int
	keyTerms int
	timeout  time.Duration
}

// NewBroadSearch creates the Tier-1 fact-checker domain search
func NewBroadSearch(search provider.SearchProvider, cfg *model.Config) *BroadSearch {
	return &BroadSearch{
		name:     "broad-search",
		tier:     model.Tier1,
		search:   search,
		domains:  cfg.Sources.Tier1Domains,
		limit:    cfg.Match.SearchLimit,
		keyTerms: cfg.Match.KeyTerms,
		timeout:  cfg.Match.PerCallTimeout,
	}
}

// NewVerifiedMediaSearch creates the Tier-3 verified-media domain search
func NewVerifiedMediaSearch(search provider.SearchProvider, cfg *model.Config) *BroadSearch {
	return &BroadSearch{
		name:     "verified-media",
		tier:     model.Tier3,
		search:   search,
		domains:  cfg.Sources.VerifiedMedia,
		limit:    cfg.Match.SearchLimit,
		keyTerms: cfg.Match.KeyTerms,
		timeout:  cfg.Match.PerCallTimeout,
	}
}

// Name identifies the adapter in provenance tags
func (a *BroadSearch) Name() string { return a.name }

// Tier returns the escalation tier this adapter belongs to
func (a *BroadSearch) Tier() model.Tier { return a.tier }

// FetchCandidates runs one domain-filtered search and converts results
// into candidates
func (a *BroadSearch) FetchCandidates(ctx context.Context, claim model.Claim) []model.Candidate {
	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	query := keyterms.Query(claim.Text, a.keyTerms)

	results, err := a.search.Search(callCtx, query, a.domains, a.limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %s: search failed: %v\n", a.name, err)
		return nil
	}

	candidates := make([]model.Candidate, 0, len(results))
	for _, r := range results {
		if r.URL == "" {
			continue
		}
		c := model.Candidate{
			SourceName: sourceName(r.URL),
			SourceURL:  r.URL,
			Headline:   r.Title,
			BodyText:   r.Description,
			Verdict:    ExtractVerdict(r.Title + " " + r.Description),
			RawScore:   lexical.TokenSetRatio(claim.Normalized, r.Title+" "+r.Description),
			SourceTier: a.tier,
			Adapter:    a.name,
		}
		c.TruncateBody()
		candidates = append(candidates, c)
	}
	return candidates
}
