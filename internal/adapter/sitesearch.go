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

// SiteSearch issues one narrow query per verification site, scored by
// lexical overlap between the claim and each result's title/description.
// Results below the relevance floor are dropped.
type SiteSearch struct {
	search     provider.SearchProvider
	sites      []string
	limit      int
	keyTerms   int
	floor      int
	timeout    time.Duration
	maxWorkers int
}

// NewSiteSearch creates the Tier-2 targeted per-site search
func NewSiteSearch(search provider.SearchProvider, cfg *model.Config) *SiteSearch {
	maxWorkers := cfg.Concurrency.TierWorkers
	if maxWorkers <= 0 {
		maxWorkers = 4
	}
	return &SiteSearch{
		search:     search,
		sites:      cfg.Sources.Tier2Sites,
		limit:      cfg.Match.SearchLimit,
		keyTerms:   cfg.Match.KeyTerms,
		floor:      cfg.Match.RelevanceFloor,
		timeout:    cfg.Match.PerCallTimeout,
		maxWorkers: maxWorkers,
	}
}

// Name identifies the adapter in provenance tags
func (a *SiteSearch) Name() string { return "site-search" }

// Tier returns the escalation tier this adapter belongs to
func (a *SiteSearch) Tier() model.Tier { return model.Tier2 }

// FetchCandidates queries each configured site concurrently, bounded by
// the worker limit. Per-site failures contribute zero candidates, and a
// site query stuck past the deadline is abandoned rather than awaited.
func (a *SiteSearch) FetchCandidates(ctx context.Context, claim model.Claim) []model.Candidate {
	query := keyterms.Query(claim.Text, a.keyTerms)

	// Buffered so abandoned site queries can still send and exit
	perSite := make(chan []model.Candidate, len(a.sites))
	semaphore := make(chan struct{}, a.maxWorkers)

	for _, site := range a.sites {
		go func(site string) {
			select {
			case <-ctx.Done():
				perSite <- nil
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			perSite <- a.searchSite(ctx, claim, query, site)
		}(site)
	}

	var candidates []model.Candidate
	for range a.sites {
		select {
		case batch := <-perSite:
			candidates = append(candidates, batch...)
		case <-ctx.Done():
			return candidates
		}
	}
	return candidates
}

// searchSite runs one site-scoped query and keeps results above the floor
func (a *SiteSearch) searchSite(ctx context.Context, claim model.Claim, query, site string) []model.Candidate {
	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	results, err := a.search.Search(callCtx, query, []string{site}, a.limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: site-search: %s: %v\n", site, err)
		return nil
	}

	var kept []model.Candidate
	for _, r := range results {
		if r.URL == "" {
			continue
		}
		score := lexical.TokenSetRatio(claim.Normalized, r.Title+" "+r.Description)
		if score < a.floor {
			continue
		}
		c := model.Candidate{
			SourceName: sourceName(r.URL),
			SourceURL:  r.URL,
			Headline:   r.Title,
			BodyText:   r.Description,
			Verdict:    ExtractVerdict(r.Title + " " + r.Description),
			RawScore:   score,
			SourceTier: model.Tier2,
			Adapter:    a.Name(),
		}
		c.TruncateBody()
		kept = append(kept, c)
	}
	return kept
}
