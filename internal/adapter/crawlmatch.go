package adapter

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/ppiankov/verimatch/internal/lexical"
	"github.com/ppiankov/verimatch/internal/model"
	"github.com/ppiankov/verimatch/internal/provider"
)

// CrawlMatch crawls verification domains to bounded depth and keeps pages
// whose title or sub-path is lexically similar to the claim. This is the
// most expensive adapter; the orchestrator invokes it only as a last
// resort and under a timeout stricter than any other adapter's.
type CrawlMatch struct {
	crawl   provider.CrawlProvider
	domains []string
	depth   int
	limit   int
	floor   int
	timeout time.Duration
}

// NewCrawlMatch creates the Tier-3 deep crawl-and-match adapter
func NewCrawlMatch(crawl provider.CrawlProvider, cfg *model.Config) *CrawlMatch {
	return &CrawlMatch{
		crawl:   crawl,
		domains: cfg.Sources.CrawlDomains,
		depth:   cfg.Match.CrawlDepth,
		limit:   cfg.Match.CrawlPageLimit,
		floor:   cfg.Match.CrawlFloor,
		timeout: cfg.Match.CrawlTimeout,
	}
}

// Name identifies the adapter in provenance tags
func (a *CrawlMatch) Name() string { return "crawl-match" }

// Tier returns the escalation tier this adapter belongs to
func (a *CrawlMatch) Tier() model.Tier { return model.Tier3 }

// FetchCandidates crawls each configured domain under the strict crawl
// timeout. Pages already collected when the timeout fires are kept.
func (a *CrawlMatch) FetchCandidates(ctx context.Context, claim model.Claim) []model.Candidate {
	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	var candidates []model.Candidate
	for _, domain := range a.domains {
		if callCtx.Err() != nil {
			break
		}

		pages, err := a.crawl.Crawl(callCtx, "https://"+domain, a.depth, a.limit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: crawl-match: %s: %v\n", domain, err)
			continue
		}

		for _, page := range pages {
			score := a.pageScore(claim, page)
			if score < a.floor {
				continue
			}
			c := model.Candidate{
				SourceName: sourceName(page.URL),
				SourceURL:  page.URL,
				Headline:   page.Title,
				BodyText:   page.Text,
				Verdict:    ExtractVerdict(page.Title + " " + page.Text),
				RawScore:   score,
				SourceTier: model.Tier3,
				Adapter:    a.Name(),
			}
			c.TruncateBody()
			candidates = append(candidates, c)
		}
	}
	return candidates
}

// pageScore compares the claim against the page title and its URL
// sub-path, taking the better of the two
func (a *CrawlMatch) pageScore(claim model.Claim, page provider.CrawlPage) int {
	score := lexical.TokenSetRatio(claim.Normalized, page.Title)

	if parsed, err := url.Parse(page.URL); err == nil {
		path := strings.NewReplacer("-", " ", "_", " ", "/", " ").Replace(parsed.Path)
		if s := lexical.TokenSetRatio(claim.Normalized, path); s > score {
			score = s
		}
	}
	return score
}
