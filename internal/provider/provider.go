// Package provider defines the external search and crawl capabilities the
// engine depends on, plus their concrete clients. Providers are expected
// to be unreliable: callers treat every error as "no results from this
// call" and never surface it past the adapter boundary.
package provider

import "context"

// SearchResult is one hit returned by a search provider
type SearchResult struct {
	URL         string
	Title       string
	Description string
}

// CrawlPage is one page visited by a crawl provider
type CrawlPage struct {
	URL   string
	Title string
	Text  string
}

// SearchProvider exposes a general search capability optionally
// restricted to a set of domains
type SearchProvider interface {
	Search(ctx context.Context, query string, domains []string, limit int) ([]SearchResult, error)
}

// CrawlProvider crawls a root URL to bounded depth and page count
type CrawlProvider interface {
	Crawl(ctx context.Context, rootURL string, maxDepth, limit int) ([]CrawlPage, error)
}
