package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/ppiankov/verimatch/internal/model"
	"github.com/ppiankov/verimatch/internal/util"
	"github.com/ppiankov/verimatch/internal/worker"
)

// WebCrawler implements CrawlProvider with a native breadth-first crawl.
// It stays on the root's host, honors robots.txt, and rate-limits per
// domain. This is the no-API-key alternative to the Firecrawl crawl.
type WebCrawler struct {
	httpClient *http.Client
	robots     *util.RobotsChecker
	limiter    *worker.Limiter
	userAgent  string
	maxBytes   int64
}

// NewWebCrawler creates a crawler with the given HTTP and concurrency settings
func NewWebCrawler(httpCfg model.HTTPConfig, concCfg model.ConcurrencyConfig) *WebCrawler {
	return &WebCrawler{
		httpClient: &http.Client{
			Timeout: 8 * time.Second,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(httpCfg.HTTPProxy, httpCfg.HTTPSProxy, httpCfg.NoProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		robots:    util.NewRobotsChecker(httpCfg.UserAgent, 5*time.Second),
		limiter:   worker.NewLimiter(concCfg.RequestsPerSecond, concCfg.Burst),
		userAgent: httpCfg.UserAgent,
		maxBytes:  httpCfg.MaxBodyBytes,
	}
}

// Crawl walks pages breadth-first from rootURL, visiting at most limit
// pages and descending at most maxDepth link levels. Individual page
// failures are skipped; the crawl stops early when ctx expires.
func (w *WebCrawler) Crawl(ctx context.Context, rootURL string, maxDepth, limit int) ([]CrawlPage, error) {
	root, err := url.Parse(rootURL)
	if err != nil {
		return nil, fmt.Errorf("parse root URL: %w", err)
	}

	type queued struct {
		url   string
		depth int
	}

	queue := []queued{{url: rootURL, depth: 0}}
	visited := map[string]bool{rootURL: true}
	var pages []CrawlPage
	delaySet := false

	for len(queue) > 0 && len(pages) < limit {
		if ctx.Err() != nil {
			break
		}

		next := queue[0]
		queue = queue[1:]

		allowed, crawlDelay, err := w.robots.CanFetch(ctx, next.url)
		if err != nil || !allowed {
			continue
		}
		if crawlDelay > 0 && !delaySet {
			// The crawl stays on the root host, so one robots crawl-delay
			// covers every queued page.
			w.limiter.SetDomainRate(root.Host, 1/crawlDelay.Seconds(), 1)
			delaySet = true
		}
		if err := w.limiter.Wait(ctx, next.url); err != nil {
			break
		}

		title, text, links, err := w.fetchPage(ctx, next.url)
		if err != nil {
			continue
		}

		pages = append(pages, CrawlPage{
			URL:   next.url,
			Title: title,
			Text:  text,
		})

		if next.depth >= maxDepth {
			continue
		}

		for _, link := range links {
			abs := resolveLink(root, link)
			if abs == "" || visited[abs] {
				continue
			}
			visited[abs] = true
			queue = append(queue, queued{url: abs, depth: next.depth + 1})
		}
	}

	return pages, nil
}

// fetchPage retrieves one page and extracts its title, visible text,
// and outbound links
func (w *WebCrawler) fetchPage(ctx context.Context, rawURL string) (title, text string, links []string, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", "", nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", w.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return "", "", nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", "", nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	limitedReader := io.LimitReader(resp.Body, w.maxBytes)
	doc, err := html.Parse(limitedReader)
	if err != nil {
		return "", "", nil, fmt.Errorf("parse HTML: %w", err)
	}

	title, text, links = walkDocument(doc)
	if len(text) > 2000 {
		text = text[:2000]
	}
	return title, text, links, nil
}

// walkDocument extracts the title, visible text, and href links of a page
func walkDocument(doc *html.Node) (title, text string, links []string) {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			case "title":
				if title == "" && n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
					title = strings.TrimSpace(n.FirstChild.Data)
				}
			case "a":
				for _, attr := range n.Attr {
					if attr.Key == "href" {
						links = append(links, attr.Val)
					}
				}
			}
		}

		if n.Type == html.TextNode {
			t := strings.TrimSpace(n.Data)
			if t != "" {
				buf.WriteString(t)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return title, strings.TrimSpace(buf.String()), links
}

// resolveLink makes a link absolute and keeps only same-host http(s) URLs
func resolveLink(root *url.URL, href string) string {
	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}
	abs := root.ResolveReference(parsed)
	if abs.Scheme != "http" && abs.Scheme != "https" {
		return ""
	}
	if abs.Host != root.Host {
		return ""
	}
	abs.Fragment = ""
	return abs.String()
}
