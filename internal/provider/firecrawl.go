package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ppiankov/verimatch/internal/model"
	"github.com/ppiankov/verimatch/internal/util"
)

// FirecrawlClient implements SearchProvider and CrawlProvider against the
// Firecrawl HTTP API.
type FirecrawlClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Firecrawl API structures
type firecrawlSearchRequest struct {
	Query             string   `json:"query"`
	Domains           []string `json:"domains,omitempty"`
	Limit             int      `json:"limit,omitempty"`
	IncludeSubdomains bool     `json:"includeSubdomains"`
}

type firecrawlSearchResponse struct {
	Results []struct {
		URL         string `json:"url"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Markdown    string `json:"markdown"`
	} `json:"results"`
}

type firecrawlCrawlRequest struct {
	URL               string `json:"url"`
	MaxDepth          int    `json:"maxDepth,omitempty"`
	Limit             int    `json:"limit,omitempty"`
	IncludeSubdomains bool   `json:"includeSubdomains"`
}

type firecrawlCrawlResponse struct {
	Results []struct {
		URL      string `json:"url"`
		Title    string `json:"title"`
		Markdown string `json:"markdown"`
	} `json:"results"`
}

type firecrawlError struct {
	Error string `json:"error"`
}

// NewFirecrawlClient creates a Firecrawl client
func NewFirecrawlClient(cfg model.FirecrawlConfig, httpCfg model.HTTPConfig) (*FirecrawlClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Firecrawl API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.firecrawl.dev"
	}

	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout == 0 {
		timeout = 8 * time.Second
	}

	return &FirecrawlClient{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(httpCfg.HTTPProxy, httpCfg.HTTPSProxy, httpCfg.NoProxy),
			},
		},
	}, nil
}

// Search queries the Firecrawl /v1/search endpoint
func (c *FirecrawlClient) Search(ctx context.Context, query string, domains []string, limit int) ([]SearchResult, error) {
	req := firecrawlSearchRequest{
		Query:             query,
		Domains:           domains,
		Limit:             limit,
		IncludeSubdomains: true,
	}

	var resp firecrawlSearchResponse
	if err := c.post(ctx, "/v1/search", req, &resp); err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(resp.Results))
	for _, r := range resp.Results {
		desc := r.Description
		if desc == "" {
			desc = firstLine(r.Markdown)
		}
		results = append(results, SearchResult{
			URL:         r.URL,
			Title:       r.Title,
			Description: desc,
		})
	}
	return results, nil
}

// Crawl walks a root URL via the Firecrawl /v1/crawl endpoint
func (c *FirecrawlClient) Crawl(ctx context.Context, rootURL string, maxDepth, limit int) ([]CrawlPage, error) {
	req := firecrawlCrawlRequest{
		URL:               rootURL,
		MaxDepth:          maxDepth,
		Limit:             limit,
		IncludeSubdomains: true,
	}

	var resp firecrawlCrawlResponse
	if err := c.post(ctx, "/v1/crawl", req, &resp); err != nil {
		return nil, err
	}

	pages := make([]CrawlPage, 0, len(resp.Results))
	for _, r := range resp.Results {
		title := r.Title
		if title == "" {
			title = firstLine(r.Markdown)
		}
		pages = append(pages, CrawlPage{
			URL:   r.URL,
			Title: title,
			Text:  r.Markdown,
		})
	}
	return pages, nil
}

// post makes an authenticated JSON request to the Firecrawl API
func (c *FirecrawlClient) post(ctx context.Context, path string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	url := c.baseURL + path
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		var apiErr firecrawlError
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("API error (%d): %s", httpResp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("API error (%d): %s", httpResp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	return nil
}

// firstLine returns the first non-empty line of markdown content
func firstLine(markdown string) string {
	for _, line := range strings.Split(markdown, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "# "))
		if line != "" {
			return line
		}
	}
	return ""
}
