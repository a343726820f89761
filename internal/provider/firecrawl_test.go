package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ppiankov/verimatch/internal/model"
)

func newTestFirecrawl(t *testing.T, baseURL string) *FirecrawlClient {
	t.Helper()
	c, err := NewFirecrawlClient(
		model.FirecrawlConfig{APIKey: "test-key", BaseURL: baseURL, Timeout: 5},
		model.HTTPConfig{},
	)
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	return c
}

func TestFirecrawlClient_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/search" {
			t.Errorf("Expected path /v1/search, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("Expected Bearer auth, got %s", r.Header.Get("Authorization"))
		}

		var req firecrawlSearchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if req.Query != "eiffel tower berlin" {
			t.Errorf("Unexpected query: %s", req.Query)
		}
		if len(req.Domains) != 2 {
			t.Errorf("Expected 2 domains, got %v", req.Domains)
		}
		if req.Limit != 5 {
			t.Errorf("Expected limit 5, got %d", req.Limit)
		}

		resp := firecrawlSearchResponse{}
		resp.Results = append(resp.Results, struct {
			URL         string `json:"url"`
			Title       string `json:"title"`
			Description string `json:"description"`
			Markdown    string `json:"markdown"`
		}{
			URL:      "https://snopes.com/fact-check/x",
			Title:    "Checked",
			Markdown: "# Heading\n\nFirst paragraph of the page.",
		})
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	c := newTestFirecrawl(t, server.URL)
	results, err := c.Search(context.Background(), "eiffel tower berlin", []string{"snopes.com", "factcheck.org"}, 5)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	// Description falls back to the first markdown line.
	if results[0].Description != "Heading" {
		t.Errorf("Expected markdown fallback description, got %q", results[0].Description)
	}
}

func TestFirecrawlClient_Crawl(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/crawl" {
			t.Errorf("Expected path /v1/crawl, got %s", r.URL.Path)
		}

		var req firecrawlCrawlRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if req.URL != "https://factcheck.org" {
			t.Errorf("Unexpected root URL: %s", req.URL)
		}
		if req.MaxDepth != 2 || req.Limit != 20 {
			t.Errorf("Expected depth 2 limit 20, got %d/%d", req.MaxDepth, req.Limit)
		}

		resp := firecrawlCrawlResponse{}
		resp.Results = append(resp.Results, struct {
			URL      string `json:"url"`
			Title    string `json:"title"`
			Markdown string `json:"markdown"`
		}{
			URL:      "https://factcheck.org/2024/some-page/",
			Title:    "Some Page",
			Markdown: "Body text",
		})
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	c := newTestFirecrawl(t, server.URL)
	pages, err := c.Crawl(context.Background(), "https://factcheck.org", 2, 20)
	if err != nil {
		t.Fatalf("Crawl failed: %v", err)
	}

	if len(pages) != 1 || pages[0].Title != "Some Page" {
		t.Errorf("Unexpected pages: %+v", pages)
	}
}

func TestFirecrawlClient_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_ = json.NewEncoder(w).Encode(firecrawlError{Error: "insufficient credits"})
	}))
	defer server.Close()

	c := newTestFirecrawl(t, server.URL)
	if _, err := c.Search(context.Background(), "q", nil, 5); err == nil {
		t.Error("Expected error from API failure")
	}
}

func TestNewFirecrawlClient_RequiresKey(t *testing.T) {
	if _, err := NewFirecrawlClient(model.FirecrawlConfig{}, model.HTTPConfig{}); err == nil {
		t.Error("Expected error for missing API key")
	}
}
