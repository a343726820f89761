package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ppiankov/verimatch/internal/model"
)

func newTestWebCrawler() *WebCrawler {
	cfg := model.DefaultConfig()
	cfg.Concurrency.RequestsPerSecond = 100
	cfg.Concurrency.Burst = 100
	return NewWebCrawler(cfg.HTTP, cfg.Concurrency)
}

func TestWebCrawler_BreadthFirstSameHost(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html><head><title>Root</title></head><body>
			<a href="/page-one">one</a>
			<a href="/page-two">two</a>
			<a href="https://other-host.example.com/offsite">offsite</a>
		</body></html>`)
	})
	mux.HandleFunc("/page-one", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html><head><title>Page One</title></head><body>some text here</body></html>`)
	})
	mux.HandleFunc("/page-two", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html><head><title>Page Two</title></head><body><a href="/page-three">deeper</a></body></html>`)
	})
	mux.HandleFunc("/page-three", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html><head><title>Page Three</title></head><body>deep</body></html>`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	crawler := newTestWebCrawler()
	pages, err := crawler.Crawl(context.Background(), server.URL+"/", 1, 10)
	if err != nil {
		t.Fatalf("Crawl failed: %v", err)
	}

	// Depth 1 reaches page-one and page-two but not page-three.
	titles := map[string]bool{}
	for _, p := range pages {
		titles[p.Title] = true
	}
	if !titles["Root"] || !titles["Page One"] || !titles["Page Two"] {
		t.Errorf("Expected root and both depth-1 pages, got %v", titles)
	}
	if titles["Page Three"] {
		t.Error("Expected depth limit to exclude page three")
	}
}

func TestWebCrawler_PageLimit(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html><head><title>P</title></head><body>
			<a href="/a">a</a><a href="/b">b</a><a href="/c">c</a><a href="/d">d</a>
		</body></html>`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	crawler := newTestWebCrawler()
	pages, err := crawler.Crawl(context.Background(), server.URL+"/", 3, 2)
	if err != nil {
		t.Fatalf("Crawl failed: %v", err)
	}
	if len(pages) != 2 {
		t.Errorf("Expected page limit of 2, got %d", len(pages))
	}
}

func TestWebCrawler_RespectsRobots(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "User-agent: *\nDisallow: /private/\n")
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html><head><title>Open</title></head><body><a href="/private/secret">secret</a></body></html>`)
	})
	mux.HandleFunc("/private/secret", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html><head><title>Secret</title></head><body>hidden</body></html>`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	crawler := newTestWebCrawler()
	pages, err := crawler.Crawl(context.Background(), server.URL+"/", 2, 10)
	if err != nil {
		t.Fatalf("Crawl failed: %v", err)
	}

	for _, p := range pages {
		if p.Title == "Secret" {
			t.Error("Expected disallowed page to be skipped")
		}
	}
}

func TestWebCrawler_HonorsCrawlDelay(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "User-agent: *\nCrawl-delay: 0.2\n")
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html><head><title>Root</title></head><body><a href="/a">a</a><a href="/b">b</a></body></html>`)
	})
	mux.HandleFunc("/a", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html><head><title>A</title></head><body>a</body></html>`)
	})
	mux.HandleFunc("/b", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html><head><title>B</title></head><body>b</body></html>`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	// The default test limiter runs at 100 rps; the declared 0.2s
	// crawl-delay must slow the second and third fetches down.
	crawler := newTestWebCrawler()
	start := time.Now()
	pages, err := crawler.Crawl(context.Background(), server.URL+"/", 1, 3)
	elapsed := time.Since(start)

	if err != nil {
		t.Fatalf("Crawl failed: %v", err)
	}
	if len(pages) != 3 {
		t.Fatalf("Expected 3 pages, got %d", len(pages))
	}
	if elapsed < 300*time.Millisecond {
		t.Errorf("Expected crawl-delay pacing of roughly 400ms, finished in %v", elapsed)
	}
}

func TestWebCrawler_SkipsFailingPages(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html><head><title>Root</title></head><body><a href="/broken">broken</a><a href="/fine">fine</a></body></html>`)
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	mux.HandleFunc("/fine", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html><head><title>Fine</title></head><body>ok</body></html>`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	crawler := newTestWebCrawler()
	pages, err := crawler.Crawl(context.Background(), server.URL+"/", 1, 10)
	if err != nil {
		t.Fatalf("Crawl failed: %v", err)
	}

	titles := map[string]bool{}
	for _, p := range pages {
		titles[p.Title] = true
	}
	if !titles["Root"] || !titles["Fine"] {
		t.Errorf("Expected healthy pages kept, got %v", titles)
	}
}

func TestWebCrawler_ContextCancellation(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		fmt.Fprintf(w, `<html><head><title>Slow</title></head><body>slow</body></html>`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	crawler := newTestWebCrawler()
	start := time.Now()
	_, err := crawler.Crawl(ctx, server.URL+"/", 2, 10)
	if err != nil {
		t.Fatalf("Expected graceful stop, got %v", err)
	}
	if time.Since(start) > time.Second {
		t.Error("Expected crawl to stop promptly on cancellation")
	}
}
