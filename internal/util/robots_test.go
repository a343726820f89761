package util

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestRobotsChecker_DisallowedPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/robots.txt" {
			t.Errorf("Expected /robots.txt fetch, got %s", r.URL.Path)
		}
		fmt.Fprintf(w, "User-agent: *\nDisallow: /private/\nCrawl-delay: 2\n")
	}))
	defer server.Close()

	checker := NewRobotsChecker("TestAgent/1.0", 5*time.Second)
	ctx := context.Background()

	if allowed, _, _ := checker.CanFetch(ctx, server.URL+"/private/page"); allowed {
		t.Error("Expected disallowed path to be blocked")
	}

	allowed, delay, err := checker.CanFetch(ctx, server.URL+"/public/page")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !allowed {
		t.Error("Expected public path allowed")
	}
	if delay != 2*time.Second {
		t.Errorf("Expected crawl delay 2s, got %v", delay)
	}
}

func TestRobotsChecker_MissingRobotsAllowsAll(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	checker := NewRobotsChecker("TestAgent/1.0", 5*time.Second)
	if allowed, _, _ := checker.CanFetch(context.Background(), server.URL+"/anything"); !allowed {
		t.Error("Expected missing robots.txt to allow everything")
	}
}

func TestRobotsChecker_CachesPerHost(t *testing.T) {
	var fetches int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&fetches, 1)
		fmt.Fprintf(w, "User-agent: *\nAllow: /\n")
	}))
	defer server.Close()

	checker := NewRobotsChecker("TestAgent/1.0", 5*time.Second)
	ctx := context.Background()

	checker.CanFetch(ctx, server.URL+"/a")
	checker.CanFetch(ctx, server.URL+"/b")
	checker.CanFetch(ctx, server.URL+"/c")

	if n := atomic.LoadInt32(&fetches); n != 1 {
		t.Errorf("Expected robots.txt fetched once, got %d", n)
	}
}
