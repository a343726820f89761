package worker

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/ppiankov/verimatch/internal/model"
)

// Matcher is the engine surface the batch runner needs
type Matcher interface {
	Match(ctx context.Context, claim string) (*model.MatchResult, error)
}

// BatchItem pairs one claim with its outcome
type BatchItem struct {
	Claim  string
	Result *model.MatchResult
	Err    error
}

// BatchMatcher runs many claims through a Matcher with a fixed worker
// pool, preserving input order in its output.
type BatchMatcher struct {
	matcher Matcher
	workers int
}

// NewBatchMatcher creates a batch runner with the given concurrency
func NewBatchMatcher(matcher Matcher, workers int) *BatchMatcher {
	if workers <= 0 {
		workers = 1
	}
	return &BatchMatcher{matcher: matcher, workers: workers}
}

// Run matches every claim concurrently and returns items in input
// order. A failed claim carries its error; the rest still complete.
// Caller cancellation stops dispatching new claims.
func (b *BatchMatcher) Run(ctx context.Context, claims []string) []BatchItem {
	items := make([]BatchItem, len(claims))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < b.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				result, err := b.matcher.Match(ctx, claims[idx])
				items[idx] = BatchItem{Claim: claims[idx], Result: result, Err: err}
			}
		}()
	}

dispatch:
	for idx := range claims {
		select {
		case jobs <- idx:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	for idx := range items {
		if items[idx].Result == nil && items[idx].Err == nil {
			items[idx] = BatchItem{Claim: claims[idx], Err: ctx.Err()}
		}
	}
	return items
}

// ReadClaims parses one claim per line, skipping blanks and comments
func ReadClaims(r io.Reader) ([]string, error) {
	var claims []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		claims = append(claims, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading claims: %w", err)
	}
	return claims, nil
}
