package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ppiankov/verimatch/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Match multiple claims from a file in parallel",
	Long: `Batch processes multiple claims concurrently:
- Read claims from input file (one per line, # comments skipped)
- Match claims in parallel with configurable worker count
- Write one result JSON per claim into the output directory

Example:
  verimatch batch claims.txt
  verimatch batch claims.txt --concurrency 8 --output-dir ./results
  verimatch batch claims.txt --oracle openai --timeout 15m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatchMatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Concurrency flags
	batchCmd.Flags().IntVar(&concurrency, "concurrency", 4, "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./verimatch-results", "output directory for result JSON files")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	// Inherit flags from match command
	batchCmd.Flags().DurationVar(&budget, "budget", 60*time.Second, "per-claim lookup budget")
	batchCmd.Flags().StringVar(&userAgent, "ua", "Verimatch/0.1 (+https://github.com/ppiankov/verimatch)", "HTTP User-Agent")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable result cache")
	batchCmd.Flags().StringVar(&cacheBackend, "cache-backend", "memory", "result cache backend (memory, redis)")
	batchCmd.Flags().StringVar(&redisURL, "redis-url", "", "redis URL for the redis cache backend")
	batchCmd.Flags().StringVar(&crawler, "crawler", "web", "deep-crawl backend (web, firecrawl, off)")
	batchCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	batchCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")

	// Oracle flags
	batchCmd.Flags().StringVar(&oracleProvider, "oracle", "", "semantic oracle provider (openai, anthropic; default lexical)")
	batchCmd.Flags().StringVar(&oracleModel, "oracle-model", "", "oracle model name")
}

func runBatchMatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("opening claims file: %w", err)
	}
	claims, err := worker.ReadClaims(f)
	_ = f.Close()
	if err != nil {
		return err
	}
	if len(claims) == 0 {
		return fmt.Errorf("no claims found in %s", file)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	_, eng, err := buildEngine()
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Matching %d claims with %d workers\n", len(claims), concurrency)

	start := time.Now()
	items := worker.NewBatchMatcher(eng, concurrency).Run(ctx, claims)

	var succeeded, failed, withCandidates int
	for i, item := range items {
		if item.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "Warning: claim %d failed: %v\n", i+1, item.Err)
			continue
		}
		succeeded++
		if item.Result.HasCandidates() {
			withCandidates++
		}
		path := filepath.Join(outputDir, fmt.Sprintf("claim-%03d.json", i+1))
		data, err := json.MarshalIndent(item.Result, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: claim %d: encoding result: %v\n", i+1, err)
			continue
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: claim %d: writing result: %v\n", i+1, err)
		}
	}

	fmt.Fprintf(os.Stderr, "\nDone in %v: %d matched (%d with verifications), %d failed\n",
		time.Since(start).Round(time.Second), succeeded, withCandidates, failed)
	fmt.Fprintf(os.Stderr, "Results: %s\n", outputDir)

	if failed == len(items) {
		return fmt.Errorf("all %d claims failed", failed)
	}
	return nil
}
