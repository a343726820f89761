package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ppiankov/verimatch/internal/cache"
	"github.com/ppiankov/verimatch/internal/engine"
	"github.com/ppiankov/verimatch/internal/model"
	"github.com/ppiankov/verimatch/internal/oracle"
	"github.com/ppiankov/verimatch/internal/provider"
	"github.com/spf13/cobra"
)

var (
	outJSON        string
	budget         time.Duration
	userAgent      string
	noCache        bool
	cacheBackend   string
	redisURL       string
	crawler        string
	httpProxy      string
	httpsProxy     string
	oracleProvider string
	oracleModel    string
)

// matchCmd represents the match command
var matchCmd = &cobra.Command{
	Use:   "match <claim>",
	Short: "Find prior verifications for a single claim",
	Long: `Match looks up a factual claim across escalating source tiers:
- Tier 1: broad search restricted to established fact-checkers
- Tier 2: targeted per-site search across an extended verifier list
- Tier 3: verified news media, plus a last-resort crawl when nothing
  at all was found

Candidates are scored, labeled strong/moderate/weak, deduplicated, and
ranked. Results are cached by normalized claim text.

Example:
  verimatch match "The Eiffel Tower is in Berlin"
  verimatch match "..." --json result.json --oracle openai
  verimatch match "..." --cache-backend redis --redis-url redis://localhost:6379/0`,
	Args: cobra.ExactArgs(1),
	RunE: runMatch,
}

func init() {
	rootCmd.AddCommand(matchCmd)

	// Output flags
	matchCmd.Flags().StringVar(&outJSON, "json", "", "write full result JSON to path ('-' for stdout)")

	// Budget and HTTP flags
	matchCmd.Flags().DurationVar(&budget, "budget", 60*time.Second, "overall lookup budget")
	matchCmd.Flags().StringVar(&userAgent, "ua", "Verimatch/0.1 (+https://github.com/ppiankov/verimatch)", "HTTP User-Agent")
	matchCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	matchCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")

	// Cache flags
	matchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable result cache")
	matchCmd.Flags().StringVar(&cacheBackend, "cache-backend", "memory", "result cache backend (memory, redis)")
	matchCmd.Flags().StringVar(&redisURL, "redis-url", "", "redis URL for the redis cache backend")

	// Source flags
	matchCmd.Flags().StringVar(&crawler, "crawler", "web", "deep-crawl backend (web, firecrawl, off)")

	// Oracle flags
	matchCmd.Flags().StringVar(&oracleProvider, "oracle", "", "semantic oracle provider (openai, anthropic; default lexical)")
	matchCmd.Flags().StringVar(&oracleModel, "oracle-model", "", "oracle model name")
}

func runMatch(cmd *cobra.Command, args []string) error {
	claim := args[0]
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, eng, err := buildEngine()
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Matching: %s\n", claim)
		fmt.Fprintf(os.Stderr, "Budget: %v\n", cfg.Match.Budget)
		fmt.Fprintln(os.Stderr)
	}

	result, err := eng.Match(ctx, claim)
	if err != nil {
		if errors.Is(err, engine.ErrInvalidClaim) {
			return fmt.Errorf("invalid claim: %w", err)
		}
		return fmt.Errorf("match failed: %w", err)
	}

	printResult(result)

	if outJSON != "" {
		if err := writeJSON(outJSON, result); err != nil {
			return err
		}
	}
	return nil
}

// buildEngine assembles configuration and dependencies from flags and
// environment
func buildEngine() (*model.Config, *engine.Engine, error) {
	cfg := model.DefaultConfig()
	cfg.Match.Budget = budget
	cfg.HTTP.UserAgent = userAgent
	cfg.HTTP.HTTPProxy = httpProxy
	cfg.HTTP.HTTPSProxy = httpsProxy
	cfg.Cache.Enabled = !noCache
	cfg.Cache.Backend = cacheBackend
	if redisURL != "" {
		cfg.Cache.RedisURL = redisURL
	}
	cfg.Oracle.Provider = oracleProvider
	if oracleModel != "" {
		cfg.Oracle.Model = oracleModel
	}
	cfg.Firecrawl.APIKey = os.Getenv("FIRECRAWL_API_KEY")

	switch oracleProvider {
	case "openai":
		cfg.Oracle.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.Oracle.APIKey == "" {
			return nil, nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		cfg.Oracle.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.Oracle.APIKey == "" {
			return nil, nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	}

	if cfg.Firecrawl.APIKey == "" {
		return nil, nil, fmt.Errorf("FIRECRAWL_API_KEY environment variable not set")
	}

	search, err := provider.NewFirecrawlClient(cfg.Firecrawl, cfg.HTTP)
	if err != nil {
		return nil, nil, fmt.Errorf("search provider: %w", err)
	}

	var crawl provider.CrawlProvider
	switch crawler {
	case "web":
		crawl = provider.NewWebCrawler(cfg.HTTP, cfg.Concurrency)
	case "firecrawl":
		crawl = search
	case "off":
	default:
		return nil, nil, fmt.Errorf("unknown crawler backend: %s", crawler)
	}

	orc, err := oracle.NewOracle(cfg.Oracle)
	if err != nil {
		return nil, nil, fmt.Errorf("oracle: %w", err)
	}

	store, err := cache.NewResultStoreFromConfig(cfg.Cache)
	if err != nil {
		return nil, nil, fmt.Errorf("cache: %w", err)
	}

	eng := engine.New(cfg, engine.Deps{
		Store:  store,
		Search: search,
		Crawl:  crawl,
		Oracle: orc,
	})
	return cfg, eng, nil
}

// printResult renders a human-readable summary to stdout
func printResult(result *model.MatchResult) {
	fmt.Printf("Claim: %s\n", result.Claim.Text)
	fmt.Printf("Quality: %s  Tiers: %d  Seen: %d  Elapsed: %v  Cached: %v\n",
		result.QualityAchieved, len(result.TiersUsed), result.TotalCandidatesSeen,
		result.ElapsedTime.Round(time.Millisecond), result.FromCache)
	fmt.Println()

	if !result.HasCandidates() {
		fmt.Println("No prior verifications found.")
		return
	}

	for i, c := range result.Candidates {
		fmt.Printf("%d. [%s] %s\n", i+1, c.Quality, c.Headline)
		fmt.Printf("   Source: %s  Verdict: %s  Score: %d\n", c.SourceName, c.Verdict, c.Score())
		if c.SourceURL != "" {
			fmt.Printf("   %s\n", c.SourceURL)
		}
	}
}

// writeJSON writes the full result to a file or stdout
func writeJSON(path string, result *model.MatchResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	if path == "-" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing result: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Wrote %s\n", path)
	}
	return nil
}
