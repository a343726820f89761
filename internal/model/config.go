package model

import "time"

// Config holds the complete engine configuration
type Config struct {
	Match       MatchConfig       `yaml:"match" json:"match"`
	Sources     SourcesConfig     `yaml:"sources" json:"sources"`
	Cache       CacheConfig       `yaml:"cache" json:"cache"`
	HTTP        HTTPConfig        `yaml:"http" json:"http"`
	Oracle      OracleConfig      `yaml:"oracle" json:"oracle"`
	Firecrawl   FirecrawlConfig   `yaml:"firecrawl" json:"firecrawl"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" json:"concurrency"`
}

// MatchConfig controls budgets, floors, and caps for one lookup
type MatchConfig struct {
	Budget          time.Duration `yaml:"budget" json:"budget"`                     // Hard ceiling for the whole lookup
	TierTimeout     time.Duration `yaml:"tier_timeout" json:"tier_timeout"`         // Aggregate timeout per tier
	PerCallTimeout  time.Duration `yaml:"per_call_timeout" json:"per_call_timeout"` // Timeout per adapter call
	CrawlTimeout    time.Duration `yaml:"crawl_timeout" json:"crawl_timeout"`       // Strict timeout for the deep crawl
	MaxCandidates   int           `yaml:"max_candidates" json:"max_candidates"`     // Cap on returned candidates
	SearchLimit     int           `yaml:"search_limit" json:"search_limit"`         // Results requested per provider call
	RelevanceFloor  int           `yaml:"relevance_floor" json:"relevance_floor"`   // 0-100, site-search keep threshold
	CrawlFloor      int           `yaml:"crawl_floor" json:"crawl_floor"`           // 0-100, crawl-match keep threshold
	CrawlDepth      int           `yaml:"crawl_depth" json:"crawl_depth"`
	CrawlPageLimit  int           `yaml:"crawl_page_limit" json:"crawl_page_limit"`
	KeyTerms        int           `yaml:"key_terms" json:"key_terms"` // Top-N terms used to build queries
	StrongThreshold int           `yaml:"strong_threshold" json:"strong_threshold"`
	ModerateThresh  int           `yaml:"moderate_threshold" json:"moderate_threshold"`
}

// SourcesConfig holds the domain allow-lists per escalation tier
type SourcesConfig struct {
	Tier1Domains   []string `yaml:"tier1_domains" json:"tier1_domains"`     // Broad-search fact-checker allow-list
	Tier2Sites     []string `yaml:"tier2_sites" json:"tier2_sites"`         // Extended per-site search list
	VerifiedMedia  []string `yaml:"verified_media" json:"verified_media"`   // Tier-3 media domains
	CrawlDomains   []string `yaml:"crawl_domains" json:"crawl_domains"`     // Last-resort crawl roots
	MajorVerifiers []string `yaml:"major_verifiers" json:"major_verifiers"` // Curated list for quality classification
}

// CacheConfig controls the result cache
type CacheConfig struct {
	Enabled         bool          `yaml:"enabled" json:"enabled"`
	Backend         string        `yaml:"backend" json:"backend"` // "memory" or "redis"
	TTL             time.Duration `yaml:"ttl" json:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" json:"cleanup_interval"`
	RedisURL        string        `yaml:"redis_url" json:"redis_url"`
}

// HTTPConfig controls outbound HTTP behavior
type HTTPConfig struct {
	UserAgent    string `yaml:"user_agent" json:"user_agent"`
	MaxBodyBytes int64  `yaml:"max_body_bytes" json:"max_body_bytes"`
	HTTPProxy    string `yaml:"http_proxy" json:"http_proxy"`
	HTTPSProxy   string `yaml:"https_proxy" json:"https_proxy"`
	NoProxy      string `yaml:"no_proxy" json:"no_proxy"`
}

// OracleConfig configures the semantic comparison provider
type OracleConfig struct {
	Provider  string `yaml:"provider" json:"provider"` // "openai", "anthropic", "" (lexical only)
	Model     string `yaml:"model" json:"model"`
	APIKey    string `yaml:"api_key" json:"-"`
	BaseURL   string `yaml:"base_url" json:"base_url"`
	Timeout   int    `yaml:"timeout" json:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" json:"max_tokens"`
}

// FirecrawlConfig configures the Firecrawl search/crawl provider
type FirecrawlConfig struct {
	APIKey  string `yaml:"api_key" json:"-"`
	BaseURL string `yaml:"base_url" json:"base_url"`
	Timeout int    `yaml:"timeout" json:"timeout"` // seconds
}

// ConcurrencyConfig bounds parallelism
type ConcurrencyConfig struct {
	TierWorkers       int     `yaml:"tier_workers" json:"tier_workers"`   // Max concurrent adapter calls within a tier
	BatchWorkers      int     `yaml:"batch_workers" json:"batch_workers"` // Workers for batch claim matching
	RequestsPerSecond float64 `yaml:"requests_per_second" json:"requests_per_second"`
	Burst             int     `yaml:"burst" json:"burst"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Match: MatchConfig{
			Budget:          60 * time.Second,
			TierTimeout:     20 * time.Second,
			PerCallTimeout:  8 * time.Second,
			CrawlTimeout:    10 * time.Second,
			MaxCandidates:   5,
			SearchLimit:     5,
			RelevanceFloor:  25,
			CrawlFloor:      70,
			CrawlDepth:      2,
			CrawlPageLimit:  20,
			KeyTerms:        6,
			StrongThreshold: 70,
			ModerateThresh:  40,
		},
		Sources: SourcesConfig{
			Tier1Domains: []string{
				"factcheck.org",
				"snopes.com",
				"politifact.com",
				"apnews.com",
				"fullfact.org",
				"reuters.com",
			},
			Tier2Sites: []string{
				"factcheck.org",
				"snopes.com",
				"politifact.com",
				"fullfact.org",
				"leadstories.com",
				"checkyourfact.com",
				"truthorfiction.com",
				"afp.com",
				"washingtonpost.com",
			},
			VerifiedMedia: []string{
				"reuters.com",
				"bbc.com",
				"nytimes.com",
				"theguardian.com",
				"usatoday.com",
			},
			CrawlDomains: []string{
				"factcheck.org",
				"snopes.com",
			},
			MajorVerifiers: []string{
				"factcheck.org",
				"snopes.com",
				"politifact.com",
				"apnews.com",
				"fullfact.org",
				"reuters.com",
				"afp.com",
			},
		},
		Cache: CacheConfig{
			Enabled:         true,
			Backend:         "memory",
			TTL:             time.Hour,
			CleanupInterval: 10 * time.Minute,
		},
		HTTP: HTTPConfig{
			UserAgent:    "Verimatch/0.1 (+https://github.com/ppiankov/verimatch)",
			MaxBodyBytes: 2_000_000,
		},
		Oracle: OracleConfig{
			Provider:  "",
			Timeout:   15,
			MaxTokens: 300,
		},
		Firecrawl: FirecrawlConfig{
			BaseURL: "https://api.firecrawl.dev",
			Timeout: 8,
		},
		Concurrency: ConcurrencyConfig{
			TierWorkers:       6,
			BatchWorkers:      4,
			RequestsPerSecond: 2,
			Burst:             5,
		},
	}
}
