package cache

import (
	"encoding/json"
	"time"

	"github.com/ppiankov/verimatch/internal/model"
)

// ResultStore caches completed MatchResults keyed by normalized claim.
// The cache is an optimization only: every internal error degrades to a
// miss and is never surfaced to the caller.
type ResultStore struct {
	cache Cache
	ttl   time.Duration
}

// NewResultStore creates a result store over the given backend
func NewResultStore(c Cache, ttl time.Duration) *ResultStore {
	return &ResultStore{cache: c, ttl: ttl}
}

// NewResultStoreFromConfig builds the configured backend. A nil store is
// returned when caching is disabled; callers treat nil as cache-off.
func NewResultStoreFromConfig(cfg model.CacheConfig) (*ResultStore, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	if cfg.Backend == "redis" {
		rc, err := NewRedisCache(cfg.RedisURL, cfg.TTL)
		if err != nil {
			return nil, err
		}
		return NewResultStore(rc, cfg.TTL), nil
	}
	return NewResultStore(NewMemoryCache(cfg.TTL, cfg.CleanupInterval), cfg.TTL), nil
}

// Get returns the cached result for a claim, or absent
func (s *ResultStore) Get(claim model.Claim) (*model.MatchResult, bool) {
	if s == nil {
		return nil, false
	}
	data, found := s.cache.Get(Key(claim))
	if !found {
		return nil, false
	}
	var result model.MatchResult
	if err := json.Unmarshal(data, &result); err != nil {
		// Corrupt entry: treat as miss and drop it
		_ = s.cache.Delete(Key(claim))
		return nil, false
	}
	return &result, true
}

// Put stores a completed result. Errors are swallowed: a failed write
// must never fail the request.
func (s *ResultStore) Put(claim model.Claim, result *model.MatchResult) {
	if s == nil || result == nil {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	_ = s.cache.Set(Key(claim), data, s.ttl)
}
