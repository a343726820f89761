package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/ppiankov/verimatch/internal/model"
)

// Cache defines the interface for result caching backends
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
}

// Key generates a cache key from a claim. The key is derived from the
// normalized claim text, so claims differing only in case or whitespace
// share an entry.
func Key(claim model.Claim) string {
	hash := sha256.Sum256([]byte(claim.Normalized))
	return "verimatch:v1:" + hex.EncodeToString(hash[:])
}
