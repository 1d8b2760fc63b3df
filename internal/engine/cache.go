package engine

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"github.com/markma27/pdfsaver/internal/model"
)

// cacheKeyLen is the number of hex characters of the text digest used as a
// cache key.
const cacheKeyLen = 16

// resultCache is a small FIFO cache of classification results keyed by a
// digest of the input text. The engine is deterministic for a given rule
// set, so entries are only ever evicted, never invalidated.
type resultCache struct {
	entries map[string]model.ClassificationResult
	order   []string
	max     int
	mu      sync.Mutex
}

// newResultCache creates a cache holding up to max entries. max <= 0
// disables caching.
func newResultCache(max int) *resultCache {
	return &resultCache{
		entries: make(map[string]model.ClassificationResult),
		max:     max,
	}
}

func (c *resultCache) get(text string) (model.ClassificationResult, bool) {
	if c.max <= 0 {
		return model.ClassificationResult{}, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	result, ok := c.entries[cacheKey(text)]
	return result, ok
}

func (c *resultCache) put(text string, result model.ClassificationResult) {
	if c.max <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(text)
	if _, ok := c.entries[key]; ok {
		return
	}

	for len(c.order) >= c.max {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[key] = result
	c.order = append(c.order, key)
}

// len reports the number of cached entries.
func (c *resultCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])[:cacheKeyLen]
}
