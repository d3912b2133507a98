// pkg/memcache/generation_cache.go
package memcache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

// GenerationCache remembers successful model replies keyed by prompt.
type GenerationCache interface {
	Get(key string) (string, bool)
	Set(key string, text string)
	Len() int
}

type generationCache struct {
	store *cache.Cache
}

// NewGenerationCache returns a TTL cache. A non-positive ttl disables caching.
func NewGenerationCache(ttl time.Duration) GenerationCache {
	if ttl <= 0 {
		return noopCache{}
	}
	return &generationCache{
		store: cache.New(ttl, 2*ttl),
	}
}

func (c *generationCache) Get(key string) (string, bool) {
	v, ok := c.store.Get(key)
	if !ok {
		return "", false
	}
	text, ok := v.(string)
	return text, ok
}

func (c *generationCache) Set(key string, text string) {
	c.store.Set(key, text, cache.DefaultExpiration)
}

func (c *generationCache) Len() int {
	return c.store.ItemCount()
}

type noopCache struct{}

func (noopCache) Get(string) (string, bool) { return "", false }
func (noopCache) Set(string, string)        {}
func (noopCache) Len() int                  { return 0 }

// CacheKey hashes the parts into a fixed-size key.
func CacheKey(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(sum[:])
}
