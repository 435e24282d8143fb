package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the providers a ProviderCache keeps.
const DefaultCacheSize = 128

// BuildFunc constructs a provider for a resolved configuration.
type BuildFunc func(ctx context.Context, cfg Config) (Provider, error)

// ProviderCache hands out per-user providers keyed by a fingerprint of the
// owner and the effective provider, model and key. It holds at most its
// capacity; the least recently used provider is dropped first.
type ProviderCache struct {
	base    Config
	build   BuildFunc
	entries *lru.Cache[string, cacheEntry]
}

type cacheEntry struct {
	owner    string
	provider Provider
}

// NewProviderCache creates a cache holding up to size providers. A size
// below one means DefaultCacheSize.
func NewProviderCache(base Config, size int, build BuildFunc) *ProviderCache {
	if size < 1 {
		size = DefaultCacheSize
	}
	entries, err := lru.New[string, cacheEntry](size)
	if err != nil {
		// lru.New only fails for a non-positive size.
		panic(err)
	}
	return &ProviderCache{base: base, build: build, entries: entries}
}

// Get returns the provider for owner with o applied to the base config,
// building and caching it on first use. Construction runs without a lock
// held; when two callers race on the same key the first insert wins.
func (c *ProviderCache) Get(ctx context.Context, owner string, o Override) (Provider, error) {
	cfg := c.base.Apply(o)
	key := fingerprint(owner, cfg)

	if e, ok := c.entries.Get(key); ok {
		return e.provider, nil
	}
	p, err := c.build(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("build %s provider: %w", cfg.Provider, err)
	}
	if prev, ok, _ := c.entries.PeekOrAdd(key, cacheEntry{owner: owner, provider: p}); ok {
		return prev.provider, nil
	}
	return p, nil
}

// Evict drops every provider cached for owner, e.g. after the user
// changes their settings. It returns the number removed.
func (c *ProviderCache) Evict(owner string) int {
	n := 0
	for _, k := range c.entries.Keys() {
		if e, ok := c.entries.Peek(k); ok && e.owner == owner && c.entries.Remove(k) {
			n++
		}
	}
	return n
}

func (c *ProviderCache) Len() int {
	return c.entries.Len()
}

// fingerprint hashes the fields that make two providers interchangeable.
// API keys never appear in the key in clear text.
func fingerprint(owner string, cfg Config) string {
	var model, key string
	switch cfg.Provider {
	case ProviderAnthropic:
		model, key = cfg.Anthropic.Model, cfg.Anthropic.APIKey
	case ProviderOpenAI:
		model, key = cfg.OpenAI.Model, cfg.OpenAI.APIKey
	case ProviderGemini:
		model, key = cfg.Gemini.Model, cfg.Gemini.APIKey
	case ProviderOpenRouter:
		model, key = cfg.OpenRouter.Model, cfg.OpenRouter.APIKey
	}
	sum := sha256.Sum256([]byte(strings.Join([]string{owner, cfg.Provider, model, key}, "\x00")))
	return hex.EncodeToString(sum[:])
}
