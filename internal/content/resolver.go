package content

import (
	"context"

	"github.com/abhisek/mockinterview/internal/interview"
	"github.com/abhisek/mockinterview/internal/llm"
)

// Resolver hands out LLM content providers chosen per user, backed by a
// ProviderCache so each (owner, provider, model, key) builds one client.
type Resolver struct {
	cache  *llm.ProviderCache
	config Config
}

func NewResolver(cache *llm.ProviderCache, cfg Config) *Resolver {
	return &Resolver{cache: cache, config: cfg}
}

// Content returns a provider for owner with o applied.
func (r *Resolver) Content(ctx context.Context, owner string, o llm.Override) (interview.ContentProvider, error) {
	p, err := r.cache.Get(ctx, owner, o)
	if err != nil {
		return nil, err
	}
	return NewLLM(p, r.config), nil
}

// Evict forgets every provider cached for owner.
func (r *Resolver) Evict(owner string) int {
	return r.cache.Evict(owner)
}
