package content

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mockinterview/internal/interview"
	"github.com/abhisek/mockinterview/internal/llm"
)

func TestResolver(t *testing.T) {
	var built []llm.Config
	cache := llm.NewProviderCache(llm.DefaultConfig(), 0, func(_ context.Context, cfg llm.Config) (llm.Provider, error) {
		if cfg.Provider == "broken" {
			return nil, errors.New("no such backend")
		}
		built = append(built, cfg)
		return llm.NewMockProvider(llm.MockJSON(map[string]string{"followup": "Why?"})), nil
	})
	r := NewResolver(cache, DefaultConfig())
	ctx := context.Background()

	cp, err := r.Content(ctx, "u1", llm.Override{Provider: "openai", APIKey: "sk-1"})
	require.NoError(t, err)
	f, err := cp.GenerateFollowup(ctx, "Q", "A")
	require.NoError(t, err)
	assert.Equal(t, interview.SomeFollowup("Why?"), f)

	_, err = r.Content(ctx, "u1", llm.Override{Provider: "openai", APIKey: "sk-1"})
	require.NoError(t, err)
	require.Len(t, built, 1, "second lookup hits the cache")
	assert.Equal(t, "sk-1", built[0].OpenAI.APIKey)

	_, err = r.Content(ctx, "u1", llm.Override{Provider: "broken"})
	require.Error(t, err)

	assert.Equal(t, 1, r.Evict("u1"))
	assert.Equal(t, 0, r.Evict("u1"))
}
