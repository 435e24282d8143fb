package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// NewProvider builds the configured backend wrapped as
// caller → retry → logging → backend, so each attempt is recorded.
func NewProvider(ctx context.Context, cfg Config, sink EventSink, log *zap.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		base = NewMockProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return WithRetry(WithLogging(base, cfg.Provider, sink, log), cfg.Retry), nil
}

// NewProviderFromEnv reads MOCKINTERVIEW_* configuration and falls back to
// the vendors' standard key variables when the configured provider has no
// key. It returns the resolved Config alongside the provider.
func NewProviderFromEnv(ctx context.Context, sink EventSink, log *zap.Logger) (Provider, Config, error) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		return nil, Config{}, err
	}
	if verr := cfg.Validate(); verr != nil {
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, cfg, verr
		}
		discovered.Retry = cfg.Retry
		cfg = discovered
	}
	p, err := NewProvider(ctx, cfg, sink, log)
	return p, cfg, err
}
