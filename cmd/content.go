package cmd

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/mockinterview/internal/config"
	"github.com/abhisek/mockinterview/internal/content"
	"github.com/abhisek/mockinterview/internal/interview"
	"github.com/abhisek/mockinterview/internal/llm"
)

// contentStack is the content provider chosen at startup plus, for LLM
// content, the per-user resolver the HTTP API uses for header overrides.
type contentStack struct {
	provider interview.ContentProvider
	resolver *content.Resolver
	model    string
}

// buildContent wires the question source named by cfg. LLM calls are
// recorded to sink.
func buildContent(ctx context.Context, cfg config.Config, sink llm.EventSink, log *zap.Logger) (*contentStack, error) {
	if cfg.Interview.Content == config.ContentBank {
		bank, err := content.LoadBank(cfg.Interview.BankPath)
		if err != nil {
			return nil, fmt.Errorf("load question bank: %w", err)
		}
		log.Info("using question bank", zap.Int("questions", bank.Size()))
		return &contentStack{provider: bank, model: "question-bank"}, nil
	}

	llmCfg := cfg.LLM
	if err := llmCfg.Validate(); err != nil {
		discovered, ok := llm.DiscoverConfig()
		if !ok {
			return nil, fmt.Errorf("LLM provider not configured: %w", err)
		}
		discovered.Retry = llmCfg.Retry
		llmCfg = discovered
	}

	provider, err := llm.NewProvider(ctx, llmCfg, sink, log)
	if err != nil {
		return nil, err
	}
	cache := llm.NewProviderCache(llmCfg, cfg.Interview.ProviderCacheSize, func(ctx context.Context, c llm.Config) (llm.Provider, error) {
		return llm.NewProvider(ctx, c, sink, log)
	})

	log.Info("using LLM content",
		zap.String("provider", llmCfg.Provider),
		zap.String("model", provider.ModelID()),
	)
	return &contentStack{
		provider: content.NewLLM(provider, content.DefaultConfig()),
		resolver: content.NewResolver(cache, content.DefaultConfig()),
		model:    provider.ModelID(),
	}, nil
}
