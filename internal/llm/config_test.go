package llm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFromMap_Defaults(t *testing.T) {
	cfg, err := ConfigFromMap(map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestConfigFromMap_Overrides(t *testing.T) {
	cfg, err := ConfigFromMap(map[string]string{
		"MOCKINTERVIEW_LLM_PROVIDER":           " OpenAI ",
		"MOCKINTERVIEW_OPENAI_API_KEY":         "sk-test",
		"MOCKINTERVIEW_OPENAI_MODEL":           "gpt-4.1-mini",
		"MOCKINTERVIEW_OPENAI_BASE_URL":        "http://localhost:8080/v1",
		"MOCKINTERVIEW_LLM_RETRY_MAX_ATTEMPTS": "5",
		"MOCKINTERVIEW_LLM_RETRY_MAX_WAIT":     "2s",
	})
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
	assert.Equal(t, "gpt-4.1-mini", cfg.OpenAI.Model)
	assert.Equal(t, "http://localhost:8080/v1", cfg.OpenAI.BaseURL)
	assert.Equal(t, 5, cfg.Retry.MaxAttempts)
	assert.Equal(t, 2*time.Second, cfg.Retry.MaxWait)
	assert.Equal(t, "claude-haiku", cfg.Anthropic.Model, "untouched sections keep defaults")
	assert.NoError(t, cfg.Validate())
}

func TestConfigFromMap_BadDuration(t *testing.T) {
	_, err := ConfigFromMap(map[string]string{"MOCKINTERVIEW_LLM_RETRY_MAX_WAIT": "soon"})
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"anthropic without key", Config{Provider: ProviderAnthropic}, "MOCKINTERVIEW_ANTHROPIC_API_KEY"},
		{"anthropic with key", Config{Provider: ProviderAnthropic, Anthropic: AnthropicConfig{APIKey: "k"}}, ""},
		{"gemini without key", Config{Provider: ProviderGemini}, "MOCKINTERVIEW_GEMINI_API_KEY"},
		{"openrouter with key", Config{Provider: ProviderOpenRouter, OpenRouter: OpenRouterConfig{APIKey: "k"}}, ""},
		{"mock needs no key", Config{Provider: ProviderMock}, ""},
		{"unknown provider", Config{Provider: "llama"}, "unknown LLM provider"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestConfig_Apply(t *testing.T) {
	base := DefaultConfig()
	base.Anthropic.APIKey = "server-key"

	same := base.Apply(Override{})
	assert.Equal(t, base, same)

	user := base.Apply(Override{Provider: "OpenAI", Model: "gpt-4o", APIKey: "user-key"})
	assert.Equal(t, ProviderOpenAI, user.Provider)
	assert.Equal(t, "gpt-4o", user.OpenAI.Model)
	assert.Equal(t, "user-key", user.OpenAI.APIKey)
	assert.Equal(t, "server-key", user.Anthropic.APIKey)

	modelOnly := base.Apply(Override{Model: "claude-sonnet"})
	assert.Equal(t, ProviderAnthropic, modelOnly.Provider)
	assert.Equal(t, "claude-sonnet", modelOnly.Anthropic.Model)
	assert.Equal(t, "server-key", modelOnly.Anthropic.APIKey)

	assert.True(t, Override{}.IsZero())
	assert.False(t, Override{Model: "x"}.IsZero())
}

func TestDiscoverConfig(t *testing.T) {
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
	_, ok := DiscoverConfig()
	assert.False(t, ok)

	t.Setenv("ANTHROPIC_API_KEY", "a")
	t.Setenv("OPENAI_API_KEY", "o")
	cfg, ok := DiscoverConfig()
	require.True(t, ok)
	assert.Equal(t, ProviderOpenAI, cfg.Provider, "OpenAI is probed before Anthropic")
	assert.Equal(t, "o", cfg.OpenAI.APIKey)
}
