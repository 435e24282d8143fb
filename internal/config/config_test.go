package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mockinterview/internal/llm"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := LoadFromMap(map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := LoadFromMap(map[string]string{
		"MOCKINTERVIEW_LISTEN_ADDR":                "127.0.0.1:9000",
		"MOCKINTERVIEW_DB":                         "/tmp/events.db",
		"MOCKINTERVIEW_LOG_LEVEL":                  "debug",
		"MOCKINTERVIEW_LOG_FILE":                   "/tmp/mi.log",
		"MOCKINTERVIEW_JWT_SECRET":                 "topsecret",
		"MOCKINTERVIEW_JWT_TTL":                    "2h",
		"MOCKINTERVIEW_INTERVIEW_CONTENT":          " BANK ",
		"MOCKINTERVIEW_INTERVIEW_QUESTION_BANK":    "/etc/bank.yaml",
		"MOCKINTERVIEW_INTERVIEW_PROVIDER_TIMEOUT": "5s",
		"MOCKINTERVIEW_INTERVIEW_RETENTION":        "1h",
		"MOCKINTERVIEW_LLM_PROVIDER":               "OpenAI",
		"MOCKINTERVIEW_OPENAI_API_KEY":             "sk-test",
		"MOCKINTERVIEW_LLM_RETRY_MAX_ATTEMPTS":     "5",
	})
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.ListenAddr)
	assert.Equal(t, "/tmp/events.db", cfg.DBPath)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/mi.log", cfg.Log.File)
	assert.Equal(t, 10, cfg.Log.MaxSizeMB)
	assert.Equal(t, "topsecret", cfg.Auth.Secret)
	assert.Equal(t, "mockinterview", cfg.Auth.Issuer)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TTL)
	assert.Equal(t, ContentBank, cfg.Interview.Content)
	assert.Equal(t, "/etc/bank.yaml", cfg.Interview.BankPath)
	assert.Equal(t, 5*time.Second, cfg.Interview.ProviderTimeout)
	assert.Equal(t, time.Hour, cfg.Interview.Retention)
	assert.Equal(t, 10*time.Minute, cfg.Interview.ReapInterval)

	assert.Equal(t, llm.ProviderOpenAI, cfg.LLM.Provider)
	assert.Equal(t, "sk-test", cfg.LLM.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.OpenAI.Model)
	assert.Equal(t, 5, cfg.LLM.Retry.MaxAttempts)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"content":  {"MOCKINTERVIEW_INTERVIEW_CONTENT": "magic"},
		"timeout":  {"MOCKINTERVIEW_INTERVIEW_PROVIDER_TIMEOUT": "0s"},
		"ttl":      {"MOCKINTERVIEW_JWT_TTL": "-1h"},
		"duration": {"MOCKINTERVIEW_INTERVIEW_RETENTION": "forever"},
		"cache":    {"MOCKINTERVIEW_INTERVIEW_PROVIDER_CACHE_SIZE": "0"},
	}
	for name, vars := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFromMap(vars)
			require.Error(t, err)
		})
	}
}

func TestLoad_Retention(t *testing.T) {
	tests := []struct {
		retention string
		wantErr   bool
	}{
		{"0s", false},
		{"60m", false},
		{"48h", false},
		{"30m", true},
		{"59m59s", true},
		{"-1h", true},
	}
	for _, tt := range tests {
		t.Run(tt.retention, func(t *testing.T) {
			cfg, err := LoadFromMap(map[string]string{"MOCKINTERVIEW_INTERVIEW_RETENTION": tt.retention})
			if tt.wantErr {
				assert.ErrorContains(t, err, "INTERVIEW_RETENTION")
				return
			}
			require.NoError(t, err)
			assert.GreaterOrEqual(t, cfg.Interview.Retention, time.Duration(0))
		})
	}
}

func TestAuthSettings(t *testing.T) {
	cfg := Default()
	cfg.Auth.Secret = "abc"
	a := cfg.AuthSettings()
	assert.Equal(t, []byte("abc"), a.Secret)
	assert.Equal(t, "mockinterview", a.Issuer)
	assert.Equal(t, 24*time.Hour, a.TTL)
}
