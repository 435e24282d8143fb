// Package config loads server settings from MOCKINTERVIEW_* environment
// variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/abhisek/mockinterview/internal/auth"
	"github.com/abhisek/mockinterview/internal/interview"
	"github.com/abhisek/mockinterview/internal/llm"
)

// Content sources.
const (
	ContentLLM  = "llm"
	ContentBank = "bank"
)

// Config is the full server configuration.
type Config struct {
	ListenAddr      string        `env:"LISTEN_ADDR"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`

	// DBPath is the event store location. Empty means store.DefaultDBPath.
	DBPath string `env:"DB"`

	Log       LogConfig       `envPrefix:"LOG_"`
	Auth      AuthConfig      `envPrefix:"JWT_"`
	Interview InterviewConfig `envPrefix:"INTERVIEW_"`

	LLM llm.Config
}

type LogConfig struct {
	Level string `env:"LEVEL"`
	// File enables a rotating JSON log file in addition to the console.
	File       string `env:"FILE"`
	MaxSizeMB  int    `env:"MAX_SIZE_MB"`
	MaxBackups int    `env:"MAX_BACKUPS"`
	MaxAgeDays int    `env:"MAX_AGE_DAYS"`
}

type AuthConfig struct {
	Secret string        `env:"SECRET"`
	Issuer string        `env:"ISSUER"`
	TTL    time.Duration `env:"TTL"`
}

type InterviewConfig struct {
	// Content is "llm" or "bank".
	Content         string        `env:"CONTENT"`
	BankPath        string        `env:"QUESTION_BANK"`
	ProviderTimeout time.Duration `env:"PROVIDER_TIMEOUT"`

	// ProviderCacheSize bounds the per-user LLM clients kept for header
	// overrides.
	ProviderCacheSize int `env:"PROVIDER_CACHE_SIZE"`

	// Retention is how long a session is kept after creation. Zero disables
	// the reaper; otherwise it must outlast the longest time limit.
	Retention    time.Duration `env:"RETENTION"`
	ReapInterval time.Duration `env:"REAP_INTERVAL"`
}

func Default() Config {
	return Config{
		ListenAddr:      ":8080",
		ShutdownTimeout: 10 * time.Second,
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
		Auth: AuthConfig{
			Issuer: "mockinterview",
			TTL:    24 * time.Hour,
		},
		Interview: InterviewConfig{
			Content:           ContentLLM,
			ProviderTimeout:   30 * time.Second,
			ProviderCacheSize: llm.DefaultCacheSize,
			Retention:         24 * time.Hour,
			ReapInterval:      10 * time.Minute,
		},
		LLM: llm.DefaultConfig(),
	}
}

// Load overlays the process environment on Default.
func Load() (Config, error) {
	return load(env.Options{Prefix: llm.EnvPrefix})
}

// LoadFromMap is Load over an explicit variable set.
func LoadFromMap(vars map[string]string) (Config, error) {
	return load(env.Options{Prefix: llm.EnvPrefix, Environment: vars})
}

func load(opts env.Options) (Config, error) {
	cfg := Default()
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))
	cfg.Interview.Content = strings.ToLower(strings.TrimSpace(cfg.Interview.Content))
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Interview.Content {
	case ContentLLM, ContentBank:
	default:
		return fmt.Errorf("%sINTERVIEW_CONTENT must be %q or %q, got %q", llm.EnvPrefix, ContentLLM, ContentBank, c.Interview.Content)
	}
	if c.Interview.ProviderTimeout <= 0 {
		return fmt.Errorf("%sINTERVIEW_PROVIDER_TIMEOUT must be positive", llm.EnvPrefix)
	}
	if c.Interview.ProviderCacheSize < 1 {
		return fmt.Errorf("%sINTERVIEW_PROVIDER_CACHE_SIZE must be at least 1", llm.EnvPrefix)
	}
	if c.Interview.Retention < 0 || (c.Interview.Retention > 0 && c.Interview.Retention < interview.MaxTimeLimit) {
		return fmt.Errorf("%sINTERVIEW_RETENTION must be 0 or at least %s, got %s",
			llm.EnvPrefix, interview.MaxTimeLimit, c.Interview.Retention)
	}
	if c.Auth.TTL <= 0 {
		return fmt.Errorf("%sJWT_TTL must be positive", llm.EnvPrefix)
	}
	return nil
}

// AuthSettings converts the JWT settings. The secret is checked when a
// verifier or issuer is built, so commands that never touch tokens run
// without one.
func (c Config) AuthSettings() auth.Config {
	return auth.Config{
		Secret: []byte(c.Auth.Secret),
		Issuer: c.Auth.Issuer,
		TTL:    c.Auth.TTL,
	}
}
