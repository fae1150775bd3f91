package llm

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects the backend: "gemini", "openai", "anthropic",
	// "openrouter" or "mock".
	Provider string

	Gemini     ProviderConfig
	OpenAI     ProviderConfig
	Anthropic  ProviderConfig
	OpenRouter ProviderConfig

	Retry     RetryConfig
	RateLimit RateLimitConfig

	// Timeout bounds a single request. Zero disables the bound.
	Timeout time.Duration
}

// ProviderConfig is the connection setting of one backend.
type ProviderConfig struct {
	APIKey  string
	Model   string // friendly name or provider model ID
	BaseURL string // optional endpoint override; ignored by gemini
}

// RetryConfig configures retry behavior for transient failures.
// Only callers that opt in with WithRetry use it.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// RateLimitConfig throttles outgoing requests. A zero PerSecond disables it.
type RateLimitConfig struct {
	PerSecond float64
	Burst     int
}

// backend describes one selectable provider. The order of backends is the
// discovery order.
type backend struct {
	name         string
	defaultModel string
	keyEnv       string // conventional key variable probed by DiscoverConfig
	settings     func(*Config) *ProviderConfig
}

var backends = []backend{
	{"gemini", "gemini-flash", "GEMINI_API_KEY", func(c *Config) *ProviderConfig { return &c.Gemini }},
	{"openai", "gpt-mini", "OPENAI_API_KEY", func(c *Config) *ProviderConfig { return &c.OpenAI }},
	{"anthropic", "claude-haiku", "ANTHROPIC_API_KEY", func(c *Config) *ProviderConfig { return &c.Anthropic }},
	{"openrouter", "google/gemini-2.5-flash", "OPENROUTER_API_KEY", func(c *Config) *ProviderConfig { return &c.OpenRouter }},
}

func lookupBackend(name string) (backend, bool) {
	for _, b := range backends {
		if b.name == name {
			return b, true
		}
	}
	return backend{}, false
}

// DefaultConfig returns the configuration used when nothing is set:
// Gemini Flash, one request per second, one minute per request.
func DefaultConfig() Config {
	cfg := Config{
		Provider: "gemini",
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		RateLimit: RateLimitConfig{PerSecond: 1, Burst: 2},
		Timeout:   time.Minute,
	}
	for _, b := range backends {
		b.settings(&cfg).Model = b.defaultModel
	}
	return cfg
}

// ConfigFromEnv builds a Config from STUDYBUDDY_* variables:
// STUDYBUDDY_LLM_PROVIDER, STUDYBUDDY_<BACKEND>_API_KEY, _MODEL and
// _BASE_URL per backend, STUDYBUDDY_LLM_RPS and STUDYBUDDY_LLM_TIMEOUT.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if p := os.Getenv("STUDYBUDDY_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}

	for _, b := range backends {
		prefix := "STUDYBUDDY_" + strings.ToUpper(b.name) + "_"
		pc := b.settings(&cfg)
		setFromEnv(&pc.APIKey, prefix+"API_KEY")
		setFromEnv(&pc.Model, prefix+"MODEL")
		setFromEnv(&pc.BaseURL, prefix+"BASE_URL")
	}

	if v := os.Getenv("STUDYBUDDY_LLM_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.RateLimit.PerSecond = f
		}
	}
	if v := os.Getenv("STUDYBUDDY_LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Timeout = d
		}
	}
	return cfg
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// DiscoverConfig selects the first backend whose conventional key
// variable (GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY,
// OPENROUTER_API_KEY) is set. ok is false when none is.
func DiscoverConfig() (cfg Config, ok bool) {
	cfg = DefaultConfig()
	for _, b := range backends {
		if k := os.Getenv(b.keyEnv); k != "" {
			cfg.Provider = b.name
			b.settings(&cfg).APIKey = k
			return cfg, true
		}
	}
	return Config{}, false
}

// ResolveConfig returns the STUDYBUDDY_* configuration when it names a
// provider or carries a key, and otherwise what DiscoverConfig finds.
// Rate limit and timeout settings apply either way.
func ResolveConfig() Config {
	cfg := ConfigFromEnv()
	if os.Getenv("STUDYBUDDY_LLM_PROVIDER") != "" || cfg.hasKey() {
		return cfg
	}
	if found, ok := DiscoverConfig(); ok {
		found.RateLimit = cfg.RateLimit
		found.Timeout = cfg.Timeout
		return found
	}
	return cfg
}

func (c Config) hasKey() bool {
	for _, b := range backends {
		if b.settings(&c).APIKey != "" {
			return true
		}
	}
	return false
}

// SetModel overrides the model of the selected provider. An empty model
// leaves the configuration unchanged.
func (c *Config) SetModel(model string) {
	if model == "" {
		return
	}
	if b, ok := lookupBackend(c.Provider); ok {
		b.settings(c).Model = model
	}
}

// Selected returns the settings of the selected provider.
func (c *Config) Selected() ProviderConfig {
	if b, ok := lookupBackend(c.Provider); ok {
		return *b.settings(c)
	}
	return ProviderConfig{}
}

// Validate checks that the selected provider exists and has its key.
func (c Config) Validate() error {
	if c.RateLimit.PerSecond < 0 {
		return fmt.Errorf("rate limit must not be negative, got %v", c.RateLimit.PerSecond)
	}
	if c.Provider == "mock" {
		return nil
	}
	b, ok := lookupBackend(c.Provider)
	if !ok {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if b.settings(&c).APIKey == "" {
		return fmt.Errorf("%s or STUDYBUDDY_%s_API_KEY is required for the %s provider",
			b.keyEnv, strings.ToUpper(b.name), b.name)
	}
	return nil
}
