package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/studybuddy/internal/store"
)

// NewProvider builds the configured backend and its standard decorators:
// per-request timeout, event logging when repo is non-nil, then the rate
// limiter. Retry and caching are opt-in per call site.
func NewProvider(ctx context.Context, cfg Config, repo store.EventRepo) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p, err := newBackend(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	if cfg.Timeout > 0 {
		p = WithTimeout(p, cfg.Timeout)
	}
	if repo != nil {
		p = WithLogging(p, cfg.Provider, repo)
	}
	if limiter := NewLimiter(cfg.RateLimit); limiter != nil {
		p = WithRateLimit(p, limiter)
	}
	return p, nil
}

func newBackend(ctx context.Context, cfg Config) (Provider, error) {
	pc := cfg.Selected()
	switch cfg.Provider {
	case "gemini":
		return NewGeminiProvider(ctx, pc)
	case "openai":
		return NewOpenAIProvider(pc)
	case "anthropic":
		return NewAnthropicProvider(pc)
	case "openrouter":
		return NewOpenRouterProvider(pc)
	case "mock":
		return NewMockProvider(), nil
	}
	return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
}
