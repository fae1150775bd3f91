package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/viper"

	"github.com/abhisek/studybuddy/internal/llm"
	"github.com/abhisek/studybuddy/internal/store"
)

// summaryCacheTTL bounds how long identical notes reuse a summary.
const summaryCacheTTL = 30 * time.Minute

// llmConfig resolves the LLM configuration from the environment, then
// applies the --provider and --model overrides.
func llmConfig(v *viper.Viper) llm.Config {
	cfg := llm.ResolveConfig()
	if p := v.GetString("provider"); p != "" {
		cfg.Provider = p
	}
	cfg.SetModel(v.GetString("model"))
	return cfg
}

// clients holds the prompt-level adapters for each call site. They share
// one provider chain, so rate limiting and event logging span all of them.
type clients struct {
	cfg      llm.Config
	provider llm.Provider

	Quiz    *llm.Client
	Chat    *llm.Client
	Summary *llm.Client
}

func newClients(ctx context.Context, v *viper.Viper, repo store.EventRepo) (*clients, error) {
	cfg := llmConfig(v)
	p, err := llm.NewProvider(ctx, cfg, repo)
	if err != nil {
		return nil, fmt.Errorf("LLM provider not configured: %w", err)
	}
	logger := slog.Default()

	return &clients{
		cfg:      cfg,
		provider: p,
		Quiz:     llm.NewClient(p, llm.WithClientLogger(logger)),
		Chat: llm.NewClient(llm.WithRetry(p, cfg.Retry),
			llm.WithClientPurpose("chat"), llm.WithClientLogger(logger)),
		Summary: llm.NewClient(llm.WithCache(p, llm.NewResponseCache(summaryCacheTTL)),
			llm.WithClientPurpose("summary"), llm.WithClientLogger(logger)),
	}, nil
}

// ModelID returns the model answering requests.
func (c *clients) ModelID() string {
	return c.provider.ModelID()
}
