package llm

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// RateLimitProvider is a decorator that waits for a token from a shared
// limiter before every request.
type RateLimitProvider struct {
	inner   Provider
	limiter *rate.Limiter
}

// WithRateLimit wraps a Provider with client-side throttling.
func WithRateLimit(p Provider, limiter *rate.Limiter) Provider {
	return &RateLimitProvider{inner: p, limiter: limiter}
}

// NewLimiter builds a limiter from config, or nil when throttling is off.
func NewLimiter(cfg RateLimitConfig) *rate.Limiter {
	if cfg.PerSecond <= 0 {
		return nil
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(cfg.PerSecond), burst)
}

func (r *RateLimitProvider) Complete(ctx context.Context, req Request) (*Response, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("wait for rate limiter: %w", err)
	}
	return r.inner.Complete(ctx, req)
}

func (r *RateLimitProvider) ModelID() string {
	return r.inner.ModelID()
}
