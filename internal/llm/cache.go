package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// CachingProvider memoizes successful responses for identical requests.
// Use it only for idempotent prompts; quiz generation and answer keys must
// always reach the model.
type CachingProvider struct {
	inner Provider
	cache *gocache.Cache
}

// WithCache wraps a Provider with an in-memory response cache.
func WithCache(p Provider, c *gocache.Cache) Provider {
	return &CachingProvider{inner: p, cache: c}
}

// NewResponseCache creates a cache with the given TTL.
func NewResponseCache(ttl time.Duration) *gocache.Cache {
	return gocache.New(ttl, 2*ttl)
}

func (c *CachingProvider) Complete(ctx context.Context, req Request) (*Response, error) {
	key := c.key(req)
	if v, ok := c.cache.Get(key); ok {
		if resp, ok := v.(*Response); ok {
			cp := *resp
			return &cp, nil
		}
	}

	resp, err := c.inner.Complete(ctx, req)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, resp, gocache.DefaultExpiration)
	return resp, nil
}

func (c *CachingProvider) ModelID() string {
	return c.inner.ModelID()
}

func (c *CachingProvider) key(req Request) string {
	sum := sha256.Sum256([]byte(c.inner.ModelID() + "\x00" + requestTranscript(req)))
	return hex.EncodeToString(sum[:])
}
