package llm

import (
	"context"
	"log/slog"
	"strings"
)

// Client is the text-in, text-out adapter the study features call. It
// sends one prompt and returns the reply text. Every failure is reported
// as *APIError; Client never retries.
type Client struct {
	provider  Provider
	purpose   string
	maxTokens int
	logger    *slog.Logger
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithClientPurpose sets the purpose label recorded for each request.
// Without it the label comes from the request context.
func WithClientPurpose(purpose string) ClientOption {
	return func(c *Client) { c.purpose = purpose }
}

// WithMaxTokens sets the reply token budget.
func WithMaxTokens(n int) ClientOption {
	return func(c *Client) { c.maxTokens = n }
}

// WithClientLogger sets the logger used for failed requests.
func WithClientLogger(l *slog.Logger) ClientOption {
	return func(c *Client) { c.logger = l }
}

// NewClient wraps a Provider as a prompt-level adapter.
func NewClient(p Provider, opts ...ClientOption) *Client {
	c := &Client{
		provider:  p,
		maxTokens: 4096,
		logger:    slog.Default(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// ModelID returns the model behind the client.
func (c *Client) ModelID() string {
	return c.provider.ModelID()
}

// Generate sends prompt and returns the model's raw text. A reply that is
// blank after trimming is an error wrapping ErrEmptyResponse.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	purpose := c.purpose
	if purpose != "" {
		ctx = WithPurpose(ctx, purpose)
	} else {
		purpose = PurposeFrom(ctx)
	}

	resp, err := c.provider.Complete(ctx, Request{Prompt: prompt, MaxTokens: c.maxTokens})
	if err != nil {
		c.logger.Warn("llm request failed", "purpose", purpose, "model", c.provider.ModelID(), "error", err)
		return "", &APIError{Purpose: purpose, Err: err}
	}
	if strings.TrimSpace(resp.Text) == "" {
		c.logger.Warn("llm returned empty text", "purpose", purpose, "model", resp.Model)
		return "", &APIError{Purpose: purpose, Err: ErrEmptyResponse}
	}
	if resp.Finish == FinishLength {
		c.logger.Debug("llm reply truncated", "purpose", purpose, "model", resp.Model)
	}
	return resp.Text, nil
}
