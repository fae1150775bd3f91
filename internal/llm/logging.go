package llm

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/abhisek/studybuddy/internal/store"
)

// LoggingProvider records every request, successful or not, as an LLM
// request event in the store.
type LoggingProvider struct {
	inner  Provider
	name   string
	repo   store.EventRepo
	logger *slog.Logger
}

// WithLogging wraps p with event logging. name is the provider label
// stored with each event, e.g. "gemini".
func WithLogging(p Provider, name string, repo store.EventRepo) Provider {
	return &LoggingProvider{inner: p, name: name, repo: repo, logger: slog.Default()}
}

func (l *LoggingProvider) Complete(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Complete(ctx, req)

	ev := store.LLMRequestEventData{
		Provider:    l.name,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: requestTranscript(req),
	}
	if resp != nil {
		if resp.Model != "" {
			ev.Model = resp.Model
		}
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = resp.Text
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}

	l.logger.Debug("llm request",
		"provider", ev.Provider,
		"model", ev.Model,
		"purpose", ev.Purpose,
		"latency_ms", ev.LatencyMs,
		"success", ev.Success,
	)

	// A cancelled request is still recorded.
	if logErr := l.repo.AppendLLMRequest(context.WithoutCancel(ctx), ev); logErr != nil {
		l.logger.Warn("failed to record LLM request event", "error", logErr)
	}
	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// requestTranscript renders a request the way `llm view` shows it.
func requestTranscript(req Request) string {
	var b strings.Builder
	if req.Instructions != "" {
		b.WriteString("[instructions]\n")
		b.WriteString(req.Instructions)
		b.WriteString("\n\n")
	}
	b.WriteString("[prompt]\n")
	b.WriteString(req.Prompt)
	b.WriteString("\n")
	return b.String()
}
