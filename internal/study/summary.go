package study

import (
	"context"

	"github.com/abhisek/studybuddy/internal/textnorm"
)

const summaryTemplate = "Summarize the following notes concisely with bullets and headings:\n\n"

// Summarizer condenses notes into a short outline.
type Summarizer struct {
	gen Generator
}

// NewSummarizer creates a summarizer that asks gen. Wrap the provider
// behind gen with llm.WithCache to reuse summaries of identical notes.
func NewSummarizer(gen Generator) *Summarizer {
	return &Summarizer{gen: gen}
}

// Summarize collapses whitespace in notes and asks for a summary.
func (s *Summarizer) Summarize(ctx context.Context, notes string) (string, error) {
	notes = textnorm.CollapseWhitespace(notes)
	if notes == "" {
		return "", ErrEmptyInput
	}
	return s.gen.Generate(ctx, summaryTemplate+notes)
}
