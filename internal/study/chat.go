package study

import (
	"context"
	"errors"
	"strings"
)

// Generator sends a prompt to the model and returns its raw text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ErrEmptyInput is returned when a chat message or notes hold no text.
var ErrEmptyInput = errors.New("input is empty")

const chatTemplate = "Answer clearly with line breaks, bullets, and bold headings:\n\n"

// Chat is a single-shot question and answer loop that keeps a transcript.
// Each question is sent on its own; earlier turns are not part of the prompt.
type Chat struct {
	gen        Generator
	transcript Transcript
}

// NewChat creates a chat that asks gen.
func NewChat(gen Generator) *Chat {
	return &Chat{gen: gen}
}

// Ask sends input to the model and returns its answer. Both turns are
// recorded only when the call succeeds.
func (c *Chat) Ask(ctx context.Context, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", ErrEmptyInput
	}

	reply, err := c.gen.Generate(ctx, chatTemplate+input)
	if err != nil {
		return "", err
	}

	c.transcript.Append(RoleUser, input)
	c.transcript.Append(RoleAssistant, reply)
	return reply, nil
}

// Transcript returns the conversation so far.
func (c *Chat) Transcript() *Transcript {
	return &c.transcript
}

// Clear forgets the conversation.
func (c *Chat) Clear() {
	c.transcript.Clear()
}
