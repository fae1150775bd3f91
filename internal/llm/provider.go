package llm

import "context"

// Provider is one model backend. Every study feature is single-turn:
// a prompt goes in and free text comes back. Callers that expect
// structure extract it from the text themselves.
type Provider interface {
	Complete(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier requests are sent to.
	ModelID() string
}

// Request is a single-turn completion request.
type Request struct {
	// Instructions is sent as the system prompt when non-empty.
	Instructions string

	// Prompt is the user turn.
	Prompt string

	// MaxTokens caps the reply. Zero leaves the provider default.
	MaxTokens int

	// Temperature is passed through when positive.
	Temperature float64
}

// FinishReason says why the model stopped producing text.
type FinishReason string

const (
	FinishStop   FinishReason = "stop"
	FinishLength FinishReason = "length"
	FinishOther  FinishReason = "other"
)

// Response is the model's reply.
type Response struct {
	Text   string
	Model  string
	Finish FinishReason
	Usage  Usage
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Total returns input plus output tokens.
func (u Usage) Total() int {
	return u.InputTokens + u.OutputTokens
}
