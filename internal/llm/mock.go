package llm

import (
	"context"
	"sync"
)

// MockResponse is one canned reply for MockProvider.
type MockResponse struct {
	Text  string
	Usage Usage
	Err   error

	// Before runs just before the reply is returned, outside the provider
	// lock. Tests use it to act while a request is in flight.
	Before func()
}

// TextResponse returns a canned plain-text reply.
func TextResponse(text string) MockResponse {
	return MockResponse{Text: text}
}

// MockProvider replays canned replies in FIFO order and records every
// request. It is also selectable as the "mock" provider.
type MockProvider struct {
	mu      sync.Mutex
	replies []MockResponse
	Calls   []Request
}

// NewMockProvider creates a MockProvider with the given canned replies.
func NewMockProvider(replies ...MockResponse) *MockProvider {
	return &MockProvider{replies: replies}
}

// Complete returns the next canned reply, or ErrProviderUnavailable once
// the queue is empty.
func (m *MockProvider) Complete(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, req)
	if len(m.replies) == 0 {
		m.mu.Unlock()
		return nil, &ErrProviderUnavailable{}
	}
	r := m.replies[0]
	m.replies = m.replies[1:]
	m.mu.Unlock()

	if r.Before != nil {
		r.Before()
	}
	if r.Err != nil {
		return nil, r.Err
	}
	return &Response{Text: r.Text, Model: "mock", Finish: FinishStop, Usage: r.Usage}, nil
}

func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse queues another canned reply.
func (m *MockProvider) AddResponse(r MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies = append(m.replies, r)
}

// CallCount returns the number of requests received.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// LastPrompt returns the prompt of the most recent request.
func (m *MockProvider) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return ""
	}
	return m.Calls[len(m.Calls)-1].Prompt
}
