package llm

import (
	"errors"
	"net/http"
)

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	openRouterAppTitle       = "studybuddy"
)

// OpenRouterProvider routes chat completions through OpenRouter. Model IDs
// carry a vendor prefix ("google/gemini-2.5-flash") and are sent as given.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates an OpenRouter backend. Requests are
// attributed to the app through the X-Title header.
func NewOpenRouterProvider(cfg ProviderConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openrouter API key is required")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}
	hc := &http.Client{Transport: titleTransport{base: http.DefaultTransport, title: openRouterAppTitle}}
	return &OpenRouterProvider{newChatCompletions(cfg.APIKey, baseURL, cfg.Model, hc)}, nil
}

type titleTransport struct {
	base  http.RoundTripper
	title string
}

func (t titleTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.Header.Set("X-Title", t.title)
	return t.base.RoundTrip(r)
}
