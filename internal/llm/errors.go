package llm

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrRateLimit indicates the provider throttled the request (HTTP 429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited, retry after %s: %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down, unreachable or
// rejected the call for a reason other than throttling.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates a reply that carried no usable text, such
// as a completion with no choices.
type ErrInvalidResponse struct {
	Err error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrBlocked indicates the provider refused to answer, e.g. a safety
// filter stopped generation before any text was produced.
type ErrBlocked struct {
	Reason string
}

func (e *ErrBlocked) Error() string {
	return fmt.Sprintf("LLM response blocked: %s", e.Reason)
}

// APIError is the single failure type returned by Client. It covers
// transport errors, provider errors, cancellations and empty replies.
type APIError struct {
	Purpose string
	Err     error
}

func (e *APIError) Error() string {
	if e.Purpose != "" {
		return fmt.Sprintf("%s request failed: %v", e.Purpose, e.Err)
	}
	return fmt.Sprintf("LLM request failed: %v", e.Err)
}

func (e *APIError) Unwrap() error { return e.Err }

// ErrEmptyResponse is wrapped by APIError when the model returned no text.
var ErrEmptyResponse = errors.New("empty response from model")

// IsRateLimited reports whether err was caused by provider throttling.
func IsRateLimited(err error) bool {
	var rl *ErrRateLimit
	return errors.As(err, &rl)
}

// classifyStatus maps an SDK error carrying an HTTP status onto the
// provider error types. status is 0 when the SDK error had none.
func classifyStatus(status int, err error) error {
	if status == http.StatusTooManyRequests {
		return &ErrRateLimit{Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}
