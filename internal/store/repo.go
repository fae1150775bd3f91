package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string    // LLM events only; empty matches all
	Session string    // quiz events only; empty matches all
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a recorded LLM request as read back from the store.
type LLMEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates LLM usage for one purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates LLM usage for one model ID.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// QuizAction names a quiz lifecycle event.
type QuizAction string

const (
	QuizGenerated        QuizAction = "generated"
	QuizGraded           QuizAction = "graded"
	QuizGenerationFailed QuizAction = "generation_failed"
	QuizGradingFailed    QuizAction = "grading_failed"
)

// QuizEventData captures a single quiz lifecycle event.
type QuizEventData struct {
	SessionID     string
	Action        QuizAction
	QuestionCount int
	Score         int
	Total         int
	Band          string
	Detail        string
}

// QuizEvent is a recorded quiz event as read back from the store.
type QuizEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	QuizEventData
}

// QuizSummary aggregates graded quizzes.
type QuizSummary struct {
	Graded       int
	Failed       int
	TotalCorrect int
	TotalAsked   int
	Perfect      int
}

// Accuracy returns the fraction of graded questions answered correctly.
func (s QuizSummary) Accuracy() float64 {
	if s.TotalAsked == 0 {
		return 0
	}
	return float64(s.TotalCorrect) / float64(s.TotalAsked)
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns one LLM event, or nil if id is unknown.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	// LLMUsageByPurpose aggregates token usage per purpose label.
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)

	// PruneLLMEvents deletes LLM events older than cutoff.
	PruneLLMEvents(ctx context.Context, cutoff time.Time) (int64, error)

	// AppendQuizEvent records a quiz lifecycle event.
	AppendQuizEvent(ctx context.Context, data QuizEventData) error

	// QueryQuizEvents returns quiz events, newest first.
	QueryQuizEvents(ctx context.Context, opts QueryOpts) ([]QuizEvent, error)

	// QuizSummary aggregates all graded and failed quizzes.
	QuizSummary(ctx context.Context) (QuizSummary, error)
}
