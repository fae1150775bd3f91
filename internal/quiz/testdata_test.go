package quiz

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/abhisek/studybuddy/internal/llm"
	"github.com/abhisek/studybuddy/internal/store"
)

const sampleNotes = `Photosynthesis converts light energy into chemical energy.
It happens in the chloroplasts of plant cells.`

// quizReply builds a generation reply with n questions wrapped in prose.
func quizReply(n int) string {
	qs := make([]Question, n)
	for i := range qs {
		qs[i] = Question{
			Text: fmt.Sprintf("Question %d?", i+1),
			Options: []string{
				fmt.Sprintf("A) first %d", i+1),
				fmt.Sprintf("B) second %d", i+1),
				fmt.Sprintf("C) third %d", i+1),
				fmt.Sprintf("D) fourth %d", i+1),
			},
		}
	}
	data, _ := json.MarshalIndent(qs, "", "  ")
	return "Sure! Here is your quiz:\n```json\n" + string(data) + "\n```\nGood luck!"
}

func newTestSession(t *testing.T, responses ...llm.MockResponse) (*Session, *llm.MockProvider, *fakeRecorder) {
	t.Helper()
	mock := llm.NewMockProvider(responses...)
	rec := &fakeRecorder{}
	s := NewSession(llm.NewClient(mock), WithRecorder(rec))
	return s, mock, rec
}

// readySession returns a session that already holds a generated quiz.
func readySession(t *testing.T, responses ...llm.MockResponse) (*Session, *llm.MockProvider, *fakeRecorder) {
	t.Helper()
	all := append([]llm.MockResponse{llm.TextResponse(quizReply(QuestionCount))}, responses...)
	s, mock, rec := newTestSession(t, all...)
	if err := s.Generate(context.Background(), sampleNotes); err != nil {
		t.Fatalf("generate: %v", err)
	}
	return s, mock, rec
}

type fakeRecorder struct {
	mu     sync.Mutex
	events []store.QuizEventData
}

func (f *fakeRecorder) AppendQuizEvent(_ context.Context, data store.QuizEventData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, data)
	return nil
}

func (f *fakeRecorder) actions() []store.QuizAction {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]store.QuizAction, len(f.events))
	for i, e := range f.events {
		out[i] = e.Action
	}
	return out
}
