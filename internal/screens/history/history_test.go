package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studybuddy/internal/store"
)

type fakeSource struct {
	events  []store.QuizEvent
	summary store.QuizSummary
	err     error
	opts    store.QueryOpts
}

func (f *fakeSource) QueryQuizEvents(_ context.Context, opts store.QueryOpts) ([]store.QuizEvent, error) {
	f.opts = opts
	if opts.Session == "" {
		return f.events, f.err
	}
	var out []store.QuizEvent
	for _, e := range f.events {
		if e.SessionID == opts.Session {
			out = append(out, e)
		}
	}
	return out, f.err
}

func (f *fakeSource) QuizSummary(_ context.Context) (store.QuizSummary, error) {
	return f.summary, nil
}

func loaded(t *testing.T, src *fakeSource) *HistoryScreen {
	t.Helper()
	s := New(context.Background(), src)
	s.Update(s.Init()())
	return s
}

func run(t *testing.T, s *HistoryScreen, k tea.KeyPressMsg) {
	t.Helper()
	if _, cmd := s.Update(k); cmd != nil {
		if msg := cmd(); msg != nil {
			s.Update(msg)
		}
	}
}

func sampleEvents() []store.QuizEvent {
	ts := time.Date(2026, 3, 4, 10, 30, 0, 0, time.UTC)
	return []store.QuizEvent{
		{ID: 3, Timestamp: ts, QuizEventData: store.QuizEventData{SessionID: "session-b", Action: store.QuizGradingFailed, Detail: "could not parse answer-key"}},
		{ID: 2, Timestamp: ts, QuizEventData: store.QuizEventData{SessionID: "session-a", Action: store.QuizGraded, Score: 4, Total: 5, Band: "good"}},
		{ID: 1, Timestamp: ts, QuizEventData: store.QuizEventData{SessionID: "session-a", Action: store.QuizGenerated, QuestionCount: 5}},
	}
}

func TestHistoryScreen_ListsEvents(t *testing.T) {
	src := &fakeSource{
		events:  sampleEvents(),
		summary: store.QuizSummary{Graded: 1, TotalCorrect: 4, TotalAsked: 5},
	}
	s := loaded(t, src)

	if src.opts.Limit != pageSize {
		t.Errorf("limit = %d, want %d", src.opts.Limit, pageSize)
	}
	view := s.View(100, 30)
	for _, want := range []string{"4/5", "good", "5 questions", "grading failed", "1 graded, 0 failed, 0 perfect, accuracy 80%"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestHistoryScreen_Empty(t *testing.T) {
	s := loaded(t, &fakeSource{})
	if view := s.View(100, 30); !strings.Contains(view, "No quizzes yet") {
		t.Errorf("expected empty message:\n%s", view)
	}
}

func TestHistoryScreen_Error(t *testing.T) {
	s := loaded(t, &fakeSource{err: errors.New("db locked")})
	if view := s.View(100, 30); !strings.Contains(view, "db locked") {
		t.Errorf("expected error in view:\n%s", view)
	}
}

func TestHistoryScreen_Details(t *testing.T) {
	s := loaded(t, &fakeSource{events: sampleEvents()})

	if view := s.View(120, 30); strings.Contains(view, "could not parse") {
		t.Fatal("details are hidden until requested")
	}
	run(t, s, tea.KeyPressMsg{Code: tea.KeyEnter})
	if view := s.View(120, 30); !strings.Contains(view, "could not parse answer-key") {
		t.Errorf("expected detail in view:\n%s", view)
	}

	run(t, s, tea.KeyPressMsg{Code: tea.KeyDown})
	if ev, _ := s.selectedEvent(); ev.ID != 2 {
		t.Errorf("selected event %d, want 2", ev.ID)
	}
}

func TestHistoryScreen_SessionFilter(t *testing.T) {
	src := &fakeSource{events: sampleEvents()}
	s := loaded(t, src)

	run(t, s, tea.KeyPressMsg{Code: tea.KeyDown})
	run(t, s, tea.KeyPressMsg{Code: 's', Text: "s"})

	if src.opts.Session != "session-a" {
		t.Fatalf("queried session %q, want session-a", src.opts.Session)
	}
	if len(s.events) != 2 {
		t.Errorf("events = %d, want 2", len(s.events))
	}
	if !strings.Contains(s.Title(), "session-") {
		t.Errorf("title %q should name the session", s.Title())
	}

	run(t, s, tea.KeyPressMsg{Code: 's', Text: "s"})
	if src.opts.Session != "" || len(s.events) != 3 {
		t.Errorf("filter not cleared: session %q, %d events", src.opts.Session, len(s.events))
	}
}
