package quiz

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/abhisek/studybuddy/internal/llm"
	"github.com/abhisek/studybuddy/internal/scoring"
	"github.com/abhisek/studybuddy/internal/store"
)

func TestGenerate_CommitsQuizWithEmptyAnswers(t *testing.T) {
	s, mock, rec := readySession(t)

	if s.Phase() != PhaseReady {
		t.Fatalf("phase = %s, want ready", s.Phase())
	}
	qs := s.Questions()
	answers := s.Answers()
	if len(qs) != QuestionCount {
		t.Fatalf("got %d questions", len(qs))
	}
	if len(answers) != len(qs) {
		t.Fatalf("answers length %d != questions length %d", len(answers), len(qs))
	}
	for i, a := range answers {
		if a != "" {
			t.Errorf("answer %d = %q, want empty", i, a)
		}
	}

	prompt := mock.LastPrompt()
	if !strings.Contains(prompt, "Photosynthesis converts light energy into chemical energy. It happens") {
		t.Errorf("prompt should carry whitespace-collapsed notes:\n%s", prompt)
	}
	if got := rec.actions(); !reflect.DeepEqual(got, []store.QuizAction{store.QuizGenerated}) {
		t.Errorf("events = %v", got)
	}
	if rec.events[0].SessionID != s.ID() || rec.events[0].QuestionCount != QuestionCount {
		t.Errorf("event = %+v", rec.events[0])
	}
}

func TestGenerate_EmptyNotes(t *testing.T) {
	s, mock, _ := newTestSession(t)

	for _, notes := range []string{"", "   \n\t "} {
		if err := s.Generate(context.Background(), notes); !errors.Is(err, ErrEmptyNotes) {
			t.Errorf("Generate(%q) = %v, want ErrEmptyNotes", notes, err)
		}
	}
	if mock.CallCount() != 0 {
		t.Errorf("expected no model calls, got %d", mock.CallCount())
	}
	if s.Phase() != PhaseEmpty {
		t.Errorf("phase = %s", s.Phase())
	}
}

func TestGenerate_ParseFailureLeavesEmpty(t *testing.T) {
	s, _, rec := newTestSession(t, llm.TextResponse(quizReply(3)))

	err := s.Generate(context.Background(), sampleNotes)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if s.Phase() != PhaseEmpty {
		t.Errorf("phase = %s, want empty", s.Phase())
	}
	if s.Questions() != nil || s.Answers() != nil {
		t.Error("no partial quiz may be kept")
	}
	if got := rec.actions(); !reflect.DeepEqual(got, []store.QuizAction{store.QuizGenerationFailed}) {
		t.Errorf("events = %v", got)
	}
}

func TestGenerate_APIFailureLeavesEmpty(t *testing.T) {
	s, _, _ := newTestSession(t, llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})

	err := s.Generate(context.Background(), sampleNotes)
	var apiErr *llm.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *llm.APIError, got %v", err)
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		t.Error("API failure must not be reported as a parse failure")
	}
	if s.Phase() != PhaseEmpty {
		t.Errorf("phase = %s, want empty", s.Phase())
	}
}

func TestGenerate_RegenerationReplacesQuiz(t *testing.T) {
	s, _, _ := readySession(t, llm.TextResponse(strings.ReplaceAll(quizReply(QuestionCount), "Question", "Item")))
	if err := s.SelectLetter(0, "B"); err != nil {
		t.Fatal(err)
	}

	if err := s.Generate(context.Background(), "new notes"); err != nil {
		t.Fatalf("regenerate: %v", err)
	}
	if s.Questions()[0].Text != "Item 1?" {
		t.Errorf("quiz not replaced: %q", s.Questions()[0].Text)
	}
	if s.Answers()[0] != "" {
		t.Error("answers must be reset on regeneration")
	}
}

func TestEndToEnd_FourOfFiveIsGood(t *testing.T) {
	s, mock, rec := readySession(t, llm.TextResponse(`Correct answers: ["A","B","C","D","A"]`))

	for i, letter := range []string{"A", "B", "D", "D", "A"} {
		if err := s.SelectLetter(i, letter); err != nil {
			t.Fatalf("select %d: %v", i, err)
		}
	}

	res, err := s.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Score != 4 || res.Total != 5 {
		t.Errorf("score = %d/%d, want 4/5", res.Score, res.Total)
	}
	if res.Band != scoring.BandGood {
		t.Errorf("band = %s, want good", res.Band)
	}
	if s.Phase() != PhaseGraded {
		t.Errorf("phase = %s, want graded", s.Phase())
	}

	third := res.Items[2]
	if third.Outcome != scoring.Mismatch || third.UserLetter != "D" || third.CorrectLetter != "C" {
		t.Errorf("item 3 = %+v", third)
	}
	if third.UserOption != "D) fourth 3" {
		t.Errorf("user option = %q", third.UserOption)
	}

	prompt := mock.LastPrompt()
	if !strings.Contains(prompt, "Question 1?") {
		t.Error("answer-key prompt must serialize the questions")
	}

	got := rec.actions()
	want := []store.QuizAction{store.QuizGenerated, store.QuizGraded}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
	if rec.events[1].Score != 4 || rec.events[1].Band != "good" {
		t.Errorf("graded event = %+v", rec.events[1])
	}
}

func TestSubmit_UnansweredIsNoAnswer(t *testing.T) {
	s, _, _ := readySession(t, llm.TextResponse(`[{"1":"B"},{"2":"A"},{"3":"C"},{"4":"D"},{"5":"B"}]`))
	if err := s.SelectLetter(0, "b"); err != nil {
		t.Fatal(err)
	}

	res, err := s.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Score != 1 {
		t.Errorf("score = %d, want 1", res.Score)
	}
	if res.Band != scoring.BandNeedsPractice {
		t.Errorf("band = %s", res.Band)
	}
	if res.Items[1].Outcome != scoring.NoAnswer {
		t.Errorf("item 2 outcome = %s, want no-answer", res.Items[1].Outcome)
	}
}

func TestSubmit_CorruptKeyRollsBackToReady(t *testing.T) {
	s, _, rec := readySession(t, llm.TextResponse("The answers are A, B, C, D and A."))
	if err := s.SelectLetter(3, "C"); err != nil {
		t.Fatal(err)
	}
	questionsBefore := s.Questions()
	answersBefore := s.Answers()

	_, err := s.Submit(context.Background())
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Stage != StageAnswerKey {
		t.Fatalf("expected answer-key *ParseError, got %v", err)
	}

	if s.Phase() != PhaseReady {
		t.Errorf("phase = %s, want ready", s.Phase())
	}
	if !reflect.DeepEqual(s.Questions(), questionsBefore) {
		t.Error("questions changed after failed grading")
	}
	if !reflect.DeepEqual(s.Answers(), answersBefore) {
		t.Error("answers changed after failed grading")
	}
	if s.Result() != nil {
		t.Error("no result expected after failed grading")
	}
	if got := rec.actions(); got[len(got)-1] != store.QuizGradingFailed {
		t.Errorf("events = %v", got)
	}
}

func TestSubmit_KeyLengthMismatchRollsBack(t *testing.T) {
	s, _, _ := readySession(t, llm.TextResponse(`["A","B","C"]`))

	_, err := s.Submit(context.Background())
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if s.Phase() != PhaseReady {
		t.Errorf("phase = %s, want ready", s.Phase())
	}
}

func TestSubmit_APIFailureRollsBack(t *testing.T) {
	s, _, _ := readySession(t, llm.MockResponse{Err: &llm.ErrRateLimit{}})
	_ = s.SelectLetter(0, "A")

	_, err := s.Submit(context.Background())
	var apiErr *llm.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *llm.APIError, got %v", err)
	}
	if s.Phase() != PhaseReady || s.Answers()[0] != "A) first 1" {
		t.Errorf("state not preserved: phase %s answers %v", s.Phase(), s.Answers())
	}
}

func TestSubmit_ResubmitFetchesFreshKey(t *testing.T) {
	s, mock, _ := readySession(t,
		llm.TextResponse(`["A","A","A","A","A"]`),
		llm.TextResponse(`["B","B","B","B","B"]`),
	)
	for i := 0; i < QuestionCount; i++ {
		_ = s.SelectLetter(i, "A")
	}

	first, err := s.Submit(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.Submit(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if first.Score != 5 || second.Score != 0 {
		t.Errorf("scores = %d then %d, want 5 then 0", first.Score, second.Score)
	}
	if mock.CallCount() != 3 {
		t.Errorf("expected 3 model calls, got %d", mock.CallCount())
	}
}

func TestSubmit_RequiresQuiz(t *testing.T) {
	s, _, _ := newTestSession(t)

	_, err := s.Submit(context.Background())
	var se *StateError
	if !errors.As(err, &se) || se.Phase != PhaseEmpty {
		t.Fatalf("expected StateError in empty phase, got %v", err)
	}
}

func TestSelect(t *testing.T) {
	s, _, _ := readySession(t)

	if err := s.Select(1, "C) third 2"); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := s.Select(1, "C) third 2"); err != nil {
		t.Fatalf("reselect: %v", err)
	}
	if got := s.Answers()[1]; got != "C) third 2" {
		t.Errorf("answer = %q", got)
	}

	tests := []struct {
		name   string
		idx    int
		option string
	}{
		{"negative index", -1, "A) first 1"},
		{"index past end", QuestionCount, "A) first 1"},
		{"option from another question", 0, "A) first 2"},
		{"unknown option", 0, "E) nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.Select(tt.idx, tt.option); !errors.Is(err, ErrInvalidSelection) {
				t.Errorf("expected ErrInvalidSelection, got %v", err)
			}
		})
	}

	if err := s.SelectLetter(0, "z"); !errors.Is(err, ErrInvalidSelection) {
		t.Errorf("SelectLetter(z) = %v", err)
	}
	if err := s.SelectLetter(2, "d"); err != nil {
		t.Fatalf("SelectLetter(d): %v", err)
	}
	if got := s.Answers()[2]; got != "D) fourth 3" {
		t.Errorf("answer = %q, want the option labeled D", got)
	}
}

func TestSelect_BeforeGenerate(t *testing.T) {
	s, _, _ := newTestSession(t)

	var se *StateError
	if err := s.Select(0, "A) x"); !errors.As(err, &se) {
		t.Errorf("Select = %v, want StateError", err)
	}
	if err := s.SelectLetter(0, "A"); !errors.As(err, &se) {
		t.Errorf("SelectLetter = %v, want StateError", err)
	}
}

func TestSelect_AfterGradingReopens(t *testing.T) {
	s, _, _ := readySession(t, llm.TextResponse(`["A","B","C","D","A"]`))
	_ = s.SelectLetter(0, "A")
	if _, err := s.Submit(context.Background()); err != nil {
		t.Fatal(err)
	}

	if err := s.SelectLetter(0, "A"); err != nil {
		t.Fatal(err)
	}
	if s.Phase() != PhaseGraded {
		t.Errorf("reselecting the same answer changed phase to %s", s.Phase())
	}

	if err := s.SelectLetter(0, "B"); err != nil {
		t.Fatal(err)
	}
	if s.Phase() != PhaseReady {
		t.Errorf("phase = %s, want ready", s.Phase())
	}
	if s.Result() != nil {
		t.Error("result should be discarded once answers change")
	}
}

func TestReset_DropsStaleGeneration(t *testing.T) {
	var s *Session
	mock := llm.NewMockProvider(llm.MockResponse{
		Text:   quizReply(QuestionCount),
		Before: func() { s.Reset() },
	})
	s = NewSession(llm.NewClient(mock))

	err := s.Generate(context.Background(), sampleNotes)
	if !errors.Is(err, ErrStaleResponse) {
		t.Fatalf("expected ErrStaleResponse, got %v", err)
	}
	if s.Phase() != PhaseEmpty || s.Questions() != nil {
		t.Errorf("stale reply applied: phase %s", s.Phase())
	}
}

func TestReset_StaleReplyDoesNotOverwriteNewerQuiz(t *testing.T) {
	var s *Session
	newer := strings.ReplaceAll(quizReply(QuestionCount), "Question", "Newer")
	mock := llm.NewMockProvider(
		llm.MockResponse{
			Text:   quizReply(QuestionCount),
			Before: func() {
				s.Reset()
				if err := s.Generate(context.Background(), "newer notes"); err != nil {
					t.Errorf("newer generate: %v", err)
				}
			},
		},
		llm.TextResponse(newer),
	)
	s = NewSession(llm.NewClient(mock))

	if err := s.Generate(context.Background(), sampleNotes); !errors.Is(err, ErrStaleResponse) {
		t.Fatalf("expected ErrStaleResponse, got %v", err)
	}
	if s.Phase() != PhaseReady {
		t.Fatalf("phase = %s, want ready", s.Phase())
	}
	if got := s.Questions()[0].Text; got != "Newer 1?" {
		t.Errorf("question = %q, want the newer quiz", got)
	}
}

func TestReset_DropsStaleAnswerKey(t *testing.T) {
	var s *Session
	s, _, _ = readySession(t, llm.MockResponse{
		Text:   `["A","B","C","D","A"]`,
		Before: func() { s.Reset() },
	})

	res, err := s.Submit(context.Background())
	if !errors.Is(err, ErrStaleResponse) {
		t.Fatalf("expected ErrStaleResponse, got %v", err)
	}
	if res != nil || s.Result() != nil {
		t.Error("stale key must not produce a result")
	}
	if s.Phase() != PhaseEmpty {
		t.Errorf("phase = %s, want empty", s.Phase())
	}
}

func TestGenerate_RejectsConcurrentAction(t *testing.T) {
	var s *Session
	var inner error
	mock := llm.NewMockProvider(llm.MockResponse{
		Text:   quizReply(QuestionCount),
		Before: func() {
			inner = s.Generate(context.Background(), "again")
		},
	})
	s = NewSession(llm.NewClient(mock))

	if err := s.Generate(context.Background(), sampleNotes); err != nil {
		t.Fatalf("outer generate: %v", err)
	}
	var se *StateError
	if !errors.As(inner, &se) || se.Phase != PhaseGenerating {
		t.Errorf("inner generate = %v, want StateError while generating", inner)
	}
}

func TestPhaseString(t *testing.T) {
	tests := map[Phase]string{
		PhaseEmpty:      "empty",
		PhaseGenerating: "generating",
		PhaseReady:      "ready",
		PhaseGrading:    "grading",
		PhaseGraded:     "graded",
		Phase(99):       "unknown",
	}
	for p, want := range tests {
		if p.String() != want {
			t.Errorf("%d.String() = %q, want %q", int(p), p.String(), want)
		}
	}
}

type purposeRecorder struct {
	purposes []string
	replies  []string
}

func (p *purposeRecorder) Generate(ctx context.Context, _ string) (string, error) {
	p.purposes = append(p.purposes, llm.PurposeFrom(ctx))
	reply := p.replies[0]
	p.replies = p.replies[1:]
	return reply, nil
}

func TestSession_LabelsRequestPurpose(t *testing.T) {
	gen := &purposeRecorder{replies: []string{quizReply(QuestionCount), `["A","B","C","D","A"]`}}
	s := NewSession(gen)
	if err := s.Generate(context.Background(), sampleNotes); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := s.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	want := []string{PurposeQuestions, PurposeAnswerKey}
	if len(gen.purposes) != 2 || gen.purposes[0] != want[0] || gen.purposes[1] != want[1] {
		t.Errorf("purposes = %v, want %v", gen.purposes, want)
	}
}
