package quiz

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studybuddy/internal/llm"
	qz "github.com/abhisek/studybuddy/internal/quiz"
)

const testNotes = "Mitochondria produce ATP through cellular respiration."

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func ctrlKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

func questionsReply() string {
	qs := make([]qz.Question, qz.QuestionCount)
	for i := range qs {
		qs[i] = qz.Question{
			Text:    fmt.Sprintf("Question %d?", i+1),
			Options: []string{"A) one", "B) two", "C) three", "D) four"},
		}
	}
	data, _ := json.Marshal(qs)
	return "Here you go:\n" + string(data)
}

func testQuizScreen(responses ...llm.MockResponse) (*QuizScreen, *llm.MockProvider) {
	mock := llm.NewMockProvider(responses...)
	session := qz.NewSession(llm.NewClient(mock))
	return New(context.Background(), session, testNotes), mock
}

// run executes cmd, descending into batches, and feeds every generation or
// grading reply back into the screen. Spinner ticks are dropped.
func run(t *testing.T, s *QuizScreen, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			run(t, s, c)
		}
	case generatedMsg, gradedMsg:
		s.Update(msg)
	}
}

func press(t *testing.T, s *QuizScreen, msgs ...tea.KeyPressMsg) {
	t.Helper()
	for _, m := range msgs {
		_, cmd := s.Update(m)
		run(t, s, cmd)
	}
}

func generated(t *testing.T, responses ...llm.MockResponse) (*QuizScreen, *llm.MockProvider) {
	t.Helper()
	all := append([]llm.MockResponse{llm.TextResponse(questionsReply())}, responses...)
	s, mock := testQuizScreen(all...)
	press(t, s, ctrlKey('s'))
	if got := s.session.Phase(); got != qz.PhaseReady {
		t.Fatalf("phase = %s, want ready", got)
	}
	return s, mock
}

func TestQuizScreen_Title(t *testing.T) {
	s, _ := testQuizScreen()
	if s.Title() != "Quiz" {
		t.Errorf("Title = %q, want %q", s.Title(), "Quiz")
	}
}

func TestQuizScreen_NotesViewBeforeGenerating(t *testing.T) {
	s, _ := testQuizScreen()
	view := s.View(100, 30)
	if !strings.Contains(view, "Paste your notes below:") {
		t.Errorf("expected notes prompt in view:\n%s", view)
	}
}

func TestQuizScreen_GenerateShowsSpinnerThenQuestions(t *testing.T) {
	s, mock := testQuizScreen(llm.TextResponse(questionsReply()))

	_, cmd := s.Update(ctrlKey('s'))
	if s.pending != "Generating" {
		t.Fatalf("pending = %q, want Generating", s.pending)
	}
	if view := s.View(100, 30); !strings.Contains(view, "Generating quiz...") {
		t.Errorf("expected generating line in view:\n%s", view)
	}

	run(t, s, cmd)

	if s.pending != "" {
		t.Errorf("pending = %q after reply", s.pending)
	}
	if len(s.choices) != qz.QuestionCount {
		t.Fatalf("choices = %d, want %d", len(s.choices), qz.QuestionCount)
	}
	if s.status != "5 questions ready." {
		t.Errorf("status = %q", s.status)
	}
	if !strings.Contains(mock.Calls[0].Prompt, testNotes) {
		t.Error("generation prompt should carry the notes")
	}
	view := s.View(100, 30)
	if !strings.Contains(view, "Q1. Question 1?") {
		t.Errorf("expected first question in view:\n%s", view)
	}
}

func TestQuizScreen_ParseFailureStaysOnNotes(t *testing.T) {
	s, _ := testQuizScreen(llm.TextResponse("I cannot make a quiz from that."))
	press(t, s, ctrlKey('s'))

	if s.session.Phase() != qz.PhaseEmpty {
		t.Errorf("phase = %s, want empty", s.session.Phase())
	}
	if !strings.HasPrefix(s.errMsg, "Failed to parse the AI response") {
		t.Errorf("errMsg = %q", s.errMsg)
	}
	if len(s.choices) != 0 {
		t.Error("no questions should be shown")
	}
}

func TestQuizScreen_EmptyNotes(t *testing.T) {
	mock := llm.NewMockProvider()
	s := New(context.Background(), qz.NewSession(llm.NewClient(mock)), "")
	press(t, s, ctrlKey('s'))

	if s.errMsg != "Please enter some notes first." {
		t.Errorf("errMsg = %q", s.errMsg)
	}
	if len(mock.Calls) != 0 {
		t.Error("no request should be sent for empty notes")
	}
}

func TestQuizScreen_AnswerAndSubmit(t *testing.T) {
	s, _ := generated(t, llm.TextResponse(`["A","A","A","A","B"]`))

	// Letters answer the current question and advance to the next.
	press(t, s, keyPress('a'), keyPress('a'), keyPress('a'), keyPress('a'), keyPress('a'))

	answers := s.session.Answers()
	for i, a := range answers {
		if a != "A) one" {
			t.Errorf("answer %d = %q, want %q", i, a, "A) one")
		}
	}
	if s.current != qz.QuestionCount-1 {
		t.Errorf("current = %d, want last question", s.current)
	}

	press(t, s, keyPress('s'))

	r := s.session.Result()
	if r == nil || r.Score != 4 {
		t.Fatalf("result = %+v, want score 4", r)
	}
	view := s.View(100, 40)
	for _, want := range []string{"Your total score: 4 / 5", "Great job! Keep going!", "Wrong! Your answer: A | Correct: B"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if s.choices[4].Correct != 1 || s.choices[4].Chosen != 0 {
		t.Errorf("last choice = %+v, want correct B and chosen A", s.choices[4])
	}
}

func TestQuizScreen_ArrowsAndEnterSelect(t *testing.T) {
	s, _ := generated(t)

	press(t, s, specialKey(tea.KeyDown), specialKey(tea.KeyDown), specialKey(tea.KeyEnter))
	if got := s.session.Answers()[0]; got != "C) three" {
		t.Errorf("answer 0 = %q, want %q", got, "C) three")
	}
	if s.current != 1 {
		t.Errorf("current = %d, want 1", s.current)
	}

	press(t, s, specialKey(tea.KeyLeft))
	if s.current != 0 {
		t.Errorf("current = %d after left, want 0", s.current)
	}
	press(t, s, specialKey(tea.KeyLeft))
	if s.current != 0 {
		t.Error("left on the first question should stay put")
	}
	press(t, s, specialKey(tea.KeyTab), specialKey(tea.KeyTab))
	if s.current != 2 {
		t.Errorf("current = %d after two tabs, want 2", s.current)
	}
}

func TestQuizScreen_GradingFailureKeepsAnswers(t *testing.T) {
	s, _ := generated(t, llm.TextResponse("the answers are B, A and C"))
	press(t, s, keyPress('b'), keyPress('s'))

	if s.session.Phase() != qz.PhaseReady {
		t.Errorf("phase = %s, want ready", s.session.Phase())
	}
	if !strings.HasPrefix(s.errMsg, "Failed to parse the AI answers") {
		t.Errorf("errMsg = %q", s.errMsg)
	}
	if s.choices[0].Chosen != 1 {
		t.Errorf("chosen = %d, want 1", s.choices[0].Chosen)
	}
}

func TestQuizScreen_ReselectAfterGradingHidesKey(t *testing.T) {
	s, _ := generated(t, llm.TextResponse(`["A","A","A","A","A"]`))
	press(t, s, keyPress('s'))
	if s.session.Phase() != qz.PhaseGraded {
		t.Fatalf("phase = %s, want graded", s.session.Phase())
	}
	if s.choices[0].Correct != 0 {
		t.Fatalf("correct = %d, want 0", s.choices[0].Correct)
	}

	press(t, s, keyPress('c'))

	if s.session.Phase() != qz.PhaseReady {
		t.Errorf("phase = %s, want ready", s.session.Phase())
	}
	for i, c := range s.choices {
		if c.Correct != -1 {
			t.Errorf("choice %d still reveals the key", i)
		}
	}
}

func TestQuizScreen_ResetDropsInFlightGeneration(t *testing.T) {
	s, mock := testQuizScreen()
	mock.AddResponse(llm.MockResponse{
		Text:   questionsReply(),
		Before: func() { s.Update(ctrlKey('r')) },
	})

	press(t, s, ctrlKey('s'))

	if s.session.Phase() != qz.PhaseEmpty {
		t.Errorf("phase = %s, want empty", s.session.Phase())
	}
	if len(s.choices) != 0 {
		t.Error("stale questions should not be shown")
	}
	if s.errMsg != "" {
		t.Errorf("errMsg = %q, stale replies are silent", s.errMsg)
	}
	if s.status != "Quiz cleared." {
		t.Errorf("status = %q", s.status)
	}
}

func TestQuizScreen_StaleTokenIgnored(t *testing.T) {
	s, _ := generated(t)
	before := s.choices

	s.Update(generatedMsg{Token: s.token - 1, Err: fmt.Errorf("late failure")})

	if s.errMsg != "" {
		t.Errorf("errMsg = %q, want none", s.errMsg)
	}
	if len(s.choices) != len(before) {
		t.Error("choices changed on a stale reply")
	}
}

func TestQuizScreen_KeysIgnoredWhilePending(t *testing.T) {
	s, mock := generated(t)
	s.pending = "Grading"

	press(t, s, keyPress('b'), keyPress('s'))

	if s.session.Answers()[0] != "" {
		t.Error("selection should be ignored while a request is running")
	}
	if len(mock.Calls) != 1 {
		t.Errorf("calls = %d, want 1", len(mock.Calls))
	}
}

func TestQuizScreen_RegenerateUsesLastNotes(t *testing.T) {
	s, mock := generated(t, llm.TextResponse(questionsReply()))
	press(t, s, keyPress('b'), keyPress('g'))

	if len(mock.Calls) != 2 {
		t.Fatalf("calls = %d, want 2", len(mock.Calls))
	}
	if mock.Calls[1].Prompt != mock.Calls[0].Prompt {
		t.Error("regeneration should reuse the previous notes")
	}
	if s.session.Answers()[0] != "" || s.current != 0 {
		t.Error("regeneration should start a fresh quiz")
	}
}

func TestQuizScreen_KeyHintsFollowPhase(t *testing.T) {
	s, _ := testQuizScreen(llm.TextResponse(questionsReply()))
	if got := s.KeyHints()[0].Key; got != "Ctrl+S" {
		t.Errorf("first hint = %q, want Ctrl+S", got)
	}
	press(t, s, ctrlKey('s'))
	if got := s.KeyHints()[0].Key; got != "←→" {
		t.Errorf("first hint = %q, want ←→", got)
	}
}

func TestQuizScreen_ResetReturnsToNotes(t *testing.T) {
	s, _ := generated(t)
	press(t, s, keyPress('b'), keyPress('r'))

	if s.session.Phase() != qz.PhaseEmpty {
		t.Errorf("phase = %s, want empty", s.session.Phase())
	}
	if len(s.choices) != 0 {
		t.Error("choices should be cleared")
	}
	if s.notes.Value() != testNotes {
		t.Errorf("notes = %q, want the previous notes kept for editing", s.notes.Value())
	}
}

func TestQuizScreen_RevealFollowsOptionLabels(t *testing.T) {
	qs := make([]qz.Question, qz.QuestionCount)
	for i := range qs {
		qs[i] = qz.Question{
			Text:    fmt.Sprintf("Question %d?", i+1),
			Options: []string{"one", "b. two", "c: three", "D) four"},
		}
	}
	data, _ := json.Marshal(qs)
	s, _ := testQuizScreen(llm.TextResponse(string(data)), llm.TextResponse(`["C","C","C","C","D"]`))
	press(t, s, ctrlKey('s'))

	press(t, s, keyPress('c'), keyPress('c'), keyPress('c'), keyPress('c'), keyPress('c'))
	if got := s.session.Answers()[0]; got != "c: three" {
		t.Fatalf("answer = %q, want the option labeled C", got)
	}

	press(t, s, keyPress('s'))
	if s.choices[0].Correct != 2 || s.choices[0].Chosen != 2 {
		t.Errorf("first choice = %+v, want correct and chosen C", s.choices[0])
	}
	if s.choices[4].Correct != 3 {
		t.Errorf("last choice correct = %d, want D", s.choices[4].Correct)
	}
}
