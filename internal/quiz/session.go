// Package quiz runs the notes-to-quiz lifecycle: question generation,
// answer collection, answer-key retrieval and scoring.
package quiz

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/abhisek/studybuddy/internal/llm"
	"github.com/abhisek/studybuddy/internal/scoring"
	"github.com/abhisek/studybuddy/internal/store"
	"github.com/abhisek/studybuddy/internal/textnorm"
)

// Generator sends a prompt to the model and returns its raw text.
// *llm.Client satisfies it.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Recorder receives quiz lifecycle events. store.EventRepo satisfies it.
type Recorder interface {
	AppendQuizEvent(ctx context.Context, data store.QuizEventData) error
}

// Session holds one quiz: the committed questions, the user's answers and
// the last grading result. All methods are safe for concurrent use; model
// calls run without holding the lock.
type Session struct {
	mu sync.Mutex

	id       string
	gen      Generator
	recorder Recorder
	logger   *slog.Logger

	phase     Phase
	epoch     uint64
	questions []Question
	answers   []string
	result    *Result
}

// Option configures a Session.
type Option func(*Session)

// WithRecorder sets the event sink for lifecycle events.
func WithRecorder(r Recorder) Option {
	return func(s *Session) { s.recorder = r }
}

// WithLogger sets the session logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// NewSession creates an empty session that asks gen for questions and
// answer keys.
func NewSession(gen Generator, opts ...Option) *Session {
	s := &Session{
		id:     uuid.NewString(),
		gen:    gen,
		logger: slog.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	s.logger = s.logger.With("quiz_session", s.id)
	return s
}

// ID returns the session identifier used in recorded events.
func (s *Session) ID() string { return s.id }

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Questions returns a copy of the committed questions, or nil.
func (s *Session) Questions() []Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.questions == nil {
		return nil
	}
	out := make([]Question, len(s.questions))
	for i, q := range s.questions {
		out[i] = Question{Text: q.Text, Options: append([]string(nil), q.Options...)}
	}
	return out
}

// Answers returns a copy of the selected options, index-aligned with
// Questions. Unanswered questions hold "".
func (s *Session) Answers() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.answers == nil {
		return nil
	}
	return append([]string(nil), s.answers...)
}

// Result returns the last grading result, or nil unless the session is graded.
func (s *Session) Result() *Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result.clone()
}

// Generate asks the model for a new quiz from notes, replacing any quiz the
// session holds. On failure the session is left empty.
func (s *Session) Generate(ctx context.Context, notes string) error {
	notes = textnorm.CollapseWhitespace(notes)
	if notes == "" {
		return ErrEmptyNotes
	}

	s.mu.Lock()
	if s.phase.Busy() {
		phase := s.phase
		s.mu.Unlock()
		return &StateError{Op: "generate", Phase: phase}
	}
	s.epoch++
	epoch := s.epoch
	s.phase = PhaseGenerating
	s.questions, s.answers, s.result = nil, nil, nil
	s.mu.Unlock()

	s.logger.Debug("generating quiz", "notes_len", len(notes))

	reply, err := s.gen.Generate(llm.WithPurpose(ctx, PurposeQuestions), GenerationPrompt(notes))
	var questions []Question
	if err == nil {
		questions, err = ParseQuestions(reply)
	}

	s.mu.Lock()
	if s.epoch != epoch {
		s.mu.Unlock()
		s.logger.Debug("dropping stale quiz generation")
		return ErrStaleResponse
	}
	if err != nil {
		s.phase = PhaseEmpty
		s.mu.Unlock()
		s.logger.Warn("quiz generation failed", "error", err)
		s.record(ctx, store.QuizEventData{Action: store.QuizGenerationFailed, Detail: err.Error()})
		return err
	}
	s.questions = questions
	s.answers = make([]string, len(questions))
	s.phase = PhaseReady
	s.mu.Unlock()

	s.record(ctx, store.QuizEventData{Action: store.QuizGenerated, QuestionCount: len(questions)})
	return nil
}

// Select records option as the answer to question idx. option must be one
// of the question's options. Selecting after grading reopens the quiz for
// submission; reselecting the current answer changes nothing.
func (s *Session) Select(idx int, option string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseReady && s.phase != PhaseGraded {
		return &StateError{Op: "select", Phase: s.phase}
	}
	if idx < 0 || idx >= len(s.questions) {
		return fmt.Errorf("%w: question %d of %d", ErrInvalidSelection, idx+1, len(s.questions))
	}
	if !offers(s.questions[idx], option) {
		return fmt.Errorf("%w: %q is not an option of question %d", ErrInvalidSelection, option, idx+1)
	}

	if s.answers[idx] == option {
		return nil
	}
	s.answers[idx] = option
	if s.phase == PhaseGraded {
		s.phase = PhaseReady
		s.result = nil
	}
	return nil
}

// SelectLetter selects the option labeled letter (A-D, any case).
func (s *Session) SelectLetter(idx int, letter string) error {
	l := textnorm.NormalizeAnswerToken(letter)
	if l == "" {
		return fmt.Errorf("%w: %q is not a letter A-D", ErrInvalidSelection, letter)
	}

	s.mu.Lock()
	if idx < 0 || idx >= len(s.questions) {
		n := len(s.questions)
		s.mu.Unlock()
		if n == 0 {
			return &StateError{Op: "select", Phase: s.Phase()}
		}
		return fmt.Errorf("%w: question %d of %d", ErrInvalidSelection, idx+1, n)
	}
	pos := OptionIndex(s.questions[idx].Options, l)
	if pos < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: no option labeled %s", ErrInvalidSelection, l)
	}
	option := s.questions[idx].Options[pos]
	s.mu.Unlock()

	return s.Select(idx, option)
}

// Submit fetches a fresh answer key and grades the current answers. On
// failure the session returns to ready with questions and answers intact.
func (s *Session) Submit(ctx context.Context) (*Result, error) {
	s.mu.Lock()
	if s.phase != PhaseReady && s.phase != PhaseGraded {
		phase := s.phase
		s.mu.Unlock()
		return nil, &StateError{Op: "submit", Phase: phase}
	}
	s.epoch++
	epoch := s.epoch
	s.phase = PhaseGrading
	s.result = nil
	questions := s.questions
	s.mu.Unlock()

	s.logger.Debug("grading quiz", "questions", len(questions))

	prompt, err := AnswerKeyPrompt(questions)
	var key AnswerKey
	if err == nil {
		var reply string
		reply, err = s.gen.Generate(llm.WithPurpose(ctx, PurposeAnswerKey), prompt)
		if err == nil {
			key, err = ParseAnswerKey(reply, len(questions))
		}
	}

	s.mu.Lock()
	if s.epoch != epoch {
		s.mu.Unlock()
		s.logger.Debug("dropping stale answer key")
		return nil, ErrStaleResponse
	}
	if err != nil {
		s.phase = PhaseReady
		s.mu.Unlock()
		s.logger.Warn("quiz grading failed", "error", err)
		s.record(ctx, store.QuizEventData{
			Action:        store.QuizGradingFailed,
			QuestionCount: len(questions),
			Detail:        err.Error(),
		})
		return nil, err
	}

	result := grade(questions, s.answers, key)
	s.result = result
	s.phase = PhaseGraded
	s.mu.Unlock()

	s.record(ctx, store.QuizEventData{
		Action:        store.QuizGraded,
		QuestionCount: len(questions),
		Score:         result.Score,
		Total:         result.Total,
		Band:          result.Band.String(),
	})
	return result.clone(), nil
}

// Reset discards the quiz and returns to empty. A model reply still in
// flight is dropped when it arrives.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++
	s.phase = PhaseEmpty
	s.questions, s.answers, s.result = nil, nil, nil
}

func grade(questions []Question, answers []string, key AnswerKey) *Result {
	user := make([]string, len(answers))
	for i, a := range answers {
		user[i] = textnorm.NormalizeAnswerToken(a)
	}

	score := scoring.Score(user, key.Letters)
	items := make([]Item, len(questions))
	for i, q := range questions {
		items[i] = Item{
			Question:      q.Text,
			UserOption:    answers[i],
			UserLetter:    user[i],
			CorrectLetter: key.Letters[i],
			Outcome:       scoring.Classify(user[i], key.Letters[i]),
		}
	}
	return &Result{
		Score: score,
		Total: len(key.Letters),
		Band:  scoring.BandFor(score, len(key.Letters)),
		Items: items,
	}
}

func offers(q Question, option string) bool {
	for _, o := range q.Options {
		if o == option {
			return true
		}
	}
	return false
}

func (s *Session) record(ctx context.Context, data store.QuizEventData) {
	if s.recorder == nil {
		return
	}
	data.SessionID = s.id
	if err := s.recorder.AppendQuizEvent(context.WithoutCancel(ctx), data); err != nil {
		s.logger.Warn("failed to record quiz event", "action", data.Action, "error", err)
	}
}
