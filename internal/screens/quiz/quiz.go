// Package quiz is the interactive quiz screen: notes entry, question
// navigation, answer selection and graded feedback.
package quiz

import (
	"context"
	"time"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studybuddy/internal/feedback"
	"github.com/abhisek/studybuddy/internal/i18n"
	qz "github.com/abhisek/studybuddy/internal/quiz"
	"github.com/abhisek/studybuddy/internal/screen"
	"github.com/abhisek/studybuddy/internal/ui/components"
	"github.com/abhisek/studybuddy/internal/ui/layout"
)

const spinnerInterval = 120 * time.Millisecond

// QuizScreen drives a quiz session from the keyboard. Model calls run in
// commands; each carries a token so replies issued before a reset or a
// newer request are ignored.
type QuizScreen struct {
	ctx     context.Context
	session *qz.Session

	notes   textarea.Model
	choices []components.MultiChoice
	current int

	token   int
	cancel  context.CancelFunc
	pending string // message ID of the running request, "" when idle
	frame   int

	lastNotes string
	status    string
	errMsg    string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a quiz screen over session. notes prefills the editor.
// ctx carries the localizer and bounds every model request.
func New(ctx context.Context, session *qz.Session, notes string) *QuizScreen {
	ta := textarea.New()
	ta.Placeholder = i18n.T(ctx, "NotesPrompt")
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(72)
	ta.SetHeight(10)
	ta.SetValue(notes)
	ta.Focus()

	return &QuizScreen{
		ctx:     ctx,
		session: session,
		notes:   ta,
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	return s.notes.Focus()
}

func (s *QuizScreen) Title() string {
	return i18n.T(s.ctx, "QuizTitle")
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.pending != "" {
		return []layout.KeyHint{
			{Key: "Ctrl+R", Description: "Reset"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	switch s.session.Phase() {
	case qz.PhaseReady, qz.PhaseGraded:
		return []layout.KeyHint{
			{Key: "←→", Description: "Question"},
			{Key: "↑↓", Description: "Option"},
			{Key: "Enter/A-D", Description: "Answer"},
			{Key: "S", Description: "Submit"},
			{Key: "G", Description: "New quiz"},
			{Key: "R", Description: "Reset"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Ctrl+S", Description: "Generate"},
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case generatedMsg:
		if msg.Token != s.token {
			return s, nil
		}
		s.pending = ""
		if msg.Err != nil {
			s.errMsg = feedback.Error(s.ctx, msg.Err)
			return s, nil
		}
		s.choices = nil
		s.current = 0
		s.sync()
		s.status = i18n.Tp(s.ctx, "QuestionsReady", len(s.choices))
		return s, nil

	case gradedMsg:
		if msg.Token != s.token {
			return s, nil
		}
		s.pending = ""
		if msg.Err != nil {
			s.errMsg = feedback.Error(s.ctx, msg.Err)
			return s, nil
		}
		s.sync()
		s.status = ""
		return s, nil

	case spinnerTickMsg:
		if s.pending == "" {
			return s, nil
		}
		s.frame++
		return s, spinnerTick()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.pending == "" && s.session.Phase() == qz.PhaseEmpty {
		var cmd tea.Cmd
		s.notes, cmd = s.notes.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+r" {
		s.reset()
		return s, nil
	}
	if s.pending != "" {
		return s, nil
	}

	switch s.session.Phase() {
	case qz.PhaseEmpty:
		if key == "ctrl+s" {
			return s, s.generate(s.notes.Value())
		}
		var cmd tea.Cmd
		s.notes, cmd = s.notes.Update(msg)
		return s, cmd

	case qz.PhaseReady, qz.PhaseGraded:
		return s.handleQuizKey(key, msg)
	}
	return s, nil
}

func (s *QuizScreen) handleQuizKey(key string, msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if len(s.choices) == 0 {
		return s, nil
	}

	switch key {
	case "left", "h", "shift+tab":
		if s.current > 0 {
			s.current--
		}
	case "right", "l", "tab":
		if s.current < len(s.choices)-1 {
			s.current++
		}
	case "up", "k", "down", "j":
		s.choices[s.current], _ = s.choices[s.current].Update(msg)
	case "enter", "space":
		mc := s.choices[s.current]
		s.choose(func() error { return s.session.Select(s.current, mc.Options[mc.Cursor]) })
	case "a", "b", "c", "d", "A", "B", "C", "D":
		s.choose(func() error { return s.session.SelectLetter(s.current, key) })
	case "s":
		return s, s.submit()
	case "g":
		return s, s.generate(s.lastNotes)
	case "r":
		s.reset()
	}
	return s, nil
}

func (s *QuizScreen) choose(sel func() error) {
	if err := sel(); err != nil {
		s.errMsg = feedback.Error(s.ctx, err)
		return
	}
	s.errMsg = ""
	s.sync()
	if c := s.choices[s.current]; c.Answered() && s.current < len(s.choices)-1 {
		s.current++
	}
}

func (s *QuizScreen) generate(notes string) tea.Cmd {
	ctx, cancel := s.begin("Generating")
	token, session := s.token, s.session
	s.lastNotes = notes

	return tea.Batch(func() tea.Msg {
		defer cancel()
		return generatedMsg{Token: token, Err: session.Generate(ctx, notes)}
	}, spinnerTick())
}

func (s *QuizScreen) submit() tea.Cmd {
	ctx, cancel := s.begin("Grading")
	token, session := s.token, s.session

	return tea.Batch(func() tea.Msg {
		defer cancel()
		res, err := session.Submit(ctx)
		return gradedMsg{Token: token, Result: res, Err: err}
	}, spinnerTick())
}

// begin starts a new request, invalidating any earlier one.
func (s *QuizScreen) begin(pending string) (context.Context, context.CancelFunc) {
	s.abort()
	ctx, cancel := context.WithCancel(s.ctx)
	s.cancel = cancel
	s.pending = pending
	s.errMsg, s.status = "", ""
	return ctx, cancel
}

// abort invalidates and cancels the request in flight, if any.
func (s *QuizScreen) abort() {
	s.token++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *QuizScreen) reset() {
	s.abort()
	s.session.Reset()
	s.pending = ""
	s.choices = nil
	s.current = 0
	s.errMsg = ""
	s.status = i18n.T(s.ctx, "QuizReset")
}

// sync copies answers and the revealed key from the session into the
// selectors, rebuilding them when the question set changed.
func (s *QuizScreen) sync() {
	questions := s.session.Questions()
	answers := s.session.Answers()
	result := s.session.Result()

	if len(s.choices) != len(questions) {
		s.choices = make([]components.MultiChoice, len(questions))
		for i, q := range questions {
			s.choices[i] = components.NewMultiChoice(
				feedback.Question(s.ctx, i, q.Text), q.Options, -1)
		}
	}

	for i, q := range questions {
		chosen := -1
		for j, opt := range q.Options {
			if answers[i] != "" && opt == answers[i] {
				chosen = j
			}
		}
		s.choices[i].Chosen = chosen

		correct := -1
		if result != nil && i < len(result.Items) {
			correct = qz.OptionIndex(q.Options, result.Items[i].CorrectLetter)
		}
		s.choices[i].Reveal(correct)
	}
	if s.current >= len(s.choices) {
		s.current = 0
	}
}

func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}
