// Package chat is the free-form question screen.
package chat

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/feedback"
	"github.com/abhisek/studybuddy/internal/i18n"
	"github.com/abhisek/studybuddy/internal/screen"
	"github.com/abhisek/studybuddy/internal/study"
	"github.com/abhisek/studybuddy/internal/ui/components"
	"github.com/abhisek/studybuddy/internal/ui/layout"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

// answeredMsg is sent when the model replies to a question.
type answeredMsg struct {
	Token int
	Err   error
}

// ChatScreen asks the model one question at a time and shows the running
// transcript.
type ChatScreen struct {
	ctx   context.Context
	chat  *study.Chat
	input components.TextInput

	token    int
	cancel   context.CancelFunc
	question string // in flight, "" when idle
	status   string
	errMsg   string
}

var _ screen.Screen = (*ChatScreen)(nil)
var _ screen.KeyHintProvider = (*ChatScreen)(nil)

// New creates a chat screen over c.
func New(ctx context.Context, c *study.Chat) *ChatScreen {
	return &ChatScreen{
		ctx:   ctx,
		chat:  c,
		input: components.NewTextInput(i18n.T(ctx, "ChatPlaceholder"), 0),
	}
}

func (s *ChatScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *ChatScreen) Title() string {
	return i18n.T(s.ctx, "ChatTitle")
}

func (s *ChatScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Ask"},
		{Key: "Ctrl+L", Description: "Clear"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case answeredMsg:
		if msg.Token != s.token {
			return s, nil
		}
		s.question = ""
		if msg.Err != nil {
			s.errMsg = feedback.Error(s.ctx, msg.Err)
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+l":
			s.abort()
			s.question = ""
			s.errMsg = ""
			s.chat.Clear()
			s.status = i18n.T(s.ctx, "ChatCleared")
			return s, nil
		case "enter":
			if s.question != "" {
				return s, nil
			}
			q, ok := s.input.Take()
			if !ok {
				return s, nil
			}
			return s, s.ask(q)
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *ChatScreen) ask(q string) tea.Cmd {
	s.abort()
	ctx, cancel := context.WithCancel(s.ctx)
	s.cancel = cancel
	token, c := s.token, s.chat
	s.question = q
	s.errMsg, s.status = "", ""

	return func() tea.Msg {
		defer cancel()
		_, err := c.Ask(ctx, q)
		return answeredMsg{Token: token, Err: err}
	}
}

// abort invalidates and cancels the request in flight, if any.
func (s *ChatScreen) abort() {
	s.token++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *ChatScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var lines []string
	for _, t := range s.chat.Transcript().Turns() {
		lines = append(lines, renderTurn(t, cw))
	}
	if s.question != "" {
		lines = append(lines,
			renderTurn(study.Turn{Role: study.RoleUser, Content: s.question}, cw),
			theme.Hint.Render(i18n.T(s.ctx, "Thinking")))
	}
	if len(lines) == 0 {
		lines = append(lines, theme.Hint.Render(i18n.T(s.ctx, "ChatEmpty")))
	}

	var footer []string
	if s.errMsg != "" {
		footer = append(footer, lipgloss.NewStyle().Foreground(theme.Error).Width(cw).Render(s.errMsg))
	}
	if s.status != "" {
		footer = append(footer, theme.Hint.Render(s.status))
	}
	footer = append(footer, components.Card(s.input.View(), cw))
	bottom := strings.Join(footer, "\n")

	// Keep the newest turns in view above the prompt.
	avail := height - lipgloss.Height(bottom) - 3
	history := tail(strings.Join(lines, "\n\n"), avail)

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(1, 2).
		Render(history + "\n\n" + bottom)
}

func renderTurn(t study.Turn, cw int) string {
	label := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("You")
	if t.Role == study.RoleAssistant {
		label = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("Buddy")
	}
	body := theme.Body.Width(cw).Render(t.Content)
	return label + "\n" + body
}

// tail keeps the last n lines of s.
func tail(s string, n int) string {
	if n <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
