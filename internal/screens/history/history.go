// Package history lists past quizzes and their scores.
package history

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/table"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/i18n"
	"github.com/abhisek/studybuddy/internal/screen"
	"github.com/abhisek/studybuddy/internal/store"
	"github.com/abhisek/studybuddy/internal/ui/components"
	"github.com/abhisek/studybuddy/internal/ui/layout"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

const pageSize = 50

// Source reads recorded quiz events.
type Source interface {
	QueryQuizEvents(ctx context.Context, opts store.QueryOpts) ([]store.QuizEvent, error)
	QuizSummary(ctx context.Context) (store.QuizSummary, error)
}

type loadedMsg struct {
	events  []store.QuizEvent
	summary store.QuizSummary
	err     error
}

var keys = struct {
	Details, Session, Reload key.Binding
}{
	Details: key.NewBinding(key.WithKeys("enter")),
	Session: key.NewBinding(key.WithKeys("s")),
	Reload:  key.NewBinding(key.WithKeys("r")),
}

// HistoryScreen is a scrollable table of quiz events, newest first.
// Pressing s narrows it to the session of the selected event.
type HistoryScreen struct {
	ctx    context.Context
	source Source

	table   table.Model
	events  []store.QuizEvent
	summary store.QuizSummary
	session string // session filter, empty for all
	details bool

	loaded bool
	err    error
}

var (
	_ screen.Screen          = (*HistoryScreen)(nil)
	_ screen.KeyHintProvider = (*HistoryScreen)(nil)
)

func New(ctx context.Context, source Source) *HistoryScreen {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "When", Width: 17},
			{Title: "Event", Width: 18},
			{Title: "Score", Width: 6},
			{Title: "Band", Width: 15},
			{Title: "Session", Width: 8},
		}),
		table.WithFocused(true),
	)
	st := table.DefaultStyles()
	st.Header = st.Header.Foreground(theme.Secondary).
		BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(theme.Border)
	st.Selected = theme.Selected
	t.SetStyles(st)

	return &HistoryScreen{ctx: ctx, source: source, table: t}
}

func (s *HistoryScreen) Init() tea.Cmd {
	ctx, src, session := s.ctx, s.source, s.session
	return func() tea.Msg {
		events, err := src.QueryQuizEvents(ctx, store.QueryOpts{Limit: pageSize, Session: session})
		if err != nil {
			return loadedMsg{err: err}
		}
		summary, err := src.QuizSummary(ctx)
		return loadedMsg{events: events, summary: summary, err: err}
	}
}

func (s *HistoryScreen) Title() string {
	if s.session != "" {
		return i18n.T(s.ctx, "HistoryTitle") + " · " + shortID(s.session)
	}
	return i18n.T(s.ctx, "HistoryTitle")
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	session := "Session"
	if s.session != "" {
		session = "All"
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Details"},
		{Key: "S", Description: session},
		{Key: "R", Description: "Reload"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.loaded, s.err = true, msg.err
		if msg.err == nil {
			s.events, s.summary = msg.events, msg.summary
			s.table.SetRows(rows(s.events))
			s.table.SetCursor(0)
		}
		return s, nil

	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, keys.Details):
			s.details = !s.details
			return s, nil
		case key.Matches(msg, keys.Reload):
			return s, s.Init()
		case key.Matches(msg, keys.Session):
			if s.session != "" {
				s.session = ""
			} else if ev, ok := s.selectedEvent(); ok {
				s.session = ev.SessionID
			}
			return s, s.Init()
		}
	}

	var cmd tea.Cmd
	s.table, cmd = s.table.Update(msg)
	return s, cmd
}

func (s *HistoryScreen) selectedEvent() (store.QuizEvent, bool) {
	i := s.table.Cursor()
	if i < 0 || i >= len(s.events) {
		return store.QuizEvent{}, false
	}
	return s.events[i], true
}

func (s *HistoryScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	switch {
	case s.err != nil:
		return components.Center(theme.Incorrect.Render("Error: "+s.err.Error()), width, height)
	case !s.loaded:
		return components.Center(theme.Hint.Render(i18n.T(s.ctx, "HistoryLoading")), width, height)
	case len(s.events) == 0:
		return components.Center(theme.Hint.Render(i18n.T(s.ctx, "HistoryEmpty")), width, height)
	}

	stats := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(s.statsLine())
	var detail string
	if ev, ok := s.selectedEvent(); ok && s.details {
		detail = components.Card(theme.Body.Render(describe(ev)), cw)
	}

	tableHeight := height - 2 - lipgloss.Height(stats)
	if detail != "" {
		tableHeight -= lipgloss.Height(detail) + 1
	}
	s.table.SetWidth(cw)
	s.table.SetHeight(max(tableHeight, 3))

	parts := []string{stats, s.table.View()}
	if detail != "" {
		parts = append(parts, detail)
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(parts, "\n\n"))
}

func (s *HistoryScreen) statsLine() string {
	return i18n.Td(s.ctx, "HistoryStats", map[string]any{
		"Graded":   s.summary.Graded,
		"Failed":   s.summary.Failed,
		"Perfect":  s.summary.Perfect,
		"Accuracy": fmt.Sprintf("%.0f", s.summary.Accuracy()*100),
	})
}

func rows(events []store.QuizEvent) []table.Row {
	out := make([]table.Row, len(events))
	for i, ev := range events {
		score := ""
		if ev.Action == store.QuizGraded {
			score = fmt.Sprintf("%d/%d", ev.Score, ev.Total)
		}
		out[i] = table.Row{
			ev.Timestamp.Local().Format("Jan 02 15:04"),
			eventLabel(ev),
			score,
			ev.Band,
			shortID(ev.SessionID),
		}
	}
	return out
}

func eventLabel(ev store.QuizEvent) string {
	switch ev.Action {
	case store.QuizGenerated:
		return fmt.Sprintf("%d questions", ev.QuestionCount)
	case store.QuizGraded:
		return "graded"
	case store.QuizGenerationFailed:
		return "generation failed"
	case store.QuizGradingFailed:
		return "grading failed"
	}
	return string(ev.Action)
}

// describe is the detail panel for one event.
func describe(ev store.QuizEvent) string {
	lines := []string{
		"session  " + ev.SessionID,
		"event    " + eventLabel(ev),
	}
	if ev.Action == store.QuizGraded {
		lines = append(lines, fmt.Sprintf("score    %d/%d  %s", ev.Score, ev.Total, ev.Band))
	}
	if ev.Detail != "" {
		lines = append(lines, "detail   "+ev.Detail)
	}
	return strings.Join(lines, "\n")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
