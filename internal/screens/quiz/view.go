package quiz

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/feedback"
	"github.com/abhisek/studybuddy/internal/i18n"
	"github.com/abhisek/studybuddy/internal/ui/components"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func (s *QuizScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var sections []string
	switch {
	case s.pending != "":
		sections = append(sections, s.renderPending())
	case len(s.choices) == 0:
		sections = append(sections, s.renderNotes(cw))
	default:
		sections = append(sections, s.renderQuestion(cw))
		if s.session.Result() != nil {
			sections = append(sections, s.renderResult(cw))
		}
	}

	if s.errMsg != "" {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Error).Width(cw).Render(s.errMsg))
	}
	if s.status != "" {
		sections = append(sections, theme.Hint.Render(s.status))
	}

	content := strings.Join(sections, "\n\n")
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(1, 2).
		Render(content)
}

func (s *QuizScreen) renderPending() string {
	frame := spinnerFrames[s.frame%len(spinnerFrames)]
	return lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(frame + " " + i18n.T(s.ctx, s.pending))
}

func (s *QuizScreen) renderNotes(cw int) string {
	s.notes.SetWidth(cw)
	prompt := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
		Render(i18n.T(s.ctx, "NotesPrompt"))
	return prompt + "\n\n" + components.Card(s.notes.View(), cw)
}

// renderQuestion renders the progress line and the current question.
func (s *QuizScreen) renderQuestion(cw int) string {
	answered := 0
	for _, c := range s.choices {
		if c.Answered() {
			answered++
		}
	}
	total := len(s.choices)

	info := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(i18n.Td(s.ctx, "QuestionOf", map[string]any{"Number": s.current + 1, "Total": total}))
	bar := components.Meter(
		i18n.Td(s.ctx, "Answered", map[string]any{"Count": answered, "Total": total}),
		answered, total, cw)

	return info + "\n" + bar + "\n\n" + components.Card(s.choices[s.current].View(), cw)
}

// renderResult renders the verdict for the current question followed by
// the score and band lines.
func (s *QuizScreen) renderResult(cw int) string {
	r := s.session.Result()
	var b strings.Builder

	if s.current < len(r.Items) {
		it := r.Items[s.current]
		style := theme.Correct
		if it.Outcome.Wrong() {
			style = theme.Incorrect
		}
		b.WriteString(style.Render(feedback.Item(s.ctx, it)))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
		Render(feedback.Score(s.ctx, r)))
	b.WriteString("\n")
	b.WriteString(theme.Body.Render(feedback.Band(s.ctx, r.Band)))

	return lipgloss.NewStyle().Width(cw).Render(b.String())
}
