package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/ui/theme"
)

// MultiChoice renders one quiz question with its options. Options carry
// their own "A) " labels.
type MultiChoice struct {
	Question string
	Options  []string
	Cursor   int

	// Chosen is the index of the selected option, -1 when unanswered.
	Chosen int
	// Correct is the index of the right option once revealed, else -1.
	Correct int
}

// NewMultiChoice creates a selector with the cursor on the chosen option,
// or on the first option when nothing is chosen.
func NewMultiChoice(question string, options []string, chosen int) MultiChoice {
	cursor := chosen
	if cursor < 0 {
		cursor = 0
	}
	return MultiChoice{
		Question: question,
		Options:  options,
		Cursor:   cursor,
		Chosen:   chosen,
		Correct:  -1,
	}
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update moves the cursor. Choosing is left to the owner, which must
// validate the choice against the quiz.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
	}

	return m, nil
}

// Reveal marks the correct option.
func (m *MultiChoice) Reveal(correct int) {
	m.Correct = correct
}

// View renders the question and its options.
func (m MultiChoice) View() string {
	questionStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	s := questionStyle.Render(m.Question) + "\n\n"

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Cursor {
			prefix = "▸ "
		}
		mark := " "
		if i == m.Chosen {
			mark = "●"
		}
		line := fmt.Sprintf("%s%s %s", prefix, mark, opt)

		switch {
		case m.Correct >= 0 && i == m.Correct:
			s += theme.Correct.Render(line) + "\n"
		case m.Correct >= 0 && i == m.Chosen:
			s += theme.Incorrect.Render(line) + "\n"
		case m.Correct >= 0:
			s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
		case i == m.Cursor:
			s += theme.Selected.Render(line) + "\n"
		default:
			s += theme.Unselected.Render(line) + "\n"
		}
	}

	return s
}

// Answered reports whether an option is chosen.
func (m MultiChoice) Answered() bool {
	return m.Chosen >= 0
}
