// Package home is the start menu.
package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/i18n"
	"github.com/abhisek/studybuddy/internal/router"
	"github.com/abhisek/studybuddy/internal/screen"
	"github.com/abhisek/studybuddy/internal/screens/history"
	"github.com/abhisek/studybuddy/internal/store"
	"github.com/abhisek/studybuddy/internal/ui/components"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

const bannerArt = `┌─────┐
│ ◉ ◉ │   S T U D Y
│  ▽  │   B U D D Y
│ ≡≡≡ │
└─────┘`

// Deps builds the screens reachable from the menu. History may be nil,
// in which case the history entry is disabled.
type Deps struct {
	NewQuiz func() screen.Screen
	NewChat func() screen.Screen
	History history.Source
}

type summaryLoadedMsg struct {
	Summary store.QuizSummary
	Err     error
}

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	ctx     context.Context
	deps    Deps
	menu    components.Menu
	summary *store.QuizSummary
}

var (
	_ screen.Screen  = (*HomeScreen)(nil)
	_ screen.Resumer = (*HomeScreen)(nil)
)

// New creates a new HomeScreen.
func New(ctx context.Context, deps Deps) *HomeScreen {
	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: build()} }
		}
	}

	items := []components.MenuItem{
		{Label: i18n.T(ctx, "MenuQuiz"), Action: push(deps.NewQuiz), Disabled: deps.NewQuiz == nil},
		{Label: i18n.T(ctx, "MenuChat"), Action: push(deps.NewChat), Disabled: deps.NewChat == nil},
		{Label: i18n.T(ctx, "MenuHistory"), Action: push(func() screen.Screen {
			return history.New(ctx, deps.History)
		}), Disabled: deps.History == nil},
		{Label: i18n.T(ctx, "MenuQuit"), Action: func() tea.Cmd { return tea.Quit }},
	}

	return &HomeScreen{
		ctx:  ctx,
		deps: deps,
		menu: components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadSummary()
}

// Resume reloads the summary so a quiz taken meanwhile shows up.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.loadSummary()
}

func (h *HomeScreen) loadSummary() tea.Cmd {
	if h.deps.History == nil {
		return nil
	}
	ctx, src := h.ctx, h.deps.History
	return func() tea.Msg {
		sum, err := src.QuizSummary(ctx)
		return summaryLoadedMsg{Summary: sum, Err: err}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(summaryLoadedMsg); ok {
		if msg.Err == nil {
			h.summary = &msg.Summary
		}
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	if cw > 48 {
		cw = 48
	}

	sections := []string{
		lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(bannerArt),
	}
	if h.summary != nil && h.summary.Graded > 0 {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
			Render(fmt.Sprintf("★ %d graded   ✓ %.0f%%   ◆ %d perfect",
				h.summary.Graded, h.summary.Accuracy()*100, h.summary.Perfect)))
	}
	sections = append(sections, components.Card(h.menu.View(), cw))

	return components.Center(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return i18n.T(h.ctx, "HomeTitle")
}
