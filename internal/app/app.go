// Package app hosts the Bubble Tea program: it owns the screen stack and
// draws the frame around the active screen.
package app

import (
	"context"
	"fmt"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studybuddy/internal/i18n"
	"github.com/abhisek/studybuddy/internal/router"
	"github.com/abhisek/studybuddy/internal/screen"
	"github.com/abhisek/studybuddy/internal/ui/layout"
)

// Options configures the frame.
type Options struct {
	Name   string // left of the title bar
	Status string // right of the title bar, usually the model ID
}

var (
	quitKey = key.NewBinding(key.WithKeys("ctrl+c"))
	backKey = key.NewBinding(key.WithKeys("esc"))
)

type model struct {
	ctx    context.Context
	router *router.Router
	opts   Options

	width, height int
}

func newModel(ctx context.Context, root screen.Screen, opts Options) model {
	return model{ctx: ctx, router: router.New(root), opts: opts}
}

func (m model) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, quitKey):
			return m, tea.Quit
		case key.Matches(msg, backKey):
			return m, m.router.Pop()
		}
	}
	return m, m.router.Update(msg)
}

func (m model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m model) render() string {
	switch {
	case m.width == 0 || m.height == 0:
		return ""
	case layout.TooSmall(m.width, m.height):
		return layout.Notice(i18n.Td(m.ctx, "TooSmall", map[string]any{
			"Width": layout.MinWidth, "Height": layout.MinHeight,
		}), m.width, m.height)
	}
	f := layout.Frame{
		Name:   m.opts.Name,
		Title:  m.router.Active().Title(),
		Status: m.opts.Status,
		Hints:  m.hints(),
	}
	return f.Render(m.width, m.height, m.router.View)
}

func (m model) hints() []layout.KeyHint {
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		return p.KeyHints()
	}
	quit := layout.KeyHint{Key: "Ctrl+C", Description: i18n.T(m.ctx, "HintQuit")}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{{Key: "Esc", Description: i18n.T(m.ctx, "HintBack")}, quit}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: i18n.T(m.ctx, "HintNavigate")},
		{Key: "Enter", Description: i18n.T(m.ctx, "HintSelect")},
		quit,
	}
}

// Run shows root full-screen until the user quits.
func Run(ctx context.Context, root screen.Screen, opts Options) error {
	if _, err := tea.NewProgram(newModel(ctx, root, opts), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("run terminal UI: %w", err)
	}
	return nil
}
