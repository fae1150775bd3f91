package components

import (
	"strconv"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studybuddy/internal/ui/theme"
)

// MenuItem is one entry of a Menu. Disabled entries are shown but never
// selected.
type MenuItem struct {
	Label    string
	Action   func() tea.Cmd
	Disabled bool
}

var menuKeys = struct {
	Up, Down, Choose key.Binding
}{
	Up:     key.NewBinding(key.WithKeys("up", "k")),
	Down:   key.NewBinding(key.WithKeys("down", "j", "tab")),
	Choose: key.NewBinding(key.WithKeys("enter", "space")),
}

// Menu is a vertical list of actions. Digits 1-9 run the matching entry
// directly.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu selects the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.move(1)
	return m
}

// move steps the selection by dir, skipping disabled items and wrapping
// around. It stays put when no other item is enabled.
func (m *Menu) move(dir int) {
	n := len(m.Items)
	for step := 1; step <= n; step++ {
		i := ((m.Selected+dir*step)%n + n) % n
		if !m.Items[i].Disabled {
			m.Selected = i
			return
		}
	}
}

func (m Menu) run(i int) tea.Cmd {
	if i < 0 || i >= len(m.Items) || m.Items[i].Disabled || m.Items[i].Action == nil {
		return nil
	}
	return m.Items[i].Action()
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(kmsg, menuKeys.Up):
		m.move(-1)
	case key.Matches(kmsg, menuKeys.Down):
		m.move(1)
	case key.Matches(kmsg, menuKeys.Choose):
		return m, m.run(m.Selected)
	default:
		if d, err := strconv.Atoi(kmsg.String()); err == nil && d >= 1 && d <= len(m.Items) {
			if !m.Items[d-1].Disabled {
				m.Selected = d - 1
			}
			return m, m.run(d - 1)
		}
	}
	return m, nil
}

func (m Menu) View() string {
	var b strings.Builder
	for i, item := range m.Items {
		line := strconv.Itoa(i+1) + "  " + item.Label
		switch {
		case item.Disabled:
			b.WriteString(theme.Disabled.Render("    " + line))
		case i == m.Selected:
			b.WriteString(theme.Selected.Render("  ▸ " + line))
		default:
			b.WriteString(theme.Unselected.Render("    " + line))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
