package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

type ran struct{ label string }

func menuItems(disabled ...int) []MenuItem {
	labels := []string{"quiz", "chat", "history", "quit"}
	items := make([]MenuItem, len(labels))
	for i, l := range labels {
		items[i] = MenuItem{Label: l, Action: func() tea.Cmd {
			return func() tea.Msg { return ran{l} }
		}}
	}
	for _, i := range disabled {
		items[i].Disabled = true
	}
	return items
}

func press(m Menu, keys ...tea.KeyPressMsg) (Menu, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		m, cmd = m.Update(k)
	}
	return m, cmd
}

var (
	up    = tea.KeyPressMsg{Code: tea.KeyUp}
	down  = tea.KeyPressMsg{Code: tea.KeyDown}
	enter = tea.KeyPressMsg{Code: tea.KeyEnter}
)

func TestMenu_SkipsDisabled(t *testing.T) {
	m := NewMenu(menuItems(0, 2))
	if m.Selected != 1 {
		t.Fatalf("initial selection = %d, want 1", m.Selected)
	}
	m, _ = press(m, down)
	if m.Selected != 3 {
		t.Errorf("after down = %d, want 3", m.Selected)
	}
}

func TestMenu_Wraps(t *testing.T) {
	m, _ := press(NewMenu(menuItems()), up)
	if m.Selected != 3 {
		t.Errorf("up from first = %d, want 3", m.Selected)
	}
	m, _ = press(m, down)
	if m.Selected != 0 {
		t.Errorf("down from last = %d, want 0", m.Selected)
	}
}

func TestMenu_EnterRunsSelected(t *testing.T) {
	_, cmd := press(NewMenu(menuItems()), down, enter)
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if got := cmd().(ran).label; got != "chat" {
		t.Errorf("ran %q, want chat", got)
	}
}

func TestMenu_DigitShortcut(t *testing.T) {
	m, cmd := press(NewMenu(menuItems()), tea.KeyPressMsg{Code: '3', Text: "3"})
	if cmd == nil || cmd().(ran).label != "history" {
		t.Fatal("expected digit 3 to run history")
	}
	if m.Selected != 2 {
		t.Errorf("selected = %d, want 2", m.Selected)
	}

	_, cmd = press(NewMenu(menuItems(1)), tea.KeyPressMsg{Code: '2', Text: "2"})
	if cmd != nil {
		t.Error("disabled entry must not run")
	}
}

func TestMenu_View(t *testing.T) {
	view := NewMenu(menuItems(2)).View()
	if !strings.Contains(view, "▸ 1  quiz") {
		t.Errorf("selected entry not marked:\n%s", view)
	}
	if strings.Contains(view, "▸ 3") {
		t.Errorf("disabled entry marked:\n%s", view)
	}
}

func TestMeter(t *testing.T) {
	if got := Meter("", 0, 0, 10); got == "" {
		t.Error("expected an empty bar for zero total")
	}
	if got := Meter("2/5 answered", 2, 5, 40); !strings.Contains(got, "2/5 answered") {
		t.Errorf("label missing: %q", got)
	}
}
