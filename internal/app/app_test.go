package app

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studybuddy/internal/router"
	"github.com/abhisek/studybuddy/internal/screen"
)

type page struct{ title string }

func (p page) Init() tea.Cmd                           { return nil }
func (p page) Update(tea.Msg) (screen.Screen, tea.Cmd) { return p, nil }
func (p page) View(int, int) string                    { return "body of " + p.title }
func (p page) Title() string                           { return p.title }

func sized(m model, w, h int) model {
	next, _ := m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	return next.(model)
}

func TestModel_EscPopsToRoot(t *testing.T) {
	m := sized(newModel(context.Background(), page{"home"}, Options{Name: "Study Buddy"}), 100, 30)
	m.Update(router.PushScreenMsg{Screen: page{"quiz"}})
	if m.router.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", m.router.Depth())
	}

	m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.router.Depth() != 1 || m.router.Active().Title() != "home" {
		t.Errorf("depth %d active %q, want the root", m.router.Depth(), m.router.Active().Title())
	}
}

func TestModel_CtrlCQuits(t *testing.T) {
	m := newModel(context.Background(), page{"home"}, Options{})
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("got %T, want tea.QuitMsg", cmd())
	}
}

func TestModel_ViewFramesActiveScreen(t *testing.T) {
	m := sized(newModel(context.Background(), page{"home"}, Options{Name: "Study Buddy", Status: "gpt-4o-mini"}), 100, 30)

	content := m.render()
	for _, want := range []string{"Study Buddy", "home", "gpt-4o-mini", "body of home", "Navigate", "Quit"} {
		if !strings.Contains(content, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m.Update(router.PushScreenMsg{Screen: page{"chat"}})
	if content := m.render(); !strings.Contains(content, "Back") {
		t.Error("pushed screen should offer Esc Back")
	}
}

func TestModel_TooSmall(t *testing.T) {
	m := sized(newModel(context.Background(), page{"home"}, Options{}), 40, 10)
	content := m.render()
	if !strings.Contains(content, "too small") || strings.Contains(content, "body of home") {
		t.Errorf("expected only the resize notice:\n%s", content)
	}
}
