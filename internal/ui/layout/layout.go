// Package layout draws the frame around the active screen.
package layout

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/ui/theme"
)

// Below this size the frame is replaced by a resize notice.
const (
	MinWidth  = 64
	MinHeight = 18
)

// KeyHint is one entry of the footer.
type KeyHint struct {
	Key         string
	Description string
}

// TooSmall reports whether a terminal of this size cannot hold the frame.
func TooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// Notice centers msg on an otherwise empty terminal.
func Notice(msg string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Accent).Align(lipgloss.Center).Render(msg))
}

// Frame is the chrome around a screen: a title bar on top and a row of
// key hints at the bottom.
type Frame struct {
	Name   string
	Title  string
	Status string
	Hints  []KeyHint
}

var barStyle = lipgloss.NewStyle().
	Background(theme.BgCard).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border)

// Render draws the frame at width x height and fills the space between
// the bars with body, which is given the size left for it.
func (f Frame) Render(width, height int, body func(w, h int) string) string {
	top := f.titleBar(width)
	bottom := f.hintBar(width)

	h := max(height-lipgloss.Height(top)-lipgloss.Height(bottom), 0)
	content := lipgloss.NewStyle().Width(width).Height(h).MaxHeight(h).Render(body(width, h))

	return lipgloss.JoinVertical(lipgloss.Left, top, content, bottom)
}

// titleBar puts the app name left, the screen title in the middle and the
// status right. The title moves right when the name is too wide to center it.
func (f Frame) titleBar(width int) string {
	name := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(" " + f.Name)
	title := theme.Body.Render(f.Title)
	status := lipgloss.NewStyle().Foreground(theme.Accent).Render(f.Status)

	inner := max(width-4, 0)
	nw, tw, sw := lipgloss.Width(name), lipgloss.Width(title), lipgloss.Width(status)
	gap1 := max((inner-tw)/2-nw, 1)
	gap2 := max(inner-nw-gap1-tw-sw, 1)

	line := name + strings.Repeat(" ", gap1) + title + strings.Repeat(" ", gap2) + status
	return barStyle.Width(width).Render(line)
}

func (f Frame) hintBar(width int) string {
	keyStyle := theme.Body.Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	parts := make([]string, len(f.Hints))
	for i, h := range f.Hints {
		parts[i] = keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description)
	}
	return barStyle.Width(width).Render(" " + strings.Join(parts, "  ·  "))
}
