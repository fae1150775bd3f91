package components

import (
	"charm.land/bubbles/v2/progress"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/ui/theme"
)

// Meter renders a labelled static bar for done out of total, filling the
// given width. A zero total renders an empty bar.
func Meter(label string, done, total, width int) string {
	var line string
	if label != "" {
		line = theme.Body.Render(label) + "  "
	}

	bar := progress.New(
		progress.WithColors(theme.Secondary, theme.Primary),
		progress.WithFillCharacters(progress.DefaultFullCharFullBlock, progress.DefaultEmptyCharBlock),
		progress.WithoutPercentage(),
		progress.WithWidth(max(width-lipgloss.Width(line), 4)),
	)
	bar.EmptyColor = theme.Border

	pct := 0.0
	if total > 0 {
		pct = min(max(float64(done)/float64(total), 0), 1)
	}
	return line + bar.ViewAs(pct)
}
