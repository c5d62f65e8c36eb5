// Package summary renders the completion panel printed at the end of a run,
// in a bordered, colored panel style.
package summary

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#8BC34A"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#2196F3"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#8BC34A")).
			Padding(0, 1)
)

// Stats is one run's outcome, ready to render.
type Stats struct {
	Transcript string
	RunID      string
	Applied    int
	Skipped    int
}

// Render formats Stats as a bordered completion panel.
func Render(s Stats) string {
	body := fmt.Sprintf(
		"%s\n%s %s\n%s %d\n%s %d\n%s %s",
		titleStyle.Render("reconstruction complete"),
		labelStyle.Render("transcript:"), s.Transcript,
		labelStyle.Render("applied:"), s.Applied,
		labelStyle.Render("skipped:"), s.Skipped,
		labelStyle.Render("run id:"), s.RunID,
	)
	return panelStyle.Render(body)
}
