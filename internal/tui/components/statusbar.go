package components

import (
	"strings"

	"github.com/theirongolddev/moneymoves/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar. left holds key hints,
// right holds context such as the month and XP, and flash replaces the
// hints when set.
func RenderStatusBar(width int, right, flash string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface).
		Width(width)

	left := " [a]dd  [1-4]quick  [?]help  [q]uit"
	if flash != "" {
		left = " " + lipgloss.NewStyle().
			Foreground(t.XP()).
			Background(t.Surface).
			Bold(true).
			Render(flash)
	}
	if right != "" {
		right += " "
	}

	padding := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return style.Render(left + strings.Repeat(" ", padding) + right)
}
