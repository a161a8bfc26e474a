package components

import (
	"fmt"

	"github.com/theirongolddev/moneymoves/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// BudgetBar renders a solid bar for a spent/limit ratio followed by the
// percentage. The bar color follows the ratio thresholds; the fill is
// clamped to the bar while the label shows the raw percentage.
func BudgetBar(ratio float64, width int) string {
	t := theme.Active
	color := t.ForRatio(ratio)

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(max(width, 4)),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return bar.ViewAs(clamp01(ratio)) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%3.0f%%", max(ratio, 0)*100))
}

// GoalBar renders savings progress toward a goal. Goals fill in the accent
// color and turn green once reached.
func GoalBar(ratio float64, width int) string {
	t := theme.Active
	color := t.Accent
	if ratio >= 1 {
		color = t.Green
	}

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(max(width, 4)),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return bar.ViewAs(clamp01(ratio)) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%3.0f%%", clamp01(ratio)*100))
}

func clamp01(f float64) float64 {
	return min(max(f, 0), 1)
}
