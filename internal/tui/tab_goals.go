package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/moneymoves/internal/cli"
	"github.com/theirongolddev/moneymoves/internal/model"
	"github.com/theirongolddev/moneymoves/internal/tui/components"
	"github.com/theirongolddev/moneymoves/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderGoalsTab(cw int) string {
	t := theme.Active
	sym := a.cfg.Display.CurrencySymbol
	inner := components.CardInnerWidth(cw)
	today := a.book.Today()

	goals := a.ledger.Goals
	if len(goals) == 0 {
		return components.ContentCard("Goals",
			surface(t.TextDim).Render("No savings goals yet. Press n to create one."), cw)
	}

	const markW, nameW, amtW, dueW = 2, 18, 24, 18
	barW := max(inner-markW-nameW-amtW-dueW-6, 10)

	lines := make([]string, 0, len(goals)+2)
	for i, g := range goals {
		mark := "  "
		nameStyle := surface(t.TextPrimary)
		if i == a.cursor {
			mark = "▸ "
			nameStyle = surface(t.AccentBright).Bold(true)
		}

		ratio := 0.0
		if g.Target.IsPositive() {
			ratio = g.Saved.Div(g.Target).InexactFloat64()
		}

		lines = append(lines,
			surface(t.Accent).Render(mark)+
				nameStyle.Render(pad(g.Name, nameW))+
				components.GoalBar(ratio, barW)+
				surface(t.TextMuted).Render(fmt.Sprintf("%*s", amtW,
					cli.FormatMoney(g.Saved, sym)+" / "+cli.FormatMoney(g.Target, sym)))+
				surface(dueColor(g, today)).Render(fmt.Sprintf("%*s", dueW, dueLabel(g, today))))
	}
	lines = append(lines, "",
		surface(t.TextDim).Render("[n]ew goal  [s]ave to goal  [x] delete  [j/k] select"))

	return components.FocusCard("Goals", strings.Join(lines, "\n"), cw)
}

func dueLabel(g model.Goal, today string) string {
	if !g.Remaining().IsPositive() {
		return "reached"
	}
	days, ok := model.DaysBetween(today, g.TargetDate)
	switch {
	case !ok:
		return g.TargetDate
	case days > 0:
		return "in " + cli.FormatDays(days)
	case days == 0:
		return "due today"
	default:
		return cli.FormatDays(-days) + " overdue"
	}
}

func dueColor(g model.Goal, today string) lipgloss.Color {
	t := theme.Active
	if !g.Remaining().IsPositive() {
		return t.Green
	}
	if days, ok := model.DaysBetween(today, g.TargetDate); ok && days < 0 {
		return t.Red
	}
	return t.TextMuted
}
