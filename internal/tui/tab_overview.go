package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/moneymoves/internal/cli"
	"github.com/theirongolddev/moneymoves/internal/coach"
	"github.com/theirongolddev/moneymoves/internal/game"
	"github.com/theirongolddev/moneymoves/internal/model"
	"github.com/theirongolddev/moneymoves/internal/pipeline"
	"github.com/theirongolddev/moneymoves/internal/tui/components"
	"github.com/theirongolddev/moneymoves/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

const recentLimit = 8

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	sym := a.cfg.Display.CurrencySymbol
	s := a.summary
	xp := a.ledger.Game.XP

	netColor := t.Green
	if s.Net.IsNegative() {
		netColor = t.Red
	}

	var b strings.Builder

	// Row 1: headline numbers
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Income", Value: cli.FormatMoney(s.Income, sym), Color: t.Income()},
		{Label: "Expenses", Value: cli.FormatMoney(s.Expenses, sym), Color: t.Expense(),
			Delta: fmt.Sprintf("%d transactions", len(s.Transactions))},
		{Label: "Net", Value: cli.FormatSigned(s.Net, sym), Color: netColor},
		{Label: "Level", Value: strconv.Itoa(game.Level(xp)), Color: t.XP(),
			Delta: cli.FormatNumber(int64(xp)) + " XP"},
	}, cw))
	b.WriteString("\n")

	// Row 2: daily spending + coach
	halves := components.LayoutRow(cw, 2)
	b.WriteString(components.CardRow([]string{
		components.ContentCard("Daily Spending", a.dailyBody(components.CardInnerWidth(halves[0])), halves[0]),
		components.ContentCard("Coach", a.coachBody(components.CardInnerWidth(halves[1])), halves[1]),
	}))
	b.WriteString("\n")

	// Row 3: recent transactions
	b.WriteString(components.ContentCard("Recent Transactions", a.recentBody(components.CardInnerWidth(cw)), cw))
	return b.String()
}

func (a App) dailyBody(w int) string {
	t := theme.Active
	sym := a.cfg.Display.CurrencySymbol

	values := make([]float64, len(a.daily))
	peak := -1
	for i, d := range a.daily {
		values[i] = d.Expenses.InexactFloat64()
		if peak < 0 || d.Expenses.GreaterThan(a.daily[peak].Expenses) {
			peak = i
		}
	}

	lines := []string{components.Sparkline(components.Tail(values, w), t.Expense())}
	if peak >= 0 && a.daily[peak].Expenses.IsPositive() {
		d := a.daily[peak]
		lines = append(lines, surface(t.TextMuted).Render(
			fmt.Sprintf("Peak %s on %s", cli.FormatMoney(d.Expenses, sym), d.Date.Format("Mon Jan 2"))))
	} else {
		lines = append(lines, surface(t.TextDim).Render("No spending yet"))
	}
	if top := pipeline.TopCategories(a.ledger, a.month); len(top) > 0 {
		lines = append(lines, surface(t.TextMuted).Render(
			fmt.Sprintf("Top: %s %s", top[0].Category.Name, cli.FormatMoney(top[0].Spent, sym))))
	}
	return strings.Join(lines, "\n")
}

func (a App) coachBody(w int) string {
	t := theme.Active
	if len(a.insights) == 0 {
		return surface(t.TextDim).Render("Nothing to report. Keep logging!")
	}
	lines := make([]string, 0, len(a.insights))
	for _, in := range a.insights {
		marker := lipgloss.NewStyle().Foreground(kindColor(in.Kind)).Background(t.Surface).Bold(true)
		lines = append(lines, marker.Render(cli.KindIcon(in.Kind)+" ")+
			surface(t.TextPrimary).Render(cli.Truncate(in.Title, w-2)))
	}
	return strings.Join(lines, "\n")
}

func (a App) recentBody(w int) string {
	t := theme.Active
	sym := a.cfg.Display.CurrencySymbol
	txs := a.summary.Transactions
	if len(txs) == 0 {
		return surface(t.TextDim).Render("No transactions this month. Press a to log one.")
	}

	const dateW, catW, amtW = 11, 14, 12
	noteW := max(w-dateW-catW-amtW, 8)

	lines := make([]string, 0, recentLimit)
	for _, tx := range txs[:min(len(txs), recentLimit)] {
		amt := cli.FormatMoney(tx.Amount, sym)
		color := t.Expense()
		if tx.Type == model.Income {
			amt = "+" + amt
			color = t.Income()
		}
		lines = append(lines,
			surface(t.TextDim).Render(pad(tx.Date, dateW))+
				surface(t.TextMuted).Render(pad(a.ledger.CategoryName(tx.CategoryID), catW))+
				surface(t.TextPrimary).Render(pad(tx.Note, noteW))+
				surface(color).Render(fmt.Sprintf("%*s", amtW, amt)))
	}
	return strings.Join(lines, "\n")
}

func kindColor(k coach.Kind) lipgloss.Color {
	t := theme.Active
	switch k {
	case coach.Alert:
		return t.Red
	case coach.Warning:
		return t.Orange
	case coach.Win:
		return t.Green
	default:
		return t.Blue
	}
}
