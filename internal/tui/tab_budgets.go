package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/moneymoves/internal/cli"
	"github.com/theirongolddev/moneymoves/internal/tui/components"
	"github.com/theirongolddev/moneymoves/internal/tui/theme"

	"github.com/shopspring/decimal"
)

func (a App) renderBudgetsTab(cw int) string {
	t := theme.Active
	sym := a.cfg.Display.CurrencySymbol
	inner := components.CardInnerWidth(cw)

	if len(a.breakdown) == 0 {
		return components.ContentCard("Budgets", surface(t.TextDim).Render("No categories. Press n to add one."), cw)
	}

	const markW, nameW, amtW = 2, 14, 24
	barW := max(inner-markW-nameW-amtW-6, 10)

	var totalSpent, totalLimit decimal.Decimal
	lines := make([]string, 0, len(a.breakdown)+3)
	for i, row := range a.breakdown {
		totalSpent = totalSpent.Add(row.Spent)
		totalLimit = totalLimit.Add(row.Category.Limit)

		mark := "  "
		nameStyle := surface(t.TextPrimary)
		if i == a.cursor {
			mark = "▸ "
			nameStyle = surface(t.AccentBright).Bold(true)
		}

		var bar, amounts string
		if row.Category.Limit.IsPositive() {
			bar = components.BudgetBar(row.RawRatio, barW)
			amounts = fmt.Sprintf("%s / %s", cli.FormatMoney(row.Spent, sym), cli.FormatMoney(row.Category.Limit, sym))
		} else {
			bar = surface(t.TextDim).Render(pad("no limit", barW+5))
			amounts = cli.FormatMoney(row.Spent, sym)
		}

		lines = append(lines,
			surface(t.Accent).Render(mark)+
				nameStyle.Render(pad(row.Category.Name, nameW))+
				bar+
				surface(t.TextMuted).Render(fmt.Sprintf("%*s", amtW, amounts)))
	}

	lines = append(lines, "",
		surface(t.TextMuted).Render(fmt.Sprintf("Total %s of %s budgeted",
			cli.FormatMoney(totalSpent, sym), cli.FormatMoney(totalLimit, sym))),
		surface(t.TextDim).Render("[n]ew category  [e]dit limit  [j/k] select"))

	body := components.FocusCard("Budgets", strings.Join(lines, "\n"), cw)

	if sel := a.cursor; sel < len(a.breakdown) {
		row := a.breakdown[sel]
		detail := fmt.Sprintf("%d transactions · %s remaining",
			row.Count, cli.FormatMoney(row.Remaining, sym))
		body += "\n" + components.ContentCard(row.Category.Name, surface(t.TextMuted).Render(detail), cw)
	}
	return body
}
