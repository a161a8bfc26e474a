package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/moneymoves/internal/cli"
	"github.com/theirongolddev/moneymoves/internal/game"
	"github.com/theirongolddev/moneymoves/internal/tui/components"
	"github.com/theirongolddev/moneymoves/internal/tui/theme"
)

// xpPerLevel matches game.Level.
const xpPerLevel = 100

func (a App) renderGameTab(cw int) string {
	t := theme.Active
	g := a.ledger.Game
	halves := components.LayoutRow(cw, 2)

	// Progress card
	into := g.XP % xpPerLevel
	last := g.LastActionDate
	if last == "" {
		last = "never"
	}
	progress := strings.Join([]string{
		surface(t.XP()).Bold(true).Render("Level "+strconv.Itoa(game.Level(g.XP))) +
			surface(t.TextMuted).Render("  "+cli.FormatNumber(int64(g.XP))+" XP"),
		components.GoalBar(float64(into)/xpPerLevel, max(components.CardInnerWidth(halves[0])-6, 10)),
		surface(t.TextMuted).Render(fmt.Sprintf("%d XP to level %d", xpPerLevel-into, game.Level(g.XP)+1)),
		surface(t.TextPrimary).Render("Streak: "+cli.FormatDays(g.Streak)) +
			surface(t.TextDim).Render("  last active "+last),
	}, "\n")

	// Badges card
	var badges string
	if len(g.Badges) == 0 {
		badges = surface(t.TextDim).Render("No badges yet. Log something to earn your first!")
	} else {
		lines := make([]string, len(g.Badges))
		for i, id := range g.Badges {
			lines[i] = surface(t.Yellow).Render("★ ") + surface(t.TextPrimary).Render(game.BadgeLabel(id))
		}
		badges = strings.Join(lines, "\n")
	}

	var b strings.Builder
	b.WriteString(components.CardRow([]string{
		components.ContentCard("Progress", progress, halves[0]),
		components.ContentCard("Badges", badges, halves[1]),
	}))
	b.WriteString("\n")
	b.WriteString(components.FocusCard("Challenges · "+a.month, a.challengesBody(components.CardInnerWidth(cw)), cw))
	return b.String()
}

func (a App) challengesBody(w int) string {
	t := theme.Active
	const markW, iconW, xpW = 2, 2, 8
	titleW := 24
	descW := max(w-markW-iconW-titleW-xpW, 10)

	lines := make([]string, 0, len(a.challenges)+2)
	for i, st := range a.challenges {
		mark := "  "
		if i == a.cursor {
			mark = "▸ "
		}

		icon, color := "· ", t.TextMuted
		switch {
		case st.Done:
			icon, color = "✓ ", t.Green
		case st.Claimable():
			icon, color = "◆ ", t.XP()
		}

		lines = append(lines,
			surface(t.Accent).Render(mark)+
				surface(color).Bold(true).Render(icon)+
				surface(t.TextPrimary).Render(pad(st.Title, titleW))+
				surface(t.XP()).Render(pad(cli.FormatXP(st.XPReward), xpW))+
				surface(t.TextMuted).Render(pad(st.Desc, descW)))
	}
	lines = append(lines, "",
		surface(t.TextDim).Render("◆ ready to claim   ✓ claimed   [enter] claim"))
	return strings.Join(lines, "\n")
}
