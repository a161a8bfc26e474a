package cli

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/moneymoves/internal/coach"

	"github.com/charmbracelet/lipgloss"
)

// Theme colors (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorOrange    = lipgloss.Color("#DA702C")
	ColorRed       = lipgloss.Color("#D14D41")
	ColorBlue      = lipgloss.Color("#4385BE")
	ColorYellow    = lipgloss.Color("#D0A215")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

// Separator is a row value that renders as a horizontal rule.
var Separator = []string{"---"}

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	// LeftCols is how many leading columns are left-aligned; the rest are
	// right-aligned. Zero means one.
	LeftCols int
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderSection renders a section heading.
func RenderSection(title string) string {
	return "  " + headerStyle.Render(title)
}

// RenderTable renders a bordered table with headers and rows.
func RenderTable(t Table) string {
	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}
	if numCols == 0 {
		return ""
	}
	left := t.LeftCols
	if left <= 0 {
		left = 1
	}

	widths := make([]int, numCols)
	measure := func(row []string) {
		for i, cell := range row {
			if i < numCols {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}
	measure(t.Headers)
	for _, row := range t.Rows {
		if !isSeparator(row) {
			measure(row)
		}
	}

	rule := func(l, m, r string) string {
		parts := make([]string, numCols)
		for i, w := range widths {
			parts[i] = strings.Repeat("─", w+2)
		}
		return dimStyle.Render(l+strings.Join(parts, m)+r) + "\n"
	}
	line := func(row []string, style lipgloss.Style) string {
		var b strings.Builder
		b.WriteString(dimStyle.Render("│"))
		for i := range numCols {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			pad := strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
			if i < left {
				b.WriteString(style.Render(" " + cell + pad + " "))
			} else {
				b.WriteString(style.Render(" " + pad + cell + " "))
			}
			b.WriteString(dimStyle.Render("│"))
		}
		return b.String() + "\n"
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString(RenderSection(t.Title) + "\n")
	}
	b.WriteString(rule("╭", "┬", "╮"))
	if len(t.Headers) > 0 {
		b.WriteString(line(t.Headers, headerStyle))
		b.WriteString(rule("├", "┼", "┤"))
	}
	for _, row := range t.Rows {
		if isSeparator(row) {
			b.WriteString(rule("├", "┼", "┤"))
			continue
		}
		b.WriteString(line(row, valueStyle))
	}
	b.WriteString(rule("╰", "┴", "╯"))
	return b.String()
}

func isSeparator(row []string) bool {
	return len(row) == 1 && row[0] == Separator[0]
}

// RatioColor picks green, yellow or red for a budget ratio.
func RatioColor(ratio float64) lipgloss.Color {
	switch {
	case ratio >= 1:
		return ColorRed
	case ratio >= 0.8:
		return ColorYellow
	default:
		return ColorGreen
	}
}

// RenderProgressBar renders a budget bar for a 0..1 ratio, colored by how
// close it is to the limit.
func RenderProgressBar(ratio float64, width int) string {
	if width <= 0 {
		return ""
	}
	ratio = min(max(ratio, 0), 1)
	filled := int(ratio * float64(width))

	style := lipgloss.NewStyle().Foreground(RatioColor(ratio))
	return style.Render(strings.Repeat("█", filled)) +
		dimStyle.Render(strings.Repeat("░", width-filled))
}

// RenderSparkline generates a unicode block sparkline from a series of values.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	peak := values[0]
	for _, v := range values[1:] {
		peak = max(peak, v)
	}
	if peak <= 0 {
		peak = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		b.WriteRune(blocks[min(max(idx, 0), len(blocks)-1)])
	}
	return b.String()
}

// KindColor maps an insight kind to its accent color.
func KindColor(k coach.Kind) lipgloss.Color {
	switch k {
	case coach.Alert:
		return ColorRed
	case coach.Warning:
		return ColorOrange
	case coach.Win:
		return ColorGreen
	default:
		return ColorBlue
	}
}

// KindIcon is the one-character marker shown before an insight.
func KindIcon(k coach.Kind) string {
	switch k {
	case coach.Alert:
		return "!"
	case coach.Warning:
		return "▲"
	case coach.Win:
		return "★"
	default:
		return "•"
	}
}

// RenderInsights renders coach insights as a list, wrapped to width.
func RenderInsights(insights []coach.Insight, width int) string {
	var b strings.Builder
	body := lipgloss.NewStyle().Foreground(ColorText).Width(max(width-4, 20))
	for _, in := range insights {
		marker := lipgloss.NewStyle().Bold(true).Foreground(KindColor(in.Kind))
		fmt.Fprintf(&b, "  %s %s\n", marker.Render(KindIcon(in.Kind)), marker.Render(in.Title))
		for _, ln := range strings.Split(body.Render(in.Message), "\n") {
			b.WriteString("    " + mutedStyle.Render(ln) + "\n")
		}
	}
	return b.String()
}

// RenderReward renders an XP acknowledgement line.
func RenderReward(amount int, reason string) string {
	xp := lipgloss.NewStyle().Bold(true).Foreground(ColorYellow).Render(FormatXP(amount))
	return fmt.Sprintf("  %s %s", xp, mutedStyle.Render(reason))
}

// Muted renders s in the muted text color.
func Muted(s string) string {
	return mutedStyle.Render(s)
}
