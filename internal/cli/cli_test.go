package cli

import (
	"strings"
	"testing"

	"github.com/theirongolddev/moneymoves/internal/coach"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/shopspring/decimal"
)

func init() {
	// Plain output so assertions can match text.
	lipgloss.SetColorProfile(termenv.Ascii)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in, symbol, want string
	}{
		{"0", "$", "$0.00"},
		{"5", "$", "$5.00"},
		{"18.5", "$", "$18.50"},
		{"1234.5", "$", "$1,234.50"},
		{"1234567.891", "€", "€1,234,567.89"},
		{"-50.5", "$", "-$50.50"},
		{"0.004", "$", "$0.00"},
	}
	for _, tt := range tests {
		if got := FormatMoney(dec(tt.in), tt.symbol); got != tt.want {
			t.Errorf("FormatMoney(%s, %q) = %q, want %q", tt.in, tt.symbol, got, tt.want)
		}
	}
}

func TestMoneyFormatterDrivesCoach(t *testing.T) {
	f := MoneyFormatter("£")
	if got := f(dec("3.75")); got != "£3.75" {
		t.Errorf("formatter = %q", got)
	}
}

func TestFormatSigned(t *testing.T) {
	if got := FormatSigned(dec("5"), "$"); got != "+$5.00" {
		t.Errorf("FormatSigned(5) = %q", got)
	}
	if got := FormatSigned(dec("-5"), "$"); got != "-$5.00" {
		t.Errorf("FormatSigned(-5) = %q", got)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-1234, "-1,234"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSmallFormatters(t *testing.T) {
	if got := FormatPercent(0.854); got != "85%" {
		t.Errorf("FormatPercent = %q", got)
	}
	if got := FormatXP(15); got != "+15 XP" {
		t.Errorf("FormatXP = %q", got)
	}
	if got := FormatDays(1); got != "1 day" {
		t.Errorf("FormatDays(1) = %q", got)
	}
	if got := FormatDays(14); got != "14 days" {
		t.Errorf("FormatDays(14) = %q", got)
	}
	if got := Truncate("Emergency Fund", 6); got != "Emerg…" {
		t.Errorf("Truncate = %q", got)
	}
	if got := Truncate("Fun", 6); got != "Fun" {
		t.Errorf("Truncate short = %q", got)
	}
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(Table{
		Title:   "Budgets",
		Headers: []string{"Category", "Spent"},
		Rows: [][]string{
			{"Food", "$18.50"},
			Separator,
			{"Total", "$1,043.50"},
		},
	})
	for _, want := range []string{"Budgets", "Category", "Food", "$1,043.50", "├", "╰"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}

	// Every line of the box has the same display width.
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")[1:]
	w := lipgloss.Width(lines[0])
	for i, ln := range lines {
		if lipgloss.Width(ln) != w {
			t.Errorf("line %d width = %d, want %d: %q", i, lipgloss.Width(ln), w, ln)
		}
	}

	if RenderTable(Table{}) != "" {
		t.Error("empty table should render nothing")
	}
}

func TestRenderProgressBar(t *testing.T) {
	tests := []struct {
		ratio  float64
		filled int
	}{
		{0, 0},
		{0.5, 10},
		{1, 20},
		{3, 20},
		{-1, 0},
	}
	for _, tt := range tests {
		bar := RenderProgressBar(tt.ratio, 20)
		if got := strings.Count(bar, "█"); got != tt.filled {
			t.Errorf("ratio %v: filled = %d, want %d", tt.ratio, got, tt.filled)
		}
		if got := lipgloss.Width(bar); got != 20 {
			t.Errorf("ratio %v: width = %d, want 20", tt.ratio, got)
		}
	}
}

func TestRatioColor(t *testing.T) {
	if RatioColor(0.5) != ColorGreen || RatioColor(0.8) != ColorYellow || RatioColor(1.2) != ColorRed {
		t.Error("RatioColor thresholds wrong")
	}
}

func TestRenderSparkline(t *testing.T) {
	got := RenderSparkline([]float64{0, 5, 10})
	if got != "▁▄█" {
		t.Errorf("sparkline = %q, want ▁▄█", got)
	}
	if RenderSparkline(nil) != "" {
		t.Error("empty series should render nothing")
	}
	if got := RenderSparkline([]float64{0, 0}); got != "▁▁" {
		t.Errorf("flat sparkline = %q", got)
	}
}

func TestRenderInsights(t *testing.T) {
	out := RenderInsights([]coach.Insight{
		{Kind: coach.Alert, Title: "Budget exceeded: Food", Message: "You spent a lot."},
		{Kind: coach.Win, Title: "Goal achieved: Trip", Message: "Nice."},
	}, 60)
	for _, want := range []string{"! Budget exceeded: Food", "You spent a lot.", "★ Goal achieved: Trip"} {
		if !strings.Contains(out, want) {
			t.Errorf("insights missing %q:\n%s", want, out)
		}
	}
}

func TestRenderReward(t *testing.T) {
	if got := RenderReward(15, "Logged a transaction"); !strings.Contains(got, "+15 XP Logged a transaction") {
		t.Errorf("reward = %q", got)
	}
}
