package components

import (
	"strings"
	"testing"

	"github.com/theirongolddev/moneymoves/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestLayoutRow(t *testing.T) {
	tests := []struct {
		total, n int
		want     []int
	}{
		{10, 3, []int{4, 3, 3}},
		{12, 4, []int{3, 3, 3, 3}},
		{5, 0, nil},
	}
	for _, tt := range tests {
		got := LayoutRow(tt.total, tt.n)
		if len(got) != len(tt.want) {
			t.Fatalf("LayoutRow(%d, %d) = %v, want %v", tt.total, tt.n, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("LayoutRow(%d, %d) = %v, want %v", tt.total, tt.n, got, tt.want)
				break
			}
		}
	}
}

func TestCardRowBackgroundFill(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "Content", 22)
	tallCard := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)

	shortLines := len(strings.Split(shortCard, "\n"))
	tallLines := len(strings.Split(tallCard, "\n"))
	if shortLines >= tallLines {
		t.Fatal("short card should be shorter than tall card")
	}

	lines := strings.Split(CardRow([]string{tallCard, shortCard}), "\n")
	if len(lines) != tallLines {
		t.Errorf("joined height = %d, want %d", len(lines), tallLines)
	}
	for i := shortLines; i < len(lines); i++ {
		if !strings.Contains(lines[i], "\x1b[") {
			t.Errorf("line %d has no styling in the padded area", i)
		}
	}
}

func TestMetricCardRowWidth(t *testing.T) {
	row := MetricCardRow([]Metric{
		{Label: "Income", Value: "$3,200.00"},
		{Label: "Expenses", Value: "$1,043.50", Delta: "12 txns"},
		{Label: "Net", Value: "$2,156.50", Color: theme.Active.Green},
	}, 90)
	for i, ln := range strings.Split(row, "\n") {
		if w := lipgloss.Width(ln); w != 90 {
			t.Errorf("line %d width = %d, want 90", i, w)
		}
	}
	if !strings.Contains(row, "$1,043.50") {
		t.Error("row missing expense value")
	}
}

func TestTabIdxByKey(t *testing.T) {
	if got := TabIdxByKey('g'); got != 2 {
		t.Errorf("TabIdxByKey('g') = %d, want 2", got)
	}
	if got := TabIdxByKey('m'); got != 3 {
		t.Errorf("TabIdxByKey('m') = %d, want 3", got)
	}
	if got := TabIdxByKey('z'); got != -1 {
		t.Errorf("TabIdxByKey('z') = %d, want -1", got)
	}
}

func TestTabVisualWidth(t *testing.T) {
	for _, tab := range Tabs {
		// one column of padding each side, active or not
		if got := TabVisualWidth(tab, true); got != len(tab.Name)+2 {
			t.Errorf("%s active width = %d, want %d", tab.Name, got, len(tab.Name)+2)
		}
		if got := TabVisualWidth(tab, false); got != len(tab.Name)+2 {
			t.Errorf("%s inactive width = %d, want %d", tab.Name, got, len(tab.Name)+2)
		}
	}
}

func TestBudgetBarWidth(t *testing.T) {
	for _, ratio := range []float64{0, 0.5, 0.85, 1.4} {
		bar := BudgetBar(ratio, 20)
		// bar + space + "%3.0f%%"
		if w := lipgloss.Width(bar); w < 25 {
			t.Errorf("ratio %v: width = %d, want >= 25", ratio, w)
		}
	}
	if !strings.Contains(BudgetBar(1.4, 20), "140%") {
		t.Error("over-budget bar should show the raw percentage")
	}
	if !strings.Contains(GoalBar(1.4, 20), "100%") {
		t.Error("goal bar should cap at 100%")
	}
}

func TestSparkline(t *testing.T) {
	got := Sparkline([]float64{0, 5, 10}, theme.Active.Accent)
	if !strings.Contains(got, "▁▄█") {
		t.Errorf("sparkline = %q", got)
	}
	if Sparkline(nil, theme.Active.Accent) != "" {
		t.Error("empty series should render nothing")
	}
	if got := Tail([]float64{1, 2, 3, 4}, 2); len(got) != 2 || got[0] != 3 {
		t.Errorf("Tail = %v", got)
	}
}

func TestStatusBarWidth(t *testing.T) {
	bar := RenderStatusBar(80, "2024-05  Lv 2", "")
	if w := lipgloss.Width(bar); w != 80 {
		t.Errorf("width = %d, want 80", w)
	}
	if !strings.Contains(RenderStatusBar(80, "", "+15 XP Logged"), "+15 XP Logged") {
		t.Error("flash should replace hints")
	}
}
