// Package coach turns monthly aggregates into prioritized, human-readable
// budgeting insights.
package coach

import (
	"fmt"
	"math"

	"github.com/theirongolddev/moneymoves/internal/model"
	"github.com/theirongolddev/moneymoves/internal/pipeline"

	"github.com/shopspring/decimal"
)

// Kind classifies an insight by severity.
type Kind string

const (
	Tip     Kind = "tip"
	Warning Kind = "warning"
	Alert   Kind = "alert"
	Win     Kind = "win"
)

// MaxInsights caps the number of insights returned.
const MaxInsights = 6

const (
	watchlistRatio = 0.8
	exceededRatio  = 1.0
)

// Insight is one coaching message.
type Insight struct {
	Kind    Kind   `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Formatter renders an amount already rounded to two decimal places.
type Formatter func(decimal.Decimal) string

// PlainFormatter renders amounts as "$1234.50".
func PlainFormatter(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}

// Coach evaluates the insight rules. The zero value uses the system clock
// and PlainFormatter.
type Coach struct {
	Clock  model.Clock
	Format Formatter
}

// New returns a Coach using the given clock and formatter.
func New(clock model.Clock, format Formatter) *Coach {
	return &Coach{Clock: clock, Format: format}
}

func (c *Coach) clock() model.Clock {
	if c == nil || c.Clock == nil {
		return model.SystemClock{}
	}
	return c.Clock
}

func (c *Coach) money(d decimal.Decimal) string {
	d = d.Round(2)
	if c == nil || c.Format == nil {
		return PlainFormatter(d)
	}
	return c.Format(d)
}

// Insights evaluates every rule for the month in a fixed order: category
// overspend (ledger order), net cashflow, goal pacing (ledger order), and a
// fallback nudge when nothing else fired. At most MaxInsights are returned.
func (c *Coach) Insights(l *model.Ledger, monthKey string) []Insight {
	s := pipeline.MonthSummary(l, monthKey)
	today := model.Today(c.clock())

	var out []Insight
	out = append(out, c.categoryRules(l, s, monthKey, today)...)
	out = append(out, c.cashflowRule(s)...)
	out = append(out, c.goalRules(l, today)...)

	if len(out) == 0 {
		out = append(out, Insight{
			Kind:    Tip,
			Title:   "Today's Money Move",
			Message: "Log one expense today. Consistency beats perfection: the data is what teaches you.",
		})
	}

	if len(out) > MaxInsights {
		out = out[:MaxInsights]
	}
	return out
}

func (c *Coach) categoryRules(l *model.Ledger, s model.MonthSummary, monthKey, today string) []Insight {
	var out []Insight
	for _, cat := range l.Categories {
		if !cat.Limit.IsPositive() {
			continue
		}
		spent := s.SpentByCategory[cat.ID]
		p := spent.Div(cat.Limit).InexactFloat64()

		switch {
		case p >= exceededRatio:
			out = append(out, Insight{
				Kind:  Alert,
				Title: "Budget exceeded: " + cat.Name,
				Message: fmt.Sprintf("You spent %s vs a %s limit. Next move: pause %s spending and plan 1 swap (cheaper option or move to next month).",
					c.money(spent), c.money(cat.Limit), cat.Name),
			})
		case p >= watchlistRatio:
			out = append(out, Insight{
				Kind:  Warning,
				Title: "Watchlist: " + cat.Name,
				Message: fmt.Sprintf("You used %d%% of your %s budget (%s of %s). Next move: %s",
					int(math.Round(p*100)), cat.Name, c.money(spent), c.money(cat.Limit),
					c.weeklyCap(cat.Limit.Sub(spent), monthKey, today)),
			})
		}
	}
	return out
}

// weeklyCap suggests how much of the remaining budget can be spent per week
// for the rest of the month.
func (c *Coach) weeklyCap(remaining decimal.Decimal, monthKey, today string) string {
	const generic = "set a weekly cap for the rest of the month."

	daysLeft := daysLeftInMonth(monthKey, today)
	if daysLeft <= 0 {
		return generic
	}
	weeks := int64(math.Ceil(float64(daysLeft) / 7))
	perWeek := remaining.Div(decimal.NewFromInt(weeks))
	return fmt.Sprintf("cap it at about %s/week for the rest of the month.", c.money(perWeek))
}

// daysLeftInMonth counts today as a remaining day. Future months count in
// full; past or malformed months have none left.
func daysLeftInMonth(monthKey, today string) int {
	start, ok := model.ParseMonth(monthKey)
	if !ok {
		return 0
	}
	total := model.DaysInMonth(start)
	switch current := model.MonthKey(today); {
	case monthKey > current:
		return total
	case monthKey < current:
		return 0
	}
	d, ok := model.ParseDate(today)
	if !ok {
		return 0
	}
	return total - d.Day() + 1
}

func (c *Coach) cashflowRule(s model.MonthSummary) []Insight {
	if !s.Income.IsPositive() || !s.Net.IsNegative() {
		return nil
	}
	return []Insight{{
		Kind:  Warning,
		Title: "You're spending more than you earn",
		Message: fmt.Sprintf("This month you're at %s net. Next move: pick 1 category to cut by 10%% and re-check in 7 days.",
			c.money(s.Net)),
	}}
}

func (c *Coach) goalRules(l *model.Ledger, today string) []Insight {
	var out []Insight
	for _, g := range l.Goals {
		remaining := g.Remaining()
		if !remaining.IsPositive() {
			out = append(out, Insight{
				Kind:    Win,
				Title:   "Goal achieved: " + g.Name,
				Message: fmt.Sprintf("You hit %s. Next move: lock the habit by setting a new goal or raising this one.", c.money(g.Target)),
			})
			continue
		}

		days, ok := model.DaysBetween(today, g.TargetDate)
		if !ok || days <= 0 {
			// Overdue goals get no insight.
			continue
		}

		perWeek := remaining.Div(decimal.NewFromInt(int64(days))).Mul(decimal.NewFromInt(7))
		out = append(out, Insight{
			Kind:  Tip,
			Title: "Goal pacing: " + g.Name,
			Message: fmt.Sprintf("You have %s left with %d days to go. Next move: aim for ~%s/week.",
				c.money(remaining), days, c.money(perWeek)),
		})
	}
	return out
}
