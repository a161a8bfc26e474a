// Package pipeline reduces ledger transactions into monthly aggregates.
package pipeline

import (
	"sort"
	"strings"

	"github.com/theirongolddev/moneymoves/internal/model"

	"github.com/shopspring/decimal"
)

// MonthSummary computes income, expense and per-category totals for the
// transactions dated in monthKey (YYYY-MM). Malformed dates never match.
func MonthSummary(l *model.Ledger, monthKey string) model.MonthSummary {
	tx := FilterByMonth(l.Transactions, monthKey)

	s := model.MonthSummary{
		MonthKey:        monthKey,
		Income:          decimal.Zero,
		Expenses:        decimal.Zero,
		Transactions:    tx,
		SpentByCategory: make(map[string]decimal.Decimal),
	}

	for _, t := range tx {
		switch t.Type {
		case model.Income:
			s.Income = s.Income.Add(t.Amount)
		case model.Expense:
			s.Expenses = s.Expenses.Add(t.Amount)
			s.SpentByCategory[t.CategoryID] = s.SpentByCategory[t.CategoryID].Add(t.Amount)
		}
	}

	s.Net = s.Income.Sub(s.Expenses)
	return s
}

// CategoryProgress returns spend against the category's limit for the month.
// Unknown categories have a zero limit and therefore a zero ratio.
func CategoryProgress(l *model.Ledger, categoryID, monthKey string) model.CategoryProgress {
	s := MonthSummary(l, monthKey)
	spent := s.SpentByCategory[categoryID]

	limit := decimal.Zero
	if c, ok := l.Category(categoryID); ok {
		limit = c.Limit
	}

	return model.CategoryProgress{
		Spent: spent,
		Limit: limit,
		Ratio: ratio(spent, limit, true),
	}
}

// CategoryBreakdown returns one row per category in ledger order.
func CategoryBreakdown(l *model.Ledger, monthKey string) []model.CategoryStats {
	s := MonthSummary(l, monthKey)

	counts := make(map[string]int)
	for _, t := range s.Transactions {
		if t.Type == model.Expense {
			counts[t.CategoryID]++
		}
	}

	rows := make([]model.CategoryStats, 0, len(l.Categories))
	for _, c := range l.Categories {
		spent := s.SpentByCategory[c.ID]
		remaining := c.Limit.Sub(spent)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}
		rows = append(rows, model.CategoryStats{
			Category:  c,
			Spent:     spent,
			Remaining: remaining,
			Ratio:     ratio(spent, c.Limit, true),
			RawRatio:  ratio(spent, c.Limit, false),
			Count:     counts[c.ID],
		})
	}
	return rows
}

// DailySpend returns one bucket per calendar day of the month, oldest first.
// Days without activity are present with zero totals.
func DailySpend(l *model.Ledger, monthKey string) []model.DailySpend {
	start, ok := model.ParseMonth(monthKey)
	if !ok {
		return nil
	}

	n := model.DaysInMonth(start)
	days := make([]model.DailySpend, n)
	for i := range days {
		days[i] = model.DailySpend{
			Date:     start.AddDate(0, 0, i),
			Expenses: decimal.Zero,
			Income:   decimal.Zero,
		}
	}

	for _, t := range FilterByMonth(l.Transactions, monthKey) {
		d, ok := model.ParseDate(t.Date)
		if !ok {
			continue
		}
		ds := &days[d.Day()-1]
		ds.Count++
		switch t.Type {
		case model.Income:
			ds.Income = ds.Income.Add(t.Amount)
		case model.Expense:
			ds.Expenses = ds.Expenses.Add(t.Amount)
		}
	}
	return days
}

// FilterByMonth returns the transactions whose date starts with monthKey,
// preserving ledger order.
func FilterByMonth(txs []model.Transaction, monthKey string) []model.Transaction {
	var result []model.Transaction
	for _, t := range txs {
		if model.MonthKey(t.Date) == monthKey {
			result = append(result, t)
		}
	}
	return result
}

// FilterByCategory returns transactions booked against the category.
func FilterByCategory(txs []model.Transaction, categoryID string) []model.Transaction {
	if categoryID == "" {
		return txs
	}
	var result []model.Transaction
	for _, t := range txs {
		if strings.EqualFold(t.CategoryID, categoryID) {
			result = append(result, t)
		}
	}
	return result
}

// TopCategories returns the categories with expenses in the month sorted by
// spend, largest first.
func TopCategories(l *model.Ledger, monthKey string) []model.CategoryStats {
	rows := CategoryBreakdown(l, monthKey)
	n := 0
	for _, r := range rows {
		if r.Spent.IsPositive() {
			rows[n] = r
			n++
		}
	}
	rows = rows[:n]
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Spent.GreaterThan(rows[j].Spent)
	})
	return rows
}

func ratio(spent, limit decimal.Decimal, clamp bool) float64 {
	if !limit.IsPositive() {
		return 0
	}
	r := spent.Div(limit).InexactFloat64()
	if !clamp {
		return r
	}
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}
