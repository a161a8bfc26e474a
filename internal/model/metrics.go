package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthSummary holds the totals for one calendar month.
type MonthSummary struct {
	MonthKey     string
	Income       decimal.Decimal
	Expenses     decimal.Decimal
	Net          decimal.Decimal
	Transactions []Transaction

	// SpentByCategory only has entries for categories with expenses in the month.
	SpentByCategory map[string]decimal.Decimal
}

// CategoryProgress is spend against a category limit for one month.
type CategoryProgress struct {
	Spent decimal.Decimal
	Limit decimal.Decimal
	Ratio float64 // clamped to [0, 1]; 0 when no limit is set
}

// CategoryStats is one row of the per-category breakdown.
type CategoryStats struct {
	Category  Category
	Spent     decimal.Decimal
	Remaining decimal.Decimal // limit - spent, never negative
	Ratio     float64
	RawRatio  float64 // spent / limit without clamping
	Count     int
}

// DailySpend holds expense totals for a single calendar day.
type DailySpend struct {
	Date     time.Time
	Expenses decimal.Decimal
	Income   decimal.Decimal
	Count    int
}
