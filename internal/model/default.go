package model

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultLedger returns the seeded ledger used on first run and whenever the
// stored snapshot is missing or unreadable.
func DefaultLedger(c Clock) *Ledger {
	today := Today(c)
	return &Ledger{
		Categories: []Category{
			{ID: "food", Name: "Food", Limit: decimal.NewFromInt(300)},
			{ID: "fun", Name: "Fun", Limit: decimal.NewFromInt(120)},
			{ID: "bills", Name: "Bills", Limit: decimal.NewFromInt(800)},
			{ID: "transport", Name: "Transport", Limit: decimal.NewFromInt(150)},
			{ID: "savings", Name: "Savings", Limit: decimal.NewFromInt(200)},
		},
		Transactions: []Transaction{
			{ID: NewID(), Type: Expense, CategoryID: "food", Amount: decimal.RequireFromString("18.5"), Date: today, Note: "Lunch"},
			{ID: NewID(), Type: Expense, CategoryID: "fun", Amount: decimal.NewFromInt(25), Date: today, Note: "Movie"},
		},
		Goals: []Goal{
			{
				ID:         NewID(),
				Name:       "Emergency Fund",
				Target:     decimal.NewFromInt(1000),
				Saved:      decimal.NewFromInt(200),
				TargetDate: AddDays(today, 90),
			},
		},
		Game: GameState{
			Badges:                []string{},
			CompletedChallengeIDs: []string{},
		},
	}
}

// NewID returns a fresh random identifier for transactions and goals.
func NewID() string {
	return uuid.NewString()
}

// CategoryID derives a category id from its display name: lowercase, every
// run of characters outside [a-z0-9] collapsed to a single dash.
func CategoryID(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.Trim(b.String(), "-")
}
