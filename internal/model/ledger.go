// Package model defines the ledger aggregate and its value types.
package model

import (
	"slices"

	"github.com/shopspring/decimal"
)

func init() {
	// Snapshots and exports carry amounts as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// TxType distinguishes money coming in from money going out.
type TxType string

const (
	Income  TxType = "income"
	Expense TxType = "expense"
)

// Valid reports whether t is one of the known transaction types.
func (t TxType) Valid() bool {
	return t == Income || t == Expense
}

// Category is a spending bucket with an optional monthly limit.
// A zero limit means no budget is enforced.
type Category struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Limit decimal.Decimal `json:"limit"`
}

// Transaction is a single income or expense entry.
type Transaction struct {
	ID         string          `json:"id"`
	Type       TxType          `json:"type"`
	CategoryID string          `json:"categoryId"`
	Amount     decimal.Decimal `json:"amount"`
	Date       string          `json:"date"` // YYYY-MM-DD
	Note       string          `json:"note,omitempty"`
}

// Goal is a savings target with a deadline.
type Goal struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Target     decimal.Decimal `json:"target"`
	Saved      decimal.Decimal `json:"saved"`
	TargetDate string          `json:"targetDate"` // YYYY-MM-DD
}

// Remaining returns max(0, target - saved).
func (g Goal) Remaining() decimal.Decimal {
	r := g.Target.Sub(g.Saved)
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}

// GameState holds the gamification counters. Badges and completed
// challenge ids are ordered sets: insertion order, no duplicates.
type GameState struct {
	XP                    int      `json:"xp"`
	Streak                int      `json:"streak"`
	LastActionDate        string   `json:"lastActionDate"` // empty until the first action
	Badges                []string `json:"badges"`
	CompletedChallengeIDs []string `json:"completedChallengeIds"`
}

// HasBadge reports whether the badge has been earned.
func (g *GameState) HasBadge(id string) bool {
	return slices.Contains(g.Badges, id)
}

// AddBadge appends the badge if absent and reports whether it was added.
func (g *GameState) AddBadge(id string) bool {
	if g.HasBadge(id) {
		return false
	}
	g.Badges = append(g.Badges, id)
	return true
}

// HasCompleted reports whether the challenge has been claimed.
func (g *GameState) HasCompleted(challengeID string) bool {
	return slices.Contains(g.CompletedChallengeIDs, challengeID)
}

// Ledger is the root aggregate persisted as a single snapshot.
type Ledger struct {
	Categories   []Category    `json:"categories"`
	Transactions []Transaction `json:"transactions"`
	Goals        []Goal        `json:"goals"`
	Game         GameState     `json:"game"`
}

// Clone returns a deep copy that shares no slices with l.
func (l *Ledger) Clone() *Ledger {
	if l == nil {
		return nil
	}
	return &Ledger{
		Categories:   slices.Clone(l.Categories),
		Transactions: slices.Clone(l.Transactions),
		Goals:        slices.Clone(l.Goals),
		Game: GameState{
			XP:                    l.Game.XP,
			Streak:                l.Game.Streak,
			LastActionDate:        l.Game.LastActionDate,
			Badges:                slices.Clone(l.Game.Badges),
			CompletedChallengeIDs: slices.Clone(l.Game.CompletedChallengeIDs),
		},
	}
}

// Normalize replaces nil collections with empty ones so snapshots written
// by older versions or hand-edited imports behave like empty data.
func (l *Ledger) Normalize() {
	if l.Categories == nil {
		l.Categories = []Category{}
	}
	if l.Transactions == nil {
		l.Transactions = []Transaction{}
	}
	if l.Goals == nil {
		l.Goals = []Goal{}
	}
	if l.Game.Badges == nil {
		l.Game.Badges = []string{}
	}
	if l.Game.CompletedChallengeIDs == nil {
		l.Game.CompletedChallengeIDs = []string{}
	}
	if l.Game.XP < 0 {
		l.Game.XP = 0
	}
	if l.Game.Streak < 0 {
		l.Game.Streak = 0
	}
}

// Category returns the category with the given id.
func (l *Ledger) Category(id string) (*Category, bool) {
	for i := range l.Categories {
		if l.Categories[i].ID == id {
			return &l.Categories[i], true
		}
	}
	return nil, false
}

// Goal returns the goal with the given id.
func (l *Ledger) Goal(id string) (*Goal, bool) {
	for i := range l.Goals {
		if l.Goals[i].ID == id {
			return &l.Goals[i], true
		}
	}
	return nil, false
}

// CategoryName returns the display name for a category id, falling back
// to the id itself for dangling references.
func (l *Ledger) CategoryName(id string) string {
	if c, ok := l.Category(id); ok {
		return c.Name
	}
	return id
}
