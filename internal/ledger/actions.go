package ledger

import (
	"strings"

	"github.com/theirongolddev/moneymoves/internal/model"

	"github.com/shopspring/decimal"
)

// XP rewards for user actions.
const (
	XPLogTransaction = 15
	XPLogIncome      = 5
	XPQuickAdd       = 10
	XPAddCategory    = 20
	XPCreateGoal     = 25
	XPUpdateGoal     = 10
)

// Spending intent recorded alongside a logged transaction's note.
const (
	Need = "need"
	Want = "want"
)

// TaggedNote appends the need/want tag to a note: "Lunch (need)", or just
// "(want)" for an empty note.
func TaggedNote(note, intent string) string {
	note = strings.TrimSpace(note)
	if note == "" {
		return "(" + intent + ")"
	}
	return note + " (" + intent + ")"
}

// LogTransaction records a transaction and rewards it. Income earns a
// second, smaller grant.
func LogTransaction(tx model.Transaction) []Mutation {
	muts := []Mutation{
		AddTransaction{Tx: tx},
		GrantXP{Amount: XPLogTransaction, Reason: "Logged a transaction"},
	}
	if tx.Type == model.Income {
		muts = append(muts, GrantXP{Amount: XPLogIncome, Reason: "Logged income"})
	}
	return muts
}

// QuickAdd records a preset transaction dated today.
func QuickAdd(p Preset) []Mutation {
	return []Mutation{
		AddTransaction{Tx: p.Transaction()},
		GrantXP{Amount: XPQuickAdd, Reason: "Quick add"},
	}
}

// NewCategory adds a category with no limit.
func NewCategory(name string) []Mutation {
	return []Mutation{
		AddCategory{Name: name},
		GrantXP{Amount: XPAddCategory, Reason: "Added a category"},
	}
}

// NewGoal creates a savings goal.
func NewGoal(g model.Goal) []Mutation {
	return []Mutation{
		AddGoal{Goal: g},
		GrantXP{Amount: XPCreateGoal, Reason: "Created a goal"},
	}
}

// AdjustGoal moves money into (or out of) a goal.
func AdjustGoal(goalID string, delta decimal.Decimal) []Mutation {
	return []Mutation{
		UpdateGoalSaved{GoalID: goalID, Delta: delta},
		GrantXP{Amount: XPUpdateGoal, Reason: "Updated goal progress"},
	}
}

// SetLimit changes a category budget. Not rewarded.
func SetLimit(categoryID string, limit decimal.Decimal) []Mutation {
	return []Mutation{SetCategoryLimit{CategoryID: categoryID, Limit: limit}}
}

// DeleteGoal removes a goal. Not rewarded.
func DeleteGoal(goalID string) []Mutation {
	return []Mutation{RemoveGoal{GoalID: goalID}}
}

// Preset is a one-tap transaction template.
type Preset struct {
	Key        string
	Label      string
	Type       model.TxType
	CategoryID string
	Amount     decimal.Decimal
	Note       string
}

// Transaction instantiates the preset. Id and date are filled in on apply.
func (p Preset) Transaction() model.Transaction {
	return model.Transaction{
		Type:       p.Type,
		CategoryID: p.CategoryID,
		Amount:     p.Amount,
		Note:       p.Note,
	}
}

// QuickPresets are the built-in quick-add templates.
var QuickPresets = []Preset{
	{Key: "coffee", Label: "$5 Coffee", Type: model.Expense, CategoryID: "food", Amount: decimal.NewFromInt(5), Note: "Coffee"},
	{Key: "gas", Label: "$20 Gas", Type: model.Expense, CategoryID: "transport", Amount: decimal.NewFromInt(20), Note: "Gas"},
	{Key: "groceries", Label: "$50 Groceries", Type: model.Expense, CategoryID: "food", Amount: decimal.NewFromInt(50), Note: "Groceries"},
	{Key: "income", Label: "+$100 Income", Type: model.Income, CategoryID: "savings", Amount: decimal.NewFromInt(100), Note: "Income"},
}

// PresetByKey looks up a quick-add preset.
func PresetByKey(key string) (Preset, bool) {
	for _, p := range QuickPresets {
		if strings.EqualFold(p.Key, key) {
			return p, true
		}
	}
	return Preset{}, false
}
