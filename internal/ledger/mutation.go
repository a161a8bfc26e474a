// Package ledger applies mutations to the ledger snapshot copy-on-write and
// persists the result through a storage port.
package ledger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/moneymoves/internal/game"
	"github.com/theirongolddev/moneymoves/internal/model"

	"github.com/shopspring/decimal"
)

// Validation errors returned by Apply.
var (
	ErrInvalidAmount     = errors.New("amount must be greater than zero")
	ErrInvalidType       = errors.New("type must be income or expense")
	ErrInvalidDate       = errors.New("date must be YYYY-MM-DD")
	ErrEmptyName         = errors.New("name must not be empty")
	ErrDuplicateCategory = errors.New("category already exists")
)

// defaultGoalHorizon is how far out a goal without a target date is due.
const defaultGoalHorizon = 60

// env is what a mutation needs beyond the ledger itself.
type env struct {
	engine *game.Engine
	today  string
}

// Mutation describes one change to the ledger. The set of variants is
// closed; every variant lives in this package.
type Mutation interface {
	apply(l *model.Ledger, e env) (*game.Reward, error)
	String() string
}

// AddTransaction inserts a transaction at the head of the list.
// An empty ID is replaced by a fresh one and an empty Date by today.
type AddTransaction struct {
	Tx model.Transaction
}

func (m AddTransaction) apply(l *model.Ledger, e env) (*game.Reward, error) {
	tx := m.Tx
	if !tx.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAmount, tx.Amount)
	}
	if !tx.Type.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidType, tx.Type)
	}
	if tx.Date == "" {
		tx.Date = e.today
	}
	if _, ok := model.ParseDate(tx.Date); !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, tx.Date)
	}
	if tx.ID == "" {
		tx.ID = model.NewID()
	}
	tx.Note = strings.TrimSpace(tx.Note)

	l.Transactions = append([]model.Transaction{tx}, l.Transactions...)
	return nil, nil
}

func (m AddTransaction) String() string {
	return fmt.Sprintf("add %s %s to %s on %s", m.Tx.Type, m.Tx.Amount, m.Tx.CategoryID, m.Tx.Date)
}

// RemoveTransaction deletes a transaction by id. Unknown ids are ignored.
type RemoveTransaction struct {
	ID string
}

func (m RemoveTransaction) apply(l *model.Ledger, _ env) (*game.Reward, error) {
	for i, t := range l.Transactions {
		if t.ID == m.ID {
			l.Transactions = append(l.Transactions[:i:i], l.Transactions[i+1:]...)
			break
		}
	}
	return nil, nil
}

func (m RemoveTransaction) String() string { return "remove transaction " + m.ID }

// SetCategoryLimit sets a category's monthly limit. Negative limits are
// stored as zero; unknown categories are ignored.
type SetCategoryLimit struct {
	CategoryID string
	Limit      decimal.Decimal
}

func (m SetCategoryLimit) apply(l *model.Ledger, _ env) (*game.Reward, error) {
	c, ok := l.Category(m.CategoryID)
	if !ok {
		return nil, nil
	}
	c.Limit = decimal.Max(m.Limit, decimal.Zero)
	return nil, nil
}

func (m SetCategoryLimit) String() string {
	return fmt.Sprintf("set %s limit to %s", m.CategoryID, m.Limit)
}

// AddCategory appends a category. The id is derived from the name when
// empty.
type AddCategory struct {
	ID    string
	Name  string
	Limit decimal.Decimal
}

func (m AddCategory) apply(l *model.Ledger, _ env) (*game.Reward, error) {
	name := strings.TrimSpace(m.Name)
	if name == "" {
		return nil, ErrEmptyName
	}
	id := m.ID
	if id == "" {
		id = model.CategoryID(name)
	}
	if id == "" {
		return nil, fmt.Errorf("%w: %q has no usable characters", ErrEmptyName, name)
	}
	if _, ok := l.Category(id); ok {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateCategory, id)
	}
	l.Categories = append(l.Categories, model.Category{
		ID:    id,
		Name:  name,
		Limit: decimal.Max(m.Limit, decimal.Zero),
	})
	return nil, nil
}

func (m AddCategory) String() string { return "add category " + m.Name }

// AddGoal appends a savings goal.
type AddGoal struct {
	Goal model.Goal
}

func (m AddGoal) apply(l *model.Ledger, e env) (*game.Reward, error) {
	g := m.Goal
	g.Name = strings.TrimSpace(g.Name)
	if g.Name == "" {
		return nil, ErrEmptyName
	}
	if !g.Target.IsPositive() {
		return nil, fmt.Errorf("%w: target %s", ErrInvalidAmount, g.Target)
	}
	g.Saved = decimal.Max(g.Saved, decimal.Zero)
	if g.TargetDate == "" {
		g.TargetDate = model.AddDays(e.today, defaultGoalHorizon)
	}
	if _, ok := model.ParseDate(g.TargetDate); !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, g.TargetDate)
	}
	if g.ID == "" {
		g.ID = model.NewID()
	}
	l.Goals = append(l.Goals, g)
	return nil, nil
}

func (m AddGoal) String() string { return "add goal " + m.Goal.Name }

// UpdateGoalSaved adjusts a goal's saved amount by Delta, flooring at zero.
// Unknown goals are ignored.
type UpdateGoalSaved struct {
	GoalID string
	Delta  decimal.Decimal
}

func (m UpdateGoalSaved) apply(l *model.Ledger, _ env) (*game.Reward, error) {
	g, ok := l.Goal(m.GoalID)
	if !ok {
		return nil, nil
	}
	g.Saved = decimal.Max(g.Saved.Add(m.Delta), decimal.Zero)
	return nil, nil
}

func (m UpdateGoalSaved) String() string {
	return fmt.Sprintf("goal %s saved by %s", m.GoalID, m.Delta)
}

// RemoveGoal deletes a goal by id. Unknown ids are ignored.
type RemoveGoal struct {
	GoalID string
}

func (m RemoveGoal) apply(l *model.Ledger, _ env) (*game.Reward, error) {
	for i, g := range l.Goals {
		if g.ID == m.GoalID {
			l.Goals = append(l.Goals[:i:i], l.Goals[i+1:]...)
			break
		}
	}
	return nil, nil
}

func (m RemoveGoal) String() string { return "remove goal " + m.GoalID }

// GrantXP awards experience through the game engine.
type GrantXP struct {
	Amount int
	Reason string
}

func (m GrantXP) apply(l *model.Ledger, e env) (*game.Reward, error) {
	r := e.engine.GrantXP(l, m.Amount, m.Reason)
	return &r, nil
}

func (m GrantXP) String() string { return fmt.Sprintf("grant %d xp: %s", m.Amount, m.Reason) }

// CompleteChallenge marks a challenge completed without checking it.
// Use Book.Claim for the checked protocol.
type CompleteChallenge struct {
	ChallengeID string
}

func (m CompleteChallenge) apply(l *model.Ledger, _ env) (*game.Reward, error) {
	game.CompleteChallenge(l, m.ChallengeID)
	return nil, nil
}

func (m CompleteChallenge) String() string { return "complete challenge " + m.ChallengeID }
