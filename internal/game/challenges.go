package game

import (
	"github.com/theirongolddev/moneymoves/internal/model"
	"github.com/theirongolddev/moneymoves/internal/pipeline"
)

// Predicate reports whether a challenge's condition holds for a month.
type Predicate func(l *model.Ledger, monthKey string) bool

// Challenge is a claimable condition worth a fixed XP reward.
type Challenge struct {
	ID       string
	Title    string
	Desc     string
	XPReward int
	Check    Predicate
}

// Challenges is the built-in catalog, in display order.
var Challenges = []Challenge{
	{
		ID:       "log3",
		Title:    "Log 3 transactions",
		Desc:     "Track any 3 transactions this month.",
		XPReward: 40,
		Check: func(l *model.Ledger, monthKey string) bool {
			return len(pipeline.FilterByMonth(l.Transactions, monthKey)) >= 3
		},
	},
	{
		ID:       "setBudgets",
		Title:    "Set 5 budgets",
		Desc:     "Have 5 categories with a monthly limit > 0.",
		XPReward: 30,
		Check: func(l *model.Ledger, _ string) bool {
			n := 0
			for _, c := range l.Categories {
				if c.Limit.IsPositive() {
					n++
				}
			}
			return n >= 5
		},
	},
	{
		ID:       "addGoal",
		Title:    "Create a goal",
		Desc:     "Add at least 1 savings goal.",
		XPReward: 30,
		Check: func(l *model.Ledger, _ string) bool {
			return len(l.Goals) >= 1
		},
	},
	{
		ID:       "underFood",
		Title:    "Keep Food under 80%",
		Desc:     "Food spending stays under 80% of its budget this month.",
		XPReward: 60,
		Check: func(l *model.Ledger, monthKey string) bool {
			food, ok := l.Category("food")
			if !ok || !food.Limit.IsPositive() {
				return false
			}
			spent := pipeline.MonthSummary(l, monthKey).SpentByCategory["food"]
			return spent.Div(food.Limit).InexactFloat64() < 0.8
		},
	},
}

// ChallengeByID looks up a catalog entry.
func ChallengeByID(id string) (Challenge, bool) {
	for _, c := range Challenges {
		if c.ID == id {
			return c, true
		}
	}
	return Challenge{}, false
}

// ChallengeStatus is a catalog entry evaluated against a ledger.
type ChallengeStatus struct {
	Challenge
	Done   bool // already claimed
	Passed bool // predicate currently holds
}

// Claimable reports whether the challenge can be claimed right now.
func (s ChallengeStatus) Claimable() bool {
	return s.Passed && !s.Done
}

// Status evaluates every challenge for the month.
func Status(l *model.Ledger, monthKey string) []ChallengeStatus {
	out := make([]ChallengeStatus, 0, len(Challenges))
	for _, c := range Challenges {
		out = append(out, ChallengeStatus{
			Challenge: c,
			Done:      l.Game.HasCompleted(c.ID),
			Passed:    c.Check(l, monthKey),
		})
	}
	return out
}

// Claim runs the claim protocol: the challenge must exist, must not be
// completed yet and its predicate must hold against l. On success it is
// marked completed and its XP is granted. Anything else is a silent no-op.
func (e *Engine) Claim(l *model.Ledger, challengeID, monthKey string) (Reward, bool) {
	c, ok := ChallengeByID(challengeID)
	if !ok {
		return Reward{}, false
	}
	if l.Game.HasCompleted(c.ID) || !c.Check(l, monthKey) {
		return Reward{}, false
	}

	CompleteChallenge(l, c.ID)
	return e.GrantXP(l, c.XPReward, "Completed: "+c.Title), true
}
