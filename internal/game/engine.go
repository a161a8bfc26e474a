// Package game implements the XP, streak, badge and challenge rules.
package game

import (
	"github.com/theirongolddev/moneymoves/internal/model"
)

// Badge ids.
const (
	BadgeStarter    = "starter"
	BadgeConsistent = "consistent"
	BadgeGrinder    = "grinder"
	Badge3Day       = "3day"
	Badge7Day       = "7day"
	BadgeChallenge  = "challenge"
)

type threshold struct {
	min   int
	badge string
}

// Evaluated in ascending order on every grant.
var (
	xpBadges = []threshold{
		{50, BadgeStarter},
		{150, BadgeConsistent},
		{300, BadgeGrinder},
	}
	streakBadges = []threshold{
		{3, Badge3Day},
		{7, Badge7Day},
	}
)

var badgeLabels = map[string]string{
	BadgeStarter:    "Starter (50 XP)",
	BadgeConsistent: "Consistent (150 XP)",
	BadgeGrinder:    "Grinder (300 XP)",
	Badge3Day:       "3-Day Streak",
	Badge7Day:       "7-Day Streak",
	BadgeChallenge:  "Challenge Completed",
}

// BadgeLabel returns the display label for a badge id.
func BadgeLabel(id string) string {
	if l, ok := badgeLabels[id]; ok {
		return l
	}
	return id
}

// Reward acknowledges an XP grant.
type Reward struct {
	Amount int
	Reason string
}

// Engine applies game rules against a clock.
type Engine struct {
	Clock model.Clock
}

// NewEngine returns an Engine reading "today" from clock.
func NewEngine(clock model.Clock) *Engine {
	return &Engine{Clock: clock}
}

func (e *Engine) today() string {
	if e == nil || e.Clock == nil {
		return model.Today(model.SystemClock{})
	}
	return model.Today(e.Clock)
}

// GrantXP adds amount to the ledger's XP, unlocks XP badges, advances the
// daily streak and unlocks streak badges. It mutates l.Game in place.
// The amount is not validated.
func (e *Engine) GrantXP(l *model.Ledger, amount int, reason string) Reward {
	g := &l.Game
	g.XP += amount

	for _, th := range xpBadges {
		if g.XP >= th.min {
			g.AddBadge(th.badge)
		}
	}

	today := e.today()
	g.Streak = nextStreak(g.Streak, g.LastActionDate, today)
	g.LastActionDate = today

	for _, th := range streakBadges {
		if g.Streak >= th.min {
			g.AddBadge(th.badge)
		}
	}

	return Reward{Amount: amount, Reason: reason}
}

// nextStreak returns the streak after an action on today given the previous
// action date: first action starts at 1, same day keeps it, the next day
// extends it, anything else (gaps, clock skew, bad dates) resets to 1.
func nextStreak(streak int, last, today string) int {
	if last == "" {
		return 1
	}
	diff, ok := model.DaysBetween(last, today)
	switch {
	case !ok:
		return 1
	case diff == 0:
		return streak
	case diff == 1:
		return streak + 1
	default:
		return 1
	}
}

// CompleteChallenge marks the challenge completed. The first completion
// also awards the challenge badge; repeats are no-ops. It neither checks the
// predicate nor grants XP.
func CompleteChallenge(l *model.Ledger, challengeID string) bool {
	g := &l.Game
	if g.HasCompleted(challengeID) {
		return false
	}
	g.CompletedChallengeIDs = append(g.CompletedChallengeIDs, challengeID)
	g.AddBadge(BadgeChallenge)
	return true
}

// Level is a coarse progression indicator derived from XP, shown in the
// dashboards. Every 100 XP is one level, starting at 1.
func Level(xp int) int {
	if xp < 0 {
		return 1
	}
	return xp/100 + 1
}
