package game

import (
	"slices"
	"testing"

	"github.com/theirongolddev/moneymoves/internal/model"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func emptyLedger() *model.Ledger {
	l := &model.Ledger{}
	l.Normalize()
	return l
}

func TestGrantXPStreakMachine(t *testing.T) {
	l := emptyLedger()

	steps := []struct {
		day    string
		streak int
	}{
		{"2024-05-10", 1}, // first action
		{"2024-05-10", 1}, // same day
		{"2024-05-11", 2}, // next day
		{"2024-05-12", 3},
		{"2024-05-15", 1}, // gap
		{"2024-05-14", 1}, // clock went backwards
	}
	for i, s := range steps {
		NewEngine(model.FixedDate(s.day)).GrantXP(l, 1, "test")
		if l.Game.Streak != s.streak {
			t.Errorf("step %d (%s): streak = %d, want %d", i, s.day, l.Game.Streak, s.streak)
		}
		if l.Game.LastActionDate != s.day {
			t.Errorf("step %d: lastActionDate = %q, want %q", i, l.Game.LastActionDate, s.day)
		}
	}
	if !l.Game.HasBadge(Badge3Day) {
		t.Error("3-day badge should have been earned at streak 3")
	}
	if l.Game.HasBadge(Badge7Day) {
		t.Error("7-day badge should not be earned")
	}
}

func TestGrantXPMalformedLastDateResets(t *testing.T) {
	l := emptyLedger()
	l.Game.Streak = 5
	l.Game.LastActionDate = "yesterday"
	NewEngine(model.FixedDate("2024-05-10")).GrantXP(l, 1, "test")
	if l.Game.Streak != 1 {
		t.Errorf("streak = %d, want 1", l.Game.Streak)
	}
}

func TestGrantXPBadges(t *testing.T) {
	l := emptyLedger()
	e := NewEngine(model.FixedDate("2024-05-10"))

	r := e.GrantXP(l, 50, "Logged a transaction")
	if r.Amount != 50 || r.Reason != "Logged a transaction" {
		t.Errorf("reward = %+v", r)
	}
	if l.Game.XP != 50 {
		t.Fatalf("XP = %d, want 50", l.Game.XP)
	}
	if !slices.Equal(l.Game.Badges, []string{BadgeStarter}) {
		t.Fatalf("badges = %v, want [starter]", l.Game.Badges)
	}

	// One large grant crosses both remaining thresholds in ascending order.
	e.GrantXP(l, 300, "bulk")
	want := []string{BadgeStarter, BadgeConsistent, BadgeGrinder}
	if !slices.Equal(l.Game.Badges, want) {
		t.Errorf("badges = %v, want %v", l.Game.Badges, want)
	}
}

func TestBadgesAreNeverRevoked(t *testing.T) {
	l := emptyLedger()
	e := NewEngine(model.FixedDate("2024-05-10"))
	e.GrantXP(l, 60, "up")
	e.GrantXP(l, -40, "down")
	if l.Game.XP != 20 {
		t.Errorf("XP = %d, want 20", l.Game.XP)
	}
	if !l.Game.HasBadge(BadgeStarter) {
		t.Error("starter badge was revoked")
	}
}

func TestSevenDayStreak(t *testing.T) {
	l := emptyLedger()
	day := "2024-05-01"
	for range 7 {
		NewEngine(model.FixedDate(day)).GrantXP(l, 10, "daily")
		day = model.AddDays(day, 1)
	}
	if l.Game.Streak != 7 {
		t.Fatalf("streak = %d, want 7", l.Game.Streak)
	}
	if !l.Game.HasBadge(Badge3Day) || !l.Game.HasBadge(Badge7Day) {
		t.Errorf("badges = %v, want both streak badges", l.Game.Badges)
	}
	// XP badge (starter at 50) is unlocked before the 7-day badge on the same grant.
	if slices.Index(l.Game.Badges, BadgeStarter) > slices.Index(l.Game.Badges, Badge7Day) {
		t.Errorf("badge order = %v", l.Game.Badges)
	}
}

func TestCompleteChallengeIsIdempotent(t *testing.T) {
	l := emptyLedger()
	if !CompleteChallenge(l, "log3") {
		t.Fatal("first completion should report true")
	}
	if CompleteChallenge(l, "log3") {
		t.Error("second completion should be a no-op")
	}
	if CompleteChallenge(l, "addGoal") != true {
		t.Error("different challenge should complete")
	}
	if !slices.Equal(l.Game.CompletedChallengeIDs, []string{"log3", "addGoal"}) {
		t.Errorf("completed = %v", l.Game.CompletedChallengeIDs)
	}
	if !slices.Equal(l.Game.Badges, []string{BadgeChallenge}) {
		t.Errorf("badges = %v, want a single challenge badge", l.Game.Badges)
	}
	if l.Game.XP != 0 {
		t.Errorf("XP = %d, CompleteChallenge must not grant XP", l.Game.XP)
	}
}

func TestChallengePredicates(t *testing.T) {
	l := model.DefaultLedger(model.FixedDate("2024-05-10"))
	month := "2024-05"

	status := map[string]bool{}
	for _, s := range Status(l, month) {
		status[s.ID] = s.Passed
	}
	want := map[string]bool{
		"log3":       false, // two seeded transactions
		"setBudgets": true,
		"addGoal":    true,
		"underFood":  true, // 18.5 of 300
	}
	for id, w := range want {
		if status[id] != w {
			t.Errorf("%s passed = %v, want %v", id, status[id], w)
		}
	}

	l.Transactions = append(l.Transactions, model.Transaction{
		ID: "x", Type: model.Income, CategoryID: "savings", Amount: dec("10"), Date: "2024-05-20",
	})
	if c, _ := ChallengeByID("log3"); !c.Check(l, month) {
		t.Error("log3 should pass with 3 transactions of either type")
	}
	if c, _ := ChallengeByID("log3"); c.Check(l, "2024-06") {
		t.Error("log3 should not pass in an empty month")
	}
}

func TestUnderFoodBoundary(t *testing.T) {
	c, ok := ChallengeByID("underFood")
	if !ok {
		t.Fatal("underFood missing from catalog")
	}
	tests := []struct {
		name   string
		limit  string
		spent  string
		passed bool
	}{
		{"under", "100", "79.99", true},
		{"exactly 80%", "100", "80", false},
		{"over", "100", "120", false},
		{"no spending", "100", "0", true},
		{"zero limit", "0", "0", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &model.Ledger{
				Categories: []model.Category{{ID: "food", Name: "Food", Limit: dec(tt.limit)}},
				Transactions: []model.Transaction{
					{ID: "1", Type: model.Expense, CategoryID: "food", Amount: dec(tt.spent), Date: "2024-05-02"},
				},
			}
			if got := c.Check(l, "2024-05"); got != tt.passed {
				t.Errorf("Check = %v, want %v", got, tt.passed)
			}
		})
	}

	if c.Check(&model.Ledger{}, "2024-05") {
		t.Error("missing food category should fail")
	}
}

func TestClaim(t *testing.T) {
	l := model.DefaultLedger(model.FixedDate("2024-05-10"))
	e := NewEngine(model.FixedDate("2024-05-10"))

	r, ok := e.Claim(l, "addGoal", "2024-05")
	if !ok {
		t.Fatal("addGoal claim should succeed")
	}
	if r.Amount != 30 || r.Reason != "Completed: Create a goal" {
		t.Errorf("reward = %+v", r)
	}
	if l.Game.XP != 30 || !l.Game.HasCompleted("addGoal") || !l.Game.HasBadge(BadgeChallenge) {
		t.Errorf("game = %+v", l.Game)
	}
	if l.Game.Streak != 1 || l.Game.LastActionDate != "2024-05-10" {
		t.Errorf("claim should advance the streak, got %+v", l.Game)
	}

	before := l.Clone()
	if _, ok := e.Claim(l, "addGoal", "2024-05"); ok {
		t.Error("second claim should be a no-op")
	}
	if _, ok := e.Claim(l, "log3", "2024-05"); ok {
		t.Error("claim with failing predicate should be a no-op")
	}
	if _, ok := e.Claim(l, "nope", "2024-05"); ok {
		t.Error("unknown challenge claim should be a no-op")
	}
	if l.Game.XP != before.Game.XP || len(l.Game.CompletedChallengeIDs) != len(before.Game.CompletedChallengeIDs) {
		t.Errorf("no-op claims changed state: %+v", l.Game)
	}
}

func TestStatusClaimable(t *testing.T) {
	l := model.DefaultLedger(model.FixedDate("2024-05-10"))
	CompleteChallenge(l, "addGoal")
	for _, s := range Status(l, "2024-05") {
		switch s.ID {
		case "addGoal":
			if !s.Done || s.Claimable() {
				t.Errorf("addGoal = %+v, want done and not claimable", s)
			}
		case "setBudgets":
			if !s.Claimable() {
				t.Errorf("setBudgets = %+v, want claimable", s)
			}
		}
	}
}

func TestBadgeLabel(t *testing.T) {
	if got := BadgeLabel(BadgeGrinder); got != "Grinder (300 XP)" {
		t.Errorf("BadgeLabel(grinder) = %q", got)
	}
	if got := BadgeLabel("mystery"); got != "mystery" {
		t.Errorf("unknown badge label = %q, want id", got)
	}
}

func TestLevel(t *testing.T) {
	for xp, want := range map[int]int{0: 1, 99: 1, 100: 2, 350: 4, -5: 1} {
		if got := Level(xp); got != want {
			t.Errorf("Level(%d) = %d, want %d", xp, got, want)
		}
	}
}
