package model

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestCloneSharesNothing(t *testing.T) {
	l := DefaultLedger(FixedDate("2024-05-10"))
	c := l.Clone()

	c.Categories[0].Limit = decimal.NewFromInt(1)
	c.Transactions = append(c.Transactions[:0], Transaction{ID: "x"})
	c.Goals[0].Name = "changed"
	c.Game.AddBadge("starter")

	if !l.Categories[0].Limit.Equal(decimal.NewFromInt(300)) {
		t.Errorf("original limit changed to %s", l.Categories[0].Limit)
	}
	if l.Transactions[0].ID == "x" {
		t.Error("original transactions share backing array with clone")
	}
	if l.Goals[0].Name != "Emergency Fund" {
		t.Errorf("original goal renamed to %q", l.Goals[0].Name)
	}
	if l.Game.HasBadge("starter") {
		t.Error("original badges share backing array with clone")
	}
}

func TestDefaultLedgerSeed(t *testing.T) {
	l := DefaultLedger(FixedDate("2024-05-10"))

	if len(l.Categories) != 5 {
		t.Fatalf("categories = %d, want 5", len(l.Categories))
	}
	if len(l.Transactions) != 2 {
		t.Fatalf("transactions = %d, want 2", len(l.Transactions))
	}
	for _, tx := range l.Transactions {
		if tx.Date != "2024-05-10" {
			t.Errorf("seed transaction date = %s, want today", tx.Date)
		}
	}
	if len(l.Goals) != 1 || l.Goals[0].TargetDate != "2024-08-08" {
		t.Fatalf("goal = %+v, want one goal due 2024-08-08", l.Goals)
	}
	if l.Game.XP != 0 || l.Game.Streak != 0 || l.Game.LastActionDate != "" {
		t.Errorf("game = %+v, want zero state", l.Game)
	}
}

func TestCategoryID(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Health", "health"},
		{"School Supplies", "school-supplies"},
		{"  Gifts & Cards!! ", "gifts-cards"},
		{"Rent 2024", "rent-2024"},
		{"***", ""},
	}
	for _, tt := range tests {
		if got := CategoryID(tt.name); got != tt.want {
			t.Errorf("CategoryID(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		from, to string
		want     int
		ok       bool
	}{
		{"2024-05-10", "2024-05-10", 0, true},
		{"2024-05-10", "2024-05-11", 1, true},
		{"2024-05-10", "2024-05-13", 3, true},
		{"2024-05-10", "2024-05-09", -1, true},
		{"2024-02-28", "2024-03-01", 2, true},
		{"nope", "2024-05-10", 0, false},
	}
	for _, tt := range tests {
		got, ok := DaysBetween(tt.from, tt.to)
		if got != tt.want || ok != tt.ok {
			t.Errorf("DaysBetween(%s, %s) = %d, %v; want %d, %v", tt.from, tt.to, got, ok, tt.want, tt.ok)
		}
	}
}

func TestMonthKey(t *testing.T) {
	if got := MonthKey("2024-05-10"); got != "2024-05" {
		t.Errorf("MonthKey = %q, want 2024-05", got)
	}
	if got := MonthKey("2024"); got != "2024" {
		t.Errorf("MonthKey(short) = %q, want input unchanged", got)
	}
}

func TestLedgerJSONWireFormat(t *testing.T) {
	l := &Ledger{
		Transactions: []Transaction{{ID: "t1", Type: Expense, CategoryID: "food", Amount: decimal.RequireFromString("18.5"), Date: "2024-05-10"}},
	}
	data, err := json.Marshal(l)
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	for _, want := range []string{`"categoryId":"food"`, `"amount":18.5`, `"completedChallengeIds"`} {
		if !strings.Contains(s, want) {
			t.Errorf("encoded ledger missing %s: %s", want, s)
		}
	}

	var back Ledger
	in := `{"categories":[{"id":"food","name":"Food","limit":"300"}],"goals":[{"id":"g","target":null}]}`
	if err := json.Unmarshal([]byte(in), &back); err != nil {
		t.Fatalf("decode: %v", err)
	}
	back.Normalize()
	if !back.Categories[0].Limit.Equal(decimal.NewFromInt(300)) {
		t.Errorf("string limit decoded as %s", back.Categories[0].Limit)
	}
	if !back.Goals[0].Target.IsZero() {
		t.Errorf("null target decoded as %s, want 0", back.Goals[0].Target)
	}
	if back.Transactions == nil || back.Game.Badges == nil {
		t.Error("Normalize left nil collections")
	}
}

func TestLenientNumbers(t *testing.T) {
	in := `{
		"categories":[{"id":"a","name":"A","limit":""},{"id":"b","name":"B","limit":" 12.5 "},{"id":"c","name":"C","limit":true}],
		"transactions":[{"id":"t1","type":"expense","categoryId":"a","amount":"abc","date":"2024-05-01"},
			{"id":"t2","type":"income","categoryId":"a","amount":"40","date":"2024-05-02"}],
		"goals":[{"id":"g","name":"G","target":"1e3","saved":{}}],
		"game":{"xp":"5","streak":2.9,"lastActionDate":7}
	}`
	var l Ledger
	if err := json.Unmarshal([]byte(in), &l); err != nil {
		t.Fatalf("decode: %v", err)
	}

	limits := []string{"0", "12.5", "0"}
	for i, want := range limits {
		if !l.Categories[i].Limit.Equal(decimal.RequireFromString(want)) {
			t.Errorf("category %d limit = %s, want %s", i, l.Categories[i].Limit, want)
		}
	}
	if !l.Transactions[0].Amount.IsZero() || !l.Transactions[1].Amount.Equal(decimal.NewFromInt(40)) {
		t.Errorf("amounts = %s, %s; want 0, 40", l.Transactions[0].Amount, l.Transactions[1].Amount)
	}
	if !l.Goals[0].Target.Equal(decimal.NewFromInt(1000)) || !l.Goals[0].Saved.IsZero() {
		t.Errorf("goal = %+v, want target 1000 saved 0", l.Goals[0])
	}
	if l.Game.XP != 5 || l.Game.Streak != 2 || l.Game.LastActionDate != "" {
		t.Errorf("game = %+v, want xp 5 streak 2 no last date", l.Game)
	}

	var g GameState
	if err := json.Unmarshal([]byte(`{"xp":12.5,"streak":"x"}`), &g); err != nil {
		t.Fatalf("decode game: %v", err)
	}
	if g.XP != 12 || g.Streak != 0 {
		t.Errorf("game = %+v, want xp 12 streak 0", g)
	}
}

func TestLastActionDateNull(t *testing.T) {
	data, err := json.Marshal(GameState{})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"lastActionDate":null`) {
		t.Errorf("unset last action encoded as %s, want null", data)
	}

	data, err = json.Marshal(GameState{XP: 15, LastActionDate: "2024-05-10"})
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	if !strings.Contains(s, `"lastActionDate":"2024-05-10"`) || !strings.Contains(s, `"xp":15`) {
		t.Errorf("encoded game = %s", s)
	}

	var back GameState
	if err := json.Unmarshal(data, &back); err != nil || back.LastActionDate != "2024-05-10" || back.XP != 15 {
		t.Errorf("round trip = %+v, %v", back, err)
	}
	if err := json.Unmarshal([]byte(`{"lastActionDate":null}`), &back); err != nil || back.LastActionDate != "" {
		t.Errorf("null last action = %q, %v", back.LastActionDate, err)
	}
}
