package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Stored and imported ledgers may carry numbers as strings, empty strings,
// nulls or garbage. Numeric fields decode leniently and anything that is not
// a number reads as zero.

// looseDecimal decodes a JSON number or numeric string. Everything else is zero.
func looseDecimal(raw json.RawMessage) decimal.Decimal {
	s, ok := looseNumberText(raw)
	if !ok {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// looseInt decodes a JSON number or numeric string, truncating fractions.
// Everything else is zero.
func looseInt(raw json.RawMessage) int {
	s, ok := looseNumberText(raw)
	if !ok {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	f = math.Trunc(f)
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0
	}
	return int(f)
}

func looseNumberText(raw json.RawMessage) (string, bool) {
	t := strings.TrimSpace(string(raw))
	if t == "" || t == "null" {
		return "", false
	}
	if t[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false
		}
		t = strings.TrimSpace(s)
		if t == "" {
			return "", false
		}
	}
	return t, true
}

// looseString decodes a JSON string; any other value reads as empty.
func looseString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Category) UnmarshalJSON(data []byte) error {
	type plain Category
	aux := struct {
		*plain
		Limit json.RawMessage `json:"limit"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	c.Limit = looseDecimal(aux.Limit)
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	type plain Transaction
	aux := struct {
		*plain
		Amount json.RawMessage `json:"amount"`
	}{plain: (*plain)(t)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	t.Amount = looseDecimal(aux.Amount)
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (g *Goal) UnmarshalJSON(data []byte) error {
	type plain Goal
	aux := struct {
		*plain
		Target json.RawMessage `json:"target"`
		Saved  json.RawMessage `json:"saved"`
	}{plain: (*plain)(g)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	g.Target = looseDecimal(aux.Target)
	g.Saved = looseDecimal(aux.Saved)
	return nil
}

// MarshalJSON writes an unset LastActionDate as null.
func (g GameState) MarshalJSON() ([]byte, error) {
	type plain GameState
	aux := struct {
		plain
		LastActionDate *string `json:"lastActionDate"`
	}{plain: plain(g)}
	if g.LastActionDate != "" {
		aux.LastActionDate = &g.LastActionDate
	}
	return json.Marshal(aux)
}

// UnmarshalJSON implements json.Unmarshaler.
func (g *GameState) UnmarshalJSON(data []byte) error {
	type plain GameState
	aux := struct {
		*plain
		XP             json.RawMessage `json:"xp"`
		Streak         json.RawMessage `json:"streak"`
		LastActionDate json.RawMessage `json:"lastActionDate"`
	}{plain: (*plain)(g)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	g.XP = looseInt(aux.XP)
	g.Streak = looseInt(aux.Streak)
	g.LastActionDate = looseString(aux.LastActionDate)
	return nil
}
