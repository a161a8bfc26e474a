// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/moneymoves/internal/coach"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatMoney renders an amount with the currency symbol and thousands
// grouping, always with two decimals: "$1,234.50", "-$12.00".
func FormatMoney(d decimal.Decimal, symbol string) string {
	r := d.Round(2)
	sign := ""
	if r.IsNegative() {
		sign = "-"
		r = r.Neg()
	}
	return sign + symbol + humanize.FormatFloat("#,###.##", r.InexactFloat64())
}

// MoneyFormatter binds a currency symbol for the coach.
func MoneyFormatter(symbol string) coach.Formatter {
	return func(d decimal.Decimal) string {
		return FormatMoney(d, symbol)
	}
}

// FormatSigned renders an amount with an explicit sign: "+$5.00", "-$5.00".
func FormatSigned(d decimal.Decimal, symbol string) string {
	if d.IsNegative() {
		return FormatMoney(d, symbol)
	}
	return "+" + FormatMoney(d, symbol)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatPercent formats a ratio as a whole percentage: 0.854 -> "85%".
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.0f%%", f*100)
}

// FormatXP renders an XP amount: "+15 XP".
func FormatXP(n int) string {
	if n >= 0 {
		return fmt.Sprintf("+%s XP", FormatNumber(int64(n)))
	}
	return FormatNumber(int64(n)) + " XP"
}

// FormatDays renders a day count: "1 day", "14 days".
func FormatDays(n int) string {
	if n == 1 || n == -1 {
		return fmt.Sprintf("%d day", n)
	}
	return fmt.Sprintf("%d days", n)
}

// Truncate shortens s to n runes, ending in an ellipsis when cut.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n || n < 1 {
		return s
	}
	return strings.TrimSpace(string(r[:n-1])) + "…"
}
