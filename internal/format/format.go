// Package format renders engine figures for people: payoff periods, token
// volumes, hours and dollar amounts.
package format

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// NotAvailable is printed for payoff periods that never end.
const NotAvailable = "N/A"

// FormatPayoff renders a payoff period given in months. A year or more is
// shown in years, a month or more in months, anything shorter in whole days
// rounded up.
func FormatPayoff(months float64) string {
	switch {
	case math.IsNaN(months) || math.IsInf(months, 0):
		return NotAvailable
	case months >= 12:
		return fmt.Sprintf("%.1fy", months/12)
	case months >= 1:
		return fmt.Sprintf("%.1fmo", months)
	default:
		return fmt.Sprintf("%.0fd", math.Ceil(months*30))
	}
}

// FormatTokens abbreviates a token count with a K, M or B suffix.
func FormatTokens(n float64) string {
	switch {
	case n >= 1e9:
		return fmt.Sprintf("%.2fB", n/1e9)
	case n >= 1e6:
		return fmt.Sprintf("%.1fM", n/1e6)
	case n >= 1e3:
		return fmt.Sprintf("%.1fK", n/1e3)
	default:
		return fmt.Sprintf("%.0f", n)
	}
}

// FormatHours renders a duration in hours, switching to minutes below one
// hour. Unbounded durations print as a dash.
func FormatHours(hours float64) string {
	switch {
	case math.IsNaN(hours) || math.IsInf(hours, 0):
		return "—"
	case hours < 1:
		return fmt.Sprintf("%.0fm", hours*60)
	default:
		return fmt.Sprintf("%.1fh", hours)
	}
}

// FormatUSD renders a dollar amount with thousands separators and cents.
func FormatUSD(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return NotAvailable
	}
	if amount < 0 {
		return "-$" + humanize.FormatFloat("#,###.##", -amount)
	}
	return "$" + humanize.FormatFloat("#,###.##", amount)
}
