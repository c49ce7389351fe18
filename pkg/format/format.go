// Package format renders market values for people: prices, market caps,
// relative times.
package format

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// TimeAgo describes how long before now the unix timestamp ts was.
func TimeAgo(ts int64, now time.Time) string {
	diff := now.Sub(time.Unix(ts, 0))
	hours := int(diff.Hours())
	minutes := int(diff.Minutes())

	switch {
	case hours > 24:
		days := hours / 24
		return fmt.Sprintf("%d day%s ago", days, plural(days))
	case hours >= 1:
		return fmt.Sprintf("%d hour%s ago", hours, plural(hours))
	default:
		return fmt.Sprintf("%d minute%s ago", minutes, plural(minutes))
	}
}

func plural(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}

// MarketCap renders a USD market capitalization with a T/B/M suffix.
func MarketCap(usd float64) string {
	if math.IsNaN(usd) || math.IsInf(usd, 0) || usd <= 0 {
		return "N/A"
	}

	switch {
	case usd >= 1e12:
		return fmt.Sprintf("$%.2fT", usd/1e12)
	case usd >= 1e9:
		return fmt.Sprintf("$%.2fB", usd/1e9)
	case usd >= 1e6:
		return fmt.Sprintf("$%.2fM", usd/1e6)
	default:
		return fmt.Sprintf("$%.2f", usd)
	}
}

// ChangePercent renders a signed percentage; zero renders as an empty string.
func ChangePercent(pct float64) string {
	if pct == 0 || math.IsNaN(pct) {
		return ""
	}
	if pct > 0 {
		return fmt.Sprintf("+%.2f%%", pct)
	}
	return fmt.Sprintf("%.2f%%", pct)
}

// Price renders a USD amount with thousands separators.
func Price(usd float64) string {
	return printer.Sprintf("$%.2f", usd)
}

// LongDate renders t as e.g. "Monday, October 19, 2026" in UTC.
func LongDate(t time.Time) string {
	return t.UTC().Format("Monday, January 2, 2006")
}
