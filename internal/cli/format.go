// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatCost formats a USD cost value. Precision follows magnitude: two
// decimals above a dollar, three between a cent and a dollar, four below.
func FormatCost(cost float64) string {
	switch {
	case cost >= 1:
		return fmt.Sprintf("$%.2f", cost)
	case cost >= 0.01:
		return fmt.Sprintf("$%.3f", cost)
	default:
		return fmt.Sprintf("$%.4f", cost)
	}
}

// FormatTokens formats a token count with human-readable suffixes.
// e.g., 1234 -> "1.2K", 1234567 -> "1.2M", 1234567890 -> "1.2B"
func FormatTokens(n int64) string {
	abs := n
	if abs < 0 {
		abs = -abs
	}

	switch {
	case abs >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", float64(n)/1_000_000_000)
	case abs >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return strconv.FormatInt(n, 10)
	}
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatTimeRange renders a session's bounds compactly, collapsing the date
// when start and end fall on the same day.
func FormatTimeRange(start, end time.Time) string {
	if start.IsZero() {
		return "unknown"
	}
	s := start.Local()
	e := end.Local()
	if s.Year() == e.Year() && s.YearDay() == e.YearDay() {
		return fmt.Sprintf("%s %s-%s",
			s.Format("2006-01-02"), s.Format("15:04"), e.Format("15:04"))
	}
	return fmt.Sprintf("%s - %s",
		s.Format("2006-01-02 15:04"), e.Format("2006-01-02 15:04"))
}

// ShortID abbreviates a session id for table display.
func ShortID(id string) string {
	if len(id) <= 12 {
		return id
	}
	return id[:12]
}
