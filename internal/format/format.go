// Package format renders catalog data for the terminal.
package format

import (
	"fmt"
	"strings"
)

// DefaultTruncate is the synopsis length shown in lists
const DefaultTruncate = 200

// Score formats a MAL score, "N/A" when the anime is unscored
func Score(score float64) string {
	if score == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.1f", score)
}

// Duration shortens Jikan durations: "24 min per ep" becomes "24 min"
func Duration(d string) string {
	if d == "" {
		return "N/A"
	}
	before, _, _ := strings.Cut(d, " per")
	return before
}

// Truncate cuts text to n runes and marks the cut with "..."
func Truncate(text string, n int) string {
	r := []rune(text)
	if len(r) <= n {
		return text
	}
	return string(r[:n]) + "..."
}

// Episodes formats an episode count, "?" while unknown
func Episodes(n int) string {
	if n == 0 {
		return "?"
	}
	return fmt.Sprintf("%d", n)
}
