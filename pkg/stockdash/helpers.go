package stockdash

import (
	"math"
	"slices"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

func isValidTimeframe(tf string) bool {
	return slices.Contains(Timeframes, tf)
}

func isValidTheme(theme string) bool {
	return slices.Contains(Themes, theme)
}

// parseDate accepts a calendar date or a full RFC3339 timestamp.
func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(dateLayout, value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// cloneStrings copies values; the result is never nil.
func cloneStrings(values []string) []string {
	return append([]string{}, values...)
}

func stringPtr(value string) *string {
	return &value
}
