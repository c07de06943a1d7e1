package chat

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"finance-tracker/internal/models"
)

// DefaultRecentLimit is how many expenses a recent-expenses answer lists
// when the query doesn't name a number.
const DefaultRecentLimit = 5

var numberPattern = regexp.MustCompile(`\b(\d+)\b`)

// ExtractLimit returns the first integer token in the query, or the default
// when none is present. An explicit 0 is honored: asking for zero expenses
// gets the empty-recent reply rather than the default listing.
func ExtractLimit(query string) int {
	m := numberPattern.FindStringSubmatch(query)
	if m == nil {
		return DefaultRecentLimit
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return DefaultRecentLimit
	}
	return n
}

// ExtractCategory returns the first category label from the ledger that
// occurs as a substring of the query, or "" if none does. Labels are tested
// in order of their first appearance in the ledger (oldest expense first),
// which makes resolution deterministic when one label is a substring of
// another.
func ExtractCategory(query string, expenses []models.Expense) string {
	query = strings.ToLower(query)
	for _, cat := range distinctCategories(expenses) {
		if cat != "" && strings.Contains(query, strings.ToLower(cat)) {
			return cat
		}
	}
	return ""
}

// distinctCategories lists the ledger's category labels in order of first
// appearance, oldest expense first.
func distinctCategories(expenses []models.Expense) []string {
	ordered := make([]models.Expense, len(expenses))
	copy(ordered, expenses)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].Date.Equal(ordered[j].Date) {
			return ordered[i].Date.Before(ordered[j].Date)
		}
		return ordered[i].ID < ordered[j].ID
	})

	seen := make(map[string]bool)
	var categories []string
	for _, e := range ordered {
		if !seen[e.Category] {
			seen[e.Category] = true
			categories = append(categories, e.Category)
		}
	}
	return categories
}

// Window scopes an aggregation to a date range. A zero Start means the range
// is unbounded below; a zero End means unbounded above.
type Window struct {
	Start time.Time // inclusive
	End   time.Time // exclusive
}

// AllTime reports whether the window has no bounds at all.
func (w Window) AllTime() bool {
	return w.Start.IsZero() && w.End.IsZero()
}

// Contains reports whether a date falls inside the window.
func (w Window) Contains(d time.Time) bool {
	if !w.Start.IsZero() && d.Before(w.Start) {
		return false
	}
	if !w.End.IsZero() && !d.Before(w.End) {
		return false
	}
	return true
}

// ExtractWindow detects a "this month" or "last month" phrase in the query
// and returns the corresponding date range relative to today. Queries naming
// neither get an unbounded window.
func ExtractWindow(query string, today time.Time) Window {
	startOfMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())

	switch {
	case strings.Contains(query, "this month") || strings.Contains(query, "current month"):
		return Window{Start: startOfMonth}
	case strings.Contains(query, "last month") || strings.Contains(query, "previous month"):
		return Window{Start: startOfMonth.AddDate(0, -1, 0), End: startOfMonth}
	default:
		return Window{}
	}
}
