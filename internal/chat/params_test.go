package chat

import (
	"testing"
	"time"

	"finance-tracker/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestExtractLimit(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"show me my last 3 expenses", 3},
		{"top 10 please", 10},
		{"show me my recent expenses", DefaultRecentLimit},
		{"", DefaultRecentLimit},
		// An explicit zero passes through instead of falling back.
		{"last 0 expenses", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractLimit(tt.query), "query %q", tt.query)
	}
}

func TestExtractWindow(t *testing.T) {
	today := time.Date(2025, time.July, 15, 0, 0, 0, 0, time.UTC)

	t.Run("this month", func(t *testing.T) {
		w := ExtractWindow("how much did i spend this month", today)
		assert.Equal(t, time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC), w.Start)
		assert.True(t, w.End.IsZero())
		assert.False(t, w.AllTime())
	})

	t.Run("last month", func(t *testing.T) {
		w := ExtractWindow("what did i spend last month", today)
		assert.Equal(t, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC), w.Start)
		assert.Equal(t, time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC), w.End)

		assert.True(t, w.Contains(time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)))
		// end is exclusive: the first of this month belongs to this month
		assert.False(t, w.Contains(time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("january rolls back to december", func(t *testing.T) {
		jan := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)
		w := ExtractWindow("last month", jan)
		assert.Equal(t, time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC), w.Start)
	})

	t.Run("no phrase means all time", func(t *testing.T) {
		w := ExtractWindow("how much did i spend", today)
		assert.True(t, w.AllTime())
		assert.True(t, w.Contains(time.Date(1999, time.January, 1, 0, 0, 0, 0, time.UTC)))
	})
}

func TestExtractCategory(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, time.June, d, 0, 0, 0, 0, time.UTC) }
	expenses := []models.Expense{
		{ID: 1, Category: "Food", Date: day(1)},
		{ID: 2, Category: "Transport", Date: day(2)},
		{ID: 3, Category: "Food", Date: day(3)},
	}

	assert.Equal(t, "Food", ExtractCategory("how much did i spend on food", expenses))
	assert.Equal(t, "Transport", ExtractCategory("total transport costs", expenses))
	assert.Equal(t, "", ExtractCategory("how much did i spend", expenses))
	assert.Equal(t, "", ExtractCategory("anything", nil))
}

// When one label is a substring of another, the label whose expense appeared
// first in the ledger wins. This pins the resolution down so it cannot drift
// with map or storage ordering.
func TestExtractCategorySubstringAmbiguity(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, time.June, d, 0, 0, 0, 0, time.UTC) }
	expenses := []models.Expense{
		{ID: 1, Category: "Car", Date: day(1)},
		{ID: 2, Category: "Care", Date: day(2)},
	}

	assert.Equal(t, "Car", ExtractCategory("spending on care", expenses))

	// Reversed ledger order reverses the winner.
	expenses[0].Date, expenses[1].Date = day(2), day(1)
	assert.Equal(t, "Care", ExtractCategory("spending on care", expenses))
}
