package chat

import (
	"testing"
	"time"

	"finance-tracker/internal/models"

	"github.com/stretchr/testify/assert"
)

func thisMonth(day int) time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), day, 0, 0, 0, 0, time.UTC)
}

func lastMonth(day int) time.Time {
	return thisMonth(day).AddDate(0, -1, 0)
}

func TestRespondGreetingAndHelp(t *testing.T) {
	assert.Equal(t, greetingReply, Respond("Hello!", nil, nil, nil))
	assert.Equal(t, helpReply, Respond("what can you do", nil, nil, nil))

	// Greetings answer even with an empty ledger.
	assert.Equal(t, greetingReply, Respond("hi", []models.Expense{}, nil, nil))
}

func TestRespondEmptyLedger(t *testing.T) {
	for _, q := range []string{
		"how much did i spend this month",
		"show my categories",
		"what's my highest expense",
		"gibberish",
	} {
		assert.Equal(t, noExpensesReply, Respond(q, nil, nil, nil), "query %q", q)
	}
}

func TestRespondTotalThisMonthForCategory(t *testing.T) {
	expenses := []models.Expense{
		{ID: 1, Amount: 50, Description: "Groceries", Category: "Food", Date: thisMonth(1)},
		{ID: 2, Amount: 30, Description: "Takeout", Category: "Food", Date: thisMonth(2)},
		{ID: 3, Amount: 500, Description: "Groceries", Category: "Food", Date: lastMonth(5)},
		{ID: 4, Amount: 75, Description: "Bus pass", Category: "Transport", Date: thisMonth(2)},
	}

	reply := Respond("How much did I spend this month on Food?", expenses, nil, nil)
	assert.Contains(t, reply, "₹80.00")
	assert.Contains(t, reply, "Food")
	assert.Contains(t, reply, "This month")
}

func TestRespondTotalLastMonth(t *testing.T) {
	expenses := []models.Expense{
		{ID: 1, Amount: 50, Category: "Food", Date: thisMonth(1)},
		{ID: 2, Amount: 120, Category: "Food", Date: lastMonth(5)},
		{ID: 3, Amount: 80, Category: "Transport", Date: lastMonth(10)},
	}

	reply := Respond("how much did I spend last month", expenses, nil, nil)
	assert.Contains(t, reply, "Last month")
	assert.Contains(t, reply, "₹200.00")
}

func TestRespondTotalAllTime(t *testing.T) {
	expenses := []models.Expense{
		{ID: 1, Amount: 10.50, Category: "Food", Date: lastMonth(1)},
		{ID: 2, Amount: 4.25, Category: "Transport", Date: thisMonth(1)},
	}

	reply := Respond("what is my total spending", expenses, nil, nil)
	assert.Contains(t, reply, "₹14.75")
	assert.Contains(t, reply, "across all categories")
}

// Case-variant labels are distinct categories everywhere: the chat totals
// apply the same exact-match rule as the storage sum queries behind the
// budget endpoint.
func TestRespondTreatsCaseVariantLabelsAsDistinct(t *testing.T) {
	expenses := []models.Expense{
		{ID: 1, Amount: 50, Category: "Food", Date: thisMonth(1)},
		{ID: 2, Amount: 99, Category: "food", Date: thisMonth(2)},
	}

	reply := Respond("how much have i spent on food", expenses, nil, nil)
	assert.Contains(t, reply, "₹50.00")

	budgets := []models.Budget{{ID: 1, CategoryName: "Food", Limit: 100}}
	reply = Respond("how are my budgets", expenses, budgets, nil)
	assert.Contains(t, reply, "1. Food: ₹50.00 of ₹100.00 (50.0%)")
}

func TestRespondCategories(t *testing.T) {
	expenses := []models.Expense{
		{ID: 1, Amount: 30, Category: "Food", Date: thisMonth(1)},
		{ID: 2, Amount: 70, Category: "Rent", Date: thisMonth(2)},
		{ID: 3, Amount: 20, Category: "Food", Date: thisMonth(3)},
		{ID: 4, Amount: 5, Category: "", Date: thisMonth(4)},
	}

	reply := Respond("break it down by category", expenses, nil, nil)
	assert.Contains(t, reply, "Here are your expense categories:")
	// Ordered by total descending.
	assert.Contains(t, reply, "1. Rent: ₹70.00")
	assert.Contains(t, reply, "2. Food: ₹50.00")
	assert.NotContains(t, reply, "3.")
}

func TestRespondRecent(t *testing.T) {
	expenses := []models.Expense{
		{ID: 1, Amount: 10, Description: "Oldest", Category: "Misc", Date: thisMonth(1)},
		{ID: 2, Amount: 20, Description: "Middle", Category: "Misc", Date: thisMonth(2)},
		{ID: 3, Amount: 30, Description: "Newer", Category: "Misc", Date: thisMonth(3)},
		{ID: 4, Amount: 40, Description: "Newest", Category: "Misc", Date: thisMonth(4)},
	}

	reply := Respond("show me my last 3 expenses", expenses, nil, nil)
	assert.Contains(t, reply, "Here are your 3 most recent expenses")
	assert.Contains(t, reply, "1. Newest")
	assert.Contains(t, reply, "2. Newer")
	assert.Contains(t, reply, "3. Middle")
	assert.NotContains(t, reply, "Oldest")
}

func TestRespondRecentZeroLimit(t *testing.T) {
	expenses := []models.Expense{
		{ID: 1, Amount: 10, Description: "Something", Category: "Misc", Date: thisMonth(1)},
	}

	reply := Respond("show me my last 0 expenses", expenses, nil, nil)
	assert.Equal(t, "You don't have any recent expenses.", reply)
}

func TestRespondRecentSameDayOrdersByID(t *testing.T) {
	expenses := []models.Expense{
		{ID: 7, Amount: 10, Description: "First", Category: "Misc", Date: thisMonth(1)},
		{ID: 9, Amount: 20, Description: "Second", Category: "Misc", Date: thisMonth(1)},
	}

	reply := Respond("recent expenses", expenses, nil, nil)
	assert.Contains(t, reply, "1. Second")
	assert.Contains(t, reply, "2. First")
}

func TestRespondHighest(t *testing.T) {
	expenses := []models.Expense{
		{ID: 1, Amount: 100, Description: "Phone", Category: "Electronics", Date: thisMonth(3)},
		{ID: 2, Amount: 250, Description: "Rent", Category: "Housing", Date: thisMonth(1)},
		{ID: 3, Amount: 250, Description: "Laptop repair", Category: "Electronics", Date: thisMonth(2)},
	}

	// The tie on amount goes to the earlier record.
	reply := Respond("what is my highest expense", expenses, nil, nil)
	assert.Contains(t, reply, "₹250.00")
	assert.Contains(t, reply, "Rent")
	assert.NotContains(t, reply, "Laptop repair")
}

func TestRespondHighestCategory(t *testing.T) {
	expenses := []models.Expense{
		{ID: 1, Amount: 40, Category: "Food", Date: thisMonth(1)},
		{ID: 2, Amount: 60, Category: "Food", Date: thisMonth(2)},
		{ID: 3, Amount: 80, Category: "Rent", Date: thisMonth(3)},
	}

	// A query naming "category" routes to the category handler before it can
	// reach the highest-expense handler, so the handler's category branch is
	// exercised directly.
	reply := respondHighest("highest spending category", expenses)
	assert.Contains(t, reply, "highest spending category is Food")
	assert.Contains(t, reply, "₹100.00")
}

func TestRespondBudgets(t *testing.T) {
	expenses := []models.Expense{
		{ID: 1, Amount: 50, Category: "Food", Date: thisMonth(1)},
		{ID: 2, Amount: 999, Category: "Food", Date: lastMonth(15)},
	}
	budgets := []models.Budget{
		{ID: 1, CategoryName: "Food", Limit: 200},
		{ID: 2, CategoryName: "Free", Limit: 0},
	}

	reply := Respond("how are my budgets", expenses, budgets, nil)
	assert.Contains(t, reply, "Here's how your budgets are looking this month:")
	// Only this month's spend counts, so 50 of 200.
	assert.Contains(t, reply, "1. Food: ₹50.00 of ₹200.00 (25.0%)")
	// A zero limit reports 0% instead of dividing by zero.
	assert.Contains(t, reply, "2. Free: ₹0.00 of ₹0.00 (0.0%)")
}

func TestRespondBudgetsNoneConfigured(t *testing.T) {
	expenses := []models.Expense{{ID: 1, Amount: 10, Category: "Food", Date: thisMonth(1)}}
	reply := Respond("am i over budget", expenses, nil, nil)
	assert.Equal(t, "You don't have any budgets set up yet.", reply)
}

func TestRespondSavings(t *testing.T) {
	expenses := []models.Expense{{ID: 1, Amount: 10, Category: "Food", Date: thisMonth(1)}}
	goals := []models.FinancialGoal{
		{ID: 1, Name: "Vacation", TargetAmount: 1000, CurrentAmount: 250},
		{ID: 2, Name: "Someday", TargetAmount: 0, CurrentAmount: 0},
	}

	reply := Respond("how are my savings goals", expenses, nil, goals)
	assert.Contains(t, reply, "Here's your savings progress:")
	assert.Contains(t, reply, "1. Vacation: ₹250.00 of ₹1000.00 (25.0%)")
	assert.Contains(t, reply, "2. Someday: ₹0.00 of ₹0.00 (0.0%)")
}

func TestRespondForecast(t *testing.T) {
	expenses := []models.Expense{
		{ID: 1, Amount: 100, Category: "Food", Date: lastMonth(1).AddDate(0, -1, 0)},
		{ID: 2, Amount: 200, Category: "Food", Date: lastMonth(1)},
		{ID: 3, Amount: 300, Category: "Food", Date: thisMonth(1)},
	}

	t.Run("category query redirects to the dashboard", func(t *testing.T) {
		reply := Respond("predict my future Food expenses", expenses, nil, nil)
		assert.Contains(t, reply, "prediction for Food")
		assert.Contains(t, reply, "Predictions section")
	})

	t.Run("general query reports the annual outlook", func(t *testing.T) {
		// Three months averaging 200 a month projects to 2400 a year.
		reply := Respond("what will i spend next month", expenses, nil, nil)
		assert.Contains(t, reply, "average monthly spending of ₹200.00")
		assert.Contains(t, reply, "₹2400.00 over the next 12 months")
	})
}

func TestRespondAverage(t *testing.T) {
	expenses := []models.Expense{
		{ID: 1, Amount: 10, Category: "Food", Date: thisMonth(1)},
		{ID: 2, Amount: 20, Category: "Food", Date: thisMonth(2)},
		{ID: 3, Amount: 90, Category: "Rent", Date: thisMonth(3)},
	}

	assert.Contains(t, Respond("what's my average spending", expenses, nil, nil), "₹40.00")

	reply := Respond("average spent on Food", expenses, nil, nil)
	assert.Contains(t, reply, "Food")
	assert.Contains(t, reply, "₹15.00")
}

func TestRespondUnknown(t *testing.T) {
	expenses := []models.Expense{{ID: 1, Amount: 10, Category: "Food", Date: thisMonth(1)}}
	assert.Equal(t, unknownReply, Respond("tell me a joke", expenses, nil, nil))
}
