package chat

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"finance-tracker/internal/forecast"
	"finance-tracker/internal/models"

	"github.com/shopspring/decimal"
)

// CurrencySymbol prefixes every monetary value in chatbot replies.
const CurrencySymbol = "₹"

const (
	greetingReply   = "Hello! How can I assist you with your expenses today?"
	noExpensesReply = "You don't have any expenses recorded yet."
	unknownReply    = "I'm not sure how to answer that question about your expenses. " +
		"Try asking about your total spending, spending by category, or highest expenses. " +
		"Type 'help' to see what I can do."
	helpReply = "I'm a chatbot that can help you with queries about your expenses.\n\n" +
		"I can help you with queries like:\n\n" +
		"• How much have I spent this month?\n" +
		"• What's my total spending on food?\n" +
		"• What are my top spending categories?\n" +
		"• What's my highest expense?\n" +
		"• Show me my recent expenses.\n" +
		"• Predict my future expenses."
)

// Respond classifies a free-text query and answers it from the user's
// ledger, budgets and goals. It never fails: queries it cannot place get a
// fixed guidance reply, and every aggregation is guarded so an empty or
// zero-valued input produces a safe default instead of an error.
func Respond(query string, expenses []models.Expense, budgets []models.Budget, goals []models.FinancialGoal) string {
	q := Normalize(query)
	intent := classifyNormalized(q)

	switch intent {
	case IntentGreeting:
		return greetingReply
	case IntentHelp:
		return helpReply
	}

	// Everything below aggregates the ledger; with no expenses at all there
	// is nothing to aggregate.
	if len(expenses) == 0 {
		return noExpensesReply
	}

	// Average queries predate the intent table and are still answered.
	if strings.Contains(q, "average") || strings.Contains(q, "avg") {
		return respondAverage(q, expenses)
	}

	now := time.Now()

	switch intent {
	case IntentTotalSpending:
		return respondTotal(q, expenses, now)
	case IntentCategorySpending:
		return respondCategories(expenses)
	case IntentRecentExpenses:
		return respondRecent(q, expenses)
	case IntentHighestExpense:
		return respondHighest(q, expenses)
	case IntentBudgetingGoal:
		return respondBudgets(expenses, budgets, now)
	case IntentSavingsProgress:
		return respondSavings(goals)
	case IntentForecastExpenses:
		return respondForecast(q, expenses)
	default:
		return unknownReply
	}
}

func respondTotal(q string, expenses []models.Expense, now time.Time) string {
	category := ExtractCategory(q, expenses)
	window := ExtractWindow(q, now)
	total := sumExpenses(filterExpenses(expenses, category, window))

	if category != "" {
		switch {
		case !window.AllTime() && window.End.IsZero():
			return fmt.Sprintf("This month, you've spent %s on %s.", money(total), category)
		case !window.AllTime():
			return fmt.Sprintf("Last month, you spent %s on %s.", money(total), category)
		default:
			return fmt.Sprintf("In total, you've spent %s on %s.", money(total), category)
		}
	}

	switch {
	case !window.AllTime() && window.End.IsZero():
		return fmt.Sprintf("This month, you've spent a total of %s.", money(total))
	case !window.AllTime():
		return fmt.Sprintf("Last month, you spent a total of %s.", money(total))
	default:
		return fmt.Sprintf("In total, you've spent %s across all categories.", money(total))
	}
}

func respondCategories(expenses []models.Expense) string {
	totals := categoryTotals(expenses)
	if len(totals) == 0 {
		return "You don't have any categorized expenses yet."
	}

	var b strings.Builder
	b.WriteString("Here are your expense categories:\n\n")
	for i, ct := range totals {
		fmt.Fprintf(&b, "%d. %s: %s\n", i+1, ct.category, money(ct.total))
	}
	return b.String()
}

func respondRecent(q string, expenses []models.Expense) string {
	limit := ExtractLimit(q)

	recent := make([]models.Expense, len(expenses))
	copy(recent, expenses)
	sort.SliceStable(recent, func(i, j int) bool {
		if !recent[i].Date.Equal(recent[j].Date) {
			return recent[i].Date.After(recent[j].Date)
		}
		return recent[i].ID > recent[j].ID
	})
	if len(recent) > limit {
		recent = recent[:limit]
	}
	if len(recent) == 0 {
		return "You don't have any recent expenses."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Here are your %d most recent expenses:\n\n", limit)
	for i, e := range recent {
		fmt.Fprintf(&b, "%d. %s: %s (%s) - %s\n", i+1, e.Description, money(e.Amount), e.Date.Format("2006-01-02"), e.Category)
	}
	return b.String()
}

func respondHighest(q string, expenses []models.Expense) string {
	if strings.Contains(q, "category") {
		totals := categoryTotals(expenses)
		if len(totals) == 0 {
			return "You don't have any categorized expenses yet."
		}
		top := totals[0]
		return fmt.Sprintf("Your highest spending category is %s with a total of %s.", top.category, money(top.total))
	}

	// Greatest amount wins; ties go to the earliest record.
	highest := expenses[0]
	for _, e := range expenses[1:] {
		switch {
		case e.Amount > highest.Amount:
			highest = e
		case e.Amount == highest.Amount && e.Date.Before(highest.Date):
			highest = e
		case e.Amount == highest.Amount && e.Date.Equal(highest.Date) && e.ID < highest.ID:
			highest = e
		}
	}
	return fmt.Sprintf("Your highest expense is %s for %s on %s in the %s category.",
		money(highest.Amount), highest.Description, highest.Date.Format("2006-01-02"), highest.Category)
}

func respondBudgets(expenses []models.Expense, budgets []models.Budget, now time.Time) string {
	if len(budgets) == 0 {
		return "You don't have any budgets set up yet."
	}

	thisMonth := Window{Start: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())}

	var b strings.Builder
	b.WriteString("Here's how your budgets are looking this month:\n\n")
	for i, budget := range budgets {
		spent := sumExpenses(filterExpenses(expenses, budget.CategoryName, thisMonth))
		pct := percentage(spent, budget.Limit)
		fmt.Fprintf(&b, "%d. %s: %s of %s (%.1f%%)\n", i+1, budget.CategoryName, money(spent), money(budget.Limit), pct)
	}
	return b.String()
}

func respondSavings(goals []models.FinancialGoal) string {
	if len(goals) == 0 {
		return "You don't have any savings goals yet."
	}

	var b strings.Builder
	b.WriteString("Here's your savings progress:\n\n")
	for i, g := range goals {
		pct := percentage(g.CurrentAmount, g.TargetAmount)
		fmt.Fprintf(&b, "%d. %s: %s of %s (%.1f%%)\n", i+1, g.Name, money(g.CurrentAmount), money(g.TargetAmount), pct)
	}
	return b.String()
}

func respondForecast(q string, expenses []models.Expense) string {
	if category := ExtractCategory(q, expenses); category != "" {
		return fmt.Sprintf("Based on your spending patterns, here's a prediction for %s. "+
			"You can view detailed predictions in the Predictions section of the dashboard.", category)
	}

	monthlyAvg, annual := forecast.AnnualOutlook(expenses)
	return fmt.Sprintf("Based on your average monthly spending of %s, you're on track to spend about %s over the next 12 months. "+
		"You can view detailed predictions per category in the Predictions section of the dashboard.",
		money(monthlyAvg), money(annual))
}

func respondAverage(q string, expenses []models.Expense) string {
	if category := ExtractCategory(q, expenses); category != "" {
		filtered := filterExpenses(expenses, category, Window{})
		return fmt.Sprintf("Your average expense in the %s category is %s.", category, money(average(filtered)))
	}
	return fmt.Sprintf("Your average expense amount is %s.", money(average(expenses)))
}

// filterExpenses matches category labels exactly, the same rule the storage
// sum queries apply: case-variant labels are distinct categories.
func filterExpenses(expenses []models.Expense, category string, window Window) []models.Expense {
	var out []models.Expense
	for _, e := range expenses {
		if category != "" && e.Category != category {
			continue
		}
		if !window.Contains(e.Date) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func sumExpenses(expenses []models.Expense) float64 {
	var total float64
	for _, e := range expenses {
		total += e.Amount
	}
	return total
}

// average guards the empty case: a filter that matches nothing yields 0.00
// rather than a division by zero.
func average(expenses []models.Expense) float64 {
	if len(expenses) == 0 {
		return 0
	}
	return sumExpenses(expenses) / float64(len(expenses))
}

// percentage guards whole == 0, reporting 0 instead of dividing by zero.
func percentage(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return part / whole * 100
}

type categoryTotal struct {
	category string
	total    float64
}

// categoryTotals groups the ledger by category label and orders the groups
// by total descending, name ascending on ties. Uncategorized records (empty
// label) are left out.
func categoryTotals(expenses []models.Expense) []categoryTotal {
	sums := make(map[string]float64)
	for _, e := range expenses {
		if e.Category == "" {
			continue
		}
		sums[e.Category] += e.Amount
	}

	totals := make([]categoryTotal, 0, len(sums))
	for cat, total := range sums {
		totals = append(totals, categoryTotal{category: cat, total: total})
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].total != totals[j].total {
			return totals[i].total > totals[j].total
		}
		return totals[i].category < totals[j].category
	})
	return totals
}

func money(v float64) string {
	return CurrencySymbol + decimal.NewFromFloat(v).StringFixed(2)
}
