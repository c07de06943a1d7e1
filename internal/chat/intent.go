// Package chat implements the rule-based query engine behind the chatbot
// endpoint: intent classification, query parameter extraction, and
// natural-language response generation over a user's expense ledger.
package chat

import "strings"

// Intent is the closed set of question types the chatbot understands.
type Intent string

const (
	IntentGreeting         Intent = "general_greeting"
	IntentHelp             Intent = "help"
	IntentTotalSpending    Intent = "total_spending"
	IntentCategorySpending Intent = "category_spending"
	IntentRecentExpenses   Intent = "recent_expenses"
	IntentHighestExpense   Intent = "highest_expense"
	IntentBudgetingGoal    Intent = "budgeting_goal"
	IntentSavingsProgress  Intent = "savings_progress"
	IntentForecastExpenses Intent = "forecast_expenses"
	IntentUnknown          Intent = "unknown"
)

// Greeting phrases matched against the whole normalized query.
var greetings = phraseSet(
	"hi", "hello", "hey", "whats up", "how are you", "yo",
	"good morning", "good afternoon", "good evening", "sup",
	"hey there", "hiya", "howdy", "whats good", "whats happening",
	"hows it going", "whats new",
)

// Questions about the assistant itself, matched against the whole query.
var helpPhrases = phraseSet(
	"who are you", "what can you do", "help", "what do you do",
	"tell me about yourself", "what are your skills", "how can you help me",
	"what services do you offer", "what are you capable of",
	"whats your purpose", "what do you know", "what can you tell me",
	"how do you work", "whats your function", "what can you help me with",
	"how can i use you", "whats your job", "what are your features",
)

func phraseSet(phrases ...string) map[string]bool {
	set := make(map[string]bool, len(phrases))
	for _, p := range phrases {
		set[p] = true
	}
	return set
}

type rule struct {
	match  func(query string) bool
	intent Intent
}

// rules is evaluated top to bottom, first match wins. The order is
// load-bearing: the keyword sets overlap, so e.g. a query containing both
// "budget" and "category" resolves to category_spending because the category
// rule sits higher in the list.
var rules = []rule{
	{func(q string) bool { return greetings[q] }, IntentGreeting},
	{func(q string) bool { return helpPhrases[q] || strings.Contains(q, "help") }, IntentHelp},
	{containsAny("total", "spent", "spending", "how much"), IntentTotalSpending},
	{containsAny("category", "categories"), IntentCategorySpending},
	{containsAny("recent", "latest", "last"), IntentRecentExpenses},
	{containsAny("highest", "most", "top", "biggest"), IntentHighestExpense},
	{containsAny("budget", "limit"), IntentBudgetingGoal},
	{containsAny("save", "saving", "savings", "goal"), IntentSavingsProgress},
	{containsAny("predict", "forecast", "future", "next month"), IntentForecastExpenses},
}

func containsAny(keywords ...string) func(string) bool {
	return func(query string) bool {
		for _, kw := range keywords {
			if strings.Contains(query, kw) {
				return true
			}
		}
		return false
	}
}

// Normalize lower-cases the query and strips everything except letters,
// digits and spaces, so "Hey there?" and "hey there" classify identically.
func Normalize(query string) string {
	query = strings.ToLower(query)
	var b strings.Builder
	b.Grow(len(query))
	for _, r := range query {
		if r == ' ' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// Classify maps a raw query to exactly one intent.
func Classify(query string) Intent {
	return classifyNormalized(Normalize(query))
}

func classifyNormalized(query string) Intent {
	for _, r := range rules {
		if r.match(query) {
			return r.intent
		}
	}
	return IntentUnknown
}
