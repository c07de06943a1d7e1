// Package forecast projects future spending from a user's expense history.
//
// The per-category forecast aggregates expenses into calendar-month totals
// and fits an ordinary least-squares line through them; categories without
// enough history are silently skipped. The whole-account annual outlook is a
// deliberately coarser heuristic used by the chatbot.
package forecast

import (
	"sort"
	"time"

	"finance-tracker/internal/models"

	"github.com/shopspring/decimal"
)

const (
	// minTransactions is the fewest records a category needs before its
	// trend is worth fitting.
	minTransactions = 3
	// minMonths is the fewest distinct months of data a fit needs.
	minMonths = 3
	// horizon is how many months ahead each category is projected.
	horizon = 3
)

// Prediction is one projected month for a category.
type Prediction struct {
	Month  string  `json:"month"`
	Amount float64 `json:"predicted_amount"`
}

// CategoryForecast carries the three-month projection for one category.
type CategoryForecast struct {
	Category    string       `json:"category"`
	Predictions []Prediction `json:"predictions"`
}

// Forecast produces a three-month-ahead projection per category.
// Categories with fewer than three transactions or fewer than three distinct
// months of data are skipped; a user with no expenses yields an empty
// result. Predicted amounts are clamped at zero, since spending cannot be
// negative regardless of the fitted slope.
func Forecast(expenses []models.Expense) []CategoryForecast {
	byCategory := make(map[string][]models.Expense)
	for _, e := range expenses {
		byCategory[e.Category] = append(byCategory[e.Category], e)
	}

	categories := make([]string, 0, len(byCategory))
	for cat := range byCategory {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	forecasts := make([]CategoryForecast, 0, len(categories))
	for _, cat := range categories {
		records := byCategory[cat]
		if len(records) < minTransactions {
			continue
		}

		months := monthlyTotals(records)
		if len(months) < minMonths {
			continue
		}

		// Month ordinals 1..N in chronological order.
		xs := make([]float64, len(months))
		ys := make([]float64, len(months))
		for i, m := range months {
			xs[i] = float64(i + 1)
			ys[i] = m.total
		}
		slope, intercept := leastSquares(xs, ys)

		lastMonth := months[len(months)-1].month
		predictions := make([]Prediction, 0, horizon)
		for i := 1; i <= horizon; i++ {
			predicted := slope*float64(len(months)+i) + intercept
			if predicted < 0 {
				predicted = 0
			}
			predictions = append(predictions, Prediction{
				Month:  lastMonth.AddDate(0, i, 0).Format("Jan 2006"),
				Amount: round2(predicted),
			})
		}

		forecasts = append(forecasts, CategoryForecast{Category: cat, Predictions: predictions})
	}

	return forecasts
}

// AnnualOutlook estimates whole-account spending a year out: the mean of the
// calendar-month totals that have any spending, times twelve. Returns zeros
// for an empty ledger.
func AnnualOutlook(expenses []models.Expense) (monthlyAvg, annual float64) {
	months := monthlyTotals(expenses)
	if len(months) == 0 {
		return 0, 0
	}

	var total float64
	for _, m := range months {
		total += m.total
	}
	monthlyAvg = total / float64(len(months))
	return round2(monthlyAvg), round2(monthlyAvg * 12)
}

type monthTotal struct {
	month time.Time // first day of the month
	total float64
}

// monthlyTotals buckets expenses into calendar months, chronologically.
func monthlyTotals(expenses []models.Expense) []monthTotal {
	sums := make(map[time.Time]float64)
	for _, e := range expenses {
		month := time.Date(e.Date.Year(), e.Date.Month(), 1, 0, 0, 0, 0, time.UTC)
		sums[month] += e.Amount
	}

	months := make([]monthTotal, 0, len(sums))
	for month, total := range sums {
		months = append(months, monthTotal{month: month, total: total})
	}
	sort.Slice(months, func(i, j int) bool { return months[i].month.Before(months[j].month) })
	return months
}

// leastSquares fits y = slope*x + intercept in closed form.
func leastSquares(xs, ys []float64) (slope, intercept float64) {
	n := float64(len(xs))
	var sumX, sumY, sumXY, sumXX float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
		sumXY += xs[i] * ys[i]
		sumXX += xs[i] * xs[i]
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, sumY / n
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
