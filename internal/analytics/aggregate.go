package analytics

import (
	"cmp"
	"math"
	"slices"
	"time"

	"spendlog/internal/models"
)

// Aggregate computes the dashboard statistics for an already filtered set of
// expenses. The filter is only consulted for its date range, which decides the
// denominator of the daily average.
//
// Ties for the highest expense and the most frequent category go to the first
// candidate in iteration order.
func Aggregate(filtered []models.Expense, filter *models.ExpenseFilter) models.Statistics {
	if len(filtered) == 0 {
		return models.Statistics{Categories: []models.CategoryStat{}}
	}

	var stats models.Statistics
	groups := newCategoryGroups()
	for i, e := range filtered {
		stats.TotalExpenses += e.Amount
		if i == 0 || e.Amount > stats.HighestExpense {
			stats.HighestExpense = e.Amount
			stats.HighestCategory = string(e.Category)
		}
		groups.add(e)
	}

	stats.AveragePerDay = stats.TotalExpenses / float64(DayCount(filtered, filter))
	stats.MostFrequentCategory, stats.MostFrequentCount = groups.mostFrequent()
	stats.Categories = groups.breakdown(stats.TotalExpenses)
	return stats
}

// DayCount is the denominator of the daily average, never less than 1.
//
// With both date bounds set it is the inclusive number of calendar days in the
// range. Otherwise, or when a bound does not parse, it is the number of
// distinct dates among the records.
func DayCount(records []models.Expense, filter *models.ExpenseFilter) int {
	if filter.HasDateRange() {
		start, startErr := time.Parse(models.DateLayout, DateOnly(filter.StartDate))
		end, endErr := time.Parse(models.DateLayout, DateOnly(filter.EndDate))
		if startErr == nil && endErr == nil {
			days := int(math.Round(math.Abs(end.Sub(start).Hours())/24)) + 1
			return max(days, 1)
		}
	}

	distinct := make(map[string]struct{}, len(records))
	for _, e := range records {
		distinct[DateOnly(e.Date)] = struct{}{}
	}
	return max(len(distinct), 1)
}

type accumulator struct {
	count  int
	amount float64
}

// categoryGroups keeps per-category totals plus the order categories were
// first seen in, which drives tie-breaking.
type categoryGroups struct {
	totals map[models.Category]*accumulator
	order  []models.Category
}

func newCategoryGroups() *categoryGroups {
	return &categoryGroups{totals: make(map[models.Category]*accumulator)}
}

func (g *categoryGroups) add(e models.Expense) {
	acc, ok := g.totals[e.Category]
	if !ok {
		acc = &accumulator{}
		g.totals[e.Category] = acc
		g.order = append(g.order, e.Category)
	}
	acc.count++
	acc.amount += e.Amount
}

func (g *categoryGroups) mostFrequent() (string, int) {
	var name string
	var count int
	for _, c := range g.order {
		if n := g.totals[c].count; n > count {
			name, count = string(c), n
		}
	}
	return name, count
}

func (g *categoryGroups) breakdown(total float64) []models.CategoryStat {
	out := make([]models.CategoryStat, 0, len(g.order))
	for _, c := range g.order {
		acc := g.totals[c]
		var pct float64
		if total != 0 {
			pct = acc.amount / total * 100
		}
		out = append(out, models.CategoryStat{Name: string(c), Amount: acc.amount, Percentage: pct})
	}
	slices.SortStableFunc(out, func(a, b models.CategoryStat) int {
		return cmp.Compare(b.Amount, a.Amount)
	})
	return out
}
