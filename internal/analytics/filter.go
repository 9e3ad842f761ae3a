// Package analytics turns a set of expenses and an optional filter into the
// matching subset and the dashboard statistics. It performs no I/O, holds no
// state and never mutates its input, so concurrent callers need no locking.
package analytics

import (
	"slices"
	"strings"

	"spendlog/internal/models"
)

// Evaluate returns the records matching filter, newest first. A nil filter
// matches everything. Records sharing a date keep their input order.
//
// Dates are compared as YYYY-MM-DD strings. Values that are not well formed are
// still compared as opaque strings; they may simply match nothing.
func Evaluate(records []models.Expense, filter *models.ExpenseFilter) []models.Expense {
	out := make([]models.Expense, 0, len(records))
	for _, e := range records {
		if Matches(e, filter) {
			out = append(out, e)
		}
	}
	SortNewestFirst(out)
	return out
}

// Matches reports whether a single expense satisfies every rule in filter.
func Matches(e models.Expense, filter *models.ExpenseFilter) bool {
	if filter == nil {
		return true
	}
	if filter.Category != "" && string(e.Category) != filter.Category {
		return false
	}

	date := DateOnly(e.Date)
	if filter.StartDate != "" && date < DateOnly(filter.StartDate) {
		return false
	}
	// Comparing calendar dates keeps the end bound inclusive for the whole day.
	if filter.EndDate != "" && date > DateOnly(filter.EndDate) {
		return false
	}
	return true
}

// SortNewestFirst orders expenses by date descending, in place and stable.
func SortNewestFirst(expenses []models.Expense) {
	slices.SortStableFunc(expenses, func(a, b models.Expense) int {
		return strings.Compare(DateOnly(b.Date), DateOnly(a.Date))
	})
}

// DateOnly strips any time-of-day suffix from an ISO date or timestamp.
func DateOnly(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, "T "); i >= 0 {
		return s[:i]
	}
	return s
}
