// Package export renders expenses for download.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"spendlog/internal/analytics"
	"spendlog/internal/models"
)

// Header is the first row of every CSV export.
var Header = []string{"Date", "Description", "Category", "Amount", "Notes"}

var flatten = strings.NewReplacer(",", " ", "\r\n", " ", "\n", " ", "\r", " ")

// WriteCSV writes expenses in the order given. Commas and line breaks inside
// free-text fields are replaced with spaces so every record stays on one line.
func WriteCSV(w io.Writer, expenses []models.Expense) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, e := range expenses {
		var notes string
		if e.Notes != nil {
			notes = flatten.Replace(*e.Notes)
		}
		record := []string{
			analytics.DateOnly(e.Date),
			flatten.Replace(e.Description),
			string(e.Category),
			decimal.NewFromFloat(e.Amount).StringFixed(2),
			notes,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv record %d: %w", e.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Filename names an export after the filter's date range.
func Filename(filter *models.ExpenseFilter) string {
	var start, end string
	if filter != nil {
		start = analytics.DateOnly(filter.StartDate)
		end = analytics.DateOnly(filter.EndDate)
	}

	switch {
	case start != "" && end != "":
		return fmt.Sprintf("expenses_%s_to_%s.csv", start, end)
	case start != "":
		return fmt.Sprintf("expenses_from_%s.csv", start)
	case end != "":
		return fmt.Sprintf("expenses_until_%s.csv", end)
	default:
		return "expenses_all_time.csv"
	}
}
