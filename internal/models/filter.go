package models

// ExpenseFilter narrows which expenses take part in a query.
// Empty fields mean "no constraint"; the date bounds are inclusive.
type ExpenseFilter struct {
	StartDate string `form:"startDate" json:"startDate,omitempty"`
	EndDate   string `form:"endDate" json:"endDate,omitempty"`
	Category  string `form:"category" json:"category,omitempty"`
}

// HasDateRange reports whether both date bounds are set.
func (f *ExpenseFilter) HasDateRange() bool {
	return f != nil && f.StartDate != "" && f.EndDate != ""
}

// IsEmpty reports whether the filter constrains nothing.
func (f *ExpenseFilter) IsEmpty() bool {
	return f == nil || (f.StartDate == "" && f.EndDate == "" && f.Category == "")
}
