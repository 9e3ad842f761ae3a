package models

// CategoryStat is one slice of the category breakdown.
type CategoryStat struct {
	Name       string  `json:"name"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// Statistics is the dashboard aggregate over a filtered set of expenses.
// It is derived on demand and never stored.
type Statistics struct {
	TotalExpenses        float64        `json:"totalExpenses"`
	AveragePerDay        float64        `json:"averagePerDay"`
	HighestExpense       float64        `json:"highestExpense"`
	HighestCategory      string         `json:"highestCategory"`
	MostFrequentCategory string         `json:"mostFrequentCategory"`
	MostFrequentCount    int            `json:"mostFrequentCount"`
	Categories           []CategoryStat `json:"categories"`
}
