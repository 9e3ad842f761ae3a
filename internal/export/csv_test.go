package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spendlog/internal/models"
)

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, "Date,Description,Category,Amount,Notes\n", buf.String())
}

func TestWriteCSV_Records(t *testing.T) {
	notes := "Pizza, pasta\nand wine"
	expenses := []models.Expense{
		{ID: 2, Description: "Dinner, friends", Amount: 65.8, Category: models.CategoryFood, Date: "2023-08-18", Notes: &notes},
		{ID: 1, Description: "Rent", Amount: 1200, Category: models.CategoryHousing, Date: "2023-08-01T00:00:00Z"},
		{ID: 3, Description: `Say "hi"`, Amount: 0.1 + 0.2, Category: models.CategoryOther, Date: "2023-08-02"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, expenses))

	want := "Date,Description,Category,Amount,Notes\n" +
		"2023-08-18,Dinner  friends,Food,65.80,Pizza  pasta and wine\n" +
		"2023-08-01,Rent,Housing,1200.00,\n" +
		"2023-08-02,\"Say \"\"hi\"\"\",Other,0.30,\n"
	assert.Equal(t, want, buf.String())
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name   string
		filter *models.ExpenseFilter
		want   string
	}{
		{"nil filter", nil, "expenses_all_time.csv"},
		{"no dates", &models.ExpenseFilter{Category: "Food"}, "expenses_all_time.csv"},
		{"both dates", &models.ExpenseFilter{StartDate: "2024-01-01", EndDate: "2024-01-31T23:59:59Z"}, "expenses_2024-01-01_to_2024-01-31.csv"},
		{"start only", &models.ExpenseFilter{StartDate: "2024-01-01T00:00:00Z"}, "expenses_from_2024-01-01.csv"},
		{"end only", &models.ExpenseFilter{EndDate: "2024-02-29"}, "expenses_until_2024-02-29.csv"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Filename(tt.filter))
		})
	}
}
