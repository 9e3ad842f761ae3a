package services

import (
	"context"
	"math"
	"testing"

	"spendlog/internal/models"
	"spendlog/internal/storage/memory"
	"spendlog/internal/storage/sqlstore"
	"spendlog/internal/testutil"
)

func validInput() models.ExpenseInput {
	return models.ExpenseInput{
		Description: "Groceries",
		Amount:      42.5,
		Category:    models.CategoryFood,
		Date:        "2024-03-01",
	}
}

func strPtr(s string) *string { return &s }

func TestCreateExpense(t *testing.T) {
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewExpenseService(sqlstore.New(db), 1)

		input := validInput()
		input.Description = "  Groceries  "
		input.Notes = strPtr(" weekly ")
		expense, err := svc.CreateExpense(ctx, input)
		testutil.AssertNoError(t, err)

		if expense.ID == 0 {
			t.Fatal("expected non-zero expense ID")
		}
		if expense.Description != "Groceries" {
			t.Errorf("expected trimmed description, got %q", expense.Description)
		}
		if expense.Notes == nil || *expense.Notes != "weekly" {
			t.Errorf("expected trimmed notes, got %v", expense.Notes)
		}
		if expense.UserID == nil || *expense.UserID != 1 {
			t.Errorf("expected default owner 1, got %v", expense.UserID)
		}
		if expense.CreatedAt.IsZero() {
			t.Error("expected createdAt to be set")
		}
	})

	t.Run("explicit_owner_kept", func(t *testing.T) {
		svc := NewExpenseService(memory.New(), 1)

		input := validInput()
		owner := int64(9)
		input.UserID = &owner
		expense, err := svc.CreateExpense(ctx, input)
		testutil.AssertNoError(t, err)

		if *expense.UserID != 9 {
			t.Errorf("expected owner 9, got %d", *expense.UserID)
		}
	})

	t.Run("no_default_owner", func(t *testing.T) {
		svc := NewExpenseService(memory.New(), 0)

		expense, err := svc.CreateExpense(ctx, validInput())
		testutil.AssertNoError(t, err)

		if expense.UserID != nil {
			t.Errorf("expected no owner, got %d", *expense.UserID)
		}
	})

	invalid := []struct {
		name   string
		mutate func(*models.ExpenseInput)
		code   string
	}{
		{"empty_description", func(in *models.ExpenseInput) { in.Description = "   " }, "INVALID_INPUT"},
		{"zero_amount", func(in *models.ExpenseInput) { in.Amount = 0 }, "INVALID_INPUT"},
		{"negative_amount", func(in *models.ExpenseInput) { in.Amount = -5 }, "INVALID_INPUT"},
		{"nan_amount", func(in *models.ExpenseInput) { in.Amount = math.NaN() }, "INVALID_INPUT"},
		{"infinite_amount", func(in *models.ExpenseInput) { in.Amount = math.Inf(1) }, "INVALID_INPUT"},
		{"unknown_category", func(in *models.ExpenseInput) { in.Category = "Groceries" }, "INVALID_CATEGORY"},
		{"lowercase_category", func(in *models.ExpenseInput) { in.Category = "food" }, "INVALID_CATEGORY"},
		{"bad_date", func(in *models.ExpenseInput) { in.Date = "03/01/2024" }, "INVALID_INPUT"},
		{"impossible_date", func(in *models.ExpenseInput) { in.Date = "2024-02-30" }, "INVALID_INPUT"},
	}
	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewExpenseService(memory.New(), 1)
			input := validInput()
			tc.mutate(&input)

			_, err := svc.CreateExpense(ctx, input)
			testutil.AssertAppError(t, err, tc.code)
		})
	}
}

func TestGetExpense(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewExpenseService(sqlstore.New(db), 1)

		created := testutil.CreateTestExpense(t, db, 10, models.CategoryHealth, "2024-01-05")
		expense, err := svc.GetExpense(ctx, created.ID)
		testutil.AssertNoError(t, err)

		if expense.Description != created.Description {
			t.Errorf("expected description %q, got %q", created.Description, expense.Description)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewExpenseService(sqlstore.New(db), 1)

		_, err := svc.GetExpense(ctx, 99999)
		testutil.AssertAppError(t, err, "EXPENSE_NOT_FOUND")
	})
}

func TestUpdateExpense(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces_fields_and_keeps_identity", func(t *testing.T) {
		svc := NewExpenseService(memory.New(), 1)
		input := validInput()
		input.Notes = strPtr("original")
		created, err := svc.CreateExpense(ctx, input)
		testutil.AssertNoError(t, err)

		updated, err := svc.UpdateExpense(ctx, created.ID, models.ExpenseInput{
			Description: "Dinner",
			Amount:      80,
			Category:    models.CategoryEntertainment,
			Date:        "2024-03-02",
		})
		testutil.AssertNoError(t, err)

		if updated.ID != created.ID {
			t.Errorf("expected id %d, got %d", created.ID, updated.ID)
		}
		if !updated.CreatedAt.Equal(created.CreatedAt) {
			t.Errorf("expected createdAt %v, got %v", created.CreatedAt, updated.CreatedAt)
		}
		if updated.Description != "Dinner" || updated.Amount != 80 || updated.Category != models.CategoryEntertainment {
			t.Errorf("fields not replaced: %+v", updated)
		}
		if updated.Notes == nil || *updated.Notes != "original" {
			t.Errorf("expected omitted notes to be kept, got %v", updated.Notes)
		}
		if updated.UserID == nil || *updated.UserID != 1 {
			t.Errorf("expected owner to be kept, got %v", updated.UserID)
		}
	})

	t.Run("empty_notes_clear", func(t *testing.T) {
		svc := NewExpenseService(memory.New(), 1)
		input := validInput()
		input.Notes = strPtr("original")
		created, err := svc.CreateExpense(ctx, input)
		testutil.AssertNoError(t, err)

		update := validInput()
		update.Notes = strPtr("")
		updated, err := svc.UpdateExpense(ctx, created.ID, update)
		testutil.AssertNoError(t, err)

		if updated.Notes != nil {
			t.Errorf("expected notes cleared, got %q", *updated.Notes)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		svc := NewExpenseService(memory.New(), 1)

		_, err := svc.UpdateExpense(ctx, 12345, validInput())
		testutil.AssertAppError(t, err, "EXPENSE_NOT_FOUND")
	})

	t.Run("invalid_input", func(t *testing.T) {
		svc := NewExpenseService(memory.New(), 1)
		created, err := svc.CreateExpense(ctx, validInput())
		testutil.AssertNoError(t, err)

		bad := validInput()
		bad.Amount = 0
		_, err = svc.UpdateExpense(ctx, created.ID, bad)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestDeleteExpense(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := NewExpenseService(sqlstore.New(db), 1)

	created := testutil.CreateTestExpense(t, db, 10, models.CategoryOther, "2024-01-01")
	testutil.AssertNoError(t, svc.DeleteExpense(ctx, created.ID))
	testutil.AssertAppError(t, svc.DeleteExpense(ctx, created.ID), "EXPENSE_NOT_FOUND")
}

func TestListAndRecentExpenses(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := NewExpenseService(sqlstore.New(db), 1)

	testutil.CreateTestExpense(t, db, 100, models.CategoryFood, "2024-01-01")
	testutil.CreateTestExpense(t, db, 50, models.CategoryFood, "2024-01-02")
	newest := testutil.CreateTestExpense(t, db, 200, models.CategoryTravel, "2024-01-03")

	food, err := svc.ListExpenses(ctx, &models.ExpenseFilter{Category: "Food"})
	testutil.AssertNoError(t, err)
	if len(food) != 2 {
		t.Fatalf("expected 2 food expenses, got %d", len(food))
	}

	recent, err := svc.RecentExpenses(ctx, 1)
	testutil.AssertNoError(t, err)
	if len(recent) != 1 || recent[0].ID != newest.ID {
		t.Errorf("expected only the newest expense, got %+v", recent)
	}

	all, err := svc.RecentExpenses(ctx, 10)
	testutil.AssertNoError(t, err)
	if len(all) != 3 {
		t.Errorf("expected 3 expenses, got %d", len(all))
	}
	testutil.AssertNewestFirst(t, all)

	_, err = svc.RecentExpenses(ctx, 0)
	testutil.AssertAppError(t, err, "INVALID_INPUT")
}

func TestGetStatistics(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := NewExpenseService(sqlstore.New(db), 1)

	testutil.CreateTestExpense(t, db, 100, models.CategoryFood, "2024-01-01")
	testutil.CreateTestExpense(t, db, 50, models.CategoryFood, "2024-01-02")
	testutil.CreateTestExpense(t, db, 200, models.CategoryTravel, "2024-01-03")

	t.Run("date_range", func(t *testing.T) {
		stats, err := svc.GetStatistics(ctx, &models.ExpenseFilter{StartDate: "2024-01-01", EndDate: "2024-01-03"})
		testutil.AssertNoError(t, err)

		if stats.TotalExpenses != 350 {
			t.Errorf("expected total 350, got %v", stats.TotalExpenses)
		}
		if math.Abs(stats.AveragePerDay-350.0/3) > 1e-9 {
			t.Errorf("expected average %v, got %v", 350.0/3, stats.AveragePerDay)
		}
		if stats.HighestCategory != "Travel" || stats.MostFrequentCategory != "Food" || stats.MostFrequentCount != 2 {
			t.Errorf("unexpected summary: %+v", stats)
		}
		if len(stats.Categories) != 2 || stats.Categories[0].Name != "Travel" {
			t.Errorf("unexpected breakdown: %+v", stats.Categories)
		}
	})

	t.Run("empty_match", func(t *testing.T) {
		stats, err := svc.GetStatistics(ctx, &models.ExpenseFilter{Category: "Education"})
		testutil.AssertNoError(t, err)

		if stats.TotalExpenses != 0 || stats.Categories == nil || len(stats.Categories) != 0 {
			t.Errorf("expected zeroed statistics, got %+v", stats)
		}
	})
}
