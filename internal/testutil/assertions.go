package testutil

import (
	"errors"
	"slices"
	"testing"

	apperrors "spendlog/internal/errors"
	"spendlog/internal/models"
)

// AssertAppError checks that err is an *AppError with the expected error code.
func AssertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected AppError with code %q, got nil", expectedCode)
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}

	if appErr.Code != expectedCode {
		t.Errorf("expected error code %q, got %q (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertExpenseIDs checks that expenses carry exactly the wanted ids, in order.
func AssertExpenseIDs(t *testing.T, expenses []models.Expense, want ...int64) {
	t.Helper()

	got := make([]int64, 0, len(expenses))
	for _, e := range expenses {
		got = append(got, e.ID)
	}
	if want == nil {
		want = []int64{}
	}
	if !slices.Equal(got, want) {
		t.Errorf("expected expense ids %v, got %v", want, got)
	}
}

// AssertNewestFirst checks that expenses are ordered by date, latest first.
func AssertNewestFirst(t *testing.T, expenses []models.Expense) {
	t.Helper()

	for i := 1; i < len(expenses); i++ {
		if expenses[i-1].Date < expenses[i].Date {
			t.Errorf("expense %d (%s) listed before newer expense %d (%s)",
				expenses[i-1].ID, expenses[i-1].Date, expenses[i].ID, expenses[i].Date)
		}
	}
}
