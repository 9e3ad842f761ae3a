package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"spendlog/internal/analytics"
	apperrors "spendlog/internal/errors"
	"spendlog/internal/models"
	"spendlog/internal/storage"
	"spendlog/internal/validator"
)

// expenseService handles expense-related business logic.
type expenseService struct {
	store         storage.Store
	defaultUserID int64
}

// NewExpenseService creates a new ExpenseServicer. Expenses created without an
// owner are attributed to defaultUserID; zero leaves them unowned.
func NewExpenseService(store storage.Store, defaultUserID int64) ExpenseServicer {
	return &expenseService{store: store, defaultUserID: defaultUserID}
}

// ListExpenses returns the expenses matching filter, newest first.
func (s *expenseService) ListExpenses(ctx context.Context, filter *models.ExpenseFilter) ([]models.Expense, error) {
	expenses, err := s.store.ListExpenses(ctx, filter)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expenses, nil
}

// RecentExpenses returns at most limit of the newest expenses.
func (s *expenseService) RecentExpenses(ctx context.Context, limit int) ([]models.Expense, error) {
	if limit <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "limit must be positive")
	}
	expenses, err := s.ListExpenses(ctx, nil)
	if err != nil {
		return nil, err
	}
	if len(expenses) > limit {
		expenses = expenses[:limit]
	}
	return expenses, nil
}

func (s *expenseService) GetExpense(ctx context.Context, id int64) (*models.Expense, error) {
	expense, err := s.store.GetExpense(ctx, id)
	if err != nil {
		return nil, expenseError(err)
	}
	return expense, nil
}

func (s *expenseService) CreateExpense(ctx context.Context, input models.ExpenseInput) (*models.Expense, error) {
	if err := validateExpenseInput(&input); err != nil {
		return nil, err
	}

	expense := &models.Expense{
		Description: input.Description,
		Amount:      input.Amount,
		Category:    input.Category,
		Date:        input.Date,
		Notes:       normalizeNotes(input.Notes),
		UserID:      input.UserID,
	}
	if expense.UserID == nil && s.defaultUserID > 0 {
		owner := s.defaultUserID
		expense.UserID = &owner
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

// UpdateExpense replaces the editable fields of an expense. Omitted notes and
// owner keep their stored values; an empty notes string clears them.
func (s *expenseService) UpdateExpense(ctx context.Context, id int64, input models.ExpenseInput) (*models.Expense, error) {
	if err := validateExpenseInput(&input); err != nil {
		return nil, err
	}

	existing, err := s.store.GetExpense(ctx, id)
	if err != nil {
		return nil, expenseError(err)
	}

	existing.Description = input.Description
	existing.Amount = input.Amount
	existing.Category = input.Category
	existing.Date = input.Date
	if input.Notes != nil {
		existing.Notes = normalizeNotes(input.Notes)
	}
	if input.UserID != nil {
		existing.UserID = input.UserID
	}

	if err := s.store.UpdateExpense(ctx, existing); err != nil {
		return nil, expenseError(err)
	}
	return existing, nil
}

func (s *expenseService) DeleteExpense(ctx context.Context, id int64) error {
	if err := s.store.DeleteExpense(ctx, id); err != nil {
		return expenseError(err)
	}
	return nil
}

// GetStatistics aggregates the expenses matching filter.
func (s *expenseService) GetStatistics(ctx context.Context, filter *models.ExpenseFilter) (*models.Statistics, error) {
	expenses, err := s.ListExpenses(ctx, filter)
	if err != nil {
		return nil, err
	}
	// The store already filtered; evaluating again is a no-op that keeps this
	// correct for stores that only narrow the result.
	stats := analytics.Aggregate(analytics.Evaluate(expenses, filter), filter)
	return &stats, nil
}

func validateExpenseInput(input *models.ExpenseInput) error {
	input.Description = strings.TrimSpace(input.Description)
	if input.Description == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
	}
	if math.IsNaN(input.Amount) || math.IsInf(input.Amount, 0) || input.Amount <= 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be a positive number")
	}
	if !input.Category.IsValid() {
		return apperrors.WithMessage(apperrors.ErrInvalidCategory, fmt.Sprintf("unknown category %q", input.Category))
	}
	if !validator.IsISODate(input.Date) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "date must be formatted as YYYY-MM-DD")
	}
	return nil
}

func normalizeNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*notes)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func expenseError(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return apperrors.ErrExpenseNotFound
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}
