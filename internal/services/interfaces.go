package services

import (
	"context"

	"spendlog/internal/models"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(ctx context.Context, username, password string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(ctx context.Context, username, password string) (*models.User, error)
}

// ExpenseServicer defines the contract for expense-related business logic.
type ExpenseServicer interface {
	ListExpenses(ctx context.Context, filter *models.ExpenseFilter) ([]models.Expense, error)
	RecentExpenses(ctx context.Context, limit int) ([]models.Expense, error)
	GetExpense(ctx context.Context, id int64) (*models.Expense, error)
	CreateExpense(ctx context.Context, input models.ExpenseInput) (*models.Expense, error)
	UpdateExpense(ctx context.Context, id int64, input models.ExpenseInput) (*models.Expense, error)
	DeleteExpense(ctx context.Context, id int64) error
	GetStatistics(ctx context.Context, filter *models.ExpenseFilter) (*models.Statistics, error)
}
