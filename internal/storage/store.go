// Package storage defines the persistence contract shared by every backend.
package storage

import (
	"context"
	"errors"

	"spendlog/internal/models"
)

var (
	// ErrNotFound is returned when a record with the requested key does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique key is already taken.
	ErrDuplicate = errors.New("duplicate record")
)

// Store is the persistence contract for users and expenses.
// Implementations are safe for concurrent use.
type Store interface {
	// GetUser returns ErrNotFound when no user has the id.
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	// CreateUser assigns user.ID and user.CreatedAt. A taken username yields ErrDuplicate.
	CreateUser(ctx context.Context, user *models.User) error

	// ListExpenses returns the expenses matching filter, newest first, with the
	// same matching rules as analytics.Evaluate. A nil filter returns everything.
	ListExpenses(ctx context.Context, filter *models.ExpenseFilter) ([]models.Expense, error)
	GetExpense(ctx context.Context, id int64) (*models.Expense, error)
	// CreateExpense assigns expense.ID and expense.CreatedAt.
	CreateExpense(ctx context.Context, expense *models.Expense) error
	// UpdateExpense replaces the mutable fields of an existing expense. ID and
	// CreatedAt of the stored record are kept and copied back into expense.
	UpdateExpense(ctx context.Context, expense *models.Expense) error
	DeleteExpense(ctx context.Context, id int64) error

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
	// Close releases any resources held by the store.
	Close() error
}
