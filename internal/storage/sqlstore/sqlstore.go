// Package sqlstore implements storage.Store with GORM on postgres or sqlite.
package sqlstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"spendlog/internal/analytics"
	"spendlog/internal/models"
	"spendlog/internal/storage"
)

var _ storage.Store = (*Store)(nil)

type Store struct {
	db *gorm.DB
}

// New wraps an open connection whose schema is already migrated.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("username = ?", user.Username).Count(&count).Error; err != nil {
			return fmt.Errorf("check username: %w", err)
		}
		if count > 0 {
			return storage.ErrDuplicate
		}
		user.ID = 0
		if err := tx.Create(user).Error; err != nil {
			return translate(err)
		}
		return nil
	})
}

// ListExpenses pushes the filter into SQL and lets analytics.Evaluate settle
// ordering, so same-day rows come back in insertion order.
func (s *Store) ListExpenses(ctx context.Context, filter *models.ExpenseFilter) ([]models.Expense, error) {
	q := s.db.WithContext(ctx).Model(&models.Expense{})
	if filter != nil {
		if filter.Category != "" {
			q = q.Where("category = ?", filter.Category)
		}
		if filter.StartDate != "" {
			q = q.Where("date >= ?", analytics.DateOnly(filter.StartDate))
		}
		if filter.EndDate != "" {
			q = q.Where("date <= ?", analytics.DateOnly(filter.EndDate))
		}
	}

	var rows []models.Expense
	if err := q.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return analytics.Evaluate(rows, filter), nil
}

func (s *Store) GetExpense(ctx context.Context, id int64) (*models.Expense, error) {
	var e models.Expense
	if err := s.db.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, translate(err)
	}
	return &e, nil
}

func (s *Store) CreateExpense(ctx context.Context, expense *models.Expense) error {
	expense.ID = 0
	if err := s.db.WithContext(ctx).Create(expense).Error; err != nil {
		return fmt.Errorf("create expense: %w", err)
	}
	return nil
}

func (s *Store) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Expense
		if err := tx.First(&existing, expense.ID).Error; err != nil {
			return translate(err)
		}
		expense.CreatedAt = existing.CreatedAt
		if err := tx.Save(expense).Error; err != nil {
			return fmt.Errorf("update expense: %w", err)
		}
		return nil
	})
}

func (s *Store) DeleteExpense(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&models.Expense{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete expense: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return storage.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", storage.ErrDuplicate, err)
	default:
		return err
	}
}
