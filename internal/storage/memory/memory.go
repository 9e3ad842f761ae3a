// Package memory implements storage.Store in process memory. Data is lost
// when the process exits.
package memory

import (
	"context"
	"sync"
	"time"

	"spendlog/internal/analytics"
	"spendlog/internal/models"
	"spendlog/internal/storage"
)

var _ storage.Store = (*Store)(nil)

type Store struct {
	mu            sync.RWMutex
	users         map[int64]models.User
	expenses      []models.Expense // insertion order
	nextUserID    int64
	nextExpenseID int64
	now           func() time.Time
}

func New() *Store {
	return &Store{
		users:         make(map[int64]models.User),
		nextUserID:    1,
		nextExpenseID: 1,
		now:           time.Now,
	}
}

func (s *Store) GetUser(_ context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &u, nil
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *Store) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == user.Username {
			return storage.ErrDuplicate
		}
	}
	user.ID = s.nextUserID
	user.CreatedAt = s.now().UTC()
	s.nextUserID++
	s.users[user.ID] = *user
	return nil
}

// ListExpenses snapshots the records and runs them through analytics.Evaluate.
func (s *Store) ListExpenses(_ context.Context, filter *models.ExpenseFilter) ([]models.Expense, error) {
	s.mu.RLock()
	snapshot := make([]models.Expense, len(s.expenses))
	copy(snapshot, s.expenses)
	s.mu.RUnlock()

	return analytics.Evaluate(snapshot, filter), nil
}

func (s *Store) GetExpense(_ context.Context, id int64) (*models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return nil, storage.ErrNotFound
	}
	e := s.expenses[i]
	return &e, nil
}

func (s *Store) CreateExpense(_ context.Context, expense *models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	expense.ID = s.nextExpenseID
	expense.CreatedAt = s.now().UTC()
	s.nextExpenseID++
	s.expenses = append(s.expenses, *expense)
	return nil
}

func (s *Store) UpdateExpense(_ context.Context, expense *models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(expense.ID)
	if i < 0 {
		return storage.ErrNotFound
	}
	expense.CreatedAt = s.expenses[i].CreatedAt
	s.expenses[i] = *expense
	return nil
}

func (s *Store) DeleteExpense(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return storage.ErrNotFound
	}
	s.expenses = append(s.expenses[:i], s.expenses[i+1:]...)
	return nil
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close() error { return nil }

// indexOf must be called with mu held.
func (s *Store) indexOf(id int64) int {
	for i := range s.expenses {
		if s.expenses[i].ID == id {
			return i
		}
	}
	return -1
}
