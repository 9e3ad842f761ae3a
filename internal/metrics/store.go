package metrics

import (
	"context"
	"errors"

	"spendlog/internal/models"
	"spendlog/internal/storage"
)

type instrumentedStore struct {
	next    storage.Store
	backend string
	m       *Metrics
}

var _ storage.Store = (*instrumentedStore)(nil)

// InstrumentStore wraps store so every call increments
// spendlog_store_operations_total.
func (m *Metrics) InstrumentStore(store storage.Store, backend string) storage.Store {
	return &instrumentedStore{next: store, backend: backend, m: m}
}

func (s *instrumentedStore) observe(op string, err error) {
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, storage.ErrNotFound):
		result = "not_found"
	case errors.Is(err, storage.ErrDuplicate):
		result = "duplicate"
	default:
		result = "error"
	}
	s.m.storeOps.WithLabelValues(s.backend, op, result).Inc()
}

func (s *instrumentedStore) GetUser(ctx context.Context, id int64) (*models.User, error) {
	u, err := s.next.GetUser(ctx, id)
	s.observe("get_user", err)
	return u, err
}

func (s *instrumentedStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	u, err := s.next.GetUserByUsername(ctx, username)
	s.observe("get_user_by_username", err)
	return u, err
}

func (s *instrumentedStore) CreateUser(ctx context.Context, user *models.User) error {
	err := s.next.CreateUser(ctx, user)
	s.observe("create_user", err)
	return err
}

func (s *instrumentedStore) ListExpenses(ctx context.Context, filter *models.ExpenseFilter) ([]models.Expense, error) {
	out, err := s.next.ListExpenses(ctx, filter)
	s.observe("list_expenses", err)
	return out, err
}

func (s *instrumentedStore) GetExpense(ctx context.Context, id int64) (*models.Expense, error) {
	e, err := s.next.GetExpense(ctx, id)
	s.observe("get_expense", err)
	return e, err
}

func (s *instrumentedStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	err := s.next.CreateExpense(ctx, expense)
	s.observe("create_expense", err)
	return err
}

func (s *instrumentedStore) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	err := s.next.UpdateExpense(ctx, expense)
	s.observe("update_expense", err)
	return err
}

func (s *instrumentedStore) DeleteExpense(ctx context.Context, id int64) error {
	err := s.next.DeleteExpense(ctx, id)
	s.observe("delete_expense", err)
	return err
}

func (s *instrumentedStore) Ping(ctx context.Context) error {
	err := s.next.Ping(ctx)
	s.observe("ping", err)
	return err
}

func (s *instrumentedStore) Close() error {
	return s.next.Close()
}
