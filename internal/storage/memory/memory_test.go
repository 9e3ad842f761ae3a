package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"spendlog/internal/models"
	"spendlog/internal/storage"
)

type MemoryStoreTestSuite struct {
	suite.Suite
	ctx   context.Context
	store *Store
}

func (suite *MemoryStoreTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = New()
	fixed := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	suite.store.now = func() time.Time { return fixed }
}

func (suite *MemoryStoreTestSuite) create(description string, amount float64, category models.Category, date string) models.Expense {
	e := &models.Expense{Description: description, Amount: amount, Category: category, Date: date}
	require.NoError(suite.T(), suite.store.CreateExpense(suite.ctx, e))
	return *e
}

func (suite *MemoryStoreTestSuite) TestCreateExpenseAssignsIncreasingIDs() {
	a := suite.create("Lunch", 12.5, models.CategoryFood, "2024-01-01")
	b := suite.create("Taxi", 20, models.CategoryTransportation, "2024-01-02")

	assert.Equal(suite.T(), int64(1), a.ID)
	assert.Equal(suite.T(), int64(2), b.ID)
	assert.Equal(suite.T(), time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), a.CreatedAt)
}

func (suite *MemoryStoreTestSuite) TestIDsAreNotReusedAfterDelete() {
	a := suite.create("Lunch", 12.5, models.CategoryFood, "2024-01-01")
	require.NoError(suite.T(), suite.store.DeleteExpense(suite.ctx, a.ID))

	b := suite.create("Dinner", 30, models.CategoryFood, "2024-01-01")
	assert.Equal(suite.T(), int64(2), b.ID)
}

func (suite *MemoryStoreTestSuite) TestGetExpense() {
	created := suite.create("Lunch", 12.5, models.CategoryFood, "2024-01-01")

	got, err := suite.store.GetExpense(suite.ctx, created.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), created, *got)

	_, err = suite.store.GetExpense(suite.ctx, 999)
	assert.ErrorIs(suite.T(), err, storage.ErrNotFound)
}

func (suite *MemoryStoreTestSuite) TestGetExpenseReturnsCopy() {
	created := suite.create("Lunch", 12.5, models.CategoryFood, "2024-01-01")

	got, err := suite.store.GetExpense(suite.ctx, created.ID)
	require.NoError(suite.T(), err)
	got.Amount = 1000

	again, err := suite.store.GetExpense(suite.ctx, created.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 12.5, again.Amount)
}

func (suite *MemoryStoreTestSuite) TestListExpensesFiltersAndSorts() {
	suite.create("A", 100, models.CategoryFood, "2024-01-01")
	suite.create("B", 50, models.CategoryFood, "2024-01-02")
	suite.create("C", 200, models.CategoryTravel, "2024-01-03")

	all, err := suite.store.ListExpenses(suite.ctx, nil)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), all, 3)
	assert.Equal(suite.T(), "C", all[0].Description)
	assert.Equal(suite.T(), "A", all[2].Description)

	food, err := suite.store.ListExpenses(suite.ctx, &models.ExpenseFilter{Category: "Food", StartDate: "2024-01-02"})
	require.NoError(suite.T(), err)
	require.Len(suite.T(), food, 1)
	assert.Equal(suite.T(), "B", food[0].Description)
}

func (suite *MemoryStoreTestSuite) TestUpdateExpenseKeepsCreatedAt() {
	created := suite.create("Lunch", 12.5, models.CategoryFood, "2024-01-01")
	suite.store.now = func() time.Time { return time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC) }

	update := &models.Expense{ID: created.ID, Description: "Brunch", Amount: 18, Category: models.CategoryFood, Date: "2024-01-02"}
	require.NoError(suite.T(), suite.store.UpdateExpense(suite.ctx, update))
	assert.Equal(suite.T(), created.CreatedAt, update.CreatedAt)

	got, err := suite.store.GetExpense(suite.ctx, created.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Brunch", got.Description)
	assert.Equal(suite.T(), created.CreatedAt, got.CreatedAt)
}

func (suite *MemoryStoreTestSuite) TestUpdateMissingExpense() {
	err := suite.store.UpdateExpense(suite.ctx, &models.Expense{ID: 42})
	assert.ErrorIs(suite.T(), err, storage.ErrNotFound)
}

func (suite *MemoryStoreTestSuite) TestDeleteExpense() {
	created := suite.create("Lunch", 12.5, models.CategoryFood, "2024-01-01")

	require.NoError(suite.T(), suite.store.DeleteExpense(suite.ctx, created.ID))
	assert.ErrorIs(suite.T(), suite.store.DeleteExpense(suite.ctx, created.ID), storage.ErrNotFound)

	all, err := suite.store.ListExpenses(suite.ctx, nil)
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), all)
}

func (suite *MemoryStoreTestSuite) TestUsers() {
	u := &models.User{Username: "alice", Password: "hash"}
	require.NoError(suite.T(), suite.store.CreateUser(suite.ctx, u))
	assert.Equal(suite.T(), int64(1), u.ID)

	err := suite.store.CreateUser(suite.ctx, &models.User{Username: "alice", Password: "other"})
	assert.ErrorIs(suite.T(), err, storage.ErrDuplicate)

	byID, err := suite.store.GetUser(suite.ctx, u.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "alice", byID.Username)

	byName, err := suite.store.GetUserByUsername(suite.ctx, "alice")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), u.ID, byName.ID)

	_, err = suite.store.GetUser(suite.ctx, 99)
	assert.ErrorIs(suite.T(), err, storage.ErrNotFound)
	_, err = suite.store.GetUserByUsername(suite.ctx, "bob")
	assert.ErrorIs(suite.T(), err, storage.ErrNotFound)
}

func (suite *MemoryStoreTestSuite) TestSeed() {
	require.NoError(suite.T(), storage.Seed(suite.ctx, suite.store))
	// Seeding twice must not duplicate anything.
	require.NoError(suite.T(), storage.Seed(suite.ctx, suite.store))

	user, err := suite.store.GetUserByUsername(suite.ctx, storage.SampleUsername)
	require.NoError(suite.T(), err)
	assert.NotEqual(suite.T(), storage.SamplePassword, user.Password, "password must be hashed")

	all, err := suite.store.ListExpenses(suite.ctx, nil)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), all, storage.SampleExpenseCount)
	assert.Equal(suite.T(), "2023-08-28", all[0].Date)
	for _, e := range all {
		require.NotNil(suite.T(), e.UserID)
		assert.Equal(suite.T(), user.ID, *e.UserID)
	}
}

func (suite *MemoryStoreTestSuite) TestConcurrentWrites() {
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e := &models.Expense{Description: "x", Amount: 1, Category: models.CategoryOther, Date: "2024-01-01"}
			assert.NoError(suite.T(), suite.store.CreateExpense(suite.ctx, e))
		}()
	}
	wg.Wait()

	all, err := suite.store.ListExpenses(suite.ctx, nil)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), all, 50)

	seen := make(map[int64]bool)
	for _, e := range all {
		assert.False(suite.T(), seen[e.ID], "duplicate id %d", e.ID)
		seen[e.ID] = true
	}
}

func (suite *MemoryStoreTestSuite) TestPingAndClose() {
	assert.NoError(suite.T(), suite.store.Ping(suite.ctx))
	assert.NoError(suite.T(), suite.store.Close())
}

func TestMemoryStoreTestSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreTestSuite))
}
