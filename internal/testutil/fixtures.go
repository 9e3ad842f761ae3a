package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"spendlog/internal/models"
)

// TestPassword is the plain-text password of users made by CreateTestUser.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique username.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateTestUserWithUsername(t, db, fmt.Sprintf("user%d", nextID()))
}

// CreateTestUserWithUsername creates a user with the given username.
func CreateTestUserWithUsername(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username: username,
		Password: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestExpense creates an expense with a generated description.
func CreateTestExpense(t *testing.T, db *gorm.DB, amount float64, category models.Category, date string) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		Description: fmt.Sprintf("Test expense %d", nextID()),
		Amount:      amount,
		Category:    category,
		Date:        date,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// CreateTestUserExpense creates an expense owned by userID.
func CreateTestUserExpense(t *testing.T, db *gorm.DB, userID int64, amount float64, category models.Category, date string) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		Description: fmt.Sprintf("Test expense %d", nextID()),
		Amount:      amount,
		Category:    category,
		Date:        date,
		UserID:      &userID,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}
