package storage

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"spendlog/internal/models"
)

// Sample account created by Seed.
const (
	SampleUsername = "testuser"
	SamplePassword = "password"
)

type sampleExpense struct {
	description string
	amount      float64
	category    models.Category
	date        string
	notes       string
}

var sampleExpenses = []sampleExpense{
	{"Grocery shopping", 85.32, models.CategoryFood, "2023-08-28", "Weekly groceries from Trader Joe's"},
	{"Rent payment", 1200.00, models.CategoryHousing, "2023-08-01", "Monthly rent"},
	{"Uber ride", 24.50, models.CategoryTransportation, "2023-08-15", "Airport trip"},
	{"Netflix subscription", 15.99, models.CategoryEntertainment, "2023-08-10", "Monthly subscription"},
	{"New headphones", 249.99, models.CategoryShopping, "2023-08-20", "Sony WH-1000XM4"},
	{"Coffee shop", 5.75, models.CategoryFood, "2023-08-25", "Morning coffee and pastry"},
	{"Electric bill", 87.23, models.CategoryUtilities, "2023-08-05", "Monthly electric"},
	{"Dinner with friends", 65.80, models.CategoryFood, "2023-08-18", "Italian restaurant"},
}

// SampleExpenseCount is the number of expenses Seed inserts.
var SampleExpenseCount = len(sampleExpenses)

// Seed inserts the sample user and its expenses into store.
// It is a no-op when the sample user already exists.
func Seed(ctx context.Context, store Store) error {
	if _, err := store.GetUserByUsername(ctx, SampleUsername); err == nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(SamplePassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash sample password: %w", err)
	}
	user := &models.User{Username: SampleUsername, Password: string(hash)}
	if err := store.CreateUser(ctx, user); err != nil {
		return fmt.Errorf("create sample user: %w", err)
	}

	for _, s := range sampleExpenses {
		notes := s.notes
		userID := user.ID
		e := &models.Expense{
			Description: s.description,
			Amount:      s.amount,
			Category:    s.category,
			Date:        s.date,
			Notes:       &notes,
			UserID:      &userID,
		}
		if err := store.CreateExpense(ctx, e); err != nil {
			return fmt.Errorf("create sample expense %q: %w", s.description, err)
		}
	}
	return nil
}
