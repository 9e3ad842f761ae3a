package models

import "time"

// DateLayout is the storage and wire format of an expense date.
const DateLayout = "2006-01-02"

// Expense is a single spending event.
type Expense struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" bson:"id" json:"id"`
	Description string    `gorm:"not null" bson:"description" json:"description"`
	Amount      float64   `gorm:"not null" bson:"amount" json:"amount"`
	Category    Category  `gorm:"not null;index" bson:"category" json:"category"`
	Date        string    `gorm:"type:varchar(10);not null;index" bson:"date" json:"date"`
	Notes       *string   `bson:"notes" json:"notes"`
	UserID      *int64    `gorm:"index" bson:"userId" json:"userId"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

// ExpenseInput carries the mutable fields of an expense for create and update.
type ExpenseInput struct {
	Description string
	Amount      float64
	Category    Category
	Date        string
	Notes       *string
	UserID      *int64
}
