package models

import "time"

// User represents an account that expenses may reference.
type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" bson:"id" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" bson:"username" json:"username"`
	Password  string    `gorm:"not null" bson:"password" json:"-"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
