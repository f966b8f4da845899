package models

import "time"

// MaxExpenseAmount is the upper bound for a single expense.
const MaxExpenseAmount = 1_000_000

// MaxDescriptionLength caps the free-text description.
const MaxDescriptionLength = 200

// Expense represents a single spending record owned by one user.
// Ownership is immutable after creation; every query is scoped by user_id.
type Expense struct {
	Base
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Category    Category  `gorm:"size:50;not null" json:"category"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Description string    `gorm:"size:200" json:"description"`
	Date        time.Time `gorm:"not null;index" json:"date"`
}
