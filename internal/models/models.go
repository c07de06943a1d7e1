package models

import "time"

// Expense represents a single spending record. Category is a free-text label
// copied from the category catalog at creation time, not a foreign key:
// renaming a Category never relabels past expenses.
type Expense struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"-"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Date        time.Time `json:"date"`
}

// Category is a named label in a user's catalog, unique per user. It doubles
// as the key budgets are attached to.
type Category struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"-"`
	Name   string `json:"name"`
}

// Budget caps monthly spending for one category. At most one budget exists
// per (user, category); creating a second one updates the existing limit.
type Budget struct {
	ID           int64   `json:"id"`
	UserID       int64   `json:"-"`
	CategoryID   int64   `json:"category"`
	CategoryName string  `json:"category_name"`
	Limit        float64 `json:"limit"`
}

// FinancialGoal is a savings target. CurrentAmount only ever grows, through
// explicit positive contributions.
type FinancialGoal struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"-"`
	Name          string    `json:"name"`
	TargetAmount  float64   `json:"targetAmount"`
	CurrentAmount float64   `json:"currentAmount"`
	Deadline      time.Time `json:"deadline"`
}

// User represents a user account.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session represents an authenticated API session.
type Session struct {
	Token     string    `json:"token"`
	UserID    int64     `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}
