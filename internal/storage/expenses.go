package storage

import (
	"time"

	"finance-tracker/internal/models"
)

// CreateExpense inserts a new expense for a user and returns the stored record.
func (db *DB) CreateExpense(userID int64, amount float64, description, category string, date time.Time) (*models.Expense, error) {
	if date.IsZero() {
		date = time.Now()
	}
	result, err := db.conn.Exec(
		"INSERT INTO expenses (user_id, amount, description, category, date) VALUES (?, ?, ?, ?, ?)",
		userID, amount, description, category, date,
	)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return db.GetExpense(userID, id)
}

// GetExpense retrieves a single expense owned by the user.
func (db *DB) GetExpense(userID, id int64) (*models.Expense, error) {
	row := db.conn.QueryRow(
		"SELECT id, user_id, amount, description, category, date FROM expenses WHERE id = ? AND user_id = ?",
		id, userID,
	)

	var e models.Expense
	if err := row.Scan(&e.ID, &e.UserID, &e.Amount, &e.Description, &e.Category, &e.Date); err != nil {
		return nil, err
	}
	return &e, nil
}

// UpdateExpense updates an expense owned by the user.
func (db *DB) UpdateExpense(e *models.Expense) error {
	_, err := db.conn.Exec(
		"UPDATE expenses SET amount = ?, description = ?, category = ?, date = ? WHERE id = ? AND user_id = ?",
		e.Amount, e.Description, e.Category, e.Date, e.ID, e.UserID,
	)
	return err
}

// DeleteExpense removes an expense owned by the user.
func (db *DB) DeleteExpense(userID, id int64) error {
	_, err := db.conn.Exec("DELETE FROM expenses WHERE id = ? AND user_id = ?", id, userID)
	return err
}

// ListExpenses retrieves all of a user's expenses, newest first.
func (db *DB) ListExpenses(userID int64) ([]models.Expense, error) {
	rows, err := db.conn.Query(
		"SELECT id, user_id, amount, description, category, date FROM expenses WHERE user_id = ? ORDER BY date DESC, id DESC",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.UserID, &e.Amount, &e.Description, &e.Category, &e.Date); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}

	return expenses, rows.Err()
}

// SumCategorySince totals a user's spending on a category label from the
// given date onward.
func (db *DB) SumCategorySince(userID int64, category string, since time.Time) (float64, error) {
	var total float64
	err := db.conn.QueryRow(
		"SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE user_id = ? AND category = ? AND date >= ?",
		userID, category, since,
	).Scan(&total)
	return total, err
}

// SumCategory totals a user's all-time spending on a category label.
func (db *DB) SumCategory(userID int64, category string) (float64, error) {
	var total float64
	err := db.conn.QueryRow(
		"SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE user_id = ? AND category = ?",
		userID, category,
	).Scan(&total)
	return total, err
}
