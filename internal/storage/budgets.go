package storage

import "finance-tracker/internal/models"

// UpsertBudget creates a budget for a category, or updates the limit if the
// user already has one for that category. Returns the stored budget and
// whether it was newly created.
func (db *DB) UpsertBudget(userID, categoryID int64, limit float64) (*models.Budget, bool, error) {
	var existingID int64
	err := db.conn.QueryRow(
		"SELECT id FROM budgets WHERE user_id = ? AND category_id = ?",
		userID, categoryID,
	).Scan(&existingID)
	if err == nil {
		_, err = db.conn.Exec(
			"UPDATE budgets SET limit_amount = ? WHERE id = ?",
			limit, existingID,
		)
		if err != nil {
			return nil, false, err
		}
		b, err := db.GetBudget(userID, existingID)
		return b, false, err
	}

	result, err := db.conn.Exec(
		"INSERT INTO budgets (user_id, category_id, limit_amount) VALUES (?, ?, ?)",
		userID, categoryID, limit,
	)
	if err != nil {
		return nil, false, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, false, err
	}
	b, err := db.GetBudget(userID, id)
	return b, true, err
}

// GetBudget retrieves a budget owned by the user, with its category name.
func (db *DB) GetBudget(userID, id int64) (*models.Budget, error) {
	row := db.conn.QueryRow(`
		SELECT b.id, b.user_id, b.category_id, c.name, b.limit_amount
		FROM budgets b
		JOIN categories c ON b.category_id = c.id
		WHERE b.id = ? AND b.user_id = ?
	`, id, userID)

	var b models.Budget
	if err := row.Scan(&b.ID, &b.UserID, &b.CategoryID, &b.CategoryName, &b.Limit); err != nil {
		return nil, err
	}
	return &b, nil
}

// ListBudgets retrieves the user's budgets with category names.
func (db *DB) ListBudgets(userID int64) ([]models.Budget, error) {
	rows, err := db.conn.Query(`
		SELECT b.id, b.user_id, b.category_id, c.name, b.limit_amount
		FROM budgets b
		JOIN categories c ON b.category_id = c.id
		WHERE b.user_id = ?
		ORDER BY c.name
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var budgets []models.Budget
	for rows.Next() {
		var b models.Budget
		if err := rows.Scan(&b.ID, &b.UserID, &b.CategoryID, &b.CategoryName, &b.Limit); err != nil {
			return nil, err
		}
		budgets = append(budgets, b)
	}

	return budgets, rows.Err()
}

// UpdateBudgetLimit sets a new limit on an existing budget.
func (db *DB) UpdateBudgetLimit(userID, id int64, limit float64) error {
	_, err := db.conn.Exec(
		"UPDATE budgets SET limit_amount = ? WHERE id = ? AND user_id = ?",
		limit, id, userID,
	)
	return err
}

// DeleteBudget removes a budget owned by the user.
func (db *DB) DeleteBudget(userID, id int64) error {
	_, err := db.conn.Exec("DELETE FROM budgets WHERE id = ? AND user_id = ?", id, userID)
	return err
}
