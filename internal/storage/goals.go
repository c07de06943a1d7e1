package storage

import (
	"time"

	"finance-tracker/internal/models"
)

// CreateGoal adds a savings goal for the user.
func (db *DB) CreateGoal(userID int64, name string, target, current float64, deadline time.Time) (*models.FinancialGoal, error) {
	result, err := db.conn.Exec(
		"INSERT INTO goals (user_id, name, target_amount, current_amount, deadline) VALUES (?, ?, ?, ?, ?)",
		userID, name, target, current, deadline,
	)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return db.GetGoal(userID, id)
}

// GetGoal retrieves a goal owned by the user.
func (db *DB) GetGoal(userID, id int64) (*models.FinancialGoal, error) {
	row := db.conn.QueryRow(
		"SELECT id, user_id, name, target_amount, current_amount, deadline FROM goals WHERE id = ? AND user_id = ?",
		id, userID,
	)

	var g models.FinancialGoal
	if err := row.Scan(&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.CurrentAmount, &g.Deadline); err != nil {
		return nil, err
	}
	return &g, nil
}

// ListGoals retrieves all of the user's goals, nearest deadline first.
func (db *DB) ListGoals(userID int64) ([]models.FinancialGoal, error) {
	rows, err := db.conn.Query(
		"SELECT id, user_id, name, target_amount, current_amount, deadline FROM goals WHERE user_id = ? ORDER BY deadline, id",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []models.FinancialGoal
	for rows.Next() {
		var g models.FinancialGoal
		if err := rows.Scan(&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.CurrentAmount, &g.Deadline); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}

	return goals, rows.Err()
}

// UpdateGoal updates a goal's name, target and deadline.
func (db *DB) UpdateGoal(g *models.FinancialGoal) error {
	_, err := db.conn.Exec(
		"UPDATE goals SET name = ?, target_amount = ?, deadline = ? WHERE id = ? AND user_id = ?",
		g.Name, g.TargetAmount, g.Deadline, g.ID, g.UserID,
	)
	return err
}

// DeleteGoal removes a goal owned by the user.
func (db *DB) DeleteGoal(userID, id int64) error {
	_, err := db.conn.Exec("DELETE FROM goals WHERE id = ? AND user_id = ?", id, userID)
	return err
}

// AddGoalContribution increases a goal's saved amount. The amount must have
// been validated as positive by the caller; the stored amount never shrinks.
func (db *DB) AddGoalContribution(userID, id int64, amount float64) (*models.FinancialGoal, error) {
	_, err := db.conn.Exec(
		"UPDATE goals SET current_amount = current_amount + ? WHERE id = ? AND user_id = ?",
		amount, id, userID,
	)
	if err != nil {
		return nil, err
	}
	return db.GetGoal(userID, id)
}
