package storage

import "finance-tracker/internal/models"

// CreateCategory adds a category to the user's catalog.
func (db *DB) CreateCategory(userID int64, name string) (*models.Category, error) {
	result, err := db.conn.Exec(
		"INSERT INTO categories (user_id, name) VALUES (?, ?)",
		userID, name,
	)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return db.GetCategory(userID, id)
}

// GetCategory retrieves a category owned by the user.
func (db *DB) GetCategory(userID, id int64) (*models.Category, error) {
	row := db.conn.QueryRow(
		"SELECT id, user_id, name FROM categories WHERE id = ? AND user_id = ?",
		id, userID,
	)

	var c models.Category
	if err := row.Scan(&c.ID, &c.UserID, &c.Name); err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCategories retrieves the user's category catalog, alphabetically.
func (db *DB) ListCategories(userID int64) ([]models.Category, error) {
	rows, err := db.conn.Query(
		"SELECT id, user_id, name FROM categories WHERE user_id = ? ORDER BY name",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

// UpdateCategory renames a category in the catalog. Expenses carry the label
// they were created with, so past records keep the old name.
func (db *DB) UpdateCategory(c *models.Category) error {
	_, err := db.conn.Exec(
		"UPDATE categories SET name = ? WHERE id = ? AND user_id = ?",
		c.Name, c.ID, c.UserID,
	)
	return err
}

// DeleteCategory removes a category from the catalog. Budgets attached to it
// are removed by the foreign key cascade; expenses keep their label.
func (db *DB) DeleteCategory(userID, id int64) error {
	_, err := db.conn.Exec("DELETE FROM categories WHERE id = ? AND user_id = ?", id, userID)
	return err
}
