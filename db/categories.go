package db

import (
	"database/sql"

	"github.com/dhafinr/dompetku/backend/models"
)

// GetCategories возвращает категории пользователя, при необходимости отфильтрованные
// по типу ('income' или 'expense').
func (s *Storage) GetCategories(userID int, typeFilter string) ([]models.Category, error) {
	query := "SELECT id, user_id, name, type FROM categories WHERE user_id = $1"
	args := []interface{}{userID}
	if typeFilter != "" {
		query += " AND type = $2"
		args = append(args, typeFilter)
	}
	query += " ORDER BY id"

	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories = []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Type); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *Storage) GetCategory(userID, id int) (*models.Category, error) {
	var c models.Category
	err := s.DB.QueryRow(
		"SELECT id, user_id, name, type FROM categories WHERE id = $1 AND user_id = $2",
		id, userID,
	).Scan(&c.ID, &c.UserID, &c.Name, &c.Type)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Storage) CreateCategory(userID int, input *models.CreateCategory) (*models.Category, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	category := &models.Category{UserID: userID, Name: input.Name, Type: input.Type}
	err := s.DB.QueryRow(
		"INSERT INTO categories (user_id, name, type) VALUES ($1, $2, $3) RETURNING id",
		userID, input.Name, input.Type,
	).Scan(&category.ID)
	if err != nil {
		return nil, err
	}
	return category, nil
}

func (s *Storage) UpdateCategory(userID, id int, input *models.CreateCategory) (*models.Category, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var owned int
	err = tx.QueryRow(
		"SELECT id FROM categories WHERE id = $1 AND user_id = $2 FOR UPDATE",
		id, userID,
	).Scan(&owned)
	if err == sql.ErrNoRows {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec("UPDATE categories SET name = $1, type = $2 WHERE id = $3", input.Name, input.Type, id)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &models.Category{ID: id, UserID: userID, Name: input.Name, Type: input.Type}, nil
}

// DeleteCategory: владение проверяется до удаления; категория, на которую
// ссылаются транзакции, остаётся на месте.
func (s *Storage) DeleteCategory(userID, id int) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var owned int
	err = tx.QueryRow(
		"SELECT id FROM categories WHERE id = $1 AND user_id = $2 FOR UPDATE",
		id, userID,
	).Scan(&owned)
	if err == sql.ErrNoRows {
		return ErrCategoryNotFound
	}
	if err != nil {
		return err
	}

	if _, err := tx.Exec("DELETE FROM categories WHERE id = $1", id); err != nil {
		if isForeignKeyViolation(err) {
			return ErrCategoryInUse
		}
		return err
	}
	return tx.Commit()
}
