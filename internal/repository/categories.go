package repository

import (
	"context"
	"fmt"

	"planera/internal/database"
	"planera/internal/models"
)

func ListCategories(ctx context.Context, uow *database.UnitOfWork, userID int64) ([]models.Category, error) {
	rows, err := uow.Query(ctx, `SELECT id, user_id, name FROM categories WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	categories := make([]models.Category, 0)
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func GetCategory(ctx context.Context, uow *database.UnitOfWork, userID, id int64) (*models.Category, error) {
	var c models.Category
	err := uow.QueryRow(ctx, `SELECT id, user_id, name FROM categories WHERE id = ? AND user_id = ?`, id, userID).
		Scan(&c.ID, &c.UserID, &c.Name)
	if err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

// FindCategoryByName returns nil, nil when no category has that name.
func FindCategoryByName(ctx context.Context, uow *database.UnitOfWork, userID int64, name string) (*models.Category, error) {
	var c models.Category
	err := uow.QueryRow(ctx, `SELECT id, user_id, name FROM categories WHERE user_id = ? AND name = ?`, userID, name).
		Scan(&c.ID, &c.UserID, &c.Name)
	if err != nil {
		if notFound(err) == ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// FirstCategory returns the user's oldest category, or nil, nil when none.
func FirstCategory(ctx context.Context, uow *database.UnitOfWork, userID int64) (*models.Category, error) {
	var c models.Category
	err := uow.QueryRow(ctx, `SELECT id, user_id, name FROM categories WHERE user_id = ? ORDER BY id LIMIT 1`, userID).
		Scan(&c.ID, &c.UserID, &c.Name)
	if err != nil {
		if notFound(err) == ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func CreateCategory(ctx context.Context, uow *database.UnitOfWork, c *models.Category) error {
	id, err := uow.Insert(ctx, `INSERT INTO categories (user_id, name) VALUES (?, ?)`, c.UserID, c.Name)
	if err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	c.ID = id
	return nil
}

func UpdateCategory(ctx context.Context, uow *database.UnitOfWork, c *models.Category) error {
	_, err := uow.Exec(ctx, `UPDATE categories SET name = ? WHERE id = ? AND user_id = ?`, c.Name, c.ID, c.UserID)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

func DeleteCategory(ctx context.Context, uow *database.UnitOfWork, userID, id int64) error {
	res, err := uow.Exec(ctx, `DELETE FROM categories WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// CountGoalsInCategory backs the "category must be empty" delete rule.
func CountGoalsInCategory(ctx context.Context, uow *database.UnitOfWork, userID, categoryID int64) (int, error) {
	var n int
	err := uow.QueryRow(ctx, `SELECT COUNT(*) FROM goals WHERE category_id = ? AND user_id = ?`, categoryID, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count goals in category: %w", err)
	}
	return n, nil
}
