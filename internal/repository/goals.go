package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"planera/internal/database"
	"planera/internal/models"
)

const goalSelect = `
SELECT g.id, g.user_id, g.description, g.category_id, c.name, g.completed, g.due_date, g.created_at, g.sort_order
FROM goals g LEFT JOIN categories c ON c.id = g.category_id`

func ListGoals(ctx context.Context, uow *database.UnitOfWork, userID int64) ([]models.Goal, error) {
	rows, err := uow.Query(ctx, goalSelect+` WHERE g.user_id = ? ORDER BY g.sort_order ASC, g.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()
	goals := make([]models.Goal, 0)
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, *g)
	}
	return goals, rows.Err()
}

func GetGoal(ctx context.Context, uow *database.UnitOfWork, userID, id int64) (*models.Goal, error) {
	g, err := scanGoal(uow.QueryRow(ctx, goalSelect+` WHERE g.id = ? AND g.user_id = ?`, id, userID))
	if err != nil {
		return nil, notFound(err)
	}
	return g, nil
}

func CreateGoal(ctx context.Context, uow *database.UnitOfWork, g *models.Goal) error {
	id, err := uow.Insert(ctx,
		`INSERT INTO goals (user_id, description, category_id, completed, due_date, created_at, sort_order)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		g.UserID, g.Description, nullID(g.CategoryID), g.Completed, nullDate(g.DueDate),
		formatTime(g.CreatedAt), g.Order)
	if err != nil {
		return fmt.Errorf("create goal: %w", err)
	}
	g.ID = id
	return nil
}

func UpdateGoal(ctx context.Context, uow *database.UnitOfWork, g *models.Goal) error {
	_, err := uow.Exec(ctx,
		`UPDATE goals SET description = ?, category_id = ?, completed = ?, due_date = ?, sort_order = ? WHERE id = ? AND user_id = ?`,
		g.Description, nullID(g.CategoryID), g.Completed, nullDate(g.DueDate), g.Order, g.ID, g.UserID)
	if err != nil {
		return fmt.Errorf("update goal: %w", err)
	}
	return nil
}

func DeleteGoal(ctx context.Context, uow *database.UnitOfWork, userID, id int64) error {
	res, err := uow.Exec(ctx, `DELETE FROM goals WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// MaxGoalOrder returns the highest sort order among the user's goals, 0 when
// there are none.
func MaxGoalOrder(ctx context.Context, uow *database.UnitOfWork, userID int64) (int, error) {
	var max sql.NullInt64
	err := uow.QueryRow(ctx, `SELECT MAX(sort_order) FROM goals WHERE user_id = ?`, userID).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("max goal order: %w", err)
	}
	return int(max.Int64), nil
}

// SetGoalOrder updates one goal's position; unknown ids are silently skipped.
func SetGoalOrder(ctx context.Context, uow *database.UnitOfWork, userID, id int64, order int) error {
	_, err := uow.Exec(ctx, `UPDATE goals SET sort_order = ? WHERE id = ? AND user_id = ?`, order, id, userID)
	if err != nil {
		return fmt.Errorf("set goal order: %w", err)
	}
	return nil
}

func scanGoal(row rowScanner) (*models.Goal, error) {
	var g models.Goal
	var categoryID sql.NullInt64
	var categoryName, dueDate sql.NullString
	var createdAt string
	if err := row.Scan(&g.ID, &g.UserID, &g.Description, &categoryID, &categoryName,
		&g.Completed, &dueDate, &createdAt, &g.Order); err != nil {
		return nil, err
	}
	g.CategoryID = idPtr(categoryID)
	g.CategoryName = strPtr(categoryName)
	var err error
	if g.DueDate, err = datePtr(dueDate); err != nil {
		return nil, fmt.Errorf("scan goal %d: %w", g.ID, err)
	}
	g.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("scan goal %d: %w", g.ID, err)
	}
	return &g, nil
}
