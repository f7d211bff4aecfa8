package repository

import (
	"context"
	"database/sql"
	"fmt"

	"planera/internal/database"
	"planera/internal/models"
)

func ListTemplates(ctx context.Context, uow *database.UnitOfWork, userID int64) ([]models.Template, error) {
	rows, err := uow.Query(ctx,
		`SELECT id, user_id, title, description, duration, color, recurrence FROM templates WHERE user_id = ? ORDER BY id`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()
	templates := make([]models.Template, 0)
	for rows.Next() {
		var t models.Template
		var color sql.NullString
		var recurrence string
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Duration, &color, &recurrence); err != nil {
			return nil, err
		}
		t.Color = strPtr(color)
		t.Recurrence = models.Recurrence(recurrence)
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

func GetTemplate(ctx context.Context, uow *database.UnitOfWork, userID, id int64) (*models.Template, error) {
	var t models.Template
	var color sql.NullString
	var recurrence string
	err := uow.QueryRow(ctx,
		`SELECT id, user_id, title, description, duration, color, recurrence FROM templates WHERE id = ? AND user_id = ?`,
		id, userID).Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Duration, &color, &recurrence)
	if err != nil {
		return nil, notFound(err)
	}
	t.Color = strPtr(color)
	t.Recurrence = models.Recurrence(recurrence)
	return &t, nil
}

func CreateTemplate(ctx context.Context, uow *database.UnitOfWork, t *models.Template) error {
	id, err := uow.Insert(ctx,
		`INSERT INTO templates (user_id, title, description, duration, color, recurrence) VALUES (?, ?, ?, ?, ?, ?)`,
		t.UserID, t.Title, t.Description, t.Duration, nullStr(t.Color), string(t.Recurrence))
	if err != nil {
		return fmt.Errorf("create template: %w", err)
	}
	t.ID = id
	return nil
}

func UpdateTemplate(ctx context.Context, uow *database.UnitOfWork, t *models.Template) error {
	_, err := uow.Exec(ctx,
		`UPDATE templates SET title = ?, description = ?, duration = ?, color = ?, recurrence = ? WHERE id = ? AND user_id = ?`,
		t.Title, t.Description, t.Duration, nullStr(t.Color), string(t.Recurrence), t.ID, t.UserID)
	if err != nil {
		return fmt.Errorf("update template: %w", err)
	}
	return nil
}

func DeleteTemplate(ctx context.Context, uow *database.UnitOfWork, userID, id int64) error {
	res, err := uow.Exec(ctx, `DELETE FROM templates WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
