package repository

import (
	"context"
	"fmt"
	"time"

	"planera/internal/database"
	"planera/internal/models"
)

func ListPasswordEntries(ctx context.Context, uow *database.UnitOfWork, userID int64) ([]models.PasswordEntry, error) {
	rows, err := uow.Query(ctx,
		`SELECT id, user_id, name, password, created_at FROM password_entries WHERE user_id = ? ORDER BY created_at DESC, id DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list password entries: %w", err)
	}
	defer rows.Close()
	entries := make([]models.PasswordEntry, 0)
	for rows.Next() {
		var e models.PasswordEntry
		var createdAt string
		if err := rows.Scan(&e.ID, &e.UserID, &e.Name, &e.Password, &createdAt); err != nil {
			return nil, err
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func GetPasswordEntry(ctx context.Context, uow *database.UnitOfWork, userID, id int64) (*models.PasswordEntry, error) {
	var e models.PasswordEntry
	var createdAt string
	err := uow.QueryRow(ctx,
		`SELECT id, user_id, name, password, created_at FROM password_entries WHERE id = ? AND user_id = ?`,
		id, userID).Scan(&e.ID, &e.UserID, &e.Name, &e.Password, &createdAt)
	if err != nil {
		return nil, notFound(err)
	}
	e.CreatedAt = parseTime(createdAt)
	return &e, nil
}

func CreatePasswordEntry(ctx context.Context, uow *database.UnitOfWork, e *models.PasswordEntry) error {
	e.CreatedAt = time.Now().UTC()
	id, err := uow.Insert(ctx,
		`INSERT INTO password_entries (user_id, name, password, created_at) VALUES (?, ?, ?, ?)`,
		e.UserID, e.Name, e.Password, formatTime(e.CreatedAt))
	if err != nil {
		return fmt.Errorf("create password entry: %w", err)
	}
	e.ID = id
	return nil
}

func UpdatePasswordEntry(ctx context.Context, uow *database.UnitOfWork, e *models.PasswordEntry) error {
	_, err := uow.Exec(ctx,
		`UPDATE password_entries SET name = ?, password = ? WHERE id = ? AND user_id = ?`,
		e.Name, e.Password, e.ID, e.UserID)
	if err != nil {
		return fmt.Errorf("update password entry: %w", err)
	}
	return nil
}

func DeletePasswordEntry(ctx context.Context, uow *database.UnitOfWork, userID, id int64) error {
	res, err := uow.Exec(ctx, `DELETE FROM password_entries WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete password entry: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
