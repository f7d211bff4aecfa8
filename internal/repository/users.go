package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"planera/internal/database"
	"planera/internal/models"
)

// ErrUsernameTaken reports a registration against an existing username.
var ErrUsernameTaken = errors.New("username already exists")

func CreateUser(ctx context.Context, uow *database.UnitOfWork, username, passwordHash string) (*models.User, error) {
	var exists int
	err := uow.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE username = ?`, username).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if exists > 0 {
		return nil, ErrUsernameTaken
	}
	now := time.Now().UTC()
	id, err := uow.Insert(ctx,
		`INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)`,
		username, passwordHash, formatTime(now))
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &models.User{ID: id, Username: username, PasswordHash: passwordHash, CreatedAt: now}, nil
}

func GetUserByUsername(ctx context.Context, uow *database.UnitOfWork, username string) (*models.User, error) {
	return scanUser(uow.QueryRow(ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE username = ?`, username))
}

func GetUserByID(ctx context.Context, uow *database.UnitOfWork, id int64) (*models.User, error) {
	return scanUser(uow.QueryRow(ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE id = ?`, id))
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	var createdAt string
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &createdAt); err != nil {
		return nil, notFound(err)
	}
	u.CreatedAt = parseTime(createdAt)
	return &u, nil
}
