package repository

import (
	"context"
	"fmt"

	"planera/internal/database"
	"planera/internal/models"
)

// CountEvents returns total and completed event counts for the dashboard.
func CountEvents(ctx context.Context, uow *database.UnitOfWork, userID int64) (total, completed int, err error) {
	err = uow.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(CASE WHEN completed THEN 1 ELSE 0 END), 0) FROM events WHERE user_id = ?`,
		userID).Scan(&total, &completed)
	if err != nil {
		return 0, 0, fmt.Errorf("count events: %w", err)
	}
	return total, completed, nil
}

// CountGoals returns total and completed goal counts.
func CountGoals(ctx context.Context, uow *database.UnitOfWork, userID int64) (total, completed int, err error) {
	err = uow.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(CASE WHEN completed THEN 1 ELSE 0 END), 0) FROM goals WHERE user_id = ?`,
		userID).Scan(&total, &completed)
	if err != nil {
		return 0, 0, fmt.Errorf("count goals: %w", err)
	}
	return total, completed, nil
}

// CountUpcomingEvents counts events starting on or after from.
func CountUpcomingEvents(ctx context.Context, uow *database.UnitOfWork, userID int64, from models.Date) (int, error) {
	var n int
	err := uow.QueryRow(ctx,
		`SELECT COUNT(*) FROM events WHERE user_id = ? AND start_date >= ?`, userID, from.ISO()).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count upcoming events: %w", err)
	}
	return n, nil
}
