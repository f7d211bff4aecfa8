package repository

import (
	"context"
	"database/sql"
	"fmt"

	"planera/internal/database"
	"planera/internal/models"
)

const scheduleTaskColumns = `id, user_id, title, description, date, end_date, start_hour, duration, completed, in_progress, color, recurrence`

// ListScheduleTasksThrough returns the user's definitions anchored on or
// before end (the window expander's pre-filter: anything anchored later
// cannot produce an occurrence inside the window).
func ListScheduleTasksThrough(ctx context.Context, uow *database.UnitOfWork, userID int64, end models.Date) ([]models.ScheduleTask, error) {
	rows, err := uow.Query(ctx,
		`SELECT `+scheduleTaskColumns+` FROM schedule_tasks WHERE user_id = ? AND date <= ? ORDER BY id`,
		userID, end.ISO())
	if err != nil {
		return nil, fmt.Errorf("list schedule tasks: %w", err)
	}
	defer rows.Close()
	var tasks []models.ScheduleTask
	for rows.Next() {
		t, err := scanScheduleTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func GetScheduleTask(ctx context.Context, uow *database.UnitOfWork, userID, id int64) (*models.ScheduleTask, error) {
	row := uow.QueryRow(ctx,
		`SELECT `+scheduleTaskColumns+` FROM schedule_tasks WHERE id = ? AND user_id = ?`, id, userID)
	t, err := scanScheduleTask(row)
	if err != nil {
		return nil, notFound(err)
	}
	return t, nil
}

func CreateScheduleTask(ctx context.Context, uow *database.UnitOfWork, t *models.ScheduleTask) error {
	id, err := uow.Insert(ctx,
		`INSERT INTO schedule_tasks (user_id, title, description, date, end_date, start_hour, duration, completed, in_progress, color, recurrence)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.UserID, t.Title, t.Description, t.Date.ISO(), nullDate(t.EndDate),
		t.StartHour, t.Duration, t.Completed, t.InProgress, nullStr(t.Color), string(t.Recurrence))
	if err != nil {
		return fmt.Errorf("create schedule task: %w", err)
	}
	t.ID = id
	return nil
}

// UpdateScheduleTask writes the full row back (last write wins).
func UpdateScheduleTask(ctx context.Context, uow *database.UnitOfWork, t *models.ScheduleTask) error {
	_, err := uow.Exec(ctx,
		`UPDATE schedule_tasks SET title = ?, description = ?, date = ?, end_date = ?, start_hour = ?, duration = ?, completed = ?, in_progress = ?, color = ?, recurrence = ?
		 WHERE id = ? AND user_id = ?`,
		t.Title, t.Description, t.Date.ISO(), nullDate(t.EndDate), t.StartHour, t.Duration,
		t.Completed, t.InProgress, nullStr(t.Color), string(t.Recurrence), t.ID, t.UserID)
	if err != nil {
		return fmt.Errorf("update schedule task: %w", err)
	}
	return nil
}

func DeleteScheduleTask(ctx context.Context, uow *database.UnitOfWork, userID, id int64) error {
	res, err := uow.Exec(ctx, `DELETE FROM schedule_tasks WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete schedule task: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanScheduleTask(row rowScanner) (*models.ScheduleTask, error) {
	var t models.ScheduleTask
	var endDate, color sql.NullString
	var recurrence string
	if err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Date, &endDate,
		&t.StartHour, &t.Duration, &t.Completed, &t.InProgress, &color, &recurrence); err != nil {
		return nil, err
	}
	var err error
	if t.EndDate, err = datePtr(endDate); err != nil {
		return nil, fmt.Errorf("scan schedule task %d: %w", t.ID, err)
	}
	t.Color = strPtr(color)
	t.Recurrence = models.Recurrence(recurrence)
	return &t, nil
}
