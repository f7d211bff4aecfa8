package repository

import (
	"context"
	"database/sql"
	"fmt"

	"planera/internal/database"
	"planera/internal/models"
)

const eventColumns = `id, user_id, title, start_date, end_date, priority, tag, tag_color, completed, rrule_text`

// ListEvents returns events filtered by start date when a range is given.
func ListEvents(ctx context.Context, uow *database.UnitOfWork, userID int64, from, to *models.Date) ([]models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE user_id = ?`
	args := []interface{}{userID}
	if from != nil && to != nil {
		query += ` AND start_date >= ? AND start_date <= ?`
		args = append(args, from.ISO(), to.ISO())
	}
	query += ` ORDER BY start_date, id`
	rows, err := uow.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()
	events := make([]models.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range events {
		if events[i].Subtasks, err = listSubtasks(ctx, uow, events[i].ID); err != nil {
			return nil, err
		}
	}
	return events, nil
}

func GetEvent(ctx context.Context, uow *database.UnitOfWork, userID, id int64) (*models.Event, error) {
	e, err := scanEvent(uow.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = ? AND user_id = ?`, id, userID))
	if err != nil {
		return nil, notFound(err)
	}
	if e.Subtasks, err = listSubtasks(ctx, uow, e.ID); err != nil {
		return nil, err
	}
	return e, nil
}

func CreateEvent(ctx context.Context, uow *database.UnitOfWork, e *models.Event) error {
	id, err := uow.Insert(ctx,
		`INSERT INTO events (user_id, title, start_date, end_date, priority, tag, tag_color, completed, rrule_text)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.UserID, e.Title, e.Start.ISO(), nullDate(e.End), e.Priority,
		nullStr(e.Tag), nullStr(e.TagColor), e.Completed, nullStr(e.RRuleText))
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	e.ID = id
	return replaceSubtasks(ctx, uow, e)
}

// UpdateEvent writes the row back and replaces its subtasks wholesale.
func UpdateEvent(ctx context.Context, uow *database.UnitOfWork, e *models.Event) error {
	_, err := uow.Exec(ctx,
		`UPDATE events SET title = ?, start_date = ?, end_date = ?, priority = ?, tag = ?, tag_color = ?, completed = ?, rrule_text = ?
		 WHERE id = ? AND user_id = ?`,
		e.Title, e.Start.ISO(), nullDate(e.End), e.Priority, nullStr(e.Tag),
		nullStr(e.TagColor), e.Completed, nullStr(e.RRuleText), e.ID, e.UserID)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	return replaceSubtasks(ctx, uow, e)
}

func DeleteEvent(ctx context.Context, uow *database.UnitOfWork, userID, id int64) error {
	res, err := uow.Exec(ctx, `DELETE FROM events WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func replaceSubtasks(ctx context.Context, uow *database.UnitOfWork, e *models.Event) error {
	if _, err := uow.Exec(ctx, `DELETE FROM subtasks WHERE event_id = ?`, e.ID); err != nil {
		return fmt.Errorf("clear subtasks: %w", err)
	}
	for i := range e.Subtasks {
		st := &e.Subtasks[i]
		st.EventID = e.ID
		st.Order = i
		id, err := uow.Insert(ctx,
			`INSERT INTO subtasks (event_id, text, done, sort_order) VALUES (?, ?, ?, ?)`,
			st.EventID, st.Text, st.Done, st.Order)
		if err != nil {
			return fmt.Errorf("create subtask: %w", err)
		}
		st.ID = id
	}
	return nil
}

func listSubtasks(ctx context.Context, uow *database.UnitOfWork, eventID int64) ([]models.Subtask, error) {
	rows, err := uow.Query(ctx,
		`SELECT id, event_id, text, done, sort_order FROM subtasks WHERE event_id = ? ORDER BY sort_order, id`, eventID)
	if err != nil {
		return nil, fmt.Errorf("list subtasks: %w", err)
	}
	defer rows.Close()
	subtasks := make([]models.Subtask, 0)
	for rows.Next() {
		var st models.Subtask
		if err := rows.Scan(&st.ID, &st.EventID, &st.Text, &st.Done, &st.Order); err != nil {
			return nil, err
		}
		subtasks = append(subtasks, st)
	}
	return subtasks, rows.Err()
}

func scanEvent(row rowScanner) (*models.Event, error) {
	var e models.Event
	var endDate, tag, tagColor, rrule sql.NullString
	if err := row.Scan(&e.ID, &e.UserID, &e.Title, &e.Start, &endDate, &e.Priority,
		&tag, &tagColor, &e.Completed, &rrule); err != nil {
		return nil, err
	}
	var err error
	if e.End, err = datePtr(endDate); err != nil {
		return nil, fmt.Errorf("scan event %d: %w", e.ID, err)
	}
	e.Tag = strPtr(tag)
	e.TagColor = strPtr(tagColor)
	e.RRuleText = strPtr(rrule)
	return &e, nil
}
