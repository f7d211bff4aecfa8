// Package repository holds the per-entity SQL, always scoped by owning user
// and always running on a caller-provided unit of work. "Not found" and
// "owned by someone else" are deliberately the same error so handlers cannot
// leak existence across users.
package repository

import (
	"database/sql"
	"errors"
	"time"

	"planera/internal/models"
)

// ErrNotFound covers both an absent row and a row owned by another user.
var ErrNotFound = errors.New("not found")

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}

func nullStr(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func strPtr(n sql.NullString) *string {
	if !n.Valid {
		return nil
	}
	s := n.String
	return &s
}

func nullDate(d *models.Date) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: d.ISO(), Valid: true}
}

func datePtr(n sql.NullString) (*models.Date, error) {
	if !n.Valid || n.String == "" {
		return nil, nil
	}
	d, err := models.ParseDate(n.String)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func nullID(p *int64) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *p, Valid: true}
}

func idPtr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}
