package models

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrBadDate reports a date string that is not YYYY-MM-DD.
var ErrBadDate = errors.New("invalid date, expected YYYY-MM-DD")

// Date is a calendar day without a time component. It marshals to and from
// "YYYY-MM-DD" in JSON and is stored as TEXT in the database.
type Date struct {
	time.Time
}

// ParseDate converts "YYYY-MM-DD" to a Date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrBadDate, s)
	}
	return Date{t}, nil
}

// NewDate builds a Date from year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current UTC day.
func Today() Date {
	now := time.Now().UTC()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// AddDays returns the date d+n days.
func (d Date) AddDays(n int) Date {
	return Date{d.Time.AddDate(0, 0, n)}
}

// ISO returns the date as "YYYY-MM-DD".
func (d Date) ISO() string {
	return d.Time.Format(time.DateOnly)
}

// Compact returns the date as "YYYYMMDD", the form used in occurrence ids.
func (d Date) Compact() string {
	return d.Time.Format("20060102")
}

// After reports whether d is after other.
func (d Date) After(other Date) bool { return d.Time.After(other.Time) }

// Before reports whether d is before other.
func (d Date) Before(other Date) bool { return d.Time.Before(other.Time) }

// Equal reports whether d and other are the same day.
func (d Date) Equal(other Date) bool { return d.Time.Equal(other.Time) }

// MaxDate returns the later of a and b.
func MaxDate(a, b Date) Date {
	if a.After(b) {
		return a
	}
	return b
}

// MinDate returns the earlier of a and b.
func MinDate(a, b Date) Date {
	if a.Before(b) {
		return a
	}
	return b
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.ISO() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
		return ErrBadDate
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer so dates are stored as TEXT.
func (d Date) Value() (driver.Value, error) {
	return d.ISO(), nil
}

// Scan implements sql.Scanner for TEXT-encoded dates.
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		return d.Scan(string(v))
	case time.Time:
		*d = NewDate(v.Year(), v.Month(), v.Day())
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

// NullableDate distinguishes an absent JSON field from one set to null or "".
// Present-but-empty clears the stored date.
type NullableDate struct {
	Set   bool
	Value *Date
}

func (n *NullableDate) UnmarshalJSON(b []byte) error {
	n.Set = true
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
		n.Value = nil
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	n.Value = &parsed
	return nil
}
