package models

import "strings"

// Recurrence is the repetition kind of a schedule task.
type Recurrence string

const (
	RecurrenceNone    Recurrence = "none"
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
)

// ScheduleTask is the stored definition of a weekly-schedule entry, either a
// one-off or the anchor of a recurring series.
type ScheduleTask struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"-"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Date        Date       `json:"date"`
	EndDate     *Date      `json:"endDate"`
	StartHour   float64    `json:"startHour"`
	Duration    float64    `json:"duration"`
	Completed   bool       `json:"completed"`
	InProgress  bool       `json:"inProgress"`
	Color       *string    `json:"color"`
	Recurrence  Recurrence `json:"recurrence"`
}

// ScheduleTaskPatch carries a partial update: only non-nil (or Set) fields are
// applied. EndDate uses NullableDate because sending an empty value clears the
// stored bound.
type ScheduleTaskPatch struct {
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	Date        *Date        `json:"date"`
	EndDate     NullableDate `json:"endDate"`
	StartHour   *float64     `json:"startHour"`
	Duration    *float64     `json:"duration"`
	Completed   *bool        `json:"completed"`
	InProgress  *bool        `json:"inProgress"`
	Color       *string      `json:"color"`
	Recurrence  *Recurrence  `json:"recurrence"`
}

// Apply copies the patch's present fields onto the task.
func (t *ScheduleTask) Apply(p ScheduleTaskPatch) {
	if p.Title != nil {
		t.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Date != nil {
		t.Date = *p.Date
	}
	if p.EndDate.Set {
		t.EndDate = p.EndDate.Value
	}
	if p.StartHour != nil {
		t.StartHour = *p.StartHour
	}
	if p.Duration != nil {
		t.Duration = *p.Duration
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.InProgress != nil {
		t.InProgress = *p.InProgress
	}
	if p.Color != nil {
		t.Color = p.Color
	}
	if p.Recurrence != nil {
		t.Recurrence = *p.Recurrence
	}
}

// Template is a dateless schedule-task preset.
type Template struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"-"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Duration    float64    `json:"duration"`
	Color       *string    `json:"color"`
	Recurrence  Recurrence `json:"recurrence"`
}
