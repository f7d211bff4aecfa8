package schedule

// SplitOccurrence materializes an edit aimed at one generated occurrence of a
// recurring series into a brand-new, independent, non-recurring definition.
// Patch fields win; anything omitted falls back to the original definition,
// except the date (the occurrence's own date), the status flags (start fresh
// as false) and the end date (a one-off has no bound). The series row is left
// untouched, and the occurrence's date is not suppressed from the series'
// future expansions: the same day can then show both the series instance and
// the split-off task.

import "planera/internal/models"

func SplitOccurrence(def models.ScheduleTask, occDate models.Date, p models.ScheduleTaskPatch) models.ScheduleTask {
	split := models.ScheduleTask{
		UserID:      def.UserID,
		Title:       def.Title,
		Description: def.Description,
		Date:        occDate,
		StartHour:   def.StartHour,
		Duration:    def.Duration,
		Color:       def.Color,
	}
	if p.Title != nil {
		split.Title = *p.Title
	}
	if p.Description != nil {
		split.Description = *p.Description
	}
	if p.Date != nil {
		split.Date = *p.Date
	}
	if p.StartHour != nil {
		split.StartHour = *p.StartHour
	}
	if p.Duration != nil {
		split.Duration = *p.Duration
	}
	if p.Completed != nil {
		split.Completed = *p.Completed
	}
	if p.InProgress != nil {
		split.InProgress = *p.InProgress
	}
	if p.Color != nil {
		split.Color = p.Color
	}
	split.Recurrence = models.RecurrenceNone
	return split
}
