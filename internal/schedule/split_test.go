package schedule

import (
	"testing"

	"planera/internal/models"
)

func strp(s string) *string { return &s }

func TestSplitOccurrencePatchWins(t *testing.T) {
	def := weeklyTask(t, 7, "2025-01-06", "2025-03-31")
	def.UserID = 3
	def.Completed = true

	newTitle := "Reunión movida"
	hour := 15.0
	split := SplitOccurrence(def, date(t, "2025-01-13"), models.ScheduleTaskPatch{
		Title:     &newTitle,
		StartHour: &hour,
	})

	if split.Title != "Reunión movida" || split.StartHour != 15 {
		t.Errorf("patched fields not applied: %+v", split)
	}
	if split.UserID != 3 {
		t.Errorf("user id = %d", split.UserID)
	}
	if split.Duration != def.Duration {
		t.Errorf("duration should fall back to the definition")
	}
	if !split.Date.Equal(date(t, "2025-01-13")) {
		t.Errorf("date = %s, want the occurrence date", split.Date.ISO())
	}
}

func TestSplitOccurrenceIndependence(t *testing.T) {
	def := weeklyTask(t, 7, "2025-01-06", "2025-03-31")
	def.Completed = true
	def.InProgress = true

	split := SplitOccurrence(def, date(t, "2025-01-13"), models.ScheduleTaskPatch{})

	if split.Recurrence != models.RecurrenceNone {
		t.Errorf("recurrence = %q, want none", split.Recurrence)
	}
	if split.EndDate != nil {
		t.Errorf("endDate = %v, want nil", split.EndDate)
	}
	// Status flags start fresh rather than inheriting the series'.
	if split.Completed || split.InProgress {
		t.Errorf("flags = completed %v inProgress %v, want both false", split.Completed, split.InProgress)
	}
	if split.ID != 0 {
		t.Errorf("split must be a new row, got id %d", split.ID)
	}
}

func TestSplitOccurrencePatchDateOverridesOccurrenceDate(t *testing.T) {
	def := weeklyTask(t, 7, "2025-01-06", "2025-03-31")
	moved := date(t, "2025-01-14")
	split := SplitOccurrence(def, date(t, "2025-01-13"), models.ScheduleTaskPatch{Date: &moved})
	if !split.Date.Equal(moved) {
		t.Errorf("date = %s, want 2025-01-14", split.Date.ISO())
	}
}

func TestSplitDoesNotSuppressSeriesOccurrence(t *testing.T) {
	// Splitting an occurrence leaves the series untouched: re-expanding the
	// same window shows both the series instance and the split-off task on
	// the same day.
	def := weeklyTask(t, 7, "2025-01-06", "2025-03-31")
	split := SplitOccurrence(def, date(t, "2025-01-13"), models.ScheduleTaskPatch{Title: strp("Editada")})
	split.ID = 99

	got := Expand([]models.ScheduleTask{def, split}, date(t, "2025-01-13"), date(t, "2025-01-19"))
	if len(got) != 2 {
		t.Fatalf("got %d occurrences, want the series instance plus the split", len(got))
	}
	if got[0].ID.String() != "7-20250113" || got[1].ID.String() != "99" {
		t.Fatalf("ids = %v", ids(got))
	}
	if !got[0].Date.Equal(got[1].Date) {
		t.Error("both should land on the same day")
	}
}
