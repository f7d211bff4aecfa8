package schedule

import (
	"testing"

	"planera/internal/models"
)

func TestMatches(t *testing.T) {
	anchor := date(t, "2025-01-31") // Friday, day 31

	cases := []struct {
		name      string
		rule      models.Recurrence
		candidate string
		want      bool
	}{
		{"daily any day", models.RecurrenceDaily, "2025-04-02", true},
		{"weekly same weekday", models.RecurrenceWeekly, "2025-02-07", true},
		{"weekly other weekday", models.RecurrenceWeekly, "2025-02-06", false},
		{"monthly same day", models.RecurrenceMonthly, "2025-03-31", true},
		{"monthly short month has no day 31", models.RecurrenceMonthly, "2025-04-30", false},
		{"monthly other day", models.RecurrenceMonthly, "2025-03-30", false},
		{"none never matches", models.RecurrenceNone, "2025-01-31", false},
		{"unknown never matches", models.Recurrence("yearly"), "2026-01-31", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Matches(tc.rule, anchor, date(t, tc.candidate)); got != tc.want {
				t.Errorf("Matches(%q, %s, %s) = %v, want %v",
					tc.rule, anchor.ISO(), tc.candidate, got, tc.want)
			}
		})
	}
}

func TestMatchesFebruaryNeverSeesDay30(t *testing.T) {
	anchor := date(t, "2025-01-30")
	for day := 1; day <= 28; day++ {
		candidate := date(t, "2025-02-01").AddDays(day - 1)
		if Matches(models.RecurrenceMonthly, anchor, candidate) {
			t.Fatalf("day-30 series matched %s", candidate.ISO())
		}
	}
}
