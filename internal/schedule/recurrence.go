package schedule

import "planera/internal/models"

// Matches reports whether candidate is an occurrence of a recurring rule
// anchored at anchor.
//
//   - daily matches every day
//   - weekly matches the anchor's weekday
//   - monthly matches the anchor's day-of-month; if that day does not exist in
//     the candidate's month (anchor on the 31st, a 30-day month) nothing
//     matches that month, with no clamping or rollover
//
// Unrecognized kinds, including "none", never match.
func Matches(rule models.Recurrence, anchor, candidate models.Date) bool {
	switch rule {
	case models.RecurrenceDaily:
		return true
	case models.RecurrenceWeekly:
		return candidate.Weekday() == anchor.Weekday()
	case models.RecurrenceMonthly:
		return candidate.Day() == anchor.Day()
	default:
		return false
	}
}
