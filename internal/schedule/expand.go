package schedule

import "planera/internal/models"

// Occurrence is one concrete calendar appearance of a schedule task inside a
// requested window. It exists only in the response payload; occurrences are
// never persisted.
type Occurrence struct {
	ID          TaskRef           `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Date        models.Date       `json:"date"`
	StartHour   float64           `json:"startHour"`
	Duration    float64           `json:"duration"`
	Completed   bool              `json:"completed"`
	InProgress  bool              `json:"inProgress"`
	Color       *string           `json:"color"`
	Recurrence  models.Recurrence `json:"recurrence"`
	EndDate     *models.Date      `json:"endDate"`
}

// Expand produces the occurrences of the given definitions falling inside the
// inclusive window [start, end].
//
// A definition that is non-recurring, or recurring without an end date, emits
// at most one occurrence (its own anchor date, when inside the window) under
// its bare id. A recurring definition with an end date is walked day by day
// over the intersection of [date, end_date] and the window; matching days emit
// composite-id occurrences with recurrence reported as "none", since
// recurring-ness belongs to the definition, not the instance.
//
// Expand is pure: same input, same output, no side effects. Output order is
// the input definition order, ascending date within a definition.
func Expand(tasks []models.ScheduleTask, start, end models.Date) []Occurrence {
	out := make([]Occurrence, 0)
	if end.Before(start) {
		return out
	}
	for _, t := range tasks {
		if t.Date.After(end) {
			continue
		}
		if t.Recurrence != models.RecurrenceNone && t.EndDate != nil {
			first := models.MaxDate(t.Date, start)
			last := models.MinDate(*t.EndDate, end)
			for cur := first; !cur.After(last); cur = cur.AddDays(1) {
				if !Matches(t.Recurrence, t.Date, cur) {
					continue
				}
				out = append(out, Occurrence{
					ID:          OccurrenceRef(t.ID, cur),
					Title:       t.Title,
					Description: t.Description,
					Date:        cur,
					StartHour:   t.StartHour,
					Duration:    t.Duration,
					Completed:   t.Completed,
					InProgress:  t.InProgress,
					Color:       t.Color,
					Recurrence:  models.RecurrenceNone,
					EndDate:     t.EndDate,
				})
			}
			continue
		}
		if t.Date.Before(start) {
			continue
		}
		out = append(out, Occurrence{
			ID:          DefinitionRef(t.ID),
			Title:       t.Title,
			Description: t.Description,
			Date:        t.Date,
			StartHour:   t.StartHour,
			Duration:    t.Duration,
			Completed:   t.Completed,
			InProgress:  t.InProgress,
			Color:       t.Color,
			Recurrence:  t.Recurrence,
			EndDate:     t.EndDate,
		})
	}
	return out
}
