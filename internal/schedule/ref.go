package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"planera/internal/models"
)

var (
	// ErrBadRefID reports a task reference whose base id is not an integer.
	ErrBadRefID = errors.New("invalid task id")
	// ErrBadRefDate reports a composite reference with an unparseable date.
	ErrBadRefDate = errors.New("invalid occurrence date")
)

// TaskRef identifies either a stored definition or one generated occurrence of
// a recurring series. Date is nil for a plain definition reference. The wire
// encoding is the bare id for definitions and "<id>-<YYYYMMDD>" for
// occurrences; the hyphen is unambiguous because ids are integers.
type TaskRef struct {
	ID   int64
	Date *models.Date
}

// DefinitionRef references a stored definition by id.
func DefinitionRef(id int64) TaskRef {
	return TaskRef{ID: id}
}

// OccurrenceRef references one generated occurrence of definition id on date.
func OccurrenceRef(id int64, date models.Date) TaskRef {
	return TaskRef{ID: id, Date: &date}
}

// IsOccurrence reports whether the ref targets a single generated occurrence.
func (r TaskRef) IsOccurrence() bool {
	return r.Date != nil
}

func (r TaskRef) String() string {
	if r.Date == nil {
		return strconv.FormatInt(r.ID, 10)
	}
	return fmt.Sprintf("%d-%s", r.ID, r.Date.Compact())
}

// MarshalJSON keeps the original wire shape: a JSON number for definitions, a
// composite string for occurrences.
func (r TaskRef) MarshalJSON() ([]byte, error) {
	if r.Date == nil {
		return []byte(strconv.FormatInt(r.ID, 10)), nil
	}
	return []byte(`"` + r.String() + `"`), nil
}

// ParseTaskRef decodes a path parameter into a TaskRef.
func ParseTaskRef(s string) (TaskRef, error) {
	base, dateStr, composite := strings.Cut(s, "-")
	id, err := strconv.ParseInt(base, 10, 64)
	if err != nil {
		return TaskRef{}, fmt.Errorf("%w: %q", ErrBadRefID, s)
	}
	if !composite {
		return DefinitionRef(id), nil
	}
	date, err := parseCompact(dateStr)
	if err != nil {
		return TaskRef{}, fmt.Errorf("%w: %q", ErrBadRefDate, s)
	}
	return OccurrenceRef(id, date), nil
}

// parseCompact accepts the compact "YYYYMMDD" form produced by expansion, plus
// "YYYY-MM-DD" for clients that echo the ISO date back.
func parseCompact(s string) (models.Date, error) {
	if len(s) == 8 {
		return models.ParseDate(s[:4] + "-" + s[4:6] + "-" + s[6:])
	}
	return models.ParseDate(s)
}
