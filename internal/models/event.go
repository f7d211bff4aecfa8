package models

// Subtask is a checklist item owned by an Event.
type Subtask struct {
	ID      int64  `json:"id"`
	EventID int64  `json:"-"`
	Text    string `json:"text"`
	Done    bool   `json:"done"`
	Order   int    `json:"-"`
}

// Event is a calendar task shown in the month view. RRuleText is an opaque
// string the client calendar interprets; the server stores it untouched.
type Event struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	Title     string    `json:"title"`
	Start     Date      `json:"start"`
	End       *Date     `json:"end"`
	Priority  int       `json:"priority"`
	Tag       *string   `json:"tag"`
	TagColor  *string   `json:"tagColor"`
	Completed bool      `json:"completed"`
	RRuleText *string   `json:"rruleText"`
	Subtasks  []Subtask `json:"subtasks"`
}
