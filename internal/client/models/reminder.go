package models

import (
	"fmt"
	"time"
)

type Reminder struct {
	ID               ID     `json:"id,omitempty"`
	JobApplicationID ID     `json:"job_application_id"`
	ReminderDate     string `json:"reminder_date"`
	Message          string `json:"message"`
	IsSent           bool   `json:"is_sent,omitempty"`
}

func (r Reminder) Key() ID { return r.ID }

// reminderLayouts are the date encodings seen from the backend, most
// specific first.
var reminderLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	time.DateOnly,
}

// Date parses ReminderDate in loc. Date-only values are midnight in loc.
func (r Reminder) Date(loc *time.Location) (time.Time, error) {
	for _, layout := range reminderLayouts {
		if t, err := time.ParseInLocation(layout, r.ReminderDate, loc); err == nil {
			return t.In(loc), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable reminder date %q", r.ReminderDate)
}
