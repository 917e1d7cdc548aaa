package models

import (
	"fmt"
	"time"
)

// RecurringFrequency enumerates the supported repeat rules.
type RecurringFrequency string

const (
	Daily   RecurringFrequency = "daily"
	Weekly  RecurringFrequency = "weekly"
	Monthly RecurringFrequency = "monthly"
)

// RecurringEvent is a locally stored repeat rule. Instances are expanded on
// the fly for display; they are never uploaded and never enter the outbox.
type RecurringEvent struct {
	ID        string             `json:"id"`
	Title     string             `json:"title"`
	Content   string             `json:"content"`
	StartTime string             `json:"startTime"` // "15:04"
	EndTime   string             `json:"endTime,omitempty"`
	Frequency RecurringFrequency `json:"frequency"`
	// DaysOfWeek applies to Weekly rules (time.Weekday values).
	DaysOfWeek []int `json:"daysOfWeek,omitempty"`
	// DayOfMonth applies to Monthly rules.
	DayOfMonth int       `json:"dayOfMonth,omitempty"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
}

// OccursOn reports whether the rule produces an instance on the given day.
func (e RecurringEvent) OccursOn(day time.Time) bool {
	switch e.Frequency {
	case Daily:
		return true
	case Weekly:
		for _, d := range e.DaysOfWeek {
			if time.Weekday(d) == day.Weekday() {
				return true
			}
		}
		return false
	case Monthly:
		return day.Day() == e.DayOfMonth
	default:
		return false
	}
}

// InstanceFor materialises the rule as a display item on the given date
// ("2006-01-02"). The instance id is derived from the rule id and the date,
// so repeated expansion is stable.
func (e RecurringEvent) InstanceFor(date string) Item {
	item := Item{
		ID:        fmt.Sprintf("%s_%s", e.ID, date),
		Name:      e.Title,
		Content:   e.Content,
		Date:      date,
		StartTime: fmt.Sprintf("%sT%s:00", date, e.StartTime),
		Kind:      KindEvent,
		Decrypted: true,
	}
	if e.EndTime != "" {
		item.EndTime = fmt.Sprintf("%sT%s:00", date, e.EndTime)
	}
	return item
}
