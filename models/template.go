package models

import "time"

// Template is a locally stored entry preset. Templates never touch the
// server and carry no consistency concerns; they simply pre-fill the form.
type Template struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IsEvent   bool      `json:"isEvent"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	StartDate string    `json:"startDate,omitempty"`
	EndDate   string    `json:"endDate,omitempty"`
	StartTime string    `json:"startTime,omitempty"`
	EndTime   string    `json:"endTime,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Form returns the entry form this template expands to for the given date.
func (t Template) Form(date string) EntryForm {
	return EntryForm{
		Date:      date,
		StartDate: t.StartDate,
		EndDate:   t.EndDate,
		StartTime: t.StartTime,
		EndTime:   t.EndTime,
		Title:     t.Title,
		Content:   t.Content,
	}
}
