package models

import "time"

// OutboxEntryType enumerates the mutations the outbox can hold.
type OutboxEntryType string

const (
	OutboxCreate OutboxEntryType = "create"
	OutboxDelete OutboxEntryType = "delete"
)

// DeleteParams carries everything the server needs to remove an item from
// every day-record it spans.
type DeleteParams struct {
	ItemID    string `json:"itemId"`
	Date      string `json:"date,omitempty"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
}

// TargetDate returns the day used for month-filtering a queued delete:
// the start of the affected range when known, else the filing date.
func (p DeleteParams) TargetDate() string {
	if p.StartDate != "" {
		return p.StartDate
	}
	return p.Date
}

// OutboxEntry is one pending mutation not yet confirmed by the server.
// Exactly one of Draft (create) or Params (delete) is set, per Type.
// Attempt metadata is updated in place on every failed replay; the entry
// itself is removed only when the server confirms the operation.
type OutboxEntry struct {
	QueueID   string          `json:"queueId"`
	Type      OutboxEntryType `json:"type"`
	Draft     *Item           `json:"draft,omitempty"`
	Params    *DeleteParams   `json:"params,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`

	AttemptCount  int        `json:"attemptCount"`
	LastAttemptAt *time.Time `json:"lastAttemptAt,omitempty"`
	LastError     string     `json:"lastError,omitempty"`
}
