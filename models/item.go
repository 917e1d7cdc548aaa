package models

import (
	"regexp"
	"strings"
)

// ItemKind classifies an item once, at draft-build time. It is persisted
// locally (outbox, cache) but never sent to the server; the wire payload
// stays tag-driven.
type ItemKind string

const (
	KindNote  ItemKind = "note"
	KindEvent ItemKind = "event"
)

// Reserved marker tags. Their presence in an item's content decides how the
// item is classified and rendered.
const (
	EventTag = "#予定"
	NoteTag  = "#日記"
)

// Tag is a single hashtag extracted from item content.
type Tag struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// Item is a single diary note or calendar event. Name and Content hold
// plaintext on the client; they are encrypted by the transport layer just
// before upload. Dates are calendar days in "2006-01-02" form, times full
// local timestamps in "2006-01-02T15:04:05" form.
type Item struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Content string `json:"content"`
	Tag     []Tag  `json:"tag"`
	Date    string `json:"date,omitempty"`

	// StartTime/EndTime are set for events, Published for notes.
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
	Published string `json:"published,omitempty"`

	Kind ItemKind `json:"kind,omitempty"`

	// Decrypted reports whether Name/Content hold usable plaintext. False
	// means decryption failed and placeholders were substituted.
	Decrypted bool `json:"decrypted,omitempty"`
}

// HasTag reports whether tags contains a tag with the given name.
func HasTag(tags []Tag, name string) bool {
	for _, t := range tags {
		if t.Name == name {
			return true
		}
	}
	return false
}

// InferKind derives the display classification of an item from its tag set,
// falling back to the presence of a start time. Items built by the draft
// builder carry an explicit Kind; this inference remains for server-fetched
// items that predate the field.
func (i Item) InferKind() ItemKind {
	if i.Kind != "" {
		return i.Kind
	}
	if HasTag(i.Tag, EventTag) {
		return KindEvent
	}
	if HasTag(i.Tag, NoteTag) {
		return KindNote
	}
	if i.StartTime != "" {
		return KindEvent
	}
	return KindNote
}

// FilingDate returns the calendar day the item is filed under: the start
// time's date for events, the published date for notes, else the item's own
// date field. Empty when none of those are set.
func (i Item) FilingDate() string {
	if i.StartTime != "" {
		return datePart(i.StartTime)
	}
	if i.Published != "" {
		return datePart(i.Published)
	}
	return i.Date
}

func datePart(ts string) string {
	if idx := strings.IndexByte(ts, 'T'); idx >= 0 {
		return ts[:idx]
	}
	return ts
}

// MonthKey returns the "YYYY-MM" cache key for a "YYYY-MM-DD" date, or ""
// if the date is too short to carry a month.
func MonthKey(date string) string {
	if len(date) < 7 {
		return ""
	}
	return date[:7]
}

var skDatePattern = regexp.MustCompile(`^DATE#(\d{4}-\d{2}-\d{2})`)

// DateFromSK extracts the calendar date from a server sort key of the form
// "DATE#2006-01-02". Returns "" when sk does not match.
func DateFromSK(sk string) string {
	m := skDatePattern.FindStringSubmatch(sk)
	if m == nil {
		return ""
	}
	return m[1]
}

// DayRecord is the unit of server persistence: all items filed under one
// calendar date. Within a record, item ids are unique; a multi-day event is
// replicated into each day it spans.
type DayRecord struct {
	SK           string `json:"sk,omitempty"`
	Date         string `json:"date"`
	OrderedItems []Item `json:"orderedItems"`
}

// CloneRecords returns a copy of records with freshly allocated item slices,
// so the result can be mutated without touching the input.
func CloneRecords(records []DayRecord) []DayRecord {
	out := make([]DayRecord, len(records))
	for i, day := range records {
		items := make([]Item, len(day.OrderedItems))
		copy(items, day.OrderedItems)
		day.OrderedItems = items
		out[i] = day
	}
	return out
}
