package service

import (
	"fmt"
	"regexp"
	"time"

	"github.com/ayutaki/kiroku/models"
)

// hashtagPattern matches "#" followed by word characters or Japanese script
// ranges (Hiragana, Katakana, CJK ideographs, halfwidth Katakana).
var hashtagPattern = regexp.MustCompile(`#[\w\x{3040}-\x{309F}\x{30A0}-\x{30FF}\x{4E00}-\x{9FAF}\x{FF66}-\x{FF9F}]+`)

// ExtractHashtags returns the hashtag tokens found in text, in order of
// appearance, as wire-format tags.
func ExtractHashtags(text string) []models.Tag {
	matches := hashtagPattern.FindAllString(text, -1)
	if matches == nil {
		return []models.Tag{}
	}
	tags := make([]models.Tag, len(matches))
	for i, m := range matches {
		tags[i] = models.Tag{Type: "Hashtag", Name: m}
	}
	return tags
}

// DraftBuilder turns form state into a canonical item. It is a pure
// transform: no storage and no network, just classification and date/time
// normalization.
type DraftBuilder struct {
	now   func() time.Time
	newID func() string
}

// NewDraftBuilder returns a builder using the wall clock and the default id
// generator.
func NewDraftBuilder() *DraftBuilder {
	return &DraftBuilder{now: time.Now, newID: NewItemID}
}

// Build produces a draft item from the form. existingID is reused when the
// user is editing; an empty existingID means a fresh item.
//
// Classification happens here, once: the draft is an event exactly when its
// content carries the event marker tag. Events get a start timestamp
// (defaulting to midnight) and, when an end time was given or the entry
// spans multiple days, an end timestamp (defaulting to the start time, or
// end of day for multi-day spans). Notes get a published timestamp on the
// form date at the current wall-clock time.
func (b *DraftBuilder) Build(form models.EntryForm, existingID string) models.Item {
	tags := ExtractHashtags(form.Content)

	id := existingID
	if id == "" {
		id = b.newID()
	}

	startDate := form.StartDate
	if startDate == "" {
		startDate = form.Date
	}
	endDate := form.EndDate
	if endDate == "" {
		endDate = startDate
	}

	draft := models.Item{
		ID:        id,
		Name:      form.Title,
		Content:   form.Content,
		Tag:       tags,
		Date:      startDate,
		Decrypted: true,
	}

	if models.HasTag(tags, models.EventTag) {
		draft.Kind = models.KindEvent

		startTime := form.StartTime
		if startTime == "" {
			startTime = "00:00"
		}
		endTime := form.EndTime
		if endTime == "" && endDate != startDate {
			endTime = "23:59"
		}

		draft.StartTime = fmt.Sprintf("%sT%s:00", startDate, startTime)
		if endTime != "" || endDate != startDate {
			if endTime == "" {
				endTime = startTime
			}
			draft.EndTime = fmt.Sprintf("%sT%s:00", endDate, endTime)
		}
	} else {
		draft.Kind = models.KindNote
		draft.Published = fmt.Sprintf("%sT%s", form.Date, b.now().Format("15:04:05"))
	}

	return draft
}

// DeleteParamsFor derives the remote delete parameters for an item: the
// range of days it may occupy, so the server can clear each one.
func DeleteParamsFor(item models.Item) models.DeleteParams {
	startDate := item.FilingDate()
	params := models.DeleteParams{
		ItemID:    item.ID,
		Date:      item.Date,
		StartDate: startDate,
	}
	if params.Date == "" {
		params.Date = startDate
	}
	if len(item.EndTime) >= 10 {
		params.EndDate = item.EndTime[:10]
	}
	return params
}
