package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayutaki/kiroku/models"
)

func newTestDraftBuilder() *DraftBuilder {
	return &DraftBuilder{
		now:   func() time.Time { return time.Date(2025, 6, 10, 14, 30, 45, 0, time.UTC) },
		newID: func() string { return "generated-id" },
	}
}

// ── ExtractHashtags ──────────────────────────────────────────────────────────

func TestExtractHashtags(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"none", "plain text without tags", []string{}},
		{"ascii", "meeting #work today", []string{"#work"}},
		{"japanese", "明日は #予定 です #日記", []string{"#予定", "#日記"}},
		{"halfwidth katakana", "memo #ﾒﾓ", []string{"#ﾒﾓ"}},
		{"order preserved", "#b #a #b", []string{"#b", "#a", "#b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tags := ExtractHashtags(tt.text)
			names := make([]string, len(tags))
			for i, tag := range tags {
				names[i] = tag.Name
				assert.Equal(t, "Hashtag", tag.Type)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

// ── DraftBuilder.Build ───────────────────────────────────────────────────────

func TestDraftBuilder_Build_Note(t *testing.T) {
	b := newTestDraftBuilder()

	draft := b.Build(models.EntryForm{
		Date:    "2025-06-10",
		Title:   "dinner",
		Content: "had ramen #日記",
	}, "")

	assert.Equal(t, "generated-id", draft.ID)
	assert.Equal(t, models.KindNote, draft.Kind)
	assert.Equal(t, "2025-06-10T14:30:45", draft.Published)
	assert.Empty(t, draft.StartTime)
	assert.Empty(t, draft.EndTime)
	assert.True(t, draft.Decrypted)
	require.Len(t, draft.Tag, 1)
	assert.Equal(t, "#日記", draft.Tag[0].Name)
}

func TestDraftBuilder_Build_UntaggedContentIsNote(t *testing.T) {
	b := newTestDraftBuilder()

	draft := b.Build(models.EntryForm{Date: "2025-06-10", Content: "no tags here"}, "")

	assert.Equal(t, models.KindNote, draft.Kind)
	assert.Equal(t, "2025-06-10T14:30:45", draft.Published)
}

func TestDraftBuilder_Build_EventWithTimes(t *testing.T) {
	b := newTestDraftBuilder()

	draft := b.Build(models.EntryForm{
		Date:      "2025-06-10",
		StartTime: "09:00",
		EndTime:   "10:30",
		Title:     "standup",
		Content:   "weekly #予定",
	}, "")

	assert.Equal(t, models.KindEvent, draft.Kind)
	assert.Equal(t, "2025-06-10T09:00:00", draft.StartTime)
	assert.Equal(t, "2025-06-10T10:30:00", draft.EndTime)
	assert.Empty(t, draft.Published)
}

func TestDraftBuilder_Build_EventDefaultsToMidnight(t *testing.T) {
	b := newTestDraftBuilder()

	draft := b.Build(models.EntryForm{
		Date:    "2025-06-10",
		Content: "all day #予定",
	}, "")

	assert.Equal(t, "2025-06-10T00:00:00", draft.StartTime)
	assert.Empty(t, draft.EndTime)
}

func TestDraftBuilder_Build_MultiDayEventDefaultsEndOfDay(t *testing.T) {
	b := newTestDraftBuilder()

	draft := b.Build(models.EntryForm{
		StartDate: "2025-06-10",
		EndDate:   "2025-06-12",
		Content:   "trip #予定",
	}, "")

	assert.Equal(t, "2025-06-10T00:00:00", draft.StartTime)
	assert.Equal(t, "2025-06-12T23:59:00", draft.EndTime)
	assert.Equal(t, "2025-06-10", draft.Date)
}

func TestDraftBuilder_Build_MultiDayKeepsExplicitEndTime(t *testing.T) {
	b := newTestDraftBuilder()

	draft := b.Build(models.EntryForm{
		StartDate: "2025-06-10",
		EndDate:   "2025-06-12",
		StartTime: "08:00",
		EndTime:   "12:00",
		Content:   "conference #予定",
	}, "")

	assert.Equal(t, "2025-06-10T08:00:00", draft.StartTime)
	assert.Equal(t, "2025-06-12T12:00:00", draft.EndTime)
}

func TestDraftBuilder_Build_SameDayEndTimeDefaultsToStart(t *testing.T) {
	b := newTestDraftBuilder()

	// end date equals start date but an end time was given
	draft := b.Build(models.EntryForm{
		Date:      "2025-06-10",
		StartTime: "09:00",
		EndTime:   "09:00",
		Content:   "#予定",
	}, "")

	assert.Equal(t, "2025-06-10T09:00:00", draft.EndTime)
}

func TestDraftBuilder_Build_ReusesExistingID(t *testing.T) {
	b := newTestDraftBuilder()

	draft := b.Build(models.EntryForm{Date: "2025-06-10", Content: "edit"}, "keep-me")

	assert.Equal(t, "keep-me", draft.ID)
}

// ── DeleteParamsFor ──────────────────────────────────────────────────────────

func TestDeleteParamsFor_Note(t *testing.T) {
	params := DeleteParamsFor(models.Item{
		ID:        "n1",
		Date:      "2025-06-10",
		Published: "2025-06-10T14:30:45",
		Kind:      models.KindNote,
	})

	assert.Equal(t, "n1", params.ItemID)
	assert.Equal(t, "2025-06-10", params.Date)
	assert.Equal(t, "2025-06-10", params.StartDate)
	assert.Empty(t, params.EndDate)
}

func TestDeleteParamsFor_MultiDayEvent(t *testing.T) {
	params := DeleteParamsFor(models.Item{
		ID:        "e1",
		StartTime: "2025-06-10T09:00:00",
		EndTime:   "2025-06-12T17:00:00",
		Kind:      models.KindEvent,
	})

	assert.Equal(t, "2025-06-10", params.StartDate)
	assert.Equal(t, "2025-06-12", params.EndDate)
	assert.Equal(t, "2025-06-10", params.Date)
}
