package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItem_InferKind(t *testing.T) {
	tests := []struct {
		name string
		item Item
		want ItemKind
	}{
		{"explicit kind wins", Item{Kind: KindEvent}, KindEvent},
		{"event tag", Item{Tag: []Tag{{Type: "Hashtag", Name: EventTag}}}, KindEvent},
		{"note tag", Item{Tag: []Tag{{Type: "Hashtag", Name: NoteTag}}, StartTime: "2025-06-01T10:00:00"}, KindNote},
		{"start time fallback", Item{StartTime: "2025-06-01T10:00:00"}, KindEvent},
		{"default note", Item{Content: "plain"}, KindNote},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.item.InferKind())
		})
	}
}

func TestItem_FilingDate(t *testing.T) {
	assert.Equal(t, "2025-06-02", Item{StartTime: "2025-06-02T10:00:00", Date: "2025-06-01"}.FilingDate())
	assert.Equal(t, "2025-06-03", Item{Published: "2025-06-03T21:15:00"}.FilingDate())
	assert.Equal(t, "2025-06-01", Item{Date: "2025-06-01"}.FilingDate())
	assert.Equal(t, "", Item{}.FilingDate())
}

func TestMonthKey(t *testing.T) {
	assert.Equal(t, "2025-06", MonthKey("2025-06-15"))
	assert.Equal(t, "", MonthKey("bad"))
}

func TestDateFromSK(t *testing.T) {
	assert.Equal(t, "2025-06-15", DateFromSK("DATE#2025-06-15"))
	assert.Equal(t, "", DateFromSK("ITEM#abc"))
}

func TestCloneRecords_Independent(t *testing.T) {
	base := []DayRecord{{Date: "2025-06-01", OrderedItems: []Item{{ID: "a"}}}}
	cloned := CloneRecords(base)

	cloned[0].OrderedItems[0].ID = "changed"
	cloned[0].OrderedItems = append(cloned[0].OrderedItems, Item{ID: "b"})

	assert.Equal(t, "a", base[0].OrderedItems[0].ID)
	assert.Len(t, base[0].OrderedItems, 1)
}
