package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayutaki/kiroku/models"
)

func monthRecords(date string, ids ...string) []models.DayRecord {
	items := make([]models.Item, len(ids))
	for i, id := range ids {
		items[i] = models.Item{ID: id, Date: date}
	}
	return []models.DayRecord{{Date: date, OrderedItems: items}}
}

func TestMonthCache_GetMiss(t *testing.T) {
	cache := NewMonthCache()
	_, ok := cache.Get("2025-06")
	assert.False(t, ok)
}

func TestMonthCache_PutGetCopies(t *testing.T) {
	cache := NewMonthCache()
	records := monthRecords("2025-06-01", "a")
	cache.Put("2025-06", records)

	// mutating the original must not leak into the cache
	records[0].OrderedItems[0].ID = "mutated"

	got, ok := cache.Get("2025-06")
	require.True(t, ok)
	assert.Equal(t, "a", got[0].OrderedItems[0].ID)

	// and mutating the returned copy must not either
	got[0].OrderedItems[0].ID = "also mutated"
	again, _ := cache.Get("2025-06")
	assert.Equal(t, "a", again[0].OrderedItems[0].ID)
}

func TestMonthCache_Update(t *testing.T) {
	cache := NewMonthCache()
	cache.Put("2025-06", monthRecords("2025-06-01", "a"))

	cache.Update("2025-06", func(records []models.DayRecord) []models.DayRecord {
		records[0].OrderedItems = append(records[0].OrderedItems, models.Item{ID: "b"})
		return records
	})

	got, ok := cache.Get("2025-06")
	require.True(t, ok)
	assert.Len(t, got[0].OrderedItems, 2)

	// absent months are not created by Update
	cache.Update("2025-07", func(records []models.DayRecord) []models.DayRecord {
		t.Fatal("update func called for absent month")
		return records
	})
	_, ok = cache.Get("2025-07")
	assert.False(t, ok)
}

func TestMonthCache_InvalidateAll(t *testing.T) {
	cache := NewMonthCache()
	cache.Put("2025-06", monthRecords("2025-06-01", "a"))
	cache.Put("2025-07", monthRecords("2025-07-01", "b"))

	cache.InvalidateAll()

	_, ok := cache.Get("2025-06")
	assert.False(t, ok)
	_, ok = cache.Get("2025-07")
	assert.False(t, ok)
}
