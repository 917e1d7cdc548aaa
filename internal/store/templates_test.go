package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayutaki/kiroku/internal/kvstore"
	"github.com/ayutaki/kiroku/internal/logger"
	"github.com/ayutaki/kiroku/models"
)

func TestTemplates_SaveListDelete(t *testing.T) {
	kv := kvstore.NewMemory()
	templates := NewTemplates(kv, logger.Nop())

	saved := templates.Save(models.Template{Name: "standup", Title: "朝会", Content: "毎朝の確認 #予定"})
	require.NotEmpty(t, saved.ID)
	require.False(t, saved.CreatedAt.IsZero())

	list := templates.List()
	require.Len(t, list, 1)
	assert.Equal(t, "standup", list[0].Name)

	templates.Delete(saved.ID)
	assert.Empty(t, templates.List())
}

func TestTemplates_CorruptStorageReadsEmpty(t *testing.T) {
	kv := kvstore.NewMemory()
	require.NoError(t, kv.Set("diary_templates", "oops"))

	templates := NewTemplates(kv, logger.Nop())
	assert.Empty(t, templates.List())
}

func TestRecurring_InstancesFor(t *testing.T) {
	kv := kvstore.NewMemory()
	recurring := NewRecurring(kv, logger.Nop())

	recurring.Add(models.RecurringEvent{
		Title:     "ジム",
		StartTime: "19:00",
		EndTime:   "20:00",
		Frequency: models.Weekly,
		// 2025-06-02 is a Monday
		DaysOfWeek: []int{int(time.Monday)},
	})
	recurring.Add(models.RecurringEvent{
		Title:     "家賃",
		StartTime: "09:00",
		Frequency: models.Monthly,
		DayOfMonth: 1,
	})

	monday := recurring.InstancesFor("2025-06-02")
	require.Len(t, monday, 1)
	assert.Equal(t, "ジム", monday[0].Name)
	assert.Equal(t, "2025-06-02T19:00:00", monday[0].StartTime)
	assert.Equal(t, "2025-06-02T20:00:00", monday[0].EndTime)
	assert.Equal(t, models.KindEvent, monday[0].Kind)

	first := recurring.InstancesFor("2025-06-01")
	require.Len(t, first, 1)
	assert.Equal(t, "家賃", first[0].Name)

	assert.Empty(t, recurring.InstancesFor("2025-06-03"))
	assert.Empty(t, recurring.InstancesFor("not-a-date"))
}

func TestRecurring_DeleteAndInactive(t *testing.T) {
	kv := kvstore.NewMemory()
	recurring := NewRecurring(kv, logger.Nop())

	daily := recurring.Add(models.RecurringEvent{Title: "散歩", StartTime: "07:00", Frequency: models.Daily})
	require.Len(t, recurring.InstancesFor("2025-06-02"), 1)

	recurring.Delete(daily.ID)
	assert.Empty(t, recurring.InstancesFor("2025-06-02"))
}
