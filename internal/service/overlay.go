package service

import (
	"github.com/ayutaki/kiroku/models"
)

// MergeOutbox projects the pending queue onto server-fetched day-records
// and returns the effective view. The inputs are never mutated; replaying
// the same queue against the same base is idempotent.
//
// Entries apply in insertion order. A create removes any prior placement of
// the same item id before filing the draft under its date, so a later entry
// wins over both stale base data and earlier queue entries (and an edit
// that moves an item to a new date leaves nothing behind). A delete removes
// the id from every day-record.
//
// A non-empty monthKey ("YYYY-MM") keeps per-month caches isolated: entries
// whose target date falls in a different month are skipped.
func MergeOutbox(base []models.DayRecord, queue []models.OutboxEntry, monthKey string) []models.DayRecord {
	records := models.CloneRecords(base)

	for _, entry := range queue {
		switch entry.Type {
		case models.OutboxCreate:
			if entry.Draft == nil {
				continue
			}
			records = upsertItem(records, *entry.Draft, monthKey)
		case models.OutboxDelete:
			if entry.Params == nil {
				continue
			}
			if target := entry.Params.TargetDate(); target != "" && monthKey != "" && models.MonthKey(target) != monthKey {
				continue
			}
			records = removeItem(records, entry.Params.ItemID)
		}
	}

	return records
}

func upsertItem(records []models.DayRecord, draft models.Item, monthKey string) []models.DayRecord {
	date := draft.FilingDate()
	if date == "" {
		return records
	}
	if monthKey != "" && models.MonthKey(date) != monthKey {
		return records
	}

	records = removeItem(records, draft.ID)

	for i := range records {
		if records[i].Date == date {
			records[i].OrderedItems = append(records[i].OrderedItems, draft)
			return records
		}
	}
	return append(records, models.DayRecord{Date: date, OrderedItems: []models.Item{draft}})
}

func removeItem(records []models.DayRecord, itemID string) []models.DayRecord {
	for i := range records {
		items := records[i].OrderedItems
		filtered := items[:0:0]
		for _, item := range items {
			if item.ID != itemID {
				filtered = append(filtered, item)
			}
		}
		records[i].OrderedItems = filtered
	}
	return records
}
