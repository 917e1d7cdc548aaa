package store

import (
	"sync"

	"github.com/ayutaki/kiroku/models"
)

// MonthCache holds the last merged, decrypted day-records per "YYYY-MM" key.
// It lives in memory only: cached values are plaintext and must not outlive
// the session's passphrase. Get and Put copy, so callers never share slices
// with the cache.
type MonthCache struct {
	mu      sync.RWMutex
	records map[string][]models.DayRecord
}

// NewMonthCache returns an empty cache.
func NewMonthCache() *MonthCache {
	return &MonthCache{records: make(map[string][]models.DayRecord)}
}

// Get returns the cached records for monthKey and whether they exist.
func (c *MonthCache) Get(monthKey string) ([]models.DayRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	records, ok := c.records[monthKey]
	if !ok {
		return nil, false
	}
	return models.CloneRecords(records), true
}

// Put stores records under monthKey, replacing any previous value.
func (c *MonthCache) Put(monthKey string, records []models.DayRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records[monthKey] = models.CloneRecords(records)
}

// Update applies fn to the cached records for monthKey, if present, and
// stores the result back. Used for incremental overlay updates on local
// mutations so a cached month does not need a refetch.
func (c *MonthCache) Update(monthKey string, fn func([]models.DayRecord) []models.DayRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, ok := c.records[monthKey]
	if !ok {
		return
	}
	c.records[monthKey] = fn(models.CloneRecords(records))
}

// UpdateAll applies fn to every cached month.
func (c *MonthCache) UpdateAll(fn func([]models.DayRecord) []models.DayRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, records := range c.records {
		c.records[key] = fn(models.CloneRecords(records))
	}
}

// Invalidate drops the cached records for monthKey.
func (c *MonthCache) Invalidate(monthKey string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.records, monthKey)
}

// InvalidateAll drops every cached month. Called whenever the passphrase
// changes, since cached plaintext belongs to the old secret context.
func (c *MonthCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = make(map[string][]models.DayRecord)
}
