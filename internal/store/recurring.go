package store

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/ayutaki/kiroku/internal/kvstore"
	"github.com/ayutaki/kiroku/internal/logger"
	"github.com/ayutaki/kiroku/models"
)

const recurringKey = "recurring_events"

// Recurring stores repeat rules locally and expands them into display
// instances. Rules never reach the server.
type Recurring struct {
	kv  kvstore.Store
	log *logger.Logger

	mu  sync.Mutex
	now func() time.Time
}

// NewRecurring returns a recurring-rule store persisted in kv.
func NewRecurring(kv kvstore.Store, log *logger.Logger) *Recurring {
	return &Recurring{kv: kv, log: log, now: time.Now}
}

// List returns all stored rules.
func (r *Recurring) List() []models.RecurringEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.read()
}

// Add assigns the rule an id and creation time, marks it active, appends
// it, and returns it.
func (r *Recurring) Add(rule models.RecurringEvent) models.RecurringEvent {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	rule.ID = fmt.Sprintf("%d", now.UnixMilli())
	rule.CreatedAt = now
	rule.IsActive = true
	r.write(append(r.read(), rule))
	return rule
}

// Delete removes the rule with the given id, if present.
func (r *Recurring) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rules := r.read()
	next := rules[:0:0]
	for _, rule := range rules {
		if rule.ID != id {
			next = append(next, rule)
		}
	}
	r.write(next)
}

// InstancesFor expands every active rule that occurs on the given date
// ("2006-01-02") into display items.
func (r *Recurring) InstancesFor(date string) []models.Item {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil
	}

	var instances []models.Item
	for _, rule := range r.List() {
		if rule.IsActive && rule.OccursOn(day) {
			instances = append(instances, rule.InstanceFor(date))
		}
	}
	return instances
}

func (r *Recurring) read() []models.RecurringEvent {
	raw, ok, err := r.kv.Get(recurringKey)
	if err != nil {
		r.log.Warn().Err(err).Msg("recurring rules read failed, treating as empty")
		return nil
	}
	if !ok || raw == "" {
		return nil
	}

	var rules []models.RecurringEvent
	if err = json.Unmarshal([]byte(raw), &rules); err != nil {
		r.log.Warn().Err(err).Msg("recurring rules are corrupt, treating as empty")
		return nil
	}
	return rules
}

func (r *Recurring) write(rules []models.RecurringEvent) {
	if rules == nil {
		rules = []models.RecurringEvent{}
	}
	payload, err := json.Marshal(rules)
	if err != nil {
		r.log.Error().Err(err).Msg("recurring rules encode failed")
		return
	}
	if err = r.kv.Set(recurringKey, string(payload)); err != nil {
		r.log.Error().Err(err).Msg("recurring rules write failed")
	}
}
