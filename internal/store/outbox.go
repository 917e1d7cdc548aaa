package store

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/ayutaki/kiroku/internal/kvstore"
	"github.com/ayutaki/kiroku/internal/logger"
	"github.com/ayutaki/kiroku/models"
)

const outboxKey = "diary_outbox"

// Outbox is the durable FIFO of unconfirmed mutations. Every operation is a
// read-modify-write against the underlying key-value store and returns the
// full resulting list, so callers can resynchronise in-memory state without
// a separate re-read.
//
// Reads never fail the caller: corrupt or unreadable storage is logged and
// treated as an empty queue.
type Outbox struct {
	kv  kvstore.Store
	log *logger.Logger

	mu sync.Mutex
}

// NewOutbox returns an outbox persisted in kv.
func NewOutbox(kv kvstore.Store, log *logger.Logger) *Outbox {
	return &Outbox{kv: kv, log: log}
}

// ReadAll returns the queued entries in insertion order.
func (o *Outbox) ReadAll() []models.OutboxEntry {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.read()
}

// Enqueue appends entry and returns the resulting queue.
func (o *Outbox) Enqueue(entry models.OutboxEntry) []models.OutboxEntry {
	o.mu.Lock()
	defer o.mu.Unlock()

	next := append(o.read(), entry)
	o.write(next)
	return next
}

// Remove drops the entry with the given queue id, if present, and returns
// the resulting queue.
func (o *Outbox) Remove(queueID string) []models.OutboxEntry {
	o.mu.Lock()
	defer o.mu.Unlock()

	entries := o.read()
	next := entries[:0:0]
	for _, e := range entries {
		if e.QueueID != queueID {
			next = append(next, e)
		}
	}
	o.write(next)
	return next
}

// RecordAttempt marks a failed replay of the entry with the given queue id:
// the attempt counter is incremented and the time and cause recorded. The
// entry stays in place. Returns the resulting queue.
func (o *Outbox) RecordAttempt(queueID string, at time.Time, cause error) []models.OutboxEntry {
	o.mu.Lock()
	defer o.mu.Unlock()

	entries := o.read()
	for i := range entries {
		if entries[i].QueueID != queueID {
			continue
		}
		entries[i].AttemptCount++
		attemptAt := at
		entries[i].LastAttemptAt = &attemptAt
		if cause != nil {
			entries[i].LastError = cause.Error()
		}
	}
	o.write(entries)
	return entries
}

// Clear drops every queued entry. This is the user-facing escape hatch for
// entries the server keeps rejecting.
func (o *Outbox) Clear() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.write(nil)
}

// Depth returns the number of queued entries.
func (o *Outbox) Depth() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.read())
}

func (o *Outbox) read() []models.OutboxEntry {
	raw, ok, err := o.kv.Get(outboxKey)
	if err != nil {
		o.log.Warn().Err(err).Msg("outbox read failed, treating as empty")
		return nil
	}
	if !ok || raw == "" {
		return nil
	}

	var entries []models.OutboxEntry
	if err = json.Unmarshal([]byte(raw), &entries); err != nil {
		o.log.Warn().Err(err).Msg("outbox is corrupt, treating as empty")
		return nil
	}
	return entries
}

func (o *Outbox) write(entries []models.OutboxEntry) {
	if entries == nil {
		entries = []models.OutboxEntry{}
	}
	payload, err := json.Marshal(entries)
	if err != nil {
		o.log.Error().Err(err).Msg("outbox encode failed")
		return
	}
	if err = o.kv.Set(outboxKey, string(payload)); err != nil {
		o.log.Error().Err(err).Msg("outbox write failed")
	}
}
