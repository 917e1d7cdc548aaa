package service

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/ayutaki/kiroku/internal/adapter"
	"github.com/ayutaki/kiroku/internal/logger"
	"github.com/ayutaki/kiroku/internal/store"
	"github.com/ayutaki/kiroku/models"
)

// SyncState is the engine's reported state.
type SyncState string

const (
	StateIdle    SyncState = "idle"
	StateSyncing SyncState = "syncing"
	StateError   SyncState = "error"
)

const (
	stateIdle int32 = iota
	stateSyncing
	stateError
)

// SyncStatus is the user-visible sync summary: the status line reports
// queue depth, engine state, and connectivity.
type SyncStatus struct {
	State      SyncState
	QueueDepth int
	Online     bool
}

// SyncEngine drains the outbox against the remote API. Flushes are
// single-flight: the in-progress flag is claimed with a compare-and-swap,
// so concurrent triggers collapse into the one in-flight drain instead of
// processing entries twice.
//
// Within a flush, entries are attempted strictly in queue order and their
// failures are independent: a failed entry is annotated and left in place
// while the drain moves on, and entries that succeeded earlier in the same
// flush stay removed. The error state is reporting only; it never blocks a
// later flush.
type SyncEngine struct {
	outbox  *store.Outbox
	adapter adapter.ServerAdapter
	crypto  CryptoService
	online  func() bool
	log     *logger.Logger
	now     func() time.Time

	inFlight atomic.Bool
	state    atomic.Int32

	// onClean runs after a flush in which every entry succeeded, to force
	// a reload of server-derived state.
	onClean func(ctx context.Context)
}

// NewSyncEngine wires a drain loop over the given collaborators. online
// gates flushing; onClean may be nil.
func NewSyncEngine(outbox *store.Outbox, serverAdapter adapter.ServerAdapter, crypto CryptoService, online func() bool, log *logger.Logger) *SyncEngine {
	return &SyncEngine{
		outbox:  outbox,
		adapter: serverAdapter,
		crypto:  crypto,
		online:  online,
		log:     log,
		now:     time.Now,
	}
}

// OnCleanFlush registers a hook invoked after every fully successful flush.
func (e *SyncEngine) OnCleanFlush(fn func(ctx context.Context)) {
	e.onClean = fn
}

// State returns the engine's current reported state.
func (e *SyncEngine) State() SyncState {
	switch e.state.Load() {
	case stateSyncing:
		return StateSyncing
	case stateError:
		return StateError
	default:
		return StateIdle
	}
}

// Queue returns a snapshot of the pending entries in queue order.
func (e *SyncEngine) Queue() []models.OutboxEntry {
	return e.outbox.ReadAll()
}

// Status returns the current user-visible sync summary.
func (e *SyncEngine) Status() SyncStatus {
	return SyncStatus{
		State:      e.State(),
		QueueDepth: e.outbox.Depth(),
		Online:     e.online(),
	}
}

// Flush performs one drain pass over the queue. It is a no-op when offline,
// when no passphrase is present, when the queue is empty, or when another
// flush is already in progress.
func (e *SyncEngine) Flush(ctx context.Context) {
	if !e.online() || !e.crypto.HasPassphrase() {
		return
	}
	if !e.inFlight.CompareAndSwap(false, true) {
		return
	}
	defer e.inFlight.Store(false)

	queue := e.outbox.ReadAll()
	if len(queue) == 0 {
		return
	}

	e.state.Store(stateSyncing)
	e.log.Debug().Int("entries", len(queue)).Msg("flushing outbox")

	hadError := false
	for _, entry := range queue {
		if err := e.apply(ctx, entry); err != nil {
			hadError = true
			e.outbox.RecordAttempt(entry.QueueID, e.now(), err)
			e.log.Warn().Err(err).
				Str("queue_id", entry.QueueID).
				Str("type", string(entry.Type)).
				Msg("outbox entry failed, will retry")
			continue
		}
		e.outbox.Remove(entry.QueueID)
	}

	if hadError {
		e.state.Store(stateError)
		return
	}

	e.state.Store(stateIdle)
	if e.onClean != nil {
		e.onClean(ctx)
	}
}

// Reset clears the queue and the error state. This is the explicit user
// escape hatch for entries the server keeps rejecting; there is no
// automatic discard.
func (e *SyncEngine) Reset() {
	e.outbox.Clear()
	e.state.Store(stateIdle)
}

func (e *SyncEngine) apply(ctx context.Context, entry models.OutboxEntry) error {
	switch entry.Type {
	case models.OutboxCreate:
		if entry.Draft == nil {
			return nil
		}
		req, err := e.buildCreateRequest(*entry.Draft)
		if err != nil {
			return err
		}
		return e.adapter.CreateItem(ctx, req)

	case models.OutboxDelete:
		if entry.Params == nil {
			return nil
		}
		err := e.adapter.DeleteItem(ctx, *entry.Params)
		if errors.Is(err, adapter.ErrNotFound) {
			// already gone server-side, nothing left to replay
			return nil
		}
		return err

	default:
		e.log.Warn().Str("type", string(entry.Type)).Msg("unknown outbox entry type, dropping")
		return nil
	}
}

func (e *SyncEngine) buildCreateRequest(draft models.Item) (adapter.CreateItemRequest, error) {
	name, err := e.crypto.EncryptText(draft.Name)
	if err != nil {
		return adapter.CreateItemRequest{}, err
	}
	content, err := e.crypto.EncryptText(draft.Content)
	if err != nil {
		return adapter.CreateItemRequest{}, err
	}

	return adapter.CreateItemRequest{
		ID:        draft.ID,
		Name:      name,
		Content:   content,
		Tag:       draft.Tag,
		StartTime: draft.StartTime,
		EndTime:   draft.EndTime,
		Published: draft.Published,
	}, nil
}

// markError flips the reported state to error without a flush. Used by the
// optimistic write path when an inline remote write fails and falls back to
// the queue.
func (e *SyncEngine) markError() {
	e.state.Store(stateError)
}
