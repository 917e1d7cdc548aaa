package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/ayutaki/kiroku/internal/adapter"
	"github.com/ayutaki/kiroku/internal/logger"
	"github.com/ayutaki/kiroku/internal/store"
	"github.com/ayutaki/kiroku/models"
)

// Placeholders shown in place of ciphertext that cannot be read.
const (
	lockedPlaceholder        = "🔒 Encrypted"
	decryptFailedPlaceholder = "Decryption failed"
)

// ItemsService is the write and read path for diary items. Writes are
// optimistic: the draft (or deletion) is applied to the local month cache
// immediately, then either sent inline when the network is up or parked in
// the outbox for the sync engine. Reads are the merge of server-fetched
// records with whatever is still pending in the queue.
type ItemsService struct {
	drafts  *DraftBuilder
	outbox  *store.Outbox
	cache   *store.MonthCache
	adapter adapter.ServerAdapter
	crypto  CryptoService
	engine  *SyncEngine
	online  func() bool
	log     *logger.Logger
	now     func() time.Time
}

func NewItemsService(
	drafts *DraftBuilder,
	outbox *store.Outbox,
	cache *store.MonthCache,
	serverAdapter adapter.ServerAdapter,
	crypto CryptoService,
	engine *SyncEngine,
	online func() bool,
	log *logger.Logger,
) *ItemsService {
	return &ItemsService{
		drafts:  drafts,
		outbox:  outbox,
		cache:   cache,
		adapter: serverAdapter,
		crypto:  crypto,
		engine:  engine,
		online:  online,
		log:     log,
		now:     time.Now,
	}
}

// SetPassphrase installs the encryption passphrase and drops all cached
// month views, since anything decrypted under a previous passphrase is
// stale.
func (s *ItemsService) SetPassphrase(passphrase string) {
	s.crypto.SetPassphrase(passphrase)
	s.cache.InvalidateAll()
}

// Status reports the current sync summary.
func (s *ItemsService) Status() SyncStatus {
	return s.engine.Status()
}

// Save builds a draft from the form and persists it. The draft lands in
// the month cache right away; when the server is reachable the create is
// attempted inline, and on failure (or offline) it goes through the
// outbox. existingID non-empty means an edit: the prior version is removed
// from every cached day before the new one is placed.
func (s *ItemsService) Save(ctx context.Context, form models.EntryForm, existingID string) (models.Item, error) {
	draft := s.drafts.Build(form, existingID)

	s.projectDraft(draft)

	if !s.online() {
		s.enqueueCreate(draft)
		return draft, nil
	}

	req, err := s.engine.buildCreateRequest(draft)
	if err != nil {
		return models.Item{}, err
	}
	if err := s.adapter.CreateItem(ctx, req); err != nil {
		s.log.Warn().Err(err).Str("id", draft.ID).Msg("inline create failed, queueing")
		s.engine.markError()
		s.enqueueCreate(draft)
	}
	return draft, nil
}

// Delete removes the item locally and records the deletion. As with Save,
// the remote call is attempted inline when online and queued otherwise.
func (s *ItemsService) Delete(ctx context.Context, item models.Item) error {
	params := DeleteParamsFor(item)

	s.cache.UpdateAll(func(records []models.DayRecord) []models.DayRecord {
		return removeItem(records, item.ID)
	})

	if !s.online() {
		s.enqueueDelete(params)
		return nil
	}

	if err := s.adapter.DeleteItem(ctx, params); err != nil && !errors.Is(err, adapter.ErrNotFound) {
		s.log.Warn().Err(err).Str("id", params.ItemID).Msg("inline delete failed, queueing")
		s.engine.markError()
		s.enqueueDelete(params)
	}
	return nil
}

// LoadMonth returns the merged view for a month (monthKey "YYYY-MM"). When
// the month is not cached and the network is up, it is fetched from the
// server, decrypted, overlaid with the pending queue, and cached. A cached
// month is re-overlaid on every read, which is safe because applying the
// queue is idempotent.
func (s *ItemsService) LoadMonth(ctx context.Context, monthKey string) ([]models.DayRecord, error) {
	records, ok := s.cache.Get(monthKey)
	if !ok {
		if !s.online() {
			// no server data to merge onto; show the queue but leave the
			// cache empty so the month is fetched once the network is back
			return MergeOutbox(nil, s.outbox.ReadAll(), monthKey), nil
		}
		fetched, err := s.fetchMonth(ctx, monthKey)
		if err != nil {
			return nil, err
		}
		records = fetched
	}

	merged := MergeOutbox(records, s.outbox.ReadAll(), monthKey)
	s.cache.Put(monthKey, merged)
	return merged, nil
}

// Refresh drops the cached copy of a month and reloads it.
func (s *ItemsService) Refresh(ctx context.Context, monthKey string) ([]models.DayRecord, error) {
	s.cache.Invalidate(monthKey)
	return s.LoadMonth(ctx, monthKey)
}

// Timeline flattens a month into items sorted newest-first. A multi-day
// event appears once, on its first (filing) day.
func (s *ItemsService) Timeline(ctx context.Context, monthKey string) ([]models.Item, error) {
	records, err := s.LoadMonth(ctx, monthKey)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var items []models.Item
	for _, rec := range records {
		for _, item := range rec.OrderedItems {
			if item.ID != "" {
				if _, dup := seen[item.ID]; dup {
					continue
				}
				seen[item.ID] = struct{}{}
			}
			items = append(items, item)
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return sortStamp(items[i]) > sortStamp(items[j])
	})
	return items, nil
}

func sortStamp(item models.Item) string {
	if item.StartTime != "" {
		return item.StartTime
	}
	if item.Published != "" {
		return item.Published
	}
	return item.Date
}

func (s *ItemsService) fetchMonth(ctx context.Context, monthKey string) ([]models.DayRecord, error) {
	year, month, err := splitMonthKey(monthKey)
	if err != nil {
		return nil, err
	}

	records, err := s.adapter.FetchMonth(ctx, year, month)
	if err != nil {
		return nil, err
	}

	for ri := range records {
		for ii := range records[ri].OrderedItems {
			s.decryptItem(&records[ri].OrderedItems[ii])
		}
	}
	return records, nil
}

// decryptItem decrypts Name and Content in place. Items that cannot be
// read are kept visible with a placeholder instead of failing the whole
// month.
func (s *ItemsService) decryptItem(item *models.Item) {
	if !s.crypto.HasPassphrase() {
		if strings.HasPrefix(item.Name, cipherPrefix) {
			item.Name = lockedPlaceholder
		}
		if strings.HasPrefix(item.Content, cipherPrefix) {
			item.Content = lockedPlaceholder
		}
		item.Decrypted = false
		return
	}

	name, nameErr := s.crypto.DecryptText(item.Name)
	content, contentErr := s.crypto.DecryptText(item.Content)
	if nameErr != nil || contentErr != nil {
		item.Name = lockedPlaceholder
		item.Content = decryptFailedPlaceholder
		item.Decrypted = false
		return
	}

	item.Name = name
	item.Content = content
	item.Decrypted = true
}

// projectDraft places a freshly built draft into the cached view of its
// month and removes any prior version of the same item everywhere.
func (s *ItemsService) projectDraft(draft models.Item) {
	monthKey := models.MonthKey(draft.FilingDate())

	s.cache.UpdateAll(func(records []models.DayRecord) []models.DayRecord {
		return removeItem(records, draft.ID)
	})
	s.cache.Update(monthKey, func(records []models.DayRecord) []models.DayRecord {
		return upsertItem(records, draft, monthKey)
	})
}

func (s *ItemsService) enqueueCreate(draft models.Item) {
	d := draft
	s.outbox.Enqueue(models.OutboxEntry{
		QueueID:   NewQueueID(),
		Type:      models.OutboxCreate,
		Draft:     &d,
		CreatedAt: s.now(),
	})
}

func (s *ItemsService) enqueueDelete(params models.DeleteParams) {
	p := params
	s.outbox.Enqueue(models.OutboxEntry{
		QueueID:   NewQueueID(),
		Type:      models.OutboxDelete,
		Params:    &p,
		CreatedAt: s.now(),
	})
}

func splitMonthKey(monthKey string) (int, int, error) {
	t, err := time.Parse("2006-01", monthKey)
	if err != nil {
		return 0, 0, err
	}
	return t.Year(), int(t.Month()), nil
}
