package service

import (
	"context"

	"github.com/ayutaki/kiroku/internal/adapter"
	"github.com/ayutaki/kiroku/internal/logger"
	"github.com/ayutaki/kiroku/internal/store"
)

// Services bundles the client-side service layer behind one handle.
type Services struct {
	Crypto CryptoService
	Drafts *DraftBuilder
	Items  *ItemsService
	Engine *SyncEngine
}

// NewServices wires the service layer over the given stores and adapter.
// online gates both inline writes and flushes.
func NewServices(
	outbox *store.Outbox,
	cache *store.MonthCache,
	serverAdapter adapter.ServerAdapter,
	online func() bool,
	log *logger.Logger,
) *Services {
	crypto := NewCryptoService()
	drafts := NewDraftBuilder()

	engine := NewSyncEngine(outbox, serverAdapter, crypto, online, log)

	// Every pending mutation has reached the server, so cached months are
	// stale; drop them and let the next read refetch.
	engine.OnCleanFlush(func(_ context.Context) {
		cache.InvalidateAll()
	})

	items := NewItemsService(drafts, outbox, cache, serverAdapter, crypto, engine, online, log)

	return &Services{
		Crypto: crypto,
		Drafts: drafts,
		Items:  items,
		Engine: engine,
	}
}
