package client

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"github.com/ayutaki/kiroku/internal/adapter"
	"github.com/ayutaki/kiroku/internal/config"
	"github.com/ayutaki/kiroku/internal/kvstore"
	"github.com/ayutaki/kiroku/internal/logger"
	"github.com/ayutaki/kiroku/internal/netmon"
	"github.com/ayutaki/kiroku/internal/service"
	"github.com/ayutaki/kiroku/internal/store"
)

const passphraseEnv = "KIROKU_PASSPHRASE"

// App owns the assembled client: configuration, local stores, the remote
// adapter, connectivity monitoring, and the service layer. Commands reach
// everything through it.
type App struct {
	Config    *config.Config
	Services  *service.Services
	Templates *store.Templates
	Recurring *store.Recurring
	Monitor   *netmon.Monitor
	Log       *logger.Logger

	syncJob *service.SyncJob
}

// NewApp wires the full client from configuration. overrides carries
// command-line flag values layered on top of env and file config.
func NewApp(overrides *config.Config, log *logger.Logger) (*App, error) {
	cfg, err := config.GetWithOverrides(overrides)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	storagePath := cfg.Storage.Path
	if storagePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		storagePath = filepath.Join(home, ".kiroku")
	}

	kv, err := kvstore.NewDiskv(storagePath)
	if err != nil {
		return nil, fmt.Errorf("open local storage: %w", err)
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Server, log)
	if err != nil {
		return nil, fmt.Errorf("create server adapter: %w", err)
	}

	monitor := netmon.New(
		adapter.Probe(cfg.Server.Address, cfg.Server.RequestTimeout.Duration()),
		cfg.Sync.ProbeInterval.Duration(),
		log,
	)

	outbox := store.NewOutbox(kv, log)
	cache := store.NewMonthCache()

	services := service.NewServices(outbox, cache, serverAdapter, monitor.Online, log)

	return &App{
		Config:    cfg,
		Services:  services,
		Templates: store.NewTemplates(kv, log),
		Recurring: store.NewRecurring(kv, log),
		Monitor:   monitor,
		Log:       log,
		syncJob: service.NewSyncJob(
			services.Engine,
			cfg.Sync.Interval.Duration(),
			monitor.Events(),
			log,
		),
	}, nil
}

// Unlock installs the encryption passphrase, reading it from the
// environment when set and prompting on the terminal otherwise.
func (a *App) Unlock() error {
	passphrase := os.Getenv(passphraseEnv)
	if passphrase == "" {
		fmt.Fprint(os.Stderr, "Passphrase: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return fmt.Errorf("read passphrase: %w", err)
		}
		passphrase = string(raw)
	}
	if passphrase == "" {
		return service.ErrNoPassphrase
	}

	a.Services.Items.SetPassphrase(passphrase)
	return nil
}

// Start launches connectivity probing and the background flush loop.
func (a *App) Start(ctx context.Context) {
	a.Monitor.Start(ctx)
	a.syncJob.Start(ctx)
}

// Stop tears down the background loops, waiting for in-flight work.
func (a *App) Stop() {
	a.syncJob.Stop()
	a.Monitor.Stop()
}
