package app

import (
	"context"
	"fmt"
	"os"

	"github.com/yungbote/ismaspace-backend/internal/data/db"
	"github.com/yungbote/ismaspace-backend/internal/http"
	"github.com/yungbote/ismaspace-backend/internal/observability"
	"github.com/yungbote/ismaspace-backend/internal/pkg/logger"
	"github.com/yungbote/ismaspace-backend/internal/realtime"
	"github.com/yungbote/ismaspace-backend/internal/services"
)

// Core is the store plus the service layer, without any transport. The CLI
// runs on a Core; the API server wraps one.
type Core struct {
	Log      *logger.Logger
	Cfg      Config
	Store    *db.Store
	Repos    Repos
	Services Services
}

// NewCore opens and migrates the store, wires repos and services, and seeds
// the catalog when cfg.SeedOnStart is set.
func NewCore(log *logger.Logger, cfg Config, notifier services.ProgressNotifier, metrics *observability.Metrics) (*Core, error) {
	store, err := db.Open(cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if err := db.AutoMigrateAll(store.DB()); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("automigrate: %w", err)
	}

	reposet := wireRepos(store.DB(), log)
	serviceset := wireServices(store.DB(), log, reposet, notifier, metrics)

	c := &Core{Log: log, Cfg: cfg, Store: store, Repos: reposet, Services: serviceset}
	if cfg.SeedOnStart {
		if err := c.Seed(context.Background()); err != nil {
			_ = store.Close()
			return nil, err
		}
	}
	return c, nil
}

// Seed inserts the bundled catalog and the default user. Re-running it
// changes nothing.
func (c *Core) Seed(ctx context.Context) error {
	catalog, err := db.DefaultCatalog()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	if err := db.Seed(c.Store.DB().WithContext(ctx), catalog); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	if _, err := c.Services.User.EnsureDefault(ctx, c.Cfg.DefaultUserID); err != nil {
		return fmt.Errorf("seed default user: %w", err)
	}
	c.Log.Info("Catalog seeded", "topics", len(catalog.Topics))
	return nil
}

func (c *Core) Close() error {
	if c == nil || c.Store == nil {
		return nil
	}
	return c.Store.Close()
}

type App struct {
	*Core

	Clients Clients
	SSEHub  *realtime.SSEHub
	Metrics *observability.Metrics
	Server  *http.Server

	otelShutdown func(context.Context) error
	cancel       context.CancelFunc
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	otelShutdown := observability.InitOTel(context.Background(), log, cfg.Otel)
	metrics := observability.Init(cfg.MetricsEnabled, log).WithScrapeInterval(cfg.MetricsScrapeInterval)

	clients, err := wireClients(log, cfg)
	if err != nil {
		log.Sync()
		return nil, err
	}

	ssehub := realtime.NewSSEHub(log)
	if metrics != nil {
		ssehub.WithClientGauge(metrics)
	}
	notifier := services.NewProgressNotifier(&services.BusEmitter{Bus: clients.Bus, Log: log, Metrics: metrics})

	core, err := NewCore(log, cfg, notifier, metrics)
	if err != nil {
		_ = clients.Close()
		log.Sync()
		return nil, err
	}

	handlerset := wireHandlers(log, core.Store, core.Services, ssehub)
	server := wireServer(log, cfg, core.Services, handlerset, metrics)

	return &App{
		Core:         core,
		Clients:      clients,
		SSEHub:       ssehub,
		Metrics:      metrics,
		Server:       server,
		otelShutdown: otelShutdown,
	}, nil
}

// Start launches background work: the realtime forwarder and collectors.
func (a *App) Start() error {
	if a == nil || a.cancel != nil {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	if err := a.Clients.Bus.StartForwarder(ctx, a.SSEHub.Broadcast); err != nil {
		return fmt.Errorf("start realtime forwarder: %w", err)
	}
	if a.Metrics != nil {
		a.Metrics.StartDBCollector(ctx, a.Log, a.Store.DB())
		if a.Clients.Redis != nil {
			a.Metrics.StartRedisCollector(ctx, a.Log, a.Clients.Redis.Client())
		}
		a.Metrics.StartServer(ctx, a.Log, a.Cfg.MetricsAddr)
	}
	return nil
}

func (a *App) Run(addr string) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Log.Info("HTTP server listening", "addr", addr)
	return a.Server.Run(addr)
}

func (a *App) Shutdown(ctx context.Context) error {
	if a == nil {
		return nil
	}
	return a.Server.Shutdown(ctx)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), a.Cfg.ShutdownTimeout)
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
		cancel()
	}
	if err := a.Clients.Close(); err != nil {
		a.Log.Warn("realtime bus close failed", "error", err)
	}
	if err := a.Core.Close(); err != nil {
		a.Log.Warn("store close failed", "error", err)
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
