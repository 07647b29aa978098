package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"contentagent/internal/platform/bus"
	"contentagent/internal/platform/config"
	"contentagent/internal/platform/db"
	"contentagent/internal/platform/httpserver"
	"contentagent/internal/platform/webui"
	"contentagent/internal/registry"
	"contentagent/modules/contentdiscovery"
	"contentagent/modules/contentgeneration"
	"contentagent/modules/keywordresearch"
	"contentagent/modules/scheduling"
	"contentagent/modules/wordpresspublisher"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

const shutdownTimeout = 10 * time.Second

// Mode selects which surfaces the process serves.
type Mode string

const (
	ModeFrontend Mode = "frontend"
	ModeBackend  Mode = "backend"
	ModeBoth     Mode = "both"
)

// ParseMode validates a mode flag value.
func ParseMode(raw string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(raw))) {
	case ModeFrontend:
		return ModeFrontend, nil
	case ModeBackend:
		return ModeBackend, nil
	case ModeBoth:
		return ModeBoth, nil
	default:
		return "", fmt.Errorf("unknown mode %q (choose frontend, backend or both)", raw)
	}
}

func (m Mode) servesAPI() bool {
	return m == ModeBackend || m == ModeBoth
}

func (m Mode) servesUI() bool {
	return m == ModeFrontend || m == ModeBoth
}

// App is the assembled platform: registry, bus, optional database, and
// the surfaces the selected mode serves.
type App struct {
	cfg      *config.Config
	mode     Mode
	logger   *slog.Logger
	bus      *bus.Bus
	postgres *db.Postgres
	registry *registry.Registry
	server   *httpserver.Server
	ui       *webui.Host
}

// Build wires the full module catalog. Modules whose configuration is
// absent still register; they report disabled at initialization instead
// of keeping the platform from starting.
func Build(cfg *config.Config, mode Mode, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	eventBus := bus.NewBus(logger)

	var pg *db.Postgres
	if cfg.Database.URL != "" {
		conn, err := db.Connect(cfg.Database.URL)
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		pg = conn
	} else {
		logger.Info("no database configured, using in-memory stores",
			"event", "bootstrap_memory_mode",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}

	reg := registry.New(cfg.Modules.Dir, logger)

	modules := []registry.Module{
		contentdiscovery.NewModule(contentdiscovery.Dependencies{
			Bus:          eventBus,
			FetchTimeout: cfg.Providers.RequestTimeout,
			Logger:       logger,
		}),
		keywordresearch.NewModule(keywordresearch.Dependencies{
			DB:              pg,
			Bus:             eventBus,
			Trending:        registryTrending{reg: reg},
			SerpAPIKey:      cfg.Providers.SerpAPIKey,
			ProviderTimeout: cfg.Providers.Timeout,
			RequestTimeout:  cfg.Providers.RequestTimeout,
			CacheTTL:        cfg.Cache.TTL,
			DailyRequests:   cfg.Limits.DailyRequests,
			DailyCost:       cfg.Limits.DailyCost,
			Logger:          logger,
		}),
		contentgeneration.NewModule(contentgeneration.Dependencies{
			OpenAIKey:     cfg.Providers.OpenAIAPIKey,
			AnthropicKey:  cfg.Providers.AnthropicAPIKey,
			DefaultTier:   cfg.Providers.DefaultTier,
			LocalFallback: cfg.Providers.LocalFallback,
			Logger:        logger,
		}),
		scheduling.NewModule(scheduling.Dependencies{
			Timezone: cfg.Scheduling.Timezone,
			MaxPosts: cfg.Scheduling.MaxPosts,
			Logger:   logger,
		}),
		wordpresspublisher.NewModule(wordpresspublisher.Dependencies{
			Bus:         eventBus,
			SiteURL:     cfg.WordPress.URL,
			Username:    cfg.WordPress.Username,
			AppPassword: cfg.WordPress.AppPassword,
			Logger:      logger,
		}),
	}
	for _, m := range modules {
		if err := reg.Register(m); err != nil {
			return nil, fmt.Errorf("register module: %w", err)
		}
	}

	app := &App{
		cfg:      cfg,
		mode:     mode,
		logger:   logger,
		bus:      eventBus,
		postgres: pg,
		registry: reg,
	}
	if mode.servesAPI() {
		app.server = httpserver.New(cfg.App.Name, cfg.App.Version, cfg.Server.APIAddr, reg, logger)
	}
	if mode.servesUI() {
		ui, err := webui.NewHost(cfg.App.Name, cfg.App.Version, cfg.Server.UIAddr, cfg.App.Debug, logger)
		if err != nil {
			return nil, fmt.Errorf("build ui host: %w", err)
		}
		app.ui = ui
	}
	return app, nil
}

// Registry exposes the module catalog, mainly for tests.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Run discovers and initializes the catalog, mounts active module
// surfaces, then serves until ctx is canceled. Module failures never
// abort the run; they surface through /health and the dashboard.
func (a *App) Run(ctx context.Context) error {
	if _, err := a.registry.Discover(ctx); err != nil {
		a.logger.Warn("some modules failed discovery",
			"event", "bootstrap_discovery_partial",
			"module", "internal/app/bootstrap",
			"layer", "platform",
			"error", err,
		)
	}

	report := a.registry.InitializeAll(ctx)
	a.logger.Info("module initialization finished",
		"event", "bootstrap_modules_initialized",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"active", report.Active,
		"disabled", report.Disabled,
		"failed", report.Failed,
		"skipped", report.Skipped,
	)

	if a.server != nil {
		if err := a.registry.RegisterRoutes(a.server.Mux()); err != nil {
			return fmt.Errorf("register module routes: %w", err)
		}
	}
	if a.ui != nil {
		if err := a.registry.RegisterUI(a.ui); err != nil {
			return fmt.Errorf("register module pages: %w", err)
		}
		a.ui.SetStatusSource(a.moduleStatuses)
	}

	errCh := make(chan error, 2)
	if a.server != nil {
		go func() { errCh <- a.server.Start() }()
	}
	if a.ui != nil {
		go func() { errCh <- a.ui.Start() }()
	}

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if a.server != nil {
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			a.logger.Warn("http server shutdown failed",
				"event", "bootstrap_shutdown_failed",
				"module", "internal/app/bootstrap",
				"layer", "platform",
				"error", err,
			)
		}
	}
	if a.ui != nil {
		if err := a.ui.Shutdown(shutdownCtx); err != nil {
			a.logger.Warn("ui server shutdown failed",
				"event", "bootstrap_shutdown_failed",
				"module", "internal/app/bootstrap",
				"layer", "platform",
				"error", err,
			)
		}
	}
	if err := a.registry.ShutdownAll(shutdownCtx); err != nil {
		a.logger.Warn("module shutdown failed",
			"event", "bootstrap_shutdown_failed",
			"module", "internal/app/bootstrap",
			"layer", "platform",
			"error", err,
		)
	}
	return nil
}

// Close releases connections held by the app.
func (a *App) Close() error {
	a.bus.Close()
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (a *App) moduleStatuses() []webui.ModuleStatus {
	entries := a.registry.Entries()
	statuses := make([]webui.ModuleStatus, 0, len(entries))
	for _, e := range entries {
		status := webui.ModuleStatus{
			Name:        e.Info.Name,
			Version:     e.Info.Version,
			Description: e.Info.Description,
			State:       string(e.State),
		}
		if e.Err != nil {
			status.Detail = e.Err.Error()
		}
		statuses = append(statuses, status)
	}
	return statuses
}

// registryTrending resolves the discovery module lazily so keyword
// research keeps working when discovery is disabled or failed.
type registryTrending struct {
	reg *registry.Registry
}

type trendingSource interface {
	TrendingTopics(ctx context.Context, limit int) ([]string, error)
}

func (t registryTrending) TrendingTopics(ctx context.Context, limit int) ([]string, error) {
	mod, ok := t.reg.Get("content-discovery")
	if !ok {
		return nil, nil
	}
	source, ok := mod.(trendingSource)
	if !ok {
		return nil, nil
	}
	return source.TrendingTopics(ctx, limit)
}
