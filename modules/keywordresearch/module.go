package keywordresearch

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"contentagent/internal/platform/bus"
	"contentagent/internal/platform/db"
	"contentagent/internal/platform/webui"
	"contentagent/internal/registry"
	httpadapter "contentagent/modules/keywordresearch/adapters/http"
	"contentagent/modules/keywordresearch/adapters/memory"
	postgresadapter "contentagent/modules/keywordresearch/adapters/postgres"
	"contentagent/modules/keywordresearch/adapters/serp"
	"contentagent/modules/keywordresearch/adapters/trends"
	"contentagent/modules/keywordresearch/application"
	"contentagent/modules/keywordresearch/ports"
)

const moduleName = "keyword-research"

type Dependencies struct {
	DB       *db.Postgres
	Bus      *bus.Bus
	Trending ports.TrendingSource

	SerpAPIKey      string
	ProviderTimeout time.Duration
	RequestTimeout  time.Duration
	CacheTTL        time.Duration
	DailyRequests   int
	DailyCost       float64

	Logger *slog.Logger
}

// Module bundles keyword research: the full provider fan-out pipeline, its
// REST surface, and a UI page.
type Module struct {
	deps    Dependencies
	logger  *slog.Logger
	service application.Service
	handler httpadapter.Handler
	ui      *webui.Host
	live    bool
}

func NewModule(deps Dependencies) *Module {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Module{deps: deps, logger: logger}
}

func (m *Module) Info() registry.ModuleInfo {
	return registry.ModuleInfo{
		Name:                 moduleName,
		Version:              "1.0.0",
		Description:          "Comprehensive keyword research and analysis",
		Author:               "Content Agent Team",
		OptionalDependencies: []string{"content-discovery"},
	}
}

// ApplySettings handles per-module manifest overrides. Unknown keys are
// ignored so manifests can carry forward-compatible settings.
func (m *Module) ApplySettings(settings map[string]any) error {
	for key, value := range settings {
		var err error
		switch key {
		case "provider_timeout":
			m.deps.ProviderTimeout, err = durationSetting(value)
		case "cache_ttl":
			m.deps.CacheTTL, err = durationSetting(value)
		case "daily_requests":
			m.deps.DailyRequests, err = intSetting(value)
		case "daily_cost":
			m.deps.DailyCost, err = floatSetting(value)
		case "serpapi_key":
			text, ok := value.(string)
			if !ok {
				err = fmt.Errorf("expected string, got %T", value)
			} else {
				m.deps.SerpAPIKey = strings.TrimSpace(text)
			}
		}
		if err != nil {
			return fmt.Errorf("setting %q: %w", key, err)
		}
	}
	return nil
}

func (m *Module) Initialize(ctx context.Context) error {
	store := memory.NewStore(m.deps.CacheTTL, m.deps.DailyRequests, m.deps.DailyCost)

	var researchStore ports.ResearchStore = store
	if m.deps.DB != nil {
		pg := postgresadapter.NewStore(m.deps.DB.DB, m.logger)
		if err := pg.Migrate(); err != nil {
			return fmt.Errorf("migrate keyword research schema: %w", err)
		}
		researchStore = pg
	}

	var events ports.EventPublisher
	if m.deps.Bus != nil {
		events = busPublisher{bus: m.deps.Bus}
	}

	m.live = m.deps.SerpAPIKey != ""
	m.service = application.Service{
		Trends:          trends.NewSimulated(m.logger),
		SERP:            serp.NewClient(m.deps.SerpAPIKey, "", m.deps.RequestTimeout, m.logger),
		Store:           researchStore,
		Cache:           store,
		Usage:           store,
		Trending:        m.deps.Trending,
		Events:          events,
		ProviderTimeout: m.deps.ProviderTimeout,
		Logger:          m.logger,
	}
	m.handler = httpadapter.Handler{Service: m.service, Logger: m.logger}

	m.logger.Info("keyword research module initialized",
		"event", "module_initialized",
		"module", "modules/keywordresearch",
		"layer", "module",
		"serp_mode", m.serpMode(),
		"persistent_history", m.deps.DB != nil,
	)
	return nil
}

func (m *Module) RegisterRoutes(mux *http.ServeMux) error {
	m.handler.Register(mux)
	return nil
}

func (m *Module) RegisterUI(ui *webui.Host) error {
	m.ui = ui
	ui.AddNav("Keywords", "/keywords")
	ui.Handle(http.MethodGet, "/keywords", m.handleKeywordsPage)
	ui.Handle(http.MethodPost, "/keywords", m.handleKeywordsResearch)
	return nil
}

func (m *Module) Shutdown(ctx context.Context) error {
	return nil
}

func (m *Module) HealthCheck(ctx context.Context) registry.Health {
	return registry.Health{
		Status: registry.HealthHealthy,
		Detail: map[string]any{
			"serp_mode": m.serpMode(),
		},
	}
}

// Service exposes the research pipeline to other modules and the bootstrap
// wiring.
func (m *Module) Service() application.Service {
	return m.service
}

func (m *Module) serpMode() string {
	if m.live {
		return "live"
	}
	return "simulated"
}

type busPublisher struct {
	bus *bus.Bus
}

func (p busPublisher) Publish(ctx context.Context, name string, payload map[string]any) error {
	return p.bus.Publish(ctx, bus.New(name, moduleName, payload))
}

func durationSetting(value any) (time.Duration, error) {
	switch v := value.(type) {
	case string:
		return time.ParseDuration(v)
	case int:
		return time.Duration(v) * time.Second, nil
	case float64:
		return time.Duration(v * float64(time.Second)), nil
	default:
		return 0, fmt.Errorf("expected duration, got %T", value)
	}
}

func intSetting(value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case float64:
		return int(v), nil
	default:
		return 0, fmt.Errorf("expected number, got %T", value)
	}
}

func floatSetting(value any) (float64, error) {
	switch v := value.(type) {
	case int:
		return float64(v), nil
	case float64:
		return v, nil
	default:
		return 0, fmt.Errorf("expected number, got %T", value)
	}
}
