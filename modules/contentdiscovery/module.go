package contentdiscovery

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"contentagent/internal/platform/bus"
	"contentagent/internal/platform/webui"
	"contentagent/internal/registry"
	"contentagent/modules/contentdiscovery/adapters/feed"
	httpadapter "contentagent/modules/contentdiscovery/adapters/http"
	"contentagent/modules/contentdiscovery/adapters/memory"
	"contentagent/modules/contentdiscovery/application"
)

const moduleName = "content-discovery"

// Event name consumed from the bus. Declared here rather than imported so
// the module works whether or not keyword research is present.
const researchCompletedEvent = "keyword_research.completed"

type Dependencies struct {
	Bus          *bus.Bus
	FetchTimeout time.Duration
	Logger       *slog.Logger
}

// Module profiles competitor sites through their feeds and tracks which
// topics keep coming up, here and in keyword research.
type Module struct {
	deps    Dependencies
	logger  *slog.Logger
	service application.Service
	handler httpadapter.Handler
	ui      *webui.Host
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
		Name:        moduleName,
		Version:     "2.0.0",
		Description: "Competitor content analysis and trending topic discovery",
		Author:      "Content Agent Team",
	}
}

// ApplySettings handles per-module manifest overrides. Unknown keys are
// ignored so manifests can carry forward-compatible settings.
func (m *Module) ApplySettings(settings map[string]any) error {
	for key, value := range settings {
		var err error
		switch key {
		case "fetch_timeout":
			m.deps.FetchTimeout, err = durationSetting(value)
		}
		if err != nil {
			return fmt.Errorf("setting %q: %w", key, err)
		}
	}
	return nil
}

func (m *Module) Initialize(ctx context.Context) error {
	m.service = application.Service{
		Feeds:  feed.NewClient(m.deps.FetchTimeout, m.logger),
		Topics: memory.NewStore(),
		Logger: m.logger,
	}
	m.handler = httpadapter.Handler{Service: m.service, Logger: m.logger}

	// The subscription lives until ctx is canceled at shutdown.
	if m.deps.Bus != nil {
		m.deps.Bus.Subscribe(ctx, researchCompletedEvent, moduleName, m.consumeResearchEvent)
	}

	m.logger.Info("content discovery module initialized",
		"event", "module_initialized",
		"module", "modules/contentdiscovery",
		"layer", "module",
		"bus_attached", m.deps.Bus != nil,
	)
	return nil
}

func (m *Module) RegisterRoutes(mux *http.ServeMux) error {
	m.handler.Register(mux)
	return nil
}

func (m *Module) RegisterUI(ui *webui.Host) error {
	m.ui = ui
	ui.AddNav("Discovery", "/discovery")
	ui.Handle(http.MethodGet, "/discovery", m.handleDiscoveryPage)
	ui.Handle(http.MethodPost, "/discovery", m.handleDiscoveryAnalyze)
	return nil
}

func (m *Module) Shutdown(ctx context.Context) error {
	return nil
}

func (m *Module) HealthCheck(ctx context.Context) registry.Health {
	return registry.Health{
		Status: registry.HealthHealthy,
		Detail: map[string]any{
			"topics_tracked": m.service.TrackedTopics(ctx),
		},
	}
}

// TrendingTopics exposes ranked topic names to other modules.
func (m *Module) TrendingTopics(ctx context.Context, limit int) ([]string, error) {
	trending, err := m.service.TrendingTopics(ctx, limit)
	if err != nil {
		return nil, err
	}
	topics := make([]string, 0, len(trending))
	for _, topic := range trending {
		topics = append(topics, topic.Topic)
	}
	return topics, nil
}

// Service exposes the discovery pipeline to the bootstrap wiring.
func (m *Module) Service() application.Service {
	return m.service
}

// consumeResearchEvent folds keywords researched elsewhere into the trending
// tally. Events stay in-process, so payload values keep their Go types.
func (m *Module) consumeResearchEvent(ctx context.Context, event bus.Event) error {
	payload, ok := event.Payload.(map[string]any)
	if !ok {
		return nil
	}
	var keywords []string
	if keyword, ok := payload["keyword"].(string); ok {
		keywords = append(keywords, keyword)
	}
	switch related := payload["related_keywords"].(type) {
	case []string:
		keywords = append(keywords, related...)
	case []any:
		for _, value := range related {
			if keyword, ok := value.(string); ok {
				keywords = append(keywords, keyword)
			}
		}
	}
	if len(keywords) == 0 {
		return nil
	}
	return m.service.RecordKeywords(ctx, event.Source, keywords)
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
