// Package wordpresspublisher connects the platform to a WordPress site
// over its REST API. Without a configured site the module reports itself
// disabled instead of failing the platform; with one it validates the
// site URL at startup and tracks publish demand from the bus.
package wordpresspublisher

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"

	"contentagent/internal/platform/bus"
	"contentagent/internal/platform/webui"
	"contentagent/internal/registry"
)

const moduleName = "wordpress-publisher"

// Event consumed from the bus. Declared here rather than imported so the
// module works whether or not scheduling is present.
const publishRequestedEvent = "scheduling.publish_requested"

type Dependencies struct {
	Bus *bus.Bus

	SiteURL     string
	Username    string
	AppPassword string

	Logger *slog.Logger
}

type Module struct {
	deps            Dependencies
	logger          *slog.Logger
	site            *url.URL
	publishRequests atomic.Int64
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
		Description:          "WordPress content publishing and site management",
		Author:               "Content Agent Team",
		Dependencies:         []string{"content-generation"},
		OptionalDependencies: []string{"scheduling"},
	}
}

// ApplySettings handles per-module manifest overrides. Unknown keys are
// ignored so manifests can carry forward-compatible settings.
func (m *Module) ApplySettings(settings map[string]any) error {
	for key, value := range settings {
		text, ok := value.(string)
		switch key {
		case "site_url":
			if !ok {
				return fmt.Errorf("setting %q: expected string, got %T", key, value)
			}
			m.deps.SiteURL = strings.TrimSpace(text)
		case "username":
			if !ok {
				return fmt.Errorf("setting %q: expected string, got %T", key, value)
			}
			m.deps.Username = strings.TrimSpace(text)
		case "app_password":
			if !ok {
				return fmt.Errorf("setting %q: expected string, got %T", key, value)
			}
			m.deps.AppPassword = text
		}
	}
	return nil
}

func (m *Module) Initialize(ctx context.Context) error {
	if m.deps.SiteURL == "" || m.deps.Username == "" || m.deps.AppPassword == "" {
		return fmt.Errorf("%w: wordpress connection not configured (set WORDPRESS_URL, WORDPRESS_USERNAME and WORDPRESS_APP_PASSWORD)", registry.ErrModuleDisabled)
	}

	site, err := url.Parse(m.deps.SiteURL)
	if err != nil {
		return fmt.Errorf("parse wordpress site url: %w", err)
	}
	if site.Host == "" || (site.Scheme != "http" && site.Scheme != "https") {
		return fmt.Errorf("wordpress site url %q is not an http(s) url", m.deps.SiteURL)
	}
	m.site = site

	if m.deps.Bus != nil {
		// The subscription lives until ctx is canceled at shutdown.
		m.deps.Bus.Subscribe(ctx, publishRequestedEvent, moduleName, m.consumePublishRequest)
	}

	m.logger.Info("wordpress publisher initialized",
		"event", "module_initialized",
		"module", "modules/wordpresspublisher",
		"layer", "module",
		"site", site.Host,
		"bus_attached", m.deps.Bus != nil,
	)
	return nil
}

func (m *Module) RegisterRoutes(mux *http.ServeMux) error {
	mux.HandleFunc("GET /api/wordpress/status", m.handleStatus)
	return nil
}

// RegisterUI is a no-op: publishing is driven through the API, the
// dashboard carries module state.
func (m *Module) RegisterUI(ui *webui.Host) error {
	return nil
}

func (m *Module) Shutdown(ctx context.Context) error {
	return nil
}

func (m *Module) HealthCheck(ctx context.Context) registry.Health {
	return registry.Health{
		Status: registry.HealthHealthy,
		Detail: map[string]any{
			"site":             m.site.Host,
			"publish_requests": m.publishRequests.Load(),
		},
	}
}

// consumePublishRequest counts publish demand from the scheduler. The
// posting pipeline is not wired yet, so requests are acknowledged and
// surfaced through the status endpoint instead of being dropped silently.
func (m *Module) consumePublishRequest(ctx context.Context, event bus.Event) error {
	m.publishRequests.Add(1)
	m.logger.Info("publish request received",
		"event", "publish_request_received",
		"module", "modules/wordpresspublisher",
		"layer", "module",
		"source", event.Source,
	)
	return nil
}
