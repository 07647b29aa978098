// Package scheduling owns the posting clock: the timezone schedules are
// interpreted in, the scheduled-post cap, and the periodic maintenance
// catalog. The task runner that executes schedules is not wired yet.
package scheduling

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"contentagent/internal/platform/webui"
	"contentagent/internal/registry"
)

const moduleName = "scheduling"

// maintenanceJob is one periodic task the scheduler runs once a task
// runner is attached.
type maintenanceJob struct {
	Name     string
	Interval time.Duration
}

var maintenanceJobs = []maintenanceJob{
	{Name: "cleanup-expired-schedules", Interval: time.Hour},
	{Name: "check-pending-schedules", Interval: 5 * time.Minute},
	{Name: "generate-daily-reports", Interval: 24 * time.Hour},
}

type Dependencies struct {
	Timezone string
	MaxPosts int

	Logger *slog.Logger
}

// Module validates its clock configuration at startup; a timezone the
// host cannot load is an initialization failure, not a silent UTC.
type Module struct {
	deps     Dependencies
	logger   *slog.Logger
	location *time.Location
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
		Description:          "Content scheduling and automated publishing windows",
		Author:               "Content Agent Team",
		OptionalDependencies: []string{"content-generation"},
	}
}

// ApplySettings handles per-module manifest overrides. Unknown keys are
// ignored so manifests can carry forward-compatible settings.
func (m *Module) ApplySettings(settings map[string]any) error {
	for key, value := range settings {
		var err error
		switch key {
		case "timezone":
			text, ok := value.(string)
			if !ok {
				err = fmt.Errorf("expected string, got %T", value)
			} else {
				m.deps.Timezone = strings.TrimSpace(text)
			}
		case "max_posts":
			switch v := value.(type) {
			case int:
				m.deps.MaxPosts = v
			case float64:
				m.deps.MaxPosts = int(v)
			default:
				err = fmt.Errorf("expected number, got %T", value)
			}
		}
		if err != nil {
			return fmt.Errorf("setting %q: %w", key, err)
		}
	}
	return nil
}

func (m *Module) Initialize(ctx context.Context) error {
	tz := m.deps.Timezone
	if tz == "" {
		tz = "UTC"
	}
	location, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("load timezone %q: %w", tz, err)
	}
	m.location = location

	m.logger.Info("scheduling module initialized",
		"event", "module_initialized",
		"module", "modules/scheduling",
		"layer", "module",
		"timezone", m.location.String(),
		"max_posts", m.deps.MaxPosts,
	)
	return nil
}

func (m *Module) RegisterRoutes(mux *http.ServeMux) error {
	mux.HandleFunc("GET /api/scheduling/status", m.handleStatus)
	return nil
}

// RegisterUI is a no-op: the calendar page ships with the task runner,
// the dashboard carries module state until then.
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
			"timezone": m.location.String(),
		},
	}
}

// Location is the zone all schedules are interpreted in.
func (m *Module) Location() *time.Location {
	return m.location
}
