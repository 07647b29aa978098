package registry

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"contentagent/internal/platform/webui"
)

// ModuleInfo is the metadata every feature module declares. Name is the
// registry-wide identity. Dependencies name modules that must be active
// before this one initializes. OptionalDependencies only order initialization
// when the named module happens to be registered; an absent optional
// dependency is not an error.
type ModuleInfo struct {
	Name                 string   `json:"name"`
	Version              string   `json:"version"`
	Description          string   `json:"description"`
	Author               string   `json:"author,omitempty"`
	Dependencies         []string `json:"dependencies"`
	OptionalDependencies []string `json:"optional_dependencies,omitempty"`
}

var (
	moduleNameRe    = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)
	moduleVersionRe = regexp.MustCompile(`^v?\d+\.\d+\.\d+$`)
)

// Validate checks the metadata side of the module contract.
func (i ModuleInfo) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidModuleInfo)
	}
	if !moduleNameRe.MatchString(i.Name) {
		return fmt.Errorf("%w: name %q must be lowercase kebab-case", ErrInvalidModuleInfo, i.Name)
	}
	if !moduleVersionRe.MatchString(i.Version) {
		return fmt.Errorf("%w: version %q is not MAJOR.MINOR.PATCH", ErrInvalidModuleInfo, i.Version)
	}
	for _, dep := range i.Dependencies {
		if dep == i.Name {
			return fmt.Errorf("%w: module %q depends on itself", ErrInvalidModuleInfo, i.Name)
		}
	}
	for _, dep := range i.OptionalDependencies {
		if dep == i.Name {
			return fmt.Errorf("%w: module %q optionally depends on itself", ErrInvalidModuleInfo, i.Name)
		}
	}
	return nil
}

// Module is the contract every feature module implements.
//
// Info must be pure and cheap. Initialize may perform I/O and must respect
// ctx; returning a wrapped ErrModuleDisabled deactivates the module without
// counting as a failure. RegisterRoutes and RegisterUI are invoked only for
// modules that became active, in resolved order. A module must not assume
// anything about initialization order beyond its declared dependencies.
type Module interface {
	Info() ModuleInfo
	Initialize(ctx context.Context) error
	RegisterRoutes(mux *http.ServeMux) error
	RegisterUI(ui *webui.Host) error
	Shutdown(ctx context.Context) error
}

// HealthChecker is an optional capability. Active modules implementing it
// contribute detail to the platform health endpoint.
type HealthChecker interface {
	HealthCheck(ctx context.Context) Health
}

// Configurable is an optional capability. Manifest settings from the modules
// directory are applied during discovery, before Initialize.
type Configurable interface {
	ApplySettings(settings map[string]any) error
}

// Health is a module-reported health snapshot.
type Health struct {
	Status string         `json:"status"`
	Detail map[string]any `json:"detail,omitempty"`
}

const (
	HealthHealthy   = "healthy"
	HealthDegraded  = "degraded"
	HealthUnhealthy = "unhealthy"
)
