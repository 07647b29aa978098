// Package httpserver is the REST API process. It owns the platform
// endpoints (app info, health, module catalog, swagger) and hands feature
// modules the mux they mount their routes on.
package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"contentagent/internal/registry"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "contentagent/internal/platform/httpserver/docs"
)

type Server struct {
	mux      *http.ServeMux
	handler  http.Handler
	logger   *slog.Logger
	addr     string
	appName  string
	version  string
	registry *registry.Registry
	started  time.Time

	server *http.Server
}

func New(appName, version, addr string, reg *registry.Registry, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8000"
	}

	s := &Server{
		mux:      http.NewServeMux(),
		logger:   logger,
		addr:     addr,
		appName:  appName,
		version:  version,
		registry: reg,
		started:  time.Now(),
	}
	s.handler = s.requestLogger(s.mux)
	s.registerRoutes()
	return s
}

// Mux exposes the route table so the registry can mount active module
// routes before the server starts.
func (s *Server) Mux() *http.ServeMux {
	return s.mux
}

// Start blocks serving the API until the listener fails or Shutdown runs.
func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	s.server = &http.Server{Addr: s.addr, Handler: s.handler}
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// ServeHTTP exposes the full handler chain for tests.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("GET /{$}", s.handleRoot)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /modules", s.handleModules)
}

type RootResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
	Status  string `json:"status"`
	Docs    string `json:"docs"`
}

// handleRoot godoc
// @Summary API banner
// @Description Reports the application name, version and where the docs live.
// @Tags platform
// @Produce json
// @Success 200 {object} RootResponse
// @Router / [get]
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, RootResponse{
		Message: s.appName + " API",
		Version: s.version,
		Status:  "running",
		Docs:    "/swagger/index.html",
	})
}

// ModuleHealth is one module's slice of the health report.
type ModuleHealth struct {
	State  string         `json:"state"`
	Status string         `json:"status,omitempty"`
	Error  string         `json:"error,omitempty"`
	Detail map[string]any `json:"detail,omitempty"`
}

type HealthResponse struct {
	Status        string                  `json:"status"`
	Version       string                  `json:"version"`
	UptimeSeconds float64                 `json:"uptime_seconds"`
	Modules       map[string]ModuleHealth `json:"modules"`
}

// handleHealth godoc
// @Summary Platform health
// @Description Aggregates registry state and per-module health checks. Degraded whenever any registered module is not active.
// @Tags platform
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	overall := registry.HealthHealthy
	modules := map[string]ModuleHealth{}
	if s.registry != nil {
		for _, e := range s.registry.Entries() {
			mh := ModuleHealth{State: string(e.State)}
			if e.Err != nil {
				mh.Error = e.Err.Error()
			}
			if e.State != registry.StateActive {
				overall = registry.HealthDegraded
			} else if hc, ok := e.Module.(registry.HealthChecker); ok {
				health := hc.HealthCheck(r.Context())
				mh.Status = health.Status
				mh.Detail = health.Detail
				if health.Status != registry.HealthHealthy {
					overall = registry.HealthDegraded
				}
			}
			modules[e.Info.Name] = mh
		}
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:        overall,
		Version:       s.version,
		UptimeSeconds: time.Since(s.started).Seconds(),
		Modules:       modules,
	})
}

// ModuleSummary is one catalog row of the modules endpoint.
type ModuleSummary struct {
	Name                 string   `json:"name"`
	Version              string   `json:"version"`
	Description          string   `json:"description"`
	State                string   `json:"state"`
	Error                string   `json:"error,omitempty"`
	Dependencies         []string `json:"dependencies,omitempty"`
	OptionalDependencies []string `json:"optional_dependencies,omitempty"`
}

type ModulesResponse struct {
	Modules map[string]ModuleSummary `json:"modules"`
}

// handleModules godoc
// @Summary Module catalog
// @Description Lists every registered module with its lifecycle state.
// @Tags platform
// @Produce json
// @Success 200 {object} ModulesResponse
// @Router /modules [get]
func (s *Server) handleModules(w http.ResponseWriter, r *http.Request) {
	modules := map[string]ModuleSummary{}
	if s.registry != nil {
		for _, e := range s.registry.Entries() {
			summary := ModuleSummary{
				Name:                 e.Info.Name,
				Version:              e.Info.Version,
				Description:          e.Info.Description,
				State:                string(e.State),
				Dependencies:         e.Info.Dependencies,
				OptionalDependencies: e.Info.OptionalDependencies,
			}
			if e.Err != nil {
				summary.Error = e.Err.Error()
			}
			modules[e.Info.Name] = summary
		}
	}
	writeJSON(w, http.StatusOK, ModulesResponse{Modules: modules})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
