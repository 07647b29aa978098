package webui

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// NavItem is one entry in the UI navigation bar. Modules contribute items in
// activation order during RegisterUI.
type NavItem struct {
	Title string
	Path  string
}

// ModuleStatus is the dashboard view of one module's lifecycle record.
type ModuleStatus struct {
	Name        string
	Version     string
	Description string
	State       string
	Detail      string
}

// Host is the server-rendered web UI process. It owns the gin engine, the
// embedded template set, and the navigation registry; feature modules mount
// their pages through Handle and render through Render.
type Host struct {
	engine  *gin.Engine
	logger  *slog.Logger
	addr    string
	appName string
	version string

	mu       sync.RWMutex
	nav      []NavItem
	statusFn func() []ModuleStatus

	server *http.Server
}

// NewHost builds the UI host with the dashboard mounted. statusFn feeds the
// dashboard table; the composition root wires it to the registry snapshot.
func NewHost(appName, version, addr string, debug bool, logger *slog.Logger) (*Host, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8501"
	}
	if debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	tmpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse ui templates: %w", err)
	}

	h := &Host{
		logger:  logger,
		addr:    addr,
		appName: appName,
		version: version,
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), h.requestLogger())
	engine.SetHTMLTemplate(tmpl)
	engine.GET("/", h.handleDashboard)
	h.engine = engine

	return h, nil
}

// AddNav registers a navigation entry. Order of calls is display order.
func (h *Host) AddNav(title, path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nav = append(h.nav, NavItem{Title: title, Path: path})
}

// Handle mounts a page handler on the engine.
func (h *Host) Handle(method, path string, handlers ...gin.HandlerFunc) {
	h.engine.Handle(method, path, handlers...)
}

// SetStatusSource wires the dashboard to the module lifecycle snapshot.
func (h *Host) SetStatusSource(fn func() []ModuleStatus) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statusFn = fn
}

// Render writes a named template with the shared layout data merged in.
func (h *Host) Render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	h.mu.RLock()
	nav := append([]NavItem(nil), h.nav...)
	h.mu.RUnlock()
	data["AppName"] = h.appName
	data["Version"] = h.version
	data["Nav"] = nav
	data["Current"] = c.FullPath()
	c.HTML(status, name, data)
}

func (h *Host) handleDashboard(c *gin.Context) {
	h.mu.RLock()
	statusFn := h.statusFn
	h.mu.RUnlock()

	var statuses []ModuleStatus
	if statusFn != nil {
		statuses = statusFn()
	}
	h.Render(c, http.StatusOK, "dashboard.tmpl", gin.H{
		"Title":   "Dashboard",
		"Modules": statuses,
	})
}

func (h *Host) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		h.logger.Info("ui request",
			"event", "ui_request",
			"module", "internal/platform/webui",
			"layer", "platform",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

// Start blocks serving the UI until the listener fails or Shutdown runs.
func (h *Host) Start() error {
	h.logger.Info("ui server starting",
		"event", "ui_server_starting",
		"module", "internal/platform/webui",
		"layer", "platform",
		"addr", h.addr,
	)
	h.server = &http.Server{Addr: h.addr, Handler: h.engine}
	if err := h.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests until ctx expires.
func (h *Host) Shutdown(ctx context.Context) error {
	if h.server == nil {
		return nil
	}
	return h.server.Shutdown(ctx)
}

// ServeHTTP exposes the engine for tests.
func (h *Host) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.engine.ServeHTTP(w, r)
}
