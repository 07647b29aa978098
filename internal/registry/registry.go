package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"contentagent/internal/platform/webui"
)

// State tracks a module through the registry lifecycle.
type State string

const (
	// StateRegistered: catalog entry exists, discovery has not run yet.
	StateRegistered State = "registered"
	// StateDiscovered: metadata validated, manifest overlay applied.
	StateDiscovered State = "discovered"
	// StateActive: initialized; routes and UI may be registered.
	StateActive State = "active"
	// StateDisabled: opted out cleanly (manifest or missing configuration).
	StateDisabled State = "disabled"
	// StateFailed: rejected metadata, unresolvable dependencies, or a failed
	// Initialize.
	StateFailed State = "failed"
	// StateSkipped: derived failure, a hard dependency did not become active.
	StateSkipped State = "skipped"
)

// Entry is a point-in-time view of one module's registry record.
type Entry struct {
	Module   Module
	Info     ModuleInfo
	State    State
	Err      error
	Settings map[string]any
}

type entry struct {
	module   Module
	info     ModuleInfo
	state    State
	err      error
	manifest *Manifest
}

// Report summarizes one InitializeAll pass. Active is in activation order;
// the remaining slices follow discovery order.
type Report struct {
	Active   []string
	Disabled []string
	Failed   []string
	Skipped  []string
}

// Registry owns module discovery, dependency ordering, initialization, and
// surface registration. It is built once by the composition root; after
// InitializeAll it is read-mostly and safe for concurrent queries.
type Registry struct {
	mu          sync.RWMutex
	logger      *slog.Logger
	modulesDir  string
	entries     map[string]*entry
	order       []string // registration order, the stable discovery order
	initialized []string // activation order, used for reverse shutdown
}

// New builds an empty registry. modulesDir points at the manifest overlay
// directory; an empty string disables overlay loading.
func New(modulesDir string, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		logger:     logger,
		modulesDir: modulesDir,
		entries:    make(map[string]*entry),
	}
}

// Register adds a module to the catalog. The metadata side of the contract is
// checked here; a typed DiscoveryError reports a rejected candidate so the
// caller can skip it and keep registering the rest.
func (r *Registry) Register(m Module) error {
	if m == nil {
		return &DiscoveryError{Err: errors.New("nil module")}
	}
	info := m.Info()
	if err := info.Validate(); err != nil {
		return &DiscoveryError{Module: info.Name, Err: err}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[info.Name]; exists {
		return &DiscoveryError{Module: info.Name, Err: ErrDuplicateModule}
	}
	r.entries[info.Name] = &entry{module: m, info: info, state: StateRegistered}
	r.order = append(r.order, info.Name)

	r.logger.Debug("module registered",
		"event", "module_registered",
		"module", "internal/registry",
		"layer", "registry",
		"name", info.Name,
		"version", info.Version,
	)
	return nil
}

// Discover produces the candidate set. It validates each catalog entry, loads
// manifest overlays from the modules directory, and applies settings to
// Configurable modules. Failures are per-module: a malformed manifest skips
// only the module it names. The returned error joins the per-module failures
// and is advisory; the scan itself always completes.
func (r *Registry) Discover(ctx context.Context) ([]ModuleInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	manifests, manifestErrs := loadManifests(r.modulesDir)
	var errs []error
	for _, err := range manifestErrs {
		errs = append(errs, err)
		var discoveryErr *DiscoveryError
		if errors.As(err, &discoveryErr) {
			if e, ok := r.entries[discoveryErr.Module]; ok {
				e.state = StateFailed
				e.err = discoveryErr
			}
		}
		r.logger.Error("module manifest rejected",
			"event", "module_manifest_rejected",
			"module", "internal/registry",
			"layer", "registry",
			"error", err.Error(),
		)
	}
	for name := range manifests {
		if _, ok := r.entries[name]; !ok {
			r.logger.Warn("manifest names unknown module",
				"event", "module_manifest_unknown",
				"module", "internal/registry",
				"layer", "registry",
				"name", name,
			)
		}
	}

	infos := make([]ModuleInfo, 0, len(r.order))
	for _, name := range r.order {
		e := r.entries[name]
		if e.state == StateFailed {
			continue
		}
		e.manifest = manifests[name]
		if !e.manifest.enabled() {
			e.state = StateDisabled
			e.err = fmt.Errorf("%w: disabled by manifest", ErrModuleDisabled)
			r.logger.Info("module disabled by manifest",
				"event", "module_disabled",
				"module", "internal/registry",
				"layer", "registry",
				"name", name,
			)
			continue
		}
		if e.manifest != nil && len(e.manifest.Settings) > 0 {
			configurable, ok := e.module.(Configurable)
			if !ok {
				r.logger.Warn("module ignores manifest settings",
					"event", "module_settings_ignored",
					"module", "internal/registry",
					"layer", "registry",
					"name", name,
				)
			} else if err := configurable.ApplySettings(e.manifest.Settings); err != nil {
				discoveryErr := &DiscoveryError{Module: name, Err: fmt.Errorf("apply settings: %w", err)}
				e.state = StateFailed
				e.err = discoveryErr
				errs = append(errs, discoveryErr)
				r.logger.Error("module settings rejected",
					"event", "module_settings_rejected",
					"module", "internal/registry",
					"layer", "registry",
					"name", name,
					"error", err.Error(),
				)
				continue
			}
		}
		e.state = StateDiscovered
		infos = append(infos, e.info)
	}

	r.logger.Info("module discovery complete",
		"event", "module_discovery_complete",
		"module", "internal/registry",
		"layer", "registry",
		"candidates", len(infos),
		"rejected", len(errs),
	)
	return infos, errors.Join(errs...)
}

// ResolveOrder computes a dependency-respecting initialization order over the
// discovered candidates. Modules declaring a dependency on an unregistered
// name are excluded with MissingDependencyError; members of dependency cycles
// are excluded with CyclicDependencyError. Modules with no ordering
// constraint between them keep discovery order. The returned error joins the
// exclusions; the order always covers every resolvable module.
func (r *Registry) ResolveOrder() ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolveOrderLocked()
}

func (r *Registry) resolveOrderLocked() ([]string, error) {
	var errs []error

	included := make(map[string]bool, len(r.order))
	for _, name := range r.order {
		if r.entries[name].state == StateDiscovered {
			included[name] = true
		}
	}

	// Hard dependencies on names that were never registered exclude the
	// declaring module up front. Dependencies on registered-but-inactive
	// modules stay in the graph; InitializeAll records the derived skip.
	for _, name := range r.order {
		if !included[name] {
			continue
		}
		for _, dep := range r.entries[name].info.Dependencies {
			if _, registered := r.entries[dep]; registered {
				continue
			}
			missingErr := &MissingDependencyError{Module: name, Dependency: dep}
			errs = append(errs, missingErr)
			e := r.entries[name]
			e.state = StateFailed
			e.err = missingErr
			delete(included, name)
			r.logger.Error("module dependency missing",
				"event", "module_dependency_missing",
				"module", "internal/registry",
				"layer", "registry",
				"name", name,
				"dependency", dep,
			)
			break
		}
	}

	// Strip cycles one at a time until the remaining graph is a DAG.
	for {
		cycle := findCycle(r.order, included, r.edgesLocked(included))
		if cycle == nil {
			break
		}
		cycleErr := &CyclicDependencyError{Cycle: cycle}
		errs = append(errs, cycleErr)
		for _, name := range cycle {
			e := r.entries[name]
			e.state = StateFailed
			e.err = cycleErr
			delete(included, name)
		}
		r.logger.Error("module dependency cycle",
			"event", "module_dependency_cycle",
			"module", "internal/registry",
			"layer", "registry",
			"cycle", cycle,
		)
	}

	// Layered ready-set scan. Each pass picks every module whose remaining
	// dependencies are satisfied, in registration order, which keeps the
	// ordering stable across runs.
	edges := r.edgesLocked(included)
	indegree := make(map[string]int, len(included))
	dependents := make(map[string][]string, len(included))
	for name, deps := range edges {
		indegree[name] += 0
		for _, dep := range deps {
			indegree[name]++
			dependents[dep] = append(dependents[dep], name)
		}
	}

	order := make([]string, 0, len(included))
	done := make(map[string]bool, len(included))
	for len(order) < len(included) {
		progressed := false
		for _, name := range r.order {
			if !included[name] || done[name] || indegree[name] != 0 {
				continue
			}
			done[name] = true
			order = append(order, name)
			for _, dependent := range dependents[name] {
				indegree[dependent]--
			}
			progressed = true
		}
		if !progressed {
			break
		}
	}

	return order, errors.Join(errs...)
}

// edgesLocked returns module -> dependency edges restricted to the included
// set. Optional dependencies order initialization exactly like hard ones when
// both sides are present.
func (r *Registry) edgesLocked(included map[string]bool) map[string][]string {
	edges := make(map[string][]string, len(included))
	for _, name := range r.order {
		if !included[name] {
			continue
		}
		info := r.entries[name].info
		var deps []string
		for _, dep := range info.Dependencies {
			if included[dep] {
				deps = append(deps, dep)
			}
		}
		for _, dep := range info.OptionalDependencies {
			if included[dep] {
				deps = append(deps, dep)
			}
		}
		edges[name] = deps
	}
	return edges
}

// findCycle runs a depth-first walk with temporary/permanent marks over the
// dependency edges and returns the members of the first cycle found, or nil.
func findCycle(order []string, included map[string]bool, edges map[string][]string) []string {
	temporary := make(map[string]bool)
	permanent := make(map[string]bool)

	var visit func(name string, stack []string) []string
	visit = func(name string, stack []string) []string {
		if permanent[name] {
			return nil
		}
		if temporary[name] {
			for i, member := range stack {
				if member == name {
					cycle := make([]string, len(stack)-i)
					copy(cycle, stack[i:])
					return cycle
				}
			}
			return stack
		}
		temporary[name] = true
		stack = append(stack, name)
		for _, dep := range edges[name] {
			if cycle := visit(dep, stack); cycle != nil {
				return cycle
			}
		}
		delete(temporary, name)
		permanent[name] = true
		return nil
	}

	for _, name := range order {
		if !included[name] {
			continue
		}
		if cycle := visit(name, nil); cycle != nil {
			return cycle
		}
	}
	return nil
}

// InitializeAll resolves the order and initializes modules sequentially. A
// module failure marks that module inactive and never blocks independent
// modules; dependents of a non-active module are recorded as skipped.
func (r *Registry) InitializeAll(ctx context.Context) Report {
	order, err := r.ResolveOrder()
	if err != nil {
		r.logger.Error("dependency resolution reported exclusions",
			"event", "module_resolution_exclusions",
			"module", "internal/registry",
			"layer", "registry",
			"error", err.Error(),
		)
	}

	for _, name := range order {
		r.initializeOne(ctx, name)
	}

	report := r.buildReport()
	r.logger.Info("module initialization complete",
		"event", "module_initialization_complete",
		"module", "internal/registry",
		"layer", "registry",
		"active", len(report.Active),
		"disabled", len(report.Disabled),
		"failed", len(report.Failed),
		"skipped", len(report.Skipped),
	)
	return report
}

func (r *Registry) initializeOne(ctx context.Context, name string) {
	r.mu.Lock()
	e := r.entries[name]
	for _, dep := range e.info.Dependencies {
		depEntry, ok := r.entries[dep]
		if ok && depEntry.state == StateActive {
			continue
		}
		skipErr := &DependencySkippedError{Module: name, Dependency: dep}
		e.state = StateSkipped
		e.err = skipErr
		r.mu.Unlock()
		r.logger.Warn("module skipped",
			"event", "module_skipped",
			"module", "internal/registry",
			"layer", "registry",
			"name", name,
			"dependency", dep,
		)
		return
	}
	module := e.module
	r.mu.Unlock()

	err := module.Initialize(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	switch {
	case err == nil:
		e.state = StateActive
		e.err = nil
		r.initialized = append(r.initialized, name)
		r.logger.Info("module initialized",
			"event", "module_initialized",
			"module", "internal/registry",
			"layer", "registry",
			"name", name,
			"version", e.info.Version,
		)
	case errors.Is(err, ErrModuleDisabled):
		e.state = StateDisabled
		e.err = err
		r.logger.Info("module disabled",
			"event", "module_disabled",
			"module", "internal/registry",
			"layer", "registry",
			"name", name,
			"reason", err.Error(),
		)
	default:
		initErr := &InitializationError{Module: name, Err: err}
		e.state = StateFailed
		e.err = initErr
		r.logger.Error("module initialization failed",
			"event", "module_initialization_failed",
			"module", "internal/registry",
			"layer", "registry",
			"name", name,
			"error", err.Error(),
		)
	}
}

func (r *Registry) buildReport() Report {
	r.mu.RLock()
	defer r.mu.RUnlock()

	report := Report{Active: append([]string(nil), r.initialized...)}
	for _, name := range r.order {
		switch r.entries[name].state {
		case StateDisabled:
			report.Disabled = append(report.Disabled, name)
		case StateFailed:
			report.Failed = append(report.Failed, name)
		case StateSkipped:
			report.Skipped = append(report.Skipped, name)
		}
	}
	return report
}

// RegisterRoutes mounts the REST surface of every active module, in
// activation order. A module whose registration fails is demoted to failed
// and excluded from the UI pass; the remaining modules still mount.
func (r *Registry) RegisterRoutes(mux *http.ServeMux) error {
	var errs []error
	for _, name := range r.activeNames() {
		r.mu.RLock()
		module := r.entries[name].module
		r.mu.RUnlock()

		if err := module.RegisterRoutes(mux); err != nil {
			r.demote(name, fmt.Errorf("register routes: %w", err))
			errs = append(errs, &InitializationError{Module: name, Err: err})
			continue
		}
		r.logger.Debug("module routes registered",
			"event", "module_routes_registered",
			"module", "internal/registry",
			"layer", "registry",
			"name", name,
		)
	}
	return errors.Join(errs...)
}

// RegisterUI mounts the web UI surface of every active module, in activation
// order, following the same containment rules as RegisterRoutes.
func (r *Registry) RegisterUI(ui *webui.Host) error {
	var errs []error
	for _, name := range r.activeNames() {
		r.mu.RLock()
		module := r.entries[name].module
		r.mu.RUnlock()

		if err := module.RegisterUI(ui); err != nil {
			r.demote(name, fmt.Errorf("register ui: %w", err))
			errs = append(errs, &InitializationError{Module: name, Err: err})
			continue
		}
		r.logger.Debug("module ui registered",
			"event", "module_ui_registered",
			"module", "internal/registry",
			"layer", "registry",
			"name", name,
		)
	}
	return errors.Join(errs...)
}

func (r *Registry) demote(name string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := r.entries[name]
	e.state = StateFailed
	e.err = &InitializationError{Module: name, Err: err}
	r.logger.Error("module surface registration failed",
		"event", "module_registration_failed",
		"module", "internal/registry",
		"layer", "registry",
		"name", name,
		"error", err.Error(),
	)
}

func (r *Registry) activeNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.initialized))
	for _, name := range r.initialized {
		if r.entries[name].state == StateActive {
			names = append(names, name)
		}
	}
	return names
}

// ActiveModules returns the ModuleInfo of every active module in activation
// order. This is the queryable surface promised after InitializeAll.
func (r *Registry) ActiveModules() []ModuleInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	infos := make([]ModuleInfo, 0, len(r.initialized))
	for _, name := range r.initialized {
		if e := r.entries[name]; e.state == StateActive {
			infos = append(infos, e.info)
		}
	}
	return infos
}

// Entries returns a snapshot of every catalog record in discovery order.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries := make([]Entry, 0, len(r.order))
	for _, name := range r.order {
		e := r.entries[name]
		snapshot := Entry{Module: e.module, Info: e.info, State: e.state, Err: e.err}
		if e.manifest != nil {
			snapshot.Settings = e.manifest.Settings
		}
		entries = append(entries, snapshot)
	}
	return entries
}

// Get returns the live module instance for name when it is active.
func (r *Registry) Get(name string) (Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	if !ok || e.state != StateActive {
		return nil, false
	}
	return e.module, true
}

// ShutdownAll tears the active modules down in reverse activation order.
// Every module gets its Shutdown call even when an earlier one fails.
func (r *Registry) ShutdownAll(ctx context.Context) error {
	r.mu.RLock()
	names := append([]string(nil), r.initialized...)
	r.mu.RUnlock()

	var errs []error
	for i := len(names) - 1; i >= 0; i-- {
		name := names[i]
		r.mu.RLock()
		module := r.entries[name].module
		r.mu.RUnlock()

		if err := module.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown %s: %w", name, err))
			r.logger.Error("module shutdown failed",
				"event", "module_shutdown_failed",
				"module", "internal/registry",
				"layer", "registry",
				"name", name,
				"error", err.Error(),
			)
			continue
		}
		r.logger.Debug("module shut down",
			"event", "module_shutdown",
			"module", "internal/registry",
			"layer", "registry",
			"name", name,
		)
	}
	return errors.Join(errs...)
}
