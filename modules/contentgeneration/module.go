// Package contentgeneration routes drafting work to language models by
// tier. The generation pipeline itself is not wired yet; the module owns
// the model routing table, tracks provider availability, and serves the
// status endpoint so dependent modules can resolve against it today.
package contentgeneration

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"contentagent/internal/platform/webui"
	"contentagent/internal/registry"
)

const moduleName = "content-generation"

// Generation tiers in cost order. Research runs on the cheap models and
// the expensive model is reserved for final polish.
const (
	TierResearch = "research"
	TierDraft    = "draft"
	TierFinal    = "final"
)

// fallbackModel is the offline template generator used when no remote
// provider is configured but local fallback is allowed.
const fallbackModel = "local-template"

// ModelChoice is the routing for one tier: the preferred model, the
// cross-provider fallback, and the sampling limits both are called with.
type ModelChoice struct {
	Model       string
	Fallback    string
	MaxTokens   int
	Temperature float64
}

var tierRouting = map[string]ModelChoice{
	TierResearch: {Model: "gpt-4o-mini", Fallback: "claude-3-haiku", MaxTokens: 2000, Temperature: 0.7},
	TierDraft:    {Model: "claude-3-haiku", Fallback: "gpt-4o-mini", MaxTokens: 4000, Temperature: 0.8},
	TierFinal:    {Model: "gpt-4o", Fallback: "claude-3-sonnet", MaxTokens: 4000, Temperature: 0.7},
}

var tierOrder = []string{TierResearch, TierDraft, TierFinal}

type Dependencies struct {
	OpenAIKey     string
	AnthropicKey  string
	DefaultTier   string
	LocalFallback bool

	Logger *slog.Logger
}

// Module reports as disabled rather than failed when no provider key is
// present, so the rest of the platform keeps running without AI features.
type Module struct {
	deps        Dependencies
	logger      *slog.Logger
	providers   map[string]bool
	defaultTier string
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
		Description:          "AI-powered content creation and optimization",
		Author:               "Content Agent Team",
		OptionalDependencies: []string{"keyword-research"},
	}
}

// ApplySettings handles per-module manifest overrides. Unknown keys are
// ignored so manifests can carry forward-compatible settings.
func (m *Module) ApplySettings(settings map[string]any) error {
	for key, value := range settings {
		var err error
		switch key {
		case "default_tier":
			text, ok := value.(string)
			if !ok {
				err = fmt.Errorf("expected string, got %T", value)
			} else {
				m.deps.DefaultTier = strings.TrimSpace(text)
			}
		case "local_fallback":
			enabled, ok := value.(bool)
			if !ok {
				err = fmt.Errorf("expected bool, got %T", value)
			} else {
				m.deps.LocalFallback = enabled
			}
		}
		if err != nil {
			return fmt.Errorf("setting %q: %w", key, err)
		}
	}
	return nil
}

func (m *Module) Initialize(ctx context.Context) error {
	m.providers = map[string]bool{
		"openai":    m.deps.OpenAIKey != "",
		"anthropic": m.deps.AnthropicKey != "",
		"local":     m.deps.LocalFallback,
	}
	if !m.providers["openai"] && !m.providers["anthropic"] && !m.providers["local"] {
		return fmt.Errorf("%w: no language model provider configured (set OPENAI_API_KEY or ANTHROPIC_API_KEY)", registry.ErrModuleDisabled)
	}

	tier := m.deps.DefaultTier
	if tier == "" {
		tier = TierResearch
	}
	if _, ok := tierRouting[tier]; !ok {
		return fmt.Errorf("unknown generation tier %q", tier)
	}
	m.defaultTier = tier

	m.logger.Info("content generation module initialized",
		"event", "module_initialized",
		"module", "modules/contentgeneration",
		"layer", "module",
		"default_tier", m.defaultTier,
		"openai", m.providers["openai"],
		"anthropic", m.providers["anthropic"],
		"local_fallback", m.providers["local"],
	)
	return nil
}

func (m *Module) RegisterRoutes(mux *http.ServeMux) error {
	mux.HandleFunc("GET /api/content/status", m.handleStatus)
	return nil
}

// RegisterUI is a no-op: generation has no page yet, the dashboard carries
// its state.
func (m *Module) RegisterUI(ui *webui.Host) error {
	return nil
}

func (m *Module) Shutdown(ctx context.Context) error {
	return nil
}

func (m *Module) HealthCheck(ctx context.Context) registry.Health {
	status := registry.HealthHealthy
	if !m.providers["openai"] && !m.providers["anthropic"] {
		status = registry.HealthDegraded
	}
	return registry.Health{
		Status: status,
		Detail: map[string]any{
			"default_tier": m.defaultTier,
			"providers":    m.providers,
		},
	}
}

// ResolveModel returns the provider and model serving a tier. The primary
// model wins when its provider has a key, then the cross-provider
// fallback, then the local template generator.
func (m *Module) ResolveModel(tier string) (provider, model string, err error) {
	choice, ok := tierRouting[tier]
	if !ok {
		return "", "", fmt.Errorf("unknown generation tier %q", tier)
	}
	for _, candidate := range []string{choice.Model, choice.Fallback} {
		if p := providerOf(candidate); m.providers[p] {
			return p, candidate, nil
		}
	}
	if m.providers["local"] {
		return "local", fallbackModel, nil
	}
	return "", "", fmt.Errorf("no provider available for tier %q", tier)
}

func providerOf(model string) string {
	switch {
	case strings.HasPrefix(model, "gpt"):
		return "openai"
	case strings.HasPrefix(model, "claude"):
		return "anthropic"
	default:
		return "local"
	}
}
