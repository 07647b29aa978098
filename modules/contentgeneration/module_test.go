package contentgeneration

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"contentagent/internal/registry"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func activeModule(t *testing.T, deps Dependencies) *Module {
	t.Helper()
	deps.Logger = testLogger()
	m := NewModule(deps)
	if err := m.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	return m
}

func TestInitializeDisabledWithoutProviders(t *testing.T) {
	m := NewModule(Dependencies{Logger: testLogger()})

	err := m.Initialize(context.Background())
	if !errors.Is(err, registry.ErrModuleDisabled) {
		t.Fatalf("Initialize() error = %v, want ErrModuleDisabled", err)
	}
}

func TestInitializeRejectsUnknownTier(t *testing.T) {
	m := NewModule(Dependencies{OpenAIKey: "sk-test", DefaultTier: "cheap", Logger: testLogger()})

	err := m.Initialize(context.Background())
	if err == nil || errors.Is(err, registry.ErrModuleDisabled) {
		t.Fatalf("Initialize() error = %v, want unknown tier failure", err)
	}
}

func TestResolveModelPrefersPrimaryProvider(t *testing.T) {
	m := activeModule(t, Dependencies{OpenAIKey: "sk-test", AnthropicKey: "ak-test"})

	provider, model, err := m.ResolveModel(TierResearch)
	if err != nil {
		t.Fatalf("ResolveModel(research) error = %v", err)
	}
	if provider != "openai" || model != "gpt-4o-mini" {
		t.Fatalf("ResolveModel(research) = %s/%s, want openai/gpt-4o-mini", provider, model)
	}

	provider, model, err = m.ResolveModel(TierDraft)
	if err != nil {
		t.Fatalf("ResolveModel(draft) error = %v", err)
	}
	if provider != "anthropic" || model != "claude-3-haiku" {
		t.Fatalf("ResolveModel(draft) = %s/%s, want anthropic/claude-3-haiku", provider, model)
	}
}

func TestResolveModelFallsBackAcrossProviders(t *testing.T) {
	m := activeModule(t, Dependencies{AnthropicKey: "ak-test"})

	provider, model, err := m.ResolveModel(TierResearch)
	if err != nil {
		t.Fatalf("ResolveModel(research) error = %v", err)
	}
	if provider != "anthropic" || model != "claude-3-haiku" {
		t.Fatalf("ResolveModel(research) = %s/%s, want anthropic fallback", provider, model)
	}

	provider, model, err = m.ResolveModel(TierFinal)
	if err != nil {
		t.Fatalf("ResolveModel(final) error = %v", err)
	}
	if provider != "anthropic" || model != "claude-3-sonnet" {
		t.Fatalf("ResolveModel(final) = %s/%s, want anthropic/claude-3-sonnet", provider, model)
	}
}

func TestResolveModelUsesLocalFallback(t *testing.T) {
	m := activeModule(t, Dependencies{LocalFallback: true})

	for _, tier := range tierOrder {
		provider, model, err := m.ResolveModel(tier)
		if err != nil {
			t.Fatalf("ResolveModel(%s) error = %v", tier, err)
		}
		if provider != "local" || model != fallbackModel {
			t.Fatalf("ResolveModel(%s) = %s/%s, want local/%s", tier, provider, model, fallbackModel)
		}
	}

	if health := m.HealthCheck(context.Background()); health.Status != registry.HealthDegraded {
		t.Fatalf("HealthCheck().Status = %s, want degraded without remote providers", health.Status)
	}
}

func TestResolveModelRejectsUnknownTier(t *testing.T) {
	m := activeModule(t, Dependencies{OpenAIKey: "sk-test"})

	if _, _, err := m.ResolveModel("outline"); err == nil {
		t.Fatal("ResolveModel(outline) expected error")
	}
}

func TestStatusEndpointReportsRouting(t *testing.T) {
	m := activeModule(t, Dependencies{OpenAIKey: "sk-test"})

	mux := http.NewServeMux()
	if err := m.RegisterRoutes(mux); err != nil {
		t.Fatalf("RegisterRoutes() error = %v", err)
	}
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	resp, err := http.Get(server.URL + "/api/content/status")
	if err != nil {
		t.Fatalf("GET /api/content/status error = %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body StatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Data.DefaultTier != TierResearch {
		t.Fatalf("default tier = %s, want %s", body.Data.DefaultTier, TierResearch)
	}
	if len(body.Data.Tiers) != len(tierOrder) {
		t.Fatalf("tiers = %d, want %d", len(body.Data.Tiers), len(tierOrder))
	}
	// claude-3-haiku's fallback is gpt-4o-mini, so every tier resolves on
	// an openai-only install.
	for _, tier := range body.Data.Tiers {
		if !tier.Available {
			t.Fatalf("tier %s unavailable with openai key", tier.Tier)
		}
		if tier.Provider != "openai" {
			t.Fatalf("tier %s resolved to %s, want openai", tier.Tier, tier.Provider)
		}
	}
	if !body.Data.Providers["openai"] || body.Data.Providers["anthropic"] {
		t.Fatalf("providers = %v, want openai only", body.Data.Providers)
	}
}
