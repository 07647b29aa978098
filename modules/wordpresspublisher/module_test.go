package wordpresspublisher

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"contentagent/internal/platform/bus"
	"contentagent/internal/registry"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func configuredDeps() Dependencies {
	return Dependencies{
		SiteURL:     "https://example.com",
		Username:    "editor",
		AppPassword: "xxxx xxxx xxxx xxxx",
		Logger:      testLogger(),
	}
}

func TestInitializeDisabledWithoutCredentials(t *testing.T) {
	cases := map[string]Dependencies{
		"nothing":       {},
		"url only":      {SiteURL: "https://example.com"},
		"no password":   {SiteURL: "https://example.com", Username: "editor"},
		"no site url":   {Username: "editor", AppPassword: "secret"},
		"password only": {AppPassword: "secret"},
	}
	for name, deps := range cases {
		t.Run(name, func(t *testing.T) {
			deps.Logger = testLogger()
			m := NewModule(deps)
			err := m.Initialize(context.Background())
			if !errors.Is(err, registry.ErrModuleDisabled) {
				t.Fatalf("Initialize() error = %v, want ErrModuleDisabled", err)
			}
		})
	}
}

func TestInitializeRejectsInvalidSiteURL(t *testing.T) {
	for _, raw := range []string{"not a url", "ftp://example.com", "/relative/path"} {
		deps := configuredDeps()
		deps.SiteURL = raw
		m := NewModule(deps)

		err := m.Initialize(context.Background())
		if err == nil {
			t.Fatalf("Initialize() with url %q expected error", raw)
		}
		if errors.Is(err, registry.ErrModuleDisabled) {
			t.Fatalf("Initialize() with url %q reported disabled, want hard failure", raw)
		}
	}
}

func TestConsumePublishRequestCounts(t *testing.T) {
	m := NewModule(configuredDeps())
	if err := m.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	ctx := context.Background()
	event := bus.New(publishRequestedEvent, "scheduling", map[string]any{"post_id": "42"})
	if err := m.consumePublishRequest(ctx, event); err != nil {
		t.Fatalf("consumePublishRequest() error = %v", err)
	}
	if err := m.consumePublishRequest(ctx, event); err != nil {
		t.Fatalf("consumePublishRequest() error = %v", err)
	}

	if got := m.publishRequests.Load(); got != 2 {
		t.Fatalf("publish requests = %d, want 2", got)
	}
}

func TestStatusEndpointReportsSite(t *testing.T) {
	m := NewModule(configuredDeps())
	if err := m.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	mux := http.NewServeMux()
	if err := m.RegisterRoutes(mux); err != nil {
		t.Fatalf("RegisterRoutes() error = %v", err)
	}
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	resp, err := http.Get(server.URL + "/api/wordpress/status")
	if err != nil {
		t.Fatalf("GET /api/wordpress/status error = %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body StatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Data.Site != "example.com" {
		t.Fatalf("site = %s, want example.com", body.Data.Site)
	}
	if body.Data.APIBase != "https://example.com/wp-json/wp/v2" {
		t.Fatalf("api base = %s", body.Data.APIBase)
	}
	if body.Data.Username != "editor" {
		t.Fatalf("username = %s, want editor", body.Data.Username)
	}
}
