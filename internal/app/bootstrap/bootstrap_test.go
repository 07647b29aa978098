package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"contentagent/internal/platform/config"
	"contentagent/internal/registry"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.App.Name = "Content Agent"
	cfg.App.Version = "1.0.0"
	cfg.Server.APIAddr = ":0"
	cfg.Server.UIAddr = ":0"
	cfg.Cache.TTL = time.Hour
	cfg.Providers.Timeout = 2 * time.Second
	cfg.Providers.RequestTimeout = 2 * time.Second
	cfg.Providers.DefaultTier = "research"
	cfg.Limits.DailyRequests = 50
	cfg.Limits.DailyCost = 10
	cfg.Scheduling.Timezone = "UTC"
	cfg.Modules.Dir = t.TempDir()
	return cfg
}

func initializedApp(t *testing.T, cfg *config.Config) (*App, registry.Report) {
	t.Helper()
	app, err := Build(cfg, ModeBackend, testLogger())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })

	reg := app.Registry()
	if _, err := reg.Discover(context.Background()); err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	return app, reg.InitializeAll(context.Background())
}

func stateOf(t *testing.T, app *App, name string) registry.State {
	t.Helper()
	for _, e := range app.Registry().Entries() {
		if e.Info.Name == name {
			return e.State
		}
	}
	t.Fatalf("module %q not registered", name)
	return ""
}

func TestParseMode(t *testing.T) {
	for raw, want := range map[string]Mode{
		"frontend": ModeFrontend,
		"backend":  ModeBackend,
		"both":     ModeBoth,
		" Both ":   ModeBoth,
	} {
		got, err := ParseMode(raw)
		if err != nil {
			t.Fatalf("ParseMode(%q) error = %v", raw, err)
		}
		if got != want {
			t.Fatalf("ParseMode(%q) = %q, want %q", raw, got, want)
		}
	}
	if _, err := ParseMode("daemon"); err == nil {
		t.Fatal("ParseMode(daemon) expected error")
	}
}

func TestBuildWithoutSecretsDegradesGracefully(t *testing.T) {
	app, report := initializedApp(t, testConfig(t))

	if got := stateOf(t, app, "content-discovery"); got != registry.StateActive {
		t.Fatalf("content-discovery state = %s, want active", got)
	}
	if got := stateOf(t, app, "keyword-research"); got != registry.StateActive {
		t.Fatalf("keyword-research state = %s, want active", got)
	}
	if got := stateOf(t, app, "scheduling"); got != registry.StateActive {
		t.Fatalf("scheduling state = %s, want active", got)
	}
	// No AI key disables generation, which skips its dependent publisher.
	if got := stateOf(t, app, "content-generation"); got != registry.StateDisabled {
		t.Fatalf("content-generation state = %s, want disabled", got)
	}
	if got := stateOf(t, app, "wordpress-publisher"); got != registry.StateSkipped {
		t.Fatalf("wordpress-publisher state = %s, want skipped", got)
	}

	if len(report.Failed) != 0 {
		t.Fatalf("failed modules = %v, want none", report.Failed)
	}
	if len(report.Active) != 3 {
		t.Fatalf("active modules = %v, want 3", report.Active)
	}
}

func TestBuildWithSecretsActivatesFullCatalog(t *testing.T) {
	cfg := testConfig(t)
	cfg.Providers.OpenAIAPIKey = "sk-test"
	cfg.WordPress.URL = "https://blog.example.com"
	cfg.WordPress.Username = "editor"
	cfg.WordPress.AppPassword = "xxxx xxxx"

	app, report := initializedApp(t, cfg)

	for _, name := range []string{
		"content-discovery",
		"keyword-research",
		"content-generation",
		"scheduling",
		"wordpress-publisher",
	} {
		if got := stateOf(t, app, name); got != registry.StateActive {
			t.Fatalf("%s state = %s, want active", name, got)
		}
	}
	if len(report.Active) != 5 {
		t.Fatalf("active modules = %v, want 5", report.Active)
	}
}

func TestBuildFailsTimezoneModuleOnly(t *testing.T) {
	cfg := testConfig(t)
	cfg.Scheduling.Timezone = "Mars/Olympus"

	app, report := initializedApp(t, cfg)

	if got := stateOf(t, app, "scheduling"); got != registry.StateFailed {
		t.Fatalf("scheduling state = %s, want failed", got)
	}
	// Independent modules keep running.
	if got := stateOf(t, app, "keyword-research"); got != registry.StateActive {
		t.Fatalf("keyword-research state = %s, want active", got)
	}
	if len(report.Failed) != 1 || report.Failed[0] != "scheduling" {
		t.Fatalf("failed modules = %v, want [scheduling]", report.Failed)
	}
}

func TestModeSurfaces(t *testing.T) {
	cfg := testConfig(t)

	backend, err := Build(cfg, ModeBackend, testLogger())
	if err != nil {
		t.Fatalf("Build(backend) error = %v", err)
	}
	t.Cleanup(func() { _ = backend.Close() })
	if backend.server == nil || backend.ui != nil {
		t.Fatal("backend mode should build the API server only")
	}

	frontend, err := Build(cfg, ModeFrontend, testLogger())
	if err != nil {
		t.Fatalf("Build(frontend) error = %v", err)
	}
	t.Cleanup(func() { _ = frontend.Close() })
	if frontend.server != nil || frontend.ui == nil {
		t.Fatal("frontend mode should build the UI host only")
	}

	both, err := Build(cfg, ModeBoth, testLogger())
	if err != nil {
		t.Fatalf("Build(both) error = %v", err)
	}
	t.Cleanup(func() { _ = both.Close() })
	if both.server == nil || both.ui == nil {
		t.Fatal("both mode should build API and UI")
	}
}
