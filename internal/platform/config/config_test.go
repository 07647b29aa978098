package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "contentagent", cfg.App.Name)
	assert.Equal(t, ":8000", cfg.Server.APIAddr)
	assert.Equal(t, ":8501", cfg.Server.UIAddr)
	assert.Equal(t, 50, cfg.Limits.DailyRequests)
	assert.Equal(t, 10.0, cfg.Limits.DailyCost)
	assert.Equal(t, 10*time.Second, cfg.Providers.Timeout)
	assert.Equal(t, 30*time.Second, cfg.Providers.RequestTimeout)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "research", cfg.Providers.DefaultTier)
	assert.Equal(t, "modules.d", cfg.Modules.Dir)
	assert.False(t, cfg.Providers.HasAnyAIKey())
	assert.False(t, cfg.WordPress.IsConfigured())
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("DAILY_USER_LIMIT", "5")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("SERPAPI_KEY", "serp-test")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("DEBUG", "true")
	t.Setenv("WORDPRESS_URL", "https://blog.example.com")
	t.Setenv("WORDPRESS_USERNAME", "editor")
	t.Setenv("WORDPRESS_APP_PASSWORD", "xxxx yyyy")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Limits.DailyRequests)
	assert.True(t, cfg.App.Debug)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.True(t, cfg.Providers.IsConfigured("openai"))
	assert.True(t, cfg.Providers.IsConfigured("serpapi"))
	assert.False(t, cfg.Providers.IsConfigured("anthropic"))
	assert.True(t, cfg.Providers.HasAnyAIKey())
	assert.True(t, cfg.WordPress.IsConfigured())
}

func TestLoadDurations(t *testing.T) {
	t.Run("bare numbers are seconds", func(t *testing.T) {
		t.Setenv("REQUEST_TIMEOUT", "45")
		t.Setenv("PROVIDER_TIMEOUT", "3")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 45*time.Second, cfg.Providers.RequestTimeout)
		assert.Equal(t, 3*time.Second, cfg.Providers.Timeout)
	})

	t.Run("duration strings pass through", func(t *testing.T) {
		t.Setenv("PROVIDER_TIMEOUT", "1500ms")
		t.Setenv("CACHE_TTL", "30m")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 1500*time.Millisecond, cfg.Providers.Timeout)
		assert.Equal(t, 30*time.Minute, cfg.Cache.TTL)
	})
}

func TestLoadFileLayer(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "contentagent.yaml")
	body := "app:\n  name: staging-agent\nlimits:\n  daily_requests: 12\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	t.Run("file overrides defaults", func(t *testing.T) {
		cfg, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "staging-agent", cfg.App.Name)
		assert.Equal(t, 12, cfg.Limits.DailyRequests)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		t.Setenv("DAILY_USER_LIMIT", "99")
		cfg, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, 99, cfg.Limits.DailyRequests)
	})
}

func TestValidate(t *testing.T) {
	t.Run("rejects unknown log level", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "loud")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("rejects unknown model tier", func(t *testing.T) {
		t.Setenv("DEFAULT_MODEL_TIER", "premium")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("rejects zero provider timeout", func(t *testing.T) {
		t.Setenv("PROVIDER_TIMEOUT", "0")
		_, err := Load()
		require.Error(t, err)
	})
}
