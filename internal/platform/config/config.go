package config

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config is centralized process configuration, loaded once at startup.
// Layering: built-in defaults, then an optional YAML file, then environment
// variables. Missing optional keys never fail startup; they disable the
// dependent module or select a degraded adapter instead.
type Config struct {
	App        AppConfig        `koanf:"app"`
	Server     ServerConfig     `koanf:"server"`
	Database   DatabaseConfig   `koanf:"database"`
	Cache      CacheConfig      `koanf:"cache"`
	Providers  ProvidersConfig  `koanf:"providers"`
	WordPress  WordPressConfig  `koanf:"wordpress"`
	Limits     LimitsConfig     `koanf:"limits"`
	Scheduling SchedulingConfig `koanf:"scheduling"`
	Log        LogConfig        `koanf:"log"`
	Modules    ModulesConfig    `koanf:"modules"`
}

type AppConfig struct {
	Name    string `koanf:"name"`
	Version string `koanf:"version"`
	Debug   bool   `koanf:"debug"`
}

type ServerConfig struct {
	APIAddr string `koanf:"api_addr"`
	UIAddr  string `koanf:"ui_addr"`
}

type DatabaseConfig struct {
	URL string `koanf:"url"`
}

type CacheConfig struct {
	URL string        `koanf:"url"`
	TTL time.Duration `koanf:"ttl"`
}

type ProvidersConfig struct {
	OpenAIAPIKey    string        `koanf:"openai_api_key"`
	AnthropicAPIKey string        `koanf:"anthropic_api_key"`
	GoogleAPIKey    string        `koanf:"google_api_key"`
	SerpAPIKey      string        `koanf:"serpapi_key"`
	Timeout         time.Duration `koanf:"timeout"`
	RequestTimeout  time.Duration `koanf:"request_timeout"`
	MaxConcurrent   int           `koanf:"max_concurrent"`
	DefaultTier     string        `koanf:"default_tier"`
	LocalFallback   bool          `koanf:"local_fallback"`
}

type WordPressConfig struct {
	URL         string `koanf:"url"`
	Username    string `koanf:"username"`
	AppPassword string `koanf:"app_password"`
}

type LimitsConfig struct {
	DailyRequests int     `koanf:"daily_requests"`
	DailyCost     float64 `koanf:"daily_cost"`
}

type SchedulingConfig struct {
	MaxPosts int    `koanf:"max_posts"`
	Timezone string `koanf:"timezone"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type ModulesConfig struct {
	Dir string `koanf:"dir"`
}

// IsConfigured reports whether the named provider has a non-empty key.
func (p ProvidersConfig) IsConfigured(provider string) bool {
	switch provider {
	case "openai":
		return strings.TrimSpace(p.OpenAIAPIKey) != ""
	case "anthropic":
		return strings.TrimSpace(p.AnthropicAPIKey) != ""
	case "google":
		return strings.TrimSpace(p.GoogleAPIKey) != ""
	case "serpapi":
		return strings.TrimSpace(p.SerpAPIKey) != ""
	default:
		return false
	}
}

// HasAnyAIKey reports whether at least one language-model provider key is
// present.
func (p ProvidersConfig) HasAnyAIKey() bool {
	return p.IsConfigured("openai") || p.IsConfigured("anthropic") || p.IsConfigured("google")
}

// IsConfigured reports whether the WordPress connection is usable.
func (w WordPressConfig) IsConfigured() bool {
	return strings.TrimSpace(w.URL) != "" &&
		strings.TrimSpace(w.Username) != "" &&
		strings.TrimSpace(w.AppPassword) != ""
}

func defaults() map[string]any {
	return map[string]any{
		"app.name":                  "contentagent",
		"app.version":               "1.0.0",
		"app.debug":                 false,
		"server.api_addr":           ":8000",
		"server.ui_addr":            ":8501",
		"database.url":              "",
		"cache.url":                 "memory://",
		"cache.ttl":                 "1h",
		"providers.timeout":         "10s",
		"providers.request_timeout": "30s",
		"providers.max_concurrent":  10,
		"providers.default_tier":    "research",
		"providers.local_fallback":  true,
		"limits.daily_requests":     50,
		"limits.daily_cost":         10.0,
		"scheduling.max_posts":      100,
		"scheduling.timezone":       "UTC",
		"log.level":                 "info",
		"log.format":                "text",
		"modules.dir":               "modules.d",
	}
}

// envKeys maps the environment variable surface onto config paths. Variables
// outside this table are ignored.
var envKeys = map[string]string{
	"APP_NAME":                "app.name",
	"APP_VERSION":             "app.version",
	"DEBUG":                   "app.debug",
	"API_ADDR":                "server.api_addr",
	"UI_ADDR":                 "server.ui_addr",
	"DATABASE_URL":            "database.url",
	"REDIS_URL":               "cache.url",
	"CACHE_TTL":               "cache.ttl",
	"OPENAI_API_KEY":          "providers.openai_api_key",
	"ANTHROPIC_API_KEY":       "providers.anthropic_api_key",
	"GOOGLE_API_KEY":          "providers.google_api_key",
	"SERPAPI_KEY":             "providers.serpapi_key",
	"PROVIDER_TIMEOUT":        "providers.timeout",
	"REQUEST_TIMEOUT":         "providers.request_timeout",
	"MAX_CONCURRENT_REQUESTS": "providers.max_concurrent",
	"DEFAULT_MODEL_TIER":      "providers.default_tier",
	"ENABLE_LOCAL_FALLBACK":   "providers.local_fallback",
	"WORDPRESS_URL":           "wordpress.url",
	"WORDPRESS_USERNAME":      "wordpress.username",
	"WORDPRESS_APP_PASSWORD":  "wordpress.app_password",
	"DAILY_USER_LIMIT":        "limits.daily_requests",
	"COST_PER_USER_LIMIT":     "limits.daily_cost",
	"MAX_SCHEDULED_POSTS":     "scheduling.max_posts",
	"SCHEDULING_TIMEZONE":     "scheduling.timezone",
	"LOG_LEVEL":               "log.level",
	"LOG_FORMAT":              "log.format",
	"MODULES_DIR":             "modules.dir",
}

// Load reads configuration from defaults, a .env file in the working
// directory when present, and the environment.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an optional YAML config file layered between the
// defaults and the environment.
func LoadFile(path string) (*Config, error) {
	// A missing .env file is the normal case outside development.
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider("", ".", func(s string) string {
		return envKeys[s]
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				secondsToDurationHookFunc(),
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// secondsToDurationHookFunc decodes durations given as bare numbers, which
// the original env contract treats as seconds, or as duration strings.
func secondsToDurationHookFunc() mapstructure.DecodeHookFunc {
	durationType := reflect.TypeOf(time.Duration(0))
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if t != durationType {
			return data, nil
		}
		switch f.Kind() {
		case reflect.Int, reflect.Int64, reflect.Float64:
			seconds, err := strconv.ParseFloat(fmt.Sprintf("%v", data), 64)
			if err != nil {
				return data, nil
			}
			return time.Duration(seconds * float64(time.Second)), nil
		case reflect.String:
			s := data.(string)
			if d, err := time.ParseDuration(s); err == nil {
				return d, nil
			}
			if seconds, err := strconv.ParseFloat(s, 64); err == nil {
				return time.Duration(seconds * float64(time.Second)), nil
			}
		}
		return data, nil
	}
}

// Validate rejects values that would misconfigure the process as a whole.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q: must be debug, info, warn, or error", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q: must be text or json", c.Log.Format)
	}
	switch c.Providers.DefaultTier {
	case "research", "draft", "final":
	default:
		return fmt.Errorf("invalid model tier %q: must be research, draft, or final", c.Providers.DefaultTier)
	}
	if c.Limits.DailyRequests < 0 {
		return fmt.Errorf("daily request limit must not be negative")
	}
	if c.Limits.DailyCost < 0 {
		return fmt.Errorf("daily cost limit must not be negative")
	}
	if c.Providers.Timeout <= 0 {
		return fmt.Errorf("provider timeout must be positive")
	}
	return nil
}
