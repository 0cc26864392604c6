package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
//
//nolint:govet // Field alignment optimization would reduce readability
type Config struct {
	Server        ServerConfig
	Backend       BackendConfig
	Query         QueryConfig
	View          ViewConfig
	Session       SessionConfig
	Redis         RedisConfig
	Logging       LoggingConfig
	Observability ObservabilityConfig
	Profiling     ProfilingConfig
}

type ServerConfig struct {
	Port           string
	GinMode        string
	AppEnv         string
	AllowedOrigins []string
	// MetricsToken guards /api/metrics; empty leaves it open
	MetricsToken string
	// RecaptchaSecret enables captcha checks on login when set
	RecaptchaSecret string
}

// BackendConfig describes the marketplace REST API the gateway fronts.
type BackendConfig struct {
	BaseURL        string
	TimeoutSeconds int // 0 disables the client timeout
}

type QueryConfig struct {
	StaleSeconds int
	Retry        int
}

type ViewConfig struct {
	RenderDeadlineMS int
	PageSize         int
	ChartMonths      int
}

// SessionStore selects where the session tuple lives.
type SessionStore string

const (
	SessionStoreCookie SessionStore = "cookie"
	SessionStoreRedis  SessionStore = "redis"
)

type SessionConfig struct {
	Store        SessionStore
	JWTSecret    string
	JWTIssuer    string
	TTLHours     int
	CookieDomain string
	CookieSecure bool
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type LoggingConfig struct {
	Level string
	Dir   string
}

type ObservabilityConfig struct {
	AlloyEndpoint     string
	ServiceName       string
	ServiceNamespace  string
	ServiceVersion    string
	ServiceInstanceID string
}

type ProfilingConfig struct {
	Enabled               bool
	Endpoint              string
	AppName               string
	SampleTypes           string
	UploadIntervalSeconds int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("ALLOWED_CORS_ORIGINS", "https://tuitionhub.app")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DIR", "")
	v.SetDefault("BACKEND_TIMEOUT_SECONDS", 30)
	v.SetDefault("QUERY_STALE_SECONDS", 300) // 5 minutes
	v.SetDefault("QUERY_RETRY", 1)
	v.SetDefault("RENDER_DEADLINE_MS", 2500)
	v.SetDefault("PAGE_SIZE", 6)
	v.SetDefault("CHART_MONTHS", 6)
	v.SetDefault("SESSION_STORE", string(SessionStoreCookie))
	v.SetDefault("JWT_ISSUER", "tuitionhub-web")
	v.SetDefault("SESSION_TTL_HOURS", 24*7)
	v.SetDefault("COOKIE_DOMAIN", "")
	v.SetDefault("COOKIE_SECURE", true)
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("O11Y_EXPORTER_ENDPOINT", "")
	v.SetDefault("O11Y_BE_SERVICE_NAME", "tuitionhub-web")
	v.SetDefault("O11Y_SERVICE_NAMESPACE", "tuitionhub")
	v.SetDefault("O11Y_BE_SERVICE_VERSION", "1.0.0")
	v.SetDefault("O11Y_PROFILING_ENABLED", false)
	v.SetDefault("O11Y_PROFILING_APP_NAME", "tuitionhub-web")
	v.SetDefault("O11Y_PROFILING_SAMPLE_TYPES", "cpu,alloc_space,goroutines")
	v.SetDefault("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS", 15)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	_ = v.ReadInConfig() //nolint:errcheck // Ignore error if .env file doesn't exist

	cfg := &Config{
		Server: ServerConfig{
			Port:            v.GetString("PORT"),
			GinMode:         v.GetString("GIN_MODE"),
			AppEnv:          v.GetString("APP_ENV"),
			AllowedOrigins:  splitList(v.GetString("ALLOWED_CORS_ORIGINS")),
			MetricsToken:    v.GetString("METRICS_AUTH_TOKEN"),
			RecaptchaSecret: v.GetString("RECAPTCHA_SECRET_KEY"),
		},
		Backend: BackendConfig{
			BaseURL:        strings.TrimRight(v.GetString("BACKEND_BASE_URL"), "/"),
			TimeoutSeconds: v.GetInt("BACKEND_TIMEOUT_SECONDS"),
		},
		Query: QueryConfig{
			StaleSeconds: v.GetInt("QUERY_STALE_SECONDS"),
			Retry:        v.GetInt("QUERY_RETRY"),
		},
		View: ViewConfig{
			RenderDeadlineMS: v.GetInt("RENDER_DEADLINE_MS"),
			PageSize:         v.GetInt("PAGE_SIZE"),
			ChartMonths:      v.GetInt("CHART_MONTHS"),
		},
		Session: SessionConfig{
			Store:        SessionStore(strings.ToLower(v.GetString("SESSION_STORE"))),
			JWTSecret:    v.GetString("JWT_SECRET"),
			JWTIssuer:    v.GetString("JWT_ISSUER"),
			TTLHours:     v.GetInt("SESSION_TTL_HOURS"),
			CookieDomain: v.GetString("COOKIE_DOMAIN"),
			CookieSecure: v.GetBool("COOKIE_SECURE"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
			Dir:   v.GetString("LOG_DIR"),
		},
		Observability: ObservabilityConfig{
			AlloyEndpoint:     v.GetString("O11Y_EXPORTER_ENDPOINT"),
			ServiceName:       v.GetString("O11Y_BE_SERVICE_NAME"),
			ServiceNamespace:  v.GetString("O11Y_SERVICE_NAMESPACE"),
			ServiceVersion:    v.GetString("O11Y_BE_SERVICE_VERSION"),
			ServiceInstanceID: v.GetString("SERVICE_INSTANCE_ID"),
		},
		Profiling: ProfilingConfig{
			Enabled:               v.GetBool("O11Y_PROFILING_ENABLED"),
			Endpoint:              v.GetString("O11Y_PROFILING_ENDPOINT"),
			AppName:               v.GetString("O11Y_PROFILING_APP_NAME"),
			SampleTypes:           v.GetString("O11Y_PROFILING_SAMPLE_TYPES"),
			UploadIntervalSeconds: v.GetInt("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func splitList(raw string) []string {
	out := []string{}
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if len(c.Server.AllowedOrigins) == 0 {
		return fmt.Errorf("ALLOWED_CORS_ORIGINS is required")
	}

	if c.Backend.BaseURL == "" {
		return fmt.Errorf("BACKEND_BASE_URL is required")
	}
	if c.Backend.TimeoutSeconds < 0 {
		return fmt.Errorf("BACKEND_TIMEOUT_SECONDS must not be negative")
	}

	// Reads retry at most once before surfacing an unavailable view.
	if c.Query.Retry < 0 || c.Query.Retry > 1 {
		return fmt.Errorf("QUERY_RETRY must be 0 or 1")
	}
	if c.Query.StaleSeconds <= 0 {
		return fmt.Errorf("QUERY_STALE_SECONDS must be positive")
	}

	if c.View.PageSize <= 0 {
		return fmt.Errorf("PAGE_SIZE must be positive")
	}
	if c.View.ChartMonths <= 0 {
		return fmt.Errorf("CHART_MONTHS must be positive")
	}
	if c.View.RenderDeadlineMS <= 0 {
		return fmt.Errorf("RENDER_DEADLINE_MS must be positive")
	}

	if c.Session.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	switch c.Session.Store {
	case SessionStoreCookie:
	case SessionStoreRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("REDIS_ADDR is required when SESSION_STORE=redis")
		}
	default:
		return fmt.Errorf("unsupported SESSION_STORE %q", c.Session.Store)
	}

	if c.Profiling.Enabled && c.Profiling.Endpoint == "" {
		return fmt.Errorf("O11Y_PROFILING_ENDPOINT is required when profiling is enabled")
	}

	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development" || c.Server.GinMode == "debug"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.AppEnv == "production"
}

// StaleTime is how long a fetched read stays fresh.
func (c *Config) StaleTime() time.Duration {
	return time.Duration(c.Query.StaleSeconds) * time.Second
}

// RenderDeadline bounds how long a view waits for its queries to settle.
func (c *Config) RenderDeadline() time.Duration {
	return time.Duration(c.View.RenderDeadlineMS) * time.Millisecond
}

// BackendTimeout returns the upstream client timeout (zero means none).
func (c *Config) BackendTimeout() time.Duration {
	return time.Duration(c.Backend.TimeoutSeconds) * time.Second
}

// SessionTTL returns the lifetime of a stored session.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Session.TTLHours) * time.Hour
}
