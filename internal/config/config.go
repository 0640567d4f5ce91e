package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"lawdesk/internal/validation"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env      string `env:"ENV" envDefault:"development"` // "development", "production", etc.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Server
	ServerAddr  string `env:"SERVER_ADDR" envDefault:":5000"`
	CORSOrigins string `env:"CORS_ORIGINS" envDefault:"*"` // Comma-separated allowed origins

	// Rate limiting per client IP. Zero disables the limiter.
	RateLimitMax    int           `env:"RATE_LIMIT_MAX" envDefault:"30"`
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`

	// Generative-language API. An empty key is passed through and fails upstream.
	GeminiAPIKey  string        `env:"GEMINI_API_KEY"`
	GeminiModel   string        `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`
	GeminiBaseURL string        `env:"GEMINI_BASE_URL"` // Empty uses the SDK default endpoint
	GeminiTimeout time.Duration `env:"GEMINI_TIMEOUT" envDefault:"15s"`

	// Retry policy around the upstream call
	RetryAttempts int           `env:"RETRY_ATTEMPTS" envDefault:"3"`
	RetryDelay    time.Duration `env:"RETRY_DELAY" envDefault:"2s"`

	// RenderMarkdown converts markdown in generated answers to HTML.
	RenderMarkdown bool `env:"RENDER_MARKDOWN" envDefault:"false"`

	// Topic table override. Empty uses the embedded table.
	TopicsFile string `env:"TOPICS_FILE"`

	// Query log (optional, disabled when empty)
	DatabaseURL       string        `env:"DATABASE_URL"`
	QueryLogRetention time.Duration `env:"QUERY_LOG_RETENTION" envDefault:"720h"`

	// Answer cache and shared limiter storage (optional, disabled when empty)
	RedisURL string        `env:"REDIS_URL"`
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"24h"`

	// AdminToken guards the diagnostic endpoint. Empty leaves it open.
	AdminToken string `env:"ADMIN_TOKEN"`
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that env parsing alone cannot reject.
func (c *Config) Validate() error {
	var errs []error
	if c.RetryAttempts < 1 {
		errs = append(errs, errors.New("RETRY_ATTEMPTS must be at least 1"))
	}
	if c.RetryDelay < 0 {
		errs = append(errs, errors.New("RETRY_DELAY must not be negative"))
	}
	if c.GeminiTimeout <= 0 {
		errs = append(errs, errors.New("GEMINI_TIMEOUT must be positive"))
	}
	if strings.TrimSpace(c.GeminiModel) == "" {
		errs = append(errs, errors.New("GEMINI_MODEL is required"))
	}
	if c.GeminiBaseURL != "" {
		if ok, msg := validation.ValidateURL(c.GeminiBaseURL); !ok {
			errs = append(errs, fmt.Errorf("GEMINI_BASE_URL: %s", msg))
		}
	}
	return errors.Join(errs...)
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// IsQueryLogEnabled returns true if a database is configured for the query log.
func (c *Config) IsQueryLogEnabled() bool {
	return c.DatabaseURL != ""
}

// IsCacheEnabled returns true if Redis is configured.
func (c *Config) IsCacheEnabled() bool {
	return c.RedisURL != ""
}

// AllowedOrigins splits CORSOrigins into a trimmed list.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
