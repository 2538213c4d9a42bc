package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/nemogoc/pickup/internal/scheduler"
)

// InviteStyle selects how new-game notifications reach players.
type InviteStyle string

const (
	// InviteLinks sends every player personal yes/no/maybe capability links.
	InviteLinks InviteStyle = "links"
	// InviteDashboard sends everyone the same dashboard link.
	InviteDashboard InviteStyle = "dashboard"
)

// Config is the process configuration, read from the environment.
type Config struct {
	Port     string `env:"PORT" envDefault:"3000"`
	DBFile   string `env:"DB_FILE" envDefault:"pickup.db"`
	BaseURL  string `env:"BASE_URL"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	Timezone string `env:"TIMEZONE" envDefault:"Local"`

	InviteStyle      InviteStyle `env:"INVITE_STYLE" envDefault:"links"`
	ReminderSchedule string      `env:"REMINDER_CRON_SCHEDULE"`

	// TrustProxy takes the client address from X-Forwarded-For.
	TrustProxy       bool    `env:"TRUST_PROXY" envDefault:"false"`
	RespondRateLimit float64 `env:"RESPOND_RATE_LIMIT" envDefault:"1"`
	RespondRateBurst int     `env:"RESPOND_RATE_BURST" envDefault:"10"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	Email EmailConfig `envPrefix:"EMAIL_"`
	TLS   TLSConfig   `envPrefix:"TLS_"`
	Otel  OtelConfig
}

// EmailConfig configures the SMTP notifier. An empty User means "log only".
type EmailConfig struct {
	Host    string        `env:"HOST" envDefault:"smtp.gmail.com"`
	Port    int           `env:"PORT" envDefault:"587"`
	User    string        `env:"USER"`
	Pass    string        `env:"PASS"`
	From    string        `env:"FROM"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"15s"`
}

// TLSConfig enables ACME certificates for the listed domains.
type TLSConfig struct {
	Domains  []string `env:"DOMAINS" envSeparator:","`
	CacheDir string   `env:"CACHE_DIR" envDefault:"certs"`
}

type OtelConfig struct {
	Endpoint    string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"pickup"`
}

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom reads the configuration from the given variables only.
func LoadFrom(vars map[string]string) (Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:" + cfg.Port
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Email.From == "" {
		cfg.Email.From = cfg.Email.User
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot run with.
func (c Config) Validate() error {
	switch c.InviteStyle {
	case InviteLinks, InviteDashboard:
	default:
		return fmt.Errorf("INVITE_STYLE must be %q or %q, got %q", InviteLinks, InviteDashboard, c.InviteStyle)
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("BASE_URL must be an absolute http(s) URL, got %q", c.BaseURL)
	}

	if c.RespondRateLimit <= 0 || c.RespondRateBurst <= 0 {
		return fmt.Errorf("RESPOND_RATE_LIMIT and RESPOND_RATE_BURST must be positive")
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	if c.ReminderSchedule != "" {
		if err := scheduler.Validate(c.ReminderSchedule); err != nil {
			return fmt.Errorf("REMINDER_CRON_SCHEDULE: %w", err)
		}
	}
	return nil
}

// Location resolves Timezone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// EmailEnabled reports whether real SMTP delivery is configured.
func (c Config) EmailEnabled() bool {
	return c.Email.User != ""
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
