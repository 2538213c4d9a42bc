package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "pickup.db", cfg.DBFile)
	assert.Equal(t, "http://localhost:3000", cfg.BaseURL)
	assert.Equal(t, InviteLinks, cfg.InviteStyle)
	assert.Equal(t, "smtp.gmail.com", cfg.Email.Host)
	assert.Equal(t, 587, cfg.Email.Port)
	assert.False(t, cfg.EmailEnabled())
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
	assert.Empty(t, cfg.TLS.Domains)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"PORT":                        "8080",
		"BASE_URL":                    "https://hoops.example.com/",
		"INVITE_STYLE":                "dashboard",
		"REMINDER_CRON_SCHEDULE":      "0 18 * * 2",
		"EMAIL_USER":                  "bot@example.com",
		"EMAIL_PASS":                  "secret",
		"TLS_DOMAINS":                 "hoops.example.com,www.hoops.example.com",
		"LOG_LEVEL":                   "debug",
		"TIMEZONE":                    "UTC",
		"OTEL_EXPORTER_OTLP_ENDPOINT": "localhost:4318",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://hoops.example.com", cfg.BaseURL, "trailing slash trimmed")
	assert.Equal(t, InviteDashboard, cfg.InviteStyle)
	assert.Equal(t, "0 18 * * 2", cfg.ReminderSchedule)
	assert.True(t, cfg.EmailEnabled())
	assert.Equal(t, "bot@example.com", cfg.Email.From, "From defaults to the SMTP user")
	assert.Equal(t, []string{"hoops.example.com", "www.hoops.example.com"}, cfg.TLS.Domains)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, "localhost:4318", cfg.Otel.Endpoint)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := map[string]map[string]string{
		"invite style": {"INVITE_STYLE": "carrier-pigeon"},
		"base url":     {"BASE_URL": "hoops.example.com"},
		"timezone":     {"TIMEZONE": "Mars/Olympus"},
		"email port":   {"EMAIL_PORT": "not-a-number"},
		"rate limit":   {"RESPOND_RATE_LIMIT": "0"},
		"cron":         {"REMINDER_CRON_SCHEDULE": "every tuesday"},
		"cron fields":  {"REMINDER_CRON_SCHEDULE": "0 18 * *"},
	}
	for name, vars := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFrom(vars)
			assert.Error(t, err)
		})
	}
}

func TestLoadAcceptsReminderSchedules(t *testing.T) {
	for _, spec := range []string{"0 18 * * 1", "0 0 18 * * 1", "@daily"} {
		cfg, err := LoadFrom(map[string]string{"REMINDER_CRON_SCHEDULE": spec})
		require.NoError(t, err, spec)
		assert.Equal(t, spec, cfg.ReminderSchedule)
	}
}
