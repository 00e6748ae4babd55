package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/pillbot/internal/api"
)

func envOf(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func TestFromEnvDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := FromEnv(envOf(map[string]string{
		"TELEGRAM_TOKEN": "123:abc",
		"DB_DSN":         "postgres://localhost/pillbot",
	}))
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.TelegramToken)
	assert.Equal(t, DefaultEnvironment, cfg.Environment)
	assert.Equal(t, api.DefaultBaseURL, cfg.APIBaseURL)
	assert.Equal(t, 15*time.Second, cfg.APITimeout)
	assert.Equal(t, 30*time.Minute, cfg.DraftTTL)
	assert.Equal(t, 720*time.Hour, cfg.SessionMaxAge)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "migrations", cfg.MigrationsDir)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.False(t, cfg.IsProduction())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Parallel()

	cfg, err := FromEnv(envOf(map[string]string{
		"TELEGRAM_TOKEN":  "123:abc",
		"DB_DSN":          "postgres://localhost/pillbot",
		"ENV":             "production",
		"API_BASE_URL":    "http://localhost:3000/",
		"API_TIMEOUT":     "5s",
		"DRAFT_TTL":       "1h",
		"SESSION_MAX_AGE": "48h",
		"HTTP_ADDR":       ":9090",
		"TIMEZONE":        "Africa/Johannesburg",
	}))
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "http://localhost:3000/", cfg.APIBaseURL)
	assert.Equal(t, 5*time.Second, cfg.APITimeout)
	assert.Equal(t, time.Hour, cfg.DraftTTL)
	assert.Equal(t, 48*time.Hour, cfg.SessionMaxAge)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "Africa/Johannesburg", cfg.Location.String())
}

func TestFromEnvErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "missing token and dsn",
			env:     map[string]string{},
			wantErr: "TELEGRAM_TOKEN is required",
		},
		{
			name:    "bad duration",
			env:     map[string]string{"TELEGRAM_TOKEN": "t", "DB_DSN": "d", "DRAFT_TTL": "soon"},
			wantErr: "DRAFT_TTL",
		},
		{
			name:    "negative duration",
			env:     map[string]string{"TELEGRAM_TOKEN": "t", "DB_DSN": "d", "API_TIMEOUT": "-1s"},
			wantErr: "API_TIMEOUT must be positive",
		},
		{
			name:    "unknown timezone",
			env:     map[string]string{"TELEGRAM_TOKEN": "t", "DB_DSN": "d", "TIMEZONE": "Mars/Olympus"},
			wantErr: "TIMEZONE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := FromEnv(envOf(tt.env))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFromEnvMissingDSN(t *testing.T) {
	t.Parallel()

	_, err := FromEnv(envOf(map[string]string{"TELEGRAM_TOKEN": "t"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DSN is required")
	assert.NotContains(t, err.Error(), "TELEGRAM_TOKEN")
}
