package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/libry/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, 14, cfg.Lending.FreeDays)
	assert.InDelta(t, 2.0, cfg.Lending.FeePerDay, 0.0001)
	assert.InDelta(t, 500.0, cfg.Lending.DebtLimit, 0.0001)
	assert.Equal(t, 30*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, "https://frappe.io/api/method/frappe-library", cfg.Catalog.BaseURL)
	assert.Empty(t, cfg.Auth.Secret)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_NAME", "books")
	t.Setenv("LENDING_DEBT_LIMIT", "250.5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://postgres:@db.internal:5432/books?sslmode=disable", cfg.ConnectionString())
	assert.InDelta(t, 250.5, cfg.Lending.DebtLimit, 0.0001)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
}

func TestLoad_RejectsNegativeLendingSettings(t *testing.T) {
	tests := []struct {
		env   string
		value string
	}{
		{"LENDING_FREE_DAYS", "-1"},
		{"LENDING_FEE_PER_DAY", "-2"},
		{"LENDING_DEBT_LIMIT", "-0.5"},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv(tt.env, tt.value)

			_, err := config.Load()
			assert.ErrorContains(t, err, tt.env)
		})
	}
}

func TestLoad_AcceptsZeroFee(t *testing.T) {
	t.Setenv("LENDING_FEE_PER_DAY", "0")
	t.Setenv("LENDING_FREE_DAYS", "0")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Zero(t, cfg.Lending.FeePerDay)
}

func TestConfig_LogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"nonsense", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Log.Level = tt.in
			assert.Equal(t, tt.want, cfg.LogLevel())
		})
	}
}
