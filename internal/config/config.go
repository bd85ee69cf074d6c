package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Libry"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"libry"`
	}

	Server struct {
		Timeout        time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		AllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	}

	Catalog struct {
		BaseURL string        `envconfig:"CATALOG_BASE_URL" default:"https://frappe.io/api/method/frappe-library"`
		Timeout time.Duration `envconfig:"CATALOG_TIMEOUT" default:"30s"`
	}

	Lending struct {
		FreeDays  int     `envconfig:"LENDING_FREE_DAYS" default:"14"`
		FeePerDay float64 `envconfig:"LENDING_FEE_PER_DAY" default:"2.0"`
		DebtLimit float64 `envconfig:"LENDING_DEBT_LIMIT" default:"500"`
	}

	Auth struct {
		// Secret enables bearer-token auth on the API when set.
		Secret   string        `envconfig:"AUTH_SECRET"`
		TokenTTL time.Duration `envconfig:"AUTH_TOKEN_TTL" default:"24h"`
	}

	Log struct {
		Level string `envconfig:"LOG_LEVEL" default:"info"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// LogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	return slog.LevelInfo
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Lending.FreeDays < 0:
		return fmt.Errorf("LENDING_FREE_DAYS must not be negative, got %d", c.Lending.FreeDays)
	case c.Lending.FeePerDay < 0:
		return fmt.Errorf("LENDING_FEE_PER_DAY must not be negative, got %v", c.Lending.FeePerDay)
	case c.Lending.DebtLimit < 0:
		return fmt.Errorf("LENDING_DEBT_LIMIT must not be negative, got %v", c.Lending.DebtLimit)
	}

	return nil
}
