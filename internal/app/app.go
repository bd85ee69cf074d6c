// Package app wires configuration, storage and services shared by every binary.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/libry/internal/auth"
	"github.com/MrJamesThe3rd/libry/internal/book"
	bookStore "github.com/MrJamesThe3rd/libry/internal/book/store"
	"github.com/MrJamesThe3rd/libry/internal/config"
	"github.com/MrJamesThe3rd/libry/internal/database"
	"github.com/MrJamesThe3rd/libry/internal/importer"
	"github.com/MrJamesThe3rd/libry/internal/importer/csvfile"
	"github.com/MrJamesThe3rd/libry/internal/importer/frappe"
	"github.com/MrJamesThe3rd/libry/internal/lending"
	lendingStore "github.com/MrJamesThe3rd/libry/internal/lending/store"
	"github.com/MrJamesThe3rd/libry/internal/member"
	memberStore "github.com/MrJamesThe3rd/libry/internal/member/store"
)

type App struct {
	Config *config.Config
	DB     *sql.DB
	Logger *slog.Logger

	Books    *book.Service
	Members  *member.Service
	Lending  *lending.Service
	Importer *importer.Service
	CSV      *csvfile.Parser
	// Tokens is nil when AUTH_SECRET is not configured.
	Tokens *auth.Tokens
}

// LoadConfig reads .env when present, then the environment, and installs the default logger.
func LoadConfig() (*config.Config, *slog.Logger, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel()}))
	slog.SetDefault(logger)

	return cfg, logger, nil
}

// New connects to the database, applies the schema and builds the services.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err := database.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}

	policy := lending.Policy{
		FreeDays:  cfg.Lending.FreeDays,
		FeePerDay: cfg.Lending.FeePerDay,
		DebtLimit: cfg.Lending.DebtLimit,
	}

	var (
		books   = book.NewService(bookStore.New(db))
		members = member.NewService(memberStore.New(db))
		lend    = lending.NewService(lendingStore.New(db), lending.WithPolicy(policy))
		catalog = frappe.New(cfg.Catalog.BaseURL, cfg.Catalog.Timeout)
		imports = importer.NewService(catalog, books, importer.WithLogger(logger.With("component", "importer")))
	)

	a := &App{
		Config:   cfg,
		DB:       db,
		Logger:   logger,
		Books:    books,
		Members:  members,
		Lending:  lend,
		Importer: imports,
		CSV:      csvfile.NewParser(),
	}

	if cfg.Auth.Secret != "" {
		a.Tokens = auth.NewTokens(cfg.Auth.Secret, cfg.Auth.TokenTTL)
	}

	return a, nil
}

func (a *App) Close() error {
	return a.DB.Close()
}
