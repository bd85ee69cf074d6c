package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MrJamesThe3rd/libry/internal/app"
	libryHttp "github.com/MrJamesThe3rd/libry/internal/http"
	bookHandler "github.com/MrJamesThe3rd/libry/internal/http/book"
	importHandler "github.com/MrJamesThe3rd/libry/internal/http/importer"
	lendingHandler "github.com/MrJamesThe3rd/libry/internal/http/lending"
	memberHandler "github.com/MrJamesThe3rd/libry/internal/http/member"
)

func main() {
	cfg, logger, err := app.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	var (
		bookH    = bookHandler.NewHandler(a.Books)
		memberH  = memberHandler.NewHandler(a.Members)
		lendingH = lendingHandler.NewHandler(a.Lending)
		importH  = importHandler.NewHandler(a.Importer, a.CSV)
	)

	router := libryHttp.New(
		libryHttp.Options{AllowedOrigins: cfg.Server.AllowedOrigins, Tokens: a.Tokens},
		bookH, memberH, lendingH, importH,
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown failed", "error", err)
		}
	}()

	slog.Info("starting server", "port", srv.Addr, "auth", a.Tokens != nil)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
