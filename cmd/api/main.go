package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/contas/internal/auth"
	"github.com/MrJamesThe3rd/contas/internal/category"
	categoryStore "github.com/MrJamesThe3rd/contas/internal/category/store"
	"github.com/MrJamesThe3rd/contas/internal/config"
	"github.com/MrJamesThe3rd/contas/internal/contact"
	contactStore "github.com/MrJamesThe3rd/contas/internal/contact/store"
	"github.com/MrJamesThe3rd/contas/internal/database"
	"github.com/MrJamesThe3rd/contas/internal/entry"
	entryStore "github.com/MrJamesThe3rd/contas/internal/entry/store"
	"github.com/MrJamesThe3rd/contas/internal/events"
	"github.com/MrJamesThe3rd/contas/internal/export"
	contasHttp "github.com/MrJamesThe3rd/contas/internal/http"
	categoryHandler "github.com/MrJamesThe3rd/contas/internal/http/category"
	contactHandler "github.com/MrJamesThe3rd/contas/internal/http/contact"
	entryHandler "github.com/MrJamesThe3rd/contas/internal/http/entry"
	exportHandler "github.com/MrJamesThe3rd/contas/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/contas/internal/http/importcsv"
	matchingHandler "github.com/MrJamesThe3rd/contas/internal/http/matching"
	reportHandler "github.com/MrJamesThe3rd/contas/internal/http/report"
	"github.com/MrJamesThe3rd/contas/internal/importer"
	"github.com/MrJamesThe3rd/contas/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/contas/internal/matching/store"
	"github.com/MrJamesThe3rd/contas/internal/report"
	reportCache "github.com/MrJamesThe3rd/contas/internal/report/cache"
	reportStore "github.com/MrJamesThe3rd/contas/internal/report/store"
)

func main() {
	_ = godotenv.Load()

	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	slog.SetDefault(newLogger(cfg, os.Stdout))

	decimal.MarshalJSONWithoutQuotes = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(ctx, cfg.ConnectionString())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	if cfg.DB.Migrate {
		if err := database.Migrate(db); err != nil {
			return err
		}

		slog.Info("database migrations applied")
	}

	var (
		notifiers []entry.Notifier
		cache     report.Cache
	)

	if cfg.Redis.Addr != "" {
		client, err := reportCache.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer client.Close()

		redisCache := reportCache.NewRedis(client, "contas:reports", cfg.Report.CacheTTL)
		cache = redisCache
		notifiers = append(notifiers, report.NewInvalidator(redisCache))

		slog.Info("report cache enabled", "addr", cfg.Redis.Addr)
	}

	if cfg.AMQP.URL != "" {
		publisher, err := events.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			return fmt.Errorf("connecting to amqp: %w", err)
		}
		defer publisher.Close()

		notifiers = append(notifiers, publisher)

		slog.Info("event publishing enabled", "exchange", cfg.AMQP.Exchange)
	}

	var (
		entryService    = entry.NewService(entryStore.New(db), notifiers...)
		contactService  = contact.NewService(contactStore.New(db))
		categoryService = category.NewService(categoryStore.New(db))
		matchingService = matching.NewService(matchingStore.New(db))
		reportService   = report.NewService(reportStore.New(db), cache)
		importService   = importer.NewService(contactService, categoryService, matchingService, entryService)
		exportService   = export.NewService(entryService)
	)

	handlers := contasHttp.Handlers{
		Entries:    entryHandler.NewHandler(entryService),
		Contacts:   contactHandler.NewHandler(contactService),
		Categories: categoryHandler.NewHandler(categoryService),
		Reports:    reportHandler.NewHandler(reportService),
		Import:     importHandler.NewHandler(importService),
		Export:     exportHandler.NewHandler(exportService),
		Matching:   matchingHandler.NewHandler(matchingService),
	}

	opts := contasHttp.Options{AllowedOrigins: cfg.CORS.AllowedOrigins}
	if cfg.Auth.Secret != "" {
		opts.Auth = auth.NewTokens(cfg.Auth.Secret, cfg.Auth.TTL).Middleware
	} else {
		slog.Warn("AUTH_SECRET is empty, API is unauthenticated")
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           contasHttp.New(handlers, opts),
		ReadHeaderTimeout: cfg.Server.Timeout,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
	}

	errCh := make(chan error, 1)

	go func() {
		slog.Info("starting server", "addr", srv.Addr, "app", cfg.App.Name)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		slog.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	return nil
}

func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel()}

	if strings.EqualFold(cfg.App.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}
