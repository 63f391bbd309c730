package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/hizkiajonathanbudiana/Tracker-Money/internal/amqp"
	"github.com/hizkiajonathanbudiana/Tracker-Money/internal/auth"
	"github.com/hizkiajonathanbudiana/Tracker-Money/internal/config"
	"github.com/hizkiajonathanbudiana/Tracker-Money/internal/events"
	"github.com/hizkiajonathanbudiana/Tracker-Money/internal/export"
	apphttp "github.com/hizkiajonathanbudiana/Tracker-Money/internal/http"
	applog "github.com/hizkiajonathanbudiana/Tracker-Money/internal/log"
	"github.com/hizkiajonathanbudiana/Tracker-Money/internal/services"
	"github.com/hizkiajonathanbudiana/Tracker-Money/internal/storage"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	logger := applog.New(applog.Config{
		Level:     cfg.LogLevel,
		Format:    cfg.LogFormat,
		Component: applog.ComponentApp,
	})
	applog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open database", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()
	logger.Info("Database ready", "path", cfg.SQLiteDBPath)

	// AMQP fan-out is optional; without a URL the publisher stays nil and
	// every publish is a no-op.
	var publisher *amqp.Client
	if cfg.AMQPURL != "" {
		publisher, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to connect to AMQP", "error", err)
			os.Exit(1)
		}
		defer publisher.Close()
		logger.Info("AMQP publisher ready", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	}

	// Google Sheets mirroring is optional too.
	var sheets *export.SheetsClient
	if cfg.GoogleSpreadsheetID != "" {
		sheets, err = export.NewSheetsFromEnv(context.Background())
		if err != nil {
			logger.Warn("Sheets export disabled", "error", err)
			sheets = nil
		} else {
			logger.Info("Sheets export ready", "spreadsheet_id", cfg.GoogleSpreadsheetID)
		}
	}

	hub := events.NewHub()
	defer hub.Close()

	srv := apphttp.NewServer(":"+cfg.Port, apphttp.Deps{
		Authenticator: auth.NewPasswordAuthenticator(repo),
		Tokens:        auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL),
		Expenses:      services.NewExpenseService(repo, repo, repo, hub, publisher),
		Wallets:       services.NewWalletService(repo, repo, hub, publisher),
		Categories:    services.NewCategoryService(repo, hub, publisher),
		Hub:           hub,
		Sheets:        sheets,
	})
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
