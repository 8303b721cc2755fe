// Package main is the entry point for the social GraphQL API server.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ClementRollin/LinkedIn-GraphQL/graph"
	"github.com/ClementRollin/LinkedIn-GraphQL/internal/config"
	"github.com/ClementRollin/LinkedIn-GraphQL/internal/database"
	"github.com/ClementRollin/LinkedIn-GraphQL/internal/logging"
	"github.com/ClementRollin/LinkedIn-GraphQL/internal/metrics"
	"github.com/ClementRollin/LinkedIn-GraphQL/internal/server"
	"github.com/ClementRollin/LinkedIn-GraphQL/internal/telemetry"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "0.1.0"

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg := config.Load()
	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)
	if err := cfg.Validate(); err != nil {
		return err
	}

	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Options{
		Stdout:  cfg.TraceStdout,
		Writer:  os.Stderr,
		Version: version,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("failed to flush traces", slog.String("error", err.Error()))
		}
	}()

	// Initialize database connection
	db, err := database.NewClient(ctx, cfg.DatabaseURL, database.WithPool(cfg.MaxOpenConns, cfg.MaxIdleConns))
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.AutoMigrate {
		if err := db.Migrate(); err != nil {
			return err
		}
		logger.Info("migrations applied")
	}

	m := metrics.New()
	schema, err := graph.NewSchema(graph.NewResolver(db, logger, m))
	if err != nil {
		return err
	}

	srv := server.New(server.Options{
		Config:  cfg,
		Schema:  &schema,
		DB:      db,
		Logger:  logger,
		Metrics: m,
		Version: version,
	})
	return srv.Run(ctx)
}
