package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mauv0809/ipo-watch/internal/config"
	"github.com/mauv0809/ipo-watch/internal/db"
	"github.com/mauv0809/ipo-watch/internal/handlers"
	"github.com/mauv0809/ipo-watch/internal/history"
	"github.com/mauv0809/ipo-watch/internal/ingest"
	"github.com/mauv0809/ipo-watch/internal/logging"
	"github.com/mauv0809/ipo-watch/internal/report"
	"github.com/mauv0809/ipo-watch/internal/site"
)

func main() {
	// Load .env file if it exists (local dev)
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger := logging.New(cfg.Log, os.Stdout)
	if envErr != nil {
		logger.Debug("No .env file found, using environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, repo, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("Could not open history store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	collectorOpts := []ingest.CollectorOption{ingest.WithMockFallback(cfg.Nasdaq.MockFallback)}
	var runs handlers.RunLog
	if repo != nil {
		collectorOpts = append(collectorOpts, ingest.WithRunRecorder(repo))
		runs = repo
	}
	collector := ingest.NewCollector(
		ingest.NewNasdaqClient(cfg.Nasdaq),
		ingest.NewSECClient(cfg.SEC),
		store,
		collectorOpts...,
	)

	var siteOpts []site.Option
	if cfg.PDF.Enabled {
		siteOpts = append(siteOpts, site.WithPrinter(report.NewPDFPrinter(cfg.PDF.Timeout)))
	}
	builder := site.NewBuilder(cfg.WebsiteDir, siteOpts...)

	// Setup Echo
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogMethod:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
				logger.LogAttrs(c.Request().Context(), slog.LevelError, "Request", attrs...)
				return nil
			}
			logger.LogAttrs(c.Request().Context(), slog.LevelInfo, "Request", attrs...)
			return nil
		},
	}))
	e.Use(middleware.Recover())

	// Static files
	e.Static("/site", cfg.WebsiteDir)

	// Routes
	handlers.New(store).Register(e)
	handlers.NewIngestHandler(collector, store, builder, runs).Register(e)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Start server
	go func() {
		logger.Info("Starting server", slog.String("port", cfg.Port), slog.String("backend", cfg.Backend))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Failed to start server", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown failed", slog.String("error", err.Error()))
	}
	logger.Info("Server stopped")
}

// openStore selects the history backend. repo is nil for the filesystem backend.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*history.Store, *db.Repository, func(), error) {
	if cfg.Backend != "postgres" {
		store, err := history.Open(cfg.DataDir, history.WithLogger(logger))
		return store, nil, func() {}, err
	}

	// Run migrations
	if err := db.RunMigrations(cfg.DatabaseURL); err != nil {
		return nil, nil, nil, err
	}
	logger.Info("Migrations completed")

	// Connect to database
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, err
	}
	logger.Info("Connected to database")

	repo := db.NewRepository(pool)
	return history.New(repo, history.WithLogger(logger)), repo, pool.Close, nil
}
