// Package main is the entrypoint for the Mini API server.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/miniapi/miniapi/internal/config"
	"github.com/miniapi/miniapi/internal/handler"
	"github.com/miniapi/miniapi/internal/metrics"
	"github.com/miniapi/miniapi/internal/middleware"
	"github.com/miniapi/miniapi/internal/repository"
	"github.com/miniapi/miniapi/internal/server"
	"github.com/miniapi/miniapi/internal/service"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	// Initialize database
	repo, err := repository.New(ctx, cfg.DatabaseURL())
	if err != nil {
		// The DSN carries credentials; log only the non-secret parts.
		logger.Error("failed to connect to database",
			slog.String("host", cfg.PostgresHost),
			slog.Int("port", cfg.PostgresPort),
			slog.String("database", cfg.PostgresDB),
		)
		os.Exit(1)
	}
	logger.Info("connected to database", "host", cfg.PostgresHost, "database", cfg.PostgresDB)

	// Initialize metrics and services
	recorder := metrics.NewInMemory()
	userService := service.NewUserService(repo, recorder)

	// Initialize handlers
	h := handler.New()
	healthHandler := handler.NewHealthHandler(repo)
	metricsHandler := handler.NewMetricsHandler(recorder)
	userHandler := handler.NewUserHandler(userService, logger)
	docsHandler := handler.NewDocsHandler()

	// Setup router
	r := setupRouter(h, healthHandler, metricsHandler, userHandler, docsHandler, recorder, cfg, logger)

	// Create and run server
	srv := server.New(
		r,
		cfg.AppHost,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	srv.OnShutdown("database pool", func(ctx context.Context) error {
		repo.Close()
		return nil
	})

	logger.Info("starting server",
		"host", cfg.AppHost,
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"docs_enabled", cfg.DocsEnabled(),
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(
	h *handler.Handler,
	healthHandler *handler.HealthHandler,
	metricsHandler *handler.MetricsHandler,
	userHandler *handler.UserHandler,
	docsHandler *handler.DocsHandler,
	recorder metrics.Recorder,
	cfg *config.Config,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Metrics(recorder))

	// Probes and scrape endpoint (no auth required)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)
	r.Get("/metrics", metricsHandler.Metrics)

	// Root info endpoint
	r.Get("/", h.Hello)

	// User resource routes. Mounted twice: the browser client calls
	// /api/v1/users, older consumers still use the bare /users prefix.
	userRoutes := func(r chi.Router) {
		r.Get("/", userHandler.List)
		r.Post("/add", userHandler.Create)
		r.Get("/{id}", userHandler.Get)
		r.Put("/{id}", userHandler.Update)
		r.Delete("/{id}", userHandler.Delete)
	}
	r.Route("/api/v1/users", userRoutes)
	r.Route("/users", userRoutes)

	// API documentation behind Basic Auth. The gate covers only this
	// endpoint; the resource API itself is open.
	if cfg.DocsEnabled() {
		creds := map[string]string{cfg.DocsUsername: cfg.DocsPassword}
		r.With(chimiddleware.BasicAuth("docs", creds)).Get("/docs", docsHandler.OpenAPI)
	} else {
		logger.Warn("docs endpoint disabled: DOCS_USERNAME/DOCS_PASSWORD not set")
	}

	// 404 and 405 handlers
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}
