// Pathlight - Career Guidance Platform Server
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

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/pathlight-labs/pathlight/internal/api"
	"github.com/pathlight-labs/pathlight/internal/catalog"
	"github.com/pathlight-labs/pathlight/internal/coach"
	"github.com/pathlight-labs/pathlight/internal/config"
	"github.com/pathlight-labs/pathlight/internal/generator"
	"github.com/pathlight-labs/pathlight/internal/identity"
	"github.com/pathlight-labs/pathlight/internal/middleware"
	"github.com/pathlight-labs/pathlight/internal/store"
	"github.com/pathlight-labs/pathlight/web"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting server", "port", cfg.Port, "dev", cfg.IsDevelopment())

	// Initialize dependencies.
	repo, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := repo.Close(); closeErr != nil {
			slog.Error("Failed to close repository", "error", closeErr)
		}
	}()

	if err := repo.Ping(context.Background()); err != nil {
		slog.Error("Database health check failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database connected")

	// Select the text generation backend. Without an API key the scripted
	// generator keeps the coach usable offline.
	var gen generator.Generator
	if cfg.Gemini.APIKey != "" {
		geminiClient, err := generator.NewGeminiClient(generator.GeminiConfig{
			APIKey:  cfg.Gemini.APIKey,
			BaseURL: cfg.Gemini.BaseURL,
			Model:   cfg.Gemini.Model,
			Timeout: cfg.Gemini.Timeout,
		}, logger)
		if err != nil {
			slog.Error("Failed to initialize Gemini client", "error", err)
			os.Exit(1)
		}
		gen = geminiClient
		slog.Info("Gemini generator enabled", "model", cfg.Gemini.Model)
	} else {
		gen = generator.NewScripted()
		slog.Info("GEMINI_API_KEY not set, using scripted generator")
	}

	transcript, err := coach.NewTranscriptLogger(coach.TranscriptLogConfig{
		Enabled:   cfg.TranscriptLog.Enabled,
		Dir:       cfg.TranscriptLog.Dir,
		QueueSize: cfg.TranscriptLog.QueueSize,
	}, logger)
	if err != nil {
		slog.Error("Failed to initialize transcript logger", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := transcript.Close(); closeErr != nil {
			slog.Error("Failed to close transcript logger", "error", closeErr)
		}
	}()

	// Initialize services.
	engine := coach.NewEngine(repo, gen, logger, coach.WithHistoryWindow(cfg.HistoryWindow))
	content := catalog.New()
	rateLimiter := api.NewRateLimiter(cfg.RateLimit.RequestsPerWindow, cfg.RateLimit.WindowDuration)

	// Initialize handlers.
	healthHandler := api.NewHealthHandler(repo)
	coachHandler := api.NewCoachHandler(engine, repo, rateLimiter, transcript)
	catalogHandler := api.NewCatalogHandler(content, repo)
	dashboardHandler := api.NewDashboardHandler()
	adminHandler := api.NewAdminHandler(repo)
	wsHandler := api.NewCoachSocketHandler(engine, rateLimiter, cfg.FrontendURL, cfg.IsDevelopment())

	// Setup router.
	r := chi.NewRouter()

	// Global middleware.
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))
	r.Use(middleware.CORS([]string{"*"}))
	r.Use(identity.Middleware(repo, cfg.IsDevelopment()))

	healthHandler.RegisterHealth(r)
	coachHandler.RegisterRoutes(r)
	catalogHandler.RegisterRoutes(r)
	dashboardHandler.RegisterRoutes(r)
	adminHandler.RegisterRoutes(r)

	// WebSocket endpoint.
	r.Get("/ws/coach", wsHandler.ServeHTTP)

	// Serve embedded frontend (SPA catch-all).
	r.Handle("/*", web.SPAHandler())

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // long-lived websocket connections
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store.StartTTLWorker(ctx, repo, cfg.CoachSessionTTL)

	// Start server.
	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal.
	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped successfully")
}
