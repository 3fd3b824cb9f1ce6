// Invoice Agent - conversational invoicing server
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

	"github.com/deepmonapara9/invoice-agent/internal/agent"
	"github.com/deepmonapara9/invoice-agent/internal/api"
	"github.com/deepmonapara9/invoice-agent/internal/chat"
	"github.com/deepmonapara9/invoice-agent/internal/config"
	"github.com/deepmonapara9/invoice-agent/internal/llm/gemini"
	"github.com/deepmonapara9/invoice-agent/internal/middleware"
	"github.com/deepmonapara9/invoice-agent/internal/payments"
	"github.com/deepmonapara9/invoice-agent/internal/store"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"google.golang.org/genai"
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

	slog.Info("Starting server", "port", cfg.Port, "model", cfg.GeminiModel, "dev", cfg.IsDevelopment())

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

	genaiClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{APIKey: cfg.GeminiAPIKey})
	if err != nil {
		slog.Error("Failed to create Gemini client", "error", err)
		os.Exit(1)
	}
	provider := gemini.New(gemini.NewRealClient(genaiClient), cfg.GeminiModel)

	stripeClient := payments.NewStripeClient(cfg.StripeAPIKey)

	// Initialize services.
	registry := agent.NewRegistry(agent.NewActions(stripeClient))
	agentService := agent.NewService(provider, registry, repo, cfg.HistoryLimit, cfg.AgentTimeout)
	connManager := chat.NewManager()

	// Initialize handlers.
	wsHandler := chat.NewWebSocketHandler(agentService, repo, connManager, cfg.FrontendURL, cfg.IsDevelopment())
	apiHandler := api.NewHandler(repo)

	// Setup router.
	r := chi.NewRouter()

	// Global middleware.
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}))

	// Keyed management routes.
	r.Group(func(r chi.Router) {
		r.Use(middleware.APIKey(cfg.APIKey))
		apiHandler.RegisterRoutes(r)
	})

	// WebSocket endpoint.
	r.Get("/ws/chat", wsHandler.ServeHTTP)

	srv := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     r,
		ReadTimeout: 30 * time.Second,
		// No write timeout: chat connections are long-lived.
		WriteTimeout: 0,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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
