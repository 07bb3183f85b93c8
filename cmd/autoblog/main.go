// Package main is the entry point for the autoblog API server.
// It loads configuration, connects to services, wires the generation
// pipeline, and starts the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"autoblog/internal/ai"
	"autoblog/internal/article"
	"autoblog/internal/blogger"
	"autoblog/internal/cache"
	"autoblog/internal/config"
	"autoblog/internal/database"
	"autoblog/internal/handlers"
	"autoblog/internal/linkpreview"
	"autoblog/internal/middleware"
	"autoblog/internal/prompt"
	"autoblog/internal/router"
	"autoblog/internal/session"
	"autoblog/internal/store"
)

func main() {
	var logLevel slog.LevelVar
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: &logLevel,
	}))
	slog.SetDefault(logger)

	// Configuration errors stop the process before any request is served.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if cfg.IsDev() {
		logLevel.Set(slog.LevelDebug)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"ai_provider", cfg.AIProvider,
	)

	ctx := context.Background()

	// Connect to PostgreSQL (publication log).
	db, err := database.Connect(ctx, cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Connect to Valkey (workspaces, generation locks, link previews).
	valkeyClient, err := cache.ConnectValkey(ctx, cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword, cfg.ValkeyDB)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	sessionStore := session.NewStore(valkeyClient, cfg.SecureCookies())
	previewCache := cache.NewPreviewCache(valkeyClient, cache.DefaultPreviewTTL)
	publicationStore := store.NewPublicationStore(db)

	// Text providers. The active one must have a key; the rest are optional.
	aiRegistry, err := ai.NewRegistry(cfg.AIProvider, cfg.ProviderConfigs())
	if err != nil {
		slog.Error("failed to initialize ai providers", "error", err)
		os.Exit(1)
	}
	slog.Info("ai providers initialized",
		"active", aiRegistry.ActiveName(),
		"available", aiRegistry.Available(),
	)

	// Images always come from Gemini, whatever the text provider is.
	gemini, err := ai.NewGemini(cfg.ProviderConfigs()["gemini"])
	if err != nil {
		slog.Error("failed to initialize image provider", "error", err)
		os.Exit(1)
	}
	images := ai.NewImageService(gemini, cfg.ImageStyle, cfg.ImageRatePerMinute)

	pipeline, err := article.NewPipeline(prompt.MustNew(), aiRegistry, images)
	if err != nil {
		slog.Error("failed to build generation pipeline", "error", err)
		os.Exit(1)
	}

	api := handlers.NewAPI(handlers.Deps{
		Workspaces:   sessionStore,
		Articles:     pipeline,
		Publisher:    blogger.New(cfg.BloggerBaseURL),
		Previews:     linkpreview.NewFetcher(previewCache),
		PreviewCache: previewCache,
		Metadata:     ai.NewMetadataGenerator(aiRegistry),
		Publications: publicationStore,
		Providers:    aiRegistry,
	})

	generateLimiter := middleware.NewRateLimiter(cfg.GenerateRatePerMinute, time.Minute)
	defer generateLimiter.Stop()

	r := router.New(api, router.Options{
		APITokenHash:    cfg.APITokenHash,
		GenerateLimiter: generateLimiter,
		TrustProxy:      cfg.TrustProxy,
	})

	// WriteTimeout must cover a full generation: the text call plus every
	// image, paced by the image rate limit.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// In-flight generations may take a while; give them time to finish.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
