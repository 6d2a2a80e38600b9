// Package main is the entry point for the newsfront server.
// It loads configuration, connects to the cache, wires the content services,
// sets up routing, and starts the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"newsfront/internal/cache"
	"newsfront/internal/config"
	"newsfront/internal/content"
	"newsfront/internal/handlers"
	"newsfront/internal/middleware"
	"newsfront/internal/router"
	"newsfront/internal/seo"
	"newsfront/internal/taxonomy"
	"newsfront/internal/upstream"
	"newsfront/internal/video"
)

func main() {
	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger: JSON in production, text in development.
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	var logHandler slog.Handler = slog.NewJSONHandler(os.Stdout, opts)
	if cfg.IsDev() {
		opts.Level = slog.LevelDebug
		logHandler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(logHandler))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"content_api", cfg.ContentAPIURL,
		"cache", cfg.CacheBackend,
	)

	// Response cache shared by every upstream source.
	var store cache.Store
	switch cfg.CacheBackend {
	case config.CacheValkey:
		valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		defer valkeyClient.Close()
		store = cache.NewValkeyStore(valkeyClient)
	default:
		store = cache.NewMemoryStore()
	}

	client := upstream.New(upstream.Config{
		BaseURL:  cfg.ContentAPIURL,
		Username: cfg.ContentAPIUsername,
		Password: cfg.ContentAPIPassword,
		TTL:      cfg.ContentRevalidate,
	}, store)

	// The video feed is optional; without a channel the videos section stays empty.
	var videos *video.Feed
	if cfg.VideosEnabled() {
		videos = video.New(video.Config{
			APIKey:    cfg.VideoAPIKey,
			ChannelID: cfg.VideoChannelID,
			TTL:       cfg.VideoRevalidate,
		}, store)
	} else {
		slog.Warn("video channel not configured, videos disabled")
	}

	svc := content.NewService(client, taxonomy.NewResolver(client), videos, content.Options{
		Policies: content.HideFeaturedImageIn(cfg.HideFeaturedImageCategories),
		Home: content.HomeLayout{
			FeaturedCategory: cfg.HomeFeaturedCategory,
			Sections:         cfg.HomeSections,
		},
	})
	synth := seo.New(seo.Site{
		Name:        cfg.SiteName,
		URL:         cfg.SiteURL,
		Description: cfg.SiteDescription,
		Image:       cfg.SiteImage,
	})

	tags := []string{client.Policy().Tag}
	if videos != nil {
		tags = append(tags, videos.Tag())
	}
	if cfg.RevalidateSecretHash == "" {
		slog.Warn("REVALIDATE_SECRET_HASH not set, revalidation webhook disabled")
	}
	revalidate := handlers.NewRevalidate(cfg.RevalidateSecretHash, store, tags...)

	// 10 webhook calls per minute per IP.
	limiter := middleware.NewRateLimiter(10, time.Minute)
	defer limiter.Stop()

	r := router.New(handlers.NewPublic(svc, synth), revalidate, limiter)

	// Create the HTTP server with sensible timeouts. WriteTimeout covers the
	// homepage batch, which waits on several upstream calls.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
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

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
