package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/atwell-labs/syncscore/internal/adapters/grok"
	"github.com/atwell-labs/syncscore/internal/adapters/musicatlas"
	"github.com/atwell-labs/syncscore/internal/adapters/rest"
	"github.com/atwell-labs/syncscore/internal/adapters/spotify"
	"github.com/atwell-labs/syncscore/internal/config"
	"github.com/atwell-labs/syncscore/internal/core/services"
	"github.com/atwell-labs/syncscore/internal/metrics"
	"github.com/atwell-labs/syncscore/internal/worker"
)

func main() {
	// 1. Configuration
	// Crash early if required config is missing.
	cfg, err := config.Load("config.yaml", "config.local.yaml")
	if err != nil {
		log.Fatalf("FATAL: %v", err)
	}
	if cfg.MusicAtlas.APIKey == "" {
		log.Fatal("FATAL: MUSICATLAS_API_KEY is required")
	}
	if cfg.Spotify.ClientID == "" || cfg.Spotify.ClientSecret == "" {
		log.Fatal("FATAL: SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET are required")
	}

	retryDelay, _ := cfg.GetRetryDelay()
	pollInterval, _ := cfg.GetPollInterval()
	maxPollDuration, _ := cfg.GetMaxPollDuration()

	// 2. Initialize "Driven" Adapters (The Tools)
	atlasClient := musicatlas.NewClient(musicatlas.Config{
		BaseURL:    cfg.MusicAtlas.BaseURL,
		APIKey:     cfg.MusicAtlas.APIKey,
		RetryDelay: retryDelay,
		MaxRetries: cfg.MusicAtlas.MaxRetries,
	})

	spotifyClient := spotify.NewClient(spotify.Config{
		ClientID:     cfg.Spotify.ClientID,
		ClientSecret: cfg.Spotify.ClientSecret,
		BaseURL:      cfg.Spotify.BaseURL,
		TokenURL:     cfg.Spotify.TokenURL,
	})

	// Feedback is optional: without an API key, sessions keep their
	// built-in explanations.
	var pool *worker.Pool
	var feedback services.FeedbackRequester
	if cfg.Grok.APIKey != "" {
		grokClient := grok.NewClient(grok.Config{
			BaseURL: cfg.Grok.BaseURL,
			APIKey:  cfg.Grok.APIKey,
			Model:   cfg.Grok.Model,
		})
		pool = worker.NewPool(grokClient, nil, 100)
		feedback = pool
	} else {
		log.Println("WARN main: XAI_API_KEY not set, AI feedback disabled")
	}

	// 3. Initialize Core Logic (The Driver)
	svc := services.NewAnalyzer(spotifyClient, atlasClient, feedback,
		services.WithPollInterval(pollInterval),
		services.WithMaxPollWait(maxPollDuration),
	)

	if pool != nil {
		pool.SetSink(svc)
		pool.Start(2)
		defer pool.Stop()
	}

	// 4. Initialize "Driving" Adapter (The Interface)
	handler := rest.NewHandler(svc)

	// 5. Start the Server
	log.Println("------------------------------------------------")
	log.Printf("🎛️  SyncScore API is running on http://localhost:%d", cfg.Server.Port)
	log.Println("------------------------------------------------")

	readTimeout, _ := cfg.GetReadTimeout()
	writeTimeout, _ := cfg.GetWriteTimeout()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           metrics.Middleware(handler),
		ReadHeaderTimeout: readTimeout,
		WriteTimeout:      writeTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		if err != nil {
			log.Fatal(err)
		}
	case <-ctx.Done():
		log.Println("Shutting down server...")
		shutdownTimeout, _ := cfg.GetShutdownTimeout()
		if shutdownTimeout <= 0 {
			shutdownTimeout = 10 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}
}
