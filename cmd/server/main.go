package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kylemclaren/speed-reader/internal/api"
	"github.com/kylemclaren/speed-reader/internal/config"
	"github.com/kylemclaren/speed-reader/internal/fetch"
	"github.com/kylemclaren/speed-reader/internal/reducer"
	"github.com/kylemclaren/speed-reader/internal/session"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	red := reducer.New(cfg.Extractor, cfg.MinContentChars, log.With("component", "reducer"))
	fetcher := fetch.New(fetch.Options{
		Timeout:         cfg.FetchTimeout,
		UserAgent:       cfg.FetchUserAgent,
		MaxBytes:        cfg.FetchMaxBytes,
		Retries:         cfg.FetchRetries,
		MinContentChars: cfg.MinContentChars,
		Reducer:         red,
		Stats:           fetch.NewStats(cfg.StatsWindow),
		Log:             log.With("component", "fetch"),
	})

	sessions := session.NewManager(session.Options{
		TTL:         cfg.SessionTTL,
		MaxSessions: cfg.MaxSessions,
		Log:         log.With("component", "session"),
	})
	sessions.Start(ctx)

	srv := api.NewServer(sessions, fetcher, red, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.FetchTimeout*time.Duration(cfg.FetchRetries+1) + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		sessions.Stop()
	}()

	log.Info("starting speed-reader", "port", cfg.Port, "extractor", cfg.Extractor)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	<-stopped
	log.Info("stopped")
}
