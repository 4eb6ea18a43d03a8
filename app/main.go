package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lysyi3m/rss-top-news/app/api"
	"github.com/lysyi3m/rss-top-news/app/cfg"
	"github.com/lysyi3m/rss-top-news/app/feed"
	"github.com/lysyi3m/rss-top-news/app/ranking"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown
		return
	}

	setupLogger(appCfg.Debug)

	if err := cfg.ApplyTimezone(appCfg.Timezone); err != nil {
		slog.Warn("Invalid timezone, using system default", "timezone", appCfg.Timezone, "error", err)
	}

	slog.Info("Starting RSS Top News server", "version", appCfg.Version, "timezone", time.Local.String())

	defaults := feed.DefaultSources()
	if appCfg.SourcesFile != "" {
		defaults, err = feed.LoadSourcesFile(appCfg.SourcesFile)
		if err != nil {
			slog.Error("Failed to load sources file", "path", appCfg.SourcesFile, "error", err)
			os.Exit(1)
		}
	}
	slog.Info("Default feed sources configured", "count", len(defaults))

	httpClient := &http.Client{
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        100,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
	}

	fetcher := feed.NewFetcher(httpClient, appCfg.UserAgent, appCfg.GetFetchTimeout(), appCfg.MaxFeedBytes)
	aggregator := feed.NewAggregator(fetcher, feed.NewParser(), appCfg.MaxConcurrency)
	pipeline := ranking.NewPipeline(aggregator, time.Local, ranking.DefaultLimit, time.Now)

	handler := api.NewHandler(feed.NewResolver(defaults), pipeline)
	server := api.NewServer(handler, appCfg.Debug)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "address", fmt.Sprintf("http://localhost:%s/top-news", appCfg.Port))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("RSS Top News server shutdown complete")
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))
}
