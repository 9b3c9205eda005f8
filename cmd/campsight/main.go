package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/time/rate"

	"github.com/campsight/campsight/internal/availability"
	"github.com/campsight/campsight/internal/config"
	"github.com/campsight/campsight/internal/directory"
	"github.com/campsight/campsight/internal/httpx"
	"github.com/campsight/campsight/internal/providers"
	"github.com/campsight/campsight/internal/web"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()

	level := slog.LevelInfo
	if cfg.Env == "local" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})))
	slog.Info("starting campsight", slog.String("env", cfg.Env))

	client := httpx.New(cfg.Upstream.Timeout)
	limiter := rate.NewLimiter(rate.Limit(cfg.Upstream.RequestsPerSecond), cfg.Upstream.Burst)
	provider := providers.NewRecreationGov(cfg.Upstream.BaseURL, client, limiter)

	dir := directory.Default()
	if len(cfg.Directory.Campgrounds) > 0 {
		entries := make([]directory.Entry, 0, len(cfg.Directory.Campgrounds))
		for _, cg := range cfg.Directory.Campgrounds {
			entries = append(entries, directory.Entry{ID: cg.ID, Name: cg.Name})
		}
		dir = directory.New(entries)
	}

	if cfg.Directory.RefreshSchedule != "" {
		refresher := directory.NewRefresher(dir, provider, slog.Default())
		if err := refresher.Start(ctx, cfg.Directory.RefreshSchedule); err != nil {
			slog.Error("directory refresh start failed", slog.Any("err", err))
			os.Exit(1)
		}
		defer refresher.Stop()
	}

	resolver := availability.NewResolver(dir, provider, slog.Default(), cfg.Upstream.MaxParallel)
	server := web.NewServer(resolver, dir, provider, slog.Default())

	if err := server.Run(ctx, cfg.HTTPServer); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("web server failed", slog.Any("err", err))
		os.Exit(1)
	}
	slog.Info("campsight stopped")
}
