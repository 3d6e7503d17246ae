package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/skill-constellation/internal/config"
	"github.com/Garsondee/skill-constellation/internal/game"
	"github.com/Garsondee/skill-constellation/internal/progress"
	"github.com/Garsondee/skill-constellation/pkg/logger"
	"github.com/Garsondee/skill-constellation/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	log := logger.Named("main")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.NewManager()
	if cfg.MetricsAddr != "" {
		go serveMetrics(ctx, cfg.MetricsAddr, m, log)
	}

	opts := []game.Option{
		game.WithLogger(logger.Named("game")),
		game.WithMetrics(m),
	}
	if !cfg.Static() {
		session := progress.NewSession(cfg.APIBaseURL, cfg.UserID)
		poller := progress.NewPoller(
			progress.NewClient(session, cfg.RequestTimeout),
			cfg.RefreshInterval,
			progress.WithDemoFallback(cfg.DemoFallback),
			progress.WithLogger(logger.Named("progress")),
			progress.WithMetrics(m),
		)
		go func() { _ = poller.Run(ctx) }()
		opts = append(opts, game.WithProgressFeed(poller.Updates()), game.WithRefresh(poller.Trigger))
		log.Info(ctx, "polling progress",
			logger.String("api", session.BaseURL),
			logger.String("user", session.UserID),
			logger.String("session", session.ID.String()))
	}

	ebiten.SetWindowTitle("Skill Constellation")
	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(game.New(cfg, opts...)); err != nil {
		log.Error(ctx, "game exited", logger.Error(err))
		os.Exit(1)
	}
}

// serveMetrics exposes /metrics until ctx ends.
func serveMetrics(ctx context.Context, addr string, m *metrics.Manager, log logger.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info(ctx, "metrics listening", logger.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error(ctx, "metrics server failed", logger.Error(err))
	}
}
