package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"viewcounter/internal/counter"
	"viewcounter/internal/infra"
)

type runWorker struct {
	ctx      context.Context
	runner   *counter.Runner
	logger   infra.Logger
	interval time.Duration
}

func main() {
	infra.LoadDotenv()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv).With().Str("cmd", "worker").Str("repo", cfg.Repo).Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner, cleanup, err := counter.NewFromConfig(ctx, cfg, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: setup failed")
	}
	defer cleanup()

	worker := &runWorker{
		ctx:      ctx,
		runner:   runner,
		logger:   logger,
		interval: cfg.RunInterval,
	}

	if err := worker.Run(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("worker: stopped with error")
		return
	}
	logger.Info().Msg("worker: stopped")
}

// Run executes a pass immediately and then once per interval. A failed pass
// is logged and the next tick tries again.
func (w *runWorker) Run() error {
	w.logger.Info().Dur("interval", w.interval).Msg("worker: started")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		w.runOnce()
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		case <-ticker.C:
		}
	}
}

func (w *runWorker) runOnce() {
	start := time.Now()
	result, err := w.runner.Run(w.ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		w.logger.Error().Err(err).Msg("worker: run failed")
		return
	}
	w.logger.Info().
		Int("total_views", result.Summary.TotalViews).
		Dur("took", time.Since(start)).
		Msg("worker: run finished")
}
