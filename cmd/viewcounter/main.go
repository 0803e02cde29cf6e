package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"viewcounter/internal/counter"
	"viewcounter/internal/infra"
)

func main() {
	var checkConfig bool
	flag.BoolVar(&checkConfig, "check-config", false, "validate configuration and exit without calling the API")
	flag.Parse()

	infra.LoadDotenv()

	cfg, err := infra.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger := infra.NewCLILogger(cfg.AppEnv).With().Str("cmd", "viewcounter").Str("repo", cfg.Repo).Logger()
	if checkConfig {
		logger.Info().Str("metrics_file", cfg.MetricsFile).Str("docs_root", cfg.DocsRoot).Msg("configuration ok")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner, cleanup, err := counter.NewFromConfig(ctx, cfg, &logger)
	if err != nil {
		logger.Error().Err(err).Msg("setup failed")
		os.Exit(1)
	}
	defer cleanup()

	result, err := runner.Run(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("run failed")
		cleanup()
		os.Exit(1)
	}
	fmt.Printf("Updated visitor count: %d\n", result.Summary.TotalViews)
}
