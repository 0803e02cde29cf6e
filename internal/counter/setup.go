package counter

import (
	"context"
	"net/http"

	"viewcounter/internal/adapter/repo"
	"viewcounter/internal/badge"
	"viewcounter/internal/infra"
	"viewcounter/internal/providers/github"
	"viewcounter/internal/storage"
)

// NewFromConfig wires a Runner from cfg. The returned cleanup releases the
// database pool when the Postgres mirror is enabled.
func NewFromConfig(ctx context.Context, cfg *infra.Config, logger *infra.Logger) (*Runner, func(), error) {
	cleanup := func() {}
	if logger == nil {
		logger = infra.DiscardLogger()
	}

	source, err := github.NewClient(github.Options{
		Token:      cfg.TrafficToken,
		Repo:       cfg.Repo,
		BaseURL:    cfg.GitHubAPIURL,
		HTTPClient: &http.Client{Timeout: cfg.HTTPTimeout},
		Logger:     logger,
	})
	if err != nil {
		return nil, cleanup, err
	}
	store, err := storage.NewFileStore(cfg.MetricsFile, logger)
	if err != nil {
		return nil, cleanup, err
	}

	opts := Options{
		Repo:      cfg.Repo,
		Source:    source,
		Store:     store,
		Publisher: badge.NewPublisher(logger),
		DocsRoot:  cfg.DocsRoot,
		SVGPath:   cfg.BadgeSVGFile,
		Locale:    cfg.BadgeLocale,
		Logger:    logger,
	}

	if cfg.DatabaseURL != "" {
		pool, err := infra.NewDBPool(ctx, cfg)
		if err != nil {
			logger.Warn().Err(err).Msg("counter: postgres mirror disabled")
		} else {
			mirror := repo.NewTrafficRepository(infra.NewSQLRunner(pool, *logger))
			if err := mirror.EnsureSchema(ctx); err != nil {
				logger.Warn().Err(err).Msg("counter: postgres mirror disabled")
				pool.Close()
			} else {
				opts.Mirror = mirror
				cleanup = pool.Close
			}
		}
	}

	runner, err := NewRunner(opts)
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}
	return runner, cleanup, nil
}
