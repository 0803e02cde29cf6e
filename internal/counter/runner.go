// Package counter runs one collection pass: fetch the traffic window, merge
// it into the stored history, persist it and refresh the published badges.
package counter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"viewcounter/internal/badge"
	"viewcounter/internal/domain"
	"viewcounter/internal/infra"
	"viewcounter/internal/metrics"
	"viewcounter/internal/storage"
)

// Store is the persisted MetricsLog.
type Store interface {
	Load(ctx context.Context) (domain.MetricsLog, storage.LoadStatus, error)
	Save(ctx context.Context, log domain.MetricsLog) error
}

// Options wires a Runner. Mirror, DocsRoot and SVGPath are optional.
type Options struct {
	Repo      string
	Source    domain.TrafficSource
	Store     Store
	Mirror    domain.MetricsMirror
	Publisher *badge.Publisher
	DocsRoot  string
	SVGPath   string
	Locale    string
	Logger    *infra.Logger
	Now       func() time.Time
}

// Result summarizes a successful run.
type Result struct {
	Summary    domain.Summary
	Fetched    int
	LoadStatus storage.LoadStatus
	Badges     badge.Report
	Mirrored   bool
}

// Runner executes collection passes.
type Runner struct {
	opts   Options
	logger *infra.Logger
	now    func() time.Time
}

// NewRunner validates opts and returns a Runner.
func NewRunner(opts Options) (*Runner, error) {
	if opts.Source == nil {
		return nil, errors.New("counter: traffic source is required")
	}
	if opts.Store == nil {
		return nil, errors.New("counter: store is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = infra.DiscardLogger()
	}
	if opts.Publisher == nil {
		opts.Publisher = badge.NewPublisher(logger)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Runner{opts: opts, logger: logger, now: now}, nil
}

// Run performs one pass. Fetch and merge failures abort before anything is
// written. A failing mirror is logged and does not fail the run because the
// file store is canonical.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	var result Result

	fetched, err := r.opts.Source.FetchViews(ctx)
	if err != nil {
		return result, fmt.Errorf("counter: fetch traffic: %w", err)
	}
	result.Fetched = len(fetched)

	existing, status, err := r.opts.Store.Load(ctx)
	if err != nil {
		return result, fmt.Errorf("counter: load metrics: %w", err)
	}
	result.LoadStatus = status

	merged, err := metrics.Merge(existing, fetched)
	if err != nil {
		return result, fmt.Errorf("counter: merge metrics: %w", err)
	}

	if err := r.opts.Store.Save(ctx, merged); err != nil {
		return result, fmt.Errorf("counter: save metrics: %w", err)
	}

	now := r.now()
	result.Summary = metrics.Summarize(merged, now)
	total := result.Summary.TotalViews

	if r.opts.Mirror != nil {
		if err := r.opts.Mirror.UpsertDaily(ctx, r.opts.Repo, merged); err != nil {
			r.logger.Warn().Err(err).Msg("counter: postgres mirror failed")
		} else {
			result.Mirrored = true
		}
	}

	if r.opts.DocsRoot != "" {
		report, err := r.opts.Publisher.Publish(ctx, r.opts.DocsRoot, total, now)
		result.Badges = report
		if err != nil {
			return result, fmt.Errorf("counter: publish badges: %w", err)
		}
		if len(report.Updated)+len(report.Unchanged) == 0 {
			r.logger.Warn().Str("docs_root", r.opts.DocsRoot).Msg("counter: no document carries the badge markers")
		}
	}

	if r.opts.SVGPath != "" {
		if err := badge.WriteSVG(r.opts.SVGPath, badge.RenderSVG(total, r.opts.Locale)); err != nil {
			return result, fmt.Errorf("counter: %w", err)
		}
	}

	r.logger.Info().
		Str("repo", r.opts.Repo).
		Str("store", string(status)).
		Int("fetched_days", result.Fetched).
		Int("days", result.Summary.Days).
		Int("total_views", total).
		Int("badges_updated", len(result.Badges.Updated)).
		Int("badges_skipped", len(result.Badges.Skipped)).
		Msg("counter: updated visitor count")
	return result, nil
}
