package repo

import (
	"context"
	"fmt"

	"viewcounter/internal/domain"
	"viewcounter/internal/infra"
	"viewcounter/internal/sqlinline"
)

// TrafficRepositoryPG mirrors merged daily records into PostgreSQL. Rows are
// keyed by (repo, day) and overwritten, matching the file store's
// last-write-wins policy.
type TrafficRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewTrafficRepository constructs the repository.
func NewTrafficRepository(sql infra.SQLExecutor) *TrafficRepositoryPG {
	return &TrafficRepositoryPG{sql: sql}
}

// EnsureSchema creates the traffic_daily table when it does not exist.
func (r *TrafficRepositoryPG) EnsureSchema(ctx context.Context) error {
	if _, err := r.sql.Exec(ctx, sqlinline.QEnsureTrafficDaily); err != nil {
		return fmt.Errorf("repo: ensure traffic_daily: %w", err)
	}
	return nil
}

// UpsertDaily writes every record of log for repo.
func (r *TrafficRepositoryPG) UpsertDaily(ctx context.Context, repo string, log domain.MetricsLog) error {
	for _, rec := range log {
		if _, err := r.sql.Exec(ctx, sqlinline.QUpsertTrafficDaily, repo, rec.Date, rec.Count, rec.Uniques); err != nil {
			return fmt.Errorf("repo: upsert %s: %w", rec.Date, err)
		}
	}
	return nil
}

// TotalViews returns the mirrored all-time view count for repo.
func (r *TrafficRepositoryPG) TotalViews(ctx context.Context, repo string) (int64, error) {
	var total int64
	if err := r.sql.QueryRow(ctx, sqlinline.QSelectTrafficTotal, repo).Scan(&total); err != nil {
		if infra.IsNoRows(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("repo: total views: %w", err)
	}
	return total, nil
}

var _ domain.MetricsMirror = (*TrafficRepositoryPG)(nil)
