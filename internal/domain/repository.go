package domain

import "context"

// TrafficSource returns the most recent window of daily view records.
type TrafficSource interface {
	FetchViews(ctx context.Context) (FetchedWindow, error)
}

// MetricsMirror receives the merged log after the canonical store is saved.
type MetricsMirror interface {
	UpsertDaily(ctx context.Context, repo string, log MetricsLog) error
}
