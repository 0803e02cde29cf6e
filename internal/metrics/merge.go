// Package metrics folds freshly fetched traffic windows into the persisted
// daily history and derives totals from it.
package metrics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"viewcounter/internal/domain"
)

// Merge combines the stored log with a fetched window. Records are keyed by
// date and fetched records replace stored ones sharing the same date. The
// result is a new slice ordered ascending by date; neither input is modified.
//
// A record without a usable date or with a negative count is a caller
// contract violation and fails the whole merge.
func Merge(existing domain.MetricsLog, fetched domain.FetchedWindow) (domain.MetricsLog, error) {
	byDate := make(map[string]domain.DailyRecord, len(existing)+len(fetched))
	for i, rec := range existing {
		if err := validate(rec); err != nil {
			return nil, fmt.Errorf("metrics: existing[%d]: %w", i, err)
		}
		byDate[rec.Date] = rec
	}
	for i, rec := range fetched {
		if err := validate(rec); err != nil {
			return nil, fmt.Errorf("metrics: fetched[%d]: %w", i, err)
		}
		byDate[rec.Date] = rec
	}

	merged := make(domain.MetricsLog, 0, len(byDate))
	for _, rec := range byDate {
		if rec.Uniques != nil {
			rec.Uniques = domain.Uniques(*rec.Uniques)
		}
		merged = append(merged, rec)
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Date < merged[j].Date
	})
	return merged, nil
}

// TotalViews sums the view count across every record.
func TotalViews(log domain.MetricsLog) int {
	total := 0
	for _, rec := range log {
		total += rec.Count
	}
	return total
}

// TotalUniques sums the distinct-visitor counts of records that carry one.
// Per-day uniques overlap across days, so this is an upper bound.
func TotalUniques(log domain.MetricsLog) int {
	total := 0
	for _, rec := range log {
		if rec.Uniques != nil {
			total += *rec.Uniques
		}
	}
	return total
}

// Summarize reports totals and the covered date range of an ordered log.
func Summarize(log domain.MetricsLog, now time.Time) domain.Summary {
	summary := domain.Summary{
		TotalViews:   TotalViews(log),
		TotalUniques: TotalUniques(log),
		Days:         len(log),
		LastUpdated:  now.UTC(),
	}
	if len(log) > 0 {
		summary.FirstDate = log[0].Date
		summary.LastDate = log[len(log)-1].Date
	}
	return summary
}

// Between returns the records whose date falls within [from, to]. An empty
// bound is open.
func Between(log domain.MetricsLog, from, to string) domain.MetricsLog {
	out := make(domain.MetricsLog, 0, len(log))
	for _, rec := range log {
		if from != "" && rec.Date < from {
			continue
		}
		if to != "" && rec.Date > to {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// ParseDate validates a YYYY-MM-DD string and returns it normalized.
func ParseDate(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", domain.ErrMissingDate
	}
	t, err := time.Parse(domain.DateLayout, value)
	if err != nil {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidDate, value)
	}
	return t.Format(domain.DateLayout), nil
}

func validate(rec domain.DailyRecord) error {
	if strings.TrimSpace(rec.Date) == "" {
		return domain.ErrMissingDate
	}
	if _, err := time.Parse(domain.DateLayout, rec.Date); err != nil {
		return fmt.Errorf("%w: %q", domain.ErrInvalidDate, rec.Date)
	}
	if rec.Count < 0 {
		return fmt.Errorf("%w: %s", domain.ErrNegativeCount, rec.Date)
	}
	if rec.Uniques != nil && *rec.Uniques < 0 {
		return fmt.Errorf("%w: %s uniques", domain.ErrNegativeCount, rec.Date)
	}
	return nil
}
