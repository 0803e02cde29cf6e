package domain

import "time"

// DateLayout is the calendar-date format used as the DailyRecord key. It is
// zero padded, so lexical order equals chronological order.
const DateLayout = "2006-01-02"

// DailyRecord stores the observed traffic for a single day.
type DailyRecord struct {
	Date    string `json:"date"`
	Count   int    `json:"count"`
	Uniques *int   `json:"uniques,omitempty"`
}

// HasUniques reports whether the source supplied a distinct-visitor count.
func (r DailyRecord) HasUniques() bool {
	return r.Uniques != nil
}

// MetricsLog is the persisted, date-ordered history of daily records.
type MetricsLog []DailyRecord

// FetchedWindow is the bounded set of recent days returned by one fetch.
type FetchedWindow []DailyRecord

// Summary aggregates a MetricsLog for reporting.
type Summary struct {
	TotalViews   int       `json:"total_views"`
	TotalUniques int       `json:"total_uniques"`
	Days         int       `json:"days"`
	FirstDate    string    `json:"first_date,omitempty"`
	LastDate     string    `json:"last_date,omitempty"`
	LastUpdated  time.Time `json:"last_updated"`
}

// Uniques returns a pointer suitable for DailyRecord.Uniques.
func Uniques(n int) *int {
	return &n
}
