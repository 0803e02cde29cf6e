package handlers

import (
	"net/http"

	"viewcounter/internal/badge"
	"viewcounter/internal/domain"
	"viewcounter/internal/metrics"
	"viewcounter/internal/middleware"
)

type dailyResponse struct {
	Records domain.MetricsLog `json:"records"`
	Total   int               `json:"total_views"`
}

// ViewsSummary returns totals over the whole stored history.
func (a *App) ViewsSummary(w http.ResponseWriter, r *http.Request) {
	log, ok := a.load(w, r)
	if !ok {
		return
	}
	a.json(w, http.StatusOK, metrics.Summarize(log, a.Now()))
}

// ViewsDaily returns stored records, optionally bounded by from/to dates.
func (a *App) ViewsDaily(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var from, to string
	var err error
	if v := q.Get("from"); v != "" {
		if from, err = metrics.ParseDate(v); err != nil {
			a.error(w, http.StatusBadRequest, "invalid_date", "from must be YYYY-MM-DD")
			return
		}
	}
	if v := q.Get("to"); v != "" {
		if to, err = metrics.ParseDate(v); err != nil {
			a.error(w, http.StatusBadRequest, "invalid_date", "to must be YYYY-MM-DD")
			return
		}
	}
	if from != "" && to != "" && from > to {
		a.error(w, http.StatusBadRequest, "invalid_range", "from must not be after to")
		return
	}

	log, ok := a.load(w, r)
	if !ok {
		return
	}
	records := metrics.Between(log, from, to)
	a.json(w, http.StatusOK, dailyResponse{Records: records, Total: metrics.TotalViews(records)})
}

// Badge renders the visitor SVG for the current total.
func (a *App) Badge(w http.ResponseWriter, r *http.Request) {
	log, ok := a.load(w, r)
	if !ok {
		return
	}
	svg := badge.RenderSVG(metrics.TotalViews(log), middleware.LocaleFromContext(r.Context()))
	w.Header().Set("Content-Type", "image/svg+xml; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache, max-age=0")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(svg))
}
