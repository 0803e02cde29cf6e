package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"viewcounter/internal/domain"
	"viewcounter/internal/infra"
	"viewcounter/internal/storage"
)

// LogReader loads the persisted MetricsLog.
type LogReader interface {
	Load(ctx context.Context) (domain.MetricsLog, storage.LoadStatus, error)
}

// App holds the dependencies shared by the read API handlers.
type App struct {
	Store  LogReader
	Logger *infra.Logger
	Now    func() time.Time
}

func NewApp(store LogReader, logger *infra.Logger) *App {
	if logger == nil {
		logger = infra.DiscardLogger()
	}
	return &App{Store: store, Logger: logger, Now: time.Now}
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, kind, message string) {
	a.json(w, code, errorBody{Error: kind, Message: message})
}

func (a *App) load(w http.ResponseWriter, r *http.Request) (domain.MetricsLog, bool) {
	log, _, err := a.Store.Load(r.Context())
	if err != nil {
		a.Logger.Error().Err(err).Msg("api: load metrics failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load metrics")
		return nil, false
	}
	return log, true
}
