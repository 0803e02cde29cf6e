package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"viewcounter/internal/http/handlers"
	"viewcounter/internal/infra"
	"viewcounter/internal/middleware"
)

// NewRouter builds the read API.
func NewRouter(app *handlers.App, cfg *infra.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(*app.Logger),
		middleware.CORS(cfg.CORSOrigins),
	)

	r.Get("/v1/healthz", app.Health)
	r.Get("/v1/openapi.json", app.OpenAPIJSON)
	r.Get("/v1/docs", app.OpenAPIDocs)

	r.Route("/v1/views", func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitPerMin, time.Minute))
		r.Get("/", app.ViewsSummary)
		r.Get("/daily", app.ViewsDaily)
		r.With(middleware.Locale(cfg.BadgeLocale)).Get("/badge.svg", app.Badge)
	})

	return r
}
