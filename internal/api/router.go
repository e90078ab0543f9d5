package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/maxaizer/job-market-api/internal/config"
	"github.com/maxaizer/job-market-api/internal/metrics"
	"net/http"
	"slices"
)

type Dependencies struct {
	Config   config.ServerConfig
	DB       pinger
	Market   MarketReports
	Overview OverviewReports
	Executor *ReportExecutor
}

func NewRouter(deps Dependencies) http.Handler {
	market := MarketCatalog(deps.Market)
	overview := OverviewCatalog(deps.Overview)
	h := newHandlers(deps.DB, market, overview, deps.Config.MetricsEnabled)

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger)
	r.Use(Recoverer(deps.Config.IsProduction()))
	r.Use(SecurityHeaders)
	r.Use(CORS(deps.Config))

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	r.Get("/", h.Root)
	r.Get("/health", h.Health)
	if deps.Config.MetricsEnabled {
		r.Method(http.MethodGet, "/metrics", metrics.Handler())
	}

	r.Group(func(r chi.Router) {
		r.Use(RateLimit(deps.Config))

		for _, report := range append(slices.Clip(market), overview...) {
			r.Get(report.Path, deps.Executor.Handler(report))
		}
	})

	return r
}
