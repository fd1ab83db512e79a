package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"GameShop/pkg/kit"
)

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string

	// StaticDir serves cover art under /images when non-empty.
	StaticDir   string
	CORSOrigins []string

	// TrustProxy rewrites RemoteAddr from forwarded headers before logging
	// and rate limiting see it.
	TrustProxy bool
}

func NewHandler(s *Server, deps HTTPDeps) http.Handler {
	r := chi.NewRouter()

	setupMiddleware(r, deps)
	setupMetrics(r, s, deps)
	setupStatic(r, deps)

	r.Mount("/", s.Routes())
	return r
}

func setupMiddleware(r *chi.Mux, deps HTTPDeps) {
	r.Use(chimw.RequestID)
	if deps.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(kit.Recoverer)
	r.Use(kit.Logging(deps.Log))

	if len(deps.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: deps.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", chimw.RequestIDHeader},
			ExposedHeaders: []string{chimw.RequestIDHeader},
			MaxAge:         300,
		}))
	}
}

func setupMetrics(r *chi.Mux, s *Server, deps HTTPDeps) {
	if deps.Registry == nil {
		return
	}

	metrics := kit.NewMetrics(deps.Registry)
	r.Use(metrics.Middleware(deps.Service, kit.RoutePatternOrPath))

	s.listResults = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "catalog_list_results",
		Help:    "Listings returned per /list query",
		Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
	})
	deps.Registry.MustRegister(s.listResults)

	if !deps.MetricsEnabled {
		return
	}

	r.With(kit.MetricsAuth(deps.MetricsToken)).
		Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
}

func setupStatic(r *chi.Mux, deps HTTPDeps) {
	if deps.StaticDir == "" {
		return
	}
	fs := http.StripPrefix("/images/", http.FileServer(http.Dir(deps.StaticDir)))
	r.Handle("/images/*", fs)
}
