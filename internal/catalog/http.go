package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"GameShop/pkg/kit"
)

type Server struct {
	Store Store
	Log   *zap.Logger

	// ListLimiter throttles /list per client IP when set.
	ListLimiter *kit.IPRateLimiter

	listResults prometheus.Histogram
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", s.ready)

	r.With(s.ListLimiter.Middleware).Get("/list", s.list)

	return r
}

func (s *Server) ready(w http.ResponseWriter, r *http.Request) {
	if err := s.Store.Ping(r.Context()); err != nil {
		s.logger().Warn("readyz failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")

	listings, err := s.Store.List(r.Context(), search)
	if err != nil {
		s.logger().Error("list listings failed", zap.Error(err), zap.String("search", search))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	if listings == nil {
		listings = []Listing{}
	}

	if s.listResults != nil {
		s.listResults.Observe(float64(len(listings)))
	}
	kit.WriteJSON(w, http.StatusOK, listings)
}

func (s *Server) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}
