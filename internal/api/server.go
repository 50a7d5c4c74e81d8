// internal/api/server.go
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"knowyourcompany/internal/common/logger"
	"knowyourcompany/internal/models"
)

// InsightService is the slice of the orchestrator the HTTP layer needs.
type InsightService interface {
	GetInsight(ctx context.Context, req models.CheckRequest) (*models.Insight, error)
	GetByKey(ctx context.Context, canonicalKey string) (*models.Insight, error)
	RefreshInsight(ctx context.Context, canonicalKey string) (*models.Insight, error)
}

// Server exposes the insight pipeline over HTTP.
type Server struct {
	service InsightService
	logger  logger.Logger
	router  chi.Router
}

func NewServer(service InsightService, log logger.Logger) *Server {
	s := &Server{
		service: service,
		logger:  log.WithFields(map[string]interface{}{"component": "api"}),
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Post("/check-company", s.handleCheckCompany)
		r.Get("/company/{canonicalKey}", s.handleGetCompany)
		r.Post("/company/{canonicalKey}/refresh", s.handleRefreshCompany)
		r.Get("/health", s.handleHealth)
	})
	r.Handle("/metrics", promhttp.Handler())

	s.router = r
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// requestID tags every request with a correlation id, echoed in the
// X-Request-Id response header.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "know-your-company",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}
