// Package http exposes the payoff engine over a JSON API.
package http

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"debt-planner/repository"
	"debt-planner/service"
)

// Server wires the services into a chi router.
type Server struct {
	sims    *service.SimulationService
	budgets *service.BudgetRecommendationService
	repo    repository.PlanRepository
	limiter *RateLimiter
}

func NewServer(
	sims *service.SimulationService,
	budgets *service.BudgetRecommendationService,
	repo repository.PlanRepository,
	limiter *RateLimiter,
) *Server {
	return &Server{sims: sims, budgets: budgets, repo: repo, limiter: limiter}
}

// Handler returns the router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(metricsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		if s.limiter != nil {
			r.Use(RateLimitMiddleware(s.limiter))
		}
		r.Post("/simulate", s.handleSimulate)
		r.Post("/simulate/compare", s.handleCompare)
		r.Post("/budget/recommend", s.handleBudgetRecommend)
		r.Get("/tools", s.handleListTools)
		r.Post("/tools/call", s.handleToolCall)
		r.Get("/plans/{id}", s.handleGetPlan)
		r.Get("/plans", s.handleListPlans)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("warning: encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
