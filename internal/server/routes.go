package server

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"

	v1 "github.com/kaloyan-gavrilov/Freelancer-Client-Dashboard/internal/api/v1"
	"github.com/kaloyan-gavrilov/Freelancer-Client-Dashboard/internal/server/middleware"
)

func (s *Server) registerRoutes(ctx context.Context) {
	s.router.Route("/api/v1", func(r chi.Router) {
		// Unauthenticated auth routes (register, login, refresh, oauth).
		// Rate limited by IP since there is no user identity yet.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimitByIP(ctx, 5, 10))

			authConfig := huma.DefaultConfig("Freelancer Dashboard Auth API", "1.0.0")
			authConfig.Servers = []*huma.Server{
				{URL: "/api/v1"},
			}
			authAPI := humachi.New(r, authConfig)
			v1.RegisterAuthRoutes(authAPI, s.auth, buildOAuthProviders(s.cfg))
		})

		// Authenticated routes (everything else).
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(s.cfg.JWT.Secret))
			r.Use(middleware.RateLimit(ctx, 100, 200))

			apiConfig := huma.DefaultConfig("Freelancer Dashboard API", "1.0.0")
			apiConfig.Servers = []*huma.Server{
				{URL: "/api/v1"},
			}
			api := humachi.New(r, apiConfig)
			v1.RegisterProjectRoutes(api, s.projects)
			v1.RegisterBidRoutes(api, s.bids)
			v1.RegisterMilestoneRoutes(api, s.milestones)
			v1.RegisterTimeEntryRoutes(api, s.timeLog)
			v1.RegisterFreelancerRoutes(api, s.store)
		})
	})

	// WebSocket routes.
	s.router.Route("/ws", func(r chi.Router) {
		r.Use(middleware.Auth(s.cfg.JWT.Secret))
		r.Get("/projects/{projectID}/bids", s.wsHub.ServeProjectBids)
	})

	// Health check (unauthenticated).
	s.router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
}
