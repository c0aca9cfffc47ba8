package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
	slacklib "github.com/slack-go/slack"

	"github.com/kaloyan-gavrilov/Freelancer-Client-Dashboard/internal/api/ws"
	"github.com/kaloyan-gavrilov/Freelancer-Client-Dashboard/internal/auth"
	"github.com/kaloyan-gavrilov/Freelancer-Client-Dashboard/internal/config"
	"github.com/kaloyan-gavrilov/Freelancer-Client-Dashboard/internal/marketplace"
	"github.com/kaloyan-gavrilov/Freelancer-Client-Dashboard/internal/notify"
	"github.com/kaloyan-gavrilov/Freelancer-Client-Dashboard/internal/store/postgres"
	redisstore "github.com/kaloyan-gavrilov/Freelancer-Client-Dashboard/internal/store/redis"
)

// Server is the HTTP server that wires all application routes and middleware.
type Server struct {
	router     chi.Router
	httpServer *http.Server
	store      *postgres.Store
	auth       *auth.Service
	pubsub     *redisstore.PubSub
	wsHub      *ws.Hub
	cfg        *config.Config

	projects   *marketplace.ProjectService
	bids       *marketplace.BidService
	milestones *marketplace.MilestoneService
	timeLog    *marketplace.TimeEntryService
}

// New creates a Server with all routes wired.
func New(ctx context.Context, cfg *config.Config, store *postgres.Store, pubsub *redisstore.PubSub, authSvc *auth.Service) *Server {
	router := chi.NewRouter()

	// Global middleware stack.
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(chimw.Logger)
	router.Use(chimw.Recoverer)
	router.Use(cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler)

	hub := ws.NewHub(pubsub)
	notifier := buildNotifier(cfg)

	s := &Server{
		router: router,
		store:  store,
		auth:   authSvc,
		pubsub: pubsub,
		wsHub:  hub,
		cfg:    cfg,
		httpServer: &http.Server{
			Addr:         cfg.Server.Addr,
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
		projects:   marketplace.NewProjectService(store.Projects()),
		bids:       marketplace.NewBidService(store.Bids(), store.Projects(), pubsub, notifier),
		milestones: marketplace.NewMilestoneService(store.Milestones(), store.Projects()),
		timeLog:    marketplace.NewTimeEntryService(store.TimeEntries(), store.Projects()),
	}

	// Mount API routes on /api/v1 with two sub-groups:
	// 1. Unauthenticated group for auth endpoints and public browsing.
	// 2. Authenticated group for everything acting on behalf of a user.
	s.registerRoutes(ctx)

	return s
}

// buildNotifier wires bid notifications to Slack when a bot token is
// configured, falling back to the log sink for local development.
func buildNotifier(cfg *config.Config) *notify.Notifier {
	if cfg.Slack.BotToken == "" {
		return notify.New(notify.LogSink{})
	}

	client := slacklib.New(cfg.Slack.BotToken)
	log.Info().Str("channel", cfg.Slack.Channel).Msg("Slack notifications enabled")
	return notify.New(notify.NewSlackSink(client, cfg.Slack.Channel))
}

// buildOAuthProviders registers the providers that have credentials.
func buildOAuthProviders(cfg *config.Config) map[string]*auth.OAuthProvider {
	providers := make(map[string]*auth.OAuthProvider)
	if cfg.OAuth.GoogleClientID != "" {
		providers["google"] = auth.NewGoogleProvider(cfg.OAuth.GoogleClientID, cfg.OAuth.GoogleClientSecret, cfg.OAuth.RedirectURL)
	}
	if cfg.OAuth.GitHubClientID != "" {
		providers["github"] = auth.NewGitHubProvider(cfg.OAuth.GitHubClientID, cfg.OAuth.GitHubClientSecret, cfg.OAuth.RedirectURL)
	}
	return providers
}

// Start begins listening for HTTP requests.
func (s *Server) Start(_ context.Context) error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.Start: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}
