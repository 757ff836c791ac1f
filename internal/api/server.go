// Package api provides the HTTP API server and handlers for the Daylog application.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/daylogapp/daylog-server/internal/auth"
	"github.com/daylogapp/daylog-server/internal/http/response"
	"github.com/daylogapp/daylog-server/internal/store"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store        store.Store
	services     *Services
	tokenService *auth.TokenService
	router       *chi.Mux
	api          huma.API
	logger       *slog.Logger

	// authRateLimiter throttles login attempts per client IP.
	authRateLimiter *RateLimiter
	// openRateLimiter throttles the token-authenticated open endpoint per IP.
	openRateLimiter *RateLimiter
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(store store.Store, services *Services, tokenService *auth.TokenService, logger *slog.Logger) *Server {
	s := &Server{
		store:           store,
		services:        services,
		tokenService:    tokenService,
		router:          chi.NewRouter(),
		logger:          logger,
		authRateLimiter: NewRateLimiter(20, time.Minute, 10),
		openRateLimiter: NewRateLimiter(60, time.Minute, 30),
	}

	s.setupMiddleware()

	humaConfig := huma.DefaultConfig("Daylog API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}
	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.registerAuthRoutes()
	s.registerUserRoutes()
	s.registerLogRoutes()
	s.registerQuickTagRoutes()
	s.registerSettingRoutes()
	s.setupPlainRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Api-Token"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
}

// setupPlainRoutes registers the non-huma routes: the health check and the
// token-authenticated open ingestion endpoint.
func (s *Server) setupPlainRoutes() {
	s.router.Get("/health", s.handleHealthCheck)

	s.router.Route("/api/open", func(r chi.Router) {
		r.Use(RateLimitMiddleware(s.openRateLimiter, s.logger))
		r.Post("/logs", s.handleOpenCreateLog)
	})
}

// handleHealthCheck returns server health status.
func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{
		"status": "healthy",
	}, s.logger)
}
